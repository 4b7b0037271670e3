package scoring

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/clvpredictor/internal/config"
)

// Module exposes scoring client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PredictEndpoint, p.Config.RequestTimeout, p.Logger)
}
