package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/clvpredictor/internal/app"
	"github.com/polkiloo/clvpredictor/internal/domain/repository"
	"github.com/polkiloo/clvpredictor/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.PredictorFacade) handlers.PredictorFacade { return f }),
	fx.Provide(func(h repository.HealthChecker) handlers.HealthChecker { return h }),
	fx.Provide(Setup),
)
