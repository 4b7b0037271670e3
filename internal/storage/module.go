package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/clvpredictor/internal/config"
	"github.com/polkiloo/clvpredictor/internal/domain/repository"
	"github.com/polkiloo/clvpredictor/internal/storage/memory"
	"github.com/polkiloo/clvpredictor/internal/storage/postgres"
)

// Module provides the draft input repository and its health check: PostgreSQL when a DSN is configured, memory otherwise.
var Module = fx.Provide(newStorage)

type storageParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

type storageResult struct {
	fx.Out

	Inputs repository.InputRepository
	Health repository.HealthChecker
}

func newStorage(p storageParams) (storageResult, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("using in-memory input store")
		repo := memory.NewInputRepository()
		return storageResult{Inputs: repo, Health: repo}, nil
	}

	st, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return storageResult{}, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			st.Close()
			return nil
		},
	})
	p.Logger.Info("using postgres input store")
	return storageResult{Inputs: st.Inputs(), Health: st}, nil
}
