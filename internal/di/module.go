package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/clvpredictor/internal/adapter/scoring"
	"github.com/polkiloo/clvpredictor/internal/app"
	"github.com/polkiloo/clvpredictor/internal/config"
	"github.com/polkiloo/clvpredictor/internal/logger"
	"github.com/polkiloo/clvpredictor/internal/metrics"
	"github.com/polkiloo/clvpredictor/internal/server/http/router"
	"github.com/polkiloo/clvpredictor/internal/storage"
	"github.com/polkiloo/clvpredictor/internal/usecase"
)

// Module composes the whole service graph. Extra options are appended last, which lets tests replace components.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		storage.Module,
		scoring.Module,
		usecase.Module,
		fx.Provide(func(client scoring.Client) app.ScoringProvider { return client }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
