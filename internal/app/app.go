package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/clvpredictor/internal/config"
	"github.com/polkiloo/clvpredictor/internal/controller"
	"github.com/polkiloo/clvpredictor/internal/metrics"
	"github.com/polkiloo/clvpredictor/internal/usecase"
	"github.com/polkiloo/clvpredictor/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newPredictorFacade,
		newHTTPServer,
		newSessionSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Inputs   *usecase.InputUseCase
	Client   ScoringProvider
	Recorder *metrics.Recorder
	Config   *config.Config
	Logger   *slog.Logger
}

func newPredictorFacade(p facadeParams) *PredictorFacade {
	return NewPredictorFacade(
		p.Inputs,
		p.Client,
		p.Logger,
		controller.WithStrictInput(p.Config.StrictInput),
		controller.WithObserver(p.Recorder),
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

const sweepBatchSize = 100

type sweeperParams struct {
	fx.In

	Facade *PredictorFacade
	Config *config.Config
	Logger *slog.Logger
}

func newSessionSweeper(p sweeperParams) *worker.SessionSweeper {
	return worker.NewSessionSweeper(
		p.Facade,
		p.Config.SweepInterval,
		p.Config.SessionIdleTimeout,
		sweepBatchSize,
		p.Config.SweeperPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.SessionSweeper
	Facade     *PredictorFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting clv predictor",
				slog.String("addr", p.Server.Addr),
				slog.String("endpoint", p.Config.PredictEndpoint),
			)
			p.Sweeper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Facade.EndAll(shutdownCtx)
			p.Logger.Info("clv predictor stopped")
			return nil
		},
	})
}
