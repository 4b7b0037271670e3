package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/clvpredictor/internal/config"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/metrics"
	testhelpers "github.com/polkiloo/clvpredictor/internal/test"
	"github.com/polkiloo/clvpredictor/internal/usecase"
	"github.com/polkiloo/clvpredictor/internal/worker"
)

func newTestSweeper() *worker.SessionSweeper {
	return worker.NewSessionSweeper(&testhelpers.SessionFacadeStub{}, 10*time.Millisecond, time.Minute, 1, 1, testLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewPredictorFacadeAppliesConfig(t *testing.T) {
	client := &testhelpers.ScoringClientStub{}
	facade := newPredictorFacade(facadeParams{
		Inputs:   usecase.NewInputUseCase(testhelpers.NewInputRepositoryStub()),
		Client:   client,
		Recorder: metrics.NewRecorder(),
		Config:   &config.Config{StrictInput: true},
		Logger:   testLogger(),
	})

	id, _ := facade.OpenSession("")
	if err := facade.SetField(context.Background(), id, "total_orders", "x"); err != nil {
		t.Fatalf("set field returned error: %v", err)
	}
	state, err := facade.Submit(context.Background(), id)
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if state.Phase != model.PhaseFailed || client.Calls() != 0 {
		t.Fatalf("expected strict input failure without a call, got %+v calls=%d", state, client.Calls())
	}
}

func TestNewSessionSweeperUsesConfig(t *testing.T) {
	sweeper := newSessionSweeper(sweeperParams{
		Facade: &PredictorFacade{},
		Config: &config.Config{SweepInterval: 15 * time.Second, SessionIdleTimeout: time.Minute, SweeperPoolSize: 4},
		Logger: testLogger(),
	})
	if sweeper == nil {
		t.Fatal("expected sweeper instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	facade, repo := newFacade(&testhelpers.ScoringClientStub{})
	facade.OpenSession("")
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     server,
		Sweeper:    newTestSweeper(),
		Facade:     facade,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}

	if facade.SessionCount() != 0 || len(repo.DeletedSessions()) != 1 {
		t.Fatalf("expected sessions to be torn down on stop")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "bad addr"}
	facade, _ := newFacade(&testhelpers.ScoringClientStub{})

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     server,
		Sweeper:    newTestSweeper(),
		Facade:     facade,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = recorder.Stop(context.Background())
}

func TestLifecycleRecorderRunsHooks(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var order []string
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-1"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-1"); return nil },
	})
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-2"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-2"); return nil },
	})
	recorder.Append(fx.Hook{})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if err := recorder.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	want := []string{"start-1", "start-2", "stop-2", "stop-1"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
