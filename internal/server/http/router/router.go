package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/clvpredictor/internal/server/http/handlers"
	"github.com/polkiloo/clvpredictor/internal/server/http/middleware"
	"github.com/polkiloo/clvpredictor/internal/server/http/view"
)

const maxRequestBody = 64 << 10

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PredictorFacade, health handlers.HealthChecker, logger *slog.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.SetHTMLTemplate(view.Templates())

	engine.GET("/healthz", handlers.NewHealthHandler(health, logger).Check)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	pageHandler := handlers.NewPageHandler(facade)
	apiHandler := handlers.NewAPIHandler(facade)

	session := engine.Group("")
	session.Use(middleware.SessionRequired(facade))
	session.GET("/", pageHandler.Index)
	session.POST("/predict", pageHandler.Predict)

	api := session.Group("/api")
	api.GET("/inputs", apiHandler.Inputs)
	api.PUT("/inputs/:field", apiHandler.SetField)
	api.POST("/predict", apiHandler.Predict)
	api.GET("/state", apiHandler.State)

	return engine
}
