package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unitoken/internal/adapter/http/handler"
	"unitoken/internal/adapter/http/middleware"
	"unitoken/internal/port"
	"unitoken/internal/usecase"
)

// Setup creates and configures the Gin router. store may be nil, which
// disables the run endpoints and saving.
func Setup(uc *usecase.TokenizeUseCase, store port.RunStore, defaultThreshold float64, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	healthHandler := handler.NewHealthHandler(uc)
	router.GET("/health", healthHandler.Health)

	var (
		recorder handler.RunRecorder
		runs     handler.RunReader
	)
	if store != nil {
		recorder = usecase.NewRunRecorder(store)
		runs = store
	}
	tokenizeHandler := handler.NewTokenizeHandler(uc, recorder, runs, defaultThreshold)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/languages", tokenizeHandler.Languages)

		tokenize := v1.Group("/tokenize")
		{
			tokenize.POST("", tokenizeHandler.Tokenize)
			tokenize.POST("/batch", tokenizeHandler.TokenizeBatch)
		}

		runRoutes := v1.Group("/runs")
		{
			runRoutes.GET("", tokenizeHandler.ListRuns)
			runRoutes.GET("/:id", tokenizeHandler.GetRun)
		}
	}

	return router
}
