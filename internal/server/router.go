package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/dailylit-backend/internal/handlers"
)

type RouterConfig struct {
	UserHandler           *handlers.UserHandler
	WorkHandler           *handlers.WorkHandler
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/users", cfg.UserHandler.Create)
		api.GET("/users/:id", cfg.UserHandler.Get)
		api.POST("/users/:id/preferences", cfg.UserHandler.ReplacePreferences)

		api.GET("/users/:id/recommendations/today", cfg.RecommendationHandler.GetToday)
		api.POST("/users/:id/pool/populate", cfg.RecommendationHandler.PopulatePool)
		api.PATCH("/recommendations/:id", cfg.RecommendationHandler.UpdateFeedback)

		api.GET("/works", cfg.WorkHandler.List)
		api.POST("/works", cfg.WorkHandler.Create)
		api.POST("/works/embeddings/backfill", cfg.WorkHandler.BackfillEmbeddings)
	}

	return router
}
