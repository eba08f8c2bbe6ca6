package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/dailylit-backend/internal/server"
)

func wireRouter(handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		UserHandler:           handlerset.User,
		WorkHandler:           handlerset.Work,
		RecommendationHandler: handlerset.Recommendation,
	})
}
