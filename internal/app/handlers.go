package app

import (
	"github.com/yungbote/dailylit-backend/internal/handlers"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type Handlers struct {
	User           *handlers.UserHandler
	Work           *handlers.WorkHandler
	Recommendation *handlers.RecommendationHandler
}

func wireHandlers(log *logger.Logger, reposet Repos, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		User:           handlers.NewUserHandler(reposet.User, serviceset.Preference),
		Work:           handlers.NewWorkHandler(reposet.Work, serviceset.Embedding),
		Recommendation: handlers.NewRecommendationHandler(serviceset.Daily, serviceset.Pool),
	}
}
