package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type Repos struct {
	User           repos.UserRepo
	UserPreference repos.UserPreferenceRepo
	Work           repos.WorkRepo
	Pool           repos.PoolRepo
	DailyPick      repos.DailyPickRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserPreference: repos.NewUserPreferenceRepo(db, log),
		Work:           repos.NewWorkRepo(db, log),
		Pool:           repos.NewPoolRepo(db, log),
		DailyPick:      repos.NewDailyPickRepo(db, log),
	}
}
