package db

import (
	types "github.com/yungbote/dailylit-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.User{},
		&types.UserPreference{},
		&types.Work{},
		&types.PoolEntry{},
		&types.DailyPick{},
	)
}
