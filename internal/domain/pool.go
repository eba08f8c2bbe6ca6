package domain

import (
	"time"

	"github.com/google/uuid"
)

// PoolEntry is the standing per-user candidate set the daily selector draws
// from. At most one active entry exists per (user, work) pair.
type PoolEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pool_user_work;column:user_id" json:"user_id"`
	WorkID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pool_user_work;column:work_id" json:"work_id"`

	Category        string  `gorm:"not null;index;column:category" json:"category"`
	ConfidenceScore float64 `gorm:"not null;column:confidence_score" json:"confidence_score"`
	AddedReason     string  `gorm:"type:text;column:added_reason" json:"added_reason"`
	Status          string  `gorm:"default:available;column:status" json:"status"`

	AddedAt           time.Time  `gorm:"not null;default:now();column:added_at" json:"added_at"`
	LastRecommendedAt *time.Time `gorm:"column:last_recommended_at" json:"last_recommended_at,omitempty"`
	TimesRecommended  int        `gorm:"default:0;column:times_recommended" json:"times_recommended"`
	Active            bool       `gorm:"default:true;column:active" json:"active"`
}

func (PoolEntry) TableName() string { return "user_work_pool" }
