package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyPick records the single chosen work per (user, category, date). The
// composite unique index is what makes same-day selection idempotent under
// concurrent requests.
type DailyPick struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pick_user_category_date;column:user_id" json:"user_id"`
	WorkID uuid.UUID `gorm:"type:uuid;not null;column:work_id" json:"work_id"`

	Category string    `gorm:"not null;uniqueIndex:idx_pick_user_category_date;column:category" json:"category"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_pick_user_category_date;column:date" json:"date"`

	Reasoning string `gorm:"type:text;column:reasoning" json:"reasoning"`
	Status    string `gorm:"default:unread;column:status" json:"status"`
	Rating    *int   `gorm:"column:rating" json:"rating,omitempty"`
	Feedback  string `gorm:"type:text;column:feedback" json:"feedback"`

	RecommendedAt time.Time  `gorm:"not null;default:now();column:recommended_at" json:"recommended_at"`
	StartedAt     *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt   *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyPick) TableName() string { return "work_recommendations" }
