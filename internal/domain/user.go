package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email                string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username             string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	OnboardingCompleted  bool      `gorm:"default:false;column:onboarding_completed" json:"onboarding_completed"`
	AdventurousnessLevel float64   `gorm:"default:0.5;column:adventurousness_level" json:"adventurousness_level"`
	DifficultyPreference string    `gorm:"default:intermediate;column:difficulty_preference" json:"difficulty_preference"`
	PreferredLength      string    `gorm:"default:medium;column:preferred_length" json:"preferred_length"`

	// Opaque natural-language summary of the user's tastes; rebuilt whenever
	// the underlying preference rows change, never auto-refreshed here.
	PreferenceSummary string         `gorm:"type:text;column:preference_summary" json:"preference_summary"`
	EmbeddingVector   datatypes.JSON `gorm:"column:embedding_vector" json:"-"`

	Active    bool      `gorm:"default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) Embedding() ([]float64, bool) {
	return decodeVector(u.EmbeddingVector)
}

func (u *User) SetEmbedding(vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	u.EmbeddingVector = datatypes.JSON(raw)
	return nil
}

type UserPreference struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`

	// book/author/interest/avoid/genre/topic
	PreferenceType  string  `gorm:"not null;column:preference_type" json:"preference_type"`
	PreferenceValue string  `gorm:"not null;column:preference_value" json:"preference_value"`
	Weight          float64 `gorm:"default:1;column:weight" json:"weight"`

	Active    bool      `gorm:"default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserPreference) TableName() string { return "user_preferences" }
