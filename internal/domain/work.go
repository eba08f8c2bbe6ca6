package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Work struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title                string    `gorm:"not null;column:title" json:"title"`
	Author               string    `gorm:"not null;column:author" json:"author"`
	Category             string    `gorm:"not null;index;column:category" json:"category"`
	ContentURL           string    `gorm:"column:content_url" json:"content_url"`
	Summary              string    `gorm:"type:text;column:summary" json:"summary"`
	Themes               string    `gorm:"column:themes" json:"themes"`
	Genres               string    `gorm:"column:genres" json:"genres"`
	EstimatedReadingTime int       `gorm:"column:estimated_reading_time" json:"estimated_reading_time"`
	DifficultyLevel      string    `gorm:"column:difficulty_level" json:"difficulty_level"`
	PublicationYear      int       `gorm:"column:publication_year" json:"publication_year"`
	PublicDomain         bool      `gorm:"default:true;column:public_domain" json:"public_domain"`
	WordCount            int       `gorm:"column:word_count" json:"word_count"`

	// Nullable; written all-or-nothing once the embedder has run.
	EmbeddingVector datatypes.JSON `gorm:"column:embedding_vector" json:"-"`

	Active    bool      `gorm:"default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Work) TableName() string { return "works" }

// Embedding decodes the stored vector. ok is false when no vector has been
// generated yet or the stored payload is unreadable.
func (w *Work) Embedding() ([]float64, bool) {
	return decodeVector(w.EmbeddingVector)
}

func (w *Work) SetEmbedding(vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	w.EmbeddingVector = datatypes.JSON(raw)
	return nil
}

func decodeVector(raw datatypes.JSON) ([]float64, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false
	}
	if len(vec) == 0 {
		return nil, false
	}
	return vec, true
}
