package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dailylit-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.User {
	tb.Helper()
	id := uuid.New()
	u := &types.User{
		ID:                   id,
		Email:                fmt.Sprintf("%s@example.com", id),
		Username:             id.String(),
		AdventurousnessLevel: 0.5,
		DifficultyPreference: types.DifficultyIntermediate,
		PreferredLength:      types.LengthMedium,
		Active:               true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedWork(tb testing.TB, ctx context.Context, tx *gorm.DB, category string, vec []float64) *types.Work {
	tb.Helper()
	id := uuid.New()
	w := &types.Work{
		ID:                   id,
		Title:                "work-" + id.String(),
		Author:               "author-" + id.String(),
		Category:             category,
		Summary:              "a short summary",
		EstimatedReadingTime: 10,
		DifficultyLevel:      types.DifficultyIntermediate,
		PublicDomain:         true,
		Active:               true,
	}
	if vec != nil {
		if err := w.SetEmbedding(vec); err != nil {
			tb.Fatalf("seed work embedding: %v", err)
		}
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed work: %v", err)
	}
	return w
}

func SeedPoolEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, workID uuid.UUID, category string, confidence float64, lastRecommendedAt *time.Time) *types.PoolEntry {
	tb.Helper()
	e := &types.PoolEntry{
		ID:                uuid.New(),
		UserID:            userID,
		WorkID:            workID,
		Category:          category,
		ConfidenceScore:   confidence,
		AddedReason:       "seed",
		Status:            types.PoolStatusAvailable,
		LastRecommendedAt: lastRecommendedAt,
		Active:            true,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed pool entry: %v", err)
	}
	return e
}
