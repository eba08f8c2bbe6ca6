package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type PreferenceInput struct {
	Type   string  `json:"type"`
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

type PreferenceService interface {
	// BuildSummary renders the user's structured preferences into the
	// natural-language summary the embedder and reranker consume.
	BuildSummary(user *types.User, prefs []*types.UserPreference) string

	// ReplacePreferences swaps the user's active preference rows, rebuilds the
	// summary and refreshes the preference vector. Staleness is otherwise the
	// caller's problem: nothing here runs automatically.
	ReplacePreferences(ctx context.Context, userID uuid.UUID, inputs []PreferenceInput) (*types.User, error)

	RefreshSummary(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type preferenceService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	prefRepo  repos.UserPreferenceRepo
	embedding EmbeddingService
}

func NewPreferenceService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, prefRepo repos.UserPreferenceRepo, embedding EmbeddingService) PreferenceService {
	return &preferenceService{
		db:        db,
		log:       log.With("service", "PreferenceService"),
		userRepo:  userRepo,
		prefRepo:  prefRepo,
		embedding: embedding,
	}
}

var difficultyPhrases = map[string]string{
	types.DifficultyBeginner:     "accessible and easy-to-read",
	types.DifficultyIntermediate: "moderately challenging",
	types.DifficultyAdvanced:     "complex and intellectually demanding",
}

var lengthPhrases = map[string]string{
	types.LengthShort:  "brief reads (5-10 minutes)",
	types.LengthMedium: "medium-length pieces (10-20 minutes)",
	types.LengthLong:   "longer works (20+ minutes)",
}

func (s *preferenceService) BuildSummary(user *types.User, prefs []*types.UserPreference) string {
	var books, authors, interests, avoid []string
	for _, p := range prefs {
		switch p.PreferenceType {
		case "book":
			books = append(books, p.PreferenceValue)
		case "author":
			authors = append(authors, p.PreferenceValue)
		case "interest":
			interests = append(interests, p.PreferenceValue)
		case "avoid":
			avoid = append(avoid, p.PreferenceValue)
		}
	}

	difficulty, ok := difficultyPhrases[user.DifficultyPreference]
	if !ok {
		difficulty = difficultyPhrases[types.DifficultyIntermediate]
	}
	length, ok := lengthPhrases[user.PreferredLength]
	if !ok {
		length = lengthPhrases[types.LengthMedium]
	}

	var adventurousness string
	switch {
	case user.AdventurousnessLevel < 0.3:
		adventurousness = "Prefers familiar genres and well-known works."
	case user.AdventurousnessLevel > 0.7:
		adventurousness = "Loves exploring new genres and experimental literature."
	default:
		adventurousness = "Enjoys a mix of familiar and new literary experiences."
	}

	parts := []string{
		fmt.Sprintf("Prefers %s literature and %s. %s", difficulty, length, adventurousness),
	}
	if len(books) == 1 {
		parts = append(parts, "Favorite book: "+books[0]+".")
	} else if len(books) > 1 {
		parts = append(parts, "Favorite books include: "+joinList(books)+".")
	}
	if len(authors) == 1 {
		parts = append(parts, "Enjoys works by "+authors[0]+".")
	} else if len(authors) > 1 {
		parts = append(parts, "Enjoys works by "+joinList(authors)+".")
	}
	if len(interests) == 1 {
		parts = append(parts, "Also interested in: "+interests[0]+".")
	} else if len(interests) > 1 {
		parts = append(parts, "Other interests include: "+joinList(interests)+".")
	}
	if len(avoid) == 1 {
		parts = append(parts, "Prefers to avoid: "+avoid[0]+".")
	} else if len(avoid) > 1 {
		parts = append(parts, "Prefers to avoid topics like: "+joinList(avoid)+".")
	}

	return strings.Join(parts, " ")
}

func joinList(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

func (s *preferenceService) ReplacePreferences(ctx context.Context, userID uuid.UUID, inputs []PreferenceInput) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s does not exist", userID)
	}

	rows := make([]*types.UserPreference, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Value) == "" {
			continue
		}
		weight := in.Weight
		if weight <= 0 {
			weight = 1
		}
		rows = append(rows, &types.UserPreference{
			ID:              uuid.New(),
			UserID:          userID,
			PreferenceType:  strings.TrimSpace(in.Type),
			PreferenceValue: strings.TrimSpace(in.Value),
			Weight:          weight,
			Active:          true,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.prefRepo.DeactivateByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("deactivate preferences: %w", err)
		}
		if _, err := s.prefRepo.Create(ctx, tx, rows); err != nil {
			return fmt.Errorf("create preferences: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.RefreshSummary(ctx, userID)
}

func (s *preferenceService) RefreshSummary(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s does not exist", userID)
	}

	prefs, err := s.prefRepo.ListActiveByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	summary := s.BuildSummary(user, prefs)
	if err := s.userRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{
		"preference_summary": summary,
	}); err != nil {
		return nil, fmt.Errorf("persist summary: %w", err)
	}
	user.PreferenceSummary = summary

	// Vector refresh is best-effort; the pool populate falls back to the
	// heuristic scorer when no vector exists yet.
	if err := s.embedding.RefreshUserVector(ctx, userID); err != nil {
		s.log.Warn("User vector refresh failed", "user_id", userID, "error", err.Error())
	}

	return s.userRepo.GetByID(ctx, nil, userID)
}
