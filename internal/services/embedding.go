package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dailylit-backend/internal/clients/gemini"
	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

// DefaultEmbeddingDim matches gemini-embedding-001 output.
const DefaultEmbeddingDim = 3072

const emptyPreferencePlaceholder = "No preferences specified"

// EmbedError carries an embedding failure across internal layers. The zero
// vector fallback happens in Vector and nowhere else.
type EmbedError struct {
	Op  string
	Err error
}

func (e *EmbedError) Error() string { return fmt.Sprintf("embed %s: %v", e.Op, e.Err) }
func (e *EmbedError) Unwrap() error { return e.Err }

type EmbeddingService interface {
	// WorkDescription builds the deterministic labeled-segment text a work is
	// embedded from. Same stored metadata always yields the same description.
	WorkDescription(w *types.Work) string
	UserDescription(u *types.User) string

	// Vector embeds text, returning a zero vector of the configured dimension
	// on any failure so bulk callers never abort mid-batch.
	Vector(ctx context.Context, text string) []float64

	// GenerateWorkEmbeddings lazily fills missing work vectors (all of them
	// when regenerate is set). Failed works are skipped, not aborted on, and
	// a vector is only ever persisted whole. Returns the number persisted.
	GenerateWorkEmbeddings(ctx context.Context, regenerate bool) (int, error)

	RefreshUserVector(ctx context.Context, userID uuid.UUID) error

	Dim() int
}

type embeddingService struct {
	db       *gorm.DB
	log      *logger.Logger
	client   gemini.Client
	workRepo repos.WorkRepo
	userRepo repos.UserRepo
	dim      int
}

func NewEmbeddingService(db *gorm.DB, log *logger.Logger, client gemini.Client, workRepo repos.WorkRepo, userRepo repos.UserRepo, dim int) EmbeddingService {
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}
	return &embeddingService{
		db:       db,
		log:      log.With("service", "EmbeddingService"),
		client:   client,
		workRepo: workRepo,
		userRepo: userRepo,
		dim:      dim,
	}
}

func (s *embeddingService) Dim() int { return s.dim }

func (s *embeddingService) WorkDescription(w *types.Work) string {
	parts := []string{
		"Title: " + w.Title,
		"Author: " + w.Author,
		"Type: " + w.Category,
	}
	if w.Themes != "" {
		parts = append(parts, "Themes: "+w.Themes)
	}
	if w.Genres != "" {
		parts = append(parts, "Genres: "+w.Genres)
	}
	if w.Summary != "" {
		parts = append(parts, "Summary: "+w.Summary)
	}
	return strings.Join(parts, " | ")
}

func (s *embeddingService) UserDescription(u *types.User) string {
	if strings.TrimSpace(u.PreferenceSummary) == "" {
		return emptyPreferencePlaceholder
	}
	return u.PreferenceSummary
}

func (s *embeddingService) Vector(ctx context.Context, text string) []float64 {
	vec, embErr := s.vector(ctx, text)
	if embErr != nil {
		s.log.Warn("Embedding failed, returning zero vector", "error", embErr.Error())
		return make([]float64, s.dim)
	}
	return vec
}

func (s *embeddingService) vector(ctx context.Context, text string) ([]float64, *EmbedError) {
	clean := strings.ReplaceAll(text, "\n", " ")
	vec, err := s.client.EmbedContent(ctx, clean, gemini.TaskSemanticSimilarity)
	if err != nil {
		return nil, &EmbedError{Op: "content", Err: err}
	}
	return vec, nil
}

func (s *embeddingService) GenerateWorkEmbeddings(ctx context.Context, regenerate bool) (int, error) {
	var works []*types.Work
	var err error
	if regenerate {
		works, err = s.workRepo.ListActiveByCategory(ctx, nil, "")
	} else {
		works, err = s.workRepo.ListMissingEmbedding(ctx, nil)
	}
	if err != nil {
		return 0, fmt.Errorf("list works: %w", err)
	}

	generated := 0
	for _, w := range works {
		vec, embErr := s.vector(ctx, s.WorkDescription(w))
		if embErr != nil {
			s.log.Warn("Skipping work embedding", "work_id", w.ID, "error", embErr.Error())
			continue
		}
		if err := w.SetEmbedding(vec); err != nil {
			s.log.Warn("Skipping work embedding, encode failed", "work_id", w.ID, "error", err)
			continue
		}
		if err := s.workRepo.UpdateEmbedding(ctx, nil, w.ID, w.EmbeddingVector); err != nil {
			return generated, fmt.Errorf("persist embedding for work %s: %w", w.ID, err)
		}
		generated++
	}

	s.log.Info("Generated work embeddings", "candidates", len(works), "generated", generated)
	return generated, nil
}

func (s *embeddingService) RefreshUserVector(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s does not exist", userID)
	}

	vec, embErr := s.vector(ctx, s.UserDescription(user))
	if embErr != nil {
		// Stale vectors beat zero vectors for retrieval; keep whatever exists.
		return embErr
	}

	if err := user.SetEmbedding(vec); err != nil {
		return fmt.Errorf("encode user vector: %w", err)
	}
	if err := s.userRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{
		"embedding_vector": user.EmbeddingVector,
	}); err != nil {
		return fmt.Errorf("persist user vector: %w", err)
	}
	return nil
}
