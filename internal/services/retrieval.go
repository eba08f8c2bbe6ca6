package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

// ScoredWork pairs a catalog work with its cosine similarity to a user vector.
type ScoredWork struct {
	Work       *types.Work
	Similarity float64
}

type RetrievalService interface {
	// FindSimilar ranks embedded catalog works against the user's vector,
	// strictly descending, at most topK. A user without a vector or a catalog
	// without qualifying works yields an empty result, not an error.
	FindSimilar(ctx context.Context, user *types.User, category string, topK int) ([]ScoredWork, error)
}

type retrievalService struct {
	log      *logger.Logger
	workRepo repos.WorkRepo
}

func NewRetrievalService(log *logger.Logger, workRepo repos.WorkRepo) RetrievalService {
	return &retrievalService{
		log:      log.With("service", "RetrievalService"),
		workRepo: workRepo,
	}
}

func (s *retrievalService) FindSimilar(ctx context.Context, user *types.User, category string, topK int) ([]ScoredWork, error) {
	if user == nil {
		return nil, nil
	}
	userVec, ok := user.Embedding()
	if !ok {
		return nil, nil
	}

	works, err := s.workRepo.ListEmbedded(ctx, nil, category)
	if err != nil {
		return nil, fmt.Errorf("list embedded works: %w", err)
	}
	if len(works) == 0 {
		return nil, nil
	}

	scored := make([]ScoredWork, 0, len(works))
	for _, w := range works {
		vec, ok := w.Embedding()
		if !ok {
			continue
		}
		scored = append(scored, ScoredWork{Work: w, Similarity: cosineSimilarity(userVec, vec)})
	}

	// Stable keeps catalog order on ties so a fixed snapshot ranks the same way
	// every time.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
