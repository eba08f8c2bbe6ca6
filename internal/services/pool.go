package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

const (
	// DefaultCandidateLimit bounds how many retrieval hits per category reach
	// the reranker.
	DefaultCandidateLimit = 50

	// DefaultPoolSizePerCategory is how many fused candidates survive into the
	// persistent pool per category.
	DefaultPoolSizePerCategory = 30

	// basicThreshold filters the heuristic fallback; only scores strictly
	// above it are admitted.
	basicThreshold = 0.3

	reasonHybrid = "Hybrid embedding + LLM match"
	reasonBasic  = "Basic algorithm match"
)

var errNoUserVector = errors.New("user has no preference vector")

type PoolService interface {
	// Populate rebuilds the user's entire candidate pool: the prior pool is
	// deleted and replaced in one transaction, so all entry statuses reset.
	// Callers accept that history loss. Falls back to the heuristic scorer
	// when the hybrid pipeline cannot run, so an external outage never leaves
	// a user with an empty pool. Storage failures are the only hard errors.
	Populate(ctx context.Context, userID uuid.UUID) error
}

type poolService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	workRepo  repos.WorkRepo
	poolRepo  repos.PoolRepo
	retrieval RetrievalService
	rerank    RerankService

	candidateLimit      int
	poolSizePerCategory int
}

func NewPoolService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, workRepo repos.WorkRepo, poolRepo repos.PoolRepo, retrieval RetrievalService, rerank RerankService, candidateLimit, poolSizePerCategory int) PoolService {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	if poolSizePerCategory <= 0 {
		poolSizePerCategory = DefaultPoolSizePerCategory
	}
	return &poolService{
		db:                  db,
		log:                 log.With("service", "PoolService"),
		userRepo:            userRepo,
		workRepo:            workRepo,
		poolRepo:            poolRepo,
		retrieval:           retrieval,
		rerank:              rerank,
		candidateLimit:      candidateLimit,
		poolSizePerCategory: poolSizePerCategory,
	}
}

type poolCandidate struct {
	work       *types.Work
	category   string
	confidence float64
	reason     string
}

func (s *poolService) Populate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s does not exist", userID)
	}

	candidates, err := s.hybridCandidates(ctx, user)
	if err != nil && !errors.Is(err, errNoUserVector) {
		return err
	}
	if errors.Is(err, errNoUserVector) || len(candidates) == 0 {
		s.log.Warn("Hybrid pipeline unavailable, using basic heuristic scorer", "user_id", userID, "reason", fmt.Sprintf("%v", err))
		candidates, err = s.basicCandidates(ctx, user)
		if err != nil {
			return err
		}
	}

	// Single transaction: concurrent daily selections see either the old pool
	// or the new one, and concurrent populates for the same user serialize on
	// the advisory lock.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", advisoryLockKey(userID)).Error; err != nil {
			return fmt.Errorf("acquire populate lock: %w", err)
		}
		if err := s.poolRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear pool: %w", err)
		}
		for _, c := range candidates {
			entry := &types.PoolEntry{
				ID:              uuid.New(),
				UserID:          userID,
				WorkID:          c.work.ID,
				Category:        c.category,
				ConfidenceScore: clamp01(c.confidence),
				AddedReason:     c.reason,
				Status:          types.PoolStatusAvailable,
				Active:          true,
			}
			if err := s.poolRepo.UpsertByUserAndWork(ctx, tx, entry); err != nil {
				return fmt.Errorf("upsert pool entry for work %s: %w", c.work.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Populated work pool", "user_id", userID, "entries", len(candidates))
	return nil
}

// hybridCandidates runs retrieve -> rerank -> fuse per category. Categories
// are independent, so they run in parallel.
func (s *poolService) hybridCandidates(ctx context.Context, user *types.User) ([]poolCandidate, error) {
	if _, ok := user.Embedding(); !ok {
		return nil, errNoUserVector
	}

	categories := types.Categories()
	perCategory := make([][]poolCandidate, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			similar, err := s.retrieval.FindSimilar(gctx, user, category, s.candidateLimit)
			if err != nil {
				return err
			}
			if len(similar) == 0 {
				return nil
			}

			works := make([]*types.Work, len(similar))
			for j, sw := range similar {
				works[j] = sw.Work
			}
			llmScores := s.rerank.Score(gctx, user.PreferenceSummary, works)

			fused := make([]poolCandidate, 0, len(similar))
			for _, sw := range similar {
				llmScore, ok := llmScores[sw.Work.ID]
				if !ok {
					llmScore = neutralScore
				}
				fused = append(fused, poolCandidate{
					work:       sw.Work,
					category:   category,
					confidence: FuseScores(sw.Similarity, llmScore),
					reason:     reasonHybrid,
				})
			}
			sort.SliceStable(fused, func(a, b int) bool {
				return fused[a].confidence > fused[b].confidence
			})
			if len(fused) > s.poolSizePerCategory {
				fused = fused[:s.poolSizePerCategory]
			}
			perCategory[i] = fused
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []poolCandidate
	for _, batch := range perCategory {
		out = append(out, batch...)
	}
	return out, nil
}

// basicCandidates scores the whole active catalog with the offline heuristic.
// It needs no external service, so it works with zero connectivity.
func (s *poolService) basicCandidates(ctx context.Context, user *types.User) ([]poolCandidate, error) {
	var out []poolCandidate
	for _, category := range types.Categories() {
		works, err := s.workRepo.ListActiveByCategory(ctx, nil, category)
		if err != nil {
			return nil, fmt.Errorf("list %s works: %w", category, err)
		}
		for _, w := range works {
			confidence := BasicConfidence(user, w)
			if confidence <= basicThreshold {
				continue
			}
			out = append(out, poolCandidate{
				work:       w,
				category:   category,
				confidence: confidence,
				reason:     reasonBasic,
			})
		}
	}
	return out, nil
}

// BasicConfidence is the heuristic fallback scorer: difficulty fit, reading
// time band, and an adventurousness nudge on top of a neutral base.
func BasicConfidence(user *types.User, work *types.Work) float64 {
	score := 0.5

	switch {
	case user.DifficultyPreference == work.DifficultyLevel:
		score += 0.2
	case user.DifficultyPreference == types.DifficultyBeginner && work.DifficultyLevel == types.DifficultyIntermediate:
		score += 0.1
	case user.DifficultyPreference == types.DifficultyAdvanced && work.DifficultyLevel == types.DifficultyIntermediate:
		score += 0.1
	case user.DifficultyPreference == types.DifficultyIntermediate:
		// Intermediate readers can go either way.
		score += 0.05
	}

	readingTime := work.EstimatedReadingTime
	if readingTime == 0 {
		readingTime = 10
	}
	switch user.PreferredLength {
	case types.LengthShort:
		if readingTime <= 5 {
			score += 0.15
		}
	case types.LengthMedium:
		if readingTime > 5 && readingTime <= 15 {
			score += 0.15
		}
	case types.LengthLong:
		if readingTime > 15 {
			score += 0.15
		}
	}

	if user.AdventurousnessLevel > 0.7 && work.DifficultyLevel == types.DifficultyAdvanced {
		score += 0.1
	} else if user.AdventurousnessLevel < 0.3 && work.DifficultyLevel == types.DifficultyBeginner {
		score += 0.1
	}

	return clamp01(score)
}

func advisoryLockKey(userID uuid.UUID) int64 {
	h := fnv.New64a()
	_, _ = h.Write(userID[:])
	return int64(h.Sum64())
}
