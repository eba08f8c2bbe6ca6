package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

// selectionWindow is how many ranked candidates the selector considers. Only
// index 0 is chosen today; the window leaves room for diversification without
// changing the interface.
const selectionWindow = 10

const pickCacheTTL = time.Hour

type DailyService interface {
	// PickFor returns the pick for (user, category, date), creating it on
	// first request. A dry pool yields (nil, nil): no pick is a valid result.
	PickFor(ctx context.Context, userID uuid.UUID, category string, date time.Time) (*types.DailyPick, error)

	// PicksFor resolves all categories for the date. Missing categories map
	// to nil entries.
	PicksFor(ctx context.Context, userID uuid.UUID, date time.Time) (map[string]*types.DailyPick, error)

	UpdateFeedback(ctx context.Context, pickID uuid.UUID, status string, rating *int, feedback string) (*types.DailyPick, error)
}

type dailyService struct {
	db       *gorm.DB
	log      *logger.Logger
	poolRepo repos.PoolRepo
	pickRepo repos.DailyPickRepo
	rdb      *goredis.Client // optional pick-set cache; nil disables it
}

func NewDailyService(db *gorm.DB, log *logger.Logger, poolRepo repos.PoolRepo, pickRepo repos.DailyPickRepo, rdb *goredis.Client) DailyService {
	return &dailyService{
		db:       db,
		log:      log.With("service", "DailyService"),
		poolRepo: poolRepo,
		pickRepo: pickRepo,
		rdb:      rdb,
	}
}

func (s *dailyService) PickFor(ctx context.Context, userID uuid.UUID, category string, date time.Time) (*types.DailyPick, error) {
	if !types.ValidCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	day := types.DateOf(date)

	existing, err := s.pickRepo.GetByUserCategoryDate(ctx, nil, userID, category, day)
	if err != nil {
		return nil, fmt.Errorf("fetch existing pick: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	candidates, err := s.poolRepo.ListAvailableByCategory(ctx, nil, userID, category, selectionWindow)
	if err != nil {
		return nil, fmt.Errorf("list pool candidates: %w", err)
	}
	if len(candidates) == 0 {
		// A transiently empty pool (mid-rebuild) lands here too: no
		// candidates today, not a failure.
		return nil, nil
	}
	chosen := candidates[0]

	pick := &types.DailyPick{
		ID:        uuid.New(),
		UserID:    userID,
		WorkID:    chosen.WorkID,
		Category:  category,
		Date:      day,
		Reasoning: fmt.Sprintf("Selected based on confidence score %.2f", chosen.ConfidenceScore),
		Status:    types.PickStatusUnread,
	}

	// Pick creation and pool mutation must land together: a recommended entry
	// without a visible pick (or the reverse) is a correctness violation.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.pickRepo.Create(ctx, tx, pick); err != nil {
			return err
		}
		return s.poolRepo.MarkRecommended(ctx, tx, chosen.ID, time.Now().UTC())
	})
	if err != nil {
		// A concurrent request may have won the unique-index race; its pick
		// is the canonical one.
		if winner, readErr := s.pickRepo.GetByUserCategoryDate(ctx, nil, userID, category, day); readErr == nil && winner != nil {
			return winner, nil
		}
		return nil, fmt.Errorf("record daily pick: %w", err)
	}

	s.invalidatePickCache(ctx, userID, date)
	return pick, nil
}

func (s *dailyService) PicksFor(ctx context.Context, userID uuid.UUID, date time.Time) (map[string]*types.DailyPick, error) {
	if cached, ok := s.cachedPicks(ctx, userID, date); ok {
		return cached, nil
	}

	out := make(map[string]*types.DailyPick, len(types.Categories()))
	complete := true
	for _, category := range types.Categories() {
		pick, err := s.PickFor(ctx, userID, category, date)
		if err != nil {
			return nil, err
		}
		out[category] = pick
		if pick == nil {
			complete = false
		}
	}

	// Only full sets are cached; a dry category could otherwise stick until
	// the TTL even after a repopulation.
	if complete {
		s.cachePicks(ctx, userID, date, out)
	}
	return out, nil
}

func (s *dailyService) UpdateFeedback(ctx context.Context, pickID uuid.UUID, status string, rating *int, feedback string) (*types.DailyPick, error) {
	pick, err := s.pickRepo.GetByID(ctx, nil, pickID)
	if err != nil {
		return nil, fmt.Errorf("fetch pick: %w", err)
	}
	if pick == nil {
		return nil, fmt.Errorf("pick %s does not exist", pickID)
	}

	updates := map[string]interface{}{}
	now := time.Now().UTC()
	switch status {
	case "":
	case types.PickStatusInProgress:
		updates["status"] = status
		updates["started_at"] = now
	case types.PickStatusCompleted:
		updates["status"] = status
		updates["completed_at"] = now
	case types.PickStatusUnread:
		updates["status"] = status
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, fmt.Errorf("rating must be between 1 and 5")
		}
		updates["rating"] = *rating
	}
	if feedback != "" {
		updates["feedback"] = feedback
	}
	if len(updates) == 0 {
		return pick, nil
	}
	updates["updated_at"] = now

	if err := s.pickRepo.UpdateFields(ctx, nil, pickID, updates); err != nil {
		return nil, fmt.Errorf("update pick: %w", err)
	}

	s.invalidatePickCache(ctx, pick.UserID, pick.Date)
	return s.pickRepo.GetByID(ctx, nil, pickID)
}

// -------------------- pick-set cache --------------------

func pickCacheKey(userID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("daily_picks:%s:%s", userID, date.Format("2006-01-02"))
}

func (s *dailyService) cachedPicks(ctx context.Context, userID uuid.UUID, date time.Time) (map[string]*types.DailyPick, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, pickCacheKey(userID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var out map[string]*types.DailyPick
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *dailyService) cachePicks(ctx context.Context, userID uuid.UUID, date time.Time, picks map[string]*types.DailyPick) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(picks)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, pickCacheKey(userID, date), raw, pickCacheTTL).Err(); err != nil {
		s.log.Debug("Pick cache write failed", "error", err)
	}
}

func (s *dailyService) invalidatePickCache(ctx context.Context, userID uuid.UUID, date time.Time) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, pickCacheKey(userID, date)).Err(); err != nil {
		s.log.Debug("Pick cache invalidation failed", "error", err)
	}
}
