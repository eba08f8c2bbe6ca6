package repos

import (
	"context"

	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type DailyPickRepo interface {
	// Create relies on the (user_id, category, date) unique index; a duplicate
	// insert from a concurrent request surfaces as a constraint error the
	// selector resolves by re-reading.
	Create(ctx context.Context, tx *gorm.DB, row *types.DailyPick) error

	GetByUserCategoryDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string, date time.Time) (*types.DailyPick, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DailyPick, error)
	ListByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.DailyPick, error)

	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type dailyPickRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyPickRepo(db *gorm.DB, baseLog *logger.Logger) DailyPickRepo {
	return &dailyPickRepo{db: db, log: baseLog.With("repo", "DailyPickRepo")}
}

func (r *dailyPickRepo) Create(ctx context.Context, tx *gorm.DB, row *types.DailyPick) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *dailyPickRepo) GetByUserCategoryDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string, date time.Time) (*types.DailyPick, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.DailyPick
	if err := t.WithContext(ctx).
		Where("user_id = ? AND category = ? AND date = ?", userID, category, date).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *dailyPickRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DailyPick, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.DailyPick
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *dailyPickRepo) ListByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.DailyPick, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.DailyPick
	if err := t.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("category ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dailyPickRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).Model(&types.DailyPick{}).Where("id = ?", id).Updates(updates).Error
}
