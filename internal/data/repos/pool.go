package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type PoolRepo interface {
	// DeleteByUser removes the user's entire pool; Populate calls this before
	// rebuilding, which is what makes a rebuild reset all entry statuses.
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error

	UpsertByUserAndWork(ctx context.Context, tx *gorm.DB, row *types.PoolEntry) error

	GetByUserAndWork(ctx context.Context, tx *gorm.DB, userID, workID uuid.UUID) (*types.PoolEntry, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PoolEntry, error)

	// ListAvailableByCategory orders by confidence descending, then least
	// recently recommended first with never-recommended entries leading.
	ListAvailableByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string, limit int) ([]*types.PoolEntry, error)

	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)

	MarkRecommended(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
}

type poolRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPoolRepo(db *gorm.DB, baseLog *logger.Logger) PoolRepo {
	return &poolRepo{db: db, log: baseLog.With("repo", "PoolRepo")}
}

func (r *poolRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("user_id = ?", userID).Delete(&types.PoolEntry{}).Error
}

func (r *poolRepo) UpsertByUserAndWork(ctx context.Context, tx *gorm.DB, row *types.PoolEntry) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "work_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"confidence_score": row.ConfidenceScore,
				"added_reason":     row.AddedReason,
			}),
		}).
		Create(row).Error
}

func (r *poolRepo) GetByUserAndWork(ctx context.Context, tx *gorm.DB, userID, workID uuid.UUID) (*types.PoolEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PoolEntry
	if err := t.WithContext(ctx).
		Where("user_id = ? AND work_id = ?", userID, workID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *poolRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PoolEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.PoolEntry
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *poolRepo) ListAvailableByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string, limit int) ([]*types.PoolEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PoolEntry
	if userID == uuid.Nil || category == "" {
		return out, nil
	}
	q := t.WithContext(ctx).
		Where("user_id = ? AND category = ? AND status = ? AND active = ?",
			userID, category, types.PoolStatusAvailable, true).
		Order("confidence_score DESC").
		Order("last_recommended_at ASC NULLS FIRST")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *poolRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.PoolEntry{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *poolRepo) MarkRecommended(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&types.PoolEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              types.PoolStatusRecommended,
			"last_recommended_at": at,
			"times_recommended":   gorm.Expr("times_recommended + 1"),
		}).Error
}
