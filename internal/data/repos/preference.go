package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type UserPreferenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserPreference) ([]*types.UserPreference, error)
	ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserPreference, error)
	DeactivateByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) UserPreferenceRepo {
	return &userPreferenceRepo{db: db, log: baseLog.With("repo", "UserPreferenceRepo")}
}

func (r *userPreferenceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserPreference) ([]*types.UserPreference, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.UserPreference{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userPreferenceRepo) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserPreference, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserPreference
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userPreferenceRepo) DeactivateByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.UserPreference{}).
		Where("user_id = ?", userID).
		Update("active", false).Error
}
