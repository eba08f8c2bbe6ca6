package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type WorkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Work) ([]*types.Work, error)

	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Work, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Work, error)
	GetByTitleAndAuthor(ctx context.Context, tx *gorm.DB, title, author string) (*types.Work, error)

	ListActiveByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Work, error)

	// ListEmbedded returns active works carrying a non-null embedding, in a
	// stable catalog order so retrieval ties break deterministically.
	ListEmbedded(ctx context.Context, tx *gorm.DB, category string) ([]*types.Work, error)
	ListMissingEmbedding(ctx context.Context, tx *gorm.DB) ([]*types.Work, error)

	UpdateEmbedding(ctx context.Context, tx *gorm.DB, id uuid.UUID, vector datatypes.JSON) error
}

type workRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkRepo(db *gorm.DB, baseLog *logger.Logger) WorkRepo {
	return &workRepo{db: db, log: baseLog.With("repo", "WorkRepo")}
}

func (r *workRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Work) ([]*types.Work, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Work{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Work, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *workRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Work, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Work
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workRepo) GetByTitleAndAuthor(ctx context.Context, tx *gorm.DB, title, author string) (*types.Work, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Work
	if err := t.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *workRepo) ListActiveByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Work, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Work
	q := t.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workRepo) ListEmbedded(ctx context.Context, tx *gorm.DB, category string) ([]*types.Work, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Work
	q := t.WithContext(ctx).Where("active = ? AND embedding_vector IS NOT NULL", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workRepo) ListMissingEmbedding(ctx context.Context, tx *gorm.DB) ([]*types.Work, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Work
	if err := t.WithContext(ctx).
		Where("active = ? AND embedding_vector IS NULL", true).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workRepo) UpdateEmbedding(ctx context.Context, tx *gorm.DB, id uuid.UUID, vector datatypes.JSON) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&types.Work{}).
		Where("id = ?", id).
		Update("embedding_vector", vector).Error
}
