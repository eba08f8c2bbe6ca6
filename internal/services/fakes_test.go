package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeGeminiClient struct {
	embedFn    func(ctx context.Context, text, taskType string) ([]float64, error)
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (c *fakeGeminiClient) EmbedContent(ctx context.Context, text, taskType string) ([]float64, error) {
	return c.embedFn(ctx, text, taskType)
}

func (c *fakeGeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.generateFn(ctx, prompt)
}

// fakeWorkRepo serves canned catalog slices and records embedding writes.
type fakeWorkRepo struct {
	active   map[string][]*types.Work
	embedded map[string][]*types.Work
	missing  []*types.Work
	updated  map[uuid.UUID]datatypes.JSON
}

func newFakeWorkRepo() *fakeWorkRepo {
	return &fakeWorkRepo{
		active:   map[string][]*types.Work{},
		embedded: map[string][]*types.Work{},
		updated:  map[uuid.UUID]datatypes.JSON{},
	}
}

func (r *fakeWorkRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Work) ([]*types.Work, error) {
	return rows, nil
}

func (r *fakeWorkRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Work, error) {
	for _, works := range r.active {
		for _, w := range works {
			if w.ID == id {
				return w, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeWorkRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Work, error) {
	var out []*types.Work
	for _, id := range ids {
		w, _ := r.GetByID(ctx, tx, id)
		if w != nil {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkRepo) GetByTitleAndAuthor(ctx context.Context, tx *gorm.DB, title, author string) (*types.Work, error) {
	return nil, nil
}

func (r *fakeWorkRepo) ListActiveByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Work, error) {
	if category == "" {
		var out []*types.Work
		for _, c := range types.Categories() {
			out = append(out, r.active[c]...)
		}
		return out, nil
	}
	return r.active[category], nil
}

func (r *fakeWorkRepo) ListEmbedded(ctx context.Context, tx *gorm.DB, category string) ([]*types.Work, error) {
	return r.embedded[category], nil
}

func (r *fakeWorkRepo) ListMissingEmbedding(ctx context.Context, tx *gorm.DB) ([]*types.Work, error) {
	return r.missing, nil
}

func (r *fakeWorkRepo) UpdateEmbedding(ctx context.Context, tx *gorm.DB, id uuid.UUID, vector datatypes.JSON) error {
	r.updated[id] = vector
	return nil
}

func embeddedWork(tb testing.TB, category string, vec []float64) *types.Work {
	tb.Helper()
	w := &types.Work{
		ID:       uuid.New(),
		Title:    "t",
		Author:   "a",
		Category: category,
		Active:   true,
	}
	if vec != nil {
		if err := w.SetEmbedding(vec); err != nil {
			tb.Fatalf("set embedding: %v", err)
		}
	}
	return w
}

func userWithVector(tb testing.TB, vec []float64) *types.User {
	tb.Helper()
	u := &types.User{
		ID:                   uuid.New(),
		AdventurousnessLevel: 0.5,
		DifficultyPreference: types.DifficultyIntermediate,
		PreferredLength:      types.LengthMedium,
		Active:               true,
	}
	if vec != nil {
		if err := u.SetEmbedding(vec); err != nil {
			tb.Fatalf("set user embedding: %v", err)
		}
	}
	return u
}
