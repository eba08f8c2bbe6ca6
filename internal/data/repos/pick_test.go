package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dailylit-backend/internal/data/repos/testutil"
	types "github.com/yungbote/dailylit-backend/internal/domain"
)

func TestPickGetByUserCategoryDate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewDailyPickRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx)
	day := types.DateOf(time.Now().UTC())

	pick := &types.DailyPick{
		ID:       uuid.New(),
		UserID:   user.ID,
		WorkID:   uuid.New(),
		Category: types.CategoryShortStory,
		Date:     day,
		Status:   types.PickStatusUnread,
	}
	if err := repo.Create(ctx, tx, pick); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByUserCategoryDate(ctx, tx, user.ID, types.CategoryShortStory, day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != pick.ID {
		t.Fatalf("expected pick %s, got %+v", pick.ID, got)
	}

	if got, _ := repo.GetByUserCategoryDate(ctx, tx, user.ID, types.CategoryPoem, day); got != nil {
		t.Fatalf("different category should have no pick, got %s", got.ID)
	}
}

func TestPickUniquePerUserCategoryDate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewDailyPickRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx)
	day := types.DateOf(time.Now().UTC())

	first := &types.DailyPick{
		ID:       uuid.New(),
		UserID:   user.ID,
		WorkID:   uuid.New(),
		Category: types.CategoryPoem,
		Date:     day,
		Status:   types.PickStatusUnread,
	}
	if err := repo.Create(ctx, tx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	duplicate := &types.DailyPick{
		ID:       uuid.New(),
		UserID:   user.ID,
		WorkID:   uuid.New(),
		Category: types.CategoryPoem,
		Date:     day,
		Status:   types.PickStatusUnread,
	}
	if err := repo.Create(ctx, tx, duplicate); err == nil {
		t.Fatal("second pick for same (user, category, date) must violate the unique index")
	}
}

func TestPickUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewDailyPickRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx)
	pick := &types.DailyPick{
		ID:       uuid.New(),
		UserID:   user.ID,
		WorkID:   uuid.New(),
		Category: types.CategoryEssay,
		Date:     types.DateOf(time.Now().UTC()),
		Status:   types.PickStatusUnread,
	}
	if err := repo.Create(ctx, tx, pick); err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now().UTC()
	err := repo.UpdateFields(ctx, tx, pick.ID, map[string]interface{}{
		"status":       types.PickStatusCompleted,
		"completed_at": now,
		"rating":       5,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, pick.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != types.PickStatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at not stamped")
	}
	if got.Rating == nil || *got.Rating != 5 {
		t.Fatalf("rating = %v, want 5", got.Rating)
	}
}
