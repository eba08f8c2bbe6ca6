package services

import (
	"context"
	"math"
	"testing"

	types "github.com/yungbote/dailylit-backend/internal/domain"
)

func TestFindSimilarRanksDescending(t *testing.T) {
	repo := newFakeWorkRepo()
	closest := embeddedWork(t, types.CategoryPoem, []float64{1, 0, 0})
	far := embeddedWork(t, types.CategoryPoem, []float64{0.6, 0.8, 0})
	unembedded := embeddedWork(t, types.CategoryPoem, nil)
	repo.embedded[types.CategoryPoem] = []*types.Work{far, closest, unembedded}

	svc := NewRetrievalService(testLogger(t), repo)
	user := userWithVector(t, []float64{1, 0, 0})

	got, err := svc.FindSimilar(context.Background(), user, types.CategoryPoem, 10)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 scored works, got %d", len(got))
	}
	if got[0].Work.ID != closest.ID {
		t.Fatalf("expected closest work first, got %s", got[0].Work.ID)
	}
	if got[0].Similarity < got[1].Similarity {
		t.Fatalf("results not descending: %v then %v", got[0].Similarity, got[1].Similarity)
	}
	if math.Abs(got[0].Similarity-1.0) > 1e-9 {
		t.Fatalf("identical vectors should score 1.0, got %v", got[0].Similarity)
	}
	if math.Abs(got[1].Similarity-0.6) > 1e-9 {
		t.Fatalf("expected similarity 0.6, got %v", got[1].Similarity)
	}
}

func TestFindSimilarTopK(t *testing.T) {
	repo := newFakeWorkRepo()
	for i := 0; i < 5; i++ {
		repo.embedded[types.CategoryEssay] = append(repo.embedded[types.CategoryEssay],
			embeddedWork(t, types.CategoryEssay, []float64{1, float64(i) / 10}))
	}
	svc := NewRetrievalService(testLogger(t), repo)

	got, err := svc.FindSimilar(context.Background(), userWithVector(t, []float64{1, 0}), types.CategoryEssay, 3)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected topK=3 results, got %d", len(got))
	}
}

func TestFindSimilarWithoutUserVector(t *testing.T) {
	repo := newFakeWorkRepo()
	repo.embedded[types.CategoryPoem] = []*types.Work{embeddedWork(t, types.CategoryPoem, []float64{1, 0})}
	svc := NewRetrievalService(testLogger(t), repo)

	got, err := svc.FindSimilar(context.Background(), userWithVector(t, nil), types.CategoryPoem, 10)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("user without vector should yield no results, got %d", len(got))
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Fatalf("orthogonal vectors should score 0, got %v", got)
	}
	if got := cosineSimilarity([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Fatalf("zero-norm vector should score 0, got %v", got)
	}
	got := cosineSimilarity([]float64{1, 1}, []float64{1, 1})
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("identical vectors should score 1.0, got %v", got)
	}
}
