package services

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/dailylit-backend/internal/domain"
)

func TestBasicConfidence(t *testing.T) {
	cases := []struct {
		name string
		user *types.User
		work *types.Work
		want float64
	}{
		{
			name: "exact difficulty and band match",
			user: &types.User{DifficultyPreference: types.DifficultyIntermediate, PreferredLength: types.LengthMedium, AdventurousnessLevel: 0.5},
			work: &types.Work{DifficultyLevel: types.DifficultyIntermediate, EstimatedReadingTime: 10},
			want: 0.85,
		},
		{
			name: "adventurousness exactly 0.7 earns no bonus",
			user: &types.User{DifficultyPreference: types.DifficultyAdvanced, PreferredLength: types.LengthLong, AdventurousnessLevel: 0.7},
			work: &types.Work{DifficultyLevel: types.DifficultyAdvanced, EstimatedReadingTime: 30},
			want: 0.85,
		},
		{
			name: "adventurousness above 0.7 earns bonus",
			user: &types.User{DifficultyPreference: types.DifficultyAdvanced, PreferredLength: types.LengthLong, AdventurousnessLevel: 0.71},
			work: &types.Work{DifficultyLevel: types.DifficultyAdvanced, EstimatedReadingTime: 30},
			want: 0.95,
		},
		{
			name: "cautious beginner bonus",
			user: &types.User{DifficultyPreference: types.DifficultyBeginner, PreferredLength: types.LengthShort, AdventurousnessLevel: 0.2},
			work: &types.Work{DifficultyLevel: types.DifficultyBeginner, EstimatedReadingTime: 4},
			want: 0.95,
		},
		{
			name: "adjacent tier for beginner",
			user: &types.User{DifficultyPreference: types.DifficultyBeginner, PreferredLength: types.LengthLong, AdventurousnessLevel: 0.5},
			work: &types.Work{DifficultyLevel: types.DifficultyIntermediate, EstimatedReadingTime: 10},
			want: 0.6,
		},
		{
			name: "intermediate reader small nudge",
			user: &types.User{DifficultyPreference: types.DifficultyIntermediate, PreferredLength: types.LengthLong, AdventurousnessLevel: 0.5},
			work: &types.Work{DifficultyLevel: types.DifficultyAdvanced, EstimatedReadingTime: 10},
			want: 0.55,
		},
		{
			name: "missing reading time counts as 10 minutes",
			user: &types.User{DifficultyPreference: types.DifficultyAdvanced, PreferredLength: types.LengthMedium, AdventurousnessLevel: 0.5},
			work: &types.Work{DifficultyLevel: types.DifficultyBeginner, EstimatedReadingTime: 0},
			want: 0.65,
		},
	}
	for _, tc := range cases {
		got := BasicConfidence(tc.user, tc.work)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: BasicConfidence = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBasicCandidatesCoverAllCategories(t *testing.T) {
	repo := newFakeWorkRepo()
	for _, category := range types.Categories() {
		w := embeddedWork(t, category, nil)
		w.DifficultyLevel = types.DifficultyIntermediate
		w.EstimatedReadingTime = 10
		repo.active[category] = []*types.Work{w}
	}
	svc := &poolService{
		log:      testLogger(t),
		workRepo: repo,
	}

	user := userWithVector(t, nil)
	got, err := svc.basicCandidates(context.Background(), user)
	if err != nil {
		t.Fatalf("basicCandidates: %v", err)
	}
	if len(got) != len(types.Categories()) {
		t.Fatalf("expected one candidate per category, got %d", len(got))
	}
	for _, c := range got {
		if c.reason != reasonBasic {
			t.Fatalf("expected reason %q, got %q", reasonBasic, c.reason)
		}
		if c.confidence <= basicThreshold {
			t.Fatalf("admitted candidate below threshold: %v", c.confidence)
		}
	}
}

func TestHybridCandidatesRequiresUserVector(t *testing.T) {
	svc := &poolService{log: testLogger(t)}
	_, err := svc.hybridCandidates(context.Background(), userWithVector(t, nil))
	if err != errNoUserVector {
		t.Fatalf("expected errNoUserVector, got %v", err)
	}
}

func TestAdvisoryLockKeyStable(t *testing.T) {
	u := userWithVector(t, nil)
	a := advisoryLockKey(u.ID)
	b := advisoryLockKey(u.ID)
	if a != b {
		t.Fatalf("lock key not stable: %d vs %d", a, b)
	}
	other := userWithVector(t, nil)
	if advisoryLockKey(other.ID) == a {
		t.Fatalf("distinct users should hash to distinct lock keys")
	}
}

type fakeRetrieval struct {
	byCategory map[string][]ScoredWork
}

func (f *fakeRetrieval) FindSimilar(ctx context.Context, user *types.User, category string, topK int) ([]ScoredWork, error) {
	out := f.byCategory[category]
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

type fakeRerank struct {
	scores map[uuid.UUID]float64
}

func (f *fakeRerank) Score(ctx context.Context, preferenceSummary string, candidates []*types.Work) map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(candidates))
	for _, w := range candidates {
		score, ok := f.scores[w.ID]
		if !ok {
			score = neutralScore
		}
		out[w.ID] = score
	}
	return out
}

func TestHybridCandidatesFusesAndTrims(t *testing.T) {
	weak := embeddedWork(t, types.CategoryPoem, []float64{1})
	strong := embeddedWork(t, types.CategoryPoem, []float64{1})

	retrieval := &fakeRetrieval{byCategory: map[string][]ScoredWork{
		types.CategoryPoem: {
			{Work: weak, Similarity: 0.9},
			{Work: strong, Similarity: 0.4},
		},
	}}
	rerank := &fakeRerank{scores: map[uuid.UUID]float64{
		weak.ID:   0.1,
		strong.ID: 0.95,
	}}

	svc := &poolService{
		log:                 testLogger(t),
		retrieval:           retrieval,
		rerank:              rerank,
		candidateLimit:      DefaultCandidateLimit,
		poolSizePerCategory: 1,
	}

	user := userWithVector(t, []float64{1})
	user.PreferenceSummary = "likes poems"

	got, err := svc.hybridCandidates(context.Background(), user)
	if err != nil {
		t.Fatalf("hybridCandidates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected pool trimmed to 1 per category, got %d", len(got))
	}
	if got[0].work.ID != strong.ID {
		t.Fatalf("rerank-favored work should win despite weaker similarity")
	}
	want := FuseScores(0.4, 0.95)
	if math.Abs(got[0].confidence-want) > 1e-9 {
		t.Fatalf("fused confidence = %v, want %v", got[0].confidence, want)
	}
	if got[0].reason != reasonHybrid {
		t.Fatalf("expected reason %q, got %q", reasonHybrid, got[0].reason)
	}
}
