package services

import (
	"math"
	"testing"
)

func TestFuseScores(t *testing.T) {
	cases := []struct {
		name      string
		embedding float64
		llm       float64
		want      float64
	}{
		{"both perfect", 1.0, 1.0, 1.0},
		{"both zero", 0.0, 0.0, 0.0},
		{"llm dominates", 0.0, 1.0, 0.7},
		{"embedding alone", 1.0, 0.0, 0.3},
		{"mixed", 0.8, 0.6, 0.3*0.8 + 0.7*0.6},
		{"neutral llm fallback", 0.4, 0.5, 0.3*0.4 + 0.35},
	}
	for _, tc := range cases {
		got := FuseScores(tc.embedding, tc.llm)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: FuseScores(%v, %v) = %v, want %v", tc.name, tc.embedding, tc.llm, got, tc.want)
		}
	}
}

func TestFuseScoresDeterministic(t *testing.T) {
	a := FuseScores(0.731, 0.442)
	for i := 0; i < 100; i++ {
		if b := FuseScores(0.731, 0.442); b != a {
			t.Fatalf("fusion not deterministic: %v vs %v", a, b)
		}
	}
}

func TestFuseScoresClamps(t *testing.T) {
	if got := FuseScores(2.0, 2.0); got != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %v", got)
	}
	if got := FuseScores(-1.0, -1.0); got != 0.0 {
		t.Fatalf("expected clamp to 0.0, got %v", got)
	}
}
