package domain

import (
	"testing"
	"time"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		if !ValidCategory(c) {
			t.Fatalf("%q should be valid", c)
		}
	}
	for _, c := range []string{"", "novel", "POEM", "short story"} {
		if ValidCategory(c) {
			t.Fatalf("%q should be invalid", c)
		}
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	stamp := time.Date(2025, 3, 1, 2, 30, 0, 0, loc) // 2025-02-28 17:30 UTC
	got := DateOf(stamp)
	want := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOf = %v, want %v", got, want)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("date must be truncated to midnight, got %v", got)
	}
}

func TestEmbeddingRoundTrip(t *testing.T) {
	w := &Work{}
	if _, ok := w.Embedding(); ok {
		t.Fatal("missing vector should report !ok")
	}
	vec := []float64{0.25, -1, 3.5}
	if err := w.SetEmbedding(vec); err != nil {
		t.Fatalf("SetEmbedding: %v", err)
	}
	got, ok := w.Embedding()
	if !ok {
		t.Fatal("expected a vector")
	}
	if len(got) != len(vec) || got[0] != 0.25 || got[2] != 3.5 {
		t.Fatalf("vector mangled: %v", got)
	}
}
