package services

import (
	"strings"
	"testing"

	types "github.com/yungbote/dailylit-backend/internal/domain"
)

func TestBuildSummaryBase(t *testing.T) {
	svc := &preferenceService{log: testLogger(t)}

	user := &types.User{
		DifficultyPreference: types.DifficultyAdvanced,
		PreferredLength:      types.LengthLong,
		AdventurousnessLevel: 0.9,
	}
	got := svc.BuildSummary(user, nil)
	want := "Prefers complex and intellectually demanding literature and longer works (20+ minutes). Loves exploring new genres and experimental literature."
	if got != want {
		t.Fatalf("BuildSummary = %q, want %q", got, want)
	}
}

func TestBuildSummaryLists(t *testing.T) {
	svc := &preferenceService{log: testLogger(t)}

	user := &types.User{
		DifficultyPreference: types.DifficultyIntermediate,
		PreferredLength:      types.LengthMedium,
		AdventurousnessLevel: 0.5,
	}
	prefs := []*types.UserPreference{
		{PreferenceType: "book", PreferenceValue: "Dune"},
		{PreferenceType: "book", PreferenceValue: "Hyperion"},
		{PreferenceType: "author", PreferenceValue: "Ursula K. Le Guin"},
		{PreferenceType: "interest", PreferenceValue: "sailing"},
		{PreferenceType: "interest", PreferenceValue: "astronomy"},
		{PreferenceType: "interest", PreferenceValue: "chess"},
		{PreferenceType: "avoid", PreferenceValue: "war"},
	}
	got := svc.BuildSummary(user, prefs)

	for _, fragment := range []string{
		"Prefers moderately challenging literature and medium-length pieces (10-20 minutes).",
		"Enjoys a mix of familiar and new literary experiences.",
		"Favorite books include: Dune, and Hyperion.",
		"Enjoys works by Ursula K. Le Guin.",
		"Other interests include: sailing, astronomy, and chess.",
		"Prefers to avoid: war.",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("summary missing %q:\n%s", fragment, got)
		}
	}
}

func TestBuildSummaryUnknownTiersFallBack(t *testing.T) {
	svc := &preferenceService{log: testLogger(t)}

	got := svc.BuildSummary(&types.User{AdventurousnessLevel: 0.5}, nil)
	if !strings.Contains(got, "moderately challenging") {
		t.Fatalf("unknown difficulty should fall back to intermediate phrasing:\n%s", got)
	}
	if !strings.Contains(got, "medium-length pieces") {
		t.Fatalf("unknown length should fall back to medium phrasing:\n%s", got)
	}
}

func TestJoinList(t *testing.T) {
	if got := joinList([]string{"a"}); got != "a" {
		t.Fatalf("joinList single = %q", got)
	}
	if got := joinList([]string{"a", "b"}); got != "a, and b" {
		t.Fatalf("joinList pair = %q", got)
	}
	if got := joinList([]string{"a", "b", "c"}); got != "a, b, and c" {
		t.Fatalf("joinList triple = %q", got)
	}
}
