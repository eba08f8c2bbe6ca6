package domain

import "time"

// Work categories form a closed set. Recommendations are always generated
// per category, so anything outside this list never enters the pipeline.
const (
	CategoryPoem       = "poem"
	CategoryShortStory = "short_story"
	CategoryEssay      = "essay"
)

func Categories() []string {
	return []string{CategoryPoem, CategoryShortStory, CategoryEssay}
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryPoem, CategoryShortStory, CategoryEssay:
		return true
	}
	return false
}

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// Pool entry lifecycle. Within a selection cycle the only legal transition is
// available -> recommended; a full repopulation recreates entries fresh.
const (
	PoolStatusAvailable   = "available"
	PoolStatusRecommended = "recommended"
	PoolStatusExhausted   = "exhausted"
)

const (
	PickStatusUnread     = "unread"
	PickStatusInProgress = "in_progress"
	PickStatusCompleted  = "completed"
)

// DateOf truncates a timestamp to its UTC calendar date, the granularity
// daily picks are keyed on.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
