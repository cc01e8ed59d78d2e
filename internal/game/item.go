package game

import (
	"math/rand/v2"
	"time"
)

// Item is one multiple-choice question.
type Item struct {
	ID      string
	Prompt  string
	Options []string

	// CorrectIndex is the index of the right option. It is only consulted
	// when Answer is empty.
	CorrectIndex int
	// Answer is the right option's text.
	Answer string

	// Meta carries generator annotations. Meta["word"] is the item's
	// review key when present.
	Meta map[string]string

	// StartTime is stamped when the item becomes the head of the buffer.
	StartTime time.Time
}

// IsCorrect reports whether choosing option idx answers the item.
// An out-of-range index is wrong.
func (it *Item) IsCorrect(idx int) bool {
	if idx < 0 || idx >= len(it.Options) {
		return false
	}
	if it.Answer != "" {
		return it.Options[idx] == it.Answer
	}
	return idx == it.CorrectIndex
}

// ContentKey returns the key the item is tracked under for review.
func (it *Item) ContentKey() string {
	if w := it.Meta["word"]; w != "" {
		return w
	}
	if it.Answer != "" {
		return it.Answer
	}
	if it.CorrectIndex >= 0 && it.CorrectIndex < len(it.Options) {
		return it.Options[it.CorrectIndex]
	}
	return it.ID
}

// Chosen returns the text of option idx, or "" when out of range.
func (it *Item) Chosen(idx int) string {
	if idx < 0 || idx >= len(it.Options) {
		return ""
	}
	return it.Options[idx]
}

// GenerateFunc produces one item at level. It must be deterministic for a
// given rng state.
type GenerateFunc func(level int, categoryID string, hardMode bool, rng *rand.Rand) Item

// FiniteSetFunc produces the full item list of a finite category.
type FiniteSetFunc func(categoryID, challengeID string) []Item

// Hooks are optional callbacks into the caller.
type Hooks struct {
	// OnAnswer is called for every scored answer, including forced misses
	// and shield saves, but not for tutorial misses or skips.
	OnAnswer func(item Item, correct bool, responseTimeMs int)

	// OnConsumeShield is called exactly once per shield-saved miss.
	OnConsumeShield func()

	// StreakShields reports how many shields the player holds.
	StreakShields func() int
}
