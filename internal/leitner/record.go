package leitner

import "time"

// intervals is the review delay for each box. Box 0 comes back almost
// immediately; box MaxBox is the mastered cadence.
var intervals = [MaxBox + 1]time.Duration{
	5 * time.Minute,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	21 * 24 * time.Hour,
}

// MaxBox is the top (mastered) box.
const MaxBox = 4

// MissDemotion is how many boxes a miss drops a word.
const MissDemotion = 2

// MinAttempts is the attempt count a word needs before it can rank among
// the hardest words.
const MinAttempts = 3

// Interval returns the review delay for box, clamped to the table.
func Interval(box int) time.Duration {
	if box < 0 {
		box = 0
	}
	if box >= len(intervals) {
		box = len(intervals) - 1
	}
	return intervals[box]
}

// WordRecord is the review history of one word.
type WordRecord struct {
	Key            string    `json:"key"`
	Category       string    `json:"category"`
	Attempts       int       `json:"attempts"`
	Correct        int       `json:"correct"`
	LastSeen       time.Time `json:"last_seen"`
	LastCorrect    time.Time `json:"last_correct,omitempty"`
	Box            int       `json:"box"`
	NextReview     time.Time `json:"next_review"`
	LastResponseMs int       `json:"last_response_ms"`
}

// Accuracy returns Correct/Attempts, or 0 for an unseen word.
func (r *WordRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// IsDue reports whether the word is due at now (at or past NextReview).
func (r *WordRecord) IsDue(now time.Time) bool {
	return !now.Before(r.NextReview)
}

// Mastered reports whether the word sits in the top box.
func (r *WordRecord) Mastered() bool {
	return r.Box >= MaxBox
}

// apply folds one attempt into the record.
func (r *WordRecord) apply(correct bool, responseTimeMs int, now time.Time) {
	r.Attempts++
	if correct {
		r.Correct++
		r.LastCorrect = now
		r.Box = min(r.Box+1, MaxBox)
	} else {
		r.Box = max(r.Box-MissDemotion, 0)
	}
	r.LastSeen = now
	r.LastResponseMs = responseTimeMs
	r.NextReview = r.LastSeen.Add(Interval(r.Box))
}
