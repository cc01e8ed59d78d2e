// Package leitner tracks per-word mastery in five Leitner boxes and derives
// the due-for-review queue and the hardest-words ranking from it.
package leitner

import (
	"sort"
	"time"
)

// Scheduler holds every word record. Queues are derived on demand from the
// records and never cached.
type Scheduler struct {
	records map[string]*WordRecord
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{records: make(map[string]*WordRecord)}
}

// RecordAttempt folds one answer into the word's record, creating it at
// box 0 on first sight. It returns a copy of the updated record.
func (s *Scheduler) RecordAttempt(key, category string, correct bool, responseTimeMs int, now time.Time) WordRecord {
	r := s.records[key]
	if r == nil {
		r = &WordRecord{Key: key, Category: category}
		s.records[key] = r
	}
	if category != "" {
		r.Category = category
	}
	r.apply(correct, responseTimeMs, now)
	return *r
}

// Record returns a copy of the record for key.
func (s *Scheduler) Record(key string) (WordRecord, bool) {
	r, ok := s.records[key]
	if !ok {
		return WordRecord{}, false
	}
	return *r, true
}

// Records returns copies of all records sorted by key.
func (s *Scheduler) Records() []WordRecord {
	out := make([]WordRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of tracked words.
func (s *Scheduler) Len() int {
	return len(s.records)
}

// ReviewQueue returns the keys due at now, oldest due first. Ties go to the
// lower box, then to the key.
func (s *Scheduler) ReviewQueue(now time.Time) []string {
	return s.reviewQueue(now, func(*WordRecord) bool { return true })
}

// ReviewQueueFor is ReviewQueue restricted to one category.
func (s *Scheduler) ReviewQueueFor(category string, now time.Time) []string {
	return s.reviewQueue(now, func(r *WordRecord) bool { return r.Category == category })
}

func (s *Scheduler) reviewQueue(now time.Time, keep func(*WordRecord) bool) []string {
	var due []*WordRecord
	for _, r := range s.records {
		if r.IsDue(now) && keep(r) {
			due = append(due, r)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if !a.NextReview.Equal(b.NextReview) {
			return a.NextReview.Before(b.NextReview)
		}
		if a.Box != b.Box {
			return a.Box < b.Box
		}
		return a.Key < b.Key
	})

	keys := make([]string, len(due))
	for i, r := range due {
		keys[i] = r.Key
	}
	return keys
}

// HardestWords ranks words with at least MinAttempts attempts by ascending
// accuracy. Ties go to the word with more attempts, then to the key.
// A limit of 0 or less returns every qualifying word.
func (s *Scheduler) HardestWords(limit int) []string {
	var cands []*WordRecord
	for _, r := range s.records {
		if r.Attempts >= MinAttempts {
			cands = append(cands, r)
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		// Compare Correct/Attempts without float rounding.
		lhs, rhs := a.Correct*b.Attempts, b.Correct*a.Attempts
		if lhs != rhs {
			return lhs < rhs
		}
		if a.Attempts != b.Attempts {
			return a.Attempts > b.Attempts
		}
		return a.Key < b.Key
	})

	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	keys := make([]string, len(cands))
	for i, r := range cands {
		keys[i] = r.Key
	}
	return keys
}

// MasteredCount returns the number of words in the top box.
func (s *Scheduler) MasteredCount() int {
	n := 0
	for _, r := range s.records {
		if r.Mastered() {
			n++
		}
	}
	return n
}

// BoxCounts returns how many words sit in each box.
func (s *Scheduler) BoxCounts() [MaxBox + 1]int {
	var counts [MaxBox + 1]int
	for _, r := range s.records {
		counts[min(max(r.Box, 0), MaxBox)]++
	}
	return counts
}
