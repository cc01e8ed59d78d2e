package leitner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRecordAttempt_FirstCorrectGoesToBoxOne(t *testing.T) {
	s := NewScheduler()
	r := s.RecordAttempt("cat", "cvc", true, 1200, t0)

	if r.Box != 1 {
		t.Errorf("Box = %d, want 1", r.Box)
	}
	if r.Correct != 1 || r.Attempts != 1 {
		t.Errorf("Correct/Attempts = %d/%d, want 1/1", r.Correct, r.Attempts)
	}
	if r.Mastered() {
		t.Error("first success must not be mastery")
	}
	if !r.NextReview.Equal(t0.Add(24 * time.Hour)) {
		t.Errorf("NextReview = %v, want %v", r.NextReview, t0.Add(24*time.Hour))
	}
	assert.Equal(t, 0, s.MasteredCount())
}

func TestRecordAttempt_FirstMissStaysAtBoxZero(t *testing.T) {
	s := NewScheduler()
	r := s.RecordAttempt("said", "sight", false, 4000, t0)

	assert.Equal(t, 0, r.Box)
	assert.Equal(t, 1, r.Attempts)
	assert.Equal(t, 0, r.Correct)
	assert.True(t, r.LastCorrect.IsZero())
	assert.Equal(t, t0.Add(5*time.Minute), r.NextReview)
	assert.Equal(t, 4000, r.LastResponseMs)
}

func TestRecordAttempt_BoxRisesAtMostOnePerCorrect(t *testing.T) {
	s := NewScheduler()
	now := t0
	prev := 0
	for i := 0; i < 10; i++ {
		r := s.RecordAttempt("ship", "digraphs", true, 1000, now)
		if r.Box-prev > 1 {
			t.Fatalf("attempt %d: box jumped %d -> %d", i+1, prev, r.Box)
		}
		if r.Box > MaxBox {
			t.Fatalf("attempt %d: box %d above MaxBox", i+1, r.Box)
		}
		prev = r.Box
		now = now.Add(time.Hour)
	}
	assert.Equal(t, MaxBox, prev)
	assert.Equal(t, 1, s.MasteredCount())
}

func TestRecordAttempt_MissDemotes(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 4; i++ {
		s.RecordAttempt("boat", "vowel-teams", true, 1000, t0)
	}
	r, _ := s.Record("boat")
	require.Equal(t, 4, r.Box)

	r = s.RecordAttempt("boat", "vowel-teams", false, 1000, t0)
	assert.Equal(t, 2, r.Box)

	r = s.RecordAttempt("boat", "vowel-teams", false, 1000, t0)
	assert.Equal(t, 0, r.Box)

	r = s.RecordAttempt("boat", "vowel-teams", false, 1000, t0)
	assert.Equal(t, 0, r.Box, "box must not go negative")
}

func TestNextReviewAfterLastSeen(t *testing.T) {
	for box := 0; box <= MaxBox; box++ {
		if Interval(box) <= 0 {
			t.Errorf("Interval(%d) = %v, want > 0", box, Interval(box))
		}
		if box > 0 && Interval(box) <= Interval(box-1) {
			t.Errorf("Interval(%d) = %v, not greater than Interval(%d) = %v", box, Interval(box), box-1, Interval(box-1))
		}
	}

	s := NewScheduler()
	now := t0
	for i, correct := range []bool{true, false, true, true, true, true, false, true} {
		r := s.RecordAttempt("tree", "blends", correct, 900, now)
		if !r.NextReview.After(r.LastSeen) {
			t.Errorf("attempt %d: NextReview %v not after LastSeen %v", i+1, r.NextReview, r.LastSeen)
		}
		now = now.Add(10 * time.Minute)
	}
}

func TestInterval_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 5*time.Minute, Interval(-1))
	assert.Equal(t, 21*24*time.Hour, Interval(99))
}

func TestInterval_StrictlyIncreasing(t *testing.T) {
	for box := 1; box <= MaxBox; box++ {
		if Interval(box) <= Interval(box-1) {
			t.Errorf("Interval(%d) = %v, not after Interval(%d) = %v", box, Interval(box), box-1, Interval(box-1))
		}
	}
}

func TestReviewQueue_OrderingAndExclusion(t *testing.T) {
	s := NewScheduler()

	// Missed one hour apart: due 5 minutes after each.
	s.RecordAttempt("rain", "vowel-teams", false, 1000, t0)
	s.RecordAttempt("said", "sight", false, 1000, t0.Add(-time.Hour))

	// Correct: due tomorrow, must not appear.
	s.RecordAttempt("cat", "cvc", true, 1000, t0)

	now := t0.Add(10 * time.Minute)
	assert.Equal(t, []string{"said", "rain"}, s.ReviewQueue(now))
	assert.Equal(t, []string{"rain"}, s.ReviewQueueFor("vowel-teams", now))

	// Tomorrow everything is due.
	later := t0.Add(25 * time.Hour)
	assert.Equal(t, []string{"said", "rain", "cat"}, s.ReviewQueue(later))
}

func TestReviewQueue_TiesByLowerBoxThenKey(t *testing.T) {
	due := t0.Add(-time.Minute)
	s := NewScheduler()
	s.Load(nil)
	s.records["b-high"] = &WordRecord{Key: "b-high", Box: 3, NextReview: due}
	s.records["a-high"] = &WordRecord{Key: "a-high", Box: 3, NextReview: due}
	s.records["z-low"] = &WordRecord{Key: "z-low", Box: 0, NextReview: due}

	assert.Equal(t, []string{"z-low", "a-high", "b-high"}, s.ReviewQueue(t0))
}

func TestReviewQueue_ExactlyDueKeys(t *testing.T) {
	s := NewScheduler()
	now := t0
	for i, key := range []string{"a", "b", "c", "d", "e", "f"} {
		s.RecordAttempt(key, "cvc", i%2 == 0, 1000, now.Add(-time.Duration(i)*time.Hour))
	}

	queue := s.ReviewQueue(now)
	inQueue := map[string]bool{}
	for _, k := range queue {
		inQueue[k] = true
	}
	for _, r := range s.Records() {
		if r.IsDue(now) != inQueue[r.Key] {
			t.Errorf("key %s: due=%v, in queue=%v", r.Key, r.IsDue(now), inQueue[r.Key])
		}
	}
	for i := 1; i < len(queue); i++ {
		a, _ := s.Record(queue[i-1])
		b, _ := s.Record(queue[i])
		if b.NextReview.Before(a.NextReview) {
			t.Errorf("queue not sorted at %d: %v before %v", i, b.NextReview, a.NextReview)
		}
	}
}

func TestHardestWords(t *testing.T) {
	s := NewScheduler()
	record := func(key string, pattern ...bool) {
		for _, c := range pattern {
			s.RecordAttempt(key, "tricky", c, 1000, t0)
		}
	}

	record("because", false, false, true)
	record("friend", false, true, true)
	record("people", false, false, true, false, true, true)
	record("could", false, false, false, true, true, true)
	record("the", false)

	// because 1/3, could and people 3/6 (tie broken by key), friend 2/3.
	// "the" has too few attempts.

	got := s.HardestWords(0)
	assert.Equal(t, []string{"because", "could", "people", "friend"}, got)

	assert.Equal(t, []string{"because", "could"}, s.HardestWords(2))
	assert.NotContains(t, got, "the")
}

func TestHardestWords_TieBreaksOnAttempts(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 3; i++ {
		s.RecordAttempt("few", "sight", false, 1000, t0)
	}
	for i := 0; i < 5; i++ {
		s.RecordAttempt("many", "sight", false, 1000, t0)
	}
	assert.Equal(t, []string{"many", "few"}, s.HardestWords(0))
}

func TestLoadAndSnapshotData(t *testing.T) {
	s := NewScheduler()
	s.RecordAttempt("cat", "cvc", true, 800, t0)
	s.RecordAttempt("said", "sight", false, 3000, t0)

	data := s.SnapshotData()
	require.Len(t, data, 2)
	assert.Equal(t, "cat", data[0].Word)

	restored := NewScheduler()
	restored.Load(data)
	assert.Equal(t, s.Records(), restored.Records())

	// The restored scheduler keeps counting from the persisted state.
	r := restored.RecordAttempt("cat", "cvc", true, 800, t0.Add(time.Hour))
	assert.Equal(t, 2, r.Box)
	assert.Equal(t, 2, r.Attempts)
}

func TestRecordReturnsCopy(t *testing.T) {
	s := NewScheduler()
	r := s.RecordAttempt("cat", "cvc", true, 800, t0)
	r.Box = 4

	got, ok := s.Record("cat")
	require.True(t, ok)
	assert.Equal(t, 1, got.Box)

	_, ok = s.Record("missing")
	assert.False(t, ok)
}

func TestBoxCounts(t *testing.T) {
	s := NewScheduler()
	s.RecordAttempt("a", "cvc", true, 800, t0)
	s.RecordAttempt("b", "cvc", false, 800, t0)
	s.RecordAttempt("c", "cvc", true, 800, t0)

	counts := s.BoxCounts()
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 2, counts[1])
}
