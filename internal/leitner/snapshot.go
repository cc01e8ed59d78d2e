package leitner

import "github.com/njytim-cyber/spelling-bee-sub001/internal/store"

// Load replaces the scheduler's records with persisted data.
func (s *Scheduler) Load(data []store.WordRecordData) {
	s.records = make(map[string]*WordRecord, len(data))
	for _, d := range data {
		if d.Word == "" {
			continue
		}
		r := FromData(d)
		s.records[r.Key] = &r
	}
}

// SnapshotData exports every record for persistence, sorted by key.
func (s *Scheduler) SnapshotData() []store.WordRecordData {
	recs := s.Records()
	out := make([]store.WordRecordData, len(recs))
	for i, r := range recs {
		out[i] = r.Data()
	}
	return out
}

// Data converts a record to its persisted form.
func (r WordRecord) Data() store.WordRecordData {
	return store.WordRecordData{
		Word:           r.Key,
		Category:       r.Category,
		Attempts:       r.Attempts,
		Correct:        r.Correct,
		Box:            r.Box,
		LastSeen:       r.LastSeen,
		LastCorrect:    r.LastCorrect,
		NextReview:     r.NextReview,
		LastResponseMs: r.LastResponseMs,
	}
}

// FromData converts a persisted record, clamping the box into range.
func FromData(d store.WordRecordData) WordRecord {
	return WordRecord{
		Key:            d.Word,
		Category:       d.Category,
		Attempts:       d.Attempts,
		Correct:        d.Correct,
		Box:            min(max(d.Box, 0), MaxBox),
		LastSeen:       d.LastSeen,
		LastCorrect:    d.LastCorrect,
		NextReview:     d.NextReview,
		LastResponseMs: d.LastResponseMs,
	}
}
