package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file database below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellbee.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, want := range []string{"word_records", "answer_events", "session_events", "snapshots", "llm_request_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", want,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", want, err)
		}
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellbee.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WordRepo().Upsert(context.Background(), WordRecordData{Word: "cat", Category: "cvc", Attempts: 1}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.WordRepo().Get(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Attempts)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestWordRepo_UpsertAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	_, err := repo.Get(ctx, "ship")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := WordRecordData{
		Word: "ship", Category: "digraphs", Attempts: 1, Correct: 1, Box: 1,
		LastSeen: now, LastCorrect: now, NextReview: now.Add(24 * time.Hour), LastResponseMs: 1800,
	}
	require.NoError(t, repo.Upsert(ctx, rec))

	rec.Attempts = 2
	rec.Box = 2
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.Get(ctx, "ship")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, 2, got.Box)
	assert.Equal(t, "digraphs", got.Category)
	assert.Equal(t, 1800, got.LastResponseMs)
	assert.True(t, got.LastSeen.Equal(now))
	assert.True(t, got.NextReview.Equal(rec.NextReview))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWordRepo_ZeroTimesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, WordRecordData{Word: "frog", Category: "blends", Attempts: 1}))
	got, err := repo.Get(ctx, "frog")
	require.NoError(t, err)
	assert.True(t, got.LastCorrect.IsZero())
}

func TestWordRepo_Due(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []WordRecordData{
		{Word: "boat", Box: 2, NextReview: now.Add(-time.Hour)},
		{Word: "rain", Box: 0, NextReview: now.Add(-time.Hour)},
		{Word: "said", Box: 1, NextReview: now.Add(-2 * time.Hour)},
		{Word: "tree", Box: 3, NextReview: now.Add(time.Hour)},
	}
	for _, r := range records {
		r.Category = "test"
		r.Attempts = 1
		require.NoError(t, repo.Upsert(ctx, r))
	}

	due, err := repo.Due(ctx, now, 0)
	require.NoError(t, err)
	var words []string
	for _, d := range due {
		words = append(words, d.Word)
	}
	assert.Equal(t, []string{"said", "rain", "boat"}, words)

	due, err = repo.Due(ctx, now, 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "said", due[0].Word)
}

func TestEventRepo_AnswerTotals(t *testing.T) {
	s := openTestStore(t)
	events := s.EventRepo()
	ctx := context.Background()

	totals, err := events.AnswerTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, AnswerTotals{}, totals)

	for i, correct := range []bool{true, true, false, true} {
		require.NoError(t, events.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s1", Word: "cat", Category: "cvc", Level: 1,
			Prompt: "cat", Chosen: "cat", Correct: correct, TimeMs: 1000 * (i + 1),
		}))
	}

	totals, err = events.AnswerTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, totals.Answered)
	assert.Equal(t, 3, totals.Correct)
	assert.Equal(t, 2500, totals.AvgMs)
}

func TestEventRepo_RecentSessions(t *testing.T) {
	s := openTestStore(t)
	events := s.EventRepo()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("s%d", i)
		require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: "start", Category: "cvc"}))
		require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: "end", Category: "cvc", Score: i * 10, QuestionsServed: i,
		}))
	}

	got, err := events.RecentSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s3", got[0].SessionID)
	assert.Equal(t, 30, got[0].Score)
	assert.Equal(t, "s2", got[1].SessionID)
}

func TestEventRepo_LLMUsage(t *testing.T) {
	s := openTestStore(t)
	events := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "distractors", InputTokens: 100, OutputTokens: 40, Success: true,
	}))
	require.NoError(t, events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "distractors", ErrorMessage: "rate limited",
	}))

	u, err := events.LLMUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{Requests: 2, InputTokens: 100, OutputTokens: 40, Failures: 1}, u)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{Version: 1, Profile: &ProfileData{
			Level: 3, Shields: 2, BestStreak: 12, DailyDoneDate: "2025-03-01",
		}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	require.NotNil(t, snap.Data.Profile)
	assert.Equal(t, 3, snap.Data.Profile.Level)
	assert.Equal(t, 2, snap.Data.Profile.Shields)
	assert.Equal(t, "2025-03-01", snap.Data.Profile.DailyDoneDate)
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func countSnapshots(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countSnapshots(t, s); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countSnapshots(t, s); n != 2 {
		t.Errorf("remaining snapshots = %d, want 2", n)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WordRepo().Upsert(ctx, WordRecordData{Word: "cat", Category: "cvc"}))
	require.NoError(t, s.EventRepo().AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", Word: "cat"}))
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Timestamp: time.Now()}))

	require.NoError(t, s.Reset(ctx))

	all, err := s.WordRepo().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 0, countSnapshots(t, s))

	// Sequence keeps counting after a reset.
	seq, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Greater(t, seq, int64(1))
}

func TestSnapshotRepo_AssignsSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: "start"}))

	snap := &Snapshot{Timestamp: time.Now(), Data: SnapshotData{Version: 1}}
	require.NoError(t, s.SnapshotRepo().Save(ctx, snap))
	assert.Equal(t, int64(2), snap.Sequence)

	latest, err := s.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(2), latest.Sequence)
}
