package store

import (
	"context"
	"time"
)

// WordRecordData is the persisted form of one word's review record.
type WordRecordData struct {
	Word           string
	Category       string
	Attempts       int
	Correct        int
	Box            int
	LastSeen       time.Time
	LastCorrect    time.Time
	NextReview     time.Time
	LastResponseMs int
}

// WordRepo persists per-word review records.
type WordRepo interface {
	// Upsert inserts or replaces the record for data.Word.
	Upsert(ctx context.Context, data WordRecordData) error

	// Get returns the record for word, or ErrNotFound.
	Get(ctx context.Context, word string) (*WordRecordData, error)

	// All returns every record ordered by word.
	All(ctx context.Context) ([]WordRecordData, error)

	// Due returns records whose next review is at or before now, oldest
	// due first. A limit of 0 means no limit.
	Due(ctx context.Context, now time.Time, limit int) ([]WordRecordData, error)
}

// AnswerEventData captures a single answered item.
type AnswerEventData struct {
	SessionID string
	Word      string
	Category  string
	Level     int
	Prompt    string
	Chosen    string
	Correct   bool
	TimeMs    int
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	Category        string
	HardMode        bool
	Score           int
	BestStreak      int
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummary is an ended session as reported by RecentSessions.
type SessionSummary struct {
	SessionID       string
	Timestamp       time.Time
	Category        string
	HardMode        bool
	Score           int
	BestStreak      int
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerTotals aggregates answer events.
type AnswerTotals struct {
	Answered int
	Correct  int
	AvgMs    int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage aggregates LLM request events.
type LLMUsage struct {
	Requests     int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records one answered item.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AnswerTotals aggregates every answer event.
	AnswerTotals(ctx context.Context) (AnswerTotals, error)

	// RecentSessions returns the most recent ended sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// LLMUsage aggregates LLM request events.
	LLMUsage(ctx context.Context) (LLMUsage, error)
}

// ProfileData is the learner profile carried in every snapshot.
type ProfileData struct {
	Level         int    `json:"level"`
	MinLevel      int    `json:"min_level"`
	Shields       int    `json:"shields"`
	BestStreak    int    `json:"best_streak"`
	HighScore     int    `json:"high_score"`
	DailyDoneDate string `json:"daily_done_date,omitempty"` // YYYY-MM-DD
	HardMode      bool   `json:"hard_mode"`
	LastCategory  string `json:"last_category,omitempty"`
}

// SnapshotData captures the learner state at a point in time.
type SnapshotData struct {
	Version int          `json:"version"`
	Profile *ProfileData `json:"profile,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
