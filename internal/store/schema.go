package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names. Timestamps are stored as unix milliseconds.
const (
	wordRecordsTable   = "word_records"
	answerEventsTable  = "answer_events"
	sessionEventsTable = "session_events"
	snapshotsTable     = "snapshots"
	llmRequestsTable   = "llm_request_events"
)

var (
	wordRecordsColumns = []*schema.Column{
		{Name: "word", Type: field.TypeString, Unique: true},
		{Name: "category", Type: field.TypeString},
		{Name: "attempts", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "box", Type: field.TypeInt},
		{Name: "last_seen", Type: field.TypeInt64},
		{Name: "last_correct", Type: field.TypeInt64},
		{Name: "next_review", Type: field.TypeInt64},
		{Name: "last_response_ms", Type: field.TypeInt},
	}
	wordRecords = &schema.Table{
		Name:       wordRecordsTable,
		Columns:    wordRecordsColumns,
		PrimaryKey: []*schema.Column{wordRecordsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "wordrecord_next_review", Columns: []*schema.Column{wordRecordsColumns[7]}},
			{Name: "wordrecord_category", Columns: []*schema.Column{wordRecordsColumns[1]}},
		},
	}

	answerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "word", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "level", Type: field.TypeInt},
		{Name: "prompt", Type: field.TypeString},
		{Name: "chosen", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "time_ms", Type: field.TypeInt},
	}
	answerEvents = &schema.Table{
		Name:       answerEventsTable,
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventsColumns[3]}},
			{Name: "answerevent_word", Columns: []*schema.Column{answerEventsColumns[4]}},
		},
	}

	sessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "hard_mode", Type: field.TypeBool},
		{Name: "score", Type: field.TypeInt},
		{Name: "best_streak", Type: field.TypeInt},
		{Name: "questions_served", Type: field.TypeInt},
		{Name: "correct_answers", Type: field.TypeInt},
		{Name: "duration_secs", Type: field.TypeInt},
	}
	sessionEvents = &schema.Table{
		Name:       sessionEventsTable,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
		},
	}

	snapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
	}
	snapshots = &schema.Table{
		Name:       snapshotsTable,
		Columns:    snapshotsColumns,
		PrimaryKey: []*schema.Column{snapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Columns: []*schema.Column{snapshotsColumns[2]}},
		},
	}

	llmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	llmRequests = &schema.Table{
		Name:       llmRequestsTable,
		Columns:    llmRequestsColumns,
		PrimaryKey: []*schema.Column{llmRequestsColumns[0]},
	}

	// tables is the full set managed by auto-migration.
	tables = []*schema.Table{
		wordRecords,
		answerEvents,
		sessionEvents,
		snapshots,
		llmRequests,
	}
)

// migrate creates or alters every table to match the definitions above.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
