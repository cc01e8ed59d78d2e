package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "action", "category", "hard_mode", "score", "best_streak", "questions_served", "correct_answers", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Category, data.HardMode, data.Score, data.BestStreak, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable,
		[]string{"session_id", "word", "category", "level", "prompt", "chosen", "correct", "time_ms"},
		[]any{data.SessionID, data.Word, data.Category, data.Level, data.Prompt, data.Chosen, data.Correct, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswerTotals(ctx context.Context) (AnswerTotals, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.Count("*"),
			"COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)",
			"COALESCE(CAST(AVG(time_ms) AS INTEGER), 0)",
		).
		From(entsql.Table(answerEventsTable)).
		Query()

	var t AnswerTotals
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.Answered, &t.Correct, &t.AvgMs); err != nil {
		return AnswerTotals{}, fmt.Errorf("query answer totals: %w", err)
	}
	return t, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("session_id", "timestamp", "category", "hard_mode", "score", "best_streak",
			"questions_served", "correct_answers", "duration_secs").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("action", "end")).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			s  SessionSummary
			ts int64
		)
		if err := rows.Scan(&s.SessionID, &ts, &s.Category, &s.HardMode, &s.Score, &s.BestStreak,
			&s.QuestionsServed, &s.CorrectAnswers, &s.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Timestamp = fromMillis(ts)
		out = append(out, s)
	}
	return out, rows.Err()
}
