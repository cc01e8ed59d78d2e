package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var wordColumns = []string{
	"word", "category", "attempts", "correct", "box",
	"last_seen", "last_correct", "next_review", "last_response_ms",
}

// wordRepo implements WordRepo with the ent SQL builder.
type wordRepo struct {
	db *sql.DB
}

func (r *wordRepo) Upsert(ctx context.Context, d WordRecordData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(wordRecordsTable).
		Columns(wordColumns...).
		Values(
			d.Word, d.Category, d.Attempts, d.Correct, d.Box,
			toMillis(d.LastSeen), toMillis(d.LastCorrect), toMillis(d.NextReview), d.LastResponseMs,
		).
		OnConflict(
			entsql.ConflictColumns("word"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert word record %q: %w", d.Word, err)
	}
	return nil
}

func (r *wordRepo) Get(ctx context.Context, word string) (*WordRecordData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(wordColumns...).
		From(entsql.Table(wordRecordsTable)).
		Where(entsql.EQ("word", word)).
		Query()

	d, err := scanWordRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query word record %q: %w", word, err)
	}
	return d, nil
}

func (r *wordRepo) All(ctx context.Context) ([]WordRecordData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(wordColumns...).
		From(entsql.Table(wordRecordsTable)).
		OrderBy(entsql.Asc("word")).
		Query()
	return r.query(ctx, query, args)
}

func (r *wordRepo) Due(ctx context.Context, now time.Time, limit int) ([]WordRecordData, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(wordColumns...).
		From(entsql.Table(wordRecordsTable)).
		Where(entsql.LTE("next_review", now.UnixMilli())).
		OrderBy(entsql.Asc("next_review"), entsql.Asc("box"), entsql.Asc("word"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *wordRepo) query(ctx context.Context, query string, args []any) ([]WordRecordData, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query word records: %w", err)
	}
	defer rows.Close()

	var out []WordRecordData
	for rows.Next() {
		d, err := scanWordRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word record: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word records: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWordRecord(row rowScanner) (*WordRecordData, error) {
	var (
		d                                 WordRecordData
		lastSeen, lastCorrect, nextReview int64
	)
	err := row.Scan(
		&d.Word, &d.Category, &d.Attempts, &d.Correct, &d.Box,
		&lastSeen, &lastCorrect, &nextReview, &d.LastResponseMs,
	)
	if err != nil {
		return nil, err
	}
	d.LastSeen = fromMillis(lastSeen)
	d.LastCorrect = fromMillis(lastCorrect)
	d.NextReview = fromMillis(nextReview)
	return &d, nil
}
