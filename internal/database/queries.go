package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"instagist/internal/domain"
)

var ErrSummaryNotFound = errors.New("summary not found")

func (d *Database) InsertSummary(
	ctx context.Context,
	summary *domain.Summary,
) (int64, error) {
	text := strings.TrimSpace(summary.Text)
	if text == "" {
		return 0, errors.New("summary text is empty")
	}

	createdAt := summary.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `insert into summaries
	(created_at, style, source_kind, source_name, provider, model,
	input_chars, input_sha256, summary)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := d.db.ExecContext(ctx, query,
		createdAt.UTC(),
		string(summary.Style),
		string(summary.SourceKind),
		strings.TrimSpace(summary.SourceName),
		strings.TrimSpace(summary.Provider),
		strings.TrimSpace(summary.Model),
		summary.InputChars,
		summary.InputSHA256,
		text)
	if err != nil {
		return 0, fmt.Errorf("execute query: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("fetch last insert ID: %w", err)
	}

	return id, nil
}

func (d *Database) GetSummary(
	ctx context.Context,
	id int64,
) (*domain.Summary, error) {
	query := `select id, created_at, style, source_kind, source_name,
	provider, model, input_chars, input_sha256, summary
	from summaries
	where id = ?`

	rows, err := d.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"id", id,
				"operation", "GetSummary")
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate rows: %w", err)
		}

		return nil, ErrSummaryNotFound
	}

	summary, err := scanSummary(rows)
	if err != nil {
		return nil, err
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summary, nil
}

func (d *Database) ListSummaries(
	ctx context.Context,
	limit int64,
	offset int64,
) ([]domain.Summary, error) {
	query := `select id, created_at, style, source_kind, source_name,
	provider, model, input_chars, input_sha256, summary
	from summaries
	order by created_at desc, id desc
	limit ? offset ?`

	rows, err := d.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"limit", limit,
				"offset", offset,
				"operation", "ListSummaries")
		}
	}()

	var summaries []domain.Summary
	for rows.Next() {
		summary, scanErr := scanSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		summaries = append(summaries, *summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}

func (d *Database) CountSummaries(ctx context.Context) (int64, error) {
	query := "select count(*) from summaries"

	var count int64
	if err := d.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("execute query: %w", err)
	}

	return count, nil
}

func (d *Database) DeleteSummary(ctx context.Context, id int64) error {
	query := "delete from summaries where id = ?"

	result, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("fetch affected rows: %w", err)
	}

	if affected == 0 {
		return ErrSummaryNotFound
	}

	return nil
}

func (d *Database) DeleteSummariesBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	query := "delete from summaries where created_at < ?"

	result, err := d.db.ExecContext(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("execute query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("fetch affected rows: %w", err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(rows rowScanner) (*domain.Summary, error) {
	var s domain.Summary
	var style string
	var sourceKind string

	if err := rows.Scan(
		&s.ID,
		&s.CreatedAt,
		&style,
		&sourceKind,
		&s.SourceName,
		&s.Provider,
		&s.Model,
		&s.InputChars,
		&s.InputSHA256,
		&s.Text,
	); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	s.Style = domain.Style(style)
	s.SourceKind = domain.SourceKind(sourceKind)
	s.SourceName = strings.TrimSpace(s.SourceName)

	return &s, nil
}
