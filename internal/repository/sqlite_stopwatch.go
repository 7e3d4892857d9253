package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteStopwatchRepo implements StopwatchRepo using a SQLite database.
type SQLiteStopwatchRepo struct {
	db db.DBTX
}

func NewSQLiteStopwatchRepo(conn db.DBTX) *SQLiteStopwatchRepo {
	return &SQLiteStopwatchRepo{db: conn}
}

func (r *SQLiteStopwatchRepo) Create(ctx context.Context, b *domain.StopwatchBlock) error {
	query := `INSERT INTO stopwatch_blocks (id, user_id, started_at, seconds, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.UserID,
		formatTime(b.StartedAt),
		b.Seconds,
		b.Note,
		formatTime(b.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("stopwatch block %s: %w", b.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("inserting stopwatch block: %w", err)
	}
	return nil
}

func (r *SQLiteStopwatchRepo) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.StopwatchBlock, error) {
	query := `SELECT id, user_id, started_at, seconds, note, created_at
		FROM stopwatch_blocks
		WHERE user_id = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing stopwatch blocks by range: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

func (r *SQLiteStopwatchRepo) ListRecent(ctx context.Context, userID string, since time.Time) ([]*domain.StopwatchBlock, error) {
	query := `SELECT id, user_id, started_at, seconds, note, created_at
		FROM stopwatch_blocks
		WHERE user_id = ? AND started_at >= ?
		ORDER BY started_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing recent stopwatch blocks: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

func (r *SQLiteStopwatchRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stopwatch_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stopwatch block: %w", err)
	}
	return requireAffected(res, "stopwatch block")
}

func scanBlocks(rows *sql.Rows) ([]*domain.StopwatchBlock, error) {
	var out []*domain.StopwatchBlock
	for rows.Next() {
		var b domain.StopwatchBlock
		var startedAt, createdAt string
		if err := rows.Scan(&b.ID, &b.UserID, &startedAt, &b.Seconds, &b.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning stopwatch block: %w", err)
		}
		var err error
		if b.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stopwatch blocks: %w", err)
	}
	return out, nil
}
