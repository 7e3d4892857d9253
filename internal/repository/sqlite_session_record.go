package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

const sessionRecordColumns = `id, user_id, mode, planned_seconds, actual_seconds,
	started_at, ended_at, completed_at, completed, task_ref`

// SQLiteSessionRecordRepo implements SessionRecordRepo using a SQLite database.
type SQLiteSessionRecordRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRecordRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteSessionRecordRepo(conn db.DBTX) *SQLiteSessionRecordRepo {
	return &SQLiteSessionRecordRepo{db: conn}
}

// Create inserts a finalized record. Records are never updated afterwards.
func (r *SQLiteSessionRecordRepo) Create(ctx context.Context, rec *domain.SessionRecord) error {
	if !rec.Finalized() {
		return domain.ErrNotFinalized
	}
	query := `INSERT INTO session_records (` + sessionRecordColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		string(rec.Mode),
		rec.PlannedSeconds,
		rec.ActualSeconds,
		formatTime(rec.StartedAt),
		formatTime(*rec.EndedAt),
		nullableTimeToString(rec.CompletedAt),
		boolToInt(rec.Completed),
		nullableString(rec.TaskRef),
		formatTime(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("session record %s: %w", rec.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRecordRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	query := `SELECT ` + sessionRecordColumns + ` FROM session_records WHERE id = ?`
	rec, err := scanSessionRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session record: %w", ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteSessionRecordRepo) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionRecordColumns + ` FROM session_records
		WHERE user_id = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing session records by range: %w", err)
	}
	defer rows.Close()
	return scanSessionRecords(rows)
}

func (r *SQLiteSessionRecordRepo) ListRecent(ctx context.Context, userID string, since time.Time) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionRecordColumns + ` FROM session_records
		WHERE user_id = ? AND started_at >= ?
		ORDER BY started_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing recent session records: %w", err)
	}
	defer rows.Close()
	return scanSessionRecords(rows)
}

func (r *SQLiteSessionRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	return requireAffected(res, "session record")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionRecord(row rowScanner) (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	var mode, startedAt, endedAt string
	var completedAt, taskRef sql.NullString
	var completed int

	err := row.Scan(
		&rec.ID, &rec.UserID, &mode, &rec.PlannedSeconds, &rec.ActualSeconds,
		&startedAt, &endedAt, &completedAt, &completed, &taskRef,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session record: %w", err)
	}

	rec.Mode = domain.SessionMode(mode)
	rec.Completed = intToBool(completed)
	rec.TaskRef = taskRef.String
	rec.CompletedAt = parseNullableTime(completedAt)
	if rec.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	ended, err := parseTime(endedAt, "ended_at")
	if err != nil {
		return nil, err
	}
	rec.EndedAt = &ended
	return &rec, nil
}

func scanSessionRecords(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	var out []*domain.SessionRecord
	for rows.Next() {
		rec, err := scanSessionRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session records: %w", err)
	}
	return out, nil
}
