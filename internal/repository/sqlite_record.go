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

const recordColumns = `task_id, date, completed_at, timer_started_at, timer_accum_sec`

// SQLiteOccurrenceRecordRepo implements OccurrenceRecordRepo using a SQLite
// database. One row per (task_id, date); the primary key plus the
// completion-preserving upsert keep concurrent completes idempotent.
type SQLiteOccurrenceRecordRepo struct {
	db db.DBTX
}

func NewSQLiteOccurrenceRecordRepo(db db.DBTX) *SQLiteOccurrenceRecordRepo {
	return &SQLiteOccurrenceRecordRepo{db: db}
}

func (r *SQLiteOccurrenceRecordRepo) Get(ctx context.Context, taskID string, date time.Time) (*domain.OccurrenceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM occurrence_records WHERE task_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, query, taskID, date.Format(dateLayout))

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("occurrence record: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteOccurrenceRecordRepo) ListRange(ctx context.Context, start, end time.Time) ([]*domain.OccurrenceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM occurrence_records
		WHERE date >= ? AND date <= ? ORDER BY date, task_id`
	rows, err := r.db.QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing occurrence records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *SQLiteOccurrenceRecordRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.OccurrenceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM occurrence_records WHERE task_id = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing occurrence records by task: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *SQLiteOccurrenceRecordRepo) Upsert(ctx context.Context, rec *domain.OccurrenceRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	// COALESCE keeps the first completion instant: once completed_at is
	// set it can never change, whatever the caller sends.
	query := `INSERT INTO occurrence_records
		(task_id, date, completed_at, timer_started_at, timer_accum_sec, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, date) DO UPDATE SET
			completed_at     = COALESCE(occurrence_records.completed_at, excluded.completed_at),
			timer_started_at = excluded.timer_started_at,
			timer_accum_sec  = excluded.timer_accum_sec,
			updated_at       = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.TaskID,
		rec.Date.Format(dateLayout),
		nullableTimeToString(rec.CompletedAt, time.RFC3339),
		nullableTimeToString(rec.TimerStartedAt, time.RFC3339),
		rec.TimerAccumSec,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting occurrence record: %w", err)
	}
	return nil
}

func (r *SQLiteOccurrenceRecordRepo) DeleteUncompletedFrom(ctx context.Context, taskID string, from time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM occurrence_records WHERE task_id = ? AND date >= ? AND completed_at IS NULL`,
		taskID, from.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("deleting uncompleted occurrence records: %w", err)
	}
	return nil
}

func (r *SQLiteOccurrenceRecordRepo) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM occurrence_records WHERE task_id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("deleting occurrence records: %w", err)
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*domain.OccurrenceRecord, error) {
	var (
		rec                     domain.OccurrenceRecord
		date                    string
		completedAt, timerStart sql.NullString
	)
	if err := scan(&rec.TaskID, &date, &completedAt, &timerStart, &rec.TimerAccumSec); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parsing occurrence date %q: %w", date, err)
	}
	rec.Date = parsed
	rec.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	rec.TimerStartedAt = parseNullableTime(timerStart, time.RFC3339)
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*domain.OccurrenceRecord, error) {
	var records []*domain.OccurrenceRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning occurrence record row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
