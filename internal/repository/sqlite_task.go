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

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, category_id, title, description, priority, scheduled_date,
		deadline_enabled, deadline_hour, deadline_minute,
		timer_enabled, timer_duration_sec,
		recurrence_pattern, recurrence_days, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, category_id, title, description, priority, scheduled_date,
		deadline_enabled, deadline_hour, deadline_minute,
		timer_enabled, timer_duration_sec,
		recurrence_pattern, recurrence_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		nullableString(t.CategoryID),
		t.Title,
		t.Description,
		string(t.Priority),
		t.ScheduledDate.Format(dateLayout),
		boolToInt(t.Deadline.Enabled),
		t.Deadline.Hour,
		t.Deadline.Minute,
		boolToInt(t.Timer.Enabled),
		t.Timer.DurationSec,
		patternOrNone(t.Recurrence.Pattern),
		weekdaysToString(t.Recurrence.Weekdays),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return r.scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY scheduled_date, created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE category_id = ? ORDER BY scheduled_date, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by category: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) EarliestScheduledDate(ctx context.Context) (*time.Time, error) {
	var earliest sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT MIN(scheduled_date) FROM tasks`).Scan(&earliest)
	if err != nil {
		return nil, fmt.Errorf("finding earliest scheduled date: %w", err)
	}
	return parseNullableTime(earliest, dateLayout), nil
}

func (r *SQLiteTaskRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE created_at >= ? AND created_at < ?`,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting created tasks: %w", err)
	}
	return count, nil
}

func (r *SQLiteTaskRepo) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET category_id = ? WHERE category_id = ?`,
		toCategoryID, fromCategoryID,
	)
	if err != nil {
		return fmt.Errorf("reassigning task category: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET category_id = ?, title = ?, description = ?, priority = ?,
		scheduled_date = ?, deadline_enabled = ?, deadline_hour = ?, deadline_minute = ?,
		timer_enabled = ?, timer_duration_sec = ?,
		recurrence_pattern = ?, recurrence_days = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(t.CategoryID),
		t.Title,
		t.Description,
		string(t.Priority),
		t.ScheduledDate.Format(dateLayout),
		boolToInt(t.Deadline.Enabled),
		t.Deadline.Hour,
		t.Deadline.Minute,
		boolToInt(t.Timer.Enabled),
		t.Timer.DurationSec,
		patternOrNone(t.Recurrence.Pattern),
		weekdaysToString(t.Recurrence.Weekdays),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRowAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRowAffected(res, "task")
}

func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var (
		t                                 domain.Task
		categoryID                        sql.NullString
		priority, pattern, days           string
		scheduledDate, createdAt, updated string
		deadlineEnabled, timerEnabled     int
	)
	err := row.Scan(
		&t.ID, &categoryID, &t.Title, &t.Description, &priority, &scheduledDate,
		&deadlineEnabled, &t.Deadline.Hour, &t.Deadline.Minute,
		&timerEnabled, &t.Timer.DurationSec,
		&pattern, &days, &createdAt, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return fillTask(&t, categoryID, priority, scheduledDate, deadlineEnabled, timerEnabled, pattern, days, createdAt, updated)
}

func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var (
			t                                 domain.Task
			categoryID                        sql.NullString
			priority, pattern, days           string
			scheduledDate, createdAt, updated string
			deadlineEnabled, timerEnabled     int
		)
		err := rows.Scan(
			&t.ID, &categoryID, &t.Title, &t.Description, &priority, &scheduledDate,
			&deadlineEnabled, &t.Deadline.Hour, &t.Deadline.Minute,
			&timerEnabled, &t.Timer.DurationSec,
			&pattern, &days, &createdAt, &updated,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := fillTask(&t, categoryID, priority, scheduledDate, deadlineEnabled, timerEnabled, pattern, days, createdAt, updated)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func fillTask(
	t *domain.Task,
	categoryID sql.NullString,
	priority, scheduledDate string,
	deadlineEnabled, timerEnabled int,
	pattern, days, createdAt, updatedAt string,
) (*domain.Task, error) {
	if categoryID.Valid {
		t.CategoryID = categoryID.String
	}
	t.Priority = domain.Priority(priority)
	scheduled, err := time.Parse(dateLayout, scheduledDate)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled date %q: %w", scheduledDate, err)
	}
	t.ScheduledDate = scheduled
	t.Deadline.Enabled = intToBool(deadlineEnabled)
	t.Timer.Enabled = intToBool(timerEnabled)
	t.Recurrence.Pattern = domain.RecurrencePattern(pattern)
	t.Recurrence.Weekdays = parseWeekdays(days)
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = updated
	}
	return t, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func patternOrNone(p domain.RecurrencePattern) string {
	if p == "" {
		return string(domain.RecurrenceNone)
	}
	return string(p)
}

func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}
	return nil
}
