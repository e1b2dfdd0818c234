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

// SQLiteSettingsRepo implements SettingsRepo over the single-row settings
// table.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(db db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: db}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	var (
		s         domain.Settings
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT min_daily_tasks, streak_threshold_percent, updated_at FROM settings WHERE id = 1`,
	).Scan(&s.Streak.MinDailyTasks, &s.Streak.ThresholdPercent, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if updated, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		s.UpdatedAt = updated
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	query := `INSERT INTO settings (id, min_daily_tasks, streak_threshold_percent, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			min_daily_tasks          = excluded.min_daily_tasks,
			streak_threshold_percent = excluded.streak_threshold_percent,
			updated_at               = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.Streak.MinDailyTasks, s.Streak.ThresholdPercent, s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
