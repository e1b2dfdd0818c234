package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

// Get returns the stored settings, or defaults when nothing was ever saved.
func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			def := domain.DefaultSettings()
			return &def, nil
		}
		return nil, err
	}
	stored.Streak = stored.Streak.Normalized()
	return stored, nil
}

func (s *settingsService) UpdateStreakRule(ctx context.Context, rule domain.StreakRule) (*domain.Settings, error) {
	if rule.MinDailyTasks < 1 {
		return nil, fmt.Errorf("min daily tasks must be at least 1: %w", domain.ErrInvalidInput)
	}
	if rule.ThresholdPercent < 1 || rule.ThresholdPercent > 100 {
		return nil, fmt.Errorf("threshold percent must be in 1..100: %w", domain.ErrInvalidInput)
	}

	updated := &domain.Settings{Streak: rule, UpdatedAt: time.Now().UTC()}
	if err := s.settings.Upsert(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
