package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/cadence/internal/cli"
	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/logging"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("finding config directory: %w", err)
	}
	cfg, err := config.LoadOrCreate(filepath.Join(configDir, config.DefaultConfigFileName))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logging.Init(logging.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	recordRepo := repository.NewSQLiteOccurrenceRecordRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	categorySvc := service.NewCategoryService(categoryRepo, uow)
	if _, err := categorySvc.EnsureDefault(context.Background()); err != nil {
		return fmt.Errorf("ensuring default category: %w", err)
	}

	app := &cli.App{
		Tasks:       service.NewTaskService(taskRepo, recordRepo, categoryRepo, uow),
		Occurrences: service.NewOccurrenceService(taskRepo, recordRepo, categoryRepo, uow),
		Streaks:     service.NewStreakService(taskRepo, recordRepo, settingsRepo),
		Analytics:   service.NewAnalyticsService(taskRepo, recordRepo, categoryRepo),
		Categories:  categorySvc,
		Settings:    service.NewSettingsService(settingsRepo),
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	rootCmd := cli.NewRootCmd(app)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "err", err)
		return err
	}
	return nil
}
