package service

import (
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) *time.Time {
	t := time.Date(y, m, d, hour, min, 0, 0, time.UTC)
	return &t
}

func setupRepos(t *testing.T) (*repository.SQLiteTaskRepo, *repository.SQLiteCategoryRepo, *repository.SQLiteOccurrenceRecordRepo, *repository.SQLiteSettingsRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteCategoryRepo(database),
		repository.NewSQLiteOccurrenceRecordRepo(database),
		repository.NewSQLiteSettingsRepo(database),
		testutil.NewTestUoW(database)
}
