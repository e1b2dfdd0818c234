package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepo_GetByNameIsCaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCategory("Study")))

	got, err := repo.GetByName(ctx, "study")
	require.NoError(t, err)
	assert.Equal(t, "Study", got.Name)
}

func TestCategoryRepo_DuplicateNameRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCategory("Study")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestCategory("STUDY")))
}

func TestCategoryRepo_GetDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	_, err := repo.GetDefault(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Create(ctx, testutil.NewTestCategory("Work")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCategory("Study", testutil.WithDefaultFlag())))

	def, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Study", def.Name)
}

func TestCategoryRepo_ListDefaultFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCategory("Aardvark")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCategory("Study", testutil.WithDefaultFlag())))

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Study", categories[0].Name)
}

func TestSettingsRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSettingsRepo(database)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s := &domain.Settings{Streak: domain.StreakRule{MinDailyTasks: 5, ThresholdPercent: 90}}
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Streak.MinDailyTasks)
	assert.Equal(t, 90, got.Streak.ThresholdPercent)

	// Second upsert replaces the single row.
	s.Streak.ThresholdPercent = 70
	require.NoError(t, repo.Upsert(ctx, s))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Streak.ThresholdPercent)
}
