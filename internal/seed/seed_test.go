package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/pkg/models"
)

var small = Options{Jobs: 5, Candidates: 40, Assessments: 2, RandomSeed: 7}

func createTestDB(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedDatabaseOnce(t *testing.T) {
	store := createTestDB(t)
	logger, hook := test.NewNullLogger()
	s := NewSeeder(store, logger, small)
	ctx := context.Background()

	require.True(t, s.NeedsSeeding(ctx))

	seeded, err := s.SeedDatabase(ctx)
	require.NoError(t, err)
	require.True(t, seeded)
	require.False(t, s.NeedsSeeding(ctx))
	require.Equal(t, "Database seeding complete", hook.LastEntry().Message)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, models.Stats{Jobs: 5, Candidates: 40, Assessments: 2}, stats)

	at, err := store.Setting(ctx, SeededAtKey)
	require.NoError(t, err)
	require.NotNil(t, at)

	seeded, err = s.SeedDatabase(ctx)
	require.NoError(t, err)
	require.False(t, seeded)

	again, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, stats, again)
}

func TestSeedDatabaseSkipsWhenJobsExist(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()
	_, err := store.CreateJob(ctx, models.Job{Title: "Existing"})
	require.NoError(t, err)

	s := NewSeeder(store, logrus.New(), small)
	require.False(t, s.NeedsSeeding(ctx))

	seeded, err := s.SeedDatabase(ctx)
	require.NoError(t, err)
	require.False(t, seeded)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, models.Stats{Jobs: 1}, stats)
}

func TestNeedsSeedingOnStorageError(t *testing.T) {
	store, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	logger, hook := test.NewNullLogger()
	s := NewSeeder(store, logger, small)
	require.True(t, s.NeedsSeeding(context.Background()))
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestClearAllDataReturnsToEmpty(t *testing.T) {
	store := createTestDB(t)
	s := NewSeeder(store, logrus.New(), small)
	ctx := context.Background()

	_, err := s.SeedDatabase(ctx)
	require.NoError(t, err)
	require.NoError(t, store.ClearAllData(ctx))
	require.True(t, s.NeedsSeeding(ctx))

	seeded, err := s.SeedDatabase(ctx)
	require.NoError(t, err)
	require.True(t, seeded)
}

func TestGenerateIsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := Generate(small, now)
	b := Generate(small, now)
	require.Equal(t, a, b)

	other := Generate(Options{Jobs: 5, Candidates: 40, Assessments: 2, RandomSeed: 8}, now)
	require.NotEqual(t, a.Jobs[0].ID, other.Jobs[0].ID)
}

func TestGenerateShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := Generate(DefaultOptions(), now)

	require.Len(t, d.Jobs, 25)
	require.Len(t, d.Candidates, 1000)
	require.Len(t, d.Timeline, 1000)
	require.Len(t, d.Assessments, 3)

	slugs := map[string]bool{}
	for i, j := range d.Jobs {
		require.Equal(t, i, j.Order)
		require.False(t, slugs[j.Slug], "duplicate slug %s", j.Slug)
		slugs[j.Slug] = true
		require.False(t, j.CreatedAt.After(now))
	}

	jobIDs := map[string]bool{}
	for _, j := range d.Jobs {
		jobIDs[j.ID] = true
	}
	for i, c := range d.Candidates {
		require.True(t, models.IsStage(c.Stage))
		require.True(t, jobIDs[c.JobID])
		require.Equal(t, c.ID, d.Timeline[i].CandidateID)
		require.Equal(t, c.Stage, d.Timeline[i].Metadata.Stage)
	}
	for _, a := range d.Assessments {
		require.True(t, jobIDs[a.JobID])
		require.GreaterOrEqual(t, a.QuestionCount(), 10)
		require.Greater(t, len(a.Sections), 1)
	}
}
