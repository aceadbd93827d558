package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// createTestDB opens a fresh store in a temporary directory
func createTestDB(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// frozenClock returns a clock that reports t until advanced
func frozenClock(t time.Time) (func() time.Time, func(time.Duration)) {
	now := t
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

var epoch = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

func TestMigrationsCreateEveryTable(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	for _, table := range Tables {
		var name string
		err := store.db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table.Name).Scan(&name)
		require.NoError(t, err, "table %s", table.Name)

		for _, col := range append(table.Indexes, table.Unique...) {
			idx := "idx_" + table.Name + "_" + col
			err := store.db.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&name)
			require.NoError(t, err, "index %s", idx)
		}
	}

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	require.Equal(t, SchemaVersion, version)
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = store.CreateJob(ctx, jobFixture("Engineer", 0))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	jobs, err := store.ListJobs(ctx, JobFilters{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}

func TestOpenRejectsUnknownSchemaVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, "PRAGMA user_version = 7")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = Open(ctx, path)
	require.ErrorIs(t, err, ErrSchemaVersion)
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.CreateJob(ctx, jobFixture("Engineer", 0))
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Jobs)
}

func TestStorageFailureIsLoggedAndReturned(t *testing.T) {
	logger, hook := test.NewNullLogger()
	store := createTestDB(t, WithLogger(logger))
	require.NoError(t, store.Close())

	_, err := store.ListJobs(context.Background(), JobFilters{})
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "Error fetching jobs", entry.Message)
	require.Equal(t, err, entry.Data[logrus.ErrorKey])
}

func TestInsertSQL(t *testing.T) {
	cols := []string{"id", "title", "status"}

	require.Equal(t, "INSERT INTO jobs (id, title, status) VALUES (?, ?, ?)", insertSQL("jobs", cols, false))

	upsert := insertSQL("jobs", cols, true)
	require.True(t, strings.HasSuffix(upsert, "ON CONFLICT(id) DO UPDATE SET title=excluded.title, status=excluded.status"))

	require.Equal(t, "UPDATE jobs SET title=?, status=? WHERE id=?", updateSQL("jobs", cols))
}

func TestTimeFormatSortsChronologically(t *testing.T) {
	a := formatTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	b := formatTime(time.Date(2025, 1, 1, 0, 0, 0, 100, time.UTC))
	c := formatTime(time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC))
	require.Less(t, a, b)
	require.Less(t, b, c)

	parsed, err := parseTime(b)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 100, time.UTC), parsed)
}
