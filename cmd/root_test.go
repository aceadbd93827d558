package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/internal/config"
	"github.com/khrees2412/recruiter/internal/database"
)

// useTestApp makes every command run against one App backed by a temp store
func useTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.NewAppWithConfig(context.Background(), &config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "recruiter.db"),
		LogLevel:     "error",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	prev := newApp
	newApp = func(context.Context) (*app.App, error) { return a, nil }
	t.Cleanup(func() {
		newApp = prev
		application = nil
		a.Close()
	})
	return a
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestJobCommands(t *testing.T) {
	a := useTestApp(t)
	ctx := context.Background()

	require.Contains(t, run(t, "job", "add", "--title", "Backend Engineer"), "Job added: Backend Engineer")
	require.Contains(t, run(t, "job", "add", "--title", "Designer"), "Job added: Designer")

	jobs, err := a.Store.ListJobs(ctx, database.JobFilters{})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "backend-engineer", jobs[0].Slug)
	require.Equal(t, 1, jobs[1].Order)

	run(t, "job", "reorder", "0", "1")

	jobs, err = a.Store.ListJobs(ctx, database.JobFilters{})
	require.NoError(t, err)
	require.Equal(t, "Designer", jobs[0].Title)
	require.Equal(t, "Backend Engineer", jobs[1].Title)

	out := run(t, "job", "list")
	require.Contains(t, out, "Designer")
	require.Less(t, strings.Index(out, "Designer"), strings.Index(out, "Backend Engineer"))
}
