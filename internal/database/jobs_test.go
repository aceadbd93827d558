package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khrees2412/recruiter/pkg/models"
)

func jobFixture(title string, order int) models.Job {
	return models.Job{
		Title:        title,
		Slug:         models.Slugify(title),
		Order:        order,
		Tags:         []string{"remote"},
		Description:  title + " role",
		Requirements: []string{"Go"},
		Location:     "Remote",
		Department:   "Engineering",
	}
}

func TestCreateJobRoundTrip(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	job, err := store.CreateJob(ctx, jobFixture("Backend Engineer", 3))
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	require.Equal(t, models.JobStatusActive, job.Status)
	require.Equal(t, "full-time", job.Type)
	require.Equal(t, []string{}, job.Benefits)

	got, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, job, got)
}

func TestGetJobMissing(t *testing.T) {
	store := createTestDB(t)

	job, err := store.GetJob(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, job)
}

func TestCreateJobWithSuppliedIDUpserts(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	first := jobFixture("Engineer", 0)
	first.ID = "job-1"
	_, err := store.CreateJob(ctx, first)
	require.NoError(t, err)

	second := jobFixture("Staff Engineer", 4)
	second.ID = "job-1"
	_, err = store.CreateJob(ctx, second)
	require.NoError(t, err)

	jobs, err := store.ListJobs(ctx, JobFilters{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Staff Engineer", jobs[0].Title)
	require.Equal(t, 4, jobs[0].Order)
}

func TestCreateJobOverwritesCallerTimestamps(t *testing.T) {
	now, _ := frozenClock(epoch)
	store := createTestDB(t, WithClock(now))

	partial := jobFixture("Engineer", 0)
	partial.CreatedAt = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	partial.UpdatedAt = partial.CreatedAt

	job, err := store.CreateJob(context.Background(), partial)
	require.NoError(t, err)
	require.Equal(t, epoch, job.CreatedAt)
	require.Equal(t, epoch, job.UpdatedAt)
}

func TestUpdateJobRefreshesUpdatedAt(t *testing.T) {
	now, advance := frozenClock(epoch)
	store := createTestDB(t, WithClock(now))
	ctx := context.Background()

	job, err := store.CreateJob(ctx, jobFixture("Engineer", 0))
	require.NoError(t, err)

	advance(time.Hour)
	updated, err := store.UpdateJob(ctx, job.ID, models.JobPatch{
		Status: models.Ptr(models.JobStatusArchived),
		Tags:   []string{"onsite"},
	})
	require.NoError(t, err)
	require.Equal(t, models.JobStatusArchived, updated.Status)
	require.Equal(t, []string{"onsite"}, updated.Tags)
	require.Equal(t, "Engineer", updated.Title)
	require.Equal(t, epoch, updated.CreatedAt)
	require.Equal(t, epoch.Add(time.Hour), updated.UpdatedAt)

	got, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestUpdateJobMissing(t *testing.T) {
	store := createTestDB(t)

	job, err := store.UpdateJob(context.Background(), "nope", models.JobPatch{Title: models.Ptr("x")})
	require.NoError(t, err)
	require.Nil(t, job)
}

func TestListJobsFiltersAndOrder(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	fixtures := []models.Job{
		{Title: "Designer", Order: 2, Tags: []string{"figma"}},
		{Title: "Engineer", Order: 0, Description: "Builds APIs"},
		{Title: "Recruiter", Order: 1, Status: models.JobStatusArchived},
		{Title: "Data Analyst", Order: 3, Tags: []string{"SQL", "Remote"}},
	}
	for _, f := range fixtures {
		_, err := store.CreateJob(ctx, f)
		require.NoError(t, err)
	}

	titles := func(jobs []*models.Job) []string {
		out := make([]string, len(jobs))
		for i, j := range jobs {
			out[i] = j.Title
		}
		return out
	}

	all, err := store.ListJobs(ctx, JobFilters{Status: "all"})
	require.NoError(t, err)
	require.Equal(t, []string{"Engineer", "Recruiter", "Designer", "Data Analyst"}, titles(all))

	activeJobs, err := store.ListJobs(ctx, JobFilters{Status: models.JobStatusActive})
	require.NoError(t, err)
	require.Equal(t, []string{"Engineer", "Designer", "Data Analyst"}, titles(activeJobs))

	tests := []struct {
		search string
		want   []string
	}{
		{"ENGINEER", []string{"Engineer"}},
		{"apis", []string{"Engineer"}},
		{"remote", []string{"Data Analyst"}},
		{"er", []string{"Engineer", "Recruiter", "Designer"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			jobs, err := store.ListJobs(ctx, JobFilters{Search: tt.search})
			require.NoError(t, err)
			require.Equal(t, tt.want, titles(jobs))
		})
	}
}

func TestReorderJobsSwapsTwoJobs(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	engineer, err := store.CreateJob(ctx, models.Job{Title: "Engineer", Order: 0})
	require.NoError(t, err)
	designer, err := store.CreateJob(ctx, models.Job{Title: "Designer", Order: 1})
	require.NoError(t, err)
	pm, err := store.CreateJob(ctx, models.Job{Title: "Product Manager", Order: 2})
	require.NoError(t, err)

	jobs, err := store.ReorderJobs(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	require.Equal(t, "Designer", jobs[0].Title)
	require.Equal(t, "Engineer", jobs[1].Title)

	got, err := store.GetJob(ctx, engineer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Order)

	got, err = store.GetJob(ctx, designer.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Order)

	got, err = store.GetJob(ctx, pm.ID)
	require.NoError(t, err)
	require.Equal(t, pm, got)
}

func TestReorderJobsMissingOrderIsNoop(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.CreateJob(ctx, models.Job{Title: fmt.Sprintf("Job %d", i), Order: i})
		require.NoError(t, err)
	}
	before, err := store.ListJobs(ctx, JobFilters{})
	require.NoError(t, err)

	after, err := store.ReorderJobs(ctx, 0, 9)
	require.NoError(t, err)
	require.Equal(t, before, after)

	after, err = store.ReorderJobs(ctx, 7, 1)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

// BenchmarkCreateJob benchmarks job creation
func BenchmarkCreateJob(b *testing.B) {
	ctx := context.Background()
	store, err := Open(ctx, ":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.CreateJob(ctx, models.Job{Title: fmt.Sprintf("Job %d", i), Order: i}); err != nil {
			b.Fatal(err)
		}
	}
}
