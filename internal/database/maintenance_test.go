package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khrees2412/recruiter/pkg/models"
)

func populate(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	job, err := store.CreateJob(ctx, jobFixture("Engineer", 0))
	require.NoError(t, err)
	_, err = store.CreateJob(ctx, jobFixture("Designer", 1))
	require.NoError(t, err)
	c, err := store.CreateCandidate(ctx, models.Candidate{Name: "Ada", JobID: job.ID})
	require.NoError(t, err)
	a, err := store.CreateAssessment(ctx, assessmentFixture(job.ID))
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, models.Note{CandidateID: c.ID, Content: "hello"})
	require.NoError(t, err)
	_, err = store.CreateAssessmentResponse(ctx, models.AssessmentResponse{CandidateID: c.ID, AssessmentID: a.ID})
	require.NoError(t, err)
}

func TestStats(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, models.Stats{}, stats)

	populate(t, store)
	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, models.Stats{Jobs: 2, Candidates: 1, Assessments: 1}, stats)
}

func TestClearAllDataKeepsSettings(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	populate(t, store)
	require.NoError(t, store.SetSetting(ctx, "theme", "dark"))

	require.NoError(t, store.ClearAllData(ctx))

	d, err := store.Export(ctx)
	require.NoError(t, err)
	require.Empty(t, d.Jobs)
	require.Empty(t, d.Candidates)
	require.Empty(t, d.Assessments)
	require.Empty(t, d.Timeline)
	require.Empty(t, d.Notes)
	require.Empty(t, d.Responses)

	theme, err := store.Setting(ctx, "theme")
	require.NoError(t, err)
	require.JSONEq(t, `"dark"`, string(theme))
}

func TestSettings(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	v, err := store.Setting(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, store.SetSetting(ctx, "page_size", 20))
	require.NoError(t, store.SetSetting(ctx, "page_size", 50))

	v, err = store.Setting(ctx, "page_size")
	require.NoError(t, err)
	var size int
	require.NoError(t, json.Unmarshal(v, &size))
	require.Equal(t, 50, size)
}

func TestExportImport(t *testing.T) {
	src := createTestDB(t)
	ctx := context.Background()
	populate(t, src)

	d, err := src.Export(ctx)
	require.NoError(t, err)
	require.Len(t, d.Jobs, 2)
	require.Len(t, d.Timeline, 3)

	dst := createTestDB(t)
	require.NoError(t, dst.Import(ctx, d))

	copied, err := dst.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, d, copied)

	// importing again overwrites rather than duplicates
	require.NoError(t, dst.Import(ctx, d))
	stats, err := dst.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, models.Stats{Jobs: 2, Candidates: 1, Assessments: 1}, stats)
}

func TestImportRejectsNullRows(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	var d Dataset
	require.NoError(t, json.Unmarshal([]byte(`{"jobs": [{"id": "j1", "title": "Engineer"}], "notes": [null]}`), &d))

	err := store.Import(ctx, d)
	require.ErrorIs(t, err, ErrNullRow)
	require.ErrorContains(t, err, "notes[0]")

	// nothing from the batch was written
	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.Jobs)

	// the connection is still usable afterwards
	_, err = store.CreateJob(ctx, jobFixture("Designer", 0))
	require.NoError(t, err)
}

func TestImportAssignsMissingIDs(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	var d Dataset
	require.NoError(t, json.Unmarshal([]byte(`{"jobs": [{"title": "A", "order": 0}, {"title": "B", "order": 1}]}`), &d))
	require.NoError(t, store.Import(ctx, d))

	jobs, err := store.ListJobs(ctx, JobFilters{})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "A", jobs[0].Title)
	require.Equal(t, "B", jobs[1].Title)
	require.NotEmpty(t, jobs[0].ID)
	require.NotEmpty(t, jobs[1].ID)
	require.NotEqual(t, jobs[0].ID, jobs[1].ID)
}
