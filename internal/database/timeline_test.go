package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khrees2412/recruiter/pkg/models"
)

func TestCreateTimelineEventDuplicateIDFails(t *testing.T) {
	store := createTestDB(t)
	ctx := context.Background()

	first, err := store.CreateTimelineEvent(ctx, models.TimelineEvent{ID: "e1", CandidateID: "c1", Title: "first"})
	require.NoError(t, err)

	_, err = store.CreateTimelineEvent(ctx, models.TimelineEvent{ID: "e1", CandidateID: "c1", Title: "rewritten"})
	require.Error(t, err)

	events, err := store.CandidateTimeline(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, first, events[0])
	require.Equal(t, "first", events[0].Title)
}
