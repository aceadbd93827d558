package database

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

var timelineColumns = []string{"id", "candidate_id", "type", "title", "description", "metadata", "created_at"}

func scanTimelineEvent(row scanner) (*models.TimelineEvent, error) {
	e := &models.TimelineEvent{}
	var candidateID sql.NullString
	var metadata, created string
	if err := row.Scan(&e.ID, &candidateID, &e.Type, &e.Title, &e.Description, &metadata, &created); err != nil {
		return nil, err
	}
	e.CandidateID = candidateID.String
	var dec decoder
	dec.json(metadata, &e.Metadata)
	e.CreatedAt = dec.time(created)
	return e, dec.err
}

// appendEvent inserts a timeline event. Events are append-only; they carry
// the createdAt set at construction and have no lifecycle hooks. A duplicate
// id fails the insert.
func (s *Store) appendEvent(ctx context.Context, q querier, partial models.TimelineEvent) (*models.TimelineEvent, error) {
	if partial.CreatedAt.IsZero() {
		partial.CreatedAt = s.now()
	}
	e := models.NewTimelineEvent(partial)

	if err := insertEvent(ctx, q, e, false); err != nil {
		return nil, err
	}
	return e, nil
}

// insertEvent writes the event as given. Only Import upserts, to restore
// exported rows.
func insertEvent(ctx context.Context, q querier, e *models.TimelineEvent, upsert bool) error {
	metadata, err := encodeJSON(e.Metadata)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, insertSQL(tableTimeline, timelineColumns, upsert),
		e.ID, nullString(e.CandidateID), e.Type, e.Title, e.Description, metadata, formatTime(e.CreatedAt))
	return err
}

// CreateTimelineEvent appends an event to a candidate's timeline
func (s *Store) CreateTimelineEvent(ctx context.Context, partial models.TimelineEvent) (*models.TimelineEvent, error) {
	e, err := s.appendEvent(ctx, s.db, partial)
	if err != nil {
		return nil, s.fail(err, "Error creating timeline event", logrus.Fields{"candidate_id": partial.CandidateID})
	}
	return e, nil
}

// CandidateTimeline returns the candidate's events, most recent first
func (s *Store) CandidateTimeline(ctx context.Context, candidateID string) ([]*models.TimelineEvent, error) {
	rows, err := s.db.QueryContext(ctx, selectSQL(tableTimeline, timelineColumns)+" WHERE candidate_id=?"+newestFirst, candidateID)
	if err != nil {
		return nil, s.fail(err, "Error fetching timeline", logrus.Fields{"candidate_id": candidateID})
	}
	defer rows.Close()

	events := []*models.TimelineEvent{}
	for rows.Next() {
		e, err := scanTimelineEvent(rows)
		if err != nil {
			return nil, s.fail(err, "Error fetching timeline", logrus.Fields{"candidate_id": candidateID})
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err, "Error fetching timeline", logrus.Fields{"candidate_id": candidateID})
	}
	return events, nil
}
