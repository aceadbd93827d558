package database

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

var responseColumns = []string{
	"id", "candidate_id", "assessment_id", "responses", "score", "completed_at", "time_spent", "created_at",
}

func responseArgs(r *models.AssessmentResponse) ([]any, error) {
	var enc encoder
	var score sql.NullFloat64
	if r.Score != nil {
		score = sql.NullFloat64{Float64: *r.Score, Valid: true}
	}
	var spent sql.NullInt64
	if r.TimeSpent != nil {
		spent = sql.NullInt64{Int64: *r.TimeSpent, Valid: true}
	}
	args := []any{
		r.ID, nullString(r.CandidateID), nullString(r.AssessmentID), enc.json(r.Responses),
		score, formatNullTime(r.CompletedAt), spent, formatTime(r.CreatedAt),
	}
	return args, enc.err
}

func scanResponse(row scanner) (*models.AssessmentResponse, error) {
	r := &models.AssessmentResponse{}
	var candidateID, assessmentID, completed sql.NullString
	var score sql.NullFloat64
	var spent sql.NullInt64
	var responses, created string
	err := row.Scan(&r.ID, &candidateID, &assessmentID, &responses, &score, &completed, &spent, &created)
	if err != nil {
		return nil, err
	}
	r.CandidateID = candidateID.String
	r.AssessmentID = assessmentID.String
	if score.Valid {
		r.Score = &score.Float64
	}
	if spent.Valid {
		r.TimeSpent = &spent.Int64
	}
	var dec decoder
	dec.json(responses, &r.Responses)
	r.CompletedAt = dec.nullTime(completed)
	r.CreatedAt = dec.time(created)
	return r, dec.err
}

func insertResponse(ctx context.Context, q querier, r *models.AssessmentResponse, upsert bool) error {
	args, err := responseArgs(r)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, insertSQL(tableResponses, responseColumns, upsert), args...)
	return err
}

// AssessmentResponse returns the first response of the candidate to the
// assessment, or nil. Only one is expected per pair; the store does not
// enforce it.
func (s *Store) AssessmentResponse(ctx context.Context, candidateID, assessmentID string) (*models.AssessmentResponse, error) {
	query := selectSQL(tableResponses, responseColumns) + " WHERE candidate_id=? AND assessment_id=? ORDER BY rowid LIMIT 1"
	r, err := scanResponse(s.db.QueryRowContext(ctx, query, candidateID, assessmentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(err, "Error fetching assessment response",
			logrus.Fields{"candidate_id": candidateID, "assessment_id": assessmentID})
	}
	return r, nil
}

// AssessmentResponses returns every response submitted to the assessment,
// most recent first
func (s *Store) AssessmentResponses(ctx context.Context, assessmentID string) ([]*models.AssessmentResponse, error) {
	rows, err := s.db.QueryContext(ctx, selectSQL(tableResponses, responseColumns)+" WHERE assessment_id=?"+newestFirst, assessmentID)
	if err != nil {
		return nil, s.fail(err, "Error fetching assessment responses", logrus.Fields{"assessment_id": assessmentID})
	}
	defer rows.Close()

	responses := []*models.AssessmentResponse{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, s.fail(err, "Error fetching assessment responses", logrus.Fields{"assessment_id": assessmentID})
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err, "Error fetching assessment responses", logrus.Fields{"assessment_id": assessmentID})
	}
	return responses, nil
}

// CreateAssessmentResponse stores a submission and records an
// assessment_completed event on the candidate's timeline
func (s *Store) CreateAssessmentResponse(ctx context.Context, partial models.AssessmentResponse) (*models.AssessmentResponse, error) {
	preserve := partial.ID != ""
	if partial.CreatedAt.IsZero() {
		partial.CreatedAt = s.now()
	}
	r := models.NewAssessmentResponse(partial)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertResponse(ctx, tx, r, preserve); err != nil {
			return err
		}
		_, err := s.appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: r.CandidateID,
			Type:        models.EventAssessmentCompleted,
			Title:       "Assessment Completed",
			Description: "Candidate completed the assessment",
			Metadata:    models.EventMetadata{AssessmentID: r.AssessmentID, ResponseID: r.ID},
		})
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error creating assessment response",
			logrus.Fields{"candidate_id": r.CandidateID, "assessment_id": r.AssessmentID})
	}
	return r, nil
}
