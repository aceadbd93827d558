package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

// CandidateFilters narrows ListCandidates. Empty or "all" values are ignored.
type CandidateFilters struct {
	Stage  string
	JobID  string
	Search string
}

var candidateColumns = []string{
	"id", "name", "email", "phone", "stage", "job_id", "resume", "cover_letter",
	"notes", "timeline", "assessment_responses", "created_at", "updated_at",
}

func candidateArgs(c *models.Candidate) ([]any, error) {
	var enc encoder
	args := []any{
		c.ID, c.Name, c.Email, c.Phone, c.Stage, nullString(c.JobID), c.Resume, c.CoverLetter,
		enc.json(c.Notes), enc.json(c.Timeline), enc.json(c.AssessmentResponses),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	}
	return args, enc.err
}

func scanCandidate(row scanner) (*models.Candidate, error) {
	c := &models.Candidate{}
	var jobID sql.NullString
	var notes, timeline, responses, created, updated string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Stage, &jobID, &c.Resume, &c.CoverLetter,
		&notes, &timeline, &responses, &created, &updated)
	if err != nil {
		return nil, err
	}
	c.JobID = jobID.String
	var dec decoder
	dec.json(notes, &c.Notes)
	dec.json(timeline, &c.Timeline)
	dec.json(responses, &c.AssessmentResponses)
	c.CreatedAt = dec.time(created)
	c.UpdatedAt = dec.time(updated)
	return c, dec.err
}

func queryCandidates(ctx context.Context, q querier, query string, args ...any) ([]*models.Candidate, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []*models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func getCandidate(ctx context.Context, q querier, id string) (*models.Candidate, error) {
	c, err := scanCandidate(q.QueryRowContext(ctx, selectSQL(tableCandidates, candidateColumns)+" WHERE id=?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func insertCandidate(ctx context.Context, q querier, c *models.Candidate, upsert bool) error {
	args, err := candidateArgs(c)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, insertSQL(tableCandidates, candidateColumns, upsert), args...)
	return err
}

// newestFirst orders by recency; rowid breaks ties between equal timestamps
const newestFirst = " ORDER BY created_at DESC, rowid DESC"

// ListCandidates returns candidates matching the filters, most recent first
func (s *Store) ListCandidates(ctx context.Context, f CandidateFilters) ([]*models.Candidate, error) {
	var where []string
	var args []any
	if active(f.Stage) {
		where = append(where, "stage=?")
		args = append(args, f.Stage)
	}
	if active(f.JobID) {
		where = append(where, "job_id=?")
		args = append(args, f.JobID)
	}
	query := selectSQL(tableCandidates, candidateColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	candidates, err := queryCandidates(ctx, s.db, query+newestFirst, args...)
	if err != nil {
		return nil, s.fail(err, "Error fetching candidates", logrus.Fields{"stage": f.Stage, "job_id": f.JobID})
	}

	if f.Search == "" {
		return candidates, nil
	}
	term := strings.ToLower(f.Search)
	matched := []*models.Candidate{}
	for _, c := range candidates {
		if containsFold(c.Name, term) || containsFold(c.Email, term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// GetCandidate returns the candidate with the given id, or nil if there is none
func (s *Store) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := getCandidate(ctx, s.db, id)
	if err != nil {
		return nil, s.fail(err, "Error fetching candidate", logrus.Fields{"id": id})
	}
	if c == nil {
		s.log.WithField("id", id).Debug("Candidate not found")
	}
	return c, nil
}

// CreateCandidate inserts the candidate and records its initial stage on
// the timeline
func (s *Store) CreateCandidate(ctx context.Context, partial models.Candidate) (*models.Candidate, error) {
	preserve := partial.ID != ""
	c := models.NewCandidate(partial)
	s.hooks.runCreating(tableCandidates, c, s.now())

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertCandidate(ctx, tx, c, preserve); err != nil {
			return err
		}
		_, err := s.appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: c.ID,
			Type:        models.EventStageChange,
			Title:       "Application Submitted",
			Description: "Candidate applied for the position",
			Metadata:    models.EventMetadata{Stage: c.Stage},
		})
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error creating candidate", logrus.Fields{"id": c.ID})
	}
	s.log.WithFields(logrus.Fields{"id": c.ID, "preserved_id": preserve}).Debug("Candidate created")
	return c, nil
}

// UpdateCandidate merges the patch onto the stored candidate. A stage change
// appends one stage_change event with the before and after stage. It
// returns nil when the candidate does not exist.
func (s *Store) UpdateCandidate(ctx context.Context, id string, patch models.CandidatePatch) (*models.Candidate, error) {
	var c *models.Candidate
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		c, err = getCandidate(ctx, tx, id)
		if err != nil || c == nil {
			return err
		}
		fromStage := c.Stage

		patch.Apply(c)
		s.hooks.runUpdating(tableCandidates, c, s.now())
		args, err := candidateArgs(c)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateSQL(tableCandidates, candidateColumns), append(args[1:], c.ID)...); err != nil {
			return err
		}

		if c.Stage == fromStage {
			return nil
		}
		_, err = s.appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: c.ID,
			Type:        models.EventStageChange,
			Title:       fmt.Sprintf("Stage Changed to %s", c.Stage),
			Description: fmt.Sprintf("Candidate moved from %s to %s", fromStage, c.Stage),
			Metadata:    models.EventMetadata{FromStage: fromStage, ToStage: c.Stage},
		})
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error updating candidate", logrus.Fields{"id": id})
	}
	return c, nil
}

// DeleteCandidate removes the candidate with its timeline, notes and
// assessment responses
func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	if err := s.deleteCascade(ctx, tableCandidates, id); err != nil {
		return s.fail(err, "Error deleting candidate", logrus.Fields{"id": id})
	}
	return nil
}
