package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

// AssessmentFilters narrows ListAssessments. Empty or "all" values are ignored.
type AssessmentFilters struct {
	JobID  string
	Status string
}

var assessmentColumns = []string{
	"id", "job_id", "title", "description", "sections", "settings", "status", "created_at", "updated_at",
}

func assessmentArgs(a *models.Assessment) ([]any, error) {
	var enc encoder
	args := []any{
		a.ID, nullString(a.JobID), a.Title, a.Description, enc.json(a.Sections), enc.json(a.Settings),
		a.Status, formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	}
	return args, enc.err
}

func scanAssessment(row scanner) (*models.Assessment, error) {
	a := &models.Assessment{}
	var jobID sql.NullString
	var sections, settings, created, updated string
	err := row.Scan(&a.ID, &jobID, &a.Title, &a.Description, &sections, &settings, &a.Status, &created, &updated)
	if err != nil {
		return nil, err
	}
	a.JobID = jobID.String
	var dec decoder
	dec.json(sections, &a.Sections)
	dec.json(settings, &a.Settings)
	a.CreatedAt = dec.time(created)
	a.UpdatedAt = dec.time(updated)
	return a, dec.err
}

func queryAssessments(ctx context.Context, q querier, query string, args ...any) ([]*models.Assessment, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := []*models.Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func getAssessment(ctx context.Context, q querier, query string, args ...any) (*models.Assessment, error) {
	a, err := scanAssessment(q.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func insertAssessment(ctx context.Context, q querier, a *models.Assessment, upsert bool) error {
	args, err := assessmentArgs(a)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, insertSQL(tableAssessments, assessmentColumns, upsert), args...)
	return err
}

// ListAssessments returns assessments matching the filters, most recent first
func (s *Store) ListAssessments(ctx context.Context, f AssessmentFilters) ([]*models.Assessment, error) {
	var where []string
	var args []any
	if active(f.JobID) {
		where = append(where, "job_id=?")
		args = append(args, f.JobID)
	}
	if active(f.Status) {
		where = append(where, "status=?")
		args = append(args, f.Status)
	}
	query := selectSQL(tableAssessments, assessmentColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	assessments, err := queryAssessments(ctx, s.db, query+newestFirst, args...)
	if err != nil {
		return nil, s.fail(err, "Error fetching assessments", logrus.Fields{"job_id": f.JobID, "status": f.Status})
	}
	return assessments, nil
}

// GetAssessment returns the assessment with the given id, or nil if there is none
func (s *Store) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	a, err := getAssessment(ctx, s.db, selectSQL(tableAssessments, assessmentColumns)+" WHERE id=?", id)
	if err != nil {
		return nil, s.fail(err, "Error fetching assessment by ID", logrus.Fields{"id": id})
	}
	return a, nil
}

// AssessmentByJob returns the first assessment attached to the job, or nil
func (s *Store) AssessmentByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	a, err := getAssessment(ctx, s.db, selectSQL(tableAssessments, assessmentColumns)+" WHERE job_id=? ORDER BY rowid LIMIT 1", jobID)
	if err != nil {
		return nil, s.fail(err, "Error fetching assessment", logrus.Fields{"job_id": jobID})
	}
	return a, nil
}

// CreateAssessment fills defaults into the partial assessment and inserts
// it. A caller supplied id overwrites any existing assessment with that id.
func (s *Store) CreateAssessment(ctx context.Context, partial models.Assessment) (*models.Assessment, error) {
	preserve := partial.ID != ""
	a := models.NewAssessment(partial)
	s.hooks.runCreating(tableAssessments, a, s.now())

	if err := insertAssessment(ctx, s.db, a, preserve); err != nil {
		return nil, s.fail(err, "Error creating assessment", logrus.Fields{"id": a.ID})
	}
	s.log.WithFields(logrus.Fields{"id": a.ID, "preserved_id": preserve}).Debug("Assessment created")
	return a, nil
}

// UpdateAssessment merges the patch onto the stored assessment. It returns
// nil when the assessment does not exist.
func (s *Store) UpdateAssessment(ctx context.Context, id string, patch models.AssessmentPatch) (*models.Assessment, error) {
	var a *models.Assessment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		a, err = getAssessment(ctx, tx, selectSQL(tableAssessments, assessmentColumns)+" WHERE id=?", id)
		if err != nil || a == nil {
			return err
		}
		patch.Apply(a)
		s.hooks.runUpdating(tableAssessments, a, s.now())
		args, err := assessmentArgs(a)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, updateSQL(tableAssessments, assessmentColumns), append(args[1:], a.ID)...)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error updating assessment", logrus.Fields{"id": id})
	}
	return a, nil
}

// DeleteAssessment removes the assessment and its responses
func (s *Store) DeleteAssessment(ctx context.Context, id string) error {
	if err := s.deleteCascade(ctx, tableAssessments, id); err != nil {
		return s.fail(err, "Error deleting assessment", logrus.Fields{"id": id})
	}
	return nil
}
