package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

// Dataset is a batch of rows written as given, without factories or hooks
type Dataset struct {
	Jobs        []*models.Job                `json:"jobs"`
	Candidates  []*models.Candidate          `json:"candidates"`
	Assessments []*models.Assessment         `json:"assessments"`
	Timeline    []*models.TimelineEvent      `json:"timeline"`
	Notes       []*models.Note               `json:"notes"`
	Responses   []*models.AssessmentResponse `json:"assessmentResponses"`
}

// Stats returns the number of jobs, candidates and assessments
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	counts := []struct {
		table string
		dst   *int
	}{
		{tableJobs, &st.Jobs},
		{tableCandidates, &st.Candidates},
		{tableAssessments, &st.Assessments},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table)).Scan(c.dst); err != nil {
			return models.Stats{}, s.fail(err, "Error fetching stats", logrus.Fields{"table": c.table})
		}
	}
	return st, nil
}

// ClearAllData empties every entity table in one transaction. Settings
// are kept.
func (s *Store) ClearAllData(ctx context.Context) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, t := range entityTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail(err, "Error clearing data", nil)
	}
	s.log.Info("All data cleared")
	return nil
}

// prepare rejects null rows and gives rows without an id a fresh one.
// Every other field is kept as given.
func (d *Dataset) prepare() error {
	return errors.Join(
		prepareRows(d.Jobs, tableJobs, func(j *models.Job) *string { return &j.ID }),
		prepareRows(d.Candidates, tableCandidates, func(c *models.Candidate) *string { return &c.ID }),
		prepareRows(d.Assessments, tableAssessments, func(a *models.Assessment) *string { return &a.ID }),
		prepareRows(d.Timeline, tableTimeline, func(e *models.TimelineEvent) *string { return &e.ID }),
		prepareRows(d.Notes, tableNotes, func(n *models.Note) *string { return &n.ID }),
		prepareRows(d.Responses, tableResponses, func(r *models.AssessmentResponse) *string { return &r.ID }),
	)
}

func prepareRows[T any](rows []*T, table string, id func(*T) *string) error {
	for i, row := range rows {
		if row == nil {
			return fmt.Errorf("%w: %s[%d]", ErrNullRow, table, i)
		}
		if p := id(row); *p == "" {
			*p = models.NewID()
		}
	}
	return nil
}

// Import upserts every row of the dataset in one transaction. Rows without
// an id are inserted under a fresh one.
func (s *Store) Import(ctx context.Context, d Dataset) error {
	if err := d.prepare(); err != nil {
		return s.fail(err, "Error importing data", nil)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, j := range d.Jobs {
			if err := insertJob(ctx, tx, j, true); err != nil {
				return err
			}
		}
		for _, c := range d.Candidates {
			if err := insertCandidate(ctx, tx, c, true); err != nil {
				return err
			}
		}
		for _, a := range d.Assessments {
			if err := insertAssessment(ctx, tx, a, true); err != nil {
				return err
			}
		}
		for _, e := range d.Timeline {
			if err := insertEvent(ctx, tx, e, true); err != nil {
				return err
			}
		}
		for _, n := range d.Notes {
			args, err := noteArgs(n)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, insertSQL(tableNotes, noteColumns, true), args...); err != nil {
				return err
			}
		}
		for _, r := range d.Responses {
			if err := insertResponse(ctx, tx, r, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail(err, "Error importing data", logrus.Fields{
			"jobs": len(d.Jobs), "candidates": len(d.Candidates), "assessments": len(d.Assessments),
		})
	}
	return nil
}

// Export reads every entity table into a dataset
func (s *Store) Export(ctx context.Context) (Dataset, error) {
	var d Dataset
	var err error
	if d.Jobs, err = queryJobs(ctx, s.db, selectSQL(tableJobs, jobColumns)+jobsByOrder); err != nil {
		return Dataset{}, s.fail(err, "Error exporting jobs", nil)
	}
	if d.Candidates, err = queryCandidates(ctx, s.db, selectSQL(tableCandidates, candidateColumns)+" ORDER BY rowid"); err != nil {
		return Dataset{}, s.fail(err, "Error exporting candidates", nil)
	}
	if d.Assessments, err = queryAssessments(ctx, s.db, selectSQL(tableAssessments, assessmentColumns)+" ORDER BY rowid"); err != nil {
		return Dataset{}, s.fail(err, "Error exporting assessments", nil)
	}
	if d.Timeline, err = queryAll(ctx, s.db, selectSQL(tableTimeline, timelineColumns)+" ORDER BY rowid", scanTimelineEvent); err != nil {
		return Dataset{}, s.fail(err, "Error exporting timeline", nil)
	}
	if d.Notes, err = queryAll(ctx, s.db, selectSQL(tableNotes, noteColumns)+" ORDER BY rowid", scanNote); err != nil {
		return Dataset{}, s.fail(err, "Error exporting notes", nil)
	}
	if d.Responses, err = queryAll(ctx, s.db, selectSQL(tableResponses, responseColumns)+" ORDER BY rowid", scanResponse); err != nil {
		return Dataset{}, s.fail(err, "Error exporting responses", nil)
	}
	return d, nil
}

func queryAll[T any](ctx context.Context, q querier, query string, scan func(scanner) (*T, error)) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
