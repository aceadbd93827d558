package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

// JobFilters narrows ListJobs. Empty or "all" values are ignored.
type JobFilters struct {
	Status string
	Search string
}

var jobColumns = []string{
	"id", "title", "slug", "status", "tags", "sort_order", "description",
	"requirements", "benefits", "location", "salary", "type", "department",
	"created_at", "updated_at",
}

func jobArgs(j *models.Job) ([]any, error) {
	var enc encoder
	args := []any{
		j.ID, j.Title, j.Slug, j.Status, enc.json(j.Tags), j.Order, j.Description,
		enc.json(j.Requirements), enc.json(j.Benefits), j.Location, j.Salary, j.Type,
		j.Department, formatTime(j.CreatedAt), formatTime(j.UpdatedAt),
	}
	return args, enc.err
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	var tags, reqs, benefits, created, updated string
	err := row.Scan(&j.ID, &j.Title, &j.Slug, &j.Status, &tags, &j.Order, &j.Description,
		&reqs, &benefits, &j.Location, &j.Salary, &j.Type, &j.Department, &created, &updated)
	if err != nil {
		return nil, err
	}
	var dec decoder
	dec.json(tags, &j.Tags)
	dec.json(reqs, &j.Requirements)
	dec.json(benefits, &j.Benefits)
	j.CreatedAt = dec.time(created)
	j.UpdatedAt = dec.time(updated)
	return j, dec.err
}

func queryJobs(ctx context.Context, q querier, query string, args ...any) ([]*models.Job, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func getJob(ctx context.Context, q querier, id string) (*models.Job, error) {
	job, err := scanJob(q.QueryRowContext(ctx, selectSQL(tableJobs, jobColumns)+" WHERE id=?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

func insertJob(ctx context.Context, q querier, j *models.Job, upsert bool) error {
	args, err := jobArgs(j)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, insertSQL(tableJobs, jobColumns, upsert), args...)
	return err
}

func writeJob(ctx context.Context, q querier, j *models.Job) error {
	args, err := jobArgs(j)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, updateSQL(tableJobs, jobColumns), append(args[1:], j.ID)...)
	return err
}

const jobsByOrder = " ORDER BY sort_order ASC, rowid ASC"

// ListJobs returns jobs matching the filters, by ascending order
func (s *Store) ListJobs(ctx context.Context, f JobFilters) ([]*models.Job, error) {
	query := selectSQL(tableJobs, jobColumns)
	var args []any
	if active(f.Status) {
		query += " WHERE status=?"
		args = append(args, f.Status)
	}
	jobs, err := queryJobs(ctx, s.db, query+jobsByOrder, args...)
	if err != nil {
		return nil, s.fail(err, "Error fetching jobs", logrus.Fields{"status": f.Status})
	}

	if f.Search == "" {
		return jobs, nil
	}
	term := strings.ToLower(f.Search)
	matched := []*models.Job{}
	for _, j := range jobs {
		if jobMatches(j, term) {
			matched = append(matched, j)
		}
	}
	return matched, nil
}

func jobMatches(j *models.Job, term string) bool {
	if containsFold(j.Title, term) || containsFold(j.Description, term) {
		return true
	}
	for _, tag := range j.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	return false
}

// GetJob returns the job with the given id, or nil if there is none
func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := getJob(ctx, s.db, id)
	if err != nil {
		return nil, s.fail(err, "Error fetching job", logrus.Fields{"id": id})
	}
	return job, nil
}

// CreateJob fills defaults into the partial job and inserts it. A caller
// supplied id overwrites any existing job with that id.
func (s *Store) CreateJob(ctx context.Context, partial models.Job) (*models.Job, error) {
	preserve := partial.ID != ""
	job := models.NewJob(partial)
	s.hooks.runCreating(tableJobs, job, s.now())

	if err := insertJob(ctx, s.db, job, preserve); err != nil {
		return nil, s.fail(err, "Error creating job", logrus.Fields{"id": job.ID})
	}
	s.log.WithFields(logrus.Fields{"id": job.ID, "preserved_id": preserve}).Debug("Job created")
	return job, nil
}

// UpdateJob merges the patch onto the stored job. It returns nil when the
// job does not exist.
func (s *Store) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	var job *models.Job
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		job, err = getJob(ctx, tx, id)
		if err != nil || job == nil {
			return err
		}
		patch.Apply(job)
		s.hooks.runUpdating(tableJobs, job, s.now())
		return writeJob(ctx, tx, job)
	})
	if err != nil {
		return nil, s.fail(err, "Error updating job", logrus.Fields{"id": id})
	}
	return job, nil
}

// DeleteJob removes the job together with its candidates and assessments
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	if err := s.deleteCascade(ctx, tableJobs, id); err != nil {
		return s.fail(err, "Error deleting job", logrus.Fields{"id": id})
	}
	return nil
}

// ReorderJobs swaps the positions of the jobs currently at fromOrder and
// toOrder. If either position is empty nothing changes. The full job list
// is returned by ascending order either way.
func (s *Store) ReorderJobs(ctx context.Context, fromOrder, toOrder int) ([]*models.Job, error) {
	var jobs []*models.Job
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		all, err := queryJobs(ctx, tx, selectSQL(tableJobs, jobColumns)+jobsByOrder)
		if err != nil {
			return err
		}

		var from, to *models.Job
		for _, j := range all {
			if from == nil && j.Order == fromOrder {
				from = j
			}
			if to == nil && j.Order == toOrder {
				to = j
			}
		}

		if from != nil && to != nil && from.ID != to.ID {
			now := s.now()
			from.Order, to.Order = toOrder, fromOrder
			for _, j := range []*models.Job{from, to} {
				s.hooks.runUpdating(tableJobs, j, now)
				if err := writeJob(ctx, tx, j); err != nil {
					return err
				}
			}
		}

		jobs, err = queryJobs(ctx, tx, selectSQL(tableJobs, jobColumns)+jobsByOrder)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error reordering jobs", logrus.Fields{"from": fromOrder, "to": toOrder})
	}
	return jobs, nil
}
