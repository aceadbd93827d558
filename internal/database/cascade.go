package database

import (
	"context"
	"database/sql"
	"fmt"
)

// dependent names a table whose rows reference a parent through column
type dependent struct {
	table  string
	column string
}

// cascades lists, per parent table, the rows removed along with a parent.
// Deleting a job does not reach further than its candidates and
// assessments: their notes, timeline and responses stay behind.
var cascades = map[string][]dependent{
	tableJobs: {
		{tableCandidates, "job_id"},
		{tableAssessments, "job_id"},
	},
	tableCandidates: {
		{tableTimeline, "candidate_id"},
		{tableNotes, "candidate_id"},
		{tableResponses, "candidate_id"},
	},
	tableAssessments: {
		{tableResponses, "assessment_id"},
	},
}

// deleteCascade removes the row and its dependents in one transaction, so a
// failing step leaves nothing deleted
func (s *Store) deleteCascade(ctx context.Context, table, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id=?", table), id); err != nil {
			return err
		}
		for _, d := range cascades[table] {
			query := fmt.Sprintf("DELETE FROM %s WHERE %s=?", d.table, d.column)
			if _, err := tx.ExecContext(ctx, query, id); err != nil {
				return err
			}
		}
		return nil
	})
}
