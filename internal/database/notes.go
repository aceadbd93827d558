package database

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

var noteColumns = []string{"id", "candidate_id", "content", "mentions", "tags", "created_at", "updated_at"}

func noteArgs(n *models.Note) ([]any, error) {
	var enc encoder
	args := []any{
		n.ID, nullString(n.CandidateID), n.Content, enc.json(n.Mentions), enc.json(n.Tags),
		formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
	}
	return args, enc.err
}

func scanNote(row scanner) (*models.Note, error) {
	n := &models.Note{}
	var candidateID sql.NullString
	var mentions, tags, created, updated string
	if err := row.Scan(&n.ID, &candidateID, &n.Content, &mentions, &tags, &created, &updated); err != nil {
		return nil, err
	}
	n.CandidateID = candidateID.String
	var dec decoder
	dec.json(mentions, &n.Mentions)
	dec.json(tags, &n.Tags)
	n.CreatedAt = dec.time(created)
	n.UpdatedAt = dec.time(updated)
	return n, dec.err
}

func getNote(ctx context.Context, q querier, id string) (*models.Note, error) {
	n, err := scanNote(q.QueryRowContext(ctx, selectSQL(tableNotes, noteColumns)+" WHERE id=?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

// CandidateNotes returns the candidate's notes, most recent first
func (s *Store) CandidateNotes(ctx context.Context, candidateID string) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx, selectSQL(tableNotes, noteColumns)+" WHERE candidate_id=?"+newestFirst, candidateID)
	if err != nil {
		return nil, s.fail(err, "Error fetching notes", logrus.Fields{"candidate_id": candidateID})
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, s.fail(err, "Error fetching notes", logrus.Fields{"candidate_id": candidateID})
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err, "Error fetching notes", logrus.Fields{"candidate_id": candidateID})
	}
	return notes, nil
}

// GetNote returns the note with the given id, or nil if there is none
func (s *Store) GetNote(ctx context.Context, id string) (*models.Note, error) {
	n, err := getNote(ctx, s.db, id)
	if err != nil {
		return nil, s.fail(err, "Error fetching note", logrus.Fields{"id": id})
	}
	return n, nil
}

// CreateNote inserts a note and records a note_added event on the
// candidate's timeline
func (s *Store) CreateNote(ctx context.Context, partial models.Note) (*models.Note, error) {
	preserve := partial.ID != ""
	n := models.NewNote(partial)
	s.hooks.runCreating(tableNotes, n, s.now())

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		args, err := noteArgs(n)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertSQL(tableNotes, noteColumns, preserve), args...); err != nil {
			return err
		}
		_, err = s.appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: n.CandidateID,
			Type:        models.EventNoteAdded,
			Title:       "Note Added",
			Description: "A new note was added to the candidate",
			Metadata:    models.EventMetadata{NoteID: n.ID},
		})
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error creating note", logrus.Fields{"candidate_id": n.CandidateID})
	}
	return n, nil
}

// UpdateNote merges the patch onto the stored note. It returns nil when the
// note does not exist.
func (s *Store) UpdateNote(ctx context.Context, id string, patch models.NotePatch) (*models.Note, error) {
	var n *models.Note
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = getNote(ctx, tx, id)
		if err != nil || n == nil {
			return err
		}
		patch.Apply(n)
		s.hooks.runUpdating(tableNotes, n, s.now())
		args, err := noteArgs(n)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, updateSQL(tableNotes, noteColumns), append(args[1:], n.ID)...)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "Error updating note", logrus.Fields{"id": id})
	}
	return n, nil
}

// DeleteNote removes a single note
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if err := s.deleteCascade(ctx, tableNotes, id); err != nil {
		return s.fail(err, "Error deleting note", logrus.Fields{"id": id})
	}
	return nil
}
