package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// timeLayout is fixed width so that text order matches chronological order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullString stores an empty reference as NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

// encoder accumulates the first error of a sequence of JSON encodings
type encoder struct {
	err error
}

func (e *encoder) json(v any) string {
	if e.err != nil {
		return ""
	}
	s, err := encodeJSON(v)
	if err != nil {
		e.err = err
	}
	return s
}

// decoder accumulates the first error of a sequence of column decodings
type decoder struct {
	err error
}

func (d *decoder) json(s string, v any) {
	if d.err != nil {
		return
	}
	d.err = decodeJSON(s, v)
}

func (d *decoder) time(s string) time.Time {
	if d.err != nil {
		return time.Time{}
	}
	t, err := parseTime(s)
	if err != nil {
		d.err = err
	}
	return t
}

func (d *decoder) nullTime(s sql.NullString) *time.Time {
	if d.err != nil {
		return nil
	}
	t, err := parseNullTime(s)
	if err != nil {
		d.err = err
	}
	return t
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}
