package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Setting returns the raw JSON value stored under key, or nil if unset
func (s *Store) Setting(ctx context.Context, key string) (json.RawMessage, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key=?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(err, "Error fetching setting", logrus.Fields{"key": key})
	}
	return json.RawMessage(value), nil
}

// SetSetting stores value as JSON under key, replacing any previous value
func (s *Store) SetSetting(ctx context.Context, key string, value any) error {
	encoded, err := encodeJSON(value)
	if err != nil {
		return s.fail(err, "Error encoding setting", logrus.Fields{"key": key})
	}
	query := `INSERT INTO settings (key, value) VALUES (?, ?)
			  ON CONFLICT(key) DO UPDATE SET value=excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, encoded); err != nil {
		return s.fail(err, "Error saving setting", logrus.Fields{"key": key})
	}
	return nil
}
