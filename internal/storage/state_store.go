package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidKey   = errors.New("invalid state key")
	ErrInvalidValue = errors.New("state value must be valid JSON")
)

var keyValidator = validator.New()

// StateStore keeps small client-side state (comparison lists, saved
// preferences, streaks) as JSON blobs keyed by name.
type StateStore struct {
	db *sql.DB
}

// State returns the key/value store sharing this database.
func (s *SQLiteStore) State() *StateStore {
	return &StateStore{db: s.db}
}

func validateKey(key string) error {
	if err := keyValidator.Var(key, "required,max=200,printascii,excludesall= /\\"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func (s *StateStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_state WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(v), true, nil
}

// Put replaces the value stored under key.
func (s *StateStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if !json.Valid(value) {
		return ErrInvalidValue
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, key, string(value), time.Now().UTC())
	return err
}

func (s *StateStore) Delete(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_state WHERE key = ?`, key)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
