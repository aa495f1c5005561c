package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/denisok6893-rgb/property-insights/internal/alerts"
)

func (s *SQLiteStore) CreateAlert(ctx context.Context, userID, name string, c alerts.Criteria) (alerts.Alert, error) {
	if err := c.Validate(); err != nil {
		return alerts.Alert{}, err
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return alerts.Alert{}, fmt.Errorf("marshal criteria: %w", err)
	}

	a := alerts.Alert{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Criteria:  c,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO alerts (id, user_id, name, criteria_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, string(raw), a.CreatedAt)
	if err != nil {
		return alerts.Alert{}, err
	}
	return a, nil
}

func (s *SQLiteStore) GetAlert(ctx context.Context, id string) (alerts.Alert, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, name, criteria_json, created_at FROM alerts WHERE id = ?`, id)
	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return alerts.Alert{}, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (s *SQLiteStore) ListAlerts(ctx context.Context, userID string) ([]alerts.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, name, criteria_json, created_at
FROM alerts WHERE user_id = ?
ORDER BY created_at DESC, id
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []alerts.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteAlert(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func scanAlert(row rowScanner) (alerts.Alert, error) {
	var a alerts.Alert
	var raw string
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &raw, &a.CreatedAt); err != nil {
		return alerts.Alert{}, err
	}
	if err := json.Unmarshal([]byte(raw), &a.Criteria); err != nil {
		return alerts.Alert{}, fmt.Errorf("unmarshal criteria of alert %s: %w", a.ID, err)
	}
	return a, nil
}
