package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kanban-cli/internal/model"
)

const DefaultActivityLimit = 50

// NewActivity builds an activity entry with a fresh id and the current time.
func NewActivity(typ, entityID, summary string, payload any) (model.Activity, error) {
	id, err := NewID("act", nil)
	if err != nil {
		return model.Activity{}, err
	}
	return model.Activity{
		ID:       id,
		TS:       time.Now().UTC(),
		Type:     strings.TrimSpace(typ),
		EntityID: strings.TrimSpace(entityID),
		Summary:  summary,
		Payload:  payload,
	}, nil
}

func validateActivity(a model.Activity) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("activity: missing id")
	}
	if strings.TrimSpace(a.Type) == "" {
		return errors.New("activity: missing type")
	}
	return nil
}

func (s Store) AppendActivity(ctx context.Context, a model.Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO activity(id, ts_unixms, type, entity_id, json) VALUES(?, ?, ?, ?, ?)`,
		a.ID, a.TS.UTC().UnixMilli(), a.Type, a.EntityID, string(raw))
	return err
}

// ListActivity returns the most recent entries, newest first.
func (s Store) ListActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT json FROM activity ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Activity{}
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var a model.Activity
		if err := json.Unmarshal([]byte(js), &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
