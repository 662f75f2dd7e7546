package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var errNotFound = errors.New("record not found")

// userStore persists user records as JSON documents keyed by a
// server-assigned uuid.
type userStore struct {
	db *sql.DB
}

func newUserStore(ctx context.Context, db *sql.DB) (*userStore, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS users (
		id   TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("creating users table: %w", err)
	}
	return &userStore{db: db}, nil
}

// record merges the stored document with its id.
func record(id string, data []byte) (map[string]any, error) {
	rec := map[string]any{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", id, err)
	}
	rec["id"] = id
	return rec, nil
}

func (s *userStore) list(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, data FROM users ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		rec, err := record(id, data)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *userStore) get(ctx context.Context, id string) (map[string]any, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM users WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return record(id, data)
}

func (s *userStore) create(ctx context.Context, fields map[string]any) (map[string]any, error) {
	delete(fields, "id")
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, data) VALUES (?, ?)`, id, data); err != nil {
		return nil, err
	}
	return record(id, data)
}

// update replaces the document wholesale; no partial patch semantics.
func (s *userStore) update(ctx context.Context, id string, fields map[string]any) (map[string]any, error) {
	delete(fields, "id")
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET data = ? WHERE id = ?`, data, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errNotFound
	}
	return record(id, data)
}

func (s *userStore) delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errNotFound
	}
	return nil
}
