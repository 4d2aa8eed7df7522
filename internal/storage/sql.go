package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLSource reads documents from the documents table created by db.Open.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

func (s *SQLSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name=$1`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &FetchError{Name: name, Err: ErrNotFound}
	}
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return []byte(body), nil
}

func (s *SQLSource) Put(ctx context.Context, name string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents (name, body, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (name) DO UPDATE SET body=EXCLUDED.body, updated_at=EXCLUDED.updated_at`,
		name, string(body), time.Now().Unix())
	return err
}
