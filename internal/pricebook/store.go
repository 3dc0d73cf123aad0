package pricebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested document has never been published.
var ErrNotFound = errors.New("pricebook: document not found")

// DocumentStore persists the admin-owned configuration documents.
type DocumentStore interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	PutDocument(ctx context.Context, key string, doc []byte) error
}

// PGStore keeps each configuration section as a JSONB document row.
type PGStore struct {
	Pool *pgxpool.Pool
}

// GetDocument loads the raw JSON document for key.
func (s PGStore) GetDocument(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := s.Pool.QueryRow(ctx, `SELECT doc FROM pricebook_documents WHERE key = $1`, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %q: %w", key, err)
	}
	return doc, nil
}

// PutDocument upserts the JSON document for key.
func (s PGStore) PutDocument(ctx context.Context, key string, doc []byte) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO pricebook_documents (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, doc)
	if err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}
