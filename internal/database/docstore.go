package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DocumentStore provides per-user schemaless records with atomic field-merge
// writes. A merge updates exactly the named fields and leaves the rest of the
// document untouched; the whole merge applies or none of it does.
type DocumentStore struct {
	db *sqlx.DB
}

// NewDocumentStore creates a document store over the given connection.
func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// GetRecord fetches a document as a generic map. Returns ErrNotFound when the
// record is absent.
func (s *DocumentStore) GetRecord(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	var raw []byte
	query := s.db.Rebind("SELECT data FROM documents WHERE collection = ? AND id = ?")
	err := s.db.GetContext(ctx, &raw, query, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}

	doc := make(map[string]interface{})
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// SetField merges a single field into a document, creating it if needed.
func (s *DocumentStore) SetField(ctx context.Context, collection, id, field string, value interface{}) error {
	return s.SetFields(ctx, collection, id, map[string]interface{}{field: value})
}

// SetFields merges the given fields into a document, creating it if needed.
// All other fields of the document are untouched.
func (s *DocumentStore) SetFields(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	var query string
	if s.db.DriverName() == "postgres" {
		query = `
			INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
			ON CONFLICT (collection, id) DO UPDATE SET
				data = documents.data || EXCLUDED.data,
				updated_at = NOW()
		`
	} else {
		query = `
			INSERT INTO documents (collection, id, data) VALUES (?, ?, json(?))
			ON CONFLICT (collection, id) DO UPDATE SET
				data = json_patch(documents.data, excluded.data),
				updated_at = CURRENT_TIMESTAMP
		`
	}

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(payload)); err != nil {
		return fmt.Errorf("failed to merge into %s/%s: %w", collection, id, err)
	}
	return nil
}

// UpdateField sets a single field on an existing document. Unlike SetField it
// fails with ErrNotFound when the record does not exist.
func (s *DocumentStore) UpdateField(ctx context.Context, collection, id, field string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}

	var result sql.Result
	if s.db.DriverName() == "postgres" {
		query := `
			UPDATE documents SET
				data = jsonb_set(data, ARRAY[$1], $2::jsonb),
				updated_at = NOW()
			WHERE collection = $3 AND id = $4
		`
		result, err = s.db.ExecContext(ctx, query, field, string(encoded), collection, id)
	} else {
		query := `
			UPDATE documents SET
				data = json_set(data, ?, json(?)),
				updated_at = CURRENT_TIMESTAMP
			WHERE collection = ? AND id = ?
		`
		result, err = s.db.ExecContext(ctx, query, "$."+field, string(encoded), collection, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
