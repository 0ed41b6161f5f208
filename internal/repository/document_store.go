package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
)

// timeLayout is fixed-width so created_at sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

var filterFieldPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)*$`)

// DocumentStore keeps JSON documents grouped by collection in the documents table.
// Documents are written whole and read back whole; there is no partial update.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a new DocumentStore with the provided database connection.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Insert stores doc under (collection, id). An existing document with the same key is an error.
func (s *DocumentStore) Insert(ctx context.Context, collection, id string, doc any, createdAt time.Time) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at) VALUES (?, ?, ?, ?)`,
		collection, id, string(body), FormatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s document: %w", collection, err)
	}
	return nil
}

// Upsert stores doc under (collection, id), replacing any existing document and its timestamp.
func (s *DocumentStore) Upsert(ctx context.Context, collection, id string, doc any, createdAt time.Time) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, created_at = excluded.created_at
	`, collection, id, string(body), FormatTime(createdAt))
	if err != nil {
		return fmt.Errorf("failed to upsert %s document: %w", collection, err)
	}
	return nil
}

// UpsertIfExists is Upsert guarded by the existence of (refCollection, refID), checked in the
// same statement so a concurrent delete of the referenced document cannot slip in between.
// Reports false, with nothing written, when the referenced document does not exist.
func (s *DocumentStore) UpsertIfExists(ctx context.Context, collection, id string, doc any, createdAt time.Time, refCollection, refID string) (bool, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at)
		SELECT ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM documents ref WHERE ref.collection = ? AND ref.id = ?)
		ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, created_at = excluded.created_at
	`, collection, id, string(body), FormatTime(createdAt), refCollection, refID)
	if err != nil {
		return false, fmt.Errorf("failed to upsert %s document: %w", collection, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to upsert %s document: %w", collection, err)
	}
	return n > 0, nil
}

// FindOne decodes the document (collection, id) into dest.
// Returns apperrors.ErrDocumentNotFound when no such document exists.
func (s *DocumentStore) FindOne(ctx context.Context, collection, id string, dest any) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrDocumentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query %s document: %w", collection, err)
	}

	if err := json.Unmarshal([]byte(body), dest); err != nil {
		return fmt.Errorf("failed to decode %s document %s: %w", collection, id, err)
	}
	return nil
}

// Find returns the raw bodies of documents in collection matching every filter entry,
// newest first. Filter keys are JSON paths such as "analysis_id" or "property_data.location"
// and are compared for equality. A limit <= 0 returns all matches.
func (s *DocumentStore) Find(ctx context.Context, collection string, filter map[string]any, limit int) ([]json.RawMessage, error) {
	query := `SELECT body FROM documents WHERE collection = ?`
	args := []any{collection}

	fields := make([]string, 0, len(filter))
	for field := range filter {
		if !filterFieldPattern.MatchString(field) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidFilterField, field)
		}
		fields = append(fields, field)
	}
	slices.Sort(fields)

	for _, field := range fields {
		value := filter[field]
		if b, ok := value.(bool); ok {
			// json_extract yields 1/0 for JSON booleans
			value = 0
			if b {
				value = 1
			}
		}
		//#nosec G202 -- Safe: field is validated against filterFieldPattern
		query += ` AND json_extract(body, '$.` + field + `') = ?`
		args = append(args, value)
	}

	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s documents: %w", collection, err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s documents: %w", collection, err)
	}

	return docs, nil
}

// Delete removes (collection, id). Deleting a missing document is not an error.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
		return fmt.Errorf("failed to delete %s document: %w", collection, err)
	}
	return nil
}

// Counts returns the number of documents per collection.
func (s *DocumentStore) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT collection, COUNT(*) FROM documents GROUP BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			collection string
			n          int64
		)
		if err := rows.Scan(&collection, &n); err != nil {
			return nil, fmt.Errorf("failed to scan document count: %w", err)
		}
		counts[collection] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document counts: %w", err)
	}
	return counts, nil
}

// FormatTime renders t in the fixed-width UTC layout used for created_at.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// decodeAll unmarshals raw documents into T, preserving order.
func decodeAll[T any](docs []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrDocumentNotFound)
}
