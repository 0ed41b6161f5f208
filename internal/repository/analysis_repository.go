package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// Collection names in the document store.
const (
	AnalysesCollection      = "analyses"
	SavedAnalysesCollection = "saved_analyses"
)

// AnalysisRepository stores immutable analysis results.
type AnalysisRepository struct {
	store *DocumentStore
}

// NewAnalysisRepository creates a new AnalysisRepository on top of the document store.
func NewAnalysisRepository(store *DocumentStore) *AnalysisRepository {
	return &AnalysisRepository{store: store}
}

// Insert writes a new analysis. Analyses are never updated afterwards.
func (r *AnalysisRepository) Insert(ctx context.Context, analysis model.AnalysisResult) error {
	return r.store.Insert(ctx, AnalysesCollection, analysis.ID, analysis, analysis.CreatedAt)
}

// GetByID retrieves one analysis, or apperrors.ErrAnalysisNotFound.
func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (model.AnalysisResult, error) {
	var analysis model.AnalysisResult
	if err := r.store.FindOne(ctx, AnalysesCollection, id, &analysis); err != nil {
		if isNotFound(err) {
			return model.AnalysisResult{}, apperrors.ErrAnalysisNotFound
		}
		return model.AnalysisResult{}, err
	}
	return analysis, nil
}

// List returns up to limit analyses, newest first. A non-empty location restricts
// the result to analyses whose property location matches exactly.
func (r *AnalysisRepository) List(ctx context.Context, location string, limit int) ([]model.AnalysisResult, error) {
	var filter map[string]any
	if location != "" {
		filter = map[string]any{"property_data.location": location}
	}
	docs, err := r.store.Find(ctx, AnalysesCollection, filter, limit)
	if err != nil {
		return nil, err
	}
	return decodeAll[model.AnalysisResult](docs)
}

// DeleteUnsavedBefore removes analyses created before cutoff that no saved entry references.
// Returns the number of analyses removed.
func (r *AnalysisRepository) DeleteUnsavedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.store.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE collection = ?
		  AND created_at < ?
		  AND NOT EXISTS (
		      SELECT 1 FROM documents saved
		      WHERE saved.collection = ? AND saved.id = documents.id
		  )
	`, AnalysesCollection, FormatTime(cutoff), SavedAnalysesCollection)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired analyses: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted analyses: %w", err)
	}
	return n, nil
}
