package repository

import (
	"context"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// SavedAnalysisRepository stores portfolio bookmarks.
// A bookmark is keyed by the analysis it points at, so saving twice replaces the notes.
type SavedAnalysisRepository struct {
	store *DocumentStore
}

// NewSavedAnalysisRepository creates a new SavedAnalysisRepository on top of the document store.
func NewSavedAnalysisRepository(store *DocumentStore) *SavedAnalysisRepository {
	return &SavedAnalysisRepository{store: store}
}

// Save writes or replaces the bookmark for saved.AnalysisID.
// Returns apperrors.ErrAnalysisNotFound, writing nothing, when the analysis does not exist.
func (r *SavedAnalysisRepository) Save(ctx context.Context, saved model.SavedAnalysis) error {
	ok, err := r.store.UpsertIfExists(ctx, SavedAnalysesCollection, saved.AnalysisID, saved, saved.SavedAt,
		AnalysesCollection, saved.AnalysisID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrAnalysisNotFound
	}
	return nil
}

// List returns up to limit bookmarks, most recently saved first.
func (r *SavedAnalysisRepository) List(ctx context.Context, limit int) ([]model.SavedAnalysis, error) {
	docs, err := r.store.Find(ctx, SavedAnalysesCollection, nil, limit)
	if err != nil {
		return nil, err
	}
	return decodeAll[model.SavedAnalysis](docs)
}
