package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/secret"
)

// Portfolio listing limits.
const (
	PortfolioLimit       = 100
	portfolioLoadWorkers = 5
)

// PortfolioService manages saved analyses (the user's portfolio).
// Notes are encrypted before they reach the store and decrypted on the way out.
type PortfolioService struct {
	analyses *repository.AnalysisRepository
	saved    *repository.SavedAnalysisRepository
	cipher   *secret.NoteCipher
	logger   *logging.Logger
	now      func() time.Time
}

// NewPortfolioService creates a new PortfolioService.
// A nil cipher stores notes as plain text.
func NewPortfolioService(
	analyses *repository.AnalysisRepository,
	saved *repository.SavedAnalysisRepository,
	cipher *secret.NoteCipher,
	logger *logging.Logger,
) *PortfolioService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PortfolioService{
		analyses: analyses,
		saved:    saved,
		cipher:   cipher,
		logger:   logger.WithComponent("portfolio_service"),
		now:      time.Now,
	}
}

// SaveAnalysis bookmarks an existing analysis with optional notes.
// Saving the same analysis again replaces its notes and saved time.
//
// Returns apperrors.ErrAnalysisNotFound when analysisID does not exist.
func (s *PortfolioService) SaveAnalysis(ctx context.Context, analysisID string, notes *string) (model.SavedAnalysis, error) {
	saved := model.SavedAnalysis{
		AnalysisID: analysisID,
		SavedAt:    s.now().UTC(),
	}
	if notes != nil {
		stored, err := s.cipher.Encrypt(*notes)
		if err != nil {
			return model.SavedAnalysis{}, err
		}
		saved.UserNotes = &stored
	}

	// Save checks the analysis exists in the same statement that writes the bookmark.
	if err := s.saved.Save(ctx, saved); err != nil {
		if errors.Is(err, apperrors.ErrAnalysisNotFound) {
			return model.SavedAnalysis{}, err
		}
		return model.SavedAnalysis{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveAnalysis, err)
	}

	s.logger.WithContext(ctx).Info("analysis saved to portfolio", "analysis_id", analysisID, "has_notes", notes != nil)

	// Callers get the plain notes back, never the stored ciphertext.
	saved.UserNotes = notes
	return saved, nil
}

// GetPortfolio returns up to PortfolioLimit saved entries joined with their analyses,
// most recently saved first. Entries whose analysis no longer exists are skipped.
// Analyses are loaded concurrently; order follows the saved list.
func (s *PortfolioService) GetPortfolio(ctx context.Context) ([]model.PortfolioEntry, error) {
	saved, err := s.saved.List(ctx, PortfolioLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePortfolio, err)
	}

	entries := make([]*model.PortfolioEntry, len(saved))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(portfolioLoadWorkers)

	for i, item := range saved {
		g.Go(func() error {
			analysis, err := s.analyses.GetByID(gctx, item.AnalysisID)
			if errors.Is(err, apperrors.ErrAnalysisNotFound) {
				s.logger.WithContext(ctx).Warn("saved analysis missing, skipping", "analysis_id", item.AnalysisID)
				return nil
			}
			if err != nil {
				return err
			}

			entries[i] = &model.PortfolioEntry{
				Analysis: analysis,
				Notes:    s.decryptNotes(ctx, item),
				SavedAt:  item.SavedAt,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePortfolio, err)
	}

	portfolio := make([]model.PortfolioEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			portfolio = append(portfolio, *e)
		}
	}
	return portfolio, nil
}

// decryptNotes returns nil for notes that cannot be decrypted, e.g. after a key was removed.
func (s *PortfolioService) decryptNotes(ctx context.Context, item model.SavedAnalysis) *string {
	if item.UserNotes == nil {
		return nil
	}
	plain, err := s.cipher.Decrypt(*item.UserNotes)
	if err != nil {
		s.logger.WithContext(ctx).Warn("portfolio notes unreadable", "analysis_id", item.AnalysisID, "error", err)
		return nil
	}
	return &plain
}
