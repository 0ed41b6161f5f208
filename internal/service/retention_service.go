package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
)

// RetentionService purges analyses nobody saved once they are older than the retention window.
type RetentionService struct {
	analyses *repository.AnalysisRepository
	days     int
	logger   *logging.Logger
	now      func() time.Time
}

// NewRetentionService creates a new RetentionService. days <= 0 disables purging.
func NewRetentionService(analyses *repository.AnalysisRepository, days int, logger *logging.Logger) *RetentionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RetentionService{
		analyses: analyses,
		days:     days,
		logger:   logger.WithComponent("retention"),
		now:      time.Now,
	}
}

// Enabled reports whether a retention window is configured.
func (s *RetentionService) Enabled() bool {
	return s.days > 0
}

// PurgeExpired deletes unsaved analyses created more than the configured number of days ago.
// Returns the number of analyses removed.
func (s *RetentionService) PurgeExpired(ctx context.Context) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}

	cutoff := s.now().UTC().AddDate(0, 0, -s.days)
	n, err := s.analyses.DeleteUnsavedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToPurgeAnalyses, err)
	}

	if n > 0 {
		s.logger.Info("expired analyses purged", "count", n, "cutoff", cutoff)
	}
	return n, nil
}

// Run adapts PurgeExpired to the scheduler job signature.
func (s *RetentionService) Run(ctx context.Context) error {
	_, err := s.PurgeExpired(ctx)
	return err
}
