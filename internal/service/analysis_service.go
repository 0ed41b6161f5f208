package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/advisor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/engine"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/extractor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
)

// MaxListedAnalyses caps the number of analyses returned by ListAnalyses.
const MaxListedAnalyses = 100

// AnalyzeInput is a validated analysis request.
// When SourceURL is set the property is extracted from the listing and only
// Property.RenovationNeeded is taken from the request; otherwise Property is used as given.
type AnalyzeInput struct {
	SourceURL string
	Property  model.PropertyAttributes
	Financing model.FinancingConfig
}

// AnalysisService runs the analysis pipeline: extraction, calculation, advisory insight
// and persistence, in that order.
type AnalysisService struct {
	engine    *engine.Engine
	advisor   *advisor.Advisor
	extractor extractor.Extractor
	analyses  *repository.AnalysisRepository
	logger    *logging.Logger
	now       func() time.Time
}

// NewAnalysisService creates a new AnalysisService with its collaborators.
func NewAnalysisService(
	eng *engine.Engine,
	adv *advisor.Advisor,
	ext extractor.Extractor,
	analyses *repository.AnalysisRepository,
	logger *logging.Logger,
) *AnalysisService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AnalysisService{
		engine:    eng,
		advisor:   adv,
		extractor: ext,
		analyses:  analyses,
		logger:    logger.WithComponent("analysis_service"),
		now:       time.Now,
	}
}

// Analyze computes, annotates and stores a new analysis.
//
// Returns an error wrapping apperrors.ErrInvalidConfiguration for unusable financing
// inputs, or apperrors.ErrFailedToAnalyze when the result cannot be stored.
// Collaborator failures (extraction, rent estimate, insight) are absorbed by their fallbacks.
func (s *AnalysisService) Analyze(ctx context.Context, in AnalyzeInput) (model.AnalysisResult, error) {
	now := s.now().UTC()

	property := in.Property
	if in.SourceURL != "" {
		draft := s.extractor.Extract(ctx, in.SourceURL)
		property = PropertyFromDraft(draft)
		property.RenovationNeeded = in.Property.RenovationNeeded
	}
	property.ID = uuid.New().String()
	property.CreatedAt = now

	metrics, strategies, err := s.engine.ComputeAnalysis(ctx, property, in.Financing)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	result := model.AnalysisResult{
		ID:           uuid.New().String(),
		PropertyData: property,
		Financing:    in.Financing,
		Metrics:      metrics,
		Strategies:   strategies,
		AIInsights:   s.advisor.Insights(ctx, property, metrics),
		CreatedAt:    now,
	}

	if err := s.analyses.Insert(ctx, result); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToAnalyze, err)
	}

	s.logger.WithContext(ctx).Info("analysis stored",
		"analysis_id", result.ID,
		"source", sourceLabel(in.SourceURL),
		"investment_score", metrics.InvestmentScore,
	)

	return result, nil
}

// GetAnalysis retrieves a stored analysis by ID.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (model.AnalysisResult, error) {
	analysis, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAnalysisNotFound) {
			return model.AnalysisResult{}, err
		}
		return model.AnalysisResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveAnalysis, err)
	}
	return analysis, nil
}

// ListAnalyses returns recent analyses, optionally restricted to one location.
// limit is clamped to 1..MaxListedAnalyses.
func (s *AnalysisService) ListAnalyses(ctx context.Context, location string, limit int) ([]model.AnalysisResult, error) {
	if limit <= 0 || limit > MaxListedAnalyses {
		limit = MaxListedAnalyses
	}
	analyses, err := s.analyses.List(ctx, location, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveAnalysis, err)
	}
	return analyses, nil
}

// PropertyFromDraft converts an extracted listing draft into property attributes.
func PropertyFromDraft(draft model.PropertyDraft) model.PropertyAttributes {
	rooms, bathrooms := draft.Rooms, draft.Bathrooms
	return model.PropertyAttributes{
		Title:        draft.Title,
		Location:     draft.Location,
		Price:        draft.Price,
		PropertyType: draft.PropertyType,
		SizeSqm:      draft.SizeSqm,
		Rooms:        &rooms,
		Bathrooms:    &bathrooms,
		SourceURL:    draft.SourceURL,
		ImageURL:     draft.ImageURL,
	}
}

func sourceLabel(url string) string {
	if url != "" {
		return "url"
	}
	return "manual"
}
