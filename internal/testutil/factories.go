package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/engine"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
)

// AnalysisBuilder provides a fluent interface for creating stored analyses.
// Metrics and strategies are computed with the fallback rent estimate so the
// stored figures are deterministic.
//
// Example usage:
//
//	// Simple creation with defaults
//	analysis := testutil.NewAnalysis().Build(t, db)
//
//	// Customized analysis
//	analysis := testutil.NewAnalysis().
//	    WithLocation("Roma").
//	    WithPrice(420000).
//	    WithCreatedAt(time.Now().AddDate(0, 0, -120)).
//	    Build(t, db)
type AnalysisBuilder struct {
	ID        string
	Title     string
	Location  string
	Price     float64
	SizeSqm   float64
	Renovate  bool
	Financing model.FinancingConfig
	Insights  string
	CreatedAt time.Time
}

// NewAnalysis creates an AnalysisBuilder with sensible defaults.
func NewAnalysis() *AnalysisBuilder {
	return &AnalysisBuilder{
		ID:        MakeID(),
		Title:     "Trilocale Navigli",
		Location:  "Milano",
		Price:     300000,
		SizeSqm:   90,
		Financing: model.DefaultFinancingConfig(),
		Insights:  "Test insight.",
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *AnalysisBuilder) WithID(id string) *AnalysisBuilder {
	b.ID = id
	return b
}

// WithTitle sets a custom property title.
func (b *AnalysisBuilder) WithTitle(title string) *AnalysisBuilder {
	b.Title = title
	return b
}

// WithLocation sets a custom property location.
func (b *AnalysisBuilder) WithLocation(location string) *AnalysisBuilder {
	b.Location = location
	return b
}

// WithPrice sets a custom asking price.
func (b *AnalysisBuilder) WithPrice(price float64) *AnalysisBuilder {
	b.Price = price
	return b
}

// NeedsRenovation flags the property as needing renovation.
func (b *AnalysisBuilder) NeedsRenovation() *AnalysisBuilder {
	b.Renovate = true
	return b
}

// WithCreatedAt sets a custom creation time.
func (b *AnalysisBuilder) WithCreatedAt(createdAt time.Time) *AnalysisBuilder {
	b.CreatedAt = createdAt.UTC()
	return b
}

// Result assembles the analysis without storing it.
func (b *AnalysisBuilder) Result(t *testing.T) model.AnalysisResult {
	t.Helper()

	property := model.PropertyAttributes{
		ID:               MakeID(),
		Title:            b.Title,
		Location:         b.Location,
		Price:            b.Price,
		PropertyType:     model.PropertyTypeApartment,
		SizeSqm:          b.SizeSqm,
		RenovationNeeded: b.Renovate,
		CreatedAt:        b.CreatedAt,
	}

	metrics, strategies, err := engine.New(nil).ComputeAnalysis(context.Background(), property, b.Financing)
	if err != nil {
		t.Fatalf("Failed to compute test analysis: %v", err)
	}

	return model.AnalysisResult{
		ID:           b.ID,
		PropertyData: property,
		Financing:    b.Financing,
		Metrics:      metrics,
		Strategies:   strategies,
		AIInsights:   b.Insights,
		CreatedAt:    b.CreatedAt,
	}
}

// Build creates the analysis in the database and returns it.
func (b *AnalysisBuilder) Build(t *testing.T, db *sql.DB) model.AnalysisResult {
	t.Helper()

	analysis := b.Result(t)
	repo := repository.NewAnalysisRepository(repository.NewDocumentStore(db))
	if err := repo.Insert(context.Background(), analysis); err != nil {
		t.Fatalf("Failed to create test analysis: %v", err)
	}
	return analysis
}

// Convenience functions

// CreateAnalysis creates an analysis for the given location with default values.
//
// Example usage:
//
//	analysis := testutil.CreateAnalysis(t, db, "Torino")
func CreateAnalysis(t *testing.T, db *sql.DB, location string) model.AnalysisResult {
	t.Helper()
	return NewAnalysis().WithLocation(location).Build(t, db)
}

// SaveAnalysis bookmarks an analysis directly through the repository, storing notes as given.
//
// Example usage:
//
//	testutil.SaveAnalysis(t, db, analysis.ID, nil, time.Now())
func SaveAnalysis(t *testing.T, db *sql.DB, analysisID string, notes *string, savedAt time.Time) model.SavedAnalysis {
	t.Helper()

	saved := model.SavedAnalysis{AnalysisID: analysisID, UserNotes: notes, SavedAt: savedAt.UTC()}
	repo := repository.NewSavedAnalysisRepository(repository.NewDocumentStore(db))
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("Failed to save test analysis: %v", err)
	}
	return saved
}
