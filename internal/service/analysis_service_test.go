package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/advisor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/engine"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/testutil"
)

func manualInput() service.AnalyzeInput {
	return service.AnalyzeInput{
		Property: model.PropertyAttributes{
			Title:        "Trilocale Navigli",
			Location:     "Milano",
			Price:        300000,
			PropertyType: model.PropertyTypeApartment,
			SizeSqm:      90,
		},
		Financing: model.DefaultFinancingConfig(),
	}
}

// TestAnalysisService_Analyze tests the full analysis pipeline.
func TestAnalysisService_Analyze(t *testing.T) {
	t.Run("stores manual analysis computed with fallback estimate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, nil)

		result, err := svc.Analyze(context.Background(), manualInput())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		if result.ID == "" || result.PropertyData.ID == "" {
			t.Errorf("Expected generated IDs, got analysis %q property %q", result.ID, result.PropertyData.ID)
		}
		if result.PropertyData.CreatedAt.IsZero() || !result.CreatedAt.Equal(result.PropertyData.CreatedAt) {
			t.Errorf("Expected matching creation times, got %v and %v", result.CreatedAt, result.PropertyData.CreatedAt)
		}
		if result.Metrics.InvestmentScore != 3 {
			t.Errorf("Expected loss-making score 3, got %d", result.Metrics.InvestmentScore)
		}
		if result.Metrics.MonthlyCashFlow != -485 {
			t.Errorf("Expected monthly cash flow -485, got %v", result.Metrics.MonthlyCashFlow)
		}
		if len(result.Strategies) != engine.StrategyCount {
			t.Errorf("Expected %d strategies, got %d", engine.StrategyCount, len(result.Strategies))
		}
		if result.AIInsights != advisor.FallbackInsight {
			t.Errorf("Expected fallback insight, got %q", result.AIInsights)
		}

		stored, err := svc.GetAnalysis(context.Background(), result.ID)
		if err != nil {
			t.Fatalf("GetAnalysis() returned unexpected error: %v", err)
		}
		if stored.Metrics != result.Metrics {
			t.Errorf("Stored metrics differ from returned metrics:\n got %+v\nwant %+v", stored.Metrics, result.Metrics)
		}
		if stored.PropertyData.Title != "Trilocale Navigli" {
			t.Errorf("Expected stored title, got %q", stored.PropertyData.Title)
		}
	})

	t.Run("uses generator for rent estimate and insight", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gen := testutil.NewMockTextGenerator().WithInsight("  Strong rental demand near the canals.  ")
		svc := testutil.NewTestAnalysisService(t, db, gen, nil)

		result, err := svc.Analyze(context.Background(), manualInput())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		if gen.CallCount() != 2 {
			t.Errorf("Expected 2 generator calls, got %d", gen.CallCount())
		}
		if result.AIInsights != "Strong rental demand near the canals." {
			t.Errorf("Expected trimmed generator insight, got %q", result.AIInsights)
		}
		if result.Metrics.EstimatedValue != 310000 {
			t.Errorf("Expected estimated value from generator, got %v", result.Metrics.EstimatedValue)
		}
	})

	t.Run("extracts property from url and keeps renovation flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ext := testutil.NewMockExtractor().WithDraft(model.PropertyDraft{
			Title:        "Bilocale Trastevere",
			Location:     "Roma",
			Price:        250000,
			PropertyType: model.PropertyTypeApartment,
			SizeSqm:      60,
			Rooms:        2,
			Bathrooms:    1,
		})
		svc := testutil.NewTestAnalysisService(t, db, nil, ext)

		in := service.AnalyzeInput{
			SourceURL: "https://example.com/listing/42",
			Property:  model.PropertyAttributes{RenovationNeeded: true, Title: "ignored"},
			Financing: model.DefaultFinancingConfig(),
		}
		result, err := svc.Analyze(context.Background(), in)
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		if len(ext.URLs) != 1 || ext.URLs[0] != in.SourceURL {
			t.Errorf("Expected one extraction of %q, got %v", in.SourceURL, ext.URLs)
		}
		p := result.PropertyData
		if p.Title != "Bilocale Trastevere" || p.Location != "Roma" || p.Price != 250000 {
			t.Errorf("Expected extracted attributes, got %+v", p)
		}
		if p.SourceURL != in.SourceURL {
			t.Errorf("Expected source url %q, got %q", in.SourceURL, p.SourceURL)
		}
		if !p.RenovationNeeded {
			t.Error("Expected renovation flag from request to be kept")
		}
		if p.Rooms == nil || *p.Rooms != 2 {
			t.Errorf("Expected 2 rooms, got %v", p.Rooms)
		}
	})

	t.Run("unreachable listing falls back to default draft", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, testutil.NewMockExtractor())

		result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
			SourceURL: "https://example.com/missing",
			Financing: model.DefaultFinancingConfig(),
		})
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if result.PropertyData.Price != 250000 || result.PropertyData.SizeSqm != 85 {
			t.Errorf("Expected fallback price and size, got %v and %v", result.PropertyData.Price, result.PropertyData.SizeSqm)
		}
	})

	t.Run("rejects invalid financing without storing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gen := testutil.NewMockTextGenerator()
		svc := testutil.NewTestAnalysisService(t, db, gen, nil)

		in := manualInput()
		in.Financing.MortgagePercentage = 120

		_, err := svc.Analyze(context.Background(), in)
		if !errors.Is(err, apperrors.ErrInvalidConfiguration) {
			t.Fatalf("Expected ErrInvalidConfiguration, got %v", err)
		}
		if gen.CallCount() != 0 {
			t.Errorf("Expected no generator calls, got %d", gen.CallCount())
		}

		list, err := svc.ListAnalyses(context.Background(), "", 0)
		if err != nil {
			t.Fatalf("ListAnalyses() returned unexpected error: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("Expected nothing stored, got %d analyses", len(list))
		}
	})

	t.Run("fails when database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, nil)
		db.Close()

		_, err := svc.Analyze(context.Background(), manualInput())
		if !errors.Is(err, apperrors.ErrFailedToAnalyze) {
			t.Errorf("Expected ErrFailedToAnalyze, got %v", err)
		}
	})
}

func TestAnalysisService_GetAnalysis(t *testing.T) {
	t.Run("returns not found for unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, nil)

		_, err := svc.GetAnalysis(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAnalysisNotFound) {
			t.Errorf("Expected ErrAnalysisNotFound, got %v", err)
		}
	})

	t.Run("returns stored analysis", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, nil)
		analysis := testutil.NewAnalysis().WithTitle("Attico Brera").Build(t, db)

		got, err := svc.GetAnalysis(context.Background(), analysis.ID)
		if err != nil {
			t.Fatalf("GetAnalysis() returned unexpected error: %v", err)
		}
		if got.PropertyData.Title != "Attico Brera" {
			t.Errorf("Expected title %q, got %q", "Attico Brera", got.PropertyData.Title)
		}
	})
}

func TestAnalysisService_StrategiesSurviveStorage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalysisService(t, db, testutil.NewMockTextGenerator(), nil)

	in := manualInput()
	in.Property.RenovationNeeded = true
	result, err := svc.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}

	stored, err := svc.GetAnalysis(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("GetAnalysis() returned unexpected error: %v", err)
	}

	want := engine.GenerateStrategies(result.PropertyData, result.Metrics)
	if !reflect.DeepEqual(stored.Strategies, want) {
		t.Errorf("Stored strategies differ from generated ones:\n got %+v\nwant %+v", stored.Strategies, want)
	}
	if stored.Strategies[1].InitialInvestment != "€105,000" {
		t.Errorf("Expected value-add initial investment with renovation budget, got %q", stored.Strategies[1].InitialInvestment)
	}
}

func TestAnalysisService_ListAnalyses(t *testing.T) {
	t.Run("filters by location newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, nil)

		base := time.Now()
		older := testutil.NewAnalysis().WithLocation("Torino").WithCreatedAt(base.Add(-2 * time.Hour)).Build(t, db)
		newer := testutil.NewAnalysis().WithLocation("Torino").WithCreatedAt(base.Add(-time.Hour)).Build(t, db)
		testutil.CreateAnalysis(t, db, "Napoli")

		list, err := svc.ListAnalyses(context.Background(), "Torino", 10)
		if err != nil {
			t.Fatalf("ListAnalyses() returned unexpected error: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 analyses, got %d", len(list))
		}
		if list[0].ID != newer.ID || list[1].ID != older.ID {
			t.Errorf("Expected newest first, got %s then %s", list[0].ID, list[1].ID)
		}
	})

	t.Run("limit is applied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, nil, nil)
		for range 3 {
			testutil.CreateAnalysis(t, db, "Bologna")
		}

		list, err := svc.ListAnalyses(context.Background(), "", 2)
		if err != nil {
			t.Fatalf("ListAnalyses() returned unexpected error: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("Expected 2 analyses, got %d", len(list))
		}
	})
}
