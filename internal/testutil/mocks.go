package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/engine"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/extractor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// MockTextGenerator is a mock implementation of advisor.TextGenerator for testing.
// It returns predefined text instead of calling a language model.
//
// Rent-estimate requests are recognised by engine.RentSystemPrompt and answered with
// RentReply; every other request gets InsightReply.
type MockTextGenerator struct {
	mu sync.Mutex

	// RentReply is returned for rent-estimate requests
	RentReply string
	// InsightReply is returned for every other request
	InsightReply string
	// MockError is returned from every call when set
	MockError error
	// Prompts records every user prompt received
	Prompts []string
}

// NewMockTextGenerator creates a mock that answers with a profitable rent estimate and a fixed insight.
func NewMockTextGenerator() *MockTextGenerator {
	return (&MockTextGenerator{InsightReply: "Mock insight."}).WithRentEstimate(model.RentEstimate{
		MonthlyRentConservative: 2000,
		MonthlyRentOptimistic:   2400,
		InvestmentScoreHint:     8,
		YoYAppreciation:         3,
		EstimatedValue:          310000,
	})
}

// Complete returns the configured reply or error.
func (m *MockTextGenerator) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, userPrompt)
	if m.MockError != nil {
		return "", m.MockError
	}
	if systemPrompt == engine.RentSystemPrompt {
		return m.RentReply, nil
	}
	return m.InsightReply, nil
}

// CallCount returns the number of Complete calls so far.
func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// WithError configures the mock to return the specified error.
func (m *MockTextGenerator) WithError(err error) *MockTextGenerator {
	m.MockError = err
	return m
}

// WithInsight configures the insight reply.
func (m *MockTextGenerator) WithInsight(text string) *MockTextGenerator {
	m.InsightReply = text
	return m
}

// WithRentReply configures the raw rent-estimate reply.
func (m *MockTextGenerator) WithRentReply(text string) *MockTextGenerator {
	m.RentReply = text
	return m
}

// WithRentEstimate configures a well-formed rent-estimate reply.
func (m *MockTextGenerator) WithRentEstimate(est model.RentEstimate) *MockTextGenerator {
	//nolint:errchkjson // map of float64 values always encodes
	body, _ := json.Marshal(map[string]float64{
		"monthly_rent_conservative": est.MonthlyRentConservative,
		"monthly_rent_optimistic":   est.MonthlyRentOptimistic,
		"investment_score":          float64(est.InvestmentScoreHint),
		"yoy_appreciation":          est.YoYAppreciation,
		"estimated_value":           est.EstimatedValue,
	})
	m.RentReply = string(body)
	return m
}

// MockExtractor is a mock implementation of extractor.Extractor for testing.
type MockExtractor struct {
	mu sync.Mutex

	// Draft is returned from Extract; SourceURL is overwritten with the requested URL
	Draft model.PropertyDraft
	// URLs records every requested URL
	URLs []string
}

// NewMockExtractor creates a mock that returns the extractor's fallback draft.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{Draft: extractor.FallbackDraft("")}
}

// WithDraft configures the draft to return.
func (m *MockExtractor) WithDraft(draft model.PropertyDraft) *MockExtractor {
	m.Draft = draft
	return m
}

// Extract returns the configured draft.
func (m *MockExtractor) Extract(_ context.Context, url string) model.PropertyDraft {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.URLs = append(m.URLs, url)
	draft := m.Draft
	draft.SourceURL = url
	return draft
}
