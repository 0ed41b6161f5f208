package model

import "time"

// AnalysisResult bundles everything produced for one property analysis.
// It is written once to the document store and never modified afterwards.
type AnalysisResult struct {
	ID           string             `json:"id"`
	PropertyData PropertyAttributes `json:"property_data"`
	Financing    FinancingConfig    `json:"financing"`
	Metrics      InvestmentMetrics  `json:"metrics"`
	Strategies   []Strategy         `json:"strategies"`
	AIInsights   string             `json:"ai_insights"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SavedAnalysis is a portfolio bookmark pointing at a stored analysis.
// UserNotes holds the ciphertext when notes encryption is enabled.
type SavedAnalysis struct {
	AnalysisID string    `json:"analysis_id"`
	UserNotes  *string   `json:"user_notes,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
}

// PortfolioEntry is a saved analysis joined with its full result, as returned to clients.
type PortfolioEntry struct {
	Analysis AnalysisResult `json:"analysis"`
	Notes    *string        `json:"notes"`
	SavedAt  time.Time      `json:"saved_at"`
}
