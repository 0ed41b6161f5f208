package request

// SaveAnalysisRequest represents the request body for saving an analysis to the portfolio.
type SaveAnalysisRequest struct {
	AnalysisID string  `json:"analysis_id" validate:"required,uuid"`
	UserNotes  *string `json:"user_notes" validate:"omitempty,max=5000"`
}
