package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/response"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// SaveAnalysisResponse confirms a saved analysis.
type SaveAnalysisResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SaveAnalysis handles POST requests to add an analysis to the portfolio.
// Saving an analysis that is already in the portfolio replaces its notes.
//
// Endpoint: POST /api/save-analysis
// Request Body: SaveAnalysisRequest (analysis_id, optional user_notes)
// Response: 200 OK with SaveAnalysisResponse
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the analysis does not exist
// Error: 500 Internal Server Error if saving fails
func (h *PortfolioHandler) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveAnalysisRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveAnalysis(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if _, err := h.portfolioService.SaveAnalysis(r.Context(), req.AnalysisID, req.UserNotes); err != nil {
		if errors.Is(err, apperrors.ErrAnalysisNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAnalysisNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveAnalysis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, SaveAnalysisResponse{
		Message: "Analysis saved to portfolio",
		ID:      req.AnalysisID,
	})
}

// Portfolio handles GET requests to list saved analyses with their notes.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of model.PortfolioEntry
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}
