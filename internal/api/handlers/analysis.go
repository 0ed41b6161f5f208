package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/response"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/validation"
)

// API identification returned by the root endpoint.
const (
	APIName    = "Real Estate Investment Calculator API"
	APIVersion = "1.0"
)

// AnalysisHandler handles HTTP requests for property analyses.
// It parses and validates requests and delegates to the analysisService.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler with the provided service dependency.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// RootResponse identifies the API.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Root handles GET /api/.
func (h *AnalysisHandler) Root(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, RootResponse{Message: APIName, Version: APIVersion})
}

// Analyze handles POST requests to analyze a property from a listing URL or manual input.
// Extraction, rent estimate and insight failures fall back to defaults, so the only
// client-visible failures are invalid input and storage errors.
//
// Endpoint: POST /api/analyze
// Request Body: AnalyzeRequest (url, or title/location/price; optional financing)
// Response: 200 OK with model.AnalysisResult
// Error: 400 Bad Request if validation fails or financing is unusable
// Error: 500 Internal Server Error if the analysis cannot be stored
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AnalyzeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAnalyzeRequest(req); err != nil {
		respondValidationError(w, err)
		return
	}

	in := service.AnalyzeInput{
		Property:  req.Property(),
		Financing: req.FinancingConfig(),
	}
	if !req.IsManual() {
		in.SourceURL = req.URL
	}

	result, err := h.analysisService.Analyze(r.Context(), in)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidConfiguration) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidConfiguration.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToAnalyze.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// GetAnalysis handles GET requests to retrieve a stored analysis by ID.
//
// Endpoint: GET /api/analysis/{uuid}
// Response: 200 OK with model.AnalysisResult
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the analysis does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := chi.URLParam(r, "uuid")

	analysis, err := h.analysisService.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAnalysisNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAnalysisNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAnalysis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis)
}

// ListAnalyses handles GET requests to list recent analyses, newest first.
//
// Endpoint: GET /api/analyses
// Query Parameters:
//   - location: Exact property location to match (optional)
//   - limit: Number of analyses, 1-100 (optional, defaults to 50)
//
// Response: 200 OK with array of model.AnalysisResult
// Error: 400 Bad Request if a query parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters, err := request.ParseAnalysisFilters(q.Get("location"), q.Get("limit"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	analyses, err := h.analysisService.ListAnalyses(r.Context(), filters.Location, filters.Limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAnalysis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analyses)
}
