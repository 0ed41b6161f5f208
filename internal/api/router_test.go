package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return api.NewRouter(api.Services{
		Analysis:  testutil.NewTestAnalysisService(t, db, nil, nil),
		Portfolio: testutil.NewTestPortfolioService(t, db, nil),
		System:    testutil.NewTestSystemService(t, db, service.Features{}),
	}, []string{"http://localhost:3000"}, logging.NewNop())
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/", http.StatusOK},
		{http.MethodGet, "/api/analyses", http.StatusOK},
		{http.MethodGet, "/api/portfolio", http.StatusOK},
		{http.MethodGet, "/api/system/health", http.StatusOK},
		{http.MethodGet, "/api/system/version", http.StatusOK},
		{http.MethodGet, "/api/analysis/not-a-uuid", http.StatusBadRequest},
		{http.MethodGet, "/api/analysis/550e8400-e29b-41d4-a716-446655440000", http.StatusNotFound},
		{http.MethodGet, "/api/analyze", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_AnalyzeSaveAndList(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/analyze", map[string]any{
		"title": "Trilocale Navigli", "location": "Milano", "price": 300000,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Analyze: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON response, got %q", w.Header().Get("Content-Type"))
	}
	analysis := testutil.DecodeJSON[model.AnalysisResult](t, w)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/save-analysis", map[string]any{
		"analysis_id": analysis.ID, "user_notes": "shortlist",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Save: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/"+analysis.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Get: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))
	portfolio := testutil.DecodeJSON[[]model.PortfolioEntry](t, w)
	if len(portfolio) != 1 || portfolio[0].Notes == nil || *portfolio[0].Notes != "shortlist" {
		t.Errorf("Expected one portfolio entry with notes, got %+v", portfolio)
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}
}
