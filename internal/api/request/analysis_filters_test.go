package request

import (
	"testing"
)

func TestParseAnalysisFilters(t *testing.T) {
	t.Run("default values when no parameters provided", func(t *testing.T) {
		filters, err := ParseAnalysisFilters("", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.Location != "" {
			t.Errorf("Expected empty Location, got '%s'", filters.Location)
		}

		if filters.Limit != DefaultAnalysisLimit {
			t.Errorf("Expected default Limit %d, got %d", DefaultAnalysisLimit, filters.Limit)
		}
	})

	t.Run("location is trimmed", func(t *testing.T) {
		filters, err := ParseAnalysisFilters("  Milano ", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.Location != "Milano" {
			t.Errorf("Expected location 'Milano', got '%s'", filters.Location)
		}
	})

	t.Run("valid limits", func(t *testing.T) {
		for _, tc := range []struct {
			param string
			want  int
		}{{"1", 1}, {"25", 25}, {"100", 100}} {
			filters, err := ParseAnalysisFilters("", tc.param)
			if err != nil {
				t.Fatalf("limit=%s: expected no error, got %v", tc.param, err)
			}
			if filters.Limit != tc.want {
				t.Errorf("limit=%s: expected %d, got %d", tc.param, tc.want, filters.Limit)
			}
		}
	})

	t.Run("invalid limits return error", func(t *testing.T) {
		for _, param := range []string{"0", "-3", "101", "ten", "1.5"} {
			if _, err := ParseAnalysisFilters("", param); err == nil {
				t.Errorf("limit=%s: expected error, got nil", param)
			}
		}
	})
}
