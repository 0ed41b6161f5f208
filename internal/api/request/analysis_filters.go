package request

import (
	"fmt"
	"strconv"
	"strings"
)

// Analysis listing defaults.
const (
	DefaultAnalysisLimit = 50
	MaxAnalysisLimit     = 100
)

// AnalysisFilters narrows the analyses listing.
type AnalysisFilters struct {
	Location string
	Limit    int
}

// ParseAnalysisFilters extracts and validates listing filters from query parameters.
// Both parameters are optional.
//
// Validation rules:
//   - location: Trimmed; matched exactly against the property location
//   - limit: Must be between 1 and MaxAnalysisLimit (defaults to DefaultAnalysisLimit)
func ParseAnalysisFilters(locationParam, limitParam string) (*AnalysisFilters, error) {
	filters := &AnalysisFilters{
		Location: strings.TrimSpace(locationParam),
		Limit:    DefaultAnalysisLimit,
	}

	if limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: must be a number")
		}
		if limit < 1 || limit > MaxAnalysisLimit {
			return nil, fmt.Errorf("invalid limit: must be between 1 and %d", MaxAnalysisLimit)
		}
		filters.Limit = limit
	}

	return filters, nil
}
