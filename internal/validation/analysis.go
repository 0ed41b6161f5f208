package validation

import (
	"strings"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/request"
)

// ValidateAnalyzeRequest validates a property analysis request.
//
// Rules:
//   - url: Must be an http(s) URL if provided
//   - title, location, price: Required when no url is given
//   - price, size_sqm: Must be positive if provided
//   - rooms, bathrooms: Must not be negative
//   - financing: Percentages between 0 and 100, amounts not negative, mortgage_years 0-50
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateAnalyzeRequest(req request.AnalyzeRequest) error {
	errors := make(map[string]string)

	if err := checkStruct(req, errors); err != nil {
		return err
	}

	if req.IsManual() {
		if strings.TrimSpace(req.Title) == "" {
			errors["title"] = "title is required"
		}
		if strings.TrimSpace(req.Location) == "" {
			errors["location"] = "location is required"
		}
		if req.Price == nil {
			errors["price"] = "price is required"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSaveAnalysis validates a save-to-portfolio request.
//
// Required fields:
//   - analysis_id: Must be a valid UUID
//
// Optional fields:
//   - user_notes: At most 5000 characters
func ValidateSaveAnalysis(req request.SaveAnalysisRequest) error {
	errors := make(map[string]string)

	if err := checkStruct(req, errors); err != nil {
		return err
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
