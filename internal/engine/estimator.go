package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// Fallback ratios used whenever the advisory estimate cannot be obtained.
const (
	FallbackConservativeRentRate = 0.003
	FallbackOptimisticRentRate   = 0.004
	FallbackScoreHint            = 6
	FallbackAppreciation         = 3.5
	FallbackValueMultiplier      = 1.02
)

// Plausibility band for advisory figures. A reply outside it is treated as malformed.
const (
	MinAppreciationPct  = -100.0 // exclusive
	MaxAppreciationPct  = 100.0
	MaxMonthlyRentRatio = 0.05 // monthly rent relative to price
	MaxValueRatio       = 10.0 // estimated value relative to price
)

// RentSystemPrompt is the system prompt of every rent-estimate request.
const RentSystemPrompt = "You are a real estate valuation expert for Italian residential property. " +
	"Respond with a single JSON object and nothing else."

// FallbackRentEstimate returns the deterministic estimate derived from price alone.
func FallbackRentEstimate(price float64) model.RentEstimate {
	return model.RentEstimate{
		MonthlyRentConservative: price * FallbackConservativeRentRate,
		MonthlyRentOptimistic:   price * FallbackOptimisticRentRate,
		YoYAppreciation:         FallbackAppreciation,
		InvestmentScoreHint:     FallbackScoreHint,
		EstimatedValue:          price * FallbackValueMultiplier,
		Source:                  model.RentEstimateFromFallback,
	}
}

// BuildRentPrompt renders the property and financing context for the rent estimate request.
func BuildRentPrompt(property model.PropertyAttributes, upfrontTotal, annualCosts float64) string {
	var sb strings.Builder

	sb.WriteString("Estimate the rental income and value of this property.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", property.Title)
	fmt.Fprintf(&sb, "Location: %s\n", property.Location)
	fmt.Fprintf(&sb, "Type: %s\n", property.PropertyType)
	fmt.Fprintf(&sb, "Asking price: €%s\n", humanize.Comma(int64(math.Round(property.Price))))
	fmt.Fprintf(&sb, "Size: %s sqm (€%s/sqm)\n",
		humanize.Ftoa(property.SizeSqm), humanize.Comma(int64(math.Round(property.PricePerSqm()))))
	if property.Rooms != nil {
		fmt.Fprintf(&sb, "Rooms: %d\n", *property.Rooms)
	}
	if property.Bathrooms != nil {
		fmt.Fprintf(&sb, "Bathrooms: %d\n", *property.Bathrooms)
	}
	if property.RenovationNeeded {
		sb.WriteString("Renovation needed: yes\n")
	}
	fmt.Fprintf(&sb, "Upfront capital: €%s\n", humanize.Comma(int64(math.Round(upfrontTotal))))
	fmt.Fprintf(&sb, "Annual costs (mortgage, tax, maintenance): €%s\n", humanize.Comma(int64(math.Round(annualCosts))))

	sb.WriteString("\nReturn exactly these keys:\n")
	sb.WriteString(`{"monthly_rent_conservative": number, "monthly_rent_optimistic": number, `)
	sb.WriteString(`"investment_score": integer 1-10, "yoy_appreciation": number (percent), "estimated_value": number}`)
	sb.WriteString("\n")

	return sb.String()
}

// rentResponse mirrors the expected JSON reply. Pointers detect missing keys.
type rentResponse struct {
	MonthlyRentConservative *float64 `json:"monthly_rent_conservative"`
	MonthlyRentOptimistic   *float64 `json:"monthly_rent_optimistic"`
	InvestmentScore         *float64 `json:"investment_score"`
	YoYAppreciation         *float64 `json:"yoy_appreciation"`
	EstimatedValue          *float64 `json:"estimated_value"`
}

// ParseRentResponse decodes the generator's reply for a property at price into a RentEstimate.
// The reply must be a single JSON object carrying every key; a surrounding markdown
// code fence is tolerated. Rents and value must be positive and within
// MaxMonthlyRentRatio and MaxValueRatio of price. Appreciation must lie in
// (MinAppreciationPct, MaxAppreciationPct]. The score is rounded and clamped to 1..10.
func ParseRentResponse(text string, price float64) (model.RentEstimate, error) {
	body := stripCodeFence(strings.TrimSpace(text))

	var resp rentResponse
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&resp); err != nil {
		return model.RentEstimate{}, fmt.Errorf("%w: %w", apperrors.ErrMalformedAdvisorResponse, err)
	}
	if dec.More() {
		return model.RentEstimate{}, fmt.Errorf("%w: trailing content after JSON object", apperrors.ErrMalformedAdvisorResponse)
	}

	maxRent := price * MaxMonthlyRentRatio
	fields := []struct {
		name     string
		value    *float64
		positive bool
		max      float64
	}{
		{"monthly_rent_conservative", resp.MonthlyRentConservative, true, maxRent},
		{"monthly_rent_optimistic", resp.MonthlyRentOptimistic, true, maxRent},
		{"investment_score", resp.InvestmentScore, false, math.MaxFloat64},
		{"yoy_appreciation", resp.YoYAppreciation, false, MaxAppreciationPct},
		{"estimated_value", resp.EstimatedValue, true, price * MaxValueRatio},
	}
	for _, f := range fields {
		if f.value == nil {
			return model.RentEstimate{}, fmt.Errorf("%w: missing %s", apperrors.ErrMalformedAdvisorResponse, f.name)
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return model.RentEstimate{}, fmt.Errorf("%w: %s is not finite", apperrors.ErrMalformedAdvisorResponse, f.name)
		}
		if f.positive && *f.value <= 0 {
			return model.RentEstimate{}, fmt.Errorf("%w: %s must be positive", apperrors.ErrMalformedAdvisorResponse, f.name)
		}
		if *f.value > f.max {
			return model.RentEstimate{}, fmt.Errorf("%w: %s exceeds %g", apperrors.ErrMalformedAdvisorResponse, f.name, f.max)
		}
	}
	if *resp.YoYAppreciation <= MinAppreciationPct {
		return model.RentEstimate{}, fmt.Errorf("%w: yoy_appreciation must be above %g", apperrors.ErrMalformedAdvisorResponse, MinAppreciationPct)
	}

	score := int(math.Round(*resp.InvestmentScore))
	score = min(max(score, minScore), maxScore)

	return model.RentEstimate{
		MonthlyRentConservative: *resp.MonthlyRentConservative,
		MonthlyRentOptimistic:   *resp.MonthlyRentOptimistic,
		YoYAppreciation:         *resp.YoYAppreciation,
		InvestmentScoreHint:     score,
		EstimatedValue:          *resp.EstimatedValue,
		Source:                  model.RentEstimateFromAdvisor,
	}, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
