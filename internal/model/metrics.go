package model

// RentEstimateSource records where a RentEstimate came from.
type RentEstimateSource string

const (
	RentEstimateFromAdvisor  RentEstimateSource = "advisor"
	RentEstimateFromFallback RentEstimateSource = "fallback"
)

// RentEstimate is the rental-income and valuation estimate feeding the return calculation.
// It is produced once per analysis and never persisted on its own.
type RentEstimate struct {
	MonthlyRentConservative float64            `json:"monthly_rent_conservative"`
	MonthlyRentOptimistic   float64            `json:"monthly_rent_optimistic"`
	YoYAppreciation         float64            `json:"yoy_appreciation"`
	InvestmentScoreHint     int                `json:"investment_score_hint"` // 1-10
	EstimatedValue          float64            `json:"estimated_value"`
	Source                  RentEstimateSource `json:"source"`
}

// InvestmentMetrics is the derived, read-only result of an analysis.
//
// Invariants:
//   - ROIRangeMin <= ROIRangeMax
//   - ROERangeMin <= ROERangeMax
//   - 1 <= InvestmentScore <= 10
//
// Percentages are plain numbers rounded to one decimal (12.3 means 12.3%).
// Currency amounts are rounded to whole euros.
type InvestmentMetrics struct {
	InvestmentScore   int     `json:"investment_score"`
	ROIRangeMin       float64 `json:"roi_range_min"` // over the 5-year horizon
	ROIRangeMax       float64 `json:"roi_range_max"`
	ROERangeMin       float64 `json:"roe_range_min"` // annualised
	ROERangeMax       float64 `json:"roe_range_max"`
	AnnualNetCashFlow float64 `json:"annual_net_cashflow"`
	EstimatedValue    float64 `json:"estimated_value"`
	YoYAppreciation   float64 `json:"yoy_appreciation"`
	Projected5YrValue float64 `json:"projected_5yr_value"`

	UpfrontTotal            float64 `json:"upfront_total"`
	DownPayment             float64 `json:"down_payment"`
	MonthlyMortgagePayment  float64 `json:"monthly_mortgage_payment"`
	AnnualCosts             float64 `json:"annual_costs"`
	MonthlyRentConservative float64 `json:"monthly_rent_conservative"`
	MonthlyRentOptimistic   float64 `json:"monthly_rent_optimistic"`
	MonthlyCashFlow         float64 `json:"monthly_cash_flow"`
	CapRate                 float64 `json:"cap_rate"`
	ShortTermRentalYield    float64 `json:"short_term_rental_yield"`
	LongTermRentalYield     float64 `json:"long_term_rental_yield"`
	CashOnCashReturn        float64 `json:"cash_on_cash_return"`
}
