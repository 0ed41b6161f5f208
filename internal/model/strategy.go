package model

// RiskLevel is the risk tier of an investment strategy.
type RiskLevel string

const (
	RiskLow        RiskLevel = "low"
	RiskMedium     RiskLevel = "medium"
	RiskMediumHigh RiskLevel = "medium-high"
	RiskHigh       RiskLevel = "high"
)

// Strategy is one of the four fixed investment archetypes with its display figures filled in.
// InitialInvestment and MonthlyIncome are preformatted text, not typed amounts.
type Strategy struct {
	RiskLevel             RiskLevel `json:"risk_level"`
	StrategyName          string    `json:"strategy_name"`
	Description           string    `json:"description"`
	ExpectedReturn        string    `json:"expected_return"`
	TimeHorizon           string    `json:"time_horizon"`
	OperationalComplexity string    `json:"operational_complexity"`
	InitialInvestment     string    `json:"initial_investment"`
	MonthlyIncome         string    `json:"monthly_income"`
	KeyPoints             []string  `json:"key_points"`
	IsPremium             bool      `json:"is_premium"`
}
