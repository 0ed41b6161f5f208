package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// Ratios used for the strategy display figures.
const (
	// displayDownPaymentRate is the down payment assumed by every strategy card.
	//
	// NOTE: this is a fixed 20% and ignores the FinancingConfig used for the metrics,
	// so a cash buyer still sees a 20% down payment on the cards. Kept as-is pending
	// product review; do not unify with the real financing without sign-off.
	displayDownPaymentRate = 0.20

	// RenovationBudgetRate is the value-add renovation budget as a share of price,
	// added to the initial investment only when the property needs renovation.
	RenovationBudgetRate = 0.15

	shortTermRentPremium = 1.5  // short-term nightly pricing over optimistic long-term rent
	flipProfitMargin     = 0.25 // low end of the fix-and-flip return band
)

type strategyTemplate struct {
	risk        model.RiskLevel
	name        string
	description string
	expected    string
	horizon     string
	complexity  string
	keyPoints   []string
	premium     bool
}

var strategyTemplates = [...]strategyTemplate{
	{
		risk:        model.RiskLow,
		name:        "Conservative Long-Term Hold",
		description: "Traditional buy-and-hold strategy with stable long-term rental income.",
		expected:    "4-6% annual return",
		horizon:     "10+ years",
		complexity:  "Low - minimal management",
		keyPoints: []string{
			"Long-term tenant contracts (3+ years)",
			"Minimal property modifications",
			"Focus on stable neighborhoods",
			"Conservative leverage (max 60% LTV)",
		},
	},
	{
		risk:        model.RiskMedium,
		name:        "Value-Add Renovation",
		description: "Purchase undervalued property, renovate, and increase rental income or resale value.",
		expected:    "12-18% total return",
		horizon:     "3-5 years",
		complexity:  "Medium - requires renovation management",
		keyPoints: []string{
			"Initial renovation budget: 15-20% of purchase price",
			"Focus on kitchen and bathroom upgrades",
			"Target 30% value increase post-renovation",
		},
		premium: true,
	},
	{
		risk:        model.RiskMediumHigh,
		name:        "Short-Term Rental Optimization",
		description: "Maximize returns through Airbnb/vacation rentals with professional management.",
		expected:    "15-25% annual return",
		horizon:     "2-5 years",
		complexity:  "High - active management required",
		keyPoints: []string{
			"Professional property management recommended",
			"Higher occupancy rates in tourist areas",
			"Seasonal pricing optimization",
		},
		premium: true,
	},
	{
		risk:        model.RiskHigh,
		name:        "Fix and Flip",
		description: "Aggressive renovation and quick resale strategy for maximum short-term gains.",
		expected:    "25-40% total return",
		horizon:     "6-12 months",
		complexity:  "Very High - intensive project management",
		keyPoints: []string{
			"Target distressed or undervalued properties",
			"Complete renovation in 3-4 months",
			"Strategic pricing for quick sale",
		},
		premium: true,
	},
}

// StrategyCount is the number of strategies GenerateStrategies always returns.
const StrategyCount = len(strategyTemplates)

// GenerateStrategies fills the four fixed strategy templates with figures for one property.
// Order is fixed: conservative hold, value-add renovation, short-term rental, fix and flip.
// Only the conservative hold is free.
func GenerateStrategies(property model.PropertyAttributes, metrics model.InvestmentMetrics) []model.Strategy {
	price := property.Price
	displayDown := price * displayDownPaymentRate
	monthlyCosts := metrics.AnnualCosts / 12

	renovation := 0.0
	if property.RenovationNeeded {
		renovation = price * RenovationBudgetRate
	}

	initial := [StrategyCount]float64{
		displayDown,
		displayDown + renovation,
		displayDown,
		displayDown,
	}
	income := [StrategyCount]string{
		perMonth(metrics.MonthlyCashFlow),
		perMonth(metrics.MonthlyRentOptimistic - monthlyCosts),
		perMonth(metrics.MonthlyRentOptimistic*shortTermRentPremium - monthlyCosts),
		FormatEuro(price*flipProfitMargin) + " profit",
	}

	strategies := make([]model.Strategy, 0, StrategyCount)
	for i, tmpl := range strategyTemplates {
		keyPoints := make([]string, 0, len(tmpl.keyPoints)+1)
		keyPoints = append(keyPoints, tmpl.keyPoints...)
		if tmpl.risk == model.RiskLow {
			keyPoints = append(keyPoints, "Projected monthly cash flow: "+FormatEuro(metrics.MonthlyCashFlow))
		}

		strategies = append(strategies, model.Strategy{
			RiskLevel:             tmpl.risk,
			StrategyName:          tmpl.name,
			Description:           tmpl.description,
			ExpectedReturn:        tmpl.expected,
			TimeHorizon:           tmpl.horizon,
			OperationalComplexity: tmpl.complexity,
			InitialInvestment:     FormatEuro(initial[i]),
			MonthlyIncome:         income[i],
			KeyPoints:             keyPoints,
			IsPremium:             tmpl.premium,
		})
	}

	return strategies
}

// FormatEuro renders an amount as whole euros with thousands separators, e.g. "€60,000" or "-€1,250".
func FormatEuro(amount float64) string {
	whole := int64(math.Round(amount))
	if whole < 0 {
		return "-€" + humanize.Comma(-whole)
	}
	return "€" + humanize.Comma(whole)
}

func perMonth(amount float64) string {
	return fmt.Sprintf("%s/month", FormatEuro(amount))
}
