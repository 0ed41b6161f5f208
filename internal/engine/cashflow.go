package engine

// CashFlow holds the annual net cash flow for both rent scenarios.
type CashFlow struct {
	Conservative float64
	Optimistic   float64
}

// Average is the headline annual net cash flow.
func (c CashFlow) Average() float64 {
	return (c.Conservative + c.Optimistic) / 2
}

// ProjectCashFlow nets twelve months of rent against the annual running costs
// for the conservative and optimistic rent estimates.
func ProjectCashFlow(rentConservative, rentOptimistic, annualCosts float64) CashFlow {
	return CashFlow{
		Conservative: rentConservative*12 - annualCosts,
		Optimistic:   rentOptimistic*12 - annualCosts,
	}
}
