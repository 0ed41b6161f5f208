package engine

import (
	"math"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// HorizonYears is the fixed projection window for ROI and appreciation.
const HorizonYears = 5

// LossMakingScoreCap is the highest investment score a deal with a negative
// average ROI, average ROE or net cash flow can receive.
const LossMakingScoreCap = 3

const (
	minScore = 1
	maxScore = 10
)

// ReturnInputs collects everything the return calculator needs.
type ReturnInputs struct {
	Price     float64
	Financing Financing
	Rent      model.RentEstimate
	CashFlow  CashFlow
}

// CalculateReturns derives the investment metrics from financing, rent and cash flow.
//
// ROI covers the whole horizon: five years of net cash flow plus capital appreciation,
// divided by upfront capital. ROE is annual: net cash flow divided by equity, where
// equity is the down payment or, for a purchase without leverage, the full price.
// Both ranges are ordered low to high whichever scenario produced each bound.
func CalculateReturns(in ReturnInputs) model.InvestmentMetrics {
	price := in.Price
	fin := in.Financing
	rent := in.Rent
	cf := in.CashFlow

	projected := price * math.Pow(1+rent.YoYAppreciation/100, HorizonYears)
	appreciation := projected - price

	roiConservative := safeDiv(cf.Conservative*HorizonYears+appreciation, fin.UpfrontTotal) * 100
	roiOptimistic := safeDiv(cf.Optimistic*HorizonYears+appreciation, fin.UpfrontTotal) * 100

	equity := fin.DownPayment
	if equity <= 0 {
		equity = price
	}
	roeConservative := safeDiv(cf.Conservative, equity) * 100
	roeOptimistic := safeDiv(cf.Optimistic, equity) * 100

	annualCashFlow := cf.Average()
	avgROI := (roiConservative + roiOptimistic) / 2
	avgROE := (roeConservative + roeOptimistic) / 2

	operatingCosts := fin.AnnualCosts - fin.MonthlyDebtService*12
	avgRent := (rent.MonthlyRentConservative + rent.MonthlyRentOptimistic) / 2
	netOperatingIncome := avgRent*12 - operatingCosts

	return model.InvestmentMetrics{
		InvestmentScore:   InvestmentScore(rent.InvestmentScoreHint, avgROI, avgROE, annualCashFlow),
		ROIRangeMin:       roundPct(math.Min(roiConservative, roiOptimistic)),
		ROIRangeMax:       roundPct(math.Max(roiConservative, roiOptimistic)),
		ROERangeMin:       roundPct(math.Min(roeConservative, roeOptimistic)),
		ROERangeMax:       roundPct(math.Max(roeConservative, roeOptimistic)),
		AnnualNetCashFlow: roundCurrency(annualCashFlow),
		EstimatedValue:    roundCurrency(rent.EstimatedValue),
		YoYAppreciation:   roundPct(rent.YoYAppreciation),
		Projected5YrValue: roundCurrency(projected),

		UpfrontTotal:            roundCurrency(fin.UpfrontTotal),
		DownPayment:             roundCurrency(fin.DownPayment),
		MonthlyMortgagePayment:  roundCurrency(fin.MonthlyDebtService),
		AnnualCosts:             roundCurrency(fin.AnnualCosts),
		MonthlyRentConservative: roundCurrency(rent.MonthlyRentConservative),
		MonthlyRentOptimistic:   roundCurrency(rent.MonthlyRentOptimistic),
		MonthlyCashFlow:         roundCurrency(annualCashFlow / 12),
		CapRate:                 roundPct(safeDiv(netOperatingIncome, price) * 100),
		ShortTermRentalYield:    roundPct(safeDiv(rent.MonthlyRentOptimistic*12, price) * 100),
		LongTermRentalYield:     roundPct(safeDiv(rent.MonthlyRentConservative*12, price) * 100),
		CashOnCashReturn:        roundPct(safeDiv(annualCashFlow, fin.UpfrontTotal) * 100),
	}
}

// MetricsFinite reports whether every figure in m is a finite number and so can be stored and encoded.
func MetricsFinite(m model.InvestmentMetrics) bool {
	for _, v := range []float64{
		m.ROIRangeMin, m.ROIRangeMax, m.ROERangeMin, m.ROERangeMax,
		m.AnnualNetCashFlow, m.EstimatedValue, m.YoYAppreciation, m.Projected5YrValue,
		m.UpfrontTotal, m.DownPayment, m.MonthlyMortgagePayment, m.AnnualCosts,
		m.MonthlyRentConservative, m.MonthlyRentOptimistic, m.MonthlyCashFlow,
		m.CapRate, m.ShortTermRentalYield, m.LongTermRentalYield, m.CashOnCashReturn,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// InvestmentScore clamps the advisory hint to 1..10 and caps loss-making deals at
// LossMakingScoreCap. The cap is applied to unrounded figures and always wins over the hint.
func InvestmentScore(hint int, avgROI, avgROE, annualCashFlow float64) int {
	score := min(max(hint, minScore), maxScore)
	if avgROI < 0 || avgROE < 0 || annualCashFlow < 0 {
		score = min(score, LossMakingScoreCap)
	}
	return score
}

// safeDiv returns 0 instead of NaN or Inf for a zero or non-finite divisor.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return 0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// roundPct rounds a percentage to one decimal place.
func roundPct(value float64) float64 {
	return math.Round(value*10) / 10
}

// roundCurrency rounds an amount to whole euros.
func roundCurrency(value float64) float64 {
	return math.Round(value)
}
