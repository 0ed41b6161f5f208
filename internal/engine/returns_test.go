package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

func returnsFor(t *testing.T, price float64, cfg model.FinancingConfig, rent model.RentEstimate) model.InvestmentMetrics {
	t.Helper()
	fin, err := ComputeFinancing(price, cfg)
	require.NoError(t, err)
	return CalculateReturns(ReturnInputs{
		Price:     price,
		Financing: fin,
		Rent:      rent,
		CashFlow:  ProjectCashFlow(rent.MonthlyRentConservative, rent.MonthlyRentOptimistic, fin.AnnualCosts),
	})
}

func TestCalculateReturns(t *testing.T) {
	t.Run("leveraged scenario on fallback rents", func(t *testing.T) {
		m := returnsFor(t, 300000, model.DefaultFinancingConfig(), FallbackRentEstimate(300000))

		assert.Equal(t, 77000.0, m.UpfrontTotal)
		assert.Equal(t, 60000.0, m.DownPayment)
		assert.Equal(t, 1201.0, m.MonthlyMortgagePayment)
		assert.Equal(t, -5818.0, m.AnnualNetCashFlow)
		assert.Equal(t, -485.0, m.MonthlyCashFlow)
		assert.Equal(t, 23.7, m.ROIRangeMin)
		assert.Equal(t, 47.0, m.ROIRangeMax)
		assert.Equal(t, -12.7, m.ROERangeMin)
		assert.Equal(t, -6.7, m.ROERangeMax)
		assert.Equal(t, 356306.0, m.Projected5YrValue)
		assert.Equal(t, 306000.0, m.EstimatedValue)
		assert.Equal(t, 3.5, m.YoYAppreciation)
		assert.Equal(t, 2.9, m.CapRate)
		assert.Equal(t, 4.8, m.ShortTermRentalYield)
		assert.Equal(t, 3.6, m.LongTermRentalYield)
		assert.Equal(t, 3, m.InvestmentScore, "negative cash flow must cap the score")
	})

	t.Run("cash purchase uses price as equity", func(t *testing.T) {
		cfg := model.DefaultFinancingConfig()
		cfg.MortgagePercentage = 0
		m := returnsFor(t, 300000, cfg, FallbackRentEstimate(300000))

		assert.Zero(t, m.MonthlyMortgagePayment)
		assert.Equal(t, 8600.0, m.AnnualNetCashFlow)
		assert.Equal(t, 2.3, m.ROERangeMin)
		assert.Equal(t, 3.5, m.ROERangeMax)
		assert.Equal(t, 28.5, m.ROIRangeMin)
		assert.Equal(t, 34.2, m.ROIRangeMax)
		assert.Equal(t, FallbackScoreHint, m.InvestmentScore)
	})

	t.Run("ranges ordered when conservative exceeds optimistic", func(t *testing.T) {
		rent := FallbackRentEstimate(300000)
		rent.MonthlyRentConservative, rent.MonthlyRentOptimistic = rent.MonthlyRentOptimistic, rent.MonthlyRentConservative

		m := returnsFor(t, 300000, model.DefaultFinancingConfig(), rent)

		assert.LessOrEqual(t, m.ROIRangeMin, m.ROIRangeMax)
		assert.LessOrEqual(t, m.ROERangeMin, m.ROERangeMax)
		assert.Equal(t, 23.7, m.ROIRangeMin)
		assert.Equal(t, 47.0, m.ROIRangeMax)
	})

	t.Run("invariants hold across inputs", func(t *testing.T) {
		for _, price := range []float64{50000, 180000, 300000, 1250000} {
			for _, pct := range []float64{0, 50, 80, 100} {
				for _, hint := range []int{-4, 1, 6, 10, 42} {
					cfg := model.DefaultFinancingConfig()
					cfg.MortgagePercentage = pct
					rent := FallbackRentEstimate(price)
					rent.InvestmentScoreHint = hint

					m := returnsFor(t, price, cfg, rent)

					assert.LessOrEqual(t, m.ROIRangeMin, m.ROIRangeMax)
					assert.LessOrEqual(t, m.ROERangeMin, m.ROERangeMax)
					assert.GreaterOrEqual(t, m.InvestmentScore, 1)
					assert.LessOrEqual(t, m.InvestmentScore, 10)
					if m.AnnualNetCashFlow < 0 || m.ROIRangeMin+m.ROIRangeMax < 0 || m.ROERangeMin+m.ROERangeMax < 0 {
						assert.LessOrEqual(t, m.InvestmentScore, LossMakingScoreCap)
					}
				}
			}
		}
	})

	t.Run("zero upfront yields zero ratios", func(t *testing.T) {
		m := CalculateReturns(ReturnInputs{Price: 0, Rent: model.RentEstimate{InvestmentScoreHint: 5}})

		assert.Zero(t, m.ROIRangeMin)
		assert.Zero(t, m.ROIRangeMax)
		assert.Zero(t, m.CapRate)
		assert.Zero(t, m.CashOnCashReturn)
	})
}

func TestInvestmentScore(t *testing.T) {
	tests := []struct {
		name     string
		hint     int
		roi      float64
		roe      float64
		cashFlow float64
		want     int
	}{
		{"hint passes through", 7, 20, 5, 1000, 7},
		{"clamped high", 15, 20, 5, 1000, 10},
		{"clamped low", 0, 20, 5, 1000, 1},
		{"negative roi caps", 9, -0.01, 5, 1000, 3},
		{"negative roe caps", 9, 20, -1, 1000, 3},
		{"negative cash flow caps", 9, 20, 5, -0.5, 3},
		{"cap keeps lower hint", 2, -5, -5, -5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InvestmentScore(tt.hint, tt.roi, tt.roe, tt.cashFlow))
		})
	}
}

func TestMetricsFinite(t *testing.T) {
	fin, err := ComputeFinancing(300000, model.DefaultFinancingConfig())
	require.NoError(t, err)

	assert.True(t, MetricsFinite(metricsFor(300000, fin, FallbackRentEstimate(300000))))

	runaway := FallbackRentEstimate(300000)
	runaway.YoYAppreciation = 1e80
	assert.False(t, MetricsFinite(metricsFor(300000, fin, runaway)))

	overflowing := FallbackRentEstimate(300000)
	overflowing.MonthlyRentConservative = 1e308
	overflowing.MonthlyRentOptimistic = 1e308
	assert.False(t, MetricsFinite(metricsFor(300000, fin, overflowing)))
}

func TestEngine_resolveMetrics(t *testing.T) {
	ctx := context.Background()
	fin, err := ComputeFinancing(300000, model.DefaultFinancingConfig())
	require.NoError(t, err)

	t.Run("keeps a finite advisory estimate", func(t *testing.T) {
		rent := FallbackRentEstimate(300000)
		rent.Source = model.RentEstimateFromAdvisor
		rent.MonthlyRentConservative = 1500

		_, used := New(nil).resolveMetrics(ctx, 300000, fin, rent)

		assert.Equal(t, model.RentEstimateFromAdvisor, used.Source)
		assert.Equal(t, 1500.0, used.MonthlyRentConservative)
	})

	t.Run("replaces an estimate that overflows", func(t *testing.T) {
		rent := model.RentEstimate{
			MonthlyRentConservative: 1e308,
			MonthlyRentOptimistic:   1e308,
			YoYAppreciation:         1e80,
			InvestmentScoreHint:     7,
			EstimatedValue:          310000,
			Source:                  model.RentEstimateFromAdvisor,
		}

		m, used := New(nil).resolveMetrics(ctx, 300000, fin, rent)

		assert.Equal(t, model.RentEstimateFromFallback, used.Source)
		assert.True(t, MetricsFinite(m))
		assert.False(t, math.IsInf(m.Projected5YrValue, 0))
		assert.Equal(t, 356306.0, m.Projected5YrValue)
		assert.Equal(t, 3, m.InvestmentScore)
	})
}
