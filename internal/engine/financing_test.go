package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

func TestComputeFinancing(t *testing.T) {
	t.Run("default scenario upfront total", func(t *testing.T) {
		fin, err := ComputeFinancing(300000, model.DefaultFinancingConfig())
		require.NoError(t, err)

		assert.InDelta(t, 240000, fin.MortgageAmount, 1e-9)
		assert.InDelta(t, 60000, fin.DownPayment, 1e-9)
		assert.InDelta(t, 6000, fin.PurchaseTax, 1e-9)
		assert.InDelta(t, 9000, fin.AgencyFee, 1e-9)
		assert.InDelta(t, 77000, fin.UpfrontTotal, 1e-9)
		assert.InDelta(t, 1201.50, fin.MonthlyDebtService, 0.01)
		assert.InDelta(t, 18417.96, fin.AnnualCosts, 0.01)
	})

	t.Run("cash purchase has no debt service", func(t *testing.T) {
		cfg := model.DefaultFinancingConfig()
		cfg.MortgagePercentage = 0
		cfg.MortgageYears = 0

		fin, err := ComputeFinancing(300000, cfg)
		require.NoError(t, err)

		assert.Zero(t, fin.MonthlyDebtService)
		assert.InDelta(t, 300000, fin.DownPayment, 1e-9)
		assert.InDelta(t, 317000, fin.UpfrontTotal, 1e-9)
		assert.InDelta(t, 4000, fin.AnnualCosts, 1e-9)
	})

	t.Run("zero rate repays straight line", func(t *testing.T) {
		cfg := model.DefaultFinancingConfig()
		cfg.MortgageRate = 0

		fin, err := ComputeFinancing(300000, cfg)
		require.NoError(t, err)

		assert.InDelta(t, 800, fin.MonthlyDebtService, 1e-9)
		assert.False(t, math.IsNaN(fin.AnnualCosts))
	})

	t.Run("annual costs never below tax plus maintenance", func(t *testing.T) {
		for _, pct := range []float64{0, 25, 50, 100} {
			cfg := model.DefaultFinancingConfig()
			cfg.MortgagePercentage = pct

			fin, err := ComputeFinancing(200000, cfg)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, fin.AnnualCosts, cfg.PropertyTaxAnnual+200000*cfg.MaintenanceRate/100)
			assert.Positive(t, fin.UpfrontTotal)
		}
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*model.FinancingConfig)
		}{
			{"mortgage without term", func(c *model.FinancingConfig) { c.MortgageYears = 0 }},
			{"negative rate", func(c *model.FinancingConfig) { c.MortgageRate = -1 }},
			{"negative agency fee", func(c *model.FinancingConfig) { c.AgencyFeeRate = -0.5 }},
			{"negative maintenance", func(c *model.FinancingConfig) { c.MaintenanceRate = -1 }},
			{"mortgage over 100 percent", func(c *model.FinancingConfig) { c.MortgagePercentage = 120 }},
			{"non-finite tax", func(c *model.FinancingConfig) { c.PurchaseTaxRate = math.Inf(1) }},
			{"rate over 100 percent", func(c *model.FinancingConfig) { c.MortgageRate = 1e300 }},
			{"huge notary fees", func(c *model.FinancingConfig) { c.NotaryFees = 1e308 }},
			{"huge property tax", func(c *model.FinancingConfig) { c.PropertyTaxAnnual = MaxFixedAmount * 2 }},
			{"term over limit", func(c *model.FinancingConfig) { c.MortgageYears = 100000 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := model.DefaultFinancingConfig()
				tt.mutate(&cfg)

				_, err := ComputeFinancing(300000, cfg)
				assert.ErrorIs(t, err, apperrors.ErrInvalidConfiguration)
			})
		}
	})

	t.Run("rejects price outside range", func(t *testing.T) {
		for _, price := range []float64{0, -1, math.NaN(), math.Inf(1), 1e308, MaxPrice * 1.5} {
			_, err := ComputeFinancing(price, model.DefaultFinancingConfig())
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfiguration, "price %g", price)
		}
	})

	t.Run("largest accepted price stays finite", func(t *testing.T) {
		fin, err := ComputeFinancing(MaxPrice, model.DefaultFinancingConfig())
		require.NoError(t, err)
		assert.False(t, math.IsInf(fin.AnnualCosts, 0))
		assert.False(t, math.IsInf(fin.UpfrontTotal, 0))
	})
}

func TestMonthlyPayment(t *testing.T) {
	assert.InDelta(t, 1201.50, MonthlyPayment(240000, 3.5, 25), 0.01)
	assert.InDelta(t, 1000, MonthlyPayment(120000, 0, 10), 1e-9)
	assert.Zero(t, MonthlyPayment(0, 3.5, 25))
	assert.Zero(t, MonthlyPayment(100000, 3.5, 0))
}

func TestProjectCashFlow(t *testing.T) {
	cf := ProjectCashFlow(900, 1200, 18000)

	assert.InDelta(t, -7200, cf.Conservative, 1e-9)
	assert.InDelta(t, -3600, cf.Optimistic, 1e-9)
	assert.InDelta(t, -5400, cf.Average(), 1e-9)
}
