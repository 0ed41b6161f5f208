package engine

import (
	"fmt"
	"math"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// Financing is the purchase-cost breakdown for one property under one FinancingConfig.
type Financing struct {
	MortgageAmount     float64
	DownPayment        float64
	PurchaseTax        float64
	AgencyFee          float64
	NotaryFees         float64
	UpfrontTotal       float64 // cash due at purchase, excluding the financed amount
	MonthlyDebtService float64
	AnnualCosts        float64 // debt service, property tax and maintenance
}

// Upper bounds on engine inputs. Anything beyond them cannot produce finite metrics.
const (
	MaxPrice         = 1e12
	MaxFixedAmount   = 1e12
	MaxRatePct       = 100.0
	MaxMortgageYears = 100
)

// ValidateFinancing checks a FinancingConfig for values the financing model cannot work with.
// The returned error wraps apperrors.ErrInvalidConfiguration and names the offending field.
func ValidateFinancing(cfg model.FinancingConfig) error {
	values := []struct {
		field string
		value float64
		max   float64
	}{
		{"mortgage_percentage", cfg.MortgagePercentage, 100},
		{"mortgage_rate", cfg.MortgageRate, MaxRatePct},
		{"purchase_tax_rate", cfg.PurchaseTaxRate, MaxRatePct},
		{"notary_fees", cfg.NotaryFees, MaxFixedAmount},
		{"agency_fee_rate", cfg.AgencyFeeRate, MaxRatePct},
		{"property_tax_annual", cfg.PropertyTaxAnnual, MaxFixedAmount},
		{"maintenance_rate", cfg.MaintenanceRate, MaxRatePct},
	}
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", apperrors.ErrInvalidConfiguration, v.field)
		}
		if v.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrInvalidConfiguration, v.field)
		}
		if v.value > v.max {
			return fmt.Errorf("%w: %s must not exceed %g", apperrors.ErrInvalidConfiguration, v.field, v.max)
		}
	}

	if cfg.MortgagePercentage > 0 && cfg.MortgageYears <= 0 {
		return fmt.Errorf("%w: mortgage_years must be positive when a mortgage is used", apperrors.ErrInvalidConfiguration)
	}
	if cfg.MortgageYears > MaxMortgageYears {
		return fmt.Errorf("%w: mortgage_years must not exceed %d", apperrors.ErrInvalidConfiguration, MaxMortgageYears)
	}

	return nil
}

// ComputeFinancing converts a purchase price and financing assumptions into upfront cash
// and recurring costs. Price must be positive and at most MaxPrice.
func ComputeFinancing(price float64, cfg model.FinancingConfig) (Financing, error) {
	if math.IsNaN(price) || price <= 0 || price > MaxPrice {
		return Financing{}, fmt.Errorf("%w: price must be positive and at most %g", apperrors.ErrInvalidConfiguration, MaxPrice)
	}
	if err := ValidateFinancing(cfg); err != nil {
		return Financing{}, err
	}

	f := Financing{
		MortgageAmount: price * cfg.MortgagePercentage / 100,
		PurchaseTax:    price * cfg.PurchaseTaxRate / 100,
		AgencyFee:      price * cfg.AgencyFeeRate / 100,
		NotaryFees:     cfg.NotaryFees,
	}
	f.DownPayment = price - f.MortgageAmount
	f.UpfrontTotal = f.DownPayment + f.PurchaseTax + f.NotaryFees + f.AgencyFee

	if !cfg.IsCashPurchase() {
		f.MonthlyDebtService = MonthlyPayment(f.MortgageAmount, cfg.MortgageRate, cfg.MortgageYears)
	}

	maintenance := price * cfg.MaintenanceRate / 100
	f.AnnualCosts = f.MonthlyDebtService*12 + cfg.PropertyTaxAnnual + maintenance

	return f, nil
}

// MonthlyPayment returns the fixed monthly installment of an amortizing loan.
//
// The standard annuity formula is used:
//
//	M = P * r(1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate and n the number of monthly payments. A zero rate
// falls back to straight-line repayment P/n. Non-positive principal or term yields 0.
func MonthlyPayment(principal, annualRatePct float64, years int) float64 {
	if principal <= 0 || years <= 0 {
		return 0
	}

	n := float64(years * 12)
	r := annualRatePct / 100 / 12
	if r == 0 {
		return principal / n
	}

	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}
