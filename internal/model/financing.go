package model

// FinancingConfig holds the purchase-financing assumptions for an analysis.
// Rates are percentages of the purchase price (3.5 means 3.5%) unless the field
// is a fixed amount (NotaryFees, PropertyTaxAnnual).
type FinancingConfig struct {
	MortgagePercentage float64 `json:"mortgage_percentage"` // 0 means a cash purchase
	MortgageRate       float64 `json:"mortgage_rate"`       // annual interest rate
	MortgageYears      int     `json:"mortgage_years"`
	FirstHome          bool    `json:"first_home"`
	PurchaseTaxRate    float64 `json:"purchase_tax_rate"`
	NotaryFees         float64 `json:"notary_fees"`
	AgencyFeeRate      float64 `json:"agency_fee_rate"`
	PropertyTaxAnnual  float64 `json:"property_tax_annual"`
	MaintenanceRate    float64 `json:"maintenance_rate"` // annual, % of price
}

// Purchase tax rates applied when the caller does not supply one.
const (
	FirstHomePurchaseTaxRate  = 2.0
	SecondHomePurchaseTaxRate = 9.0
)

// DefaultFinancingConfig returns the financing assumptions used when a request
// carries no financing block: an 80% mortgage at 3.5% over 25 years on a first home.
func DefaultFinancingConfig() FinancingConfig {
	return FinancingConfig{
		MortgagePercentage: 80,
		MortgageRate:       3.5,
		MortgageYears:      25,
		FirstHome:          true,
		PurchaseTaxRate:    FirstHomePurchaseTaxRate,
		NotaryFees:         2000,
		AgencyFeeRate:      3,
		PropertyTaxAnnual:  1000,
		MaintenanceRate:    1,
	}
}

// IsCashPurchase reports whether the purchase is made without a mortgage.
func (c FinancingConfig) IsCashPurchase() bool {
	return c.MortgagePercentage == 0
}
