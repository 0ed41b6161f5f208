package request

import (
	"strings"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// DefaultSizeSqm is assumed for manually entered properties without a size.
const DefaultSizeSqm = 80.0

// AnalyzeRequest represents the request body for analyzing a property.
// Either URL points at a listing page, or Title, Location and Price describe
// the property by hand. RenovationNeeded applies to both.
type AnalyzeRequest struct {
	URL              string            `json:"url" validate:"omitempty,http_url"`
	Title            string            `json:"title" validate:"max=300"`
	Location         string            `json:"location" validate:"max=200"`
	Price            *float64          `json:"price" validate:"omitempty,gt=0,lte=1000000000000"`
	PropertyType     string            `json:"property_type"`
	SizeSqm          *float64          `json:"size_sqm" validate:"omitempty,gt=0,lte=1000000"`
	Rooms            *int              `json:"rooms" validate:"omitempty,gte=0"`
	Bathrooms        *int              `json:"bathrooms" validate:"omitempty,gte=0"`
	Floor            string            `json:"floor"`
	Condition        string            `json:"condition"`
	YearBuilt        *int              `json:"year_built" validate:"omitempty,gte=1000,lte=2100"`
	RenovationNeeded bool              `json:"renovation_needed"`
	Financing        *FinancingRequest `json:"financing"`
}

// FinancingRequest overrides individual financing assumptions.
// Absent fields keep their defaults from model.DefaultFinancingConfig, except the
// purchase tax rate, which follows FirstHome when not given.
type FinancingRequest struct {
	MortgagePercentage *float64 `json:"mortgage_percentage" validate:"omitempty,gte=0,lte=100"`
	MortgageRate       *float64 `json:"mortgage_rate" validate:"omitempty,gte=0,lte=100"`
	MortgageYears      *int     `json:"mortgage_years" validate:"omitempty,gte=0,lte=50"`
	FirstHome          *bool    `json:"first_home"`
	PurchaseTaxRate    *float64 `json:"purchase_tax_rate" validate:"omitempty,gte=0,lte=100"`
	NotaryFees         *float64 `json:"notary_fees" validate:"omitempty,gte=0,lte=1000000000000"`
	AgencyFeeRate      *float64 `json:"agency_fee_rate" validate:"omitempty,gte=0,lte=100"`
	PropertyTaxAnnual  *float64 `json:"property_tax_annual" validate:"omitempty,gte=0,lte=1000000000000"`
	MaintenanceRate    *float64 `json:"maintenance_rate" validate:"omitempty,gte=0,lte=100"`
}

// IsManual reports whether the property is described in the request rather than by URL.
func (r AnalyzeRequest) IsManual() bool {
	return strings.TrimSpace(r.URL) == ""
}

// Property builds the property attributes of a manual request.
// Property type defaults to Apartment and size to DefaultSizeSqm.
func (r AnalyzeRequest) Property() model.PropertyAttributes {
	p := model.PropertyAttributes{
		Title:            strings.TrimSpace(r.Title),
		Location:         strings.TrimSpace(r.Location),
		PropertyType:     model.ParsePropertyType(r.PropertyType),
		SizeSqm:          DefaultSizeSqm,
		Rooms:            r.Rooms,
		Bathrooms:        r.Bathrooms,
		Floor:            r.Floor,
		Condition:        r.Condition,
		YearBuilt:        r.YearBuilt,
		RenovationNeeded: r.RenovationNeeded,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.SizeSqm != nil {
		p.SizeSqm = *r.SizeSqm
	}
	return p
}

// FinancingConfig merges the request's financing overrides onto the defaults.
func (r AnalyzeRequest) FinancingConfig() model.FinancingConfig {
	cfg := model.DefaultFinancingConfig()
	f := r.Financing
	if f == nil {
		return cfg
	}

	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat(&cfg.MortgagePercentage, f.MortgagePercentage)
	setFloat(&cfg.MortgageRate, f.MortgageRate)
	setFloat(&cfg.NotaryFees, f.NotaryFees)
	setFloat(&cfg.AgencyFeeRate, f.AgencyFeeRate)
	setFloat(&cfg.PropertyTaxAnnual, f.PropertyTaxAnnual)
	setFloat(&cfg.MaintenanceRate, f.MaintenanceRate)
	if f.MortgageYears != nil {
		cfg.MortgageYears = *f.MortgageYears
	}
	if f.FirstHome != nil {
		cfg.FirstHome = *f.FirstHome
	}

	switch {
	case f.PurchaseTaxRate != nil:
		cfg.PurchaseTaxRate = *f.PurchaseTaxRate
	case cfg.FirstHome:
		cfg.PurchaseTaxRate = model.FirstHomePurchaseTaxRate
	default:
		cfg.PurchaseTaxRate = model.SecondHomePurchaseTaxRate
	}

	return cfg
}
