package model

import (
	"strings"
	"time"
)

// PropertyType enumerates the kinds of property the calculator understands.
type PropertyType string

// Supported property types. Anything unrecognised is classified as PropertyTypeOther.
const (
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeStudio    PropertyType = "Studio"
	PropertyTypeLoft      PropertyType = "Loft"
	PropertyTypePenthouse PropertyType = "Penthouse"
	PropertyTypeOther     PropertyType = "Other"
)

var propertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeHouse,
	PropertyTypeVilla,
	PropertyTypeStudio,
	PropertyTypeLoft,
	PropertyTypePenthouse,
}

// ParsePropertyType maps free-form input onto a PropertyType, case-insensitively.
// Empty input yields PropertyTypeApartment, unknown input yields PropertyTypeOther.
func ParsePropertyType(s string) PropertyType {
	s = strings.TrimSpace(s)
	if s == "" {
		return PropertyTypeApartment
	}
	for _, pt := range propertyTypes {
		if strings.EqualFold(s, string(pt)) {
			return pt
		}
	}
	return PropertyTypeOther
}

// PropertyAttributes is the immutable snapshot of a property used for one analysis.
// Price and SizeSqm are always positive once the API layer has accepted the request.
type PropertyAttributes struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Location         string       `json:"location"`
	Price            float64      `json:"price"`
	PropertyType     PropertyType `json:"property_type"`
	SizeSqm          float64      `json:"size_sqm"`
	Rooms            *int         `json:"rooms,omitempty"`
	Bathrooms        *int         `json:"bathrooms,omitempty"`
	Floor            string       `json:"floor,omitempty"`
	Condition        string       `json:"condition,omitempty"`
	YearBuilt        *int         `json:"year_built,omitempty"`
	RenovationNeeded bool         `json:"renovation_needed"`
	SourceURL        string       `json:"source_url,omitempty"`
	ImageURL         string       `json:"image_url,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// PricePerSqm returns the asking price per square metre, or 0 when the size is unknown.
func (p PropertyAttributes) PricePerSqm() float64 {
	if p.SizeSqm <= 0 {
		return 0
	}
	return p.Price / p.SizeSqm
}

// PropertyDraft is the best-effort attribute bundle returned by a listing extractor.
// Every field is populated; parsing failures fall back to fixed defaults.
type PropertyDraft struct {
	Title        string       `json:"title"`
	Location     string       `json:"location"`
	Price        float64      `json:"price"`
	PropertyType PropertyType `json:"property_type"`
	SizeSqm      float64      `json:"size_sqm"`
	Rooms        int          `json:"rooms"`
	Bathrooms    int          `json:"bathrooms"`
	ImageURL     string       `json:"image_url,omitempty"`
	SourceURL    string       `json:"source_url"`
}
