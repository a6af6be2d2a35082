package models

import (
	"fmt"
	"net/url"
	"strconv"
)

type Purpose string

const (
	PurposeForSale Purpose = "for-sale"
	PurposeForRent Purpose = "for-rent"
)

func (p Purpose) Valid() bool {
	return p == PurposeForSale || p == PurposeForRent
}

type PropertyType string

const (
	Apartment      PropertyType = "apartment"
	Villa          PropertyType = "villa"
	Townhouse      PropertyType = "townhouse"
	Penthouse      PropertyType = "penthouse"
	Land           PropertyType = "land"
	Office         PropertyType = "office"
	Warehouse      PropertyType = "warehouse"
	Compound       PropertyType = "compound"
	Duplex         PropertyType = "duplex"
	FullFloor      PropertyType = "full-floor"
	HalfFloor      PropertyType = "half-floor"
	WholeBuilding  PropertyType = "whole-building"
	HotelApartment PropertyType = "hotel-apartment"
)

var PropertyTypes = []PropertyType{
	Apartment, Villa, Townhouse, Penthouse, Land, Office, Warehouse,
	Compound, Duplex, FullFloor, HalfFloor, WholeBuilding, HotelApartment,
}

func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FilterRecord is the canonical set of search filters. Nil pointers and empty
// strings mean "not specified".
type FilterRecord struct {
	Purpose       Purpose      `json:"purpose,omitempty"`
	PropertyType  PropertyType `json:"property_type,omitempty"`
	Rooms         *int         `json:"rooms,omitempty"`
	Baths         *int         `json:"baths,omitempty"`
	MinPrice      *int         `json:"min_price,omitempty"`
	MaxPrice      *int         `json:"max_price,omitempty"`
	MinArea       *int         `json:"min_area,omitempty"`
	MaxArea       *int         `json:"max_area,omitempty"`
	LocationQuery string       `json:"location_query,omitempty"`
	Keywords      string       `json:"keywords,omitempty"`
}

func IntPtr(v int) *int {
	return &v
}

// Count returns the number of populated fields.
func (f FilterRecord) Count() int {
	n := 0
	if f.Purpose != "" {
		n++
	}
	if f.PropertyType != "" {
		n++
	}
	for _, p := range []*int{f.Rooms, f.Baths, f.MinPrice, f.MaxPrice, f.MinArea, f.MaxArea} {
		if p != nil {
			n++
		}
	}
	if f.LocationQuery != "" {
		n++
	}
	if f.Keywords != "" {
		n++
	}
	return n
}

func (f FilterRecord) IsEmpty() bool {
	return f.Count() == 0
}

func (f FilterRecord) Clone() FilterRecord {
	out := f
	out.Rooms = cloneInt(f.Rooms)
	out.Baths = cloneInt(f.Baths)
	out.MinPrice = cloneInt(f.MinPrice)
	out.MaxPrice = cloneInt(f.MaxPrice)
	out.MinArea = cloneInt(f.MinArea)
	out.MaxArea = cloneInt(f.MaxArea)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Validate checks vocabulary membership and sign. An inverted price pair is
// not rejected.
func (f FilterRecord) Validate() error {
	if f.Purpose != "" && !f.Purpose.Valid() {
		return fmt.Errorf("invalid purpose %q", f.Purpose)
	}
	if f.PropertyType != "" && !f.PropertyType.Valid() {
		return fmt.Errorf("invalid property type %q", f.PropertyType)
	}
	fields := map[string]*int{
		"rooms": f.Rooms, "baths": f.Baths,
		"min_price": f.MinPrice, "max_price": f.MaxPrice,
		"min_area": f.MinArea, "max_area": f.MaxArea,
	}
	for name, p := range fields {
		if p != nil && *p < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, *p)
		}
	}
	return nil
}

// Values renders the populated fields under their JSON names.
func (f FilterRecord) Values() url.Values {
	v := url.Values{}
	if f.Purpose != "" {
		v.Set("purpose", string(f.Purpose))
	}
	if f.PropertyType != "" {
		v.Set("property_type", string(f.PropertyType))
	}
	setInt := func(key string, p *int) {
		if p != nil {
			v.Set(key, strconv.Itoa(*p))
		}
	}
	setInt("rooms", f.Rooms)
	setInt("baths", f.Baths)
	setInt("min_price", f.MinPrice)
	setInt("max_price", f.MaxPrice)
	setInt("min_area", f.MinArea)
	setInt("max_area", f.MaxArea)
	if f.LocationQuery != "" {
		v.Set("location_query", f.LocationQuery)
	}
	if f.Keywords != "" {
		v.Set("keywords", f.Keywords)
	}
	return v
}
