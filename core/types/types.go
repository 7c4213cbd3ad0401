// Package types defines the value objects of the quotation engine.
// Everything here is constructed fresh per quotation computation; the
// engine owns no long-lived mutable state.
package types

import (
	"fmt"
	"time"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyTHB Currency = "THB"
	CurrencyCNY Currency = "CNY"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is one the engine supports
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyTHB, CurrencyCNY:
		return true
	}
	return false
}

// PaxCategory classifies a traveler for pricing purposes
type PaxCategory string

const (
	PaxAdult PaxCategory = "adult"
	PaxTeen  PaxCategory = "teen"
	PaxChild PaxCategory = "child"
	PaxBaby  PaxCategory = "baby"

	// Crew categories travel with the group but do not pay
	PaxGuide      PaxCategory = "guide"
	PaxDriver     PaxCategory = "driver"
	PaxTourLeader PaxCategory = "tour_leader"
	PaxCook       PaxCategory = "cook"
)

// IsCrew reports whether the category is operational crew rather than
// a paying traveler.
func (p PaxCategory) IsCrew() bool {
	switch p {
	case PaxGuide, PaxDriver, PaxTourLeader, PaxCook:
		return true
	}
	return false
}

// TravelerCategories lists the age-bracketed traveler categories in
// display order.
var TravelerCategories = []PaxCategory{PaxAdult, PaxTeen, PaxChild, PaxBaby}

// AgeBracket maps an age range to a pax category
type AgeBracket struct {
	// Category is the pax category this bracket assigns
	Category PaxCategory `json:"category"`

	// MinAge is the inclusive lower bound in whole years
	MinAge int `json:"min_age"`

	// MaxAge is the inclusive upper bound in whole years
	MaxAge int `json:"max_age"`
}

// Contains reports whether an age in whole years falls in the bracket
func (b AgeBracket) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// DefaultAgeBrackets returns the standard DMC age brackets:
// baby 0-1, child 2-10, teen 11-16, adult 17+.
func DefaultAgeBrackets() []AgeBracket {
	return []AgeBracket{
		{Category: PaxBaby, MinAge: 0, MaxAge: 1},
		{Category: PaxChild, MinAge: 2, MaxAge: 10},
		{Category: PaxTeen, MinAge: 11, MaxAge: 16},
		{Category: PaxAdult, MinAge: 17, MaxAge: 150},
	}
}

// CostNature classifies a service item for grouping and VAT purposes
type CostNature string

const (
	NatureHotel      CostNature = "HTL"
	NatureTransport  CostNature = "TRS"
	NatureActivity   CostNature = "ACT"
	NatureRestaurant CostNature = "RES"
	NatureGuide      CostNature = "GDE"
	NatureMisc       CostNature = "MIS"
)

// IsValid reports whether the nature is a known classification
func (n CostNature) IsValid() bool {
	switch n {
	case NatureHotel, NatureTransport, NatureActivity, NatureRestaurant, NatureGuide, NatureMisc:
		return true
	}
	return false
}

// VATCategory maps the cost nature to a country VAT rate category
func (n CostNature) VATCategory() string {
	switch n {
	case NatureHotel:
		return "hotel"
	case NatureTransport:
		return "transport"
	case NatureActivity:
		return "activity"
	case NatureRestaurant:
		return "restaurant"
	default:
		return "standard"
	}
}

// Date is a calendar date without a time component.
// It marshals as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date as "2006-01-02"
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as a "2006-01-02" string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "2006-01-02" string
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns the whole calendar days from d to other.
// Same day yields 0; other before d yields a negative count.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// AgeAt returns the age in whole years at a reference date
func (d Date) AgeAt(ref Date) int {
	age := ref.Year() - d.Year()
	if ref.Month() < d.Month() || (ref.Month() == d.Month() && ref.Day() < d.Day()) {
		age--
	}
	return age
}
