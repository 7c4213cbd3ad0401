// Package types - Traveler manifest types
package types

// Traveler is one entry in a manifest. Category assignment comes from
// the explicit override when present, otherwise from the birth date.
type Traveler struct {
	// Ref is a caller-side reference (name, initials, seat number)
	Ref string `json:"ref,omitempty"`

	// BirthDate drives age bracket assignment when no override is set
	BirthDate *Date `json:"birth_date,omitempty"`

	// Category overrides the age-derived category when set
	Category *PaxCategory `json:"category,omitempty"`
}

// PaxManifest is the ordered traveler list for a trip
type PaxManifest []Traveler

// CategoryCounts maps each pax category to its traveler count.
// Derived once from a manifest and immutable for the life of a quotation.
type CategoryCounts map[PaxCategory]int

// Total returns the total number of travelers
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// PayingTotal returns the number of travelers that count for
// per-person pricing. Crew rides free.
func (c CategoryCounts) PayingTotal() int {
	total := 0
	for cat, n := range c {
		if !cat.IsCrew() {
			total += n
		}
	}
	return total
}

// Count returns the count for one category
func (c CategoryCounts) Count(cat PaxCategory) int {
	return c[cat]
}
