// Package pax - Pax configuration auto-generator
package pax

import (
	"fmt"
	"math"
	"strings"

	"dmc-quote/core/types"
)

// Crew provisioning rules: one guide per guideRatio tourists (always at
// least one), one driver per vehicleSeats people in the vehicle.
const (
	guideRatio   = 10
	vehicleSeats = 6
)

// Config is one pax composition with auto-provisioned crew and rooms
type Config struct {
	// Label is a human-readable description ("4 pax", "2 ad. + 1 enf.")
	Label string `json:"label"`

	// Counts holds traveler and crew counts
	Counts types.CategoryCounts `json:"counts"`

	// DoubleRooms is the number of double rooms
	DoubleRooms int `json:"dbl"`

	// SingleRooms is the number of single rooms
	SingleRooms int `json:"sgl"`

	// TotalPax counts everyone, crew included
	TotalPax int `json:"total_pax"`
}

// GenerateRange builds one config per adult count from min to max.
// Used for range-mode quotations where the group size is open.
func GenerateRange(minAdults, maxAdults int) []Config {
	var configs []Config
	for adults := minAdults; adults <= maxAdults; adults++ {
		cfg := build(adults, 0, 0, 0, 0, 0)
		cfg.Label = fmt.Sprintf("%d pax", adults)
		configs = append(configs, cfg)
	}
	return configs
}

// Custom builds a single config for an exact composition. Guides and
// drivers are auto-provisioned from the tourist count; tour leaders and
// cooks are taken as given.
func Custom(adults, teens, children, babies, tourLeaders, cooks int) Config {
	return build(adults, teens, children, babies, tourLeaders, cooks)
}

func build(adults, teens, children, babies, tourLeaders, cooks int) Config {
	tourists := adults + teens + children + babies

	guides := 1
	if tourists > guideRatio {
		guides = int(math.Ceil(float64(tourists) / float64(guideRatio)))
	}

	inVehicle := tourists + guides + tourLeaders + cooks
	drivers := int(math.Ceil(float64(inVehicle) / float64(vehicleSeats)))

	counts := types.CategoryCounts{
		types.PaxAdult:  adults,
		types.PaxGuide:  guides,
		types.PaxDriver: drivers,
	}
	if teens > 0 {
		counts[types.PaxTeen] = teens
	}
	if children > 0 {
		counts[types.PaxChild] = children
	}
	if babies > 0 {
		counts[types.PaxBaby] = babies
	}
	if tourLeaders > 0 {
		counts[types.PaxTourLeader] = tourLeaders
	}
	if cooks > 0 {
		counts[types.PaxCook] = cooks
	}

	return Config{
		Label:       label(adults, teens, children, babies),
		Counts:      counts,
		DoubleRooms: adults / 2, // children and babies share rooms
		SingleRooms: adults % 2,
		TotalPax:    counts.Total(),
	}
}

func label(adults, teens, children, babies int) string {
	var parts []string
	if adults > 0 {
		parts = append(parts, fmt.Sprintf("%d ad.", adults))
	}
	if teens > 0 {
		parts = append(parts, fmt.Sprintf("%d ado.", teens))
	}
	if children > 0 {
		parts = append(parts, fmt.Sprintf("%d enf.", children))
	}
	if babies > 0 {
		parts = append(parts, fmt.Sprintf("%d bb.", babies))
	}
	if len(parts) == 0 {
		return "0 pax"
	}
	return strings.Join(parts, " + ")
}
