package tui

import (
	"fmt"

	"veloform/internal/config"
)

const (
	metersPerMile = 1609.34
	metersPerKm   = 1000.0
)

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatDistance formats a distance in meters to the user's preferred unit
func (u Units) FormatDistance(meters float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f mi", meters/metersPerMile)
	}
	return fmt.Sprintf("%.1f km", meters/metersPerKm)
}

// FormatDistanceValue returns just the numeric distance value (no unit label)
func (u Units) FormatDistanceValue(meters float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f", meters/metersPerMile)
	}
	return fmt.Sprintf("%.1f", meters/metersPerKm)
}

// FormatSpeed formats an average speed from distance and moving time
func (u Units) FormatSpeed(meters float64, seconds int) string {
	if meters <= 0 || seconds <= 0 {
		return "-"
	}

	hours := float64(seconds) / 3600
	if u.IsMiles() {
		return fmt.Sprintf("%.1f mph", meters/metersPerMile/hours)
	}
	return fmt.Sprintf("%.1f km/h", meters/metersPerKm/hours)
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}
