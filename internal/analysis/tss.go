package analysis

import (
	"math"

	"veloform/internal/store"
)

const (
	// DefaultFTP is assumed when no power history exists to estimate from
	DefaultFTP = 200

	// baseHourlyTSS is the flat moderate-intensity assumption for rides
	// with neither power nor heart rate data
	baseHourlyTSS = 60

	// minFTPEffortSeconds is the shortest effort considered for FTP
	// estimation (20 minutes)
	minFTPEffortSeconds = 1200
)

// EstimateTSS calculates the Training Stress Score for a single ride.
// TSS = duration_hours * IF^2 * 100.
//
// Power from a real meter is used when available (weighted average power
// preferred over raw average). Without power the intensity factor is
// approximated from average heart rate, and without either the score falls
// back to a duration estimate inflated by climbing.
// ftp must be positive; callers resolve a default via EstimateFTP first.
func EstimateTSS(a store.Activity, ftp float64) int {
	durationHours := float64(a.MovingTime) / 3600

	// Power-based (most accurate)
	if a.AverageWatts != nil && a.DeviceWatts {
		normalizedPower := *a.AverageWatts
		if a.WeightedAverageWatts != nil {
			normalizedPower = *a.WeightedAverageWatts
		}
		intensityFactor := normalizedPower / ftp
		return int(math.Round(durationHours * intensityFactor * intensityFactor * 100))
	}

	// HR-based estimate. The linear mapping treats 140 bpm as roughly
	// IF 1.0; the constants are calibrated magic numbers.
	if a.AverageHeartrate != nil {
		estimatedIF := (*a.AverageHeartrate - 60) / 80
		tss := durationHours * estimatedIF * estimatedIF * 100
		return int(math.Round(math.Max(tss, 0)))
	}

	// Fallback: duration at a moderate baseline, inflated by elevation gain
	elevationFactor := 1 + (a.TotalElevationGain/1000)*0.1
	return int(math.Round(durationHours * baseHourlyTSS * elevationFactor))
}

// EstimateFTP estimates functional threshold power from ride history using
// the best 20+ minute average power multiplied by 0.95. Returns DefaultFTP
// when no ride qualifies.
func EstimateFTP(activities []store.Activity) int {
	var bestPower float64
	qualified := false

	for _, a := range activities {
		if a.AverageWatts == nil || !a.DeviceWatts || a.MovingTime < minFTPEffortSeconds {
			continue
		}
		qualified = true
		if *a.AverageWatts > bestPower {
			bestPower = *a.AverageWatts
		}
	}

	if !qualified {
		return DefaultFTP
	}

	return int(math.Round(bestPower * 0.95))
}
