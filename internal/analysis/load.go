package analysis

import (
	"errors"
	"math"
	"time"

	"veloform/internal/store"
)

// Exponential smoothing time constants (days)
const (
	ctlTimeConstant = 42.0
	atlTimeConstant = 7.0
)

// ErrInvalidRange is returned when a series window ends before it starts
var ErrInvalidRange = errors.New("end date precedes start date")

// LoadState carries the chronic and acute load between days.
// Values are unrounded; rounding happens only when a value is reported.
type LoadState struct {
	CTL float64
	ATL float64
}

// Apply folds one day of stress into the state. Days without riding must
// still be applied with tss 0 so both loads decay.
func (s LoadState) Apply(dayTSS float64) LoadState {
	return LoadState{
		CTL: s.CTL + (dayTSS-s.CTL)/ctlTimeConstant,
		ATL: s.ATL + (dayTSS-s.ATL)/atlTimeConstant,
	}
}

// CalculateCTL folds a daily TSS series into chronic training load,
// starting from carryIn. The result is rounded for reporting.
func CalculateCTL(dailyTSS []float64, carryIn float64) int {
	ctl := carryIn
	for _, tss := range dailyTSS {
		ctl = ctl + (tss-ctl)/ctlTimeConstant
	}
	return int(math.Round(ctl))
}

// CalculateATL folds a daily TSS series into acute training load,
// starting from carryIn. The result is rounded for reporting.
func CalculateATL(dailyTSS []float64, carryIn float64) int {
	atl := carryIn
	for _, tss := range dailyTSS {
		atl = atl + (tss-atl)/atlTimeConstant
	}
	return int(math.Round(atl))
}

// CalculateTSB returns the training stress balance (form) from the
// reported chronic and acute loads. Positive = fresh, negative = fatigued.
func CalculateTSB(ctl, atl int) int {
	return ctl - atl
}

// DailyLoadSample is one day of a historical fitness series
type DailyLoadSample struct {
	Date time.Time
	CTL  int
	ATL  int
	TSB  int
}

// DailyTSS buckets activities by local calendar day and returns the summed
// stress score for every day in [start, end] inclusive, gaps as zero.
func DailyTSS(activities []store.Activity, ftp float64, start, end time.Time) ([]float64, error) {
	startDay := dateOf(start)
	endDay := dateOf(end)
	if endDay.Before(startDay) {
		return nil, ErrInvalidRange
	}

	byDay := make(map[string]float64)
	for _, a := range activities {
		key := a.StartDateLocal.Format("2006-01-02")
		byDay[key] += float64(EstimateTSS(a, ftp))
	}

	var daily []float64
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		daily = append(daily, byDay[d.Format("2006-01-02")])
	}

	return daily, nil
}

// BuildLoadHistory produces one DailyLoadSample per calendar day in
// [start, end] inclusive, chronological. The fold carries unrounded state
// from day to day; each emitted sample is rounded, and its TSB is composed
// from the rounded sample values.
func BuildLoadHistory(activities []store.Activity, ftp float64, start, end time.Time) ([]DailyLoadSample, error) {
	daily, err := DailyTSS(activities, ftp, start, end)
	if err != nil {
		return nil, err
	}

	startDay := dateOf(start)
	var state LoadState
	samples := make([]DailyLoadSample, 0, len(daily))

	for i, tss := range daily {
		state = state.Apply(tss)
		ctl := int(math.Round(state.CTL))
		atl := int(math.Round(state.ATL))
		samples = append(samples, DailyLoadSample{
			Date: startDay.AddDate(0, 0, i),
			CTL:  ctl,
			ATL:  atl,
			TSB:  CalculateTSB(ctl, atl),
		})
	}

	return samples, nil
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb int) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready for a big week"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}

// dateOf truncates a time to its calendar day in its own location
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
