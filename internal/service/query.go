package service

import (
	"fmt"
	"math"
	"time"

	"veloform/internal/analysis"
	"veloform/internal/store"
)

// QueryService reads training state out of the local store
type QueryService struct {
	store         *store.DB
	configuredFTP int // 0 means estimate from power data
}

// NewQueryService creates a query service. configuredFTP, when positive,
// overrides estimation.
func NewQueryService(db *store.DB, configuredFTP int) *QueryService {
	return &QueryService{
		store:         db,
		configuredFTP: configuredFTP,
	}
}

// Metrics is the current-state snapshot shown on the dashboard
type Metrics struct {
	CTL int // chronic training load (fitness)
	ATL int // acute training load (fatigue)
	TSB int // training stress balance (form)

	FTP          int
	FTPEstimated bool
	Form         string

	WeekTSS       int     // stress accumulated since Monday
	TargetWeekTSS int     // sustainable weekly target at current fitness
	WeekProgress  float64 // 0..1+, 0 when there is no target
}

// ActivitySummary is a stored ride plus its computed stress score
type ActivitySummary struct {
	store.Activity
	TSS int
}

// FTP resolves the functional threshold power: explicit config wins,
// otherwise the best 20+ minute effort in the lookback window is used,
// falling back to a stock default without power data.
func (q *QueryService) FTP(now time.Time) (ftp int, estimated bool, err error) {
	if q.configuredFTP > 0 {
		return q.configuredFTP, false, nil
	}

	activities, err := q.windowActivities(now)
	if err != nil {
		return 0, false, err
	}
	return analysis.EstimateFTP(activities), true, nil
}

// CurrentMetrics computes the dashboard snapshot as of now. Fitness folds
// the full lookback window; fatigue folds only the trailing seven days.
func (q *QueryService) CurrentMetrics(now time.Time) (*Metrics, error) {
	ftp, estimated, err := q.FTP(now)
	if err != nil {
		return nil, err
	}

	activities, err := q.windowActivities(now)
	if err != nil {
		return nil, err
	}

	start := dateOf(now).AddDate(0, 0, -(FitnessLookbackDays - 1))
	daily, err := analysis.DailyTSS(activities, float64(ftp), start, now)
	if err != nil {
		return nil, fmt.Errorf("building daily series: %w", err)
	}

	ctl := analysis.CalculateCTL(daily, 0)

	trailing := daily
	if len(trailing) > FatigueWindowDays {
		trailing = trailing[len(trailing)-FatigueWindowDays:]
	}
	atl := analysis.CalculateATL(trailing, 0)
	tsb := analysis.CalculateTSB(ctl, atl)

	weekTSS, err := q.weekTSS(now, float64(ftp))
	if err != nil {
		return nil, err
	}

	target := int(math.Round(float64(ctl) * 7 * WeeklyTargetFactor))
	progress := 0.0
	if target > 0 {
		progress = float64(weekTSS) / float64(target)
	}

	return &Metrics{
		CTL:           ctl,
		ATL:           atl,
		TSB:           tsb,
		FTP:           ftp,
		FTPEstimated:  estimated,
		Form:          analysis.FormDescription(tsb),
		WeekTSS:       weekTSS,
		TargetWeekTSS: target,
		WeekProgress:  progress,
	}, nil
}

// FitnessHistory returns one load sample per day for the trailing period,
// oldest first, for charting.
func (q *QueryService) FitnessHistory(now time.Time, days int) ([]analysis.DailyLoadSample, error) {
	ftp, _, err := q.FTP(now)
	if err != nil {
		return nil, err
	}

	activities, err := q.windowActivities(now)
	if err != nil {
		return nil, err
	}

	if days <= 0 || days > FitnessLookbackDays {
		days = FitnessLookbackDays
	}
	start := dateOf(now).AddDate(0, 0, -(days - 1))

	return analysis.BuildLoadHistory(activities, float64(ftp), start, now)
}

// RecentActivities returns the newest rides with their stress scores
func (q *QueryService) RecentActivities(now time.Time, limit int) ([]ActivitySummary, error) {
	return q.ActivitiesPage(now, limit, 0)
}

// ActivitiesPage returns one page of rides with their stress scores,
// newest first
func (q *QueryService) ActivitiesPage(now time.Time, limit, offset int) ([]ActivitySummary, error) {
	ftp, _, err := q.FTP(now)
	if err != nil {
		return nil, err
	}

	activities, err := q.store.ListActivities(limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]ActivitySummary, 0, len(activities))
	for _, a := range activities {
		summaries = append(summaries, ActivitySummary{
			Activity: a,
			TSS:      analysis.EstimateTSS(a, float64(ftp)),
		})
	}
	return summaries, nil
}

// TotalActivityCount returns how many rides are stored
func (q *QueryService) TotalActivityCount() (int, error) {
	return q.store.CountActivities()
}

// weekTSS sums stress scores for rides since Monday of the current week
func (q *QueryService) weekTSS(now time.Time, ftp float64) (int, error) {
	weekStart := startOfWeek(now)
	activities, err := q.store.ListActivitiesInRange(weekStart, dateOf(now).AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	total := 0
	for _, a := range activities {
		total += analysis.EstimateTSS(a, ftp)
	}
	return total, nil
}

// windowActivities fetches everything inside the fitness lookback window
func (q *QueryService) windowActivities(now time.Time) ([]store.Activity, error) {
	start := dateOf(now).AddDate(0, 0, -(FitnessLookbackDays - 1))
	activities, err := q.store.ListActivitiesInRange(start, dateOf(now).AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}

// startOfWeek returns midnight of the Monday on or before t
func startOfWeek(t time.Time) time.Time {
	day := dateOf(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// dateOf truncates a time to its calendar day in its own location
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
