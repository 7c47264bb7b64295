package service

import (
	"fmt"
	"time"

	"veloform/internal/analysis"
	"veloform/internal/store"
)

// GenerateWeekPlan builds a plan for the week containing now from the
// current fitness state, persists it day-for-day, and returns the stored
// week. Regenerating overwrites prescriptions but keeps completion marks.
func (q *QueryService) GenerateWeekPlan(now time.Time) ([]store.Workout, error) {
	metrics, err := q.CurrentMetrics(now)
	if err != nil {
		return nil, fmt.Errorf("reading fitness state: %w", err)
	}

	plan := analysis.GenerateWeeklyPlan(metrics.CTL, metrics.ATL, metrics.TSB)
	weekStart := startOfWeek(now)

	for i, w := range plan {
		stored := &store.Workout{
			Day:             w.Day,
			Date:            weekStart.AddDate(0, 0, i),
			Type:            w.Type,
			TargetTSS:       w.TargetTSS,
			DurationMin:     w.DurationMin,
			Description:     w.Description,
			Zones:           w.Zones,
			RouteSuggestion: w.RouteSuggestion,
		}
		if err := q.store.UpsertWorkout(stored); err != nil {
			return nil, fmt.Errorf("saving %s workout: %w", w.Day, err)
		}
	}

	return q.WeekWorkouts(now)
}

// WeekWorkouts returns the stored plan for the week containing now,
// Monday first. Empty when no plan has been generated.
func (q *QueryService) WeekWorkouts(now time.Time) ([]store.Workout, error) {
	weekStart := startOfWeek(now)
	return q.store.GetWorkoutsInRange(weekStart, weekStart.AddDate(0, 0, 7))
}

// CompleteWorkout marks a planned workout as done
func (q *QueryService) CompleteWorkout(id int64) error {
	return q.store.CompleteWorkout(id)
}
