package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrWorkoutNotFound is returned when a workout doesn't exist
var ErrWorkoutNotFound = errors.New("workout not found")

// dateOnly is the storage format for workout dates
const dateOnly = "2006-01-02"

// UpsertWorkout inserts or replaces the workout planned for its date.
// Re-generating a plan for the same week overwrites day-for-day.
func (db *DB) UpsertWorkout(w *Workout) error {
	_, err := db.Exec(`
		INSERT INTO workouts (
			day, date, type, target_tss, duration_min,
			description, zones, route_suggestion, completed, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			day = excluded.day,
			type = excluded.type,
			target_tss = excluded.target_tss,
			duration_min = excluded.duration_min,
			description = excluded.description,
			zones = excluded.zones,
			route_suggestion = excluded.route_suggestion,
			updated_at = CURRENT_TIMESTAMP
	`,
		w.Day, w.Date.Format(dateOnly), w.Type, w.TargetTSS, w.DurationMin,
		w.Description, strings.Join(w.Zones, ","), w.RouteSuggestion, boolToInt(w.Completed),
	)
	return err
}

// GetWorkoutsInRange returns workouts with a date in [start, end),
// ordered by date ascending
func (db *DB) GetWorkoutsInRange(start, end time.Time) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, day, date, type, target_tss, duration_min,
			description, zones, route_suggestion, completed
		FROM workouts
		WHERE date >= ? AND date < ?
		ORDER BY date ASC
	`, start.Format(dateOnly), end.Format(dateOnly))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// CompleteWorkout marks a workout as completed
func (db *DB) CompleteWorkout(id int64) error {
	result, err := db.Exec(`
		UPDATE workouts
		SET completed = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// scanWorkouts scans workouts from rows
func scanWorkouts(rows *sql.Rows) ([]Workout, error) {
	var workouts []Workout

	for rows.Next() {
		var w Workout
		var date, zones string
		var completed int

		err := rows.Scan(
			&w.ID, &w.Day, &date, &w.Type, &w.TargetTSS, &w.DurationMin,
			&w.Description, &zones, &w.RouteSuggestion, &completed,
		)
		if err != nil {
			return nil, err
		}

		var parseErr error
		w.Date, parseErr = time.Parse(dateOnly, date)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing workout date %q: %w", date, parseErr)
		}
		if zones != "" {
			w.Zones = strings.Split(zones, ",")
		}
		w.Completed = completed == 1

		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}
