package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrActivityNotFound is returned when an activity doesn't exist
var ErrActivityNotFound = errors.New("activity not found")

const activityColumns = `id, athlete_id, name, type, sport_type, start_date, start_date_local,
	distance, moving_time, elapsed_time, total_elevation_gain,
	average_heartrate, max_heartrate, average_watts, weighted_average_watts,
	kilojoules, device_watts, has_heartrate`

// UpsertActivity inserts or updates an activity
func (db *DB) UpsertActivity(a *Activity) error {
	_, err := db.Exec(`
		INSERT INTO activities (
			id, athlete_id, name, type, sport_type, start_date, start_date_local,
			distance, moving_time, elapsed_time, total_elevation_gain,
			average_heartrate, max_heartrate, average_watts, weighted_average_watts,
			kilojoules, device_watts, has_heartrate, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			name = excluded.name,
			type = excluded.type,
			sport_type = excluded.sport_type,
			start_date = excluded.start_date,
			start_date_local = excluded.start_date_local,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			total_elevation_gain = excluded.total_elevation_gain,
			average_heartrate = excluded.average_heartrate,
			max_heartrate = excluded.max_heartrate,
			average_watts = excluded.average_watts,
			weighted_average_watts = excluded.weighted_average_watts,
			kilojoules = excluded.kilojoules,
			device_watts = excluded.device_watts,
			has_heartrate = excluded.has_heartrate,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ID, a.AthleteID, a.Name, a.Type, a.SportType,
		a.StartDate.Format(time.RFC3339), a.StartDateLocal.Format(time.RFC3339),
		a.Distance, a.MovingTime, a.ElapsedTime, a.TotalElevationGain,
		a.AverageHeartrate, a.MaxHeartrate, a.AverageWatts, a.WeightedAverageWatts,
		a.Kilojoules, boolToInt(a.DeviceWatts), boolToInt(a.HasHeartrate),
	)
	return err
}

// GetActivity retrieves an activity by ID
func (db *DB) GetActivity(id int64) (*Activity, error) {
	rows, err := db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities, err := scanActivities(rows)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, ErrActivityNotFound
	}
	return &activities[0], nil
}

// ListActivities returns activities ordered by start date descending
func (db *DB) ListActivities(limit, offset int) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		ORDER BY start_date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListActivitiesInRange returns activities with a start date in [start, end),
// ordered by start date ascending
func (db *DB) ListActivitiesInRange(start, end time.Time) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE start_date >= ? AND start_date < ?
		ORDER BY start_date ASC
	`, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// CountActivities returns the total number of activities
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count)
	return count, err
}

// scanActivities scans activities from rows
func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity

	for rows.Next() {
		var a Activity
		var startDate, startDateLocal string
		var deviceWatts, hasHR int

		err := rows.Scan(
			&a.ID, &a.AthleteID, &a.Name, &a.Type, &a.SportType, &startDate, &startDateLocal,
			&a.Distance, &a.MovingTime, &a.ElapsedTime, &a.TotalElevationGain,
			&a.AverageHeartrate, &a.MaxHeartrate, &a.AverageWatts, &a.WeightedAverageWatts,
			&a.Kilojoules, &deviceWatts, &hasHR,
		)
		if err != nil {
			return nil, err
		}

		var parseErr error
		a.StartDate, parseErr = time.Parse(time.RFC3339, startDate)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing start_date %q: %w", startDate, parseErr)
		}
		a.StartDateLocal, parseErr = time.Parse(time.RFC3339, startDateLocal)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing start_date_local %q: %w", startDateLocal, parseErr)
		}
		a.DeviceWatts = deviceWatts == 1
		a.HasHeartrate = hasHR == 1

		activities = append(activities, a)
	}

	return activities, rows.Err()
}
