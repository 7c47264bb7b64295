package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// Activity represents a synced Strava ride summary
type Activity struct {
	ID                   int64     `db:"id"`
	AthleteID            int64     `db:"athlete_id"`
	Name                 string    `db:"name"`
	Type                 string    `db:"type"`
	SportType            string    `db:"sport_type"`
	StartDate            time.Time `db:"start_date"`
	StartDateLocal       time.Time `db:"start_date_local"`
	Distance             float64   `db:"distance"`             // meters
	MovingTime           int       `db:"moving_time"`          // seconds
	ElapsedTime          int       `db:"elapsed_time"`         // seconds
	TotalElevationGain   float64   `db:"total_elevation_gain"` // meters
	AverageHeartrate     *float64  `db:"average_heartrate"`    // nullable, bpm
	MaxHeartrate         *float64  `db:"max_heartrate"`        // nullable, bpm
	AverageWatts         *float64  `db:"average_watts"`        // nullable
	WeightedAverageWatts *float64  `db:"weighted_average_watts"`
	Kilojoules           *float64  `db:"kilojoules"`
	DeviceWatts          bool      `db:"device_watts"` // power from a meter, not estimated
	HasHeartrate         bool      `db:"has_heartrate"`
}

// Workout represents one day of a generated weekly plan
type Workout struct {
	ID              int64     `db:"id"`
	Day             string    `db:"day"` // "Monday".."Sunday"
	Date            time.Time `db:"date"`
	Type            string    `db:"type"` // recovery, endurance, tempo, intervals, long, rest
	TargetTSS       int       `db:"target_tss"`
	DurationMin     int       `db:"duration_min"`
	Description     string    `db:"description"`
	Zones           []string  `db:"zones"`
	RouteSuggestion string    `db:"route_suggestion"`
	Completed       bool      `db:"completed"`
}
