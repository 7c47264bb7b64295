package strava

import "time"

// Activity represents a Strava activity from the API
type Activity struct {
	ID                   int64     `json:"id"`
	Athlete              Athlete   `json:"athlete"`
	Name                 string    `json:"name"`
	Type                 string    `json:"type"`
	SportType            string    `json:"sport_type"`
	StartDate            time.Time `json:"start_date"`
	StartDateLocal       time.Time `json:"start_date_local"`
	Distance             float64   `json:"distance"`             // meters
	MovingTime           int       `json:"moving_time"`          // seconds
	ElapsedTime          int       `json:"elapsed_time"`         // seconds
	TotalElevationGain   float64   `json:"total_elevation_gain"` // meters
	AverageHeartrate     *float64  `json:"average_heartrate"`    // bpm
	MaxHeartrate         *float64  `json:"max_heartrate"`        // bpm
	AverageWatts         *float64  `json:"average_watts"`
	WeightedAverageWatts *float64  `json:"weighted_average_watts"`
	Kilojoules           *float64  `json:"kilojoules"`
	DeviceWatts          bool      `json:"device_watts"`
	HasHeartrate         bool      `json:"has_heartrate"`
}

// IsRide reports whether the activity is a cycling activity
func (a Activity) IsRide() bool {
	return a.Type == "Ride" || a.SportType == "Ride" || a.SportType == "VirtualRide"
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID int64 `json:"id"`
}
