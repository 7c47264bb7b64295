package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Activities (ride summaries from /athlete/activities)
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			sport_type TEXT,
			start_date TEXT NOT NULL,
			start_date_local TEXT NOT NULL,
			distance REAL NOT NULL,
			moving_time INTEGER NOT NULL,
			elapsed_time INTEGER NOT NULL,
			total_elevation_gain REAL,
			average_heartrate REAL,
			max_heartrate REAL,
			average_watts REAL,
			weighted_average_watts REAL,
			kilojoules REAL,
			device_watts INTEGER NOT NULL DEFAULT 0,
			has_heartrate INTEGER NOT NULL DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_date ON activities(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_device_watts ON activities(device_watts)`,

		// Planned workouts (one row per calendar date)
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY,
			day TEXT NOT NULL,
			date TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			target_tss INTEGER NOT NULL,
			duration_min INTEGER NOT NULL,
			description TEXT NOT NULL,
			zones TEXT NOT NULL DEFAULT '',
			route_suggestion TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
