package service

const (
	// Time windows
	FitnessLookbackDays = 90
	FatigueWindowDays   = 7

	// Weekly volume targeting: a sustainable week is roughly CTL worth of
	// stress per day, scaled back slightly to leave room for absorption
	WeeklyTargetFactor = 0.9

	// Pagination limits
	RecentActivitiesLimit = 10

	// Sync state keys
	SyncStateLastActivitySync = "last_activity_sync"
)
