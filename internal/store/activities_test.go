package store

import (
	"errors"
	"testing"
	"time"
)

func testActivity(id int64, start time.Time) *Activity {
	return &Activity{
		ID:             id,
		AthleteID:      123,
		Name:           "Morning Ride",
		Type:           "Ride",
		SportType:      "Ride",
		StartDate:      start,
		StartDateLocal: start,
		Distance:       42000,
		MovingTime:     5400,
		ElapsedTime:    5700,
	}
}

func TestUpsertActivity_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC)
	watts := 210.0
	weighted := 225.0
	a := testActivity(1, start)
	a.AverageWatts = &watts
	a.WeightedAverageWatts = &weighted
	a.DeviceWatts = true

	if err := db.UpsertActivity(a); err != nil {
		t.Fatalf("UpsertActivity failed: %v", err)
	}

	fetched, err := db.GetActivity(1)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}

	if fetched.Name != "Morning Ride" {
		t.Errorf("Name = %q, want %q", fetched.Name, "Morning Ride")
	}
	if !fetched.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", fetched.StartDate, start)
	}
	if fetched.AverageWatts == nil || *fetched.AverageWatts != 210 {
		t.Errorf("AverageWatts = %v, want 210", fetched.AverageWatts)
	}
	if fetched.WeightedAverageWatts == nil || *fetched.WeightedAverageWatts != 225 {
		t.Errorf("WeightedAverageWatts = %v, want 225", fetched.WeightedAverageWatts)
	}
	if !fetched.DeviceWatts {
		t.Error("DeviceWatts not persisted")
	}
}

func TestUpsertActivity_UpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC)
	if err := db.UpsertActivity(testActivity(1, start)); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	renamed := testActivity(1, start)
	renamed.Name = "Renamed Ride"
	renamed.MovingTime = 6000
	if err := db.UpsertActivity(renamed); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	count, err := db.CountActivities()
	if err != nil {
		t.Fatalf("CountActivities failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 activity after re-upsert, got %d", count)
	}

	fetched, err := db.GetActivity(1)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if fetched.Name != "Renamed Ride" || fetched.MovingTime != 6000 {
		t.Errorf("Update not applied: (%q, %d)", fetched.Name, fetched.MovingTime)
	}
}

func TestGetActivity_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetActivity(99)
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("GetActivity(99) = %v, want ErrActivityNotFound", err)
	}
}

func TestListActivities_NewestFirst(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := db.UpsertActivity(testActivity(int64(i+1), base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("Upsert %d failed: %v", i+1, err)
		}
	}

	activities, err := db.ListActivities(2, 0)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}

	if len(activities) != 2 {
		t.Fatalf("Expected 2 activities, got %d", len(activities))
	}
	if activities[0].ID != 3 || activities[1].ID != 2 {
		t.Errorf("Order = [%d, %d], want [3, 2]", activities[0].ID, activities[1].ID)
	}

	rest, err := db.ListActivities(2, 2)
	if err != nil {
		t.Fatalf("ListActivities with offset failed: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != 1 {
		t.Errorf("Offset page = %v, want just activity 1", rest)
	}
}

func TestListActivitiesInRange(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := db.UpsertActivity(testActivity(int64(i+1), base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("Upsert %d failed: %v", i+1, err)
		}
	}

	// Half-open window: day 2 in, day 4 out
	activities, err := db.ListActivitiesInRange(base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("ListActivitiesInRange failed: %v", err)
	}

	if len(activities) != 2 {
		t.Fatalf("Expected 2 activities in range, got %d", len(activities))
	}
	// Ascending by start date
	if activities[0].ID != 2 || activities[1].ID != 3 {
		t.Errorf("Range = [%d, %d], want [2, 3]", activities[0].ID, activities[1].ID)
	}
}
