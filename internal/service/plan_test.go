package service

import (
	"errors"
	"testing"
	"time"

	"veloform/internal/analysis"
	"veloform/internal/store"
)

func TestGenerateWeekPlan(t *testing.T) {
	db := openTestDB(t)
	insertRide(t, db, 1, testNow.AddDate(0, 0, -2), 100)

	q := NewQueryService(db, 250)
	workouts, err := q.GenerateWeekPlan(testNow)
	if err != nil {
		t.Fatalf("GenerateWeekPlan() error: %v", err)
	}

	if len(workouts) != 7 {
		t.Fatalf("len(workouts) = %d, want 7", len(workouts))
	}

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	wantDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, w := range workouts {
		if w.Day != wantDays[i] {
			t.Errorf("workouts[%d].Day = %q, want %q", i, w.Day, wantDays[i])
		}
		wantDate := weekStart.AddDate(0, 0, i)
		if !w.Date.Equal(wantDate) {
			t.Errorf("workouts[%d].Date = %v, want %v", i, w.Date, wantDate)
		}
		if w.ID == 0 {
			t.Errorf("workouts[%d].ID not assigned", i)
		}
		if w.Completed {
			t.Errorf("workouts[%d] should start incomplete", i)
		}
	}
}

func TestGenerateWeekPlanEmptyStore(t *testing.T) {
	db := openTestDB(t)
	q := NewQueryService(db, 0)

	workouts, err := q.GenerateWeekPlan(testNow)
	if err != nil {
		t.Fatalf("GenerateWeekPlan() error: %v", err)
	}

	if len(workouts) != 7 {
		t.Fatalf("len(workouts) = %d, want 7", len(workouts))
	}
	for _, w := range workouts {
		if w.Type == analysis.WorkoutRest {
			continue
		}
		if w.TargetTSS != 0 {
			t.Errorf("%s TargetTSS = %d, want 0 with no fitness", w.Day, w.TargetTSS)
		}
	}
}

func TestRegenerateKeepsCompletion(t *testing.T) {
	db := openTestDB(t)
	insertRide(t, db, 1, testNow.AddDate(0, 0, -2), 100)

	q := NewQueryService(db, 250)
	first, err := q.GenerateWeekPlan(testNow)
	if err != nil {
		t.Fatalf("GenerateWeekPlan() error: %v", err)
	}

	if err := q.CompleteWorkout(first[0].ID); err != nil {
		t.Fatalf("CompleteWorkout() error: %v", err)
	}

	second, err := q.GenerateWeekPlan(testNow)
	if err != nil {
		t.Fatalf("regenerating: %v", err)
	}

	if len(second) != 7 {
		t.Fatalf("len(second) = %d, want 7", len(second))
	}
	if !second[0].Completed {
		t.Error("Monday completion lost after regenerating")
	}
	for i := 1; i < len(second); i++ {
		if second[i].Completed {
			t.Errorf("%s unexpectedly completed", second[i].Day)
		}
	}
}

func TestCompleteWorkoutUnknownID(t *testing.T) {
	db := openTestDB(t)
	q := NewQueryService(db, 0)

	err := q.CompleteWorkout(9999)
	if !errors.Is(err, store.ErrWorkoutNotFound) {
		t.Errorf("CompleteWorkout(9999) = %v, want ErrWorkoutNotFound", err)
	}
}

func TestWeekWorkoutsEmpty(t *testing.T) {
	db := openTestDB(t)
	q := NewQueryService(db, 0)

	workouts, err := q.WeekWorkouts(testNow)
	if err != nil {
		t.Fatalf("WeekWorkouts() error: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("len(workouts) = %d, want 0", len(workouts))
	}
}
