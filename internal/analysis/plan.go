package analysis

import "math"

// Workout category names as stored and displayed
const (
	WorkoutRecovery  = "recovery"
	WorkoutEndurance = "endurance"
	WorkoutTempo     = "tempo"
	WorkoutIntervals = "intervals"
	WorkoutLong      = "long"
	WorkoutRest      = "rest"
)

// Workout is a single day's prescription in a weekly plan
type Workout struct {
	Day             string
	Type            string
	TargetTSS       int
	DurationMin     int
	Description     string
	Zones           []string
	RouteSuggestion string
}

// planInputs classifies the rider's current state for the day rules
type planInputs struct {
	ctl       int
	fatigued  bool // tsb < -10: bias toward recovery
	veryFresh bool // tsb > 25: room to push the long ride
	needsRest bool // tsb < -15: Thursday becomes a full rest day
}

// weekTemplate is the Monday-first rule table. Each entry builds one day's
// prescription from the classified inputs, keeping the branches per day
// independently testable.
var weekTemplate = []struct {
	day   string
	build func(planInputs) Workout
}{
	{"Monday", mondayWorkout},
	{"Tuesday", tuesdayWorkout},
	{"Wednesday", wednesdayWorkout},
	{"Thursday", thursdayWorkout},
	{"Friday", fridayWorkout},
	{"Saturday", saturdayWorkout},
	{"Sunday", sundayWorkout},
}

// GenerateWeeklyPlan turns the current fitness state into seven day-labeled
// workout prescriptions, Monday through Sunday. A zero CTL collapses every
// target to zero but still yields a full week.
func GenerateWeeklyPlan(ctl, atl, tsb int) []Workout {
	in := planInputs{
		ctl:       ctl,
		fatigued:  tsb < -10,
		veryFresh: tsb > 25,
		needsRest: tsb < -15,
	}

	plan := make([]Workout, 0, len(weekTemplate))
	for _, rule := range weekTemplate {
		w := rule.build(in)
		w.Day = rule.day
		plan = append(plan, w)
	}
	return plan
}

// targetFor scales the rider's CTL by a workout multiplier
func targetFor(ctl int, multiplier float64) int {
	return int(math.Round(float64(ctl) * multiplier))
}

func mondayWorkout(in planInputs) Workout {
	return Workout{
		Type:            WorkoutRecovery,
		TargetTSS:       targetFor(in.ctl, 0.5),
		DurationMin:     60,
		Description:     "60 min easy spin in Zone 2. Focus on smooth pedaling and recovery from weekend training.",
		Zones:           []string{"Zone 2"},
		RouteSuggestion: "Flat, familiar route",
	}
}

func tuesdayWorkout(in planInputs) Workout {
	if in.fatigued {
		return Workout{
			Type:        WorkoutEndurance,
			TargetTSS:   targetFor(in.ctl, 0.8),
			DurationMin: 75,
			Description: "75 min easy endurance. Keep it light, stay in Zone 2.",
			Zones:       []string{"Zone 2", "Zone 3"},
		}
	}
	return Workout{
		Type:        WorkoutEndurance,
		TargetTSS:   targetFor(in.ctl, 1.0),
		DurationMin: 90,
		Description: "90 min steady ride. Stay in Zone 2-3, build aerobic base.",
		Zones:       []string{"Zone 2", "Zone 3"},
	}
}

func wednesdayWorkout(in planInputs) Workout {
	if in.fatigued {
		return Workout{
			Type:        WorkoutRecovery,
			TargetTSS:   targetFor(in.ctl, 0.4),
			DurationMin: 45,
			Description: "45 min very easy spin. Recovery is important!",
			Zones:       []string{"Zone 1", "Zone 2"},
		}
	}
	return Workout{
		Type:        WorkoutIntervals,
		TargetTSS:   targetFor(in.ctl, 1.2),
		DurationMin: 75,
		Description: "Warmup 15min, then 4x5min @ Zone 4 with 3min recovery between intervals, cooldown 15min.",
		Zones:       []string{"Zone 4"},
	}
}

func thursdayWorkout(in planInputs) Workout {
	if in.needsRest {
		return Workout{
			Type:        WorkoutRest,
			TargetTSS:   0,
			DurationMin: 0,
			Description: "Complete rest day. Your body needs recovery.",
		}
	}
	return Workout{
		Type:        WorkoutRecovery,
		TargetTSS:   targetFor(in.ctl, 0.4),
		DurationMin: 45,
		Description: "45 min very easy spin, or yoga/stretching session.",
		Zones:       []string{"Zone 1", "Zone 2"},
	}
}

func fridayWorkout(in planInputs) Workout {
	if in.fatigued {
		return Workout{
			Type:        WorkoutTempo,
			TargetTSS:   targetFor(in.ctl, 0.8),
			DurationMin: 75,
			Description: "Warmup 15min, 20min @ tempo (Zone 3), cooldown 15min. Keep it controlled.",
			Zones:       []string{"Zone 3", "Zone 4"},
		}
	}
	return Workout{
		Type:        WorkoutTempo,
		TargetTSS:   targetFor(in.ctl, 1.0),
		DurationMin: 75,
		Description: "Warmup 15min, 30min @ tempo (Zone 3-4), cooldown 15min.",
		Zones:       []string{"Zone 3", "Zone 4"},
	}
}

func saturdayWorkout(in planInputs) Workout {
	switch {
	case in.veryFresh:
		return Workout{
			Type:            WorkoutLong,
			TargetTSS:       targetFor(in.ctl, 1.8),
			DurationMin:     180,
			Description:     "3+ hours Zone 2 endurance with some Zone 3 efforts. Push the distance!",
			Zones:           []string{"Zone 2"},
			RouteSuggestion: "Hilly scenic route",
		}
	case in.fatigued:
		return Workout{
			Type:            WorkoutLong,
			TargetTSS:       targetFor(in.ctl, 1.2),
			DurationMin:     120,
			Description:     "2 hours easy Zone 2. Keep it comfortable and enjoyable.",
			Zones:           []string{"Zone 2"},
			RouteSuggestion: "Moderate route",
		}
	default:
		return Workout{
			Type:            WorkoutLong,
			TargetTSS:       targetFor(in.ctl, 1.5),
			DurationMin:     150,
			Description:     "2.5-3 hours Zone 2 endurance with some rolling hills. Enjoy the scenery!",
			Zones:           []string{"Zone 2"},
			RouteSuggestion: "Hilly scenic route",
		}
	}
}

func sundayWorkout(in planInputs) Workout {
	description := "60 min easy spin or complete rest. Listen to your body."
	if in.fatigued {
		description = "Complete rest or very light activity. Recover for next week."
	}
	return Workout{
		Type:        WorkoutRecovery,
		TargetTSS:   targetFor(in.ctl, 0.5),
		DurationMin: 60,
		Description: description,
		Zones:       []string{"Zone 1", "Zone 2"},
	}
}
