package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"veloform/internal/store"
)

// rideWithTSS builds an activity whose fallback-branch stress score is
// exactly tss (no power, no HR, flat: 60 TSS per hour)
func rideWithTSS(day time.Time, tss int) store.Activity {
	return store.Activity{
		StartDate:      day,
		StartDateLocal: day,
		MovingTime:     tss * 60,
	}
}

func TestLoadStateApply(t *testing.T) {
	state := LoadState{}.Apply(100)

	if math.Abs(state.CTL-100.0/42) > 1e-9 {
		t.Errorf("CTL = %v, want %v", state.CTL, 100.0/42)
	}
	if math.Abs(state.ATL-100.0/7) > 1e-9 {
		t.Errorf("ATL = %v, want %v", state.ATL, 100.0/7)
	}
}

func TestLoadStateZeroInputDecay(t *testing.T) {
	state := LoadState{CTL: 50, ATL: 70}

	prev := state
	for day := 0; day < 120; day++ {
		state = state.Apply(0)

		if state.CTL < 0 || state.ATL < 0 {
			t.Fatalf("day %d: load went negative: CTL=%v ATL=%v", day, state.CTL, state.ATL)
		}
		if state.CTL > prev.CTL || state.ATL > prev.ATL {
			t.Fatalf("day %d: load increased on zero input: CTL %v -> %v, ATL %v -> %v",
				day, prev.CTL, state.CTL, prev.ATL, state.ATL)
		}
		prev = state
	}

	// After 120 zero days both loads should be close to fully decayed
	if state.ATL > 0.001 {
		t.Errorf("ATL after 120 zero days = %v, want near 0", state.ATL)
	}
}

func TestCalculateCTL(t *testing.T) {
	tests := []struct {
		name     string
		dailyTSS []float64
		carryIn  float64
		expected int
	}{
		{"empty series keeps carry-in", nil, 50, 50},
		{"single day from zero", []float64{100}, 0, 2},
		{"constant load approaches input", constantSeries(100, 365), 0, 100},
		{"carry-in decays toward zero", constantSeries(0, 42), 84, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateCTL(tt.dailyTSS, tt.carryIn)
			if result != tt.expected {
				t.Errorf("CalculateCTL() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestCalculateATL(t *testing.T) {
	tests := []struct {
		name     string
		dailyTSS []float64
		carryIn  float64
		expected int
	}{
		{"empty series keeps carry-in", nil, 30, 30},
		{"single day from zero", []float64{100}, 0, 14},
		{"constant load approaches input", constantSeries(100, 60), 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateATL(tt.dailyTSS, tt.carryIn)
			if result != tt.expected {
				t.Errorf("CalculateATL() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestCalculateTSB(t *testing.T) {
	tests := []struct {
		ctl, atl, expected int
	}{
		{50, 70, -20},
		{70, 50, 20},
		{0, 0, 0},
		{50, 50, 0},
		{10, 45, -35},
	}

	for _, tt := range tests {
		if got := CalculateTSB(tt.ctl, tt.atl); got != tt.expected {
			t.Errorf("CalculateTSB(%d, %d) = %d, want %d", tt.ctl, tt.atl, got, tt.expected)
		}
	}
}

func TestDailyTSS(t *testing.T) {
	baseDate := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		activities []store.Activity
		start, end time.Time
		expected   []float64
	}{
		{
			name:     "empty window of one day",
			start:    baseDate,
			end:      baseDate,
			expected: []float64{0},
		},
		{
			name: "gaps filled with zero",
			activities: []store.Activity{
				rideWithTSS(baseDate, 60),
				rideWithTSS(baseDate.AddDate(0, 0, 3), 90),
			},
			start:    baseDate,
			end:      baseDate.AddDate(0, 0, 3),
			expected: []float64{60, 0, 0, 90},
		},
		{
			name: "same day activities summed",
			activities: []store.Activity{
				rideWithTSS(baseDate, 40),
				rideWithTSS(baseDate.Add(6*time.Hour), 30),
			},
			start:    baseDate,
			end:      baseDate,
			expected: []float64{70},
		},
		{
			name: "activities outside window ignored",
			activities: []store.Activity{
				rideWithTSS(baseDate.AddDate(0, 0, -1), 100),
				rideWithTSS(baseDate, 50),
			},
			start:    baseDate,
			end:      baseDate,
			expected: []float64{50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DailyTSS(tt.activities, 250, tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("got %d days, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("day %d = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDailyTSSInvalidRange(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := DailyTSS(nil, 250, start, end)
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}

	// Same calendar day with an earlier clock time is still a valid window
	_, err = DailyTSS(nil, 250, start.Add(10*time.Hour), start)
	if err != nil {
		t.Errorf("same-day window: unexpected error %v", err)
	}
}

func TestBuildLoadHistory(t *testing.T) {
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("concrete three day series", func(t *testing.T) {
		activities := []store.Activity{
			rideWithTSS(baseDate, 100),
			rideWithTSS(baseDate.AddDate(0, 0, 2), 50),
		}

		samples, err := BuildLoadHistory(activities, 250, baseDate, baseDate.AddDate(0, 0, 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != 3 {
			t.Fatalf("got %d samples, want 3", len(samples))
		}

		// Daily inputs 100, 0, 50 folded with unrounded carry:
		// day 1: (2.381, 14.286), day 2: (2.324, 12.245), day 3: (3.459, 17.638)
		expected := []DailyLoadSample{
			{Date: baseDate, CTL: 2, ATL: 14, TSB: -12},
			{Date: baseDate.AddDate(0, 0, 1), CTL: 2, ATL: 12, TSB: -10},
			{Date: baseDate.AddDate(0, 0, 2), CTL: 3, ATL: 18, TSB: -15},
		}
		for i, want := range expected {
			got := samples[i]
			if !got.Date.Equal(want.Date) || got.CTL != want.CTL || got.ATL != want.ATL || got.TSB != want.TSB {
				t.Errorf("sample %d = %+v, want %+v", i, got, want)
			}
		}
	})

	t.Run("window length and ordering", func(t *testing.T) {
		days := 90
		samples, err := BuildLoadHistory(nil, 250, baseDate, baseDate.AddDate(0, 0, days-1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != days {
			t.Fatalf("got %d samples, want %d", len(samples), days)
		}
		for i, s := range samples {
			want := baseDate.AddDate(0, 0, i)
			if !s.Date.Equal(want) {
				t.Errorf("sample %d date = %v, want %v", i, s.Date, want)
			}
		}
	})

	t.Run("carried state is unrounded", func(t *testing.T) {
		// A small daily load that rounds to zero for the first days; a
		// fold over rounded state would stay at zero forever.
		var activities []store.Activity
		days := 30
		for i := 0; i < days; i++ {
			activities = append(activities, rideWithTSS(baseDate.AddDate(0, 0, i), 10))
		}

		samples, err := BuildLoadHistory(activities, 250, baseDate, baseDate.AddDate(0, 0, days-1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var state LoadState
		for i, s := range samples {
			state = state.Apply(10)
			wantCTL := int(math.Round(state.CTL))
			wantATL := int(math.Round(state.ATL))
			if s.CTL != wantCTL || s.ATL != wantATL {
				t.Fatalf("day %d: sample (CTL=%d, ATL=%d), want (CTL=%d, ATL=%d)",
					i, s.CTL, s.ATL, wantCTL, wantATL)
			}
		}

		if last := samples[days-1]; last.CTL == 0 {
			t.Error("CTL never accumulated; carried state appears rounded")
		}
	})

	t.Run("sample TSB composed from rounded values", func(t *testing.T) {
		activities := []store.Activity{rideWithTSS(baseDate, 100)}
		samples, err := BuildLoadHistory(activities, 250, baseDate, baseDate.AddDate(0, 0, 13))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, s := range samples {
			if s.TSB != s.CTL-s.ATL {
				t.Errorf("sample %d: TSB = %d, want CTL-ATL = %d", i, s.TSB, s.CTL-s.ATL)
			}
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := BuildLoadHistory(nil, 250, baseDate, baseDate.AddDate(0, 0, -1))
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("err = %v, want ErrInvalidRange", err)
		}
	})
}

func TestFormDescription(t *testing.T) {
	tests := []struct {
		tsb      int
		expected string
	}{
		{30, "Very fresh (possibly detrained)"},
		{26, "Very fresh (possibly detrained)"},
		{25, "Fresh and ready for a big week"},
		{11, "Fresh and ready for a big week"},
		{10, "Neutral - good for training"},
		{1, "Neutral - good for training"},
		{0, "Slightly fatigued"},
		{-9, "Slightly fatigued"},
		{-10, "Tired but building fitness"},
		{-24, "Tired but building fitness"},
		{-25, "Very fatigued - rest needed"},
		{-50, "Very fatigued - rest needed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormDescription(tt.tsb); got != tt.expected {
				t.Errorf("FormDescription(%d) = %q, want %q", tt.tsb, got, tt.expected)
			}
		})
	}
}

func constantSeries(value float64, days int) []float64 {
	s := make([]float64, days)
	for i := range s {
		s[i] = value
	}
	return s
}
