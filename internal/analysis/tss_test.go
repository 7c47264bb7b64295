package analysis

import (
	"testing"

	"veloform/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestEstimateTSS(t *testing.T) {
	tests := []struct {
		name     string
		activity store.Activity
		ftp      float64
		expected int
	}{
		{
			name: "power at threshold for one hour is 100",
			activity: store.Activity{
				MovingTime:   3600,
				AverageWatts: floatPtr(250),
				DeviceWatts:  true,
			},
			ftp:      250,
			expected: 100,
		},
		{
			name: "weighted average power preferred over raw average",
			activity: store.Activity{
				MovingTime:           3600,
				AverageWatts:         floatPtr(200),
				WeightedAverageWatts: floatPtr(250),
				DeviceWatts:          true,
			},
			ftp:      250,
			expected: 100,
		},
		{
			name: "power above threshold scales with IF squared",
			activity: store.Activity{
				MovingTime:   3600,
				AverageWatts: floatPtr(275),
				DeviceWatts:  true,
			},
			ftp: 250,
			// IF = 1.1, TSS = 1 * 1.21 * 100 = 121
			expected: 121,
		},
		{
			name: "half hour at threshold is 50",
			activity: store.Activity{
				MovingTime:   1800,
				AverageWatts: floatPtr(250),
				DeviceWatts:  true,
			},
			ftp:      250,
			expected: 50,
		},
		{
			name: "estimated power ignored, falls through to heart rate",
			activity: store.Activity{
				MovingTime:       3600,
				AverageWatts:     floatPtr(300),
				DeviceWatts:      false,
				AverageHeartrate: floatPtr(140),
			},
			ftp: 250,
			// estimated IF = (140-60)/80 = 1.0
			expected: 100,
		},
		{
			name: "heart rate branch at 140 bpm for one hour",
			activity: store.Activity{
				MovingTime:       3600,
				AverageHeartrate: floatPtr(140),
			},
			ftp:      250,
			expected: 100,
		},
		{
			name: "heart rate branch at lower intensity",
			activity: store.Activity{
				MovingTime:       3600,
				AverageHeartrate: floatPtr(120),
			},
			ftp: 250,
			// estimated IF = 0.75, TSS = 0.5625 * 100 = 56
			expected: 56,
		},
		{
			name: "fallback flat ride uses 60 TSS per hour",
			activity: store.Activity{
				MovingTime: 7200,
			},
			ftp:      250,
			expected: 120,
		},
		{
			name: "fallback inflated by elevation gain",
			activity: store.Activity{
				MovingTime:         3600,
				TotalElevationGain: 1000,
			},
			ftp: 250,
			// factor = 1 + (1000/1000)*0.1 = 1.1
			expected: 66,
		},
		{
			name: "zero duration power ride",
			activity: store.Activity{
				MovingTime:   0,
				AverageWatts: floatPtr(250),
				DeviceWatts:  true,
			},
			ftp:      250,
			expected: 0,
		},
		{
			name: "zero duration heart rate ride",
			activity: store.Activity{
				MovingTime:       0,
				AverageHeartrate: floatPtr(150),
			},
			ftp:      250,
			expected: 0,
		},
		{
			name:     "zero duration fallback ride",
			activity: store.Activity{},
			ftp:      250,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EstimateTSS(tt.activity, tt.ftp)
			if result != tt.expected {
				t.Errorf("EstimateTSS() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestEstimateTSSMonotonicInDuration(t *testing.T) {
	prev := 0
	for secs := 0; secs <= 14400; secs += 600 {
		a := store.Activity{
			MovingTime:   secs,
			AverageWatts: floatPtr(220),
			DeviceWatts:  true,
		}
		score := EstimateTSS(a, 250)
		if score < prev {
			t.Errorf("score decreased with duration: %ds gave %d, previous %d", secs, score, prev)
		}
		prev = score
	}
}

func TestEstimateTSSMonotonicInPower(t *testing.T) {
	prev := 0
	for watts := 100.0; watts <= 400; watts += 10 {
		a := store.Activity{
			MovingTime:   3600,
			AverageWatts: floatPtr(watts),
			DeviceWatts:  true,
		}
		score := EstimateTSS(a, 250)
		if score < prev {
			t.Errorf("score decreased with power: %.0fW gave %d, previous %d", watts, score, prev)
		}
		prev = score
	}
}

func TestEstimateFTP(t *testing.T) {
	tests := []struct {
		name       string
		activities []store.Activity
		expected   int
	}{
		{
			name:       "no activities returns default",
			activities: nil,
			expected:   200,
		},
		{
			name: "short efforts excluded",
			activities: []store.Activity{
				{AverageWatts: floatPtr(300), DeviceWatts: true, MovingTime: 1300},
				{AverageWatts: floatPtr(280), DeviceWatts: true, MovingTime: 1000},
			},
			// only the 1300s ride qualifies: round(300 * 0.95)
			expected: 285,
		},
		{
			name: "estimated power excluded",
			activities: []store.Activity{
				{AverageWatts: floatPtr(320), DeviceWatts: false, MovingTime: 3600},
			},
			expected: 200,
		},
		{
			name: "no power data excluded",
			activities: []store.Activity{
				{MovingTime: 3600},
			},
			expected: 200,
		},
		{
			name: "best qualifying effort wins regardless of order",
			activities: []store.Activity{
				{AverageWatts: floatPtr(240), DeviceWatts: true, MovingTime: 2400},
				{AverageWatts: floatPtr(260), DeviceWatts: true, MovingTime: 1200},
				{AverageWatts: floatPtr(250), DeviceWatts: true, MovingTime: 5400},
			},
			// round(260 * 0.95) = 247
			expected: 247,
		},
		{
			name: "exactly 20 minutes qualifies",
			activities: []store.Activity{
				{AverageWatts: floatPtr(200), DeviceWatts: true, MovingTime: 1200},
			},
			expected: 190,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EstimateFTP(tt.activities)
			if result != tt.expected {
				t.Errorf("EstimateFTP() = %d, want %d", result, tt.expected)
			}
		})
	}
}
