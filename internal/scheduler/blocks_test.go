package scheduler

import (
	"testing"
	"time"

	"github.com/rvachov/dayplan/internal/models"
)

func TestPlanBlocks_ExplicitBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		startHour int
		expected  TimeOfDay
	}{
		{name: "5am is morning", startHour: 5, expected: Morning},
		{name: "11am is morning", startHour: 11, expected: Morning},
		{name: "noon is evening", startHour: 12, expected: Evening},
		{name: "6pm is evening", startHour: 18, expected: Evening},
		{name: "4am is evening", startHour: 4, expected: Evening},
	}

	prefs := neutralPrefs()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start := time.Date(2025, 3, 10, tt.startHour, 30, 0, 0, time.UTC)
			blocks := PlanBlocks(start, 90, prefs)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}

			b := blocks[0]
			if b.TimeOfDay != tt.expected {
				t.Errorf("TimeOfDay = %s, want %s", b.TimeOfDay, tt.expected)
			}
			if !b.StartTime.Equal(start) {
				t.Errorf("StartTime = %v, want %v", b.StartTime, start)
			}
			if b.AvailableMinutes != 90 {
				t.Errorf("AvailableMinutes = %d, want 90", b.AvailableMinutes)
			}
			if want := start.Add(90 * time.Minute); !b.EndTime.Equal(want) {
				t.Errorf("EndTime = %v, want %v", b.EndTime, want)
			}
		})
	}
}

func TestPlanBlocks_PreferenceFallback(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 7, 15, 0, 0, time.UTC)

	tests := []struct {
		name            string
		morningMinutes  int
		eveningMinutes  int
		expectedPeriods []TimeOfDay
	}{
		{name: "both periods", morningMinutes: 60, eveningMinutes: 90, expectedPeriods: []TimeOfDay{Morning, Evening}},
		{name: "morning only", morningMinutes: 45, eveningMinutes: 0, expectedPeriods: []TimeOfDay{Morning}},
		{name: "evening only", morningMinutes: 0, eveningMinutes: 30, expectedPeriods: []TimeOfDay{Evening}},
		{name: "no availability", morningMinutes: 0, eveningMinutes: 0, expectedPeriods: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prefs := &models.UserPreferences{
				MorningComplexFactor: 1.0,
				EveningComplexFactor: 1.0,
				MorningAvailableTime: tt.morningMinutes,
				EveningAvailableTime: tt.eveningMinutes,
			}

			blocks := PlanBlocks(start, 0, prefs)
			if len(blocks) != len(tt.expectedPeriods) {
				t.Fatalf("got %d blocks, want %d", len(blocks), len(tt.expectedPeriods))
			}
			for i, b := range blocks {
				if b.TimeOfDay != tt.expectedPeriods[i] {
					t.Errorf("block %d period = %s, want %s", i, b.TimeOfDay, tt.expectedPeriods[i])
				}
			}
		})
	}
}

// The preference minutes are the packing budget even though the nominal spans
// are fixed at 4 and 5 hours; the spans only set the displayed bounds.
func TestPlanBlocks_BudgetIndependentOfSpan(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	prefs := &models.UserPreferences{
		MorningComplexFactor: 1.0,
		EveningComplexFactor: 1.0,
		MorningAvailableTime: 30,
		EveningAvailableTime: 600,
	}

	blocks := PlanBlocks(start, 0, prefs)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	morning, evening := blocks[0], blocks[1]
	if morning.AvailableMinutes != 30 {
		t.Errorf("morning budget = %d, want 30", morning.AvailableMinutes)
	}
	if evening.AvailableMinutes != 600 {
		t.Errorf("evening budget = %d, want 600", evening.AvailableMinutes)
	}

	if want := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC); !morning.StartTime.Equal(want) {
		t.Errorf("morning start = %v, want %v", morning.StartTime, want)
	}
	if want := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC); !morning.EndTime.Equal(want) {
		t.Errorf("morning end = %v, want %v", morning.EndTime, want)
	}
	if want := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC); !evening.StartTime.Equal(want) {
		t.Errorf("evening start = %v, want %v", evening.StartTime, want)
	}
	if want := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC); !evening.EndTime.Equal(want) {
		t.Errorf("evening end = %v, want %v", evening.EndTime, want)
	}
}
