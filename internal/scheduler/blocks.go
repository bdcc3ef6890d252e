package scheduler

import (
	"time"

	"github.com/rvachov/dayplan/internal/models"
)

// TimeBlock is a contiguous scheduling window.
type TimeBlock struct {
	TimeOfDay        TimeOfDay
	StartTime        time.Time
	EndTime          time.Time
	AvailableMinutes int
}

const (
	morningBlockStartHour = 8
	morningBlockSpan      = 4 * time.Hour
	eveningBlockStartHour = 17
	eveningBlockSpan      = 5 * time.Hour
)

// TimeOfDayFor labels a start time: hours in [5, 12) are morning, everything
// else is evening.
func TimeOfDayFor(t time.Time) TimeOfDay {
	if h := t.Hour(); h >= 5 && h < 12 {
		return Morning
	}
	return Evening
}

// PlanBlocks derives the scheduling windows for one invocation.
//
// With an explicit freeMinutes budget it returns a single block starting at
// start. Otherwise it falls back to preference-derived morning and evening
// blocks on start's date, each included only if that period's available time
// is positive. In the fallback the preference minutes are the packing budget
// regardless of the nominal span; the span only fixes the displayed bounds.
func PlanBlocks(start time.Time, freeMinutes int, prefs *models.UserPreferences) []TimeBlock {
	if freeMinutes > 0 {
		return []TimeBlock{{
			TimeOfDay:        TimeOfDayFor(start),
			StartTime:        start,
			EndTime:          start.Add(time.Duration(freeMinutes) * time.Minute),
			AvailableMinutes: freeMinutes,
		}}
	}

	var blocks []TimeBlock
	year, month, day := start.Date()
	if prefs.MorningAvailableTime > 0 {
		s := time.Date(year, month, day, morningBlockStartHour, 0, 0, 0, start.Location())
		blocks = append(blocks, TimeBlock{
			TimeOfDay:        Morning,
			StartTime:        s,
			EndTime:          s.Add(morningBlockSpan),
			AvailableMinutes: prefs.MorningAvailableTime,
		})
	}
	if prefs.EveningAvailableTime > 0 {
		s := time.Date(year, month, day, eveningBlockStartHour, 0, 0, 0, start.Location())
		blocks = append(blocks, TimeBlock{
			TimeOfDay:        Evening,
			StartTime:        s,
			EndTime:          s.Add(eveningBlockSpan),
			AvailableMinutes: prefs.EveningAvailableTime,
		})
	}
	return blocks
}
