package scheduler

import (
	"time"

	"github.com/rvachov/dayplan/internal/models"
)

// DefaultMinRemainingMinutes is the cutoff below which a block stops
// accepting tasks. No task is assumed schedulable in less slack than this,
// even if a shorter task appears later in the ordering.
const DefaultMinRemainingMinutes = 15

// PackResult is the outcome of packing one time block.
type PackResult struct {
	Placed    []models.ScheduledTask
	Score     float64
	Remaining []ScoredTask
}

// PackBlock walks the ordered tasks and greedily places each one that fits in
// the block's remaining minutes, emitting concrete start/end timestamps.
//
// A task whose duration exceeds the remaining minutes is skipped, not
// dropped: it stays in Remaining and may fit a later block or never be
// placed at all. After a placement leaves fewer than minRemaining minutes the
// block stops accepting candidates; tasks not yet considered also stay in
// Remaining. The placed tasks' summed durations never exceed the block's
// available minutes.
func PackBlock(block TimeBlock, ordered []ScoredTask, minRemaining int) PackResult {
	current := block.StartTime
	remaining := block.AvailableMinutes

	var result PackResult
	for i := 0; i < len(ordered); i++ {
		st := ordered[i]
		if st.Task.DurationMinutes > remaining {
			result.Remaining = append(result.Remaining, st)
			continue
		}

		end := current.Add(time.Duration(st.Task.DurationMinutes) * time.Minute)
		result.Placed = append(result.Placed, models.ScheduledTask{
			TaskID:    st.Task.ID,
			StartTime: current,
			EndTime:   end,
		})
		current = end
		remaining -= st.Task.DurationMinutes
		result.Score += st.ScoreFor(block.TimeOfDay)

		if remaining < minRemaining {
			result.Remaining = append(result.Remaining, ordered[i+1:]...)
			break
		}
	}
	return result
}
