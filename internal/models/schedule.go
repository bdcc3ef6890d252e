package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleStrategy identifies which ordering heuristic produced an option
type ScheduleStrategy string

const (
	StrategyPriority ScheduleStrategy = "priority"
	StrategyBalanced ScheduleStrategy = "balanced"
	StrategyGrouped  ScheduleStrategy = "grouped"
)

// ScheduleDateFormat is the wire/storage format for schedule dates
const ScheduleDateFormat = "2006-01-02"

// ScheduledTask is a task placed into a concrete time slot within a
// schedule option. Task ordering in a schedule reflects chronological placement.
type ScheduledTask struct {
	TaskID    uuid.UUID `json:"task_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Completed bool      `json:"completed"`
}

// ScheduleOption is one candidate schedule for a user and date. Three options
// are generated per invocation, one per strategy, and the user selects one.
// At most one option per user/date is selected at a time; the repository's
// Select operation enforces that.
type ScheduleOption struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"user_id"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Strategy   ScheduleStrategy `json:"strategy"`
	Tasks      []ScheduledTask  `json:"tasks"`
	TotalScore float64          `json:"total_score"`
	Selected   bool             `json:"selected"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ValidScheduleStrategy reports whether s is a known strategy value.
func ValidScheduleStrategy(s ScheduleStrategy) bool {
	switch s {
	case StrategyPriority, StrategyBalanced, StrategyGrouped:
		return true
	default:
		return false
	}
}
