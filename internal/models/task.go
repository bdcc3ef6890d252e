package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// UntaggedCategory is the synthetic category assigned to tasks with no tags
const UntaggedCategory = "untagged"

// Task represents a task item. Urgency and Difficulty are on a 1-5 scale.
type Task struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Title           string     `json:"title"`
	Urgency         int        `json:"urgency"`
	Difficulty      int        `json:"difficulty"`
	DurationMinutes int        `json:"duration_minutes"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Tags            []string   `json:"tags"`
	Status          TaskStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Category returns the task's category for grouping and balancing purposes.
// The first tag is the category; tag order is therefore significant. Tasks
// without tags fall into the "untagged" category. This is a documented
// contract: changing it would change balanced/grouped scheduling behavior.
func (t *Task) Category() string {
	if len(t.Tags) == 0 || t.Tags[0] == "" {
		return UntaggedCategory
	}
	return t.Tags[0]
}
