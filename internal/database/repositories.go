package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/rvachov/dayplan/internal/models"
)

// TaskRepositoryInterface defines the interface for task repository operations
// This interface enables better testability by allowing mock implementations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]*models.Task, error)
	GetPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	GetUserIDsWithPending(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, task *models.Task) error
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PreferencesRepositoryInterface defines the interface for preferences repository operations
type PreferencesRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	GetOrDefault(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

// ScheduleRepositoryInterface defines the interface for schedule repository operations
type ScheduleRepositoryInterface interface {
	ReplaceUnselected(ctx context.Context, userID uuid.UUID, date string, options []*models.ScheduleOption) error
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]*models.ScheduleOption, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleOption, error)
	Select(ctx context.Context, userID, optionID uuid.UUID) (*models.ScheduleOption, error)
	SetTaskCompleted(ctx context.Context, userID, optionID, taskID uuid.UUID, completed bool) error
}

// Ensure concrete types implement the interfaces
var (
	_ TaskRepositoryInterface        = (*TaskRepository)(nil)
	_ PreferencesRepositoryInterface = (*PreferencesRepository)(nil)
	_ ScheduleRepositoryInterface    = (*ScheduleRepository)(nil)
)
