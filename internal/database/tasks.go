package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rvachov/dayplan/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, urgency, difficulty, duration_minutes, deadline, tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	var deadline sql.NullTime
	if task.Deadline != nil {
		deadline = sql.NullTime{Time: *task.Deadline, Valid: true}
	}

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Urgency,
		task.Difficulty,
		task.DurationMinutes,
		deadline,
		pq.Array(task.Tags),
		task.Status,
		now,
		now,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `
		SELECT id, user_id, title, urgency, difficulty, duration_minutes, deadline, tags, status, created_at, updated_at, completed_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// GetByUserID retrieves all tasks for a user, optionally filtered by status
func (r *TaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, urgency, difficulty, duration_minutes, deadline, tags, status, created_at, updated_at, completed_at
		FROM tasks
		WHERE user_id = $1
	`
	args := []any{userID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, string(*status))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetPendingByUserID retrieves the user's pending tasks, the pool schedule
// generation draws from
func (r *TaskRepository) GetPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	pending := models.TaskStatusPending
	return r.GetByUserID(ctx, userID, &pending)
}

// GetUserIDsWithPending retrieves the IDs of all users that have at least one
// pending task. Used by the nightly refresh to decide whose schedules to rebuild.
func (r *TaskRepository) GetUserIDsWithPending(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT user_id FROM tasks WHERE status = $1`

	rows, err := r.db.QueryContext(ctx, query, models.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query users with pending tasks: %w", err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ids: %w", err)
	}

	return userIDs, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, urgency = $3, difficulty = $4, duration_minutes = $5, deadline = $6, tags = $7, status = $8, updated_at = $9, completed_at = $10
		WHERE id = $1
		RETURNING updated_at
	`

	var deadline sql.NullTime
	if task.Deadline != nil {
		deadline = sql.NullTime{Time: *task.Deadline, Valid: true}
	}
	var completedAt sql.NullTime
	if task.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Urgency,
		task.Difficulty,
		task.DurationMinutes,
		deadline,
		pq.Array(task.Tags),
		task.Status,
		now,
		completedAt,
	).Scan(&task.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("task not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// SetCompleted transitions a task between pending and completed
func (r *TaskRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	query := `
		UPDATE tasks
		SET status = $2, completed_at = $3, updated_at = $4
		WHERE id = $1
	`

	status := models.TaskStatusPending
	var completedAt sql.NullTime
	now := time.Now()
	if completed {
		status = models.TaskStatusCompleted
		completedAt = sql.NullTime{Time: now, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, id, status, completedAt, now)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}

// Delete deletes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var deadline sql.NullTime
	var completedAt sql.NullTime
	var tags pq.StringArray

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Urgency,
		&task.Difficulty,
		&task.DurationMinutes,
		&deadline,
		&tags,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if deadline.Valid {
		task.Deadline = &deadline.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	task.Tags = []string(tags)

	return task, nil
}
