package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rvachov/dayplan/internal/models"
)

// ErrScheduleNotFound is returned when a schedule option does not exist or
// belongs to another user.
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepository handles schedule option database operations. Placed
// tasks are stored as a JSONB document per option; they are only ever read
// and written as a unit.
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ReplaceUnselected atomically removes the unselected options for a user and
// date and inserts the given replacements. A previously selected option
// survives regeneration.
func (r *ScheduleRepository) ReplaceUnselected(ctx context.Context, userID uuid.UUID, date string, options []*models.ScheduleOption) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM schedule_options WHERE user_id = $1 AND date = $2 AND selected = false`,
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to clear unselected options: %w", err)
	}

	for _, option := range options {
		if err := insertOption(ctx, tx, option); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit options: %w", err)
	}

	return nil
}

func insertOption(ctx context.Context, tx *sql.Tx, option *models.ScheduleOption) error {
	tasksJSON, err := json.Marshal(option.Tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal scheduled tasks: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schedule_options (id, user_id, date, strategy, tasks, total_score, selected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		option.ID,
		option.UserID,
		option.Date,
		option.Strategy,
		tasksJSON,
		option.TotalScore,
		option.Selected,
		option.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert schedule option: %w", err)
	}

	return nil
}

// GetByUserAndDate retrieves all options for a user and date, selected first,
// then in generation order
func (r *ScheduleRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]*models.ScheduleOption, error) {
	query := `
		SELECT id, user_id, date, strategy, tasks, total_score, selected, created_at
		FROM schedule_options
		WHERE user_id = $1 AND date = $2
		ORDER BY selected DESC, created_at ASC, strategy ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule options: %w", err)
	}
	defer rows.Close()

	var options []*models.ScheduleOption
	for rows.Next() {
		option, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule options: %w", err)
	}

	return options, nil
}

// GetByID retrieves a single schedule option
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleOption, error) {
	query := `
		SELECT id, user_id, date, strategy, tasks, total_score, selected, created_at
		FROM schedule_options
		WHERE id = $1
	`

	option, err := scanOption(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}

	return option, nil
}

// Select marks one option as the user's chosen schedule for its date and
// deselects every sibling. At most one option per user and date is selected
// once the transaction commits.
func (r *ScheduleRepository) Select(ctx context.Context, userID, optionID uuid.UUID) (*models.ScheduleOption, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var date string
	err = tx.QueryRowContext(ctx,
		`SELECT date FROM schedule_options WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		optionID, userID,
	).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock schedule option: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE schedule_options SET selected = false WHERE user_id = $1 AND date = $2 AND selected = true`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to deselect options: %w", err)
	}

	option, err := scanOption(tx.QueryRowContext(ctx, `
		UPDATE schedule_options SET selected = true WHERE id = $1
		RETURNING id, user_id, date, strategy, tasks, total_score, selected, created_at
	`, optionID))
	if err != nil {
		return nil, fmt.Errorf("failed to select option: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit selection: %w", err)
	}

	return option, nil
}

// SetTaskCompleted toggles the completion flag of one placed task inside an
// option's task list
func (r *ScheduleRepository) SetTaskCompleted(ctx context.Context, userID, optionID, taskID uuid.UUID, completed bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var tasksJSON []byte
	err = tx.QueryRowContext(ctx,
		`SELECT tasks FROM schedule_options WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		optionID, userID,
	).Scan(&tasksJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrScheduleNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock schedule option: %w", err)
	}

	var tasks []models.ScheduledTask
	if err := json.Unmarshal(tasksJSON, &tasks); err != nil {
		return fmt.Errorf("failed to unmarshal scheduled tasks: %w", err)
	}

	found := false
	for i := range tasks {
		if tasks[i].TaskID == taskID {
			tasks[i].Completed = completed
			found = true
		}
	}
	if !found {
		return fmt.Errorf("task not in schedule")
	}

	updated, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal scheduled tasks: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE schedule_options SET tasks = $2 WHERE id = $1`,
		optionID, updated,
	)
	if err != nil {
		return fmt.Errorf("failed to update scheduled tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task completion: %w", err)
	}

	return nil
}

func scanOption(row rowScanner) (*models.ScheduleOption, error) {
	option := &models.ScheduleOption{}
	var tasksJSON []byte

	err := row.Scan(
		&option.ID,
		&option.UserID,
		&option.Date,
		&option.Strategy,
		&tasksJSON,
		&option.TotalScore,
		&option.Selected,
		&option.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tasksJSON, &option.Tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scheduled tasks: %w", err)
	}

	return option, nil
}
