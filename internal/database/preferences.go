package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rvachov/dayplan/internal/models"
)

// ErrPreferencesNotFound is returned when a user has no saved preferences row.
// Callers fall back to models.DefaultPreferences.
var ErrPreferencesNotFound = errors.New("preferences not found")

// PreferencesRepository handles user preferences database operations
type PreferencesRepository struct {
	db *DB
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// GetByUserID retrieves a user's preferences
func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{}
	query := `
		SELECT user_id, morning_complex_factor, evening_complex_factor, morning_available_time, evening_available_time, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.MorningComplexFactor,
		&prefs.EveningComplexFactor,
		&prefs.MorningAvailableTime,
		&prefs.EveningAvailableTime,
		&prefs.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// GetOrDefault retrieves a user's preferences, falling back to the neutral
// defaults when no row exists
func (r *PreferencesRepository) GetOrDefault(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs, err := r.GetByUserID(ctx, userID)
	if errors.Is(err, ErrPreferencesNotFound) {
		return models.DefaultPreferences(userID), nil
	}
	return prefs, err
}

// Upsert creates or replaces a user's preferences
func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, morning_complex_factor, evening_complex_factor, morning_available_time, evening_available_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET morning_complex_factor = EXCLUDED.morning_complex_factor,
		    evening_complex_factor = EXCLUDED.evening_complex_factor,
		    morning_available_time = EXCLUDED.morning_available_time,
		    evening_available_time = EXCLUDED.evening_available_time,
		    updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		prefs.UserID,
		prefs.MorningComplexFactor,
		prefs.EveningComplexFactor,
		prefs.MorningAvailableTime,
		prefs.EveningAvailableTime,
		time.Now(),
	).Scan(&prefs.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}
