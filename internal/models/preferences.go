package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinComplexFactor is the lowest valid complexity factor
	MinComplexFactor = 0.5
	// MaxComplexFactor is the highest valid complexity factor
	MaxComplexFactor = 1.5
)

// UserPreferences describes how well a user handles difficult tasks at
// different times of day and their default availability. Complexity factors
// are in [0.5, 1.5]; 1.0 is neutral, above 1.0 means the user handles
// complexity better than baseline in that period.
type UserPreferences struct {
	UserID               uuid.UUID `json:"user_id"`
	MorningComplexFactor float64   `json:"morning_complex_factor"`
	EveningComplexFactor float64   `json:"evening_complex_factor"`
	MorningAvailableTime int       `json:"morning_available_time"`
	EveningAvailableTime int       `json:"evening_available_time"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultPreferences returns neutral preferences for a user without a saved row.
func DefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		UserID:               userID,
		MorningComplexFactor: 1.0,
		EveningComplexFactor: 1.0,
		MorningAvailableTime: 120,
		EveningAvailableTime: 120,
	}
}

// ComplexFactorFor returns the complexity factor for the given period.
// Anything other than "morning" maps to the evening factor.
func (p *UserPreferences) ComplexFactorFor(timeOfDay string) float64 {
	if timeOfDay == "morning" {
		return p.MorningComplexFactor
	}
	return p.EveningComplexFactor
}
