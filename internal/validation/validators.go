package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/rvachov/dayplan/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("task_status", validateTaskStatus); err != nil {
		panic(fmt.Sprintf("failed to register task_status validator: %v", err))
	}
	if err := Validate.RegisterValidation("schedule_strategy", validateScheduleStrategy); err != nil {
		panic(fmt.Sprintf("failed to register schedule_strategy validator: %v", err))
	}
	if err := Validate.RegisterValidation("schedule_date", validateScheduleDate); err != nil {
		panic(fmt.Sprintf("failed to register schedule_date validator: %v", err))
	}
}

// validateTaskStatus validates that a string is a valid TaskStatus enum value
func validateTaskStatus(fl validator.FieldLevel) bool {
	switch models.TaskStatus(fl.Field().String()) {
	case models.TaskStatusPending, models.TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// validateScheduleStrategy validates that a string is a valid ScheduleStrategy enum value
func validateScheduleStrategy(fl validator.FieldLevel) bool {
	return models.ValidScheduleStrategy(models.ScheduleStrategy(fl.Field().String()))
}

// validateScheduleDate validates that a string is a YYYY-MM-DD date
func validateScheduleDate(fl validator.FieldLevel) bool {
	return ValidateScheduleDate(fl.Field().String()) == nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTaskStatus validates a TaskStatus string value
func ValidateTaskStatus(value string) error {
	switch models.TaskStatus(value) {
	case models.TaskStatusPending, models.TaskStatusCompleted:
		return nil
	default:
		return fmt.Errorf("invalid status: %s (must be 'pending' or 'completed')", value)
	}
}

// ValidateScheduleStrategy validates a ScheduleStrategy string value
func ValidateScheduleStrategy(value string) error {
	if !models.ValidScheduleStrategy(models.ScheduleStrategy(value)) {
		return fmt.Errorf("invalid strategy: %s (must be 'priority', 'balanced', or 'grouped')", value)
	}
	return nil
}

// ValidateScheduleDate validates a YYYY-MM-DD date string
func ValidateScheduleDate(value string) error {
	if _, err := time.Parse(models.ScheduleDateFormat, value); err != nil {
		return fmt.Errorf("invalid date: %s (must be YYYY-MM-DD)", value)
	}
	return nil
}

// ValidateScale validates a 1-5 urgency or difficulty value
func ValidateScale(name string, value int) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("invalid %s: %d (must be between 1 and 5)", name, value)
	}
	return nil
}

// ValidateComplexFactor validates a complexity factor value
func ValidateComplexFactor(name string, value float64) error {
	if value < models.MinComplexFactor || value > models.MaxComplexFactor {
		return fmt.Errorf("invalid %s: %g (must be between %g and %g)", name, value, models.MinComplexFactor, models.MaxComplexFactor)
	}
	return nil
}
