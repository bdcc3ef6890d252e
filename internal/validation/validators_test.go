package validation

import (
	"testing"
)

func TestValidateTaskStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"pending", "completed"} {
		if err := ValidateTaskStatus(valid); err != nil {
			t.Errorf("ValidateTaskStatus(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "done", "Pending", "in_progress"} {
		if err := ValidateTaskStatus(invalid); err == nil {
			t.Errorf("ValidateTaskStatus(%q) = nil, want error", invalid)
		}
	}
}

func TestValidateScheduleStrategy(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"priority", "balanced", "grouped"} {
		if err := ValidateScheduleStrategy(valid); err != nil {
			t.Errorf("ValidateScheduleStrategy(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "random", "Priority"} {
		if err := ValidateScheduleStrategy(invalid); err == nil {
			t.Errorf("ValidateScheduleStrategy(%q) = nil, want error", invalid)
		}
	}
}

func TestValidateScheduleDate(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"2025-01-01", "2025-12-31", "2000-02-29"} {
		if err := ValidateScheduleDate(valid); err != nil {
			t.Errorf("ValidateScheduleDate(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "2025-13-01", "2025-02-30", "01-01-2025", "2025/01/01", "today"} {
		if err := ValidateScheduleDate(invalid); err == nil {
			t.Errorf("ValidateScheduleDate(%q) = nil, want error", invalid)
		}
	}
}

func TestValidateScale(t *testing.T) {
	t.Parallel()

	for _, valid := range []int{1, 3, 5} {
		if err := ValidateScale("urgency", valid); err != nil {
			t.Errorf("ValidateScale(urgency, %d) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []int{0, -1, 6} {
		if err := ValidateScale("urgency", invalid); err == nil {
			t.Errorf("ValidateScale(urgency, %d) = nil, want error", invalid)
		}
	}
}

func TestValidateComplexFactor(t *testing.T) {
	t.Parallel()

	for _, valid := range []float64{0.5, 1.0, 1.5} {
		if err := ValidateComplexFactor("morning_complex_factor", valid); err != nil {
			t.Errorf("ValidateComplexFactor(%g) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []float64{0.49, 0, 1.51, -1} {
		if err := ValidateComplexFactor("morning_complex_factor", invalid); err == nil {
			t.Errorf("ValidateComplexFactor(%g) = nil, want error", invalid)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims whitespace", input: "  hello  ", want: "hello"},
		{name: "strips control characters", input: "hel\x00lo", want: "hello"},
		{name: "keeps newline and tab", input: "a\n\tb", want: "a\n\tb"},
		{name: "empty after trim", input: "   ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
