package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	job := NewJob(JobTypeGenerateSchedule, userID, "2025-03-10")

	if job.ID == uuid.Nil {
		t.Error("job id not assigned")
	}
	if job.Type != JobTypeGenerateSchedule {
		t.Errorf("type = %s, want %s", job.Type, JobTypeGenerateSchedule)
	}
	if job.UserID != userID {
		t.Errorf("userID = %s, want %s", job.UserID, userID)
	}
	if job.Date != "2025-03-10" {
		t.Errorf("date = %s, want 2025-03-10", job.Date)
	}
	if job.RetryCount != 0 {
		t.Errorf("retryCount = %d, want 0", job.RetryCount)
	}
	if job.MaxRetries != 3 {
		t.Errorf("maxRetries = %d, want 3", job.MaxRetries)
	}
}

func TestJobShouldProcess(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		notBefore *time.Time
		notAfter  *time.Time
		want      bool
	}{
		{"no window", nil, nil, true},
		{"notBefore passed", &past, nil, true},
		{"notBefore in future", &future, nil, false},
		{"notAfter in future", nil, &future, true},
		{"notAfter passed", nil, &past, false},
		{"inside window", &past, &future, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := NewJob(JobTypeRefreshAll, uuid.New(), "")
			job.NotBefore = tt.notBefore
			job.NotAfter = tt.notAfter
			if got := job.ShouldProcess(); got != tt.want {
				t.Errorf("ShouldProcess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJobIsExpired(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeGenerateSchedule, uuid.New(), "2025-03-10")
	if job.IsExpired() {
		t.Error("job with no notAfter reported expired")
	}

	past := time.Now().Add(-time.Minute)
	job.NotAfter = &past
	if !job.IsExpired() {
		t.Error("job past notAfter not reported expired")
	}
}

func TestJobRetry(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeGenerateSchedule, uuid.New(), "2025-03-10")
	for i := 0; i < job.MaxRetries; i++ {
		if !job.CanRetry() {
			t.Fatalf("CanRetry() = false after %d retries, max %d", i, job.MaxRetries)
		}
		job.IncrementRetry()
	}
	if job.CanRetry() {
		t.Error("CanRetry() = true after max retries")
	}
}
