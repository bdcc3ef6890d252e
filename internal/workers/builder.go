package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rvachov/dayplan/internal/database"
	"github.com/rvachov/dayplan/internal/models"
	"github.com/rvachov/dayplan/internal/queue"
	"github.com/rvachov/dayplan/internal/scheduler"
)

// ScheduleBuilder processes schedule generation jobs
type ScheduleBuilder struct {
	generator    *scheduler.Generator
	taskRepo     database.TaskRepositoryInterface
	prefsRepo    database.PreferencesRepositoryInterface
	scheduleRepo database.ScheduleRepositoryInterface
	jobQueue     queue.JobQueue // For re-enqueueing jobs with delays
}

// NewScheduleBuilder creates a new schedule builder
func NewScheduleBuilder(
	generator *scheduler.Generator,
	taskRepo database.TaskRepositoryInterface,
	prefsRepo database.PreferencesRepositoryInterface,
	scheduleRepo database.ScheduleRepositoryInterface,
	jobQueue queue.JobQueue,
) *ScheduleBuilder {
	return &ScheduleBuilder{
		generator:    generator,
		taskRepo:     taskRepo,
		prefsRepo:    prefsRepo,
		scheduleRepo: scheduleRepo,
		jobQueue:     jobQueue,
	}
}

// ProcessGenerateScheduleJob builds the three schedule options for one user
// and date and stores them, replacing any unselected options for that date.
func (b *ScheduleBuilder) ProcessGenerateScheduleJob(ctx context.Context, job *queue.Job) error {
	if job.Date == "" {
		return fmt.Errorf("date is required for schedule generation job")
	}
	date, err := time.Parse(models.ScheduleDateFormat, job.Date)
	if err != nil {
		return fmt.Errorf("invalid job date %q: %w", job.Date, err)
	}

	tasks, err := b.taskRepo.GetPendingByUserID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	prefs, err := b.prefsRepo.GetOrDefault(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	options := b.generator.Generate(scheduler.Request{
		UserID:      job.UserID,
		Date:        job.Date,
		Tasks:       tasks,
		Preferences: prefs,
		StartTime:   scheduleStart(date),
	})

	if err := b.scheduleRepo.ReplaceUnselected(ctx, job.UserID, job.Date, options); err != nil {
		return fmt.Errorf("failed to store schedule options: %w", err)
	}

	log.Printf("Generated %d schedule options for user %s date %s (%d pending tasks)",
		len(options), job.UserID, job.Date, len(tasks))
	return nil
}

// ProcessRefreshAllJob fans out a generation job for every user that has
// pending tasks. The heavy work stays in the per-user jobs so a single slow
// user cannot stall the refresh.
func (b *ScheduleBuilder) ProcessRefreshAllJob(ctx context.Context, job *queue.Job) error {
	userIDs, err := b.taskRepo.GetUserIDsWithPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users with pending tasks: %w", err)
	}

	date := job.Date
	if date == "" {
		date = time.Now().Format(models.ScheduleDateFormat)
	}

	enqueued := 0
	for _, userID := range userIDs {
		if err := b.jobQueue.Enqueue(ctx, queue.NewJob(queue.JobTypeGenerateSchedule, userID, date)); err != nil {
			log.Printf("Failed to enqueue generation job for user %s: %v", userID, err)
			continue
		}
		enqueued++
	}

	log.Printf("Refresh fan-out: enqueued %d/%d generation jobs for date %s", enqueued, len(userIDs), date)
	return nil
}

// ProcessJob processes a job based on its type
func (b *ScheduleBuilder) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	// Check if job should be processed now (respect NotBefore)
	if !job.ShouldProcess() {
		log.Printf("Job %s not ready yet (NotBefore: %v), skipping", job.ID, job.NotBefore)
		if ackErr := msg.Ack(); ackErr != nil {
			log.Printf("Failed to ack job for later processing: %v", ackErr)
		}
		return nil
	}

	switch job.Type {
	case queue.JobTypeGenerateSchedule:
		if err := b.ProcessGenerateScheduleJob(ctx, job); err != nil {
			return b.handleJobError(ctx, msg, job, err, "schedule generation")
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypeRefreshAll:
		if err := b.ProcessRefreshAllJob(ctx, job); err != nil {
			// The next refresh covers the same ground, so don't requeue
			if nackErr := msg.Nack(false); nackErr != nil {
				log.Printf("Failed to nack refresh job: %v", nackErr)
			}
			return fmt.Errorf("refresh failed: %w", err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack refresh job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			log.Printf("Failed to nack unknown job type: %v", nackErr)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError handles errors from job processing with retry logic
func (b *ScheduleBuilder) handleJobError(ctx context.Context, msg *queue.Message, job *queue.Job, err error, jobType string) error {
	if job.CanRetry() {
		// Re-enqueue with a delay so a struggling database gets breathing room
		if b.jobQueue != nil {
			notBefore := time.Now().Add(retryDelay(job.RetryCount))
			delayedJob := &queue.Job{
				ID:         job.ID,
				Type:       job.Type,
				UserID:     job.UserID,
				Date:       job.Date,
				NotBefore:  &notBefore,
				NotAfter:   job.NotAfter,
				Metadata:   job.Metadata,
				CreatedAt:  job.CreatedAt,
				RetryCount: job.RetryCount + 1,
				MaxRetries: job.MaxRetries,
			}

			if ackErr := msg.Ack(); ackErr != nil {
				log.Printf("Failed to ack job before re-enqueue: %v", ackErr)
			}

			if enqueueErr := b.jobQueue.Enqueue(ctx, delayedJob); enqueueErr != nil {
				log.Printf("Failed to re-enqueue job %s with delay: %v", job.ID, enqueueErr)
				return fmt.Errorf("failed to re-enqueue: %w", enqueueErr)
			}

			log.Printf("%s job %s failed (attempt %d/%d): %v, retrying at %v",
				jobType, job.ID, job.RetryCount+1, job.MaxRetries, err, notBefore)
			return nil
		}

		// No queue access: immediate requeue
		job.IncrementRetry()
		log.Printf("%s job %s failed (attempt %d/%d): %v, will retry", jobType, job.ID, job.RetryCount, job.MaxRetries, err)
		if nackErr := msg.Nack(true); nackErr != nil {
			log.Printf("Failed to nack job: %v", nackErr)
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	// Max retries exceeded, send to DLQ
	log.Printf("%s job %s failed after %d retries: %v, sending to DLQ", jobType, job.ID, job.MaxRetries, err)
	if nackErr := msg.Nack(false); nackErr != nil {
		log.Printf("Failed to nack job to DLQ: %v", nackErr)
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}

// retryDelay backs off exponentially: 30s, 1m, 2m, ...
func retryDelay(retryCount int) time.Duration {
	delay := 30 * time.Second << retryCount
	if delay > 10*time.Minute {
		delay = 10 * time.Minute
	}
	return delay
}

// scheduleStart anchors generation for a future date at the start of its
// morning block; generation for today starts from the current moment.
func scheduleStart(date time.Time) time.Time {
	now := time.Now()
	if date.Year() == now.Year() && date.YearDay() == now.YearDay() {
		return now
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, time.Local)
}
