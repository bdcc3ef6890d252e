package scheduler

import (
	"math"
	"time"

	"github.com/rvachov/dayplan/internal/models"
)

// TimeOfDay labels a scheduling window.
type TimeOfDay string

const (
	Morning TimeOfDay = "morning"
	Evening TimeOfDay = "evening"
)

// ScoreWeights tunes how the three scoring components combine into a task's
// final score.
type ScoreWeights struct {
	Urgency   float64
	Alignment float64
	Deadline  float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		Urgency:   0.45,
		Alignment: 0.35,
		Deadline:  0.20,
	}
}

// Score computes a task's priority score for a time of day, in [0, 100].
//
// Urgency maps the 1-5 scale linearly to 20-100. Alignment rewards tasks
// whose normalized difficulty matches the user's complexity factor for the
// period; it can go negative on a maximal mismatch and is only clamped as
// part of the final score. Deadline proximity decays hyperbolically: a
// deadline right now scores 100, one 100 hours out scores 50, and the curve
// approaches but never reaches 0. Tasks without a deadline contribute 0.
//
// The result is pure and deterministic for a fixed now.
func (w ScoreWeights) Score(task *models.Task, prefs *models.UserPreferences, timeOfDay TimeOfDay, now time.Time) float64 {
	urgency := float64(task.Urgency) * 20

	factor := prefs.ComplexFactorFor(string(timeOfDay))
	normalized := float64(task.Difficulty) / 5
	alignment := 100 - math.Abs(normalized-factor/models.MaxComplexFactor)*100

	var deadline float64
	if task.Deadline != nil {
		hoursUntil := math.Max(0, task.Deadline.Sub(now).Hours())
		deadline = 100 * (1 / (1 + 0.01*hoursUntil))
	}

	raw := urgency*w.Urgency + alignment*w.Alignment + deadline*w.Deadline
	return clampScore(raw)
}

// ScoredTask pairs a task with its morning and evening scores for a single
// scheduling invocation. Scored pools are ephemeral: created fresh per
// invocation and discarded after assembly.
type ScoredTask struct {
	Task         *models.Task
	MorningScore float64
	EveningScore float64
}

// ScoreFor returns the score for the given time of day.
func (s ScoredTask) ScoreFor(timeOfDay TimeOfDay) float64 {
	if timeOfDay == Morning {
		return s.MorningScore
	}
	return s.EveningScore
}

// ScoreTasks scores every task for both periods.
func (w ScoreWeights) ScoreTasks(tasks []*models.Task, prefs *models.UserPreferences, now time.Time) []ScoredTask {
	scored := make([]ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		scored = append(scored, ScoredTask{
			Task:         task,
			MorningScore: w.Score(task, prefs, Morning, now),
			EveningScore: w.Score(task, prefs, Evening, now),
		})
	}
	return scored
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
