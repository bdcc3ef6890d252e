// Package scheduler builds daily schedule candidates from a user's pending
// tasks and productivity preferences. It is pure computation: no I/O, no
// shared mutable state, each invocation independent of any other.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rvachov/dayplan/internal/models"
)

// Config tunes schedule generation.
type Config struct {
	Weights ScoreWeights
	// MinRemainingMinutes stops packing a block once less slack than this is
	// left after a placement.
	MinRemainingMinutes int
	// JitterVariance bounds the symmetric score noise applied to the
	// balanced and grouped pools.
	JitterVariance float64
	// Now supplies the clock; tests inject a frozen one.
	Now func() time.Time
	// Rand, when set, replaces the process-wide random source.
	Rand *rand.Rand
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Weights:             DefaultWeights(),
		MinRemainingMinutes: DefaultMinRemainingMinutes,
		JitterVariance:      DefaultJitterVariance,
		Now:                 time.Now,
	}
}

// Generator assembles the three candidate schedules for a user and date.
type Generator struct {
	cfg Config
}

// New creates a generator. Zero-value fields fall back to the DefaultConfig
// values so a partially filled Config stays usable.
func New(cfg Config) *Generator {
	if cfg.Weights == (ScoreWeights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.MinRemainingMinutes == 0 {
		cfg.MinRemainingMinutes = DefaultMinRemainingMinutes
	}
	if cfg.JitterVariance == 0 {
		cfg.JitterVariance = DefaultJitterVariance
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{cfg: cfg}
}

// Request carries one generation invocation's inputs. Tasks and Preferences
// are read-only snapshots owned by the caller.
type Request struct {
	UserID      uuid.UUID
	Date        string // YYYY-MM-DD label for the produced options
	Tasks       []*models.Task
	Preferences *models.UserPreferences
	StartTime   time.Time // zero means "now"
	FreeMinutes int       // 0 falls back to preference-derived blocks
}

// Generate produces exactly three schedule options in the fixed order
// [priority, balanced, grouped].
//
// The scored pool and time blocks are computed once. Each option is built
// independently from its own copy of the pool, so a task consumed by one
// strategy's schedule stays available to the others; within a single option
// the pool shrinks across blocks, so a task placed in the morning block is
// gone for the evening block. The priority option is deterministic for a
// fixed input snapshot and clock; the balanced and grouped pools are
// shuffled and jittered first and are intentionally not reproducible
// across calls.
//
// Degenerate inputs are not errors: an empty task list or zero available
// minutes yields three options with empty task lists and zero score, and a
// task too large for every block is silently absent from all options.
func (g *Generator) Generate(req Request) []*models.ScheduleOption {
	now := g.cfg.Now()
	start := req.StartTime
	if start.IsZero() {
		start = now
	}
	prefs := req.Preferences
	if prefs == nil {
		prefs = models.DefaultPreferences(req.UserID)
	}

	pool := g.cfg.Weights.ScoreTasks(req.Tasks, prefs, now)
	blocks := PlanBlocks(start, req.FreeMinutes, prefs)

	return []*models.ScheduleOption{
		g.buildOption(req, models.StrategyPriority, clonePool(pool), blocks, now),
		g.buildOption(req, models.StrategyBalanced, ShuffleJitter(pool, g.cfg.JitterVariance, g.cfg.Rand), blocks, now),
		g.buildOption(req, models.StrategyGrouped, ShuffleJitter(pool, g.cfg.JitterVariance, g.cfg.Rand), blocks, now),
	}
}

func (g *Generator) buildOption(req Request, strategy models.ScheduleStrategy, pool []ScoredTask, blocks []TimeBlock, now time.Time) *models.ScheduleOption {
	ordering := OrderingFor(string(strategy))

	tasks := make([]models.ScheduledTask, 0, len(pool))
	var total float64
	for _, block := range blocks {
		result := PackBlock(block, ordering(pool, block.TimeOfDay), g.cfg.MinRemainingMinutes)
		tasks = append(tasks, result.Placed...)
		total += result.Score
		pool = result.Remaining
	}

	return &models.ScheduleOption{
		ID:         uuid.New(),
		UserID:     req.UserID,
		Date:       req.Date,
		Strategy:   strategy,
		Tasks:      tasks,
		TotalScore: total,
		Selected:   false,
		CreatedAt:  now,
	}
}

func clonePool(pool []ScoredTask) []ScoredTask {
	out := make([]ScoredTask, len(pool))
	copy(out, pool)
	return out
}
