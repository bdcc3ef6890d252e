package scheduler

import (
	"math/rand"
	"sort"
)

// Ordering reorders a scored-task pool for a time of day. Implementations
// return a new slice and never change pool membership.
type Ordering func(pool []ScoredTask, timeOfDay TimeOfDay) []ScoredTask

// OrderByPriority is a stable sort descending by the time-of-day score. Ties
// keep their input order; no explicit tie-break beyond sort stability.
func OrderByPriority(pool []ScoredTask, timeOfDay TimeOfDay) []ScoredTask {
	out := make([]ScoredTask, len(pool))
	copy(out, pool)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScoreFor(timeOfDay) > out[j].ScoreFor(timeOfDay)
	})
	return out
}

// OrderBalanced partitions the pool by category, sorts each category
// descending by score, then round-robins across categories taking one task
// per category per round, skipping exhausted categories. With comparably
// populated categories no single category dominates a contiguous run.
// Categories iterate in first-appearance order within the pool.
func OrderBalanced(pool []ScoredTask, timeOfDay TimeOfDay) []ScoredTask {
	categories, byCategory := partitionByCategory(pool)
	for _, c := range categories {
		sortByScore(byCategory[c], timeOfDay)
	}

	out := make([]ScoredTask, 0, len(pool))
	for len(out) < len(pool) {
		for _, c := range categories {
			tasks := byCategory[c]
			if len(tasks) == 0 {
				continue
			}
			out = append(out, tasks[0])
			byCategory[c] = tasks[1:]
		}
	}
	return out
}

// OrderGrouped keeps each category's tasks contiguous. Categories are ordered
// descending by their single best task's score, tasks within a category
// descending by score.
func OrderGrouped(pool []ScoredTask, timeOfDay TimeOfDay) []ScoredTask {
	categories, byCategory := partitionByCategory(pool)
	for _, c := range categories {
		sortByScore(byCategory[c], timeOfDay)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return byCategory[categories[i]][0].ScoreFor(timeOfDay) >
			byCategory[categories[j]][0].ScoreFor(timeOfDay)
	})

	out := make([]ScoredTask, 0, len(pool))
	for _, c := range categories {
		out = append(out, byCategory[c]...)
	}
	return out
}

// OrderingFor maps a strategy name to its ordering.
func OrderingFor(strategy string) Ordering {
	switch strategy {
	case "balanced":
		return OrderBalanced
	case "grouped":
		return OrderGrouped
	default:
		return OrderByPriority
	}
}

// DefaultJitterVariance is the default magnitude of the symmetric score
// noise applied to the balanced and grouped pools.
const DefaultJitterVariance = 5

// ShuffleJitter returns a copy of the pool with order shuffled uniformly and
// both period scores perturbed by symmetric noise in [-variance, variance],
// clamped back into [0, 100]. This decorrelates the balanced and grouped
// options from the deterministic priority ordering, so repeated generation
// for the same inputs yields visibly different alternatives. A nil rng uses
// the process-wide source; no reproducibility across calls is promised.
func ShuffleJitter(pool []ScoredTask, variance float64, rng *rand.Rand) []ScoredTask {
	out := make([]ScoredTask, len(pool))
	copy(out, pool)

	shuffle := rand.Shuffle
	random := rand.Float64
	if rng != nil {
		shuffle = rng.Shuffle
		random = rng.Float64
	}

	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	for i := range out {
		out[i].MorningScore = clampScore(out[i].MorningScore + (random()*2-1)*variance)
		out[i].EveningScore = clampScore(out[i].EveningScore + (random()*2-1)*variance)
	}
	return out
}

func sortByScore(tasks []ScoredTask, timeOfDay TimeOfDay) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ScoreFor(timeOfDay) > tasks[j].ScoreFor(timeOfDay)
	})
}

// partitionByCategory splits the pool by task category, preserving
// first-appearance order of categories and input order within each category.
func partitionByCategory(pool []ScoredTask) ([]string, map[string][]ScoredTask) {
	var categories []string
	byCategory := make(map[string][]ScoredTask)
	for _, st := range pool {
		c := st.Task.Category()
		if _, seen := byCategory[c]; !seen {
			categories = append(categories, c)
		}
		byCategory[c] = append(byCategory[c], st)
	}
	return categories, byCategory
}
