package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rvachov/dayplan/internal/models"
)

func frozenConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return frozenNow }
	return cfg
}

func strategyOf(options []*models.ScheduleOption, s models.ScheduleStrategy) *models.ScheduleOption {
	for _, o := range options {
		if o.Strategy == s {
			return o
		}
	}
	return nil
}

func TestNew_ZeroConfigGetsDefaults(t *testing.T) {
	t.Parallel()

	// A zero Config must behave like DefaultConfig: in particular the
	// packing cutoff applies, so a 5-minute task is not squeezed into the
	// 10 minutes left after the 110-minute task lands.
	g := New(Config{})
	options := g.Generate(Request{
		UserID: uuid.New(),
		Date:   "2025-03-10",
		Tasks: []*models.Task{
			{ID: uuid.New(), Urgency: 5, Difficulty: 3, DurationMinutes: 110},
			{ID: uuid.New(), Urgency: 1, Difficulty: 3, DurationMinutes: 5},
		},
		Preferences: neutralPrefs(),
		FreeMinutes: 120,
	})

	priority := strategyOf(options, models.StrategyPriority)
	if priority == nil {
		t.Fatal("missing priority option")
	}
	if len(priority.Tasks) != 1 {
		t.Errorf("priority option placed %d tasks, want 1 (cutoff should stop the block)", len(priority.Tasks))
	}
}

func TestGenerate_ThreeOptionsInFixedOrder(t *testing.T) {
	t.Parallel()

	g := New(frozenConfig())
	options := g.Generate(Request{
		UserID:      uuid.New(),
		Date:        "2025-03-10",
		Tasks:       []*models.Task{{ID: uuid.New(), Urgency: 3, Difficulty: 3, DurationMinutes: 30}},
		Preferences: neutralPrefs(),
		StartTime:   frozenNow,
		FreeMinutes: 120,
	})

	if len(options) != 3 {
		t.Fatalf("got %d options, want 3", len(options))
	}
	want := []models.ScheduleStrategy{models.StrategyPriority, models.StrategyBalanced, models.StrategyGrouped}
	ids := map[uuid.UUID]bool{}
	for i, o := range options {
		if o.Strategy != want[i] {
			t.Errorf("option %d strategy = %s, want %s", i, o.Strategy, want[i])
		}
		if o.Selected {
			t.Errorf("option %d created as selected", i)
		}
		if o.Date != "2025-03-10" {
			t.Errorf("option %d date = %s", i, o.Date)
		}
		if !o.CreatedAt.Equal(frozenNow) {
			t.Errorf("option %d createdAt = %v, want frozen clock", i, o.CreatedAt)
		}
		if ids[o.ID] {
			t.Errorf("option ids are not unique")
		}
		ids[o.ID] = true
	}
}

func TestGenerate_EmptyTaskList(t *testing.T) {
	t.Parallel()

	g := New(frozenConfig())
	options := g.Generate(Request{
		UserID:      uuid.New(),
		Date:        "2025-03-10",
		Preferences: neutralPrefs(),
		StartTime:   frozenNow,
		FreeMinutes: 120,
	})

	if len(options) != 3 {
		t.Fatalf("got %d options, want 3", len(options))
	}
	for _, o := range options {
		if len(o.Tasks) != 0 {
			t.Errorf("%s option has %d tasks, want 0", o.Strategy, len(o.Tasks))
		}
		if o.TotalScore != 0 {
			t.Errorf("%s option score = %v, want 0", o.Strategy, o.TotalScore)
		}
	}
}

// Three tasks with urgencies 5, 3, 1 and otherwise identical attributes: the
// priority schedule places them in urgency-descending order.
func TestGenerate_PriorityOrdersByUrgency(t *testing.T) {
	t.Parallel()

	deadline := frozenNow.Add(24 * time.Hour)
	highest := &models.Task{ID: uuid.New(), Title: "highest", Urgency: 5, Difficulty: 3, DurationMinutes: 30, Deadline: &deadline}
	mid := &models.Task{ID: uuid.New(), Title: "mid", Urgency: 3, Difficulty: 3, DurationMinutes: 30, Deadline: &deadline}
	lowest := &models.Task{ID: uuid.New(), Title: "lowest", Urgency: 1, Difficulty: 3, DurationMinutes: 30, Deadline: &deadline}

	g := New(frozenConfig())
	options := g.Generate(Request{
		UserID:      uuid.New(),
		Date:        "2025-03-10",
		Tasks:       []*models.Task{lowest, highest, mid},
		Preferences: neutralPrefs(),
		StartTime:   frozenNow,
		FreeMinutes: 120,
	})

	priority := strategyOf(options, models.StrategyPriority)
	if len(priority.Tasks) != 3 {
		t.Fatalf("priority option placed %d tasks, want 3", len(priority.Tasks))
	}
	wantOrder := []uuid.UUID{highest.ID, mid.ID, lowest.ID}
	for i, st := range priority.Tasks {
		if st.TaskID != wantOrder[i] {
			t.Fatalf("priority option slot %d = wrong task", i)
		}
	}
}

// With 60 available minutes and two 45-minute tasks only the higher-scoring
// one is placed; the other is entirely absent from the option.
func TestGenerate_OnlyOneOfTwoLargeTasksFits(t *testing.T) {
	t.Parallel()

	urgent := &models.Task{ID: uuid.New(), Title: "urgent", Urgency: 5, Difficulty: 3, DurationMinutes: 45}
	casual := &models.Task{ID: uuid.New(), Title: "casual", Urgency: 1, Difficulty: 3, DurationMinutes: 45}

	g := New(frozenConfig())
	options := g.Generate(Request{
		UserID:      uuid.New(),
		Date:        "2025-03-10",
		Tasks:       []*models.Task{casual, urgent},
		Preferences: neutralPrefs(),
		StartTime:   frozenNow,
		FreeMinutes: 60,
	})

	priority := strategyOf(options, models.StrategyPriority)
	if len(priority.Tasks) != 1 {
		t.Fatalf("priority option placed %d tasks, want 1", len(priority.Tasks))
	}
	if priority.Tasks[0].TaskID != urgent.ID {
		t.Errorf("priority option placed the lower-scoring task")
	}

	// Every option can hold exactly one of the two 45-minute tasks.
	for _, o := range options {
		if len(o.Tasks) != 1 {
			t.Errorf("%s option placed %d tasks, want 1", o.Strategy, len(o.Tasks))
		}
	}
}

func TestGenerate_PriorityDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	deadline := frozenNow.Add(6 * time.Hour)
	tasks := []*models.Task{
		{ID: uuid.New(), Title: "a", Urgency: 4, Difficulty: 2, DurationMinutes: 25, Tags: []string{"work"}},
		{ID: uuid.New(), Title: "b", Urgency: 2, Difficulty: 5, DurationMinutes: 40, Tags: []string{"home"}, Deadline: &deadline},
		{ID: uuid.New(), Title: "c", Urgency: 5, Difficulty: 1, DurationMinutes: 15, Tags: []string{"errands"}},
	}
	req := Request{
		UserID:      uuid.New(),
		Date:        "2025-03-10",
		Tasks:       tasks,
		Preferences: neutralPrefs(),
		StartTime:   frozenNow,
		FreeMinutes: 180,
	}

	g := New(frozenConfig())
	first := strategyOf(g.Generate(req), models.StrategyPriority)
	for run := 0; run < 10; run++ {
		again := strategyOf(g.Generate(req), models.StrategyPriority)
		if len(again.Tasks) != len(first.Tasks) {
			t.Fatalf("priority option size changed between runs")
		}
		for i := range first.Tasks {
			if again.Tasks[i].TaskID != first.Tasks[i].TaskID {
				t.Fatalf("priority option ordering changed between runs")
			}
			if !again.Tasks[i].StartTime.Equal(first.Tasks[i].StartTime) {
				t.Fatalf("priority option timestamps changed between runs")
			}
		}
	}
}

// Balanced and grouped options need not repeat across runs, but every run
// must satisfy the structural invariants: no duplicate task ids within an
// option, no over-packed block, chronological placement.
func TestGenerate_RandomizedStrategiesKeepInvariants(t *testing.T) {
	t.Parallel()

	var tasks []*models.Task
	for _, category := range []string{"work", "home", "errands", ""} {
		for i := 0; i < 3; i++ {
			var tags []string
			if category != "" {
				tags = []string{category}
			}
			tasks = append(tasks, &models.Task{
				ID:              uuid.New(),
				Urgency:         1 + (i*2)%5,
				Difficulty:      1 + i,
				DurationMinutes: 20 + i*15,
				Tags:            tags,
			})
		}
	}
	durations := map[uuid.UUID]int{}
	for _, task := range tasks {
		durations[task.ID] = task.DurationMinutes
	}

	const budget = 150
	g := New(frozenConfig())

	for run := 0; run < 25; run++ {
		options := g.Generate(Request{
			UserID:      uuid.New(),
			Date:        "2025-03-10",
			Tasks:       tasks,
			Preferences: neutralPrefs(),
			StartTime:   frozenNow,
			FreeMinutes: budget,
		})

		for _, o := range options {
			seen := map[uuid.UUID]bool{}
			total := 0
			last := time.Time{}
			for _, st := range o.Tasks {
				if seen[st.TaskID] {
					t.Fatalf("run %d: task placed twice in %s option", run, o.Strategy)
				}
				seen[st.TaskID] = true
				total += durations[st.TaskID]
				if st.StartTime.Before(last) {
					t.Fatalf("run %d: %s option is not chronological", run, o.Strategy)
				}
				last = st.EndTime
			}
			if total > budget {
				t.Fatalf("run %d: %s option packed %d minutes into %d", run, o.Strategy, total, budget)
			}
		}
	}
}

// In preference-fallback mode the same shrinking pool feeds both blocks: a
// task placed in the morning block must not reappear in the evening block of
// the same option.
func TestGenerate_PoolSharedAcrossBlocks(t *testing.T) {
	t.Parallel()

	var tasks []*models.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, &models.Task{
			ID:              uuid.New(),
			Urgency:         1 + i%5,
			Difficulty:      1 + i%5,
			DurationMinutes: 30,
			Tags:            []string{[]string{"work", "home"}[i%2]},
		})
	}

	prefs := neutralPrefs()
	prefs.MorningAvailableTime = 90
	prefs.EveningAvailableTime = 90

	g := New(frozenConfig())
	for run := 0; run < 10; run++ {
		options := g.Generate(Request{
			UserID:      uuid.New(),
			Date:        "2025-03-10",
			Tasks:       tasks,
			Preferences: prefs,
			StartTime:   frozenNow,
			// No budget: fall back to the two preference blocks.
		})

		for _, o := range options {
			seen := map[uuid.UUID]bool{}
			for _, st := range o.Tasks {
				if seen[st.TaskID] {
					t.Fatalf("run %d: task appears in both blocks of %s option", run, o.Strategy)
				}
				seen[st.TaskID] = true
			}
		}
	}
}

func TestGenerate_OversizedTaskSilentlyExcluded(t *testing.T) {
	t.Parallel()

	marathon := &models.Task{ID: uuid.New(), Title: "marathon", Urgency: 5, Difficulty: 5, DurationMinutes: 600}
	quick := &models.Task{ID: uuid.New(), Title: "quick", Urgency: 2, Difficulty: 2, DurationMinutes: 20}

	g := New(frozenConfig())
	options := g.Generate(Request{
		UserID:      uuid.New(),
		Date:        "2025-03-10",
		Tasks:       []*models.Task{marathon, quick},
		Preferences: neutralPrefs(),
		StartTime:   frozenNow,
		FreeMinutes: 60,
	})

	for _, o := range options {
		for _, st := range o.Tasks {
			if st.TaskID == marathon.ID {
				t.Errorf("%s option placed a task larger than every block", o.Strategy)
			}
		}
	}
}

func TestGenerate_DefaultsWhenPreferencesMissing(t *testing.T) {
	t.Parallel()

	g := New(frozenConfig())
	options := g.Generate(Request{
		UserID:    uuid.New(),
		Date:      "2025-03-10",
		Tasks:     []*models.Task{{ID: uuid.New(), Urgency: 3, Difficulty: 3, DurationMinutes: 30}},
		StartTime: frozenNow,
		// No preferences, no budget: default preferences supply the blocks.
	})

	placed := 0
	for _, o := range options {
		placed += len(o.Tasks)
	}
	if placed == 0 {
		t.Errorf("default preferences produced no schedulable blocks")
	}
}
