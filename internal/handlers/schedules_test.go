package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rvachov/dayplan/internal/database"
	"github.com/rvachov/dayplan/internal/models"
	"github.com/rvachov/dayplan/internal/queue"
	"github.com/rvachov/dayplan/internal/scheduler"
)

type mockScheduleRepo struct {
	database.ScheduleRepositoryInterface

	replaceUnselectedFn func(ctx context.Context, userID uuid.UUID, date string, options []*models.ScheduleOption) error
	getByUserAndDateFn  func(ctx context.Context, userID uuid.UUID, date string) ([]*models.ScheduleOption, error)
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*models.ScheduleOption, error)
	selectFn            func(ctx context.Context, userID, optionID uuid.UUID) (*models.ScheduleOption, error)
	setTaskCompletedFn  func(ctx context.Context, userID, optionID, taskID uuid.UUID, completed bool) error
}

func (m *mockScheduleRepo) ReplaceUnselected(ctx context.Context, userID uuid.UUID, date string, options []*models.ScheduleOption) error {
	return m.replaceUnselectedFn(ctx, userID, date, options)
}

func (m *mockScheduleRepo) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]*models.ScheduleOption, error) {
	return m.getByUserAndDateFn(ctx, userID, date)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleOption, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockScheduleRepo) Select(ctx context.Context, userID, optionID uuid.UUID) (*models.ScheduleOption, error) {
	return m.selectFn(ctx, userID, optionID)
}

func (m *mockScheduleRepo) SetTaskCompleted(ctx context.Context, userID, optionID, taskID uuid.UUID, completed bool) error {
	return m.setTaskCompletedFn(ctx, userID, optionID, taskID, completed)
}

type mockScheduleTaskRepo struct {
	database.TaskRepositoryInterface

	getPendingByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	setCompletedFn       func(ctx context.Context, id uuid.UUID, completed bool) error
}

func (m *mockScheduleTaskRepo) GetPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	return m.getPendingByUserIDFn(ctx, userID)
}

func (m *mockScheduleTaskRepo) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	return m.setCompletedFn(ctx, id, completed)
}

type mockEnqueuer struct {
	queue.JobQueue

	enqueueFn func(ctx context.Context, job *queue.Job) error
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, job *queue.Job) error {
	return m.enqueueFn(ctx, job)
}

func scheduleRouter(h *ScheduleHandler) *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r.PathPrefix("/schedules").Subrouter())
	return r
}

func defaultPrefsRepo(user *models.User) *mockPrefsRepo {
	return &mockPrefsRepo{
		getOrDefaultFn: func(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
			return models.DefaultPreferences(userID), nil
		},
	}
}

func TestGenerateSchedules_Inline(t *testing.T) {
	t.Parallel()

	user := testUser()
	tasks := []*models.Task{
		{ID: uuid.New(), UserID: user.ID, Title: "a", Urgency: 5, Difficulty: 3, DurationMinutes: 30, Status: models.TaskStatusPending},
		{ID: uuid.New(), UserID: user.ID, Title: "b", Urgency: 2, Difficulty: 2, DurationMinutes: 45, Status: models.TaskStatusPending},
	}

	taskRepo := &mockScheduleTaskRepo{
		getPendingByUserIDFn: func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
			return tasks, nil
		},
	}

	var storedDate string
	var stored []*models.ScheduleOption
	scheduleRepo := &mockScheduleRepo{
		replaceUnselectedFn: func(ctx context.Context, userID uuid.UUID, date string, options []*models.ScheduleOption) error {
			storedDate = date
			stored = options
			return nil
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), taskRepo, defaultPrefsRepo(user), scheduleRepo, nil)

	req := authedRequest(t, user, "POST", "/schedules/generate", map[string]any{"date": "2025-06-02"})
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if storedDate != "2025-06-02" {
		t.Errorf("stored date = %q, want 2025-06-02", storedDate)
	}
	if len(stored) != 3 {
		t.Fatalf("stored %d options, want 3", len(stored))
	}
	wantStrategies := []models.ScheduleStrategy{
		models.StrategyPriority,
		models.StrategyBalanced,
		models.StrategyGrouped,
	}
	for i, opt := range stored {
		if opt.Strategy != wantStrategies[i] {
			t.Errorf("option %d strategy = %s, want %s", i, opt.Strategy, wantStrategies[i])
		}
		if opt.UserID != user.ID {
			t.Errorf("option %d user = %s, want %s", i, opt.UserID, user.ID)
		}
	}
}

func TestGenerateSchedules_InvalidDate(t *testing.T) {
	t.Parallel()

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), &mockScheduleTaskRepo{}, &mockPrefsRepo{}, &mockScheduleRepo{}, nil)

	for _, date := range []string{"", "June 2", "2025-13-40", "02-06-2025"} {
		req := authedRequest(t, testUser(), "POST", "/schedules/generate", map[string]any{"date": date})
		w := httptest.NewRecorder()
		scheduleRouter(h).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("date %q: status = %d, want 400", date, w.Code)
		}
	}
}

func TestGenerateSchedules_Async(t *testing.T) {
	t.Parallel()

	user := testUser()
	var enqueued *queue.Job
	jobQueue := &mockEnqueuer{
		enqueueFn: func(ctx context.Context, job *queue.Job) error {
			enqueued = job
			return nil
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), &mockScheduleTaskRepo{}, &mockPrefsRepo{}, &mockScheduleRepo{}, jobQueue)

	req := authedRequest(t, user, "POST", "/schedules/generate", map[string]any{"date": "2025-06-02", "async": true})
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body: %s", w.Code, w.Body.String())
	}
	if enqueued == nil {
		t.Fatal("expected a job to be enqueued")
	}
	if enqueued.Type != queue.JobTypeGenerateSchedule {
		t.Errorf("job type = %s, want %s", enqueued.Type, queue.JobTypeGenerateSchedule)
	}
	if enqueued.UserID != user.ID {
		t.Errorf("job user = %s, want %s", enqueued.UserID, user.ID)
	}
	if enqueued.Date != "2025-06-02" {
		t.Errorf("job date = %q, want 2025-06-02", enqueued.Date)
	}
}

func TestGenerateSchedules_AsyncWithoutQueueFallsBackInline(t *testing.T) {
	t.Parallel()

	user := testUser()
	taskRepo := &mockScheduleTaskRepo{
		getPendingByUserIDFn: func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
			return nil, nil
		},
	}
	scheduleRepo := &mockScheduleRepo{
		replaceUnselectedFn: func(ctx context.Context, userID uuid.UUID, date string, options []*models.ScheduleOption) error {
			return nil
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), taskRepo, defaultPrefsRepo(user), scheduleRepo, nil)

	req := authedRequest(t, user, "POST", "/schedules/generate", map[string]any{"date": "2025-06-02", "async": true})
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestListSchedules_SelectedFirst(t *testing.T) {
	t.Parallel()

	user := testUser()
	options := []*models.ScheduleOption{
		{ID: uuid.New(), UserID: user.ID, Date: "2025-06-02", Strategy: models.StrategyBalanced, Selected: true},
		{ID: uuid.New(), UserID: user.ID, Date: "2025-06-02", Strategy: models.StrategyPriority},
	}

	var gotDate string
	scheduleRepo := &mockScheduleRepo{
		getByUserAndDateFn: func(ctx context.Context, userID uuid.UUID, date string) ([]*models.ScheduleOption, error) {
			gotDate = date
			return options, nil
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), &mockScheduleTaskRepo{}, &mockPrefsRepo{}, scheduleRepo, nil)

	req := authedRequest(t, user, "GET", "/schedules?date=2025-06-02", nil)
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if gotDate != "2025-06-02" {
		t.Errorf("queried date = %q, want 2025-06-02", gotDate)
	}

	var resp struct {
		Data ListSchedulesResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(resp.Data.Schedules))
	}
	if !resp.Data.Schedules[0].Selected {
		t.Error("expected selected option first")
	}
}

func TestSelectSchedule_NotFound(t *testing.T) {
	t.Parallel()

	scheduleRepo := &mockScheduleRepo{
		selectFn: func(ctx context.Context, userID, optionID uuid.UUID) (*models.ScheduleOption, error) {
			return nil, database.ErrScheduleNotFound
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), &mockScheduleTaskRepo{}, &mockPrefsRepo{}, scheduleRepo, nil)

	req := authedRequest(t, testUser(), "POST", fmt.Sprintf("/schedules/%s/select", uuid.New()), nil)
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSelectSchedule(t *testing.T) {
	t.Parallel()

	user := testUser()
	optionID := uuid.New()
	scheduleRepo := &mockScheduleRepo{
		selectFn: func(ctx context.Context, userID, id uuid.UUID) (*models.ScheduleOption, error) {
			if userID != user.ID || id != optionID {
				t.Errorf("Select(%s, %s), want (%s, %s)", userID, id, user.ID, optionID)
			}
			return &models.ScheduleOption{ID: id, UserID: userID, Selected: true}, nil
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), &mockScheduleTaskRepo{}, &mockPrefsRepo{}, scheduleRepo, nil)

	req := authedRequest(t, user, "POST", fmt.Sprintf("/schedules/%s/select", optionID), nil)
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestCompleteScheduledTask_MirrorsOntoTask(t *testing.T) {
	t.Parallel()

	user := testUser()
	optionID := uuid.New()
	taskID := uuid.New()

	var scheduleUpdated, taskUpdated bool
	scheduleRepo := &mockScheduleRepo{
		setTaskCompletedFn: func(ctx context.Context, userID, oid, tid uuid.UUID, completed bool) error {
			if oid != optionID || tid != taskID || !completed {
				t.Errorf("SetTaskCompleted(%s, %s, %v)", oid, tid, completed)
			}
			scheduleUpdated = true
			return nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.ScheduleOption, error) {
			return &models.ScheduleOption{ID: id, UserID: user.ID}, nil
		},
	}
	taskRepo := &mockScheduleTaskRepo{
		setCompletedFn: func(ctx context.Context, id uuid.UUID, completed bool) error {
			if id != taskID || !completed {
				t.Errorf("SetCompleted(%s, %v)", id, completed)
			}
			taskUpdated = true
			return nil
		},
	}

	h := NewScheduleHandler(scheduler.New(scheduler.DefaultConfig()), taskRepo, &mockPrefsRepo{}, scheduleRepo, nil)

	req := authedRequest(t, user, "POST", fmt.Sprintf("/schedules/%s/tasks/%s/complete", optionID, taskID), nil)
	w := httptest.NewRecorder()
	scheduleRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !scheduleUpdated || !taskUpdated {
		t.Error("expected both schedule and task to be updated")
	}
}
