package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rvachov/dayplan/internal/database"
	"github.com/rvachov/dayplan/internal/middleware"
	"github.com/rvachov/dayplan/internal/models"
	"github.com/rvachov/dayplan/internal/queue"
	"github.com/rvachov/dayplan/internal/scheduler"
	"github.com/rvachov/dayplan/internal/validation"
)

// ScheduleHandler handles schedule generation and selection requests
type ScheduleHandler struct {
	generator    *scheduler.Generator
	taskRepo     database.TaskRepositoryInterface
	prefsRepo    database.PreferencesRepositoryInterface
	scheduleRepo database.ScheduleRepositoryInterface
	jobQueue     queue.JobQueue // Optional; enables async generation
}

// NewScheduleHandler creates a new schedule handler. jobQueue may be nil, in
// which case async generation requests fall back to inline generation.
func NewScheduleHandler(
	generator *scheduler.Generator,
	taskRepo database.TaskRepositoryInterface,
	prefsRepo database.PreferencesRepositoryInterface,
	scheduleRepo database.ScheduleRepositoryInterface,
	jobQueue queue.JobQueue,
) *ScheduleHandler {
	return &ScheduleHandler{
		generator:    generator,
		taskRepo:     taskRepo,
		prefsRepo:    prefsRepo,
		scheduleRepo: scheduleRepo,
		jobQueue:     jobQueue,
	}
}

// RegisterRoutes registers schedule routes on the given router
// The router should already have the /schedules prefix
func (h *ScheduleHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListSchedules).Methods("GET")
	r.HandleFunc("/generate", h.GenerateSchedules).Methods("POST")
	r.HandleFunc("/{id}", h.GetSchedule).Methods("GET")
	r.HandleFunc("/{id}/select", h.SelectSchedule).Methods("POST")
	r.HandleFunc("/{id}/tasks/{taskId}/complete", h.CompleteScheduledTask).Methods("POST")
}

// GenerateSchedulesRequest represents a schedule generation request
type GenerateSchedulesRequest struct {
	Date        string     `json:"date" validate:"required,schedule_date"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	FreeMinutes int        `json:"free_minutes,omitempty" validate:"min=0,max=1440"`
	Async       bool       `json:"async,omitempty"`
}

// CompleteScheduledTaskRequest toggles a placed task's completion flag
type CompleteScheduledTaskRequest struct {
	Completed *bool `json:"completed,omitempty"` // Defaults to true
}

// ListSchedulesResponse represents the response for listing schedule options
type ListSchedulesResponse struct {
	Schedules []*models.ScheduleOption `json:"schedules"`
	Date      string                   `json:"date"`
}

// GenerateSchedules builds three schedule options for the given date from the
// user's pending tasks and stores them, replacing any unselected options for
// that date. With async set and a queue configured, the work is handed to a
// worker instead and 202 is returned.
func (h *ScheduleHandler) GenerateSchedules(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req GenerateSchedulesRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	if req.Async && h.jobQueue != nil {
		job := queue.NewJob(queue.JobTypeGenerateSchedule, user.ID, req.Date)
		if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to enqueue generation job")
			return
		}
		respondJSON(w, http.StatusAccepted, map[string]any{"job_id": job.ID, "date": req.Date})
		return
	}

	ctx := r.Context()
	tasks, err := h.taskRepo.GetPendingByUserID(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	prefs, err := h.prefsRepo.GetOrDefault(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve preferences")
		return
	}

	genReq := scheduler.Request{
		UserID:      user.ID,
		Date:        req.Date,
		Tasks:       tasks,
		Preferences: prefs,
		FreeMinutes: req.FreeMinutes,
	}
	if req.StartTime != nil {
		genReq.StartTime = *req.StartTime
	}
	options := h.generator.Generate(genReq)

	if err := h.scheduleRepo.ReplaceUnselected(ctx, user.ID, req.Date, options); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store schedule options")
		return
	}

	respondJSON(w, http.StatusOK, ListSchedulesResponse{Schedules: options, Date: req.Date})
}

// ListSchedules lists the stored options for a date, selected option first.
// The date query parameter defaults to today.
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(models.ScheduleDateFormat)
	} else if err := validation.ValidateScheduleDate(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	schedules, err := h.scheduleRepo.GetByUserAndDate(r.Context(), user.ID, date)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve schedules")
		return
	}
	if schedules == nil {
		schedules = []*models.ScheduleOption{}
	}

	respondJSON(w, http.StatusOK, ListSchedulesResponse{Schedules: schedules, Date: date})
}

// GetSchedule retrieves a single schedule option
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	option, ok := h.ownedSchedule(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, option)
}

// SelectSchedule marks an option as the user's chosen schedule for its date,
// deselecting any sibling
func (h *ScheduleHandler) SelectSchedule(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid schedule ID")
		return
	}

	option, err := h.scheduleRepo.Select(r.Context(), user.ID, id)
	if errors.Is(err, database.ErrScheduleNotFound) {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Schedule not found")
		return
	}
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to select schedule")
		return
	}

	respondJSON(w, http.StatusOK, option)
}

// CompleteScheduledTask toggles completion of one task inside a schedule
// option and mirrors the state onto the task itself
func (h *ScheduleHandler) CompleteScheduledTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid schedule ID")
		return
	}
	taskID, err := uuid.Parse(vars["taskId"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return
	}

	completed := true
	if r.Body != nil && r.ContentLength != 0 {
		var req CompleteScheduledTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
			return
		}
		if req.Completed != nil {
			completed = *req.Completed
		}
	}

	ctx := r.Context()
	if err := h.scheduleRepo.SetTaskCompleted(ctx, user.ID, scheduleID, taskID, completed); err != nil {
		if errors.Is(err, database.ErrScheduleNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Schedule not found")
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Task not in schedule")
		return
	}

	if err := h.taskRepo.SetCompleted(ctx, taskID, completed); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	option, err := h.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve schedule")
		return
	}

	respondJSON(w, http.StatusOK, option)
}

// ownedSchedule loads the schedule option named by the route and verifies
// ownership. On failure it writes the error response and returns ok=false.
func (h *ScheduleHandler) ownedSchedule(w http.ResponseWriter, r *http.Request) (*models.ScheduleOption, bool) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return nil, false
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid schedule ID")
		return nil, false
	}

	option, err := h.scheduleRepo.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Schedule not found")
		return nil, false
	}

	if option.UserID != user.ID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Schedule does not belong to user")
		return nil, false
	}

	return option, true
}
