package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/rvachov/dayplan/internal/database"
	"github.com/rvachov/dayplan/internal/middleware"
	"github.com/rvachov/dayplan/internal/models"
	"github.com/rvachov/dayplan/internal/validation"
)

// PreferencesHandler handles productivity preferences requests
type PreferencesHandler struct {
	prefsRepo database.PreferencesRepositoryInterface
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(prefsRepo database.PreferencesRepositoryInterface) *PreferencesHandler {
	return &PreferencesHandler{prefsRepo: prefsRepo}
}

// RegisterRoutes registers preferences routes on the given router
// The router should already have the /preferences prefix
func (h *PreferencesHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetPreferences).Methods("GET")
	r.HandleFunc("", h.PutPreferences).Methods("PUT")
}

// PutPreferencesRequest represents a replace preferences request
type PutPreferencesRequest struct {
	MorningComplexFactor float64 `json:"morning_complex_factor" validate:"required,min=0.5,max=1.5"`
	EveningComplexFactor float64 `json:"evening_complex_factor" validate:"required,min=0.5,max=1.5"`
	MorningAvailableTime int     `json:"morning_available_time" validate:"min=0,max=720"`
	EveningAvailableTime int     `json:"evening_available_time" validate:"min=0,max=720"`
}

// GetPreferences returns the user's preferences, or the neutral defaults if
// they have never saved any
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	prefs, err := h.prefsRepo.GetOrDefault(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

// PutPreferences replaces the user's preferences
func (h *PreferencesHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req PutPreferencesRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	// Validate request
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

	prefs := &models.UserPreferences{
		UserID:               user.ID,
		MorningComplexFactor: req.MorningComplexFactor,
		EveningComplexFactor: req.EveningComplexFactor,
		MorningAvailableTime: req.MorningAvailableTime,
		EveningAvailableTime: req.EveningAvailableTime,
	}

	if err := h.prefsRepo.Upsert(r.Context(), prefs); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}
