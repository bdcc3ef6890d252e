package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rvachov/dayplan/internal/database"
	"github.com/rvachov/dayplan/internal/models"
)

type mockPrefsRepo struct {
	database.PreferencesRepositoryInterface

	getOrDefaultFn func(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	upsertFn       func(ctx context.Context, prefs *models.UserPreferences) error
}

func (m *mockPrefsRepo) GetOrDefault(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	return m.getOrDefaultFn(ctx, userID)
}

func (m *mockPrefsRepo) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	return m.upsertFn(ctx, prefs)
}

func prefsRouter(repo database.PreferencesRepositoryInterface) *mux.Router {
	r := mux.NewRouter()
	NewPreferencesHandler(repo).RegisterRoutes(r.PathPrefix("/preferences").Subrouter())
	return r
}

func TestGetPreferences_DefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	user := testUser()
	repo := &mockPrefsRepo{
		getOrDefaultFn: func(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
			return models.DefaultPreferences(userID), nil
		},
	}

	req := authedRequest(t, user, "GET", "/preferences", nil)
	w := httptest.NewRecorder()
	prefsRouter(repo).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestPutPreferences(t *testing.T) {
	t.Parallel()

	user := testUser()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "valid preferences",
			body: map[string]any{
				"morning_complex_factor": 1.3,
				"evening_complex_factor": 0.8,
				"morning_available_time": 90,
				"evening_available_time": 180,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "zero available time allowed",
			body: map[string]any{
				"morning_complex_factor": 1.0,
				"evening_complex_factor": 1.0,
				"morning_available_time": 0,
				"evening_available_time": 120,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "factor below minimum",
			body: map[string]any{
				"morning_complex_factor": 0.2,
				"evening_complex_factor": 1.0,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "factor above maximum",
			body: map[string]any{
				"morning_complex_factor": 1.0,
				"evening_complex_factor": 2.0,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "available time above maximum",
			body: map[string]any{
				"morning_complex_factor": 1.0,
				"evening_complex_factor": 1.0,
				"morning_available_time": 800,
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var saved *models.UserPreferences
			repo := &mockPrefsRepo{
				upsertFn: func(ctx context.Context, prefs *models.UserPreferences) error {
					saved = prefs
					return nil
				},
			}

			req := authedRequest(t, user, "PUT", "/preferences", tt.body)
			w := httptest.NewRecorder()
			prefsRouter(repo).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if saved == nil {
					t.Fatal("expected Upsert to be called")
				}
				if saved.UserID != user.ID {
					t.Errorf("saved UserID = %s, want %s", saved.UserID, user.ID)
				}
			}
		})
	}
}

func TestPutPreferences_Unauthorized(t *testing.T) {
	t.Parallel()

	repo := &mockPrefsRepo{}
	req := authedRequest(t, nil, "PUT", "/preferences", map[string]any{
		"morning_complex_factor": 1.0,
		"evening_complex_factor": 1.0,
	})
	w := httptest.NewRecorder()
	prefsRouter(repo).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
