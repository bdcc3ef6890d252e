package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandler_RecoversPanic(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	handler := ErrorHandler(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error != "Internal Server Error" {
		t.Errorf("error = %q, want Internal Server Error", resp.Error)
	}
	if resp.Path != "/tasks" {
		t.Errorf("path = %q, want /tasks", resp.Path)
	}

	// Panic details stay server-side
	entries := logs.FilterMessage("panic_recovered").All()
	if len(entries) != 1 {
		t.Fatalf("got %d panic_recovered entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/tasks" {
		t.Errorf("logged path = %v, want /tasks", fields["path"])
	}
	if fields["error"] != "boom" {
		t.Errorf("logged error = %v, want boom", fields["error"])
	}
}

func TestErrorHandler_PassesThroughNormalRequests(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	handler := ErrorHandler(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/tasks", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no error logs, got %d", logs.Len())
	}
}
