package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
	}{
		{name: "ok response", method: "GET", path: "/schedules", handlerStatus: http.StatusOK},
		{name: "created response", method: "POST", path: "/tasks", handlerStatus: http.StatusCreated},
		{name: "error response", method: "GET", path: "/tasks/missing", handlerStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.InfoLevel)
			logger := zap.New(core)

			handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.handlerStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.handlerStatus)
			}

			entries := logs.FilterMessage("http_request").All()
			if len(entries) != 1 {
				t.Fatalf("got %d http_request entries, want 1", len(entries))
			}
			fields := entries[0].ContextMap()
			if fields["method"] != tt.method {
				t.Errorf("logged method = %v, want %s", fields["method"], tt.method)
			}
			if fields["path"] != tt.path {
				t.Errorf("logged path = %v, want %s", fields["path"], tt.path)
			}
			if fields["status_code"] != int64(tt.handlerStatus) {
				t.Errorf("logged status_code = %v, want %d", fields["status_code"], tt.handlerStatus)
			}
		})
	}
}

func TestLogging_DefaultsToOKWhenHandlerNeverWritesHeader(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d http_request entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["status_code"]; got != int64(http.StatusOK) {
		t.Errorf("logged status_code = %v, want 200", got)
	}
}
