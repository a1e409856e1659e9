package system_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"cropsight/internal/api/handlers/http/system"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSystemHealth_Initialized(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(newTestLogger(), true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.SystemHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "healthy" || body["earth_engine"] != "initialized" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSystemHealth_Uninitialized(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(newTestLogger(), false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.SystemHealth(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected %d got %d", http.StatusServiceUnavailable, rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "unhealthy" || body["earth_engine"] != "uninitialized" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(newTestLogger(), true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.Root(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["version"] != "1.0.0" || body["message"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
}
