package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nitingarg01/Major-project-sub001/internal/config"
)

func decodeReadinessResponse(t *testing.T, rec *httptest.ResponseRecorder) ReadinessResponse {
	t.Helper()
	var response ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func okProbe(context.Context) error { return nil }

func TestReadyzHandler_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(&config.Config{}, map[string]Probe{
		"database": okProbe,
		"redis":    okProbe,
	})

	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	response := decodeReadinessResponse(t, rec)
	if response.Status != "ready" {
		t.Errorf("expected status 'ready', got '%s'", response.Status)
	}
	for _, name := range []string{"configuration", "database", "redis"} {
		if response.Checks[name].Status != "ok" {
			t.Errorf("check %s: expected 'ok', got %+v", name, response.Checks[name])
		}
	}
}

func TestReadyzHandler_ProbeFails(t *testing.T) {
	handler := NewHealthHandler(&config.Config{}, map[string]Probe{
		"database": okProbe,
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
	response := decodeReadinessResponse(t, rec)
	if response.Status != "not_ready" {
		t.Errorf("expected status 'not_ready', got '%s'", response.Status)
	}
	if check := response.Checks["redis"]; check.Status != "failed" || check.Message != "connection refused" {
		t.Errorf("unexpected redis check %+v", check)
	}
}

func TestReadyzHandler_NoConfig(t *testing.T) {
	handler := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}

func TestHealthzHandler_AlwaysReturnsOK(t *testing.T) {
	handler := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.HealthzHandler(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["status"] != "ok" || response["service"] != "interview" {
		t.Errorf("unexpected response %v", response)
	}
}
