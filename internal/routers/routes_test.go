package routers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nitingarg01/Major-project-sub001/internal/config"
	"github.com/Nitingarg01/Major-project-sub001/internal/handlers"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func walkRoutes(t *testing.T, router *chi.Mux) map[string]bool {
	t.Helper()
	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}
	return paths
}

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	HealthRoutes(router, handlers.NewHealthHandler(&config.Config{}, nil))

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s route not registered correctly, got status %d", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected default collectors in /metrics output")
	}
}

func TestSessionRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	logger := zap.NewNop()

	SessionRoutes(router, handlers.NewSessionHandler(nil, logger), handlers.NewStreamHandler(nil, logger), "")
	UserRoutes(router, handlers.NewUserHandler(nil, nil, logger), "")
	CompanyRoutes(router, handlers.NewCompanyHandler(nil, logger))

	paths := walkRoutes(t, router)
	expected := []string{
		"POST /api/v1/sessions/",
		"GET /api/v1/sessions/{id}",
		"GET /api/v1/sessions/{id}/progress",
		"GET /api/v1/sessions/{id}/report",
		"GET /api/v1/sessions/{id}/stream",
		"GET /api/v1/sessions/{id}/rounds/{index}/can-switch",
		"POST /api/v1/sessions/{id}/switch",
		"POST /api/v1/sessions/{id}/rounds/{index}/complete",
		"POST /api/v1/sessions/{id}/alerts",
		"GET /api/v1/users/{userId}/sessions",
		"GET /api/v1/users/{userId}/stats",
		"GET /api/v1/companies/{name}",
	}
	for _, route := range expected {
		if !paths[route] {
			t.Errorf("expected route %s to be registered", route)
		}
	}
}

func TestSessionRoutesRequireTokenWhenSecretSet(t *testing.T) {
	router := chi.NewRouter()
	logger := zap.NewNop()
	SessionRoutes(router, handlers.NewSessionHandler(nil, logger), handlers.NewStreamHandler(nil, logger), "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}
