package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServerContext(t *testing.T) *ServerContext {
	t.Helper()
	sc := NewServerContext(context.Background(), ServerContextConfig{})
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t))

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if resp := decodeHealth(t, rec); resp.Status != healthStatusOK {
		t.Errorf("Status = %q", resp.Status)
	}
}

func TestReadinessHandler_Ready(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t))

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != healthStatusOK {
		t.Errorf("Status = %q", resp.Status)
	}
	if resp.Checks["ready"] != healthStatusOK {
		t.Errorf("ready = %q", resp.Checks["ready"])
	}
	// No Redis configured: informational only, readiness still passes.
	if resp.Checks["profiles"] != healthStatusDisabled {
		t.Errorf("profiles = %q, want disabled", resp.Checks["profiles"])
	}
}

func TestReadinessHandler_NotReady(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t))
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if resp := decodeHealth(t, rec); resp.Status != healthStatusNotReady {
		t.Errorf("Status = %q", resp.Status)
	}
}

func TestReadinessHandler_ShuttingDown(t *testing.T) {
	sc := NewServerContext(context.Background(), ServerContextConfig{})
	h := NewHealthChecker(sc)
	_ = sc.Shutdown()

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Checks["shutdown"] != healthStatusShuttingDown {
		t.Errorf("shutdown = %q", resp.Checks["shutdown"])
	}
}

func TestDetailedHealthHandler(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t))

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var resp DetailedHealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != healthStatusOK {
		t.Errorf("Status = %q", resp.Status)
	}
	if _, err := time.ParseDuration(resp.Uptime); err != nil {
		t.Errorf("Uptime %q is not a duration: %v", resp.Uptime, err)
	}
}

func TestRegisterHealthEndpoints(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t))

	mux := http.NewServeMux()
	h.RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}
