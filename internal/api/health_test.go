package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/api"
)

func TestLiveness_ReturnsOK(t *testing.T) {
	t.Parallel()

	h := api.NewHealthHandler(nil, &mockCursor{clients: 3}, testLogger(), "test-v1", "http://routes.test/api/route")

	r := gin.New()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}

	if body["version"] != "test-v1" {
		t.Errorf("expected version 'test-v1', got %v", body["version"])
	}

	if body["ws_clients"] != float64(3) {
		t.Errorf("expected ws_clients 3, got %v", body["ws_clients"])
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pinger     api.ReadinessChecker
		wantCode   int
		wantStatus string
		wantCheck  string
	}{
		{"reachable", &mockPinger{}, http.StatusOK, "ready", "ok"},
		{"unreachable", &mockPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "not_ready", "error"},
		{"not configured", nil, http.StatusOK, "ready", "not_configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := api.NewHealthHandler(tt.pinger, nil, testLogger(), "test", "")

			r := gin.New()
			r.GET("/ready", h.Readiness)

			w := doRequest(r, http.MethodGet, "/ready", "")
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}

			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
			if body.Checks["route_service"] != tt.wantCheck {
				t.Errorf("route_service = %q, want %q", body.Checks["route_service"], tt.wantCheck)
			}
		})
	}
}
