package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// pinger answers Ping with err and records whether a deadline was set.
type pinger struct {
	err         error
	hadDeadline bool
}

func (p *pinger) Ping(ctx context.Context) error {
	_, p.hadDeadline = ctx.Deadline()
	return p.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	// Liveness never consults dependencies, even failing ones.
	h := NewHealthHandler(&pinger{err: errors.New("down")}, nil)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	refused := errors.New("connection refused")

	tests := []struct {
		name         string
		db, cache    HealthChecker
		wantCode     int
		wantStatus   string
		wantPostgres string
		wantRedis    string
	}{
		{
			name:         "both healthy",
			db:           &pinger{},
			cache:        &pinger{},
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPostgres: "ok",
			wantRedis:    "ok",
		},
		{
			name:         "postgres down",
			db:           &pinger{err: refused},
			cache:        &pinger{},
			wantCode:     http.StatusServiceUnavailable,
			wantStatus:   "unhealthy",
			wantPostgres: "error: connection refused",
			wantRedis:    "ok",
		},
		{
			name:         "redis down",
			db:           &pinger{},
			cache:        &pinger{err: refused},
			wantCode:     http.StatusServiceUnavailable,
			wantStatus:   "unhealthy",
			wantPostgres: "ok",
			wantRedis:    "error: connection refused",
		},
		{
			name:         "nothing configured",
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPostgres: "not configured",
			wantRedis:    "not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)

			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Checks["postgres"] != tt.wantPostgres {
				t.Errorf("postgres = %q, want %q", resp.Checks["postgres"], tt.wantPostgres)
			}
			if resp.Checks["redis"] != tt.wantRedis {
				t.Errorf("redis = %q, want %q", resp.Checks["redis"], tt.wantRedis)
			}
		})
	}
}

func TestHealthHandler_ReadyzBoundsPings(t *testing.T) {
	db := &pinger{}
	h := NewHealthHandler(db, nil)

	h.Readyz(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if !db.hadDeadline {
		t.Error("readiness ping ran without a deadline")
	}
}
