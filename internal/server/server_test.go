package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lotcheck/pkg/cache"
	"github.com/matzehuels/lotcheck/pkg/layout"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return New(Options{Cache: c, Logger: log.New(io.Discard)})
}

const connectedLayout = `{
	"width": 400,
	"height": 300,
	"elements": [
		{"id": "entrance-1", "type": "entrance", "x": 0, "y": 0, "width": 40, "height": 20},
		{"id": "ramp-1", "type": "ramp", "x": 0, "y": 20, "width": 40, "height": 60},
		{"id": "road-1", "type": "road", "x": 0, "y": 80, "width": 400, "height": 60},
		{"id": "exit-1", "type": "exit", "x": 360, "y": 140, "width": 40, "height": 20}
	]
}`

func postValidate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s, want ok status", rec.Body.String())
	}
}

func TestValidateCleanLayout(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := postValidate(t, h, connectedLayout)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}

	var report layout.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Valid {
		t.Errorf("report.Valid = false, violations = %v", report.Violations)
	}
	if len(report.Violations) != 0 {
		t.Errorf("violations = %v, want none", report.Violations)
	}
}

func TestValidateCacheHit(t *testing.T) {
	h := newTestServer(t).Handler()

	first := postValidate(t, h, connectedLayout)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := postValidate(t, h, connectedLayout)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("X-Cache = %q, want hit", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached report differs from computed report")
	}
}

func TestValidateWithViolations(t *testing.T) {
	h := newTestServer(t).Handler()

	body := `{
		"width": 100,
		"height": 100,
		"elements": [
			{"id": "pillar-1", "type": "pillar", "x": 90, "y": 10, "width": 20, "height": 20}
		]
	}`

	rec := postValidate(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report layout.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Valid {
		t.Error("report.Valid = true, want false")
	}

	found := false
	for _, v := range report.Violations {
		if v.Type == layout.ViolationOutOfBounds && v.ElementID == "pillar-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing out_of_bounds violation for pillar-1: %v", report.Violations)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "unknown field", body: `{"width": 10, "height": 10, "elements": [], "color": "red"}`},
		{name: "zero bounds", body: `{"width": 0, "height": 10, "elements": []}`},
		{name: "unknown element type", body: `{"width": 10, "height": 10, "elements": [{"id": "a", "type": "pond", "x": 0, "y": 0, "width": 1, "height": 1}]}`},
		{name: "duplicate IDs", body: `{"width": 10, "height": 10, "elements": [
			{"id": "a", "type": "wall", "x": 0, "y": 0, "width": 1, "height": 1},
			{"id": "a", "type": "wall", "x": 2, "y": 2, "width": 1, "height": 1}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postValidate(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if resp.Error.Code != "INVALID_LAYOUT" {
				t.Errorf("error code = %q, want INVALID_LAYOUT", resp.Error.Code)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t).Handler()

	// Generated when absent
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be generated")
	}

	// Propagated when supplied upstream
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Errorf("X-Request-ID = %q, want upstream-42", got)
	}
}

func TestValidateMethodNotAllowed(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
