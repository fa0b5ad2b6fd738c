package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rajatsoni/panchang-api/internal/config"
	"github.com/rajatsoni/panchang-api/internal/database"
)

// testRouter builds a full router over an in-memory database, no sun
// provider, and development auth (skipped).
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := database.Open(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	cfg := &config.Config{
		Port:          8080,
		Env:           config.EnvDevelopment,
		DatabasePath:  ":memory:",
		SunAPITimeout: 8 * time.Second,
		LogLevel:      "error",
		LogFormat:     "text",
	}

	handlers := NewHandlers(db, nil, cfg, logger)
	return SetupRoutes(handlers, cfg, logger)
}

// doJSON performs a request and decodes the standard envelope.
func doJSON(t *testing.T, router http.Handler, method, path string, body []byte) (int, Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rec.Body.String(), err)
	}

	return rec.Code, resp
}

func dataMap(t *testing.T, resp Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("response data is %T, want object", resp.Data)
	}
	return m
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !resp.Success {
		t.Error("health check not successful")
	}
}

func TestGetDatePanchang(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet, "/api/v1/panchang/date/2025-01-08", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data := dataMap(t, resp)
	for _, field := range []string{"tithi", "nakshatra", "yoga", "karana", "paksha", "masa", "moonSign", "sunrise", "sunset"} {
		v, ok := data[field].(string)
		if !ok || v == "" {
			t.Errorf("field %q missing or empty: %v", field, data[field])
		}
	}

	score, ok := data["qualityScore"].(float64)
	if !ok || score < 0 || score > 100 {
		t.Errorf("qualityScore = %v, want number in [0,100]", data["qualityScore"])
	}
}

func TestGetDatePanchang_Deterministic(t *testing.T) {
	router := testRouter(t)

	_, first := doJSON(t, router, http.MethodGet, "/api/v1/panchang/date/2025-01-08", nil)
	_, second := doJSON(t, router, http.MethodGet, "/api/v1/panchang/date/2025-01-08", nil)

	a, _ := json.Marshal(first.Data)
	b, _ := json.Marshal(second.Data)
	if !bytes.Equal(a, b) {
		t.Errorf("same date returned different snapshots:\n%s\n%s", a, b)
	}
}

func TestGetDatePanchang_InvalidDate(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet, "/api/v1/panchang/date/not-a-date", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if resp.Success || resp.Error == nil {
		t.Error("expected error envelope")
	}
}

func TestGetRangePanchang(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet,
		"/api/v1/panchang/range?start=2025-01-01&end=2025-01-03", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data := dataMap(t, resp)
	days, ok := data["days"].([]any)
	if !ok || len(days) != 3 {
		t.Errorf("days = %v, want 3 entries", data["days"])
	}
}

func TestGetRangePanchang_Validation(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing params", "/api/v1/panchang/range"},
		{"bad start", "/api/v1/panchang/range?start=nope&end=2025-01-03"},
		{"start after end", "/api/v1/panchang/range?start=2025-02-01&end=2025-01-01"},
		{"span too long", "/api/v1/panchang/range?start=2025-01-01&end=2025-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, router, http.MethodGet, tt.path, nil)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestGetChoghadiya(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet, "/api/v1/choghadiya/date/2025-01-06", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data := dataMap(t, resp)
	day, _ := data["day"].([]any)
	night, _ := data["night"].([]any)
	if len(day) != 8 || len(night) != 8 {
		t.Fatalf("day/night = %d/%d periods, want 8/8", len(day), len(night))
	}

	// Monday: the reference rotation starts the day on Amrit.
	first, _ := day[0].(map[string]any)
	if first["name"] != "Amrit" {
		t.Errorf("first Monday period = %v, want Amrit", first["name"])
	}
}

func TestGetMuhurtaScore_BreakdownMatchesSnapshot(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet,
		"/api/v1/muhurta/score/2025-01-08?event=marriage", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data := dataMap(t, resp)
	snapshot, _ := data["snapshot"].(map[string]any)
	breakdown, _ := data["breakdown"].(map[string]any)

	if snapshot["qualityScore"] != breakdown["total"] {
		t.Errorf("snapshot score %v != breakdown total %v",
			snapshot["qualityScore"], breakdown["total"])
	}

	factors, _ := breakdown["factors"].([]any)
	if len(factors) < 7 {
		t.Errorf("breakdown has %d factors, want every category present", len(factors))
	}
}

func TestGetMuhurtaSlots_Sorted(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet, "/api/v1/muhurta/slots/2025-01-08", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data := dataMap(t, resp)
	slots, _ := data["slots"].([]any)
	if len(slots) == 0 {
		t.Fatal("no slots returned")
	}

	prev := 101.0
	for i, raw := range slots {
		slot, _ := raw.(map[string]any)
		score, _ := slot["score"].(float64)
		if score > prev {
			t.Fatalf("slot %d score %v exceeds previous %v: not sorted descending", i, score, prev)
		}
		prev = score
	}
}

func TestGetSlotsICS(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/muhurta/slots/2025-01-08/ics?title=Vivah", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "SUMMARY:Vivah", "DTSTART:20250108T"} {
		if !strings.Contains(body, want) {
			t.Errorf("ICS body missing %q:\n%s", want, body)
		}
	}
}

func TestProfileLifecycle(t *testing.T) {
	router := testRouter(t)

	// Absent profile is a 404, not an error.
	status, _ := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	if status != http.StatusNotFound {
		t.Fatalf("GET empty profile: status = %d, want 404", status)
	}

	body := []byte(`{"name":"Meera Iyer","birthDate":"1992-11-03","birthTime":"04:25","birthPlace":"Chennai"}`)
	status, resp := doJSON(t, router, http.MethodPut, "/api/v1/profile", body)
	if status != http.StatusOK {
		t.Fatalf("PUT profile: status = %d, want 200", status)
	}

	saved := dataMap(t, resp)
	if saved["moonSign"] == "" || saved["moonSign"] == nil {
		t.Error("saved profile missing derived moon sign")
	}

	status, resp = doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	if status != http.StatusOK {
		t.Fatalf("GET profile: status = %d, want 200", status)
	}
	got := dataMap(t, resp)
	if got["name"] != "Meera Iyer" {
		t.Errorf("name = %v, want Meera Iyer", got["name"])
	}

	status, _ = doJSON(t, router, http.MethodDelete, "/api/v1/profile", nil)
	if status != http.StatusOK {
		t.Fatalf("DELETE profile: status = %d, want 200", status)
	}

	status, _ = doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	if status != http.StatusNotFound {
		t.Fatalf("GET deleted profile: status = %d, want 404", status)
	}
}

func TestPutProfile_Validation(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"birthDate":"1992-11-03"}`},
		{"bad birth date", `{"name":"X","birthDate":"yesterday"}`},
		{"not json", `name=X`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, router, http.MethodPut, "/api/v1/profile", []byte(tt.body))
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestAuthMiddleware_RejectsBadKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	cfg := &config.Config{Env: config.EnvProduction, APIKey: "right-key"}
	wrapped := AuthMiddleware(cfg, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Missing key.
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d, want 401", rec.Code)
	}

	// Wrong key.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", rec.Code)
	}

	// Right key.
	req.Header.Set("X-API-Key", "right-key")
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("right key: status = %d, want 200", rec.Code)
	}
}
