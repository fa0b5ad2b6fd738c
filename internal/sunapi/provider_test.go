package sunapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rajatsoni/panchang-api/internal/panchang"
)

var testDate = time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func okServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":{"sunrise":"06:12","sunset":"18:45"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup_ParsesProviderResponse(t *testing.T) {
	srv := okServer(t, nil)
	p := New(srv.URL, 2*time.Second, quietLogger())

	times := p.Lookup(context.Background(), 19.0760, 72.8777, testDate)

	if times.Source != "api" {
		t.Errorf("Source = %q, want api", times.Source)
	}
	if times.SunriseMinutes != 6*60+12 {
		t.Errorf("SunriseMinutes = %d, want 372", times.SunriseMinutes)
	}
	if times.SunsetMinutes != 18*60+45 {
		t.Errorf("SunsetMinutes = %d, want 1125", times.SunsetMinutes)
	}
}

func TestLookup_CachesByLocationAndDate(t *testing.T) {
	var hits atomic.Int64
	srv := okServer(t, &hits)
	p := New(srv.URL, 2*time.Second, quietLogger())

	ctx := context.Background()
	p.Lookup(ctx, 19.0760, 72.8777, testDate)
	p.Lookup(ctx, 19.0760, 72.8777, testDate)

	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1 (second call cached)", hits.Load())
	}

	// A different date is a different key.
	p.Lookup(ctx, 19.0760, 72.8777, testDate.AddDate(0, 0, 1))
	if hits.Load() != 2 {
		t.Errorf("server hit %d times after new date, want 2", hits.Load())
	}
}

func TestLookup_FallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	p := New(srv.URL, time.Second, quietLogger())
	times := p.Lookup(context.Background(), 19.0760, 72.8777, testDate)

	wantSunrise, wantSunset := panchang.SunTimes(testDate)
	if times.Source != "approximation" {
		t.Errorf("Source = %q, want approximation", times.Source)
	}
	if times.SunriseMinutes != wantSunrise || times.SunsetMinutes != wantSunset {
		t.Errorf("fallback times = %d/%d, want %d/%d",
			times.SunriseMinutes, times.SunsetMinutes, wantSunrise, wantSunset)
	}
}

func TestLookup_FallsBackOnMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "sunrise at dawn"},
		{"bad status", `{"status":"RATE_LIMITED","results":{}}`},
		{"bad clock values", `{"status":"OK","results":{"sunrise":"soon","sunset":"later"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			p := New(srv.URL, time.Second, quietLogger())
			times := p.Lookup(context.Background(), 0, 0, testDate)

			if times.Source != "approximation" {
				t.Errorf("Source = %q, want approximation", times.Source)
			}
		})
	}
}

func TestLookup_FallsBackWhenUnreachable(t *testing.T) {
	// A port nothing listens on: connection refused, all retries fail.
	p := New("http://127.0.0.1:1", time.Second, quietLogger())

	times := p.Lookup(context.Background(), 0, 0, testDate)
	if times.Source != "approximation" {
		t.Errorf("Source = %q, want approximation", times.Source)
	}
}

func TestRange_CoversEveryDay(t *testing.T) {
	srv := okServer(t, nil)
	p := New(srv.URL, 2*time.Second, quietLogger())

	from := testDate
	to := testDate.AddDate(0, 0, 5)
	results := p.Range(context.Background(), 19.0760, 72.8777, from, to)

	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := panchang.FormatDate(d)
		if _, ok := results[key]; !ok {
			t.Errorf("missing result for %s", key)
		}
	}
}

func TestRange_CancelledContextStopsEarly(t *testing.T) {
	srv := okServer(t, nil)
	p := New(srv.URL, 2*time.Second, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := p.Range(ctx, 19.0760, 72.8777, testDate, testDate.AddDate(0, 0, 30))
	if len(results) != 0 {
		t.Errorf("got %d results after cancellation, want 0", len(results))
	}
}
