// Package sunapi fetches sunrise/sunset times from an external HTTP
// provider, caching results per (lat, lon, date) and degrading to the
// built-in seasonal approximation on any failure.
package sunapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"

	"github.com/rajatsoni/panchang-api/internal/panchang"
)

// Defaults for the provider's network behaviour.
const (
	// DefaultTimeout is the whole-request deadline for one lookup.
	DefaultTimeout = 8 * time.Second

	// cacheTTL bounds how long a cached result is trusted. The cache is
	// session-scoped: entries are never evicted explicitly, only by TTL
	// or capacity pressure.
	cacheTTL = 24 * time.Hour

	// batchSize and batchDelay pace bulk range queries so we stay polite
	// toward the third-party API.
	batchSize  = 4
	batchDelay = 200 * time.Millisecond
)

// Times is a resolved sunrise/sunset pair. Source records where the
// values came from: "api" or "approximation".
type Times struct {
	SunriseMinutes int    `json:"sunriseMinutes"`
	SunsetMinutes  int    `json:"sunsetMinutes"`
	Source         string `json:"source"`
}

// payload is the provider's wire schema: local HH:MM strings under a
// status marker, e.g. {"status":"OK","results":{"sunrise":"06:12",...}}.
type payload struct {
	Status  string `json:"status"`
	Results struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"results"`
}

// Provider is the deadline-aware sun-time lookup. The zero value is not
// usable; construct with New.
type Provider struct {
	baseURL string
	client  *http.Client
	cache   *otter.Cache[string, Times]
	logger  *slog.Logger
}

// New creates a provider against the given base URL. A non-positive
// timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache := otter.Must(&otter.Options[string, Times]{
		MaximumSize:      10_000,
		InitialCapacity:  256,
		ExpiryCalculator: otter.ExpiryWriting[string, Times](cacheTTL),
	})

	return &Provider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
		logger:  logger,
	}
}

// Lookup resolves sun times for a location and date. It never returns an
// error: network failure, a non-OK status, a malformed payload, or a
// missed deadline all normalize to the sinusoid approximation. Cache
// writes are idempotent, so concurrent lookups of the same key are safe.
func (p *Provider) Lookup(ctx context.Context, lat, lon float64, date time.Time) Times {
	key := cacheKey(lat, lon, date)

	if cached, ok := p.cache.GetIfPresent(key); ok {
		return cached
	}

	times, err := p.fetch(ctx, lat, lon, date)
	if err != nil {
		p.logger.Warn("sun lookup failed, using approximation",
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
			slog.String("date", panchang.FormatDate(date)),
			slog.Any("error", err),
		)
		return fallback(date)
	}

	p.cache.Set(key, times)
	return times
}

// Range resolves sun times for every day in [from, to], keyed by
// YYYY-MM-DD. Requests run in small concurrent batches with a pause
// between batches. Days whose lookup fails carry the approximation;
// a cancelled context stops further batches and returns what finished.
func (p *Provider) Range(ctx context.Context, lat, lon float64, from, to time.Time) map[string]Times {
	results := make(map[string]Times)

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	var mu sync.Mutex
	for i := 0; i < len(dates); i += batchSize {
		if ctx.Err() != nil {
			break
		}

		end := i + batchSize
		if end > len(dates) {
			end = len(dates)
		}

		var wg sync.WaitGroup
		for _, d := range dates[i:end] {
			wg.Add(1)
			go func(d time.Time) {
				defer wg.Done()
				t := p.Lookup(ctx, lat, lon, d)
				mu.Lock()
				results[panchang.FormatDate(d)] = t
				mu.Unlock()
			}(d)
		}
		wg.Wait()

		if end < len(dates) {
			select {
			case <-ctx.Done():
			case <-time.After(batchDelay):
			}
		}
	}

	return results
}

// fetch performs the HTTP round trip with retries. Retries back off with
// full jitter and respect the caller's context.
func (p *Provider) fetch(ctx context.Context, lat, lon float64, date time.Time) (Times, error) {
	url := fmt.Sprintf("%s?lat=%.4f&lng=%.4f&date=%s",
		p.baseURL, lat, lon, panchang.FormatDate(date))

	var times Times
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return err
			}

			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", resp.StatusCode)
			}

			body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
			if err != nil {
				return err
			}

			times, err = parsePayload(body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(4*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying sun lookup",
				slog.Uint64("attempt", uint64(n)),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		return Times{}, err
	}
	return times, nil
}

func parsePayload(body []byte) (Times, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Times{}, fmt.Errorf("decode payload: %w", err)
	}
	if p.Status != "OK" {
		return Times{}, fmt.Errorf("provider status %q", p.Status)
	}

	sunrise, err := panchang.ParseClock(p.Results.Sunrise)
	if err != nil {
		return Times{}, fmt.Errorf("sunrise: %w", err)
	}
	sunset, err := panchang.ParseClock(p.Results.Sunset)
	if err != nil {
		return Times{}, fmt.Errorf("sunset: %w", err)
	}

	return Times{SunriseMinutes: sunrise, SunsetMinutes: sunset, Source: "api"}, nil
}

func fallback(date time.Time) Times {
	sunrise, sunset := panchang.SunTimes(date)
	return Times{SunriseMinutes: sunrise, SunsetMinutes: sunset, Source: "approximation"}
}

func cacheKey(lat, lon float64, date time.Time) string {
	return fmt.Sprintf("%.4f,%.4f,%s", lat, lon, panchang.FormatDate(date))
}
