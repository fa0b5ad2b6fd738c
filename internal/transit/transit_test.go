package transit

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testDay = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

// flipAt builds a lookup whose label changes exactly at the given
// instant.
func flipAt(boundary time.Time, before, after string) Lookup {
	return func(_ context.Context, at time.Time, _ Kind) (string, error) {
		if at.Before(boundary) {
			return before, nil
		}
		return after, nil
	}
}

func TestFindTransition_LocatesBoundary(t *testing.T) {
	boundary := time.Date(2025, time.March, 10, 13, 0, 0, 0, time.UTC)
	lookup := flipAt(boundary, "Ashtami", "Navami")

	tr, err := FindTransition(context.Background(), lookup, testDay, KindTithi)
	if err != nil {
		t.Fatalf("FindTransition() error = %v", err)
	}
	if tr == nil {
		t.Fatal("FindTransition() = nil, want a transition")
	}

	if tr.From != "Ashtami" || tr.To != "Navami" {
		t.Errorf("labels = %s -> %s, want Ashtami -> Navami", tr.From, tr.To)
	}

	// Minute-level precision: the reported time must be within a minute
	// of the true boundary on either side.
	low := boundary.Add(-time.Minute)
	high := boundary.Add(time.Minute)
	if tr.At.Before(low) || tr.At.After(high) {
		t.Errorf("transition at %s, want within [%s, %s]",
			tr.At.Format("15:04:05"), low.Format("15:04"), high.Format("15:04"))
	}
}

func TestFindTransition_NoChangeReturnsNil(t *testing.T) {
	constant := func(_ context.Context, _ time.Time, _ Kind) (string, error) {
		return "Rohini", nil
	}

	tr, err := FindTransition(context.Background(), constant, testDay, KindNakshatra)
	if err != nil {
		t.Fatalf("FindTransition() error = %v", err)
	}
	if tr != nil {
		t.Errorf("FindTransition() = %+v, want nil", tr)
	}
}

func TestFindTransition_EarlyAndLateBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		boundary time.Time
	}{
		{"just after midnight", testDay.Add(10 * time.Minute)},
		{"late evening", testDay.Add(23*time.Hour + 45*time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := flipAt(tt.boundary, "before", "after")

			tr, err := FindTransition(context.Background(), lookup, testDay, KindYoga)
			if err != nil {
				t.Fatalf("FindTransition() error = %v", err)
			}
			if tr == nil {
				t.Fatal("FindTransition() = nil, want a transition")
			}

			diff := tr.At.Sub(tt.boundary)
			if diff < -time.Minute || diff > time.Minute {
				t.Errorf("transition at %s, want within a minute of %s",
					tr.At.Format("15:04:05"), tt.boundary.Format("15:04:05"))
			}
		})
	}
}

func TestFindTransition_LookupErrorPropagates(t *testing.T) {
	sentinel := errors.New("ephemeris unavailable")
	failing := func(_ context.Context, _ time.Time, _ Kind) (string, error) {
		return "", sentinel
	}

	_, err := FindTransition(context.Background(), failing, testDay, KindKarana)
	if !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want wrapped sentinel", err)
	}
}

func TestFindTransition_ProbeCountIsLogarithmic(t *testing.T) {
	// A day of milliseconds bisected to one-minute resolution needs
	// only a handful of probes; runaway search would indicate a broken
	// termination condition.
	boundary := time.Date(2025, time.March, 10, 13, 0, 0, 0, time.UTC)
	inner := flipAt(boundary, "a", "b")

	calls := 0
	counting := func(ctx context.Context, at time.Time, kind Kind) (string, error) {
		calls++
		return inner(ctx, at, kind)
	}

	if _, err := FindTransition(context.Background(), counting, testDay, KindTithi); err != nil {
		t.Fatalf("FindTransition() error = %v", err)
	}

	// 2 endpoint probes plus ~ceil(log2(1440)) midpoints.
	if calls > 16 {
		t.Errorf("lookup called %d times, want <= 16", calls)
	}
}
