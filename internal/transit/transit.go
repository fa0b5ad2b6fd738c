// Package transit locates the minute within a day at which a named
// panchang element changes, by binary search against an external
// ephemeris lookup.
package transit

import (
	"context"
	"fmt"
	"time"
)

// Kind names the element a lookup should report.
type Kind string

const (
	KindTithi     Kind = "tithi"
	KindNakshatra Kind = "nakshatra"
	KindYoga      Kind = "yoga"
	KindKarana    Kind = "karana"
)

// Lookup is the external ephemeris collaborator: it returns the label of
// the requested element at an instant. It may be slow (a network call);
// the search honours ctx on every probe.
type Lookup func(ctx context.Context, at time.Time, kind Kind) (string, error)

// Transition records a detected element boundary. At is truncated to
// minute precision; the search does not resolve finer than that.
type Transition struct {
	At   time.Time `json:"time"`
	From string    `json:"fromLabel"`
	To   string    `json:"toLabel"`
}

// precisionFloor stops the search once the bracket is this small.
const precisionFloor = time.Minute

// FindTransition binary-searches the given date for the boundary where
// the element's label changes. It returns nil (and no error) when the
// label is the same at both ends of the day.
//
// The search assumes the element changes at most once in the day. When
// it changes more than once, only the last bracketed boundary is
// reported; multiple same-day transitions are an accepted limitation of
// this probe, not a detectable condition.
func FindTransition(ctx context.Context, lookup Lookup, date time.Time, kind Kind) (*Transition, error) {
	left := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	right := left.Add(24*time.Hour - time.Millisecond)

	startLabel, err := lookup(ctx, left, kind)
	if err != nil {
		return nil, fmt.Errorf("lookup %s at day start: %w", kind, err)
	}
	endLabel, err := lookup(ctx, right, kind)
	if err != nil {
		return nil, fmt.Errorf("lookup %s at day end: %w", kind, err)
	}

	if startLabel == endLabel {
		return nil, nil
	}

	best := right
	for right.Sub(left) > precisionFloor {
		mid := left.Add(right.Sub(left) / 2)

		label, err := lookup(ctx, mid, kind)
		if err != nil {
			return nil, fmt.Errorf("lookup %s at %s: %w", kind, mid.Format(time.RFC3339), err)
		}

		if label == startLabel {
			left = mid
		} else {
			right = mid
			best = mid
		}
	}

	return &Transition{
		At:   best.Truncate(time.Minute),
		From: startLabel,
		To:   endLabel,
	}, nil
}
