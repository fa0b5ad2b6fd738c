// Package choghadiya partitions a day into the eight daylight and eight
// night planetary periods used for quick auspicious-time lookup.
package choghadiya

import (
	"math"
	"time"

	"github.com/rajatsoni/panchang-api/internal/panchang"
)

// Period is one of the 16 choghadiya intervals of a date. StartMinutes
// and EndMinutes are minutes since that date's midnight; night periods
// run past 1440 into the following morning.
type Period struct {
	Name         string     `json:"name"`
	Type         PeriodType `json:"type"`
	Start        string     `json:"startTime"`
	End          string     `json:"endTime"`
	StartMinutes int        `json:"-"`
	EndMinutes   int        `json:"-"`
	Ruler        string     `json:"ruler"`
	Description  string     `json:"description"`
	Activities   []string   `json:"activities"`
}

// Partition splits [sunrise, sunset) into 8 equal day periods and
// [sunset, next sunrise) into 8 equal night periods for the given date.
// Both lists are chronological and contiguous: each period starts where
// the previous one ends, the first day period starts at sunrise and the
// last ends at sunset.
func Partition(date time.Time, sunriseMinutes, sunsetMinutes int) (day, night []Period) {
	offset := weekdayOffset[int(date.Weekday())]

	day = buildPeriods(daySequence, offset, sunriseMinutes, sunsetMinutes)

	// Night covers the remainder of the 24 hours and sits 4 positions
	// ahead in the same 8-slot cycle.
	nightOffset := (offset + 4) % 8
	nightEnd := sunsetMinutes + (24*60 - (sunsetMinutes - sunriseMinutes))
	night = buildPeriods(nightSequence, nightOffset, sunsetMinutes, nightEnd)

	return day, night
}

// buildPeriods cuts [start, end) into 8 intervals along rounded
// boundaries so adjacent periods always share an exact edge.
func buildPeriods(sequence [8]string, offset, start, end int) []Period {
	duration := float64(end-start) / 8

	bounds := [9]int{}
	for i := 0; i <= 8; i++ {
		bounds[i] = start + int(math.Round(float64(i)*duration))
	}

	periods := make([]Period, 8)
	for i := 0; i < 8; i++ {
		name := sequence[(offset+i)%8]
		attrs := periodAttributes[name]
		periods[i] = Period{
			Name:         name,
			Type:         attrs.Type,
			Start:        panchang.FormatMinutes(bounds[i]),
			End:          panchang.FormatMinutes(bounds[i+1]),
			StartMinutes: bounds[i],
			EndMinutes:   bounds[i+1],
			Ruler:        attrs.Ruler,
			Description:  attrs.Description,
			Activities:   attrs.Activities,
		}
	}
	return periods
}

// CurrentPeriod returns the period whose [start, end) interval contains
// now's minutes-of-day, or nil when none matches. Night periods that
// cross midnight are checked against the wrapped clock as well. A nil
// result means "not applicable" and must not be treated as an error.
func CurrentPeriod(periods []Period, now time.Time) *Period {
	minutes := now.Hour()*60 + now.Minute()

	for i := range periods {
		p := &periods[i]
		if minutes >= p.StartMinutes && minutes < p.EndMinutes {
			return p
		}
		// Past-midnight intervals: retry with the clock advanced a day.
		if p.EndMinutes > 24*60 {
			wrapped := minutes + 24*60
			if wrapped >= p.StartMinutes && wrapped < p.EndMinutes {
				return p
			}
		}
	}
	return nil
}
