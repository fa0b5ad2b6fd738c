package panchang

import (
	"fmt"
	"math"
	"time"
)

// SunTimes returns approximate sunrise and sunset for a date, as minutes
// since midnight.
//
// The estimate is a latitude-agnostic seasonal sinusoid around 06:00 and
// 18:00 with a 30-minute amplitude anchored to day-of-year 172. It is the
// standalone fallback for when no external sun-time lookup is available;
// the lookup, when it succeeds, takes precedence over these values.
func SunTimes(date time.Time) (sunrise, sunset int) {
	doy := date.YearDay()
	variation := 30 * math.Cos(2*math.Pi*float64(doy-172)/365)

	sunrise = int(math.Round(6*60 + variation))
	sunset = int(math.Round(18*60 - variation))
	return sunrise, sunset
}

// FormatMinutes renders minutes-since-midnight as HH:MM, wrapping values
// past 24 hours back onto the clock face.
func FormatMinutes(m int) string {
	m = mod(m, 24*60)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock parses an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// ParseDateString parses a date string in YYYY-MM-DD format.
func ParseDateString(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}
