// Package panchang derives Hindu calendar elements for a civil date using
// simplified periodic arithmetic.
//
// The math here is an approximation, not an ephemeris. Lunar elements are
// computed from whole days elapsed since a reference new moon and the mean
// synodic month length, so results drift from true astronomical positions
// over long ranges. That drift is a documented property of the model, not
// a defect.
package panchang

import (
	"math"
	"time"
)

// Paksha identifies the lunar fortnight.
type Paksha string

const (
	// ShuklaPaksha is the waxing fortnight (new moon toward full moon).
	ShuklaPaksha Paksha = "Shukla"

	// KrishnaPaksha is the waning fortnight (full moon toward new moon).
	KrishnaPaksha Paksha = "Krishna"
)

// SynodicMonthDays is the mean length of the moon phase cycle in days.
const SynodicMonthDays = 29.53

// Epoch is the reference new moon all lunar arithmetic counts from
// (January 6, 2000 UTC).
var Epoch = time.Date(2000, time.January, 6, 0, 0, 0, 0, time.UTC)

// Snapshot is the immutable panchang result for one date. Every field is
// a pure function of the date and the package's fixed tables, so two
// calls with the same date always produce identical snapshots.
type Snapshot struct {
	Date time.Time `json:"date"`

	Tithi          string `json:"tithi"`
	TithiIndex     int    `json:"tithiIndex"`
	Nakshatra      string `json:"nakshatra"`
	NakshatraIndex int    `json:"nakshatraIndex"`
	Yoga           string `json:"yoga"`
	Karana         string `json:"karana"`
	Paksha         Paksha `json:"paksha"`
	Masa           string `json:"masa"`
	MoonSign       string `json:"moonSign"`

	Sunrise string `json:"sunrise"` // HH:MM local
	Sunset  string `json:"sunset"`  // HH:MM local

	// Filled in by the scoring layer; zero until then.
	QualityScore int  `json:"qualityScore"`
	IsAuspicious bool `json:"isAuspicious"`
}

// Weekday returns the civil weekday of the snapshot's date.
func (s Snapshot) Weekday() time.Weekday {
	return s.Date.Weekday()
}

// Approximate computes the panchang elements for a date. It is total for
// any valid time.Time: there are no error conditions.
//
// Location does not enter the element math; it only matters for the
// optional external sun-time lookup, whose results may overwrite the
// Sunrise/Sunset fields after the fact.
func Approximate(date time.Time) Snapshot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	daysSinceEpoch := int(math.Floor(day.Sub(Epoch).Hours() / 24))

	// Fraction of the way through the current synodic month, [0, 1).
	cycle := math.Mod(float64(daysSinceEpoch), SynodicMonthDays) / SynodicMonthDays
	if cycle < 0 {
		cycle++
	}

	tithiIndex := int(cycle * 15)
	if tithiIndex > 14 {
		tithiIndex = 14
	}

	nakshatraIndex := mod(daysSinceEpoch+int(float64(day.Day())/1.08), 27)
	yogaIndex := mod(day.YearDay()*3+int(cycle*27), 27)
	karanaIndex := int(cycle*30) % 11

	moonSignIndex := int(float64(nakshatraIndex) / 2.25)
	if moonSignIndex > 11 {
		moonSignIndex = 11
	}

	paksha := ShuklaPaksha
	if cycle >= 0.5 {
		paksha = KrishnaPaksha
	}

	sunrise, sunset := SunTimes(day)

	return Snapshot{
		Date:           day,
		Tithi:          TithiNames[tithiIndex],
		TithiIndex:     tithiIndex,
		Nakshatra:      NakshatraNames[nakshatraIndex],
		NakshatraIndex: nakshatraIndex,
		Yoga:           YogaNames[yogaIndex],
		Karana:         KaranaNames[karanaIndex],
		Paksha:         paksha,
		Masa:           MasaNames[int(day.Month())-1],
		MoonSign:       MoonSignNames[moonSignIndex],
		Sunrise:        FormatMinutes(sunrise),
		Sunset:         FormatMinutes(sunset),
	}
}

// mod returns n modulo m with a non-negative result.
func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
