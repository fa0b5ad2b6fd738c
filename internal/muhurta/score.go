// Package muhurta scores panchang snapshots for auspiciousness and ranks
// candidate time windows within a day.
package muhurta

import (
	"fmt"
	"time"

	"github.com/rajatsoni/panchang-api/internal/panchang"
)

// BaseScore is the neutral starting point before any rule applies.
const BaseScore = 50

// AuspiciousThreshold is the minimum quality score considered auspicious.
const AuspiciousThreshold = 60

// Factor is one line item of a score breakdown. Value carries its sign;
// Positive is false for both negative and zero-valued (neutral) factors.
type Factor struct {
	Name     string `json:"name"`
	Value    int    `json:"value"`
	Reason   string `json:"reason"`
	Positive bool   `json:"isPositive"`
}

// Breakdown is the full accounting of a score: the clamped total plus one
// factor per rule category, neutral categories included.
type Breakdown struct {
	Total   int      `json:"total"`
	Factors []Factor `json:"factors"`
}

// Score computes the 0-100 quality score of a snapshot for an event type.
// It is defined as the total of Breakdown so the two can never disagree.
func Score(s panchang.Snapshot, event EventType) int {
	return BreakdownFor(s, event).Total
}

// IsAuspicious reports whether a score clears the auspicious threshold.
func IsAuspicious(score int) bool {
	return score >= AuspiciousThreshold
}

// BreakdownFor walks the rule table and produces one factor per category.
// The total is base 50 plus the factor sum, clamped to [0, 100] only at
// the end; intermediate sums may leave the range.
func BreakdownFor(s panchang.Snapshot, event EventType) Breakdown {
	factors := []Factor{
		nakshatraFactor(s),
		tithiFactor(s),
		yogaFactor(s),
		karanaFactor(s),
		pakshaFactor(s),
		weekdayFactor(s),
		festivalFactor(s),
	}
	if event != EventNone {
		factors = append(factors, eventFactors(s, event)...)
	}

	sum := 0
	for _, f := range factors {
		sum += f.Value
	}

	return Breakdown{Total: clamp(BaseScore+sum, 0, 100), Factors: factors}
}

func nakshatraFactor(s panchang.Snapshot) Factor {
	switch {
	case auspiciousNakshatras[s.Nakshatra]:
		return positive("Nakshatra", 20, fmt.Sprintf("%s is a highly auspicious nakshatra", s.Nakshatra))
	case challengingNakshatras[s.Nakshatra]:
		return negative("Nakshatra", -15, fmt.Sprintf("%s is a challenging nakshatra", s.Nakshatra))
	default:
		return neutral("Nakshatra", fmt.Sprintf("%s is a neutral nakshatra", s.Nakshatra))
	}
}

func tithiFactor(s panchang.Snapshot) Factor {
	switch {
	case auspiciousTithis[s.Tithi]:
		return positive("Tithi", 15, fmt.Sprintf("%s is favourable for most undertakings", s.Tithi))
	case riktaTithis[s.Tithi]:
		return negative("Tithi", -10, fmt.Sprintf("%s is a rikta tithi, unfavourable for new work", s.Tithi))
	default:
		return neutral("Tithi", fmt.Sprintf("%s is a neutral tithi", s.Tithi))
	}
}

func yogaFactor(s panchang.Snapshot) Factor {
	switch {
	case inauspiciousYogas[s.Yoga]:
		return negative("Yoga", -25, fmt.Sprintf("%s is an inauspicious yoga", s.Yoga))
	case highlyAuspiciousYogas[s.Yoga]:
		return positive("Yoga", 15, fmt.Sprintf("%s is a highly auspicious yoga", s.Yoga))
	default:
		return neutral("Yoga", fmt.Sprintf("%s is a neutral yoga", s.Yoga))
	}
}

func karanaFactor(s panchang.Snapshot) Factor {
	switch {
	case s.Karana == "Vishti":
		return negative("Karana", -10, "Vishti karana is avoided for auspicious work")
	case favorableKaranas[s.Karana]:
		return positive("Karana", 5, fmt.Sprintf("%s is a favourable karana", s.Karana))
	default:
		return neutral("Karana", fmt.Sprintf("%s is a neutral karana", s.Karana))
	}
}

func pakshaFactor(s panchang.Snapshot) Factor {
	if s.Paksha == panchang.ShuklaPaksha {
		return positive("Paksha", 10, "Shukla paksha (waxing moon) favours growth")
	}
	return neutral("Paksha", "Krishna paksha (waning moon)")
}

func weekdayFactor(s panchang.Snapshot) Factor {
	wd := s.Weekday()
	switch wd {
	case time.Monday, time.Wednesday, time.Friday:
		return positive("Weekday", 5, fmt.Sprintf("%s is a gentle, favourable weekday", wd))
	case time.Sunday, time.Saturday:
		return negative("Weekday", -5, fmt.Sprintf("%s carries a harsher planetary influence", wd))
	default:
		return neutral("Weekday", fmt.Sprintf("%s is a neutral weekday", wd))
	}
}

func festivalFactor(s panchang.Snapshot) Factor {
	if name, ok := panchang.FestivalOn(s.Date); ok {
		return positive("Festival", 20, fmt.Sprintf("%s falls on this date", name))
	}
	return neutral("Festival", "No major festival on this date")
}

// eventFactors applies the per-event overlay: a nakshatra bonus for every
// supported event, plus extra tithi/paksha checks for marriage and
// business.
func eventFactors(s panchang.Snapshot, event EventType) []Factor {
	var factors []Factor

	set, known := eventNakshatras[event]
	if known && set[s.Nakshatra] {
		factors = append(factors, positive("Event nakshatra", 15,
			fmt.Sprintf("%s is recommended for %s", s.Nakshatra, event)))
	} else {
		factors = append(factors, neutral("Event nakshatra",
			fmt.Sprintf("%s is not in the preferred set for %s", s.Nakshatra, event)))
	}

	switch event {
	case EventMarriage:
		if s.Paksha == panchang.ShuklaPaksha && !riktaTithis[s.Tithi] {
			factors = append(factors, positive("Event tithi", 5,
				"Waxing moon on a non-rikta tithi suits marriage"))
		} else {
			factors = append(factors, neutral("Event tithi",
				"Tithi and paksha give no extra support for marriage"))
		}
	case EventBusiness:
		if businessTithis[s.Tithi] {
			factors = append(factors, positive("Event tithi", 5,
				fmt.Sprintf("%s is favoured for new ventures", s.Tithi)))
		} else {
			factors = append(factors, neutral("Event tithi",
				fmt.Sprintf("%s gives no extra support for business", s.Tithi)))
		}
	}

	return factors
}

func positive(name string, value int, reason string) Factor {
	return Factor{Name: name, Value: value, Reason: reason, Positive: true}
}

func negative(name string, value int, reason string) Factor {
	return Factor{Name: name, Value: value, Reason: reason}
}

func neutral(name, reason string) Factor {
	return Factor{Name: name, Reason: reason}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
