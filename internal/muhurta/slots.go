package muhurta

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rajatsoni/panchang-api/internal/panchang"
)

// Slot defaults when the caller passes zero or negative values.
const (
	DefaultSlotWidthMinutes = 60
	DefaultSlotStepMinutes  = 30

	// morningWindowMinutes bounds the "morning bonus": a slot earns it
	// only when it lies entirely within this span after sunrise.
	morningWindowMinutes = 180
)

// preferredSlotTithis and preferredSlotNakshatras are the small bonus
// sets consulted by the slot ranker; they are narrower than the full
// scoring tables on purpose.
var preferredSlotTithis = map[string]bool{
	"Ekadashi": true, "Panchami": true, "Tritiya": true,
}

var preferredSlotNakshatras = map[string]bool{
	"Revati": true, "Pushya": true, "Ashwini": true,
}

// SlotInput describes a day to partition into candidate windows. Sunrise
// and Sunset are HH:MM strings; empty or unparsable values fall back to
// 06:00 and 18:00. BaseQuality defaults to 50 when nil.
type SlotInput struct {
	Date        time.Time
	Sunrise     string
	Sunset      string
	Tithi       string
	Nakshatra   string
	BaseQuality *float64
}

// Slot is one scored candidate window. Slots from one call may overlap;
// they are ranked, not a partition.
type Slot struct {
	Date         time.Time `json:"date"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	StartMinutes int       `json:"startMinutes"`
	EndMinutes   int       `json:"endMinutes"`
	Score        int       `json:"score"`
	Reasons      []string  `json:"reasons"`
}

// RankSlots slides a fixed-width window across the daylight span and
// scores each position, returning slots sorted by descending score.
// Ties keep their chronological (input) order. An inverted span
// (sunset at or before sunrise) yields an empty, non-nil slice: bad
// input degrades to "no candidates", never an error.
func RankSlots(in SlotInput, widthMinutes, stepMinutes int) []Slot {
	if widthMinutes <= 0 {
		widthMinutes = DefaultSlotWidthMinutes
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultSlotStepMinutes
	}

	sunrise := clockOrDefault(in.Sunrise, 6*60)
	sunset := clockOrDefault(in.Sunset, 18*60)
	if sunset <= sunrise {
		return []Slot{}
	}

	base := BaseScore
	if in.BaseQuality != nil {
		base = int(math.Round(*in.BaseQuality))
	}

	weekend := in.Date.Weekday() == time.Saturday || in.Date.Weekday() == time.Sunday

	slots := []Slot{}
	// The last partial window is dropped, not truncated.
	for start := sunrise; start+widthMinutes <= sunset; start += stepMinutes {
		end := start + widthMinutes
		score := base
		var reasons []string

		if start >= sunrise && end <= sunrise+morningWindowMinutes {
			score += 10
			reasons = append(reasons, "morning hours shortly after sunrise")
		}
		if preferredSlotTithis[in.Tithi] {
			score += 8
			reasons = append(reasons, fmt.Sprintf("%s is a preferred tithi", in.Tithi))
		}
		if preferredSlotNakshatras[in.Nakshatra] {
			score += 8
			reasons = append(reasons, fmt.Sprintf("%s is a preferred nakshatra", in.Nakshatra))
		}
		if weekend {
			score -= 5
			reasons = append(reasons, "weekend day")
		}

		slots = append(slots, Slot{
			Date:         in.Date,
			Start:        panchang.FormatMinutes(start),
			End:          panchang.FormatMinutes(end),
			StartMinutes: start,
			EndMinutes:   end,
			Score:        clamp(score, 0, 100),
			Reasons:      reasons,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Score > slots[j].Score
	})

	return slots
}

func clockOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	m, err := panchang.ParseClock(s)
	if err != nil {
		return def
	}
	return m
}
