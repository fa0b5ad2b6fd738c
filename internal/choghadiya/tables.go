package choghadiya

// PeriodType classifies a choghadiya period.
type PeriodType string

const (
	Auspicious   PeriodType = "auspicious"
	Inauspicious PeriodType = "inauspicious"
	Neutral      PeriodType = "neutral"
)

// attributes is the fixed per-name lookup for ruler, classification,
// description and recommended activities.
type attributes struct {
	Ruler       string
	Type        PeriodType
	Description string
	Activities  []string
}

var periodAttributes = map[string]attributes{
	"Udveg": {
		Ruler:       "Sun",
		Type:        Inauspicious,
		Description: "Anxiety and unease; poor for new beginnings",
		Activities:  []string{"Government dealings", "Administrative tasks"},
	},
	"Chal": {
		Ruler:       "Venus",
		Type:        Neutral,
		Description: "Movement; suits activities already in motion",
		Activities:  []string{"Travel", "Relocation", "Vehicle purchase"},
	},
	"Labh": {
		Ruler:       "Mercury",
		Type:        Auspicious,
		Description: "Gain; favourable for profit-oriented work",
		Activities:  []string{"Starting a business", "Trade", "Education"},
	},
	"Amrit": {
		Ruler:       "Moon",
		Type:        Auspicious,
		Description: "Nectar; favourable for all good work",
		Activities:  []string{"Ceremonies", "Healing", "Important meetings"},
	},
	"Kaal": {
		Ruler:       "Saturn",
		Type:        Inauspicious,
		Description: "Loss; avoid starting anything of value",
		Activities:  []string{"Routine chores"},
	},
	"Shubh": {
		Ruler:       "Jupiter",
		Type:        Auspicious,
		Description: "Auspicious; favourable for sacred work",
		Activities:  []string{"Marriage", "Religious ceremonies", "Housewarming"},
	},
	"Rog": {
		Ruler:       "Mars",
		Type:        Inauspicious,
		Description: "Illness; avoid except in emergencies",
		Activities:  []string{"Urgent medical matters"},
	},
}

// daySequence and nightSequence are the 8-slot planetary cycles the
// weekday rotation indexes into. The values come from a verified
// reference table, including the 8th entry repeating the 1st; they are
// reproduced verbatim, not derived.
var daySequence = [8]string{
	"Udveg", "Chal", "Labh", "Amrit", "Kaal", "Shubh", "Rog", "Udveg",
}

var nightSequence = [8]string{
	"Shubh", "Amrit", "Chal", "Rog", "Kaal", "Labh", "Udveg", "Shubh",
}

// weekdayOffset maps a weekday (0=Sunday..6=Saturday) to its starting
// index in daySequence. The offsets are non-uniform reference values,
// not a formula: Sunday starts on Udveg, Monday on Amrit, Tuesday on
// Rog, and so on.
var weekdayOffset = [7]int{0, 3, 6, 2, 5, 1, 4}
