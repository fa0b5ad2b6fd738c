package muhurta

// Rule tables for the quality score. These are fixed reference sets kept
// as data so the scorer stays a pure table walk; do not fold them into
// conditionals.

var auspiciousNakshatras = map[string]bool{
	"Rohini": true, "Mrigashira": true, "Pushya": true,
	"Uttara Phalguni": true, "Hasta": true, "Chitra": true,
	"Swati": true, "Anuradha": true, "Shravana": true,
	"Dhanishta": true, "Uttara Bhadrapada": true, "Revati": true,
}

var challengingNakshatras = map[string]bool{
	"Bharani": true, "Ardra": true, "Ashlesha": true, "Jyeshtha": true,
}

var auspiciousTithis = map[string]bool{
	"Dwitiya": true, "Tritiya": true, "Panchami": true, "Saptami": true,
	"Dashami": true, "Ekadashi": true, "Trayodashi": true,
}

// Rikta ("empty") tithis are considered unfavourable for new undertakings.
var riktaTithis = map[string]bool{
	"Chaturthi": true, "Navami": true, "Chaturdashi": true,
}

var inauspiciousYogas = map[string]bool{
	"Vishkambha": true, "Atiganda": true, "Shula": true, "Ganda": true,
	"Vyaghata": true, "Vajra": true, "Vyatipata": true, "Parigha": true,
	"Vaidhriti": true,
}

var highlyAuspiciousYogas = map[string]bool{
	"Saubhagya": true, "Shobhana": true, "Siddhi": true,
	"Shiva": true, "Siddha": true, "Shubha": true,
}

var favorableKaranas = map[string]bool{
	"Bava": true, "Balava": true, "Kaulava": true,
}

// EventType selects an event-specific overlay on top of the base rules.
type EventType string

const (
	EventNone         EventType = ""
	EventMarriage     EventType = "marriage"
	EventHousewarming EventType = "housewarming"
	EventBusiness     EventType = "business"
	EventTravel       EventType = "travel"
	EventNaming       EventType = "naming"
)

// eventNakshatras holds the curated nakshatra set for each supported
// event type. Event types not present here get no overlay.
var eventNakshatras = map[EventType]map[string]bool{
	EventMarriage: {
		"Rohini": true, "Mrigashira": true, "Magha": true,
		"Uttara Phalguni": true, "Hasta": true, "Swati": true,
		"Anuradha": true, "Mula": true, "Uttara Ashadha": true,
		"Uttara Bhadrapada": true, "Revati": true,
	},
	EventHousewarming: {
		"Rohini": true, "Mrigashira": true, "Pushya": true,
		"Anuradha": true, "Uttara Phalguni": true, "Uttara Ashadha": true,
		"Uttara Bhadrapada": true, "Revati": true,
	},
	EventBusiness: {
		"Ashwini": true, "Pushya": true, "Hasta": true,
		"Chitra": true, "Anuradha": true, "Revati": true,
	},
	EventTravel: {
		"Ashwini": true, "Mrigashira": true, "Punarvasu": true,
		"Pushya": true, "Hasta": true, "Anuradha": true,
		"Shravana": true, "Dhanishta": true, "Revati": true,
	},
	EventNaming: {
		"Ashwini": true, "Rohini": true, "Punarvasu": true,
		"Pushya": true, "Hasta": true, "Swati": true,
		"Anuradha": true, "Shravana": true, "Revati": true,
	},
}

// businessTithis gives the extra tithi bonus checked only for business
// muhurta.
var businessTithis = map[string]bool{
	"Pratipada": true, "Panchami": true, "Dashami": true, "Ekadashi": true,
}

// ParseEventType normalizes a string into a known EventType. Unknown
// values map to EventNone, which scores with no overlay.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventMarriage, EventHousewarming, EventBusiness, EventTravel, EventNaming:
		return EventType(s)
	default:
		return EventNone
	}
}
