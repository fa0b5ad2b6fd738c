package panchang

import "time"

// Fixed vocabularies for the five panchang elements. These are ordered
// reference tables; all element math produces indices into them.

// TithiNames lists the 15 tithi of one lunar fortnight.
//
// The same table serves both fortnights: index 14 is named Purnima whether
// the moon is waxing (true Purnima) or waning (where the tradition would
// say Amavasya). This collision is a deliberate simplification of the
// approximation, kept as-is; callers that need the distinction can consult
// the Paksha field.
var TithiNames = []string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
}

// NakshatraNames lists the 27 lunar mansions in zodiacal order.
var NakshatraNames = []string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha",
	"Anuradha", "Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha",
	"Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

// YogaNames lists the 27 sun-moon yoga combinations.
var YogaNames = []string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana",
	"Atiganda", "Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi",
	"Dhruva", "Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata",
	"Variyana", "Parigha", "Shiva", "Siddha", "Sadhya", "Shubha",
	"Shukla", "Brahma", "Indra", "Vaidhriti",
}

// KaranaNames lists the 11 named karana (half-tithi) types.
var KaranaNames = []string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija",
	"Vishti", "Shakuni", "Chatushpada", "Naga", "Kimstughna",
}

// MasaNames maps civil months (January..December) directly onto month
// names. This is not a true lunisolar month determination.
var MasaNames = []string{
	"Magha", "Phalguna", "Chaitra", "Vaishakha", "Jyeshtha", "Ashadha",
	"Shravana", "Bhadrapada", "Ashwin", "Kartik", "Margashirsha", "Pausha",
}

// MoonSignNames lists the 12 sidereal zodiac signs.
var MoonSignNames = []string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

type monthDay struct {
	Month time.Month
	Day   int
}

// festivals holds fixed-date (solar) festivals only. Lunar festivals move
// against the civil calendar and cannot be pinned here by this
// approximation, so they are intentionally absent.
var festivals = map[monthDay]string{
	{time.January, 14}: "Makar Sankranti",
	{time.April, 13}:   "Baisakhi",
}

// FestivalOn reports the major fixed-date festival falling on the given
// date, if any.
func FestivalOn(date time.Time) (string, bool) {
	name, ok := festivals[monthDay{date.Month(), date.Day()}]
	return name, ok
}
