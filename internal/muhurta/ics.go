package muhurta

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ToCalendarEvent renders a slot as a minimal iCalendar VEVENT block.
// Timestamps are emitted as floating local times (no UTC designator), so
// the event lands at the same wall-clock time in any calendar app.
func ToCalendarEvent(title string, slot Slot) string {
	day := slot.Date.Format("20060102")
	start := fmt.Sprintf("%sT%02d%02d00", day, slot.StartMinutes/60, slot.StartMinutes%60)
	end := fmt.Sprintf("%sT%02d%02d00", day, slot.EndMinutes/60, slot.EndMinutes%60)

	var b strings.Builder
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s@panchang\r\n", uuid.NewString())
	fmt.Fprintf(&b, "DTSTAMP:%sT000000\r\n", day)
	fmt.Fprintf(&b, "DTSTART:%s\r\n", start)
	fmt.Fprintf(&b, "DTEND:%s\r\n", end)
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICS(title))
	if len(slot.Reasons) > 0 {
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeICS(strings.Join(slot.Reasons, "; ")))
	}
	b.WriteString("END:VEVENT\r\n")
	return b.String()
}

// WrapCalendar wraps VEVENT blocks in a VCALENDAR envelope suitable for
// serving as a .ics file.
func WrapCalendar(events ...string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//panchang-api//muhurta//EN\r\n")
	for _, ev := range events {
		b.WriteString(ev)
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// escapeICS escapes the characters RFC 5545 requires escaping in text
// property values.
func escapeICS(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
