package groupware

import (
	"fmt"
	"strings"
	"time"
)

// icalTimestamp is the UTC timestamp layout used in iCalendar documents.
const icalTimestamp = "20060102T150405Z"

// buildICalendar serializes an event into a minimal iCalendar document
// suitable for a calendar PUT. The document carries a single VEVENT with
// the given UID.
func buildICalendar(uid string, input EventInput, now time.Time) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//groupware-mcp//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s\r\n", uid)
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", now.UTC().Format(icalTimestamp))
	fmt.Fprintf(&b, "DTSTART:%s\r\n", input.Start.UTC().Format(icalTimestamp))
	fmt.Fprintf(&b, "DTEND:%s\r\n", input.End.UTC().Format(icalTimestamp))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICalText(input.Title))

	if input.Location != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", escapeICalText(input.Location))
	}
	if input.Description != "" {
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeICalText(input.Description))
	}
	for _, participant := range input.Participants {
		fmt.Fprintf(&b, "ATTENDEE:mailto:%s\r\n", participant)
	}

	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")

	return b.String()
}

// escapeICalText escapes text per RFC 5545: backslash, semicolon, comma
// and newline.
func escapeICalText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
