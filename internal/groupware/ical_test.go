package groupware

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildICalendar(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	doc := buildICalendar("uid-1", EventInput{
		Title:        "Planning, part 2",
		Start:        time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:          time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Location:     "Room 1",
		Description:  "Line one\nLine two",
		Participants: []string{"jane@example.com", "max@example.org"},
	}, now)

	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(doc, "END:VCALENDAR\r\n"))
	assert.Contains(t, doc, "UID:uid-1\r\n")
	assert.Contains(t, doc, "DTSTAMP:20250601T080000Z\r\n")
	assert.Contains(t, doc, "DTSTART:20250602T090000Z\r\n")
	assert.Contains(t, doc, "DTEND:20250602T100000Z\r\n")
	assert.Contains(t, doc, "SUMMARY:Planning\\, part 2\r\n")
	assert.Contains(t, doc, "DESCRIPTION:Line one\\nLine two\r\n")
	assert.Contains(t, doc, "ATTENDEE:mailto:jane@example.com\r\n")
	assert.Contains(t, doc, "ATTENDEE:mailto:max@example.org\r\n")
}

func TestBuildICalendarOmitsEmptyProperties(t *testing.T) {
	doc := buildICalendar("uid-2", EventInput{
		Title: "Standup",
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC),
	}, time.Now())

	assert.NotContains(t, doc, "LOCATION")
	assert.NotContains(t, doc, "DESCRIPTION")
	assert.NotContains(t, doc, "ATTENDEE")
}

func TestBuildICalendarConvertsToUTC(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	doc := buildICalendar("uid-3", EventInput{
		Title: "Standup",
		Start: time.Date(2025, 6, 2, 11, 0, 0, 0, berlin),
		End:   time.Date(2025, 6, 2, 12, 0, 0, 0, berlin),
	}, time.Now())

	assert.Contains(t, doc, "DTSTART:20250602T090000Z")
	assert.Contains(t, doc, "DTEND:20250602T100000Z")
}

func TestEscapeICalText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"semi;colon", "semi\\;colon"},
		{"comma, separated", "comma\\, separated"},
		{"back\\slash", "back\\\\slash"},
		{"multi\r\nline", "multi\\nline"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeICalText(tt.in))
	}
}
