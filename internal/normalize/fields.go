package normalize

import (
	"strings"
	"time"
)

// NotProvided is the display placeholder for canonical fields the backend
// did not populate. Rendered output never contains an undefined field.
const NotProvided = "Not provided"

// Event is the canonical, field-aliased representation of a calendar event.
type Event struct {
	Title        string
	Start        time.Time
	End          time.Time
	Location     string
	Description  string
	Participants []string
}

// Contact is the canonical representation of an addressbook entry.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Title     string
	Notes     string
}

// Task is the canonical representation of a task ("infolog") entry.
type Task struct {
	Subject     string
	Description string
	Due         *time.Time
	Priority    string
	Status      string
	Category    string
	Assignee    string
}

// Alias tables: canonical field -> accepted source names, checked in order.
// The dialects cover the JSON field names seen from EGroupware-style
// servers and their CalDAV/CardDAV bridges.
var (
	eventTitleAliases       = []string{"title", "summary", "SUMMARY", "event_title"}
	eventStartAliases       = []string{"start", "dtstart", "DTSTART", "startdate"}
	eventEndAliases         = []string{"end", "dtend", "DTEND", "enddate"}
	eventLocationAliases    = []string{"location", "LOCATION", "event_location"}
	eventDescriptionAliases = []string{"description", "DESCRIPTION", "note"}

	contactFirstNameAliases = []string{"first_name", "firstname", "n_given", "givenName", "given"}
	contactLastNameAliases  = []string{"last_name", "lastname", "n_family", "familyName", "family"}
	contactFullNameAliases  = []string{"fn", "fullname", "n_fn", "displayName"}
	contactEmailAliases     = []string{"email", "mail", "email_home", "contact_email"}
	contactPhoneAliases     = []string{"phone", "tel", "tel_work", "tel_cell", "telephone"}
	contactCompanyAliases   = []string{"company", "org", "org_name", "organization"}
	contactTitleAliases     = []string{"title", "role", "contact_title", "jobtitle"}
	contactNotesAliases     = []string{"notes", "note", "contact_note"}

	taskSubjectAliases     = []string{"subject", "title", "info_subject", "summary"}
	taskDescriptionAliases = []string{"description", "info_des", "notes"}
	taskDueAliases         = []string{"due", "due_date", "info_enddate", "duedate"}
	taskPriorityAliases    = []string{"priority", "info_priority"}
	taskStatusAliases      = []string{"status", "info_status", "state"}
	taskCategoryAliases    = []string{"category", "info_cat", "cat_id"}
	taskAssigneeAliases    = []string{"assignee", "info_owner", "responsible", "owner"}
)

// ToEvent resolves a backend record into a canonical event.
func ToEvent(rec Record) Event {
	ev := Event{
		Title:       Field(rec, eventTitleAliases...),
		Location:    Field(rec, eventLocationAliases...),
		Description: Field(rec, eventDescriptionAliases...),
	}

	if s := Field(rec, eventStartAliases...); s != "" {
		if t, err := parseInstant(s); err == nil {
			ev.Start = t
		}
	}
	if s := Field(rec, eventEndAliases...); s != "" {
		if t, err := parseInstant(s); err == nil {
			ev.End = t
		}
	}

	switch v := rec["participants"].(type) {
	case []string:
		ev.Participants = v
	case []any:
		for _, p := range v {
			if s, ok := p.(string); ok {
				ev.Participants = append(ev.Participants, s)
			}
		}
	case string:
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				ev.Participants = append(ev.Participants, p)
			}
		}
	}

	return ev
}

// ToContact resolves a backend record into a canonical contact. When the
// record only carries a combined full-name field, the name is split on
// whitespace as a last resort: first token becomes the given name, the
// remainder the family name.
func ToContact(rec Record) Contact {
	c := Contact{
		FirstName: Field(rec, contactFirstNameAliases...),
		LastName:  Field(rec, contactLastNameAliases...),
		Email:     Field(rec, contactEmailAliases...),
		Phone:     Field(rec, contactPhoneAliases...),
		Company:   Field(rec, contactCompanyAliases...),
		Title:     Field(rec, contactTitleAliases...),
		Notes:     Field(rec, contactNotesAliases...),
	}

	if c.FirstName == "" && c.LastName == "" {
		if full := Field(rec, contactFullNameAliases...); full != "" {
			c.FirstName, c.LastName = SplitFullName(full)
		}
	}

	return c
}

// ToTask resolves a backend record into a canonical task.
func ToTask(rec Record) Task {
	t := Task{
		Subject:     Field(rec, taskSubjectAliases...),
		Description: Field(rec, taskDescriptionAliases...),
		Priority:    Field(rec, taskPriorityAliases...),
		Status:      Field(rec, taskStatusAliases...),
		Category:    Field(rec, taskCategoryAliases...),
		Assignee:    Field(rec, taskAssigneeAliases...),
	}

	if s := Field(rec, taskDueAliases...); s != "" {
		if due, err := parseInstant(s); err == nil {
			t.Due = &due
		}
	}

	return t
}

// SplitFullName splits a combined display name into given and family
// parts. A single token becomes the given name with an empty family name.
func SplitFullName(full string) (first, last string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// OrPlaceholder returns the value, or the NotProvided placeholder when it
// is empty.
func OrPlaceholder(value string) string {
	if value == "" {
		return NotProvided
	}
	return value
}

// instantLayouts are the timestamp formats accepted from backend payloads.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

func parseInstant(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
