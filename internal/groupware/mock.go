package groupware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teemow/groupware-mcp/internal/normalize"
)

// Mock is the offline Gateway implementation. It serves deterministic
// synthetic records without any network access and retains saved records
// in memory, so a created entity is found by a subsequent search within
// the same process.
type Mock struct {
	mu       sync.Mutex
	now      func() time.Time
	seq      int
	events   []normalize.Record
	contacts []normalize.Record
	tasks    []normalize.Record
}

// NewMock creates a mock gateway seeded with a small fixed data set
// relative to the current clock.
func NewMock() *Mock {
	return NewMockWithClock(time.Now)
}

// NewMockWithClock creates a mock gateway with an explicit clock, used by
// tests that need reproducible seed data.
func NewMockWithClock(now func() time.Time) *Mock {
	m := &Mock{now: now}
	m.seed()
	return m
}

func (m *Mock) seed() {
	base := m.now().Truncate(time.Hour)

	m.events = []normalize.Record{
		{
			"title":    "Team meeting",
			"start":    base.Add(24 * time.Hour).Format(time.RFC3339),
			"end":      base.Add(25 * time.Hour).Format(time.RFC3339),
			"location": "Conference room 1",
		},
		{
			"title":       "Project review",
			"start":       base.Add(72 * time.Hour).Format(time.RFC3339),
			"end":         base.Add(73 * time.Hour).Format(time.RFC3339),
			"location":    "Online",
			"description": "Quarterly review",
		},
	}

	m.contacts = []normalize.Record{
		{
			"n_given":  "Erika",
			"n_family": "Mustermann",
			"email":    "erika@example.org",
			"org_name": "Example GmbH",
		},
		{
			"fn":    "Max Mustermann",
			"email": "max@example.org",
		},
	}

	m.tasks = []normalize.Record{
		{
			"subject":  "Prepare quarterly report",
			"status":   "open",
			"priority": "high",
			"due":      base.Add(96 * time.Hour).Format(time.RFC3339),
		},
		{
			"subject":  "Archive old projects",
			"status":   "open",
			"priority": "normal",
		},
	}
}

// nextID returns a deterministic per-instance identifier.
func (m *Mock) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// SaveEvent records the event in memory.
func (m *Mock) SaveEvent(_ context.Context, input EventInput) (*SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID("event")
	rec := normalize.Record{
		"id":       id,
		"title":    input.Title,
		"start":    input.Start.Format(time.RFC3339),
		"end":      input.End.Format(time.RFC3339),
		"location": input.Location,
	}
	if input.Description != "" {
		rec["description"] = input.Description
	}
	if len(input.Participants) > 0 {
		rec["participants"] = input.Participants
	}
	m.events = append(m.events, rec)

	return &SaveResult{ID: id}, nil
}

// SearchEvents returns seeded and saved events within the query range.
func (m *Mock) SearchEvents(_ context.Context, query EventQuery) ([]normalize.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := []normalize.Record{}
	for _, rec := range m.events {
		start, err := time.Parse(time.RFC3339, normalize.Field(rec, "start"))
		if err != nil {
			continue
		}
		if start.Before(query.Start) || start.After(query.End) {
			continue
		}
		results = append(results, rec)
	}

	return results, nil
}

// SaveContact records the contact in memory.
func (m *Mock) SaveContact(_ context.Context, input ContactInput) (*SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID("contact")
	rec := normalize.Record{
		"id":         id,
		"first_name": input.FirstName,
		"last_name":  input.LastName,
	}
	for key, value := range map[string]string{
		"email":   input.Email,
		"phone":   input.Phone,
		"company": input.Company,
		"title":   input.Title,
		"notes":   input.Notes,
	} {
		if value != "" {
			rec[key] = value
		}
	}
	m.contacts = append(m.contacts, rec)

	return &SaveResult{ID: id}, nil
}

// SearchContacts returns contacts whose resolved name or email contains
// the query text.
func (m *Mock) SearchContacts(_ context.Context, query ContactQuery) ([]normalize.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if query.Query == "" {
		return append([]normalize.Record{}, m.contacts...), nil
	}

	results := []normalize.Record{}
	for _, rec := range m.contacts {
		contact := normalize.ToContact(rec)
		haystack := strings.ToLower(fmt.Sprintf("%s %s %s", contact.FirstName, contact.LastName, contact.Email))
		if strings.Contains(haystack, strings.ToLower(query.Query)) {
			results = append(results, rec)
		}
	}

	return results, nil
}

// WriteTask records the task in memory.
func (m *Mock) WriteTask(_ context.Context, input TaskInput) (*SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID("task")
	rec := normalize.Record{
		"id":      id,
		"subject": input.Subject,
		"status":  input.Status,
	}
	if rec["status"] == "" {
		rec["status"] = "open"
	}
	for key, value := range map[string]string{
		"description": input.Description,
		"priority":    input.Priority,
		"category":    input.Category,
		"assignee":    input.Assignee,
	} {
		if value != "" {
			rec[key] = value
		}
	}
	if input.Due != nil {
		rec["due"] = input.Due.Format(time.RFC3339)
	}
	m.tasks = append(m.tasks, rec)

	return &SaveResult{ID: id}, nil
}

// SearchTasks returns tasks matching the status filter; an empty filter
// matches everything.
func (m *Mock) SearchTasks(_ context.Context, query TaskQuery) ([]normalize.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := []normalize.Record{}
	for _, rec := range m.tasks {
		if query.Status != "" && normalize.Field(rec, "status") != query.Status {
			continue
		}
		results = append(results, rec)
	}

	return results, nil
}

// SendEmail reports success without any delivery, matching the live
// client's stub behavior.
func (m *Mock) SendEmail(_ context.Context, _ EmailInput) error {
	return nil
}
