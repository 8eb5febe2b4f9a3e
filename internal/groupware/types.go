package groupware

import (
	"time"
)

// EventInput represents the input for creating a calendar event.
type EventInput struct {
	Title        string
	Description  string
	Location     string
	Start        time.Time
	End          time.Time
	Participants []string
}

// ContactInput represents the input for creating an addressbook entry.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Title     string
	Notes     string
}

// TaskInput represents the input for creating a task entry.
type TaskInput struct {
	Subject     string
	Description string
	Due         *time.Time
	Priority    string // "low", "normal", "high", "urgent"
	Status      string
	Category    string
	Assignee    string
}

// EmailInput represents the input for sending an email.
type EmailInput struct {
	To      []string
	CC      []string
	BCC     []string
	Subject string
	Body    string
}

// EventQuery filters a calendar search by time range.
type EventQuery struct {
	Start time.Time
	End   time.Time
}

// ContactQuery filters an addressbook search by free-text query.
type ContactQuery struct {
	Query string
}

// TaskQuery filters a task search by status.
type TaskQuery struct {
	Status string
}

// SaveResult is returned by write operations. ID is the identifier
// reported by the backend, or a generated placeholder when the backend
// did not return one, so callers always have something to report.
type SaveResult struct {
	ID string
}
