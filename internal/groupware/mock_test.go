package groupware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/groupware-mcp/internal/config"
	"github.com/teemow/groupware-mcp/internal/normalize"
)

func fixedClock() func() time.Time {
	base := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	return func() time.Time { return base }
}

func TestNewSelectsMockWithoutCredentials(t *testing.T) {
	gw := New(config.Config{})
	_, ok := gw.(*Mock)
	assert.True(t, ok, "missing credentials must select the offline gateway")

	gw = New(config.Config{URL: "https://groupware.example.org", Username: "u", Password: "p", Offline: true})
	_, ok = gw.(*Mock)
	assert.True(t, ok, "offline flag overrides complete credentials")

	gw = New(config.Config{URL: "https://groupware.example.org", Username: "u", Password: "p"})
	_, ok = gw.(*Client)
	assert.True(t, ok, "complete credentials select the live client")
}

func TestMockSeedIsDeterministic(t *testing.T) {
	a := NewMockWithClock(fixedClock())
	b := NewMockWithClock(fixedClock())

	ctx := context.Background()
	query := EventQuery{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
	}

	first, err := a.SearchEvents(ctx, query)
	require.NoError(t, err)
	second, err := b.SearchEvents(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "Team meeting", normalize.Field(first[0], "title"))
}

func TestMockSaveEventThenSearchFindsIt(t *testing.T) {
	m := NewMockWithClock(fixedClock())
	ctx := context.Background()

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	result, err := m.SaveEvent(ctx, EventInput{
		Title: "Standup",
		Start: start,
		End:   start.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)

	// The window starts after the seeded "Team meeting" (08:00) so only
	// the saved event falls inside it.
	records, err := m.SearchEvents(ctx, EventQuery{
		Start: start.Add(-30 * time.Minute),
		End:   start.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Standup", normalize.Field(records[0], "title"))
}

func TestMockSearchEventsRangeIsInclusive(t *testing.T) {
	m := NewMockWithClock(fixedClock())

	// Seeded "Team meeting" starts at the truncated clock plus a day.
	seededStart := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	records, err := m.SearchEvents(context.Background(), EventQuery{
		Start: seededStart,
		End:   seededStart,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Team meeting", normalize.Field(records[0], "title"))
}

func TestMockSearchEventsFiltersByRange(t *testing.T) {
	m := NewMockWithClock(fixedClock())

	records, err := m.SearchEvents(context.Background(), EventQuery{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Team meeting", normalize.Field(records[0], "title"))
}

func TestMockSearchContacts(t *testing.T) {
	m := NewMockWithClock(fixedClock())
	ctx := context.Background()

	records, err := m.SearchContacts(ctx, ContactQuery{Query: "erika"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "erika@example.org", normalize.Field(records[0], "email"))

	// Full-name records match too: the fallback splits fn into parts.
	records, err = m.SearchContacts(ctx, ContactQuery{Query: "Max"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = m.SearchContacts(ctx, ContactQuery{Query: "mustermann"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = m.SearchContacts(ctx, ContactQuery{})
	require.NoError(t, err)
	assert.Len(t, records, 2, "empty query returns everything")
}

func TestMockSaveContactThenSearchFindsIt(t *testing.T) {
	m := NewMockWithClock(fixedClock())
	ctx := context.Background()

	_, err := m.SaveContact(ctx, ContactInput{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	records, err := m.SearchContacts(ctx, ContactQuery{Query: "jane"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane", normalize.Field(records[0], "first_name"))
}

func TestMockWriteTaskDefaultsStatus(t *testing.T) {
	m := NewMockWithClock(fixedClock())
	ctx := context.Background()

	_, err := m.WriteTask(ctx, TaskInput{Subject: "File report"})
	require.NoError(t, err)

	records, err := m.SearchTasks(ctx, TaskQuery{Status: "open"})
	require.NoError(t, err)
	assert.Len(t, records, 3, "seeded tasks plus the new one, all open")
}

func TestMockSearchTasksFiltersByStatus(t *testing.T) {
	m := NewMockWithClock(fixedClock())
	ctx := context.Background()

	_, err := m.WriteTask(ctx, TaskInput{Subject: "Shipped", Status: "done"})
	require.NoError(t, err)

	records, err := m.SearchTasks(ctx, TaskQuery{Status: "done"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Shipped", normalize.Field(records[0], "subject"))

	records, err = m.SearchTasks(ctx, TaskQuery{})
	require.NoError(t, err)
	assert.Len(t, records, 3, "empty filter matches every status")
}

func TestMockIDsAreSequential(t *testing.T) {
	m := NewMockWithClock(fixedClock())
	ctx := context.Background()

	first, err := m.SaveEvent(ctx, EventInput{Title: "a", Start: time.Now(), End: time.Now()})
	require.NoError(t, err)
	second, err := m.SaveContact(ctx, ContactInput{FirstName: "b"})
	require.NoError(t, err)

	assert.Equal(t, "event-1", first.ID)
	assert.Equal(t, "contact-2", second.ID)
}
