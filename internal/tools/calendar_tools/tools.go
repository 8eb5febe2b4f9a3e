package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/groupware-mcp/internal/dates"
	"github.com/teemow/groupware-mcp/internal/groupware"
	"github.com/teemow/groupware-mcp/internal/instrumentation"
	"github.com/teemow/groupware-mcp/internal/normalize"
	"github.com/teemow/groupware-mcp/internal/server"
	"github.com/teemow/groupware-mcp/internal/tools"
	"github.com/teemow/groupware-mcp/internal/tools/common"
)

// defaultDurationMinutes applies when a created event carries no
// explicit duration.
const defaultDurationMinutes = 60

// displayTime is the layout for event instants in rendered output.
const displayTime = "Mon, 02 Jan 2006 15:04"

// RegisterCalendarTools registers the calendar tools on the registry.
func RegisterCalendarTools(reg *tools.Registry, sc *server.ServerContext) error {
	createEventTool := mcp.NewTool("create_calendar_event",
		mcp.WithDescription("Create a calendar event on the groupware server"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date: 'today', 'tomorrow', 'next week' or a literal date like 2026-03-14"),
		),
		mcp.WithString("time",
			mcp.Description("Time of day in HH:MM (24-hour)"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Event duration in minutes (default: 60)"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("participants",
			mcp.Description("Comma-separated participant email addresses"),
		),
	)

	reg.Add(createEventTool, common.InstrumentedToolHandlerWithBackend(
		"create_calendar_event", instrumentation.BackendCalendar, instrumentation.OperationSave, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	listEventsTool := mcp.NewTool("get_calendar_events",
		mcp.WithDescription("List calendar events in a date range"),
		mcp.WithString("start_date",
			mcp.Description("Range start: 'today', 'tomorrow', 'next week' or a literal date (default: 'today')"),
		),
		mcp.WithString("end_date",
			mcp.Description("Range end, same formats (default: 'next week')"),
		),
	)

	reg.Add(listEventsTool, common.InstrumentedToolHandlerWithBackend(
		"get_calendar_events", instrumentation.BackendCalendar, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	return nil
}

type createEventArgs struct {
	Title           string `mapstructure:"title"`
	Date            string `mapstructure:"date"`
	Time            string `mapstructure:"time"`
	DurationMinutes int    `mapstructure:"duration_minutes"`
	Location        string `mapstructure:"location"`
	Description     string `mapstructure:"description"`
	Participants    string `mapstructure:"participants"`
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args createEventArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.Title, "title"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.Date, "date"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := dates.Resolve(args.Date)
	if args.Time != "" {
		start = dates.WithClock(start, args.Time)
	}

	duration := args.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	result, err := sc.Gateway().SaveEvent(ctx, groupware.EventInput{
		Title:        args.Title,
		Start:        start,
		End:          end,
		Location:     args.Location,
		Description:  args.Description,
		Participants: common.SplitList(args.Participants),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	location := args.Location
	if location == "" {
		location = "Not specified"
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Event created successfully:\nTitle: %s\nStart: %s\nDuration: %d minutes\nLocation: %s\nID: %s",
		args.Title, start.Format(displayTime), duration, location, result.ID)), nil
}

type listEventsArgs struct {
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args listEventsArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.StartDate == "" {
		args.StartDate = "today"
	}
	if args.EndDate == "" {
		args.EndDate = "next week"
	}

	records, err := sc.Gateway().SearchEvents(ctx, groupware.EventQuery{
		Start: dates.Resolve(args.StartDate),
		End:   dates.Resolve(args.EndDate),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultText("No events found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d event(s):\n", len(records))
	for _, rec := range records {
		event := normalize.ToEvent(rec)

		when := normalize.NotProvided
		if !event.Start.IsZero() {
			when = event.Start.Format(displayTime)
		}

		fmt.Fprintf(&b, "- %s — %s (%s)\n",
			normalize.OrPlaceholder(event.Title), when, normalize.OrPlaceholder(event.Location))
	}

	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}
