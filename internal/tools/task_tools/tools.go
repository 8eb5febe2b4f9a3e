package task_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/groupware-mcp/internal/dates"
	"github.com/teemow/groupware-mcp/internal/groupware"
	"github.com/teemow/groupware-mcp/internal/instrumentation"
	"github.com/teemow/groupware-mcp/internal/normalize"
	"github.com/teemow/groupware-mcp/internal/server"
	"github.com/teemow/groupware-mcp/internal/tools"
	"github.com/teemow/groupware-mcp/internal/tools/common"
)

// displayDate is the layout for task due dates in rendered output.
const displayDate = "Mon, 02 Jan 2006"

// RegisterTaskTools registers the infolog task tools on the registry.
func RegisterTaskTools(reg *tools.Registry, sc *server.ServerContext) error {
	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a task (infolog entry) on the groupware server"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("description",
			mcp.Description("Task description"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date: 'today', 'tomorrow', 'next week' or a literal date"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority: low, normal, high or urgent"),
		),
		mcp.WithString("category",
			mcp.Description("Category label"),
		),
		mcp.WithString("assignee",
			mcp.Description("Person responsible for the task"),
		),
	)

	reg.Add(createTaskTool, common.InstrumentedToolHandlerWithBackend(
		"create_task", instrumentation.BackendInfolog, instrumentation.OperationWrite, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTask(ctx, request, sc)
		}))

	listTasksTool := mcp.NewTool("get_tasks",
		mcp.WithDescription("List tasks filtered by status"),
		mcp.WithString("status",
			mcp.Description("Task status to filter by (default: 'open')"),
		),
	)

	reg.Add(listTasksTool, common.InstrumentedToolHandlerWithBackend(
		"get_tasks", instrumentation.BackendInfolog, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTasks(ctx, request, sc)
		}))

	return nil
}

type createTaskArgs struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	DueDate     string `mapstructure:"due_date"`
	Priority    string `mapstructure:"priority"`
	Category    string `mapstructure:"category"`
	Assignee    string `mapstructure:"assignee"`
}

func handleCreateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args createTaskArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.Title, "title"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := groupware.TaskInput{
		Subject:     args.Title,
		Description: args.Description,
		Priority:    args.Priority,
		Category:    args.Category,
		Assignee:    args.Assignee,
	}
	if args.DueDate != "" {
		due := dates.Resolve(args.DueDate)
		input.Due = &due
	}

	result, err := sc.Gateway().WriteTask(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task created successfully:\nTitle: %s\n", args.Title)
	if input.Due != nil {
		fmt.Fprintf(&b, "Due: %s\n", input.Due.Format(displayDate))
	}
	if args.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", args.Priority)
	}
	fmt.Fprintf(&b, "ID: %s", result.ID)

	return mcp.NewToolResultText(b.String()), nil
}

type listTasksArgs struct {
	Status string `mapstructure:"status"`
}

func handleListTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args listTasksArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.Status == "" {
		args.Status = "open"
	}

	records, err := sc.Gateway().SearchTasks(ctx, groupware.TaskQuery{Status: args.Status})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultText("No tasks found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d task(s):\n", len(records))
	for _, rec := range records {
		task := normalize.ToTask(rec)

		fmt.Fprintf(&b, "- %s [%s]", normalize.OrPlaceholder(task.Subject), normalize.OrPlaceholder(task.Status))
		if task.Due != nil {
			fmt.Fprintf(&b, " (due %s)", task.Due.Format(displayDate))
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}
