package task_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/groupware-mcp/internal/config"
	"github.com/teemow/groupware-mcp/internal/groupware"
	"github.com/teemow/groupware-mcp/internal/server"
	"github.com/teemow/groupware-mcp/internal/tools"
)

func newTestRegistry(t *testing.T) *tools.Registry {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), config.Config{})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	sc.SetGateway(groupware.NewMock())

	reg := tools.NewRegistry()
	if err := RegisterTaskTools(reg, sc); err != nil {
		t.Fatalf("RegisterTaskTools() error = %v", err)
	}
	return reg
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestCreateTask(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Dispatch(context.Background(), "create_task", map[string]any{
		"title":    "File report",
		"due_date": "2026-09-05",
		"priority": "high",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	for _, want := range []string{"File report", "Priority: high", "ID: task-1"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Dispatch(context.Background(), "create_task", map[string]any{
		"priority": "low",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for missing title")
	}
	if text := resultText(t, result); !strings.Contains(text, "title is required") {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestGetTasksDefaultsToOpen(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Dispatch(context.Background(), "get_tasks", map[string]any{})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	for _, want := range []string{"Prepare quarterly report", "Archive old projects", "[open]"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}
}

func TestCreatedTaskIsFoundByStatusFilter(t *testing.T) {
	reg := newTestRegistry(t)

	created, err := reg.Dispatch(context.Background(), "create_task", map[string]any{
		"title": "Review draft",
	})
	if err != nil {
		t.Fatalf("Dispatch(create) error = %v", err)
	}
	if created.IsError {
		t.Fatalf("create failed: %s", resultText(t, created))
	}

	listed, err := reg.Dispatch(context.Background(), "get_tasks", map[string]any{
		"status": "open",
	})
	if err != nil {
		t.Fatalf("Dispatch(list) error = %v", err)
	}

	if text := resultText(t, listed); !strings.Contains(text, "Review draft") {
		t.Errorf("created task not found in listing:\n%s", text)
	}
}

func TestGetTasksNoMatches(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Dispatch(context.Background(), "get_tasks", map[string]any{
		"status": "done",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if text := resultText(t, result); text != "No tasks found." {
		t.Errorf("expected no-match message, got: %s", text)
	}
}
