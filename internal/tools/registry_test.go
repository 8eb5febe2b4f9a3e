package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestDispatchUnknownTool(t *testing.T) {
	reg := NewRegistry()

	result, err := reg.Dispatch(context.Background(), "does_not_exist", nil)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for unknown tool")
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	if !strings.Contains(text.Text, "Unknown tool: does_not_exist") {
		t.Errorf("unexpected error text: %s", text.Text)
	}
}

func TestDispatchInvokesHandler(t *testing.T) {
	reg := NewRegistry()

	var gotName string
	var gotArgs map[string]any
	reg.Add(mcp.NewTool("echo"), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		gotName = request.Params.Name
		gotArgs = request.GetArguments()
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := reg.Dispatch(context.Background(), "echo", map[string]any{"key": "value"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}
	if gotName != "echo" {
		t.Errorf("handler saw name %q, want %q", gotName, "echo")
	}
	if gotArgs["key"] != "value" {
		t.Errorf("handler saw args %v", gotArgs)
	}
}

func TestNamesPreserveRegistrationOrder(t *testing.T) {
	reg := NewRegistry()

	noop := func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(""), nil
	}
	reg.Add(mcp.NewTool("c"), noop)
	reg.Add(mcp.NewTool("a"), noop)
	reg.Add(mcp.NewTool("b"), noop)
	reg.Add(mcp.NewTool("a"), noop) // re-registration keeps the slot

	names := reg.Names()
	want := []string{"c", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
