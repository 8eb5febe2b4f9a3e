package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	if WithOperation(logger, "save_event") == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	if WithTool(logger, "create_contact") == nil {
		t.Error("WithTool returned nil")
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}

	// Nil errors yield an empty group that slog omits.
	nilAttr := Err(nil)
	if nilAttr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty", nilAttr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	hashed := AnonymizeEmail("jane@example.com")
	if !strings.HasPrefix(hashed, "user:") {
		t.Errorf("AnonymizeEmail should prefix with user:, got %q", hashed)
	}
	if strings.Contains(hashed, "jane") {
		t.Errorf("AnonymizeEmail leaked the address: %q", hashed)
	}
	if AnonymizeEmail("jane@example.com") != hashed {
		t.Error("AnonymizeEmail should be deterministic")
	}
	if AnonymizeEmail("") != "" {
		t.Error("AnonymizeEmail of empty string should be empty")
	}
}

func TestSanitizeCredential(t *testing.T) {
	if got := SanitizeCredential(""); got != "<empty>" {
		t.Errorf("SanitizeCredential(\"\") = %q", got)
	}
	got := SanitizeCredential("hunter2")
	if strings.Contains(got, "hunter") {
		t.Errorf("SanitizeCredential leaked content: %q", got)
	}
	if got != "[secret:7 chars]" {
		t.Errorf("SanitizeCredential = %q, want [secret:7 chars]", got)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"", ""},
		{"not-an-email", ""},
		{"a@b@c", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.input); got != tt.expected {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
