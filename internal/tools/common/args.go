package common

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeArgs decodes a tool argument bag into a typed arguments struct.
// Decoding is weakly typed so JSON numbers fill int fields and numeric
// strings fill numbers, matching what MCP clients actually send.
func DecodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build argument decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// RequireString validates that a required string argument is present and
// non-empty.
func RequireString(value, key string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", key)
	}
	return nil
}

// SplitList parses a comma-separated list of values, trimming whitespace
// and dropping empty entries. Returns nil for an empty input.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}

	var values []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
