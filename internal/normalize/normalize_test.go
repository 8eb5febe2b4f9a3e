package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordsShapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected []Record
	}{
		{
			name:     "slice passes through",
			raw:      []any{map[string]any{"a": "1"}, map[string]any{"b": "2"}},
			expected: []Record{{"a": "1"}, {"b": "2"}},
		},
		{
			name:     "record slice passes through",
			raw:      []Record{{"a": "1"}},
			expected: []Record{{"a": "1"}},
		},
		{
			name:     "single object is wrapped",
			raw:      map[string]any{"x": float64(1)},
			expected: []Record{{"x": float64(1)}},
		},
		{
			name:     "nil yields empty",
			raw:      nil,
			expected: []Record{},
		},
		{
			name:     "textual payload yields empty",
			raw:      "<?xml version=\"1.0\"?><multistatus/>",
			expected: []Record{},
		},
		{
			name:     "scalar yields empty",
			raw:      42,
			expected: []Record{},
		},
		{
			name:     "non-record slice elements are skipped",
			raw:      []any{"noise", map[string]any{"a": "1"}},
			expected: []Record{{"a": "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Records(tt.raw)
			assert.Equal(t, tt.expected, got)
			assert.NotNil(t, got, "Records must always return a list")
		})
	}
}

func TestField(t *testing.T) {
	rec := Record{
		"n_given":  "Jane",
		"lastname": "",
		"n_family": "Smith",
		"count":    float64(3),
	}

	// First present alias wins.
	assert.Equal(t, "Jane", Field(rec, "first_name", "firstname", "n_given"))
	// Empty string values are skipped.
	assert.Equal(t, "Smith", Field(rec, "lastname", "n_family"))
	// Non-string values are not coerced.
	assert.Equal(t, "", Field(rec, "count"))
	// Absent everywhere.
	assert.Equal(t, "", Field(rec, "email", "mail"))
}
