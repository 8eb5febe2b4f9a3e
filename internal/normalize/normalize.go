package normalize

// Record is one calendar event, contact or task as returned by the
// backend, before field aliasing.
type Record = map[string]any

// Records maps a raw backend response onto an ordered record list.
//
// A slice is returned unchanged, a single non-nil object is wrapped as a
// one-element list, and everything else (nil, textual payloads such as
// unparsed XML, unexpected scalars) yields an empty list so the tool
// layer renders "no results" instead of a parse error.
func Records(raw any) []Record {
	switch v := raw.(type) {
	case nil:
		return []Record{}
	case []Record:
		return v
	case []any:
		records := make([]Record, 0, len(v))
		for _, item := range v {
			if rec, ok := item.(map[string]any); ok {
				records = append(records, rec)
			}
		}
		return records
	case map[string]any:
		return []Record{v}
	default:
		return []Record{}
	}
}

// Field resolves a canonical field against a record by checking the given
// source names in order and returning the first present non-empty string.
// Numeric values are not coerced; absence yields the empty string.
func Field(rec Record, aliases ...string) string {
	for _, name := range aliases {
		if v, ok := rec[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
