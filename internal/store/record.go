// Package store is the REST record-store client. Each operation issues one
// round-trip against the configured base endpoint; there is no batching,
// retry, or caching. Callers own user-facing messaging for failures.
package store

import (
	"fmt"
	"strconv"
)

// Record is a flat, schema-conformant key/value entity. The id key is
// present only after creation; its absence marks a record as new. Extra
// runtime properties are tolerated — the table filter matches against all
// of them, the form only reads schema fields.
type Record map[string]any

// IDKey is the reserved identifier field name.
const IDKey = "id"

// ID returns the record identifier, empty for unsaved records.
func (r Record) ID() string {
	return FormatValue(r[IDKey])
}

// Field returns the string form of a field value. JSON numbers arrive as
// float64 and are formatted without a trailing ".0" for integral values.
func (r Record) Field(name string) string {
	return FormatValue(r[name])
}

// WithoutID returns a copy of the record with the id key removed, suitable
// as a create/update payload.
func (r Record) WithoutID() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		if k == IDKey {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatValue renders a scalar record value as a string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
