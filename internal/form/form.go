// Package form holds the editable form state for one record: values, field
// errors, and touched flags, updated through reducer-style transitions.
// The state is plain data so the HTTP layer can render it and tests can
// drive it headlessly.
package form

import (
	"github.com/urmhq/urm/internal/schema"
	"github.com/urmhq/urm/internal/store"
)

// Form is the local state of the create/edit form. The zero value is not
// usable; construct with New.
type Form struct {
	Schema  schema.Schema
	Values  map[string]string
	Errors  map[string]string
	Touched map[string]bool
}

// New creates an empty form for the given schema.
func New(s schema.Schema) *Form {
	f := &Form{Schema: s}
	f.Reset(nil)
	return f
}

// Reset repopulates the form from an initial record, or clears every field
// when initial is nil. This runs synchronously with the identity of the
// initial record: switching records never leaves stale values behind.
func (f *Form) Reset(initial store.Record) {
	f.Values = make(map[string]string, len(f.Schema.Fields))
	f.Errors = make(map[string]string)
	f.Touched = make(map[string]bool)
	for _, fld := range f.Schema.Fields {
		if initial != nil {
			f.Values[fld.Name] = initial.Field(fld.Name)
		} else {
			f.Values[fld.Name] = ""
		}
	}
}

// SetField records a single field edit. Unknown names are ignored so stray
// request parameters cannot grow the value map past the schema.
func (f *Form) SetField(name, value string) {
	if _, ok := f.Schema.Lookup(name); !ok {
		return
	}
	f.Values[name] = value
	f.Touched[name] = true
	delete(f.Errors, name)
}

// ValidateAll evaluates every field's rule set. The first failing rule per
// field becomes that field's inline error. Returns true when the whole form
// is valid; a false return means submission must be blocked.
func (f *Form) ValidateAll() bool {
	f.Errors = make(map[string]string)
	for _, fld := range f.Schema.Fields {
		if msg, ok := fld.Validate(f.Values[fld.Name]); !ok {
			f.Errors[fld.Name] = msg
		}
	}
	return len(f.Errors) == 0
}

// Submission returns the field-name → value mapping to hand to the store.
// The id never appears here; the schema has no id field by construction.
func (f *Form) Submission() map[string]any {
	out := make(map[string]any, len(f.Schema.Fields))
	for _, fld := range f.Schema.Fields {
		out[fld.Name] = f.Values[fld.Name]
	}
	return out
}

// Error returns the inline error for a field, empty if none.
func (f *Form) Error(name string) string {
	return f.Errors[name]
}
