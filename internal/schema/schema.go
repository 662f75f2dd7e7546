// Package schema defines the declarative field schema that drives both the
// form and the table renderers. The schema is loaded once at process start
// from the embedded CUE definition and is immutable afterwards; consumers
// treat it as the single source of truth for field order, labels, input
// types, and validation rules.
package schema

import (
	"regexp"
	"strings"
)

// FieldType classifies a field for widget selection and default formatting.
type FieldType int

const (
	TypeText FieldType = iota
	TypeNumber
	TypeEmail
	TypeDate
	TypeTextarea
)

// String returns the schema-visible type name.
func (t FieldType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeNumber:
		return "number"
	case TypeEmail:
		return "email"
	case TypeDate:
		return "date"
	case TypeTextarea:
		return "textarea"
	default:
		return "unknown"
	}
}

// Widget is the input control a field renders as. Selection is a single
// exhaustive switch over the field type; unrecognized types fall back to a
// plain text box.
type Widget int

const (
	WidgetTextInput Widget = iota
	WidgetNumberInput
	WidgetEmailInput
	WidgetDateInput
	WidgetTextarea
)

// WidgetFor maps a field type to its input control.
func WidgetFor(t FieldType) Widget {
	switch t {
	case TypeNumber:
		return WidgetNumberInput
	case TypeEmail:
		return WidgetEmailInput
	case TypeDate:
		return WidgetDateInput
	case TypeTextarea:
		return WidgetTextarea
	case TypeText:
		return WidgetTextInput
	default:
		return WidgetTextInput
	}
}

// RuleKind tags a validation rule variant.
type RuleKind string

const (
	RuleRequired    RuleKind = "required"
	RuleMinLength   RuleKind = "min"
	RuleExactLength RuleKind = "len"
	RulePattern     RuleKind = "pattern"
	RuleEmail       RuleKind = "email"
)

// Rule is one validation constraint with its user-facing message. Only the
// parameter matching the kind is meaningful; the rest stay zero.
type Rule struct {
	Kind    RuleKind
	Min     int
	Len     int
	Pattern string
	Message string

	re *regexp.Regexp
}

// emailRe accepts anything of the form local@domain.tld, which is as strict
// as the original validation this mirrors.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Check evaluates the rule against the string form of a field value.
// An empty value only ever fails the required rule; the remaining rules
// pass on empty input so that optional fields stay optional.
func (r Rule) Check(value string) bool {
	switch r.Kind {
	case RuleRequired:
		return strings.TrimSpace(value) != ""
	case RuleMinLength:
		return value == "" || len([]rune(value)) >= r.Min
	case RuleExactLength:
		return value == "" || len([]rune(value)) == r.Len
	case RulePattern:
		return value == "" || (r.re != nil && r.re.MatchString(value))
	case RuleEmail:
		return value == "" || emailRe.MatchString(value)
	default:
		return true
	}
}

// Field is the static metadata for one schema field.
type Field struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Rules       []Rule
}

// Validate evaluates the field's rules in declaration order and returns the
// message of the first failing rule. ok is true when every rule passes.
func (f Field) Validate(value string) (msg string, ok bool) {
	for _, r := range f.Rules {
		if !r.Check(value) {
			return r.Message, false
		}
	}
	return "", true
}

// Schema is an ordered sequence of field descriptors. Order defines both
// form layout and table column order.
type Schema struct {
	Fields []Field
}

// FieldNames returns the field names in schema order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field with the given name, if present.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
