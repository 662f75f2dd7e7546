package schema

import (
	_ "embed"
	"fmt"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed user.cue
var userCUE []byte

// cueRule and cueField mirror the CUE definitions for decoding.
type cueRule struct {
	Kind    string `json:"kind"`
	Min     int    `json:"min"`
	Len     int    `json:"len"`
	Pattern string `json:"pattern"`
	Message string `json:"message"`
}

type cueField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        string    `json:"type"`
	Placeholder string    `json:"placeholder"`
	Rules       []cueRule `json:"rules"`
}

// fieldTypes maps CUE type names to FieldType tags.
var fieldTypes = map[string]FieldType{
	"text":     TypeText,
	"number":   TypeNumber,
	"email":    TypeEmail,
	"date":     TypeDate,
	"textarea": TypeTextarea,
}

// LoadUser decodes the embedded user schema. Called once at process start.
func LoadUser() (Schema, error) {
	return parse(userCUE)
}

// MustLoadUser is LoadUser for callers where a broken embedded schema is a
// programming error.
func MustLoadUser() Schema {
	s, err := LoadUser()
	if err != nil {
		panic(err)
	}
	return s
}

func parse(src []byte) (Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src)
	if err := v.Err(); err != nil {
		return Schema{}, fmt.Errorf("compiling schema: %w", err)
	}

	var raw []cueField
	fv := v.LookupPath(cue.ParsePath("fields"))
	if err := fv.Decode(&raw); err != nil {
		return Schema{}, fmt.Errorf("decoding fields: %w", err)
	}

	s := Schema{Fields: make([]Field, 0, len(raw))}
	for _, cf := range raw {
		f := Field{
			Name:        cf.Name,
			Label:       cf.Label,
			Type:        fieldTypes[cf.Type], // unknown types fall back to text
			Placeholder: cf.Placeholder,
		}
		for _, cr := range cf.Rules {
			r := Rule{
				Kind:    RuleKind(cr.Kind),
				Min:     cr.Min,
				Len:     cr.Len,
				Pattern: cr.Pattern,
				Message: cr.Message,
			}
			if r.Kind == RulePattern {
				re, err := regexp.Compile(r.Pattern)
				if err != nil {
					return Schema{}, fmt.Errorf("field %s: bad pattern %q: %w", f.Name, r.Pattern, err)
				}
				r.re = re
			}
			f.Rules = append(f.Rules, r)
		}
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}
