package console

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/urmhq/urm/internal/form"
	"github.com/urmhq/urm/internal/manager"
	"github.com/urmhq/urm/internal/schema"
	"github.com/urmhq/urm/internal/table"
)

//go:embed templates/*
var templateFS embed.FS

// formField is one schema field prepared for template rendering.
type formField struct {
	Name        string
	Label       string
	Placeholder string
	Widget      string // "text" | "number" | "email" | "date" | "textarea"
	Value       string
	Error       string
}

// pageData is everything the page template needs.
type pageData struct {
	Fields     []schema.Field
	State      manager.State
	View       table.View
	FormFields []formField
	EditingID  string
	Notices    []manager.Notice
	ConfirmID  string
	Query      string
	Page       int
}

var widgetNames = map[schema.Widget]string{
	schema.WidgetTextInput:   "text",
	schema.WidgetNumberInput: "number",
	schema.WidgetEmailInput:  "email",
	schema.WidgetDateInput:   "date",
	schema.WidgetTextarea:    "textarea",
}

// buildFormFields pairs schema fields with their current form state.
func buildFormFields(s schema.Schema, f *form.Form) []formField {
	out := make([]formField, 0, len(s.Fields))
	for _, fld := range s.Fields {
		out = append(out, formField{
			Name:        fld.Name,
			Label:       fld.Label,
			Placeholder: fld.Placeholder,
			Widget:      widgetNames[schema.WidgetFor(fld.Type)],
			Value:       f.Values[fld.Name],
			Error:       f.Error(fld.Name),
		})
	}
	return out
}

func parseTemplates() *template.Template {
	funcMap := template.FuncMap{
		"inc":     func(n int) int { return n + 1 },
		"dec":     func(n int) int { return n - 1 },
		"isEmail": func(f schema.Field) bool { return f.Type == schema.TypeEmail },
	}
	tmpl, err := template.New("page").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(fmt.Sprintf("parsing templates: %v", err))
	}
	return tmpl
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page.html.tmpl", data); err != nil {
		log.Printf("console: render: %v", err)
	}
}
