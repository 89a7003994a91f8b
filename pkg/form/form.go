// Package form models the contact form rendered on the site. The form shape
// is derived from an OpenAPI operation so the static pages and the submission
// endpoint share one definition.
package form

import (
	"context"
	"errors"
	"strings"
)

// FieldKind selects the control a field renders as.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTextarea FieldKind = "textarea"
	FieldKindHidden   FieldKind = "hidden"
)

// Field is one input of the contact form.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Required    bool
	MaxLength   int
}

// Form describes the contact form's submission target and fields.
type Form struct {
	Name   string
	Method string
	Action string
	Fields []Field
}

// Validate checks the invariants renderers rely on.
func (f Form) Validate() error {
	if f.Action == "" {
		return errors.New("form: action is required")
	}
	if len(f.Fields) == 0 {
		return errors.New("form: at least one field is required")
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field.Name == "" {
			return errors.New("form: field name is required")
		}
		if _, dup := seen[field.Name]; dup {
			return errors.New("form: duplicate field " + field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

// Field returns the named field, if present.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Parser extracts a Form from an OpenAPI document payload.
type Parser interface {
	ContactForm(ctx context.Context, doc []byte, operationID string) (Form, error)
}

// ParserOptions configures parser construction.
type ParserOptions struct {
	// ResolveReferences validates the document and follows $ref entries.
	ResolveReferences bool
}

// LabelFromName derives a display label from a snake_case or kebab-case
// field name.
func LabelFromName(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
