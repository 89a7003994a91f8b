package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgform "github.com/goliatone/go-sitegen/pkg/form"
)

// Parser implements pkgform.Parser using kin-openapi.
type Parser struct {
	options pkgform.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgform.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgform.ParserOptions) pkgform.Parser {
	return &Parser{options: options}
}

// ContactForm locates the operation and converts its request body schema into
// a Form. When operationID is empty the first POST operation with a request
// body is used.
func (p *Parser) ContactForm(ctx context.Context, doc []byte, operationID string) (pkgform.Form, error) {
	if err := ctx.Err(); err != nil {
		return pkgform.Form{}, err
	}
	if len(doc) == 0 {
		return pkgform.Form{}, errors.New("form parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(doc)
	if err != nil {
		return pkgform.Form{}, fmt.Errorf("form parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgform.Form{}, fmt.Errorf("form parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return pkgform.Form{}, errors.New("form parser: document does not contain any paths")
	}

	path, operation, err := findOperation(spec, operationID)
	if err != nil {
		return pkgform.Form{}, err
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return pkgform.Form{}, fmt.Errorf("form parser: operation %q has no request body schema", operationID)
	}

	result := pkgform.Form{
		Name:   operation.OperationID,
		Method: "POST",
		Action: path,
		Fields: convertFields(schema),
	}
	if err := result.Validate(); err != nil {
		return pkgform.Form{}, err
	}
	return result, nil
}

func findOperation(spec *openapi3.T, operationID string) (string, *openapi3.Operation, error) {
	paths := make([]string, 0, spec.Paths.Len())
	for path := range spec.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := spec.Paths.Value(path)
		if item == nil || item.Post == nil {
			continue
		}
		if operationID == "" || item.Post.OperationID == operationID {
			return path, item.Post, nil
		}
	}
	if operationID == "" {
		return "", nil, errors.New("form parser: no POST operation found")
	}
	return "", nil, fmt.Errorf("form parser: operation %q not found", operationID)
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "application/json", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertFields(schema *openapi3.Schema) []pkgform.Field {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]pkgform.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value

		field := pkgform.Field{
			Name:        name,
			Label:       pkgform.LabelFromName(name),
			Kind:        fieldKind(name, property),
			Placeholder: property.Description,
		}
		if property.Title != "" {
			field.Label = property.Title
		}
		if _, ok := required[name]; ok {
			field.Required = true
		}
		if property.MaxLength != nil {
			field.MaxLength = int(*property.MaxLength)
		}
		fields = append(fields, field)
	}
	return fields
}

func fieldKind(name string, property *openapi3.Schema) pkgform.FieldKind {
	if property.Format == "email" {
		return pkgform.FieldKindEmail
	}
	if multiline, ok := property.Extensions["x-multiline"].(bool); ok && multiline {
		return pkgform.FieldKindTextarea
	}
	// Long free-text fields render as textareas even without the extension.
	if strings.EqualFold(name, "message") || (property.MaxLength != nil && *property.MaxLength > 200) {
		return pkgform.FieldKindTextarea
	}
	return pkgform.FieldKindText
}
