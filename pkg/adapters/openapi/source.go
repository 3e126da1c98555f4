// Package openapi derives form definitions from the component schemas of an
// OpenAPI 3 document: every named object schema becomes a form, its
// properties become fields.
package openapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// Source implements ports.DefinitionSource over an OpenAPI document. Forms
// are derived once at construction; the document is the single source of
// truth and is never mutated.
type Source struct {
	forms map[string]schema.Form
}

// NewFromFile loads an OpenAPI document from disk and derives forms from
// its component schemas.
func NewFromFile(path string) (*Source, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load OpenAPI document %q", path)
	}
	return New(doc)
}

// NewFromData derives forms from raw OpenAPI document bytes (YAML or JSON).
func NewFromData(data []byte) (*Source, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load OpenAPI document")
	}
	return New(doc)
}

// New derives forms from an already-loaded document. Only object schemas
// under components/schemas yield forms; other shapes are skipped.
func New(doc *openapi3.T) (*Source, error) {
	s := &Source{forms: make(map[string]schema.Form)}
	if doc.Components == nil {
		return s, nil
	}
	for name, ref := range doc.Components.Schemas {
		sc := ref.Value
		if sc == nil || !sc.Type.Is(openapi3.TypeObject) {
			continue
		}
		f, err := formFromSchema(name, sc)
		if err != nil {
			return nil, errors.Wrapf(err, "schema %q", name)
		}
		s.forms[name] = f
	}
	return s, nil
}

// Get retrieves a derived definition by schema name.
func (s *Source) Get(ctx context.Context, name string) (schema.Form, error) {
	f, ok := s.forms[name]
	if !ok {
		return schema.Form{}, errors.Wrapf(domain.ErrDefinitionNotFound, "%q", name)
	}
	return f, nil
}

// List returns the derived form names, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func formFromSchema(name string, sc *openapi3.Schema) (schema.Form, error) {
	fields, err := fieldsFromSchema(sc)
	if err != nil {
		return schema.Form{}, err
	}
	return schema.Form{
		Name:   name,
		Title:  sc.Title,
		Help:   sc.Description,
		Fields: fields,
	}, nil
}

func fieldsFromSchema(sc *openapi3.Schema) ([]schema.Field, error) {
	required := make(map[string]bool, len(sc.Required))
	for _, r := range sc.Required {
		required[r] = true
	}

	// Property maps carry no declaration order; sort for a stable tree.
	names := make([]string, 0, len(sc.Properties))
	for propName := range sc.Properties {
		names = append(names, propName)
	}
	sort.Strings(names)

	fields := make([]schema.Field, 0, len(names))
	for _, propName := range names {
		prop := sc.Properties[propName].Value
		if prop == nil {
			continue
		}
		field, err := fieldFromProperty(propName, prop)
		if err != nil {
			return nil, err
		}
		field.Required = required[propName]
		fields = append(fields, field)
	}
	return fields, nil
}

func fieldFromProperty(name string, prop *openapi3.Schema) (schema.Field, error) {
	field := schema.Field{
		Name:    name,
		Label:   prop.Title,
		Help:    prop.Description,
		Default: prop.Default,
	}

	switch {
	case len(prop.Enum) > 0:
		field.Type = "choice"
		for _, e := range prop.Enum {
			field.Options = append(field.Options, schema.Option{Value: fmt.Sprintf("%v", e)})
		}
	case prop.Type.Is(openapi3.TypeString):
		switch prop.Format {
		case "date":
			field.Type = "date"
		default:
			field.Type = "text"
		}
	case prop.Type.Is(openapi3.TypeInteger):
		field.Type = "integer"
	case prop.Type.Is(openapi3.TypeNumber):
		field.Type = "number"
	case prop.Type.Is(openapi3.TypeBoolean):
		field.Type = "checkbox"
	case prop.Type.Is(openapi3.TypeObject):
		nested, err := fieldsFromSchema(prop)
		if err != nil {
			return schema.Field{}, err
		}
		field.Type = "group"
		field.Fields = nested
	default:
		return schema.Field{}, errors.Newf("property %q: unsupported schema type %v", name, prop.Type)
	}

	return field, nil
}
