package registry

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/oapi-codegen/runtime/types"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/form"
	"github.com/aretw0/espalier/pkg/mapper"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/schema"
	"github.com/aretw0/espalier/pkg/transform"
	"github.com/aretw0/espalier/pkg/validate"
)

func builtins() []FieldType {
	return []FieldType{
		scalarType{name: "text", view: []ports.ValueTransformer{transform.Trim{}}},
		scalarType{name: "textarea"},
		scalarType{name: "integer", view: []ports.ValueTransformer{transform.Integer{}}},
		scalarType{name: "number", view: []ports.ValueTransformer{transform.Number{}}},
		scalarType{name: "date", view: []ports.ValueTransformer{transform.Date{}}, defaults: parseDateDefault},
		checkboxType{},
		choiceType{},
		scalarType{name: "json", view: []ports.ValueTransformer{transform.JSON{}}},
		groupType{},
	}
}

// baseConfig applies the wire-format flags shared by every field type.
func baseConfig(f schema.Field) *form.ConfigBuilder {
	b := form.NewConfig(f.Name).
		Required(f.Required).
		Disabled(f.Disabled).
		Locked(f.Locked).
		ByReference(f.ByReference).
		BubbleErrors(f.BubbleErrors)
	if f.Required {
		b.Validate(validate.Required())
	}
	if f.Rules != "" {
		b.Validate(validate.Rules(f.Rules))
	}
	return b
}

// scalarType covers every non-compound builtin: the differences are the view
// chain and an optional default-value coercion.
type scalarType struct {
	name     string
	view     []ports.ValueTransformer
	defaults func(any) (domain.Value, error)
}

func (t scalarType) Name() string { return t.name }

func (t scalarType) Config(f schema.Field) (*form.Config, error) {
	b := baseConfig(f)
	if len(t.view) > 0 {
		b.ViewTransformers(t.view...)
		// The presentation side of a transformed scalar field is always
		// text.
		b.Constraint(domain.Kinds(domain.KindScalar))
	}
	if f.Default != nil {
		def := domain.ValueOf(f.Default)
		if t.defaults != nil {
			coerced, err := t.defaults(f.Default)
			if err != nil {
				return nil, err
			}
			def = coerced
		}
		b.Default(def)
	}
	return b.Build()
}

// parseDateDefault accepts calendar text in definitions and turns it into
// the storage representation.
func parseDateDefault(raw any) (domain.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return domain.ValueOf(raw), nil
	}
	if s == "" {
		return domain.Null(), nil
	}
	t, err := time.Parse(types.DateFormat, s)
	if err != nil {
		return domain.Null(), errors.Newf("default %q is not a valid date (want %s)", s, types.DateFormat)
	}
	return domain.Opaque(types.Date{Time: t}), nil
}

// checkboxType binds a boolean through checkbox semantics: absent and empty
// submissions mean unchecked.
type checkboxType struct{}

func (checkboxType) Name() string { return "checkbox" }

func (checkboxType) Config(f schema.Field) (*form.Config, error) {
	b := baseConfig(f).
		ViewTransformers(transform.Boolean{}).
		// An unchecked box submits nothing; the reverse pass turns the
		// substituted Null into false.
		EmptyValue(func(*form.Node, domain.Value) domain.Value { return domain.Null() })
	if f.Default != nil {
		b.Default(domain.ValueOf(f.Default))
	}
	return b.Build()
}

// choiceType restricts the value to a configured option list.
type choiceType struct{}

func (choiceType) Name() string { return "choice" }

func (choiceType) Config(f schema.Field) (*form.Config, error) {
	if len(f.Options) == 0 {
		return nil, errors.Newf("choice field %q has no options", f.Name)
	}
	values := make(map[string]domain.Value, len(f.Options))
	order := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		values[opt.Value] = domain.Scalar(opt.Value)
		order = append(order, opt.Value)
	}
	b := baseConfig(f).
		ViewTransformers(transform.NewChoice(values, order)).
		Constraint(domain.Kinds(domain.KindScalar))
	if f.Default != nil {
		b.Default(domain.ValueOf(f.Default))
	}
	return b.Build()
}

// groupType is the compound builtin; its children are assembled by the
// registry from the nested field definitions.
type groupType struct{}

func (groupType) Name() string { return "group" }

func (groupType) Config(f schema.Field) (*form.Config, error) {
	b := baseConfig(f).Compound(mapper.Structured{})
	if f.Default != nil {
		b.Default(domain.ValueOf(f.Default))
	}
	return b.Build()
}
