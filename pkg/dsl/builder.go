package dsl

import (
	"github.com/aretw0/espalier/pkg/form"
	"github.com/aretw0/espalier/pkg/registry"
	"github.com/aretw0/espalier/pkg/schema"
)

// Builder assembles a form definition in code, field by field.
type Builder struct {
	form schema.Form
}

// New creates a builder for a form with the given name.
func New(name string) *Builder {
	return &Builder{form: schema.Form{Name: name}}
}

// Title sets the human-readable form heading.
func (b *Builder) Title(title string) *Builder {
	b.form.Title = title
	return b
}

// Help sets the form's descriptive text.
func (b *Builder) Help(help string) *Builder {
	b.form.Help = help
	return b
}

func (b *Builder) add(f schema.Field) *FieldBuilder {
	b.form.Fields = append(b.form.Fields, f)
	// Index, not pointer: later appends may reallocate the slice.
	return &FieldBuilder{builder: b, index: len(b.form.Fields) - 1}
}

// Text adds a single-line text field.
func (b *Builder) Text(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "text"})
}

// Textarea adds a multi-line text field.
func (b *Builder) Textarea(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "textarea"})
}

// Integer adds a whole-number field.
func (b *Builder) Integer(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "integer"})
}

// Number adds a decimal-number field.
func (b *Builder) Number(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "number"})
}

// Checkbox adds a boolean field with checkbox submission semantics.
func (b *Builder) Checkbox(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "checkbox"})
}

// Date adds a calendar-date field ("2006-01-02" presentation).
func (b *Builder) Date(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "date"})
}

// Choice adds a field restricted to the given options.
func (b *Builder) Choice(name string, options ...schema.Option) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "choice", Options: options})
}

// JSON adds a structured field edited as JSON text.
func (b *Builder) JSON(name string) *FieldBuilder {
	return b.add(schema.Field{Name: name, Type: "json"})
}

// Group adds a compound field; fn populates its children on a nested
// builder.
func (b *Builder) Group(name string, fn func(g *Builder)) *FieldBuilder {
	nested := New(name)
	fn(nested)
	return b.add(schema.Field{Name: name, Type: "group", Fields: nested.form.Fields})
}

// Form returns the accumulated wire-format definition.
func (b *Builder) Form() schema.Form {
	return b.form
}

// Build validates the definition and compiles it into a node tree. A nil
// registry means the built-in field types.
func (b *Builder) Build(r *registry.Registry) (*form.Node, error) {
	if r == nil {
		r = registry.Default()
	}
	if err := schema.Validate(b.form); err != nil {
		return nil, err
	}
	return r.Build(b.form)
}
