package dsl

import "github.com/aretw0/espalier/pkg/schema"

// FieldBuilder provides a fluent API for configuring the field that was just
// added.
type FieldBuilder struct {
	builder *Builder
	index   int
}

func (f *FieldBuilder) field() *schema.Field {
	return &f.builder.form.Fields[f.index]
}

// Label sets the display label.
func (f *FieldBuilder) Label(label string) *FieldBuilder {
	f.field().Label = label
	return f
}

// Help sets the field's descriptive text.
func (f *FieldBuilder) Help(help string) *FieldBuilder {
	f.field().Help = help
	return f
}

// Placeholder sets the presentation placeholder text.
func (f *FieldBuilder) Placeholder(p string) *FieldBuilder {
	f.field().Placeholder = p
	return f
}

// Required marks the field as required.
func (f *FieldBuilder) Required() *FieldBuilder {
	f.field().Required = true
	return f
}

// Disabled marks the field as disabled; it binds to its current value and
// ignores submissions.
func (f *FieldBuilder) Disabled() *FieldBuilder {
	f.field().Disabled = true
	return f
}

// Locked freezes the field to its default value.
func (f *FieldBuilder) Locked() *FieldBuilder {
	f.field().Locked = true
	return f
}

// ByReference disables defensive copying of object-like values.
func (f *FieldBuilder) ByReference() *FieldBuilder {
	f.field().ByReference = true
	return f
}

// BubbleErrors forwards the field's errors to its parent.
func (f *FieldBuilder) BubbleErrors() *FieldBuilder {
	f.field().BubbleErrors = true
	return f
}

// Default sets the initial storage-format value.
func (f *FieldBuilder) Default(v any) *FieldBuilder {
	f.field().Default = v
	return f
}

// Rules sets the go-playground validator tag string applied after binding.
func (f *FieldBuilder) Rules(rules string) *FieldBuilder {
	f.field().Rules = rules
	return f
}

// Field returns a copy of the underlying wire-format definition.
func (f *FieldBuilder) Field() schema.Field {
	return *f.field()
}
