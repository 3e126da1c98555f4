package schema

// Form is the wire-format definition of a bindable form. Definition sources
// (memory, file, loam, redis, openapi) produce Forms; the registry turns them
// into node trees.
type Form struct {
	// Name identifies the form. It becomes the root node name.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Title is a human-readable heading for presentation layers.
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`

	// Help is free-form descriptive text (markdown allowed).
	Help string `json:"help,omitempty" yaml:"help,omitempty" mapstructure:"help"`

	// Fields are the top-level fields, in declaration order.
	Fields []Field `json:"fields" yaml:"fields" mapstructure:"fields"`
}

// Field is the wire-format definition of a single field. A field of type
// "group" nests further Fields and becomes a compound node.
type Field struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Type        string `json:"type" yaml:"type" mapstructure:"type"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Help        string `json:"help,omitempty" yaml:"help,omitempty" mapstructure:"help"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" mapstructure:"placeholder"`

	Required bool `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty" mapstructure:"disabled"`

	// Locked freezes the field to its default: SetValue calls with a
	// different value are silently ignored.
	Locked bool `json:"locked,omitempty" yaml:"locked,omitempty" mapstructure:"locked"`

	// ByReference disables the defensive copy of object-like values.
	ByReference bool `json:"by_reference,omitempty" yaml:"by_reference,omitempty" mapstructure:"by_reference"`

	// BubbleErrors forwards errors added to this field up to its parent.
	BubbleErrors bool `json:"bubble_errors,omitempty" yaml:"bubble_errors,omitempty" mapstructure:"bubble_errors"`

	// Default is the initial value in storage format.
	Default any `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`

	// Options constrain choice fields to a fixed set.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`

	// Rules is a go-playground/validator tag string applied after binding
	// (e.g. "required,email" or "min=0,max=100").
	Rules string `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`

	// Fields nests child definitions for group fields.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
}

// Option is one admissible value of a choice field. Value is the storage
// representation, Label what presentation layers display.
type Option struct {
	Value string `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// FieldNames returns the names of the form's top-level fields in order.
func (f Form) FieldNames() []string {
	names := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		names[i] = field.Name
	}
	return names
}

// Field returns the top-level field with the given name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
