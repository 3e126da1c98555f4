package registry

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/form"
	"github.com/aretw0/espalier/pkg/mapper"
	"github.com/aretw0/espalier/pkg/schema"
)

// FieldType turns a wire-format field definition into a frozen node config.
// Implementations bundle the transformer chains, constraints and validators
// that give a field type its behavior.
type FieldType interface {
	// Name returns the type name fields reference (e.g. "integer").
	Name() string

	// Config builds the node config for one field of this type.
	Config(f schema.Field) (*form.Config, error)
}

// Registry manages the available field types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]FieldType
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]FieldType)}
}

// Default creates a registry pre-populated with the built-in field types:
// text, textarea, integer, number, checkbox, date, choice, json and group.
func Default() *Registry {
	r := New()
	for _, t := range builtins() {
		r.Register(t)
	}
	return r
}

// Register adds a field type. An existing type with the same name is
// overwritten, which is how callers shadow a builtin.
func (r *Registry) Register(t FieldType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.Name()] = t
}

// Lookup returns the field type with the given name.
func (r *Registry) Lookup(name string) (FieldType, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Newf("unknown field type: %s", name)
	}
	return t, nil
}

// Types returns the registered type names, unsorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// Build compiles a form definition into a live node tree: a compound root
// named after the form with one child per field, groups recursing. The
// definition should have passed schema.Validate first; structural problems
// surface as build errors regardless.
func (r *Registry) Build(f schema.Form) (*form.Node, error) {
	rootCfg, err := form.NewConfig(f.Name).
		Compound(mapper.Structured{}).
		Build()
	if err != nil {
		return nil, err
	}
	root := form.New(rootCfg)
	for _, field := range f.Fields {
		child, err := r.buildField(field)
		if err != nil {
			return nil, errors.Wrapf(err, "form %q", f.Name)
		}
		if err := root.Add(child); err != nil {
			return nil, errors.Wrapf(err, "form %q", f.Name)
		}
	}
	return root, nil
}

func (r *Registry) buildField(f schema.Field) (*form.Node, error) {
	t, err := r.Lookup(typeName(f))
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", f.Name)
	}
	cfg, err := t.Config(f)
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", f.Name)
	}
	node := form.New(cfg)
	if cfg.Compound() {
		for _, nested := range f.Fields {
			child, err := r.buildField(nested)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", f.Name)
			}
			if err := node.Add(child); err != nil {
				return nil, errors.Wrapf(err, "field %q", f.Name)
			}
		}
	}
	return node, nil
}

// typeName resolves a field's type with the wire-format defaults: nested
// fields imply "group", everything else falls back to "text".
func typeName(f schema.Field) string {
	if f.Type != "" {
		return f.Type
	}
	if len(f.Fields) > 0 {
		return "group"
	}
	return "text"
}
