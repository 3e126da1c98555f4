package form

import (
	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/transform"
)

// DefaultFunc supplies a node's default storage value lazily, evaluated on
// first access when no explicit value was set.
type DefaultFunc func(n *Node) domain.Value

// EmptyFunc supplies the value substituted for an empty working presentation
// value during bind. It receives the node and the empty value it replaces.
type EmptyFunc func(n *Node, v domain.Value) domain.Value

// Config is the frozen descriptor a node is built from. It is produced by a
// ConfigBuilder, shared between the tree and its owner, and never mutated
// after Build.
type Config struct {
	name         string
	compound     bool
	mapper       DataMapper
	modelChain   transform.Chain
	viewChain    transform.Chain
	defaultValue DefaultFunc
	emptyValue   EmptyFunc
	dataLocked   bool
	byReference  bool
	required     bool
	disabled     bool
	bubbleErrors bool
	propertyPath string
	constraint   domain.Constraint
	listeners    map[domain.Stage][]Listener
	validators   []Validator
}

// Name returns the configured node name. Only parentless roots may be
// anonymous.
func (c *Config) Name() string { return c.name }

// Compound reports whether nodes built from this config derive their value
// from children through the data mapper.
func (c *Config) Compound() bool { return c.compound }

// Mapper returns the data mapper, non-nil iff Compound.
func (c *Config) Mapper() DataMapper { return c.mapper }

// Required returns the configured required flag, before parent resolution.
func (c *Config) Required() bool { return c.required }

// Disabled returns the configured disabled flag, before parent resolution.
func (c *Config) Disabled() bool { return c.disabled }

// Locked reports whether SetValue ignores values differing from the default.
func (c *Config) Locked() bool { return c.dataLocked }

// ByReference reports whether defensive copying is disabled.
func (c *Config) ByReference() bool { return c.byReference }

// BubbleErrors reports whether errors added to the node forward to its
// parent.
func (c *Config) BubbleErrors() bool { return c.bubbleErrors }

// PropertyPath returns the path mappers address this node's slot with. It
// defaults to the node name.
func (c *Config) PropertyPath() string {
	if c.propertyPath != "" {
		return c.propertyPath
	}
	return c.name
}

// Constraint returns the presentation shape constraint, or nil.
func (c *Config) Constraint() domain.Constraint { return c.constraint }

// ConfigBuilder assembles an immutable Config. The zero value is not usable;
// start with NewConfig.
type ConfigBuilder struct {
	cfg Config
}

// NewConfig starts a config for a node with the given name. An empty name is
// allowed only for nodes that will never be attached to a parent.
func NewConfig(name string) *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{name: name}}
}

// Compound marks the node as compound and installs the mapper that
// reconciles its value with its children. The mapper is mandatory.
func (b *ConfigBuilder) Compound(m DataMapper) *ConfigBuilder {
	b.cfg.compound = true
	b.cfg.mapper = m
	return b
}

// ModelTransformers sets the ordered storage<->normalized chain.
func (b *ConfigBuilder) ModelTransformers(ts ...ports.ValueTransformer) *ConfigBuilder {
	b.cfg.modelChain = transform.NewChain(ts...)
	return b
}

// ViewTransformers sets the ordered normalized<->presentation chain.
func (b *ConfigBuilder) ViewTransformers(ts ...ports.ValueTransformer) *ConfigBuilder {
	b.cfg.viewChain = transform.NewChain(ts...)
	return b
}

// Default sets a fixed default storage value.
func (b *ConfigBuilder) Default(v domain.Value) *ConfigBuilder {
	b.cfg.defaultValue = func(*Node) domain.Value { return v }
	return b
}

// DefaultFunc sets a lazy default-value supplier evaluated on first access.
func (b *ConfigBuilder) DefaultFunc(fn DefaultFunc) *ConfigBuilder {
	b.cfg.defaultValue = fn
	return b
}

// EmptyValue sets the supplier substituted for an empty working value during
// bind.
func (b *ConfigBuilder) EmptyValue(fn EmptyFunc) *ConfigBuilder {
	b.cfg.emptyValue = fn
	return b
}

// Required marks the node as required, subject to parent relaxation.
func (b *ConfigBuilder) Required(required bool) *ConfigBuilder {
	b.cfg.required = required
	return b
}

// Disabled marks the node as disabled. Disabled nodes bind to their current
// value, ignoring submissions.
func (b *ConfigBuilder) Disabled(disabled bool) *ConfigBuilder {
	b.cfg.disabled = disabled
	return b
}

// Locked freezes the node to its default: SetValue calls with a different
// value are silently ignored.
func (b *ConfigBuilder) Locked(locked bool) *ConfigBuilder {
	b.cfg.dataLocked = locked
	return b
}

// ByReference disables the defensive copy of object-like values on SetValue.
func (b *ConfigBuilder) ByReference(byRef bool) *ConfigBuilder {
	b.cfg.byReference = byRef
	return b
}

// BubbleErrors forwards errors added to the node up to its parent.
func (b *ConfigBuilder) BubbleErrors(bubble bool) *ConfigBuilder {
	b.cfg.bubbleErrors = bubble
	return b
}

// PropertyPath overrides the path mappers address this node with.
func (b *ConfigBuilder) PropertyPath(path string) *ConfigBuilder {
	b.cfg.propertyPath = path
	return b
}

// Constraint installs a presentation shape constraint checked after the
// forward transform; non-empty values violating it fail SetValue with
// domain.ErrTypeMismatch.
func (b *ConfigBuilder) Constraint(c domain.Constraint) *ConfigBuilder {
	b.cfg.constraint = c
	return b
}

// On registers a hook listener for the given stage. Listeners run
// synchronously in registration order.
func (b *ConfigBuilder) On(stage domain.Stage, l Listener) *ConfigBuilder {
	if b.cfg.listeners == nil {
		b.cfg.listeners = make(map[domain.Stage][]Listener)
	}
	b.cfg.listeners[stage] = append(b.cfg.listeners[stage], l)
	return b
}

// Validate registers validators invoked after bind, in order.
func (b *ConfigBuilder) Validate(vs ...Validator) *ConfigBuilder {
	b.cfg.validators = append(b.cfg.validators, vs...)
	return b
}

// Build freezes and returns the config. It enforces the structural
// invariants: compound requires a mapper, and a mapper requires compound.
func (b *ConfigBuilder) Build() (*Config, error) {
	if b.cfg.compound && b.cfg.mapper == nil {
		return nil, errors.Newf("config %q: compound node requires a data mapper", b.cfg.name)
	}
	if !b.cfg.compound && b.cfg.mapper != nil {
		return nil, errors.Newf("config %q: data mapper requires a compound node", b.cfg.name)
	}
	cfg := b.cfg
	return &cfg, nil
}

// MustBuild is Build for static configs known to be valid; it panics on
// error.
func (b *ConfigBuilder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}
