package form

import (
	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
)

// initState is the three-phase initialization lifecycle of a node. The
// intermediate Initializing phase is what turns a hook re-entering SetValue
// into a detectable ErrCyclicSetValue instead of unbounded recursion.
type initState uint8

const (
	stateNotInitialized initState = iota
	stateInitializing
	stateInitialized
)

// Node is the stateful unit of a form tree. It holds the same logical value
// in three representations (storage, normalized, presentation), converts
// between them through its config's transformer chains, and reconciles
// submitted presentation input back into storage format during Bind.
//
// Nodes are not safe for concurrent use; callers serialize externally,
// typically by building one tree per request.
type Node struct {
	config *Config

	parent   *Node
	children []*Node
	byName   map[string]int

	storage      domain.Value
	normalized   domain.Value
	presentation domain.Value

	init         initState
	bound        bool
	synchronized bool
	extra        *domain.Structured
	errors       []Error
}

// New builds a node from a frozen config. The three value slots start unset;
// they are populated on first access or by an explicit SetValue.
func New(config *Config) *Node {
	return &Node{
		config:       config,
		byName:       make(map[string]int),
		synchronized: true,
		extra:        domain.NewStructured(),
	}
}

// Name returns the node's configured name.
func (n *Node) Name() string { return n.config.name }

// Config returns the frozen config the node was built from.
func (n *Node) Config() *Config { return n.config }

// Parent returns the parent node, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Root walks the parent chain to the tree root.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Compound reports whether the node's value is derived from children via the
// data mapper.
func (n *Node) Compound() bool { return n.config.compound }

// Bound reports whether the node has processed a submission.
func (n *Node) Bound() bool { return n.bound }

// Initialized reports whether the value slots have been populated.
func (n *Node) Initialized() bool { return n.init == stateInitialized }

// Synchronized reports whether the three value slots are mutually derivable
// through the transformer chains. It turns false when the reverse pipeline
// fails during Bind; callers should treat a desynchronized node like a
// validation failure even though no error record is added.
func (n *Node) Synchronized() bool { return n.synchronized }

// Required resolves the effective required flag: a child under a
// non-required parent is never required.
func (n *Node) Required() bool {
	if n.parent != nil && !n.parent.Required() {
		return false
	}
	return n.config.required
}

// Disabled resolves the effective disabled flag: a child under a disabled
// parent is always disabled.
func (n *Node) Disabled() bool {
	if n.parent != nil && n.parent.Disabled() {
		return true
	}
	return n.config.disabled
}

// Add attaches a child. Only compound nodes take children: binding routes
// submissions through the mapper, so a mapper-less parent would strand its
// children unbound. The tree is frozen once the node is bound, children
// must be named, and sibling names are unique.
func (n *Node) Add(child *Node) error {
	if !n.config.compound {
		return errors.Wrapf(domain.ErrNotCompound, "add %q to %q", child.Name(), n.Name())
	}
	if n.bound {
		return errors.Wrapf(domain.ErrAlreadyBound, "add %q to %q", child.Name(), n.Name())
	}
	if child.bound {
		return errors.Wrapf(domain.ErrAlreadyBound, "add bound node %q", child.Name())
	}
	if child.Name() == "" {
		return errors.WithStack(domain.ErrUnnamedChild)
	}
	if _, exists := n.byName[child.Name()]; exists {
		return errors.Wrapf(domain.ErrDuplicateChild, "%q under %q", child.Name(), n.Name())
	}
	child.parent = n
	n.byName[child.Name()] = len(n.children)
	n.children = append(n.children, child)
	return nil
}

// Remove detaches the named child. Missing names are ignored; a bound tree
// is frozen.
func (n *Node) Remove(name string) error {
	if n.bound {
		return errors.Wrapf(domain.ErrAlreadyBound, "remove %q from %q", name, n.Name())
	}
	i, ok := n.byName[name]
	if !ok {
		return nil
	}
	n.children[i].parent = nil
	n.children = append(n.children[:i], n.children[i+1:]...)
	delete(n.byName, name)
	for j := i; j < len(n.children); j++ {
		n.byName[n.children[j].Name()] = j
	}
	return nil
}

// Get returns the named child.
func (n *Node) Get(name string) (*Node, bool) {
	i, ok := n.byName[name]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// Children returns the children in insertion order. The slice is a copy; the
// nodes are shared.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Default evaluates the configured default storage value.
func (n *Node) Default() domain.Value {
	if n.config.defaultValue == nil {
		return domain.Null()
	}
	return n.config.defaultValue(n)
}

// emptyValue evaluates the configured bind-time replacement for an empty
// working value. Without a supplier the empty value stands.
func (n *Node) emptyValue(v domain.Value) domain.Value {
	if n.config.emptyValue == nil {
		return v
	}
	return n.config.emptyValue(n, v)
}

// ensureInitialized lazily runs SetValue with the default when the slots
// were never populated.
func (n *Node) ensureInitialized() error {
	if n.init != stateNotInitialized {
		return nil
	}
	return n.SetValue(n.Default())
}

// StorageValue returns the storage-format slot, initializing the node with
// its default first when needed.
func (n *Node) StorageValue() (domain.Value, error) {
	if err := n.ensureInitialized(); err != nil {
		return domain.Null(), err
	}
	return n.storage, nil
}

// NormalizedValue returns the normalized-format slot, initializing the node
// with its default first when needed.
func (n *Node) NormalizedValue() (domain.Value, error) {
	if err := n.ensureInitialized(); err != nil {
		return domain.Null(), err
	}
	return n.normalized, nil
}

// PresentationValue returns the presentation-format slot, initializing the
// node with its default first when needed.
func (n *Node) PresentationValue() (domain.Value, error) {
	if err := n.ensureInitialized(); err != nil {
		return domain.Null(), err
	}
	return n.presentation, nil
}

// SetValue pushes a storage-format value through the forward pipeline:
// model chain to normalized, view chain to presentation, children populated
// through the data mapper. It is idempotent under identical input and must
// not run once the node is bound.
func (n *Node) SetValue(v domain.Value) error {
	if n.bound && n.init == stateInitialized {
		return errors.Wrapf(domain.ErrAlreadyBound, "set value on %q", n.Name())
	}
	if n.config.dataLocked && !v.Equal(n.Default()) {
		// Locked nodes hold their configured default; differing input is
		// ignored, not an error.
		return nil
	}
	if !n.config.byReference {
		v = v.Clone()
	}
	if n.init == stateInitializing {
		return errors.Wrapf(domain.ErrCyclicSetValue, "on %q", n.Name())
	}
	prev := n.init
	n.init = stateInitializing
	committed := false
	defer func() {
		if !committed {
			n.init = prev
		}
	}()

	v = n.dispatch(domain.StagePreSetValue, v)

	if n.config.modelChain.Len() == 0 && n.config.viewChain.Len() == 0 {
		// Without any transformer the three representations are uniformly
		// text.
		v = domain.Stringify(v)
	}

	normalized, err := n.config.modelChain.Transform(v)
	if err != nil {
		return err
	}
	presentation, err := n.forwardView(normalized)
	if err != nil {
		return err
	}

	if c := n.config.constraint; c != nil && !presentation.IsEmpty() {
		if err := c.Check(presentation); err != nil {
			return errors.Mark(errors.Wrapf(err, "presentation value of %q", n.Name()), domain.ErrTypeMismatch)
		}
	}

	n.storage = v
	n.normalized = normalized
	n.presentation = presentation
	n.synchronized = true
	n.init = stateInitialized
	committed = true

	if len(n.children) > 0 && n.config.mapper != nil {
		if err := n.config.mapper.MapDataToChildren(presentation, n.children); err != nil {
			return err
		}
	}

	n.dispatch(domain.StagePostSetValue, presentation)
	return nil
}

// forwardView converts normalized to presentation format. With an empty view
// chain on a non-compound node the conversion degenerates to stringify: Null
// and scalars render as their text form, everything else passes through.
func (n *Node) forwardView(v domain.Value) (domain.Value, error) {
	if n.config.viewChain.Len() > 0 {
		return n.config.viewChain.Transform(v)
	}
	if n.config.compound {
		return v, nil
	}
	if v.IsNull() {
		return domain.Scalar(""), nil
	}
	return domain.Stringify(v), nil
}

// reverseView converts presentation back to normalized format. With an empty
// view chain an empty-string submission maps to an absent value, anything
// else passes through.
func (n *Node) reverseView(v domain.Value) (domain.Value, error) {
	if n.config.viewChain.Len() > 0 {
		return n.config.viewChain.ReverseTransform(v)
	}
	if v.Kind() == domain.KindScalar && v.Scalar() == "" {
		return domain.Null(), nil
	}
	return v, nil
}
