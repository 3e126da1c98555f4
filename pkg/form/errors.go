package form

import (
	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
)

// Error is one recorded validation failure on a node.
type Error struct {
	// Path locates the failing node relative to where the error is stored.
	// Bubbled errors are prefixed with the originating child's name.
	Path string

	// Message is the human-readable failure description.
	Message string

	// Cause optionally carries the underlying error.
	Cause error
}

func (e Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// AddError records a validation failure on the node. When the config enables
// bubbling and a parent exists, the error forwards to the parent instead,
// recursively, with the node's name prefixed to the path.
func (n *Node) AddError(e Error) {
	if n.config.bubbleErrors && n.parent != nil {
		if e.Path == "" {
			e.Path = n.Name()
		} else {
			e.Path = n.Name() + "." + e.Path
		}
		n.parent.AddError(e)
		return
	}
	n.errors = append(n.errors, e)
}

// OwnErrors returns the errors recorded on this node itself, in order. The
// slice is a copy.
func (n *Node) OwnErrors() []Error {
	out := make([]Error, len(n.errors))
	copy(out, n.errors)
	return out
}

// HasOwnErrors reports whether this node itself holds any error records.
func (n *Node) HasOwnErrors() bool { return len(n.errors) > 0 }

// Valid reports whether the bound node and, recursively, its children are
// free of errors. Disabled nodes are always valid regardless of children.
// Calling Valid before Bind fails with domain.ErrNotBound.
func (n *Node) Valid() (bool, error) {
	if !n.bound {
		return false, errors.Wrapf(domain.ErrNotBound, "validity of %q", n.Name())
	}
	if n.Disabled() {
		return true, nil
	}
	if len(n.errors) > 0 {
		return false, nil
	}
	for _, child := range n.children {
		ok, err := child.Valid()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Empty reports whether every child is empty and the node's own storage
// value is empty by the domain rule (Null, empty text, empty structure).
func (n *Node) Empty() bool {
	for _, child := range n.children {
		if !child.Empty() {
			return false
		}
	}
	return n.storage.IsEmpty()
}
