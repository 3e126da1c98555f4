package form

import "github.com/aretw0/espalier/pkg/domain"

// DataMapper reconciles a compound node's presentation value with its
// children, in both directions. Implementations are supplied per node type
// (structured mappings, struct-backed data) and must not trigger Bind on any
// node they touch; the core invokes only the two operations below.
//
// A mapper may fail with a transformation failure
// (domain.IsTransformationFailed) when the value shape does not fit, in
// which case the surrounding bind pipeline records the node as
// desynchronized exactly as it does for transformer failures.
type DataMapper interface {
	// MapDataToChildren distributes a compound presentation value across
	// the named children, typically by assigning each child the slice of
	// the structure its property path points at.
	MapDataToChildren(v domain.Value, children []*Node) error

	// MapChildrenToData reads each child's current presentation value and
	// merges it back into v by property path, returning the merged value.
	MapChildrenToData(children []*Node, v domain.Value) (domain.Value, error)
}

// Validator inspects a finalized node after bind. Its only observable effect
// is calling AddError on the node (or, through bubbling, an ancestor).
type Validator interface {
	Validate(n *Node)
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(n *Node)

func (f ValidatorFunc) Validate(n *Node) { f(n) }
