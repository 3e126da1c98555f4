package domain

import "github.com/cockroachdb/errors"

// Sentinel errors raised by the binding lifecycle. Callers match them with
// errors.Is; wrapping layers may add context without breaking identity.
var (
	// ErrAlreadyBound is returned when a mutation is attempted on a node
	// that has already processed a submission.
	ErrAlreadyBound = errors.New("espalier: node already bound")

	// ErrNotBound is returned when a result (validity, extra data) is
	// requested from a node that has not been bound yet.
	ErrNotBound = errors.New("espalier: node not bound")

	// ErrCyclicSetValue is returned when a hook re-enters SetValue on the
	// node that is currently initializing.
	ErrCyclicSetValue = errors.New("espalier: cyclic set-value detected")

	// ErrUnexpectedType is returned when a compound node is bound with a
	// non-structured, non-empty submission.
	ErrUnexpectedType = errors.New("espalier: unexpected submission type")

	// ErrTypeMismatch is returned when a transformed presentation value
	// does not satisfy the node's shape constraint.
	ErrTypeMismatch = errors.New("espalier: value does not satisfy shape constraint")

	// ErrTransformationFailed marks conversion failures inside transformer
	// chains. During bind the reverse pipeline recovers from it by
	// desynchronizing the node; everywhere else it propagates.
	ErrTransformationFailed = errors.New("espalier: transformation failed")

	// ErrDuplicateChild is returned when a child with an already-taken name
	// is added to a compound node.
	ErrDuplicateChild = errors.New("espalier: duplicate child name")

	// ErrNotCompound is returned when a child is added to a node without a
	// data mapper. Binding never reaches children of such a node, so the
	// tree shape is rejected up front.
	ErrNotCompound = errors.New("espalier: non-compound node cannot have children")

	// ErrUnnamedChild is returned when a node without a name is attached to
	// a parent. Only roots may be anonymous.
	ErrUnnamedChild = errors.New("espalier: unnamed node cannot have a parent")

	// ErrDefinitionNotFound is returned by definition sources when no form
	// with the requested name exists.
	ErrDefinitionNotFound = errors.New("espalier: form definition not found")
)

// TransformFailedf builds a transformation failure with a human-readable
// cause, carrying the ErrTransformationFailed mark.
func TransformFailedf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrTransformationFailed)
}

// TransformFailed wraps err as a transformation failure, preserving the
// original cause for inspection.
func TransformFailed(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrTransformationFailed)
}

// IsTransformationFailed reports whether err carries the transformation
// failure mark, however deeply wrapped.
func IsTransformationFailed(err error) bool {
	return errors.Is(err, ErrTransformationFailed)
}
