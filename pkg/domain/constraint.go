package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Constraint checks the shape of a presentation value after forward
// transformation. Empty values bypass constraints; nodes surface failures
// as ErrTypeMismatch.
type Constraint interface {
	Name() string
	Check(v Value) error
}

// KindConstraint accepts values of a fixed set of kinds.
type KindConstraint struct {
	kinds []Kind
}

// Kinds builds a constraint accepting exactly the given kinds.
func Kinds(kinds ...Kind) KindConstraint {
	return KindConstraint{kinds: kinds}
}

func (c KindConstraint) Name() string {
	names := make([]string, len(c.kinds))
	for i, k := range c.kinds {
		names[i] = k.String()
	}
	return "kind(" + strings.Join(names, "|") + ")"
}

func (c KindConstraint) Check(v Value) error {
	for _, k := range c.kinds {
		if v.Kind() == k {
			return nil
		}
	}
	return errors.Newf("got %s, want %s", v.Kind(), c.Name())
}

// ConstraintFunc adapts a function into a named Constraint.
type ConstraintFunc struct {
	Label string
	Fn    func(Value) error
}

func (c ConstraintFunc) Name() string { return c.Label }

func (c ConstraintFunc) Check(v Value) error { return c.Fn(v) }

var (
	_ Constraint = KindConstraint{}
	_ Constraint = ConstraintFunc{}
)
