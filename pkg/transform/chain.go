package transform

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Chain composes an ordered list of transformers into one. The forward pass
// applies each member left-to-right, the reverse pass right-to-left. Both
// passes fail fast: a member failure aborts the pass and the caller must
// treat the whole pipeline as failed, never a prefix of it.
type Chain struct {
	transformers []ports.ValueTransformer
}

// NewChain builds a chain from the given transformers, in order.
func NewChain(transformers ...ports.ValueTransformer) Chain {
	return Chain{transformers: transformers}
}

// Len returns the number of transformers in the chain.
func (c Chain) Len() int {
	return len(c.transformers)
}

// Transform applies every member left-to-right.
func (c Chain) Transform(v domain.Value) (domain.Value, error) {
	for _, t := range c.transformers {
		var err error
		v, err = t.Transform(v)
		if err != nil {
			return domain.Null(), err
		}
	}
	return v, nil
}

// ReverseTransform applies every member right-to-left.
func (c Chain) ReverseTransform(v domain.Value) (domain.Value, error) {
	for i := len(c.transformers) - 1; i >= 0; i-- {
		var err error
		v, err = c.transformers[i].ReverseTransform(v)
		if err != nil {
			return domain.Null(), err
		}
	}
	return v, nil
}

var _ ports.ValueTransformer = Chain{}
