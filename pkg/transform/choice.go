package transform

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Choice maps a storage value onto one key of a fixed option list and back.
// The forward pass renders the matching key as presentation text; the
// reverse pass resolves a submitted key to its storage value. Unknown values
// and keys fail, which makes a tampered submission a transformation failure
// rather than silently accepted data.
type Choice struct {
	keys   []string
	values map[string]domain.Value
}

// NewChoice builds a choice transformer from key/value pairs in order.
func NewChoice(options map[string]domain.Value, order []string) Choice {
	c := Choice{values: make(map[string]domain.Value, len(options))}
	for _, k := range order {
		if v, ok := options[k]; ok {
			c.keys = append(c.keys, k)
			c.values[k] = v
		}
	}
	return c
}

// Keys returns the admissible presentation keys in declaration order.
func (c Choice) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c Choice) Transform(v domain.Value) (domain.Value, error) {
	if v.IsNull() {
		return domain.Scalar(""), nil
	}
	for _, k := range c.keys {
		if c.values[k].Equal(v) {
			return domain.Scalar(k), nil
		}
	}
	return domain.Null(), domain.TransformFailedf("value %s matches no configured choice", v)
}

func (c Choice) ReverseTransform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Null(), nil
	case domain.KindScalar:
		s := v.Scalar()
		if s == "" {
			return domain.Null(), nil
		}
		if stored, ok := c.values[s]; ok {
			return stored, nil
		}
		return domain.Null(), domain.TransformFailedf("%q is not an admissible choice", s)
	}
	return domain.Null(), domain.TransformFailedf("expected a choice key, got %s", v.Kind())
}

var _ ports.ValueTransformer = Choice{}
