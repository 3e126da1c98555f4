package transform

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Boolean converts between an opaque bool (normalized format) and checkbox
// text (presentation format). True renders as "1"; false renders as Null so
// an unchecked box round-trips through an absent submission entry. On the
// reverse pass any non-empty submission counts as checked.
type Boolean struct{}

func (Boolean) Transform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Null(), nil
	case domain.KindOpaque:
		if b, ok := v.Opaque().(bool); ok {
			if b {
				return domain.Scalar("1"), nil
			}
			return domain.Null(), nil
		}
	}
	return domain.Null(), domain.TransformFailedf("expected a boolean, got %s", v.Kind())
}

func (Boolean) ReverseTransform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Opaque(false), nil
	case domain.KindScalar:
		return domain.Opaque(v.Scalar() != ""), nil
	}
	return domain.Null(), domain.TransformFailedf("expected checkbox text, got %s", v.Kind())
}

var _ ports.ValueTransformer = Boolean{}
