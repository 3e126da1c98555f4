package transform

import (
	"strconv"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Integer converts between an opaque int64 (normalized format) and its
// decimal text (presentation format). Null maps to the empty string and
// back.
type Integer struct{}

func (Integer) Transform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Scalar(""), nil
	case domain.KindOpaque:
		switch n := v.Opaque().(type) {
		case int64:
			return domain.Scalar(strconv.FormatInt(n, 10)), nil
		case int:
			return domain.Scalar(strconv.Itoa(n)), nil
		}
	}
	return domain.Null(), domain.TransformFailedf("expected an integer, got %s", v.Kind())
}

func (Integer) ReverseTransform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Null(), nil
	case domain.KindScalar:
		s := v.Scalar()
		if s == "" {
			return domain.Null(), nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domain.Null(), domain.TransformFailedf("%q is not a valid integer", s)
		}
		return domain.Opaque(n), nil
	}
	return domain.Null(), domain.TransformFailedf("expected integer text, got %s", v.Kind())
}

// Number converts between an opaque float64 (normalized format) and its
// decimal text (presentation format). Null maps to the empty string and
// back.
type Number struct{}

func (Number) Transform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Scalar(""), nil
	case domain.KindOpaque:
		switch n := v.Opaque().(type) {
		case float64:
			return domain.Scalar(strconv.FormatFloat(n, 'f', -1, 64)), nil
		case float32:
			return domain.Scalar(strconv.FormatFloat(float64(n), 'f', -1, 32)), nil
		case int64:
			return domain.Scalar(strconv.FormatInt(n, 10)), nil
		case int:
			return domain.Scalar(strconv.Itoa(n)), nil
		}
	}
	return domain.Null(), domain.TransformFailedf("expected a number, got %s", v.Kind())
}

func (Number) ReverseTransform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Null(), nil
	case domain.KindScalar:
		s := v.Scalar()
		if s == "" {
			return domain.Null(), nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.Null(), domain.TransformFailedf("%q is not a valid number", s)
		}
		return domain.Opaque(n), nil
	}
	return domain.Null(), domain.TransformFailedf("expected numeric text, got %s", v.Kind())
}

var (
	_ ports.ValueTransformer = Integer{}
	_ ports.ValueTransformer = Number{}
)
