package transform

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Date converts between an opaque types.Date (normalized format) and its
// ISO-8601 calendar text "2006-01-02" (presentation format). Null maps to
// the empty string and back.
type Date struct{}

func (Date) Transform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Scalar(""), nil
	case domain.KindOpaque:
		switch d := v.Opaque().(type) {
		case types.Date:
			return domain.Scalar(d.Format(types.DateFormat)), nil
		case time.Time:
			return domain.Scalar(d.Format(types.DateFormat)), nil
		}
	}
	return domain.Null(), domain.TransformFailedf("expected a date, got %s", v.Kind())
}

func (Date) ReverseTransform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Null(), nil
	case domain.KindScalar:
		s := v.Scalar()
		if s == "" {
			return domain.Null(), nil
		}
		t, err := time.Parse(types.DateFormat, s)
		if err != nil {
			return domain.Null(), domain.TransformFailedf("%q is not a valid date (want %s)", s, types.DateFormat)
		}
		return domain.Opaque(types.Date{Time: t}), nil
	}
	return domain.Null(), domain.TransformFailedf("expected date text, got %s", v.Kind())
}

var _ ports.ValueTransformer = Date{}
