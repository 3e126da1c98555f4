package transform

import (
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Trim passes scalar text through unchanged on the forward pass and strips
// surrounding whitespace from submitted text on the reverse pass. Non-scalar
// values are untouched in both directions.
type Trim struct{}

func (Trim) Transform(v domain.Value) (domain.Value, error) {
	return v, nil
}

func (Trim) ReverseTransform(v domain.Value) (domain.Value, error) {
	if v.Kind() != domain.KindScalar {
		return v, nil
	}
	return domain.Scalar(strings.TrimSpace(v.Scalar())), nil
}

var _ ports.ValueTransformer = Trim{}
