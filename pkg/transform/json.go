package transform

import (
	"encoding/json"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// JSON converts between a structured mapping (normalized format) and its
// JSON text (presentation format), for editing structured data through a
// textarea. Null maps to the empty string and back.
type JSON struct{}

func (JSON) Transform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Scalar(""), nil
	case domain.KindStructured:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return domain.Null(), domain.TransformFailed(err, "failed to render structured value as JSON")
		}
		return domain.Scalar(string(data)), nil
	}
	return domain.Null(), domain.TransformFailedf("expected structured data, got %s", v.Kind())
}

func (JSON) ReverseTransform(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindNull:
		return domain.Null(), nil
	case domain.KindScalar:
		s := v.Scalar()
		if s == "" {
			return domain.Null(), nil
		}
		var raw map[string]any
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return domain.Null(), domain.TransformFailedf("submitted text is not a JSON object: %v", err)
		}
		return domain.ValueOf(raw), nil
	}
	return domain.Null(), domain.TransformFailedf("expected JSON text, got %s", v.Kind())
}

var _ ports.ValueTransformer = JSON{}
