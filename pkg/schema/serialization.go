package schema

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Decode parses a form definition from YAML or JSON bytes (JSON is a YAML
// subset, so one decoder covers both wire formats). The decoded form is not
// validated; call Validate separately.
func Decode(data []byte) (Form, error) {
	var f Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Form{}, errors.Wrap(err, "failed to decode form definition")
	}
	return f, nil
}

// Encode serializes a form definition to YAML.
func Encode(f Form) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode form definition")
	}
	return data, nil
}
