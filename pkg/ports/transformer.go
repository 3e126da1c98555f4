package ports

import "github.com/aretw0/espalier/pkg/domain"

// ValueTransformer converts a value between two adjacent representations.
// Transformers are composed into ordered chains: model transformers sit
// between storage and normalized format, view transformers between
// normalized and presentation format.
//
// Both directions fail with a domain.ErrTransformationFailed-marked error on
// malformed input; implementations must be pure and side-effect free.
type ValueTransformer interface {
	// Transform converts towards the presentation side (storage->normalized
	// for model transformers, normalized->presentation for view ones).
	Transform(v domain.Value) (domain.Value, error)

	// ReverseTransform converts towards the storage side. It is the inverse
	// of Transform over the domain the transformer declares supported.
	ReverseTransform(v domain.Value) (domain.Value, error)
}
