package loam

import "github.com/aretw0/espalier/pkg/schema"

// FormMetadata is the frontmatter of a form document in a Loam repository.
// It uses "mapstructure" tags to match the YAML keys; the markdown body
// below the frontmatter becomes the form's help text.
type FormMetadata struct {
	// Name overrides the document ID as the form name.
	Name string `json:"name" mapstructure:"name"`

	Title string `json:"title" mapstructure:"title"`

	Fields []schema.Field `json:"fields" mapstructure:"fields"`
}
