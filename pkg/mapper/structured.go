package mapper

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/form"
)

// Structured reconciles a compound node with its children through an
// insertion-ordered mapping keyed by property path. It is the default
// strategy for group fields.
type Structured struct{}

// MapDataToChildren assigns each child the entry its property path points
// at. An empty value resets every child to its own default; entries without
// a matching child are left for the bind pipeline to collect.
func (Structured) MapDataToChildren(v domain.Value, children []*form.Node) error {
	if v.IsEmpty() {
		for _, child := range children {
			if err := child.SetValue(child.Default()); err != nil {
				return err
			}
		}
		return nil
	}
	if v.Kind() != domain.KindStructured {
		return domain.TransformFailedf("expected structured data, got %s", v.Kind())
	}
	fields := v.Structured()
	for _, child := range children {
		entry, ok := fields.Get(child.Config().PropertyPath())
		if !ok {
			continue
		}
		if err := child.SetValue(entry); err != nil {
			return err
		}
	}
	return nil
}

// MapChildrenToData writes each child's presentation value back into the
// mapping by property path. Disabled children keep whatever the mapping
// already holds. The input value is extended, not replaced, so unmatched
// entries survive the merge.
func (Structured) MapChildrenToData(children []*form.Node, v domain.Value) (domain.Value, error) {
	var fields *domain.Structured
	switch {
	case v.IsEmpty():
		fields = domain.NewStructured()
	case v.Kind() == domain.KindStructured:
		fields = v.Structured().Clone()
	default:
		return domain.Null(), domain.TransformFailedf("expected structured data, got %s", v.Kind())
	}
	for _, child := range children {
		if child.Disabled() {
			continue
		}
		pv, err := child.PresentationValue()
		if err != nil {
			return domain.Null(), err
		}
		fields.Set(child.Config().PropertyPath(), pv)
	}
	return domain.Wrap(fields), nil
}

var _ form.DataMapper = Structured{}
