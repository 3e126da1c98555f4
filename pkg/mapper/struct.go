package mapper

import (
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/form"
)

// Struct reconciles a compound node with its children through an opaque Go
// struct, addressing fields by the children's property paths via
// mapstructure tags. It is the strategy for forms bound directly to domain
// objects.
//
// The merge direction needs a pointer to a struct so the reassembled data
// can be written back; use ByReference on the owning config to keep the
// pointer identity across SetValue.
type Struct struct {
	// Tag overrides the struct tag consulted for field names. Defaults to
	// "mapstructure".
	Tag string
}

func (s Struct) decoderConfig(target any) *mapstructure.DecoderConfig {
	cfg := &mapstructure.DecoderConfig{Result: target}
	if s.Tag != "" {
		cfg.TagName = s.Tag
	}
	return cfg
}

// MapDataToChildren flattens the struct into a map and assigns each child
// the entry its property path points at. An empty value resets every child
// to its own default.
func (s Struct) MapDataToChildren(v domain.Value, children []*form.Node) error {
	if v.IsEmpty() {
		for _, child := range children {
			if err := child.SetValue(child.Default()); err != nil {
				return err
			}
		}
		return nil
	}
	if v.Kind() != domain.KindOpaque {
		return domain.TransformFailedf("expected an opaque struct, got %s", v.Kind())
	}

	flat := make(map[string]any)
	dec, err := mapstructure.NewDecoder(s.decoderConfig(&flat))
	if err != nil {
		return domain.TransformFailed(err, "failed to build struct decoder")
	}
	if err := dec.Decode(v.Opaque()); err != nil {
		return domain.TransformFailed(err, "failed to flatten struct")
	}

	for _, child := range children {
		raw, ok := flat[child.Config().PropertyPath()]
		if !ok {
			continue
		}
		if err := child.SetValue(domain.ValueOf(raw)); err != nil {
			return err
		}
	}
	return nil
}

// MapChildrenToData writes each child's presentation value back into the
// struct by property path and returns the same pointer, re-wrapped.
func (s Struct) MapChildrenToData(children []*form.Node, v domain.Value) (domain.Value, error) {
	if v.Kind() != domain.KindOpaque {
		return domain.Null(), domain.TransformFailedf("expected an opaque struct, got %s", v.Kind())
	}
	target := v.Opaque()
	if rv := reflect.ValueOf(target); rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return domain.Null(), domain.TransformFailedf("merging requires a pointer to a struct, got %T", target)
	}

	patch := make(map[string]any, len(children))
	for _, child := range children {
		if child.Disabled() {
			continue
		}
		pv, err := child.PresentationValue()
		if err != nil {
			return domain.Null(), err
		}
		patch[child.Config().PropertyPath()] = pv.Interface()
	}

	dec, err := mapstructure.NewDecoder(s.decoderConfig(target))
	if err != nil {
		return domain.Null(), domain.TransformFailed(err, "failed to build struct decoder")
	}
	if err := dec.Decode(patch); err != nil {
		return domain.Null(), domain.TransformFailed(err, "failed to write children back into struct")
	}
	return domain.Opaque(target), nil
}

var _ form.DataMapper = Struct{}
