package domain

// Stage identifies a point in a node's processing pipelines where hooks
// fire. Stages are strings so they read well in logs and signal fields.
type Stage string

const (
	// StagePreSetValue fires before transformation during SetValue; hooks
	// may replace the incoming value.
	StagePreSetValue Stage = "pre_set_value"
	// StagePostSetValue fires after the slots are committed; replacement
	// attempts are ignored.
	StagePostSetValue Stage = "post_set_value"
	// StagePreBind fires before a submission is processed; hooks may
	// replace the submission.
	StagePreBind Stage = "pre_bind"
	// StageNormalizeOnBind fires between the view and model reverse steps;
	// hooks may replace the normalized value.
	StageNormalizeOnBind Stage = "normalize_on_bind"
	// StagePostBind fires after the node is bound; replacement attempts are
	// ignored.
	StagePostBind Stage = "post_bind"
)

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{
		StagePreSetValue,
		StagePostSetValue,
		StagePreBind,
		StageNormalizeOnBind,
		StagePostBind,
	}
}
