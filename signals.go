package espalier

import "github.com/zoobzio/capitan"

// Engine lifecycle signals. Observers hook these with capitan to follow
// form construction and binding without coupling to the engine.
var (
	// FormBuilt is emitted when a definition is compiled into a node tree.
	FormBuilt = capitan.NewSignal(
		"espalier.form.built",
		"Form definition compiled into a node tree",
	)

	// FormBuildFailed is emitted when a definition cannot be compiled.
	FormBuildFailed = capitan.NewSignal(
		"espalier.form.build.failed",
		"Form definition failed to compile",
	)

	// BindCompleted is emitted after every Bind, valid or not.
	BindCompleted = capitan.NewSignal(
		"espalier.bind.completed",
		"Submission bound to a form",
	)

	// BindInvalid is emitted when a bound form carries validation errors.
	BindInvalid = capitan.NewSignal(
		"espalier.bind.invalid",
		"Bound form failed validation",
	)

	// BindDesynchronized is emitted when the reverse pipeline could not
	// convert a submission back to storage format.
	BindDesynchronized = capitan.NewSignal(
		"espalier.bind.desynchronized",
		"Submission could not be converted back to storage format",
	)
)
