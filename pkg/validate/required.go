package validate

import "github.com/aretw0/espalier/pkg/form"

// Required rejects an empty bound node when its effective required flag is
// set. Nodes relaxed by a non-required parent pass untouched.
func Required() form.Validator {
	return form.ValidatorFunc(func(n *form.Node) {
		if !n.Required() {
			return
		}
		if n.Empty() {
			n.AddError(form.Error{Message: "this field is required"})
		}
	})
}

// Desynchronized records an explicit error when the bind reverse pipeline
// failed, for callers that want the desync surfaced in the error list
// rather than only through Synchronized().
func Desynchronized(message string) form.Validator {
	if message == "" {
		message = "the submitted value could not be processed"
	}
	return form.ValidatorFunc(func(n *form.Node) {
		if !n.Synchronized() {
			n.AddError(form.Error{Message: message})
		}
	})
}
