package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/espalier/pkg/form"
)

// Shared instance: rule parsing is cached per tag, so one validator serves
// every node.
var instance = validator.New()

// Rules validates a node's normalized value against a go-playground
// validator tag string (e.g. "required,email" or "min=0,max=150"). Empty
// values only fail when the tag itself demands presence ("required").
func Rules(tag string) form.Validator {
	return form.ValidatorFunc(func(n *form.Node) {
		nv, err := n.NormalizedValue()
		if err != nil {
			n.AddError(form.Error{Message: "value unavailable for validation", Cause: err})
			return
		}
		value := nv.Interface()
		if value == nil {
			// validator.Var rejects untyped nil; an absent value only
			// violates presence rules.
			if hasRequired(tag) {
				n.AddError(form.Error{Message: "a value is required"})
			}
			return
		}
		if err := instance.Var(value, tag); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, ve := range verrs {
					n.AddError(form.Error{
						Message: ruleMessage(ve),
						Cause:   ve,
					})
				}
				return
			}
			n.AddError(form.Error{Message: err.Error(), Cause: err})
		}
	})
}

func hasRequired(tag string) bool {
	for _, part := range strings.Split(tag, ",") {
		if part == "required" {
			return true
		}
	}
	return false
}

func ruleMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "a value is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "len":
		return fmt.Sprintf("must have length %s", ve.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q validation", ve.Tag())
	}
}
