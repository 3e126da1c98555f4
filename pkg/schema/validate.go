package schema

import "fmt"

// Validate checks a form definition for structural problems before it is
// handed to the registry. All failures found are aggregated.
func Validate(f Form) error {
	var errs []error

	if f.Name == "" {
		errs = append(errs, &ValidationError{Reason: "form name is required"})
	}
	if len(f.Fields) == 0 {
		errs = append(errs, &ValidationError{Reason: "form has no fields"})
	}

	errs = append(errs, validateFields("", f.Fields)...)

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateFields(prefix string, fields []Field) []error {
	var errs []error
	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		if field.Name == "" {
			errs = append(errs, &ValidationError{Path: prefix, Reason: "field name is required"})
			continue
		}
		if seen[field.Name] {
			errs = append(errs, &ValidationError{Path: path, Reason: "duplicate field name"})
			continue
		}
		seen[field.Name] = true

		switch field.Type {
		case "choice":
			if len(field.Options) == 0 {
				errs = append(errs, &ValidationError{Path: path, Reason: "choice field requires options"})
			}
		case "group":
			if len(field.Fields) == 0 {
				errs = append(errs, &ValidationError{Path: path, Reason: "group field requires nested fields"})
			}
			if field.Rules != "" {
				errs = append(errs, &ValidationError{Path: path, Reason: "rules are not supported on group fields"})
			}
		default:
			if len(field.Fields) > 0 {
				errs = append(errs, &ValidationError{
					Path:   path,
					Reason: fmt.Sprintf("nested fields require type \"group\", got %q", field.Type),
				})
			}
		}

		if len(field.Fields) > 0 {
			errs = append(errs, validateFields(path, field.Fields)...)
		}
	}

	return errs
}
