/*
Package schema defines the wire format for form definitions.

A Form describes a bindable form as data: its name, title and an ordered list
of Fields. Definition sources decode documents from their backends into Forms;
the registry compiles a Form into a live node tree.

# Usage

	f, err := schema.Decode(raw)
	if err != nil {
		return err
	}
	if err := schema.Validate(f); err != nil {
		return err
	}

Validation failures aggregate into an AggregateError so every problem in a
definition surfaces at once.
*/
package schema
