/*
Package dsl provides a fluent, code-first API for defining forms without
schema files.

	node, err := dsl.New("signup").
		Title("Sign up").
		Build(nil)

Fields chain off the builder:

	d := dsl.New("signup")
	d.Text("email").Required().Rules("required,email")
	d.Integer("age").Rules("min=0,max=150")
	d.Group("address", func(g *dsl.Builder) {
		g.Text("city")
		g.Text("zip")
	})
	node, err := d.Build(nil)

Build validates the accumulated definition and compiles it through the
registry (nil means the built-in field types), yielding the same node trees
a definition source would.
*/
package dsl
