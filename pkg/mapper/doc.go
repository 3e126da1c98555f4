/*
Package mapper provides the data mapper strategies that reconcile compound
nodes with their children.

Structured routes insertion-ordered mappings by property path and is the
default for group fields; Struct binds a form tree to an opaque Go struct
through mapstructure tags. Both implement form.DataMapper and never trigger
Bind themselves.
*/
package mapper
