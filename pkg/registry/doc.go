/*
Package registry maps field type names to node configurations and compiles
wire-format form definitions into live node trees.

The Default registry ships the built-in types (text, textarea, integer,
number, checkbox, date, choice, json, group); Register lets applications add
or shadow types with their own transformer chains and validators.
*/
package registry
