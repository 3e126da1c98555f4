/*
Package form implements the hierarchical data-binding core of espalier.

A Node holds one logical value in three representations (storage format,
normalized format and presentation format) and converts between them through
two ordered, reversible transformer chains configured on its frozen Config.
Compound nodes derive their value from named children through a DataMapper
instead of transformers alone.

# Lifecycle

A node is built from a Config, optionally composed into a tree with Add, and
then moves through two phases:

  - SetValue pushes a storage-format value forward (storage -> normalized ->
    presentation) and distributes it to children. It may run any number of
    times before binding and is idempotent under identical input.
  - Bind pulls a submitted presentation-format value backward, reconciles
    children through the mapper, and finalizes the node. It runs exactly
    once; a second call fails with domain.ErrAlreadyBound.

When the reverse pipeline cannot convert a submission, the node binds anyway
with Synchronized() false and Null storage and normalized slots. That state
is a first-class outcome callers surface like a validation failure.

Hook listeners registered on the config fire at the stages defined in
pkg/domain and may replace the in-flight value. Validators run after Bind
and append to the node's error list, which bubbles to the parent when the
config says so.

Nodes are not safe for concurrent use; build one tree per request.
*/
package form
