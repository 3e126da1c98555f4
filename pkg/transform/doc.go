/*
Package transform provides the transformer chain and the standard value
transformers shipped with espalier.

A Chain composes ports.ValueTransformer implementations into one ordered,
reversible converter: Transform runs left-to-right, ReverseTransform
right-to-left, and any member failure aborts the whole pass. Nodes hold two
chains: model transformers between storage and normalized format, view
transformers between normalized and presentation format.

The standard transformers (Trim, Integer, Number, Boolean, Date, Choice,
JSON) back the built-in field types of the registry. All of them treat Null
and the empty string as the two faces of an absent value and fail with a
transformation failure (domain.IsTransformationFailed) on malformed input.
*/
package transform
