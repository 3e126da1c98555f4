/*
Package validate provides the validator strategies invoked after binding.

Rules wraps go-playground/validator tag strings, Required enforces the
effective required flag, and Desynchronized turns a failed reverse pipeline
into an explicit error record. All of them append to the node's error list
as their only observable effect.
*/
package validate
