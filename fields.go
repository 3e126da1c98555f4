package espalier

import "github.com/zoobzio/capitan"

// Field keys for engine events.
var (
	// KeyForm is the name of the form being processed.
	KeyForm = capitan.NewStringKey("form")

	// KeyValid reports whether the bound form passed validation
	// ("true"/"false").
	KeyValid = capitan.NewStringKey("valid")

	// KeySynchronized reports whether the reverse pipeline succeeded
	// ("true"/"false").
	KeySynchronized = capitan.NewStringKey("synchronized")

	// KeyErrorCount is the number of recorded validation errors.
	KeyErrorCount = capitan.NewIntKey("error_count")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
