package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/schema"
)

// DefinitionSource defines how the engine retrieves form definitions.
// This allows the storage layer (Loam, FS, Memory, Redis, OpenAPI) to be
// decoupled from the core.
type DefinitionSource interface {
	// Get retrieves the definition of a form by name.
	// It returns domain.ErrDefinitionNotFound when no such form exists.
	Get(ctx context.Context, name string) (schema.Form, error)

	// List returns the names of all available forms, sorted or in backend
	// declaration order. It is used by introspection tooling and the HTTP
	// and MCP adapters.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for sources that can notify about backend
// changes. This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives the name of a changed form
	// whenever the underlying definitions change. The channel closes when
	// ctx is canceled.
	Watch(ctx context.Context) (<-chan string, error)
}
