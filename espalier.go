package espalier

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"
	"github.com/cockroachdb/errors"
	"github.com/zoobzio/capitan"

	loamAdapter "github.com/aretw0/espalier/pkg/adapters/loam"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/form"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
	"github.com/aretw0/espalier/pkg/schema"
)

// Engine is the high-level entry point for the Espalier library. It resolves
// form definitions from a source, builds node trees through a field-type
// registry and binds submissions against them.
type Engine struct {
	source   ports.DefinitionSource
	registry *registry.Registry
	metrics  *observability.Metrics
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a custom DefinitionSource, bypassing the default Loam
// initialization.
func WithSource(s ports.DefinitionSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithRegistry sets the field-type registry used to build node trees.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors to the engine.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes a new Espalier Engine.
// By default, it uses a Loam repository at the given path.
// If WithSource option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check if a source is provided
	for _, opt := range opts {
		opt(eng)
	}

	// If no source was injected, initialize default Loam adapter
	if eng.source == nil {
		if repoPath == "" {
			return nil, errors.New("repoPath is required when no custom source is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, errors.Wrap(err, "invalid path")
		}

		eng.Name = filepath.Base(absPath)

		// Strict mode keeps numeric frontmatter as json.Number so large
		// integer defaults survive the trip; read-only mode because the
		// engine never writes definitions back.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize loam")
		}

		typedRepo := loam.NewTypedRepository[loamAdapter.FormMetadata](repo)
		eng.source = loamAdapter.New(typedRepo)
	} else if repoPath != "" {
		// A custom source can still use repoPath as a descriptive label.
		eng.Name = filepath.Base(repoPath)
	}

	if eng.registry == nil {
		eng.registry = registry.Default()
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repository", eng.Name)
	}

	return eng, nil
}

// Definitions lists the names of all form definitions in the source.
func (e *Engine) Definitions(ctx context.Context) ([]string, error) {
	return e.source.List(ctx)
}

// Definition resolves a single form definition by name.
func (e *Engine) Definition(ctx context.Context, name string) (schema.Form, error) {
	return e.source.Get(ctx, name)
}

// Form resolves the named definition and builds its node tree. The returned
// root is unbound; callers may SetValue initial data before binding.
func (e *Engine) Form(ctx context.Context, name string) (*form.Node, error) {
	def, err := e.source.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(def); err != nil {
		e.metrics.ObserveBuild(name, err)
		capitan.Emit(ctx, FormBuildFailed,
			KeyForm.Field(name),
			KeyError.Field(err.Error()),
		)
		return nil, err
	}

	root, err := e.registry.Build(def)
	e.metrics.ObserveBuild(name, err)
	if err != nil {
		e.logger.ErrorContext(ctx, "form build failed", "form", name, "error", err)
		capitan.Emit(ctx, FormBuildFailed,
			KeyForm.Field(name),
			KeyError.Field(err.Error()),
		)
		return nil, err
	}

	capitan.Emit(ctx, FormBuilt, KeyForm.Field(name))
	return root, nil
}

// Bind builds the named form, optionally seeds it with initial data, binds
// the submission and flattens the result into a Report.
func (e *Engine) Bind(ctx context.Context, name string, initial, submission domain.Value) (*Report, error) {
	root, err := e.Form(ctx, name)
	if err != nil {
		return nil, err
	}

	if !initial.IsNull() {
		if err := root.SetValue(initial); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	if err := root.Bind(submission); err != nil {
		return nil, err
	}

	report, err := NewReport(root)
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveBind(name, report.Valid, report.Synchronized, time.Since(start))
	e.emitBindSignals(ctx, report)
	e.logger.InfoContext(ctx, "submission bound",
		"form", name,
		"valid", report.Valid,
		"synchronized", report.Synchronized,
	)
	return report, nil
}

func (e *Engine) emitBindSignals(ctx context.Context, r *Report) {
	errorCount := 0
	for _, msgs := range r.Errors {
		errorCount += len(msgs)
	}
	capitan.Emit(ctx, BindCompleted,
		KeyForm.Field(r.Form),
		KeyValid.Field(boolField(r.Valid)),
		KeySynchronized.Field(boolField(r.Synchronized)),
		KeyErrorCount.Field(errorCount),
	)
	if !r.Synchronized {
		capitan.Emit(ctx, BindDesynchronized, KeyForm.Field(r.Form))
	}
	if !r.Valid {
		capitan.Emit(ctx, BindInvalid,
			KeyForm.Field(r.Form),
			KeyErrorCount.Field(errorCount),
		)
	}
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Watch returns a channel that signals when a definition changes.
// Returns an error if the source does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.source.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, errors.New("current source does not support watching")
}

// Source returns the underlying DefinitionSource used by the engine.
func (e *Engine) Source() ports.DefinitionSource {
	return e.source
}

// Registry returns the field-type registry used by the engine.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}
