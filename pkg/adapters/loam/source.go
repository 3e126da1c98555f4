// Package loam adapts a Loam repository of markdown documents into a
// definition source: the frontmatter declares the fields, the body becomes
// the form's help text.
package loam

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// Source adapts the Loam library to the ports.DefinitionSource interface.
type Source struct {
	Repo *loam.TypedRepository[FormMetadata]
}

// New creates a new Loam adapter around a typed repository.
func New(repo *loam.TypedRepository[FormMetadata]) *Source {
	return &Source{Repo: repo}
}

// Get retrieves a form definition from the Loam repository. We trust Loam to
// find the file (e.g. signup.md) even if we ask for "signup".
func (s *Source) Get(ctx context.Context, name string) (schema.Form, error) {
	doc, err := s.Repo.Get(ctx, name)
	if err != nil {
		return schema.Form{}, errors.Wrapf(domain.ErrDefinitionNotFound, "loam get failed for %s: %v", name, err)
	}

	f := schema.Form{
		Name:   doc.Data.Name,
		Title:  doc.Data.Title,
		Help:   strings.TrimSpace(doc.Content),
		Fields: doc.Data.Fields,
	}
	if f.Name == "" {
		f.Name = trimExtension(doc.ID)
	}
	return f, nil
}

// List lists all form names in the repository. Two documents resolving to
// the same name are a collision, not a silent shadow.
func (s *Source) List(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loam list failed")
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawName := doc.Data.Name
		if rawName == "" {
			rawName = doc.ID
		}
		name := trimExtension(rawName)

		if existingPath, ok := seen[name]; ok {
			return nil, errors.Newf("collision detected: form %q is defined in both %q and %q", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	return names, nil
}

// Watch implements ports.Watchable.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, errors.Wrap(err, "failed to start loam watcher")
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces internally; pass the changed name up the
				// chain, respecting context cancellation.
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
