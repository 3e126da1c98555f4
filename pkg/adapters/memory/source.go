// Package memory provides an in-memory definition source, primarily for
// tests and code-first applications.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// Source implements ports.DefinitionSource backed by a map.
type Source struct {
	mu    sync.RWMutex
	forms map[string]schema.Form
}

// New creates an empty in-memory source.
func New() *Source {
	return &Source{forms: make(map[string]schema.Form)}
}

// NewFromForms creates a source pre-seeded with the given definitions. Each
// form must carry a name.
func NewFromForms(forms ...schema.Form) (*Source, error) {
	s := New()
	for _, f := range forms {
		if f.Name == "" {
			return nil, errors.New("form missing name")
		}
		s.forms[f.Name] = f
	}
	return s, nil
}

// Put adds or replaces a definition.
func (s *Source) Put(f schema.Form) error {
	if f.Name == "" {
		return errors.New("form missing name")
	}
	s.mu.Lock()
	s.forms[f.Name] = f
	s.mu.Unlock()
	return nil
}

// Get retrieves a definition by name.
func (s *Source) Get(ctx context.Context, name string) (schema.Form, error) {
	s.mu.RLock()
	f, ok := s.forms[name]
	s.mu.RUnlock()
	if !ok {
		return schema.Form{}, errors.Wrapf(domain.ErrDefinitionNotFound, "%q", name)
	}
	return f, nil
}

// List returns all form names, sorted for deterministic order.
func (s *Source) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
