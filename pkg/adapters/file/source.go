// Package file provides a definition source backed by a directory of YAML
// or JSON documents, one form per file, with hot reload via fsnotify.
package file

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

var extensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Source implements ports.DefinitionSource over a flat directory: the form
// name is the file name without extension.
type Source struct {
	dir string
}

// New creates a source for the given directory. The directory must exist.
func New(dir string) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid path %q", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "definitions directory %q", abs)
	}
	if !info.IsDir() {
		return nil, errors.Newf("%q is not a directory", abs)
	}
	return &Source{dir: abs}, nil
}

// Get reads and decodes the named definition. When the file itself carries
// no name, the file name wins.
func (s *Source) Get(ctx context.Context, name string) (schema.Form, error) {
	path, err := s.resolve(name)
	if err != nil {
		return schema.Form{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Form{}, errors.Wrapf(err, "failed to read %q", path)
	}
	f, err := schema.Decode(data)
	if err != nil {
		return schema.Form{}, errors.Wrapf(err, "definition %q", name)
	}
	if f.Name == "" {
		f.Name = name
	}
	return f, nil
}

func (s *Source) resolve(name string) (string, error) {
	for ext := range extensions {
		path := filepath.Join(s.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Wrapf(domain.ErrDefinitionNotFound, "%q in %s", name, s.dir)
}

// List returns the form names in the directory, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %q", s.dir)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !extensions[ext] {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Watch emits the name of a changed form whenever a definition file is
// written, created, removed or renamed. The channel closes when ctx is
// canceled.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %q", s.dir)
	}

	out := make(chan string, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				ext := filepath.Ext(event.Name)
				if !extensions[ext] {
					continue
				}
				name := strings.TrimSuffix(filepath.Base(event.Name), ext)
				select {
				case out <- name:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching despite transient errors.
			}
		}
	}()

	return out, nil
}
