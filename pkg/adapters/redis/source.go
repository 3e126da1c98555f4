// Package redis provides a definition source storing form definitions as
// YAML documents in Redis, with a set index for listing.
package redis

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// Source implements ports.DefinitionSource using Redis.
type Source struct {
	client *backend.Client
	prefix string
}

type Option func(*Source)

// WithPrefix sets the key prefix for definitions.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// New creates a new Redis source with options.
func New(address, password string, db int, opts ...Option) *Source {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis source from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	s := &Source{
		client: client,
		prefix: "espalier:forms:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) key(name string) string {
	return s.prefix + name
}

func (s *Source) indexKey() string {
	return s.prefix + "index"
}

// Put stores a definition and registers it in the index. Definitions are
// the only thing this adapter persists; submitted values never touch Redis.
func (s *Source) Put(ctx context.Context, f schema.Form) error {
	if f.Name == "" {
		return errors.New("form missing name")
	}
	data, err := schema.Encode(f)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(f.Name), data, 0)
	pipe.SAdd(ctx, s.indexKey(), f.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to save to redis")
	}
	return nil
}

// Delete removes a definition and its index entry.
func (s *Source) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// Get retrieves a definition by name.
func (s *Source) Get(ctx context.Context, name string) (schema.Form, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return schema.Form{}, errors.Wrapf(domain.ErrDefinitionNotFound, "%q", name)
		}
		return schema.Form{}, errors.Wrap(err, "failed to get from redis")
	}

	f, err := schema.Decode([]byte(val))
	if err != nil {
		return schema.Form{}, err
	}
	if f.Name == "" {
		f.Name = name
	}
	return f, nil
}

// List returns the indexed form names. Set members come back unordered, so
// they are sorted client-side for deterministic output.
func (s *Source) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list forms")
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Source) Close() error {
	return s.client.Close()
}
