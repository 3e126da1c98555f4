// Package tests provides reusable contract suites for ports implementations.
package tests

import (
	"context"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/schema"
)

// DefinitionSourceContractTest is a reusable test suite that verifies if an
// adapter complies with ports.DefinitionSource. seeded maps form names to the
// definitions the source was constructed with.
func DefinitionSourceContractTest(t *testing.T, source ports.DefinitionSource, seeded map[string]schema.Form) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for name, want := range seeded {
			got, err := source.Get(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting form %s: %v", name, err)
			}
			if got.Name != want.Name {
				t.Errorf("name mismatch. got %q, want %q", got.Name, want.Name)
			}
			if len(got.Fields) != len(want.Fields) {
				t.Errorf("field count mismatch for %s. got %d, want %d", name, len(got.Fields), len(want.Fields))
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := source.Get(ctx, "non-existent-form")
		if err == nil {
			t.Fatal("expected error for non-existent form, got nil")
		}
		if !errors.Is(err, domain.ErrDefinitionNotFound) {
			t.Errorf("expected ErrDefinitionNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := source.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing forms: %v", err)
		}
		if len(names) != len(seeded) {
			t.Errorf("expected %d forms, got %d (%v)", len(seeded), len(names), names)
		}
		for name := range seeded {
			if !slices.Contains(names, name) {
				t.Errorf("expected %q in listing %v", name, names)
			}
		}
	})
}
