package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/testutils"
	loamAdapter "github.com/aretw0/espalier/pkg/adapters/loam"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports/tests"
	"github.com/aretw0/espalier/pkg/schema"
)

const signupFrontmatter = `name: signup
title: Sign up
fields:
  - name: email
    type: text
    required: true`

const profileFrontmatter = `fields:
  - name: name
    type: text
  - name: age
    type: integer`

func newSource(t *testing.T) *loamAdapter.Source {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	testutils.WriteDefinition(t, dir, "signup", signupFrontmatter, "Create an account.")
	testutils.WriteDefinition(t, dir, "profile", profileFrontmatter, "")

	typedRepo := loam.NewTypedRepository[loamAdapter.FormMetadata](repo)
	return loamAdapter.New(typedRepo)
}

func TestSourceContract(t *testing.T) {
	source := newSource(t)

	tests.DefinitionSourceContractTest(t, source, map[string]schema.Form{
		"signup": {
			Name:   "signup",
			Fields: []schema.Field{{Name: "email", Type: "text", Required: true}},
		},
		"profile": {
			Name:   "profile",
			Fields: []schema.Field{{Name: "name", Type: "text"}, {Name: "age", Type: "integer"}},
		},
	})
}

func TestGetCarriesBodyAsHelp(t *testing.T) {
	source := newSource(t)

	f, err := source.Get(context.Background(), "signup")
	require.NoError(t, err)
	assert.Equal(t, "signup", f.Name)
	assert.Equal(t, "Sign up", f.Title)
	assert.Equal(t, "Create an account.", f.Help)
	require.Len(t, f.Fields, 1)
	assert.True(t, f.Fields[0].Required)
}

func TestGetFallsBackToDocumentID(t *testing.T) {
	source := newSource(t)

	// The profile document declares no name in its frontmatter.
	f, err := source.Get(context.Background(), "profile")
	require.NoError(t, err)
	assert.Equal(t, "profile", f.Name)
}

func TestGetMissingFormIsNotFound(t *testing.T) {
	source := newSource(t)

	_, err := source.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestListDetectsNameCollisions(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	testutils.WriteDefinition(t, dir, "signup", "name: duplicate\nfields:\n  - name: a", "")
	testutils.WriteDefinition(t, dir, "other", "name: duplicate\nfields:\n  - name: b", "")

	typedRepo := loam.NewTypedRepository[loamAdapter.FormMetadata](repo)
	source := loamAdapter.New(typedRepo)

	_, err := source.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision")
}
