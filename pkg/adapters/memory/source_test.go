package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/ports/tests"
	"github.com/aretw0/espalier/pkg/schema"
)

func seedForms() map[string]schema.Form {
	return map[string]schema.Form{
		"signup": {
			Name:   "signup",
			Fields: []schema.Field{{Name: "email", Type: "text"}},
		},
		"profile": {
			Name: "profile",
			Fields: []schema.Field{
				{Name: "name", Type: "text"},
				{Name: "age", Type: "integer"},
			},
		},
	}
}

func TestSourceContract(t *testing.T) {
	seeded := seedForms()
	source, err := memory.NewFromForms(seeded["signup"], seeded["profile"])
	require.NoError(t, err)

	tests.DefinitionSourceContractTest(t, source, seeded)
}

func TestNewFromFormsRejectsAnonymousForms(t *testing.T) {
	_, err := memory.NewFromForms(schema.Form{})
	require.Error(t, err)
}

func TestPutReplacesDefinition(t *testing.T) {
	source := memory.New()
	require.NoError(t, source.Put(schema.Form{Name: "f", Fields: []schema.Field{{Name: "a"}}}))
	require.NoError(t, source.Put(schema.Form{Name: "f", Fields: []schema.Field{{Name: "a"}, {Name: "b"}}}))

	f, err := source.Get(context.Background(), "f")
	require.NoError(t, err)
	assert.Len(t, f.Fields, 2)

	assert.Error(t, source.Put(schema.Form{}))
}

func TestListIsSorted(t *testing.T) {
	source := memory.New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, source.Put(schema.Form{Name: name}))
	}
	names, err := source.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}
