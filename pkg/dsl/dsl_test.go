package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/aretw0/espalier/pkg/registry"
	"github.com/aretw0/espalier/pkg/schema"
)

func TestBuilderAssemblesDefinition(t *testing.T) {
	b := dsl.New("signup").Title("Sign up").Help("Create an account")
	b.Text("email").Required().Rules("required,email").Placeholder("you@example.com")
	b.Integer("age").Label("Age").Rules("min=0,max=150")
	b.Choice("plan", schema.Option{Value: "basic", Label: "Basic"}, schema.Option{Value: "pro", Label: "Pro"})
	b.Group("address", func(g *dsl.Builder) {
		g.Text("city").Required()
		g.Text("zip")
	})

	f := b.Form()
	assert.Equal(t, "signup", f.Name)
	assert.Equal(t, "Sign up", f.Title)
	assert.Equal(t, []string{"email", "age", "plan", "address"}, f.FieldNames())

	email, _ := f.Field("email")
	assert.True(t, email.Required)
	assert.Equal(t, "you@example.com", email.Placeholder)

	address, _ := f.Field("address")
	assert.Equal(t, "group", address.Type)
	require.Len(t, address.Fields, 2)
	assert.True(t, address.Fields[0].Required)
}

func TestFieldBuilderSurvivesLaterAdds(t *testing.T) {
	b := dsl.New("f")
	first := b.Text("first")
	// Force the fields slice to grow before the earlier handle is used.
	for i := 0; i < 16; i++ {
		b.Text("filler" + string(rune('a'+i)))
	}
	first.Label("still reachable")

	field, _ := b.Form().Field("first")
	assert.Equal(t, "still reachable", field.Label)
}

func TestBuildValidatesDefinition(t *testing.T) {
	b := dsl.New("f")
	b.Choice("plan") // no options
	_, err := b.Build(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choice field requires options")
}

func TestBuildAndBindRoundTrip(t *testing.T) {
	b := dsl.New("profile")
	b.Text("name").Required()
	b.Checkbox("notify").Default(true)
	b.Group("address", func(g *dsl.Builder) {
		g.Text("city")
	})

	root, err := b.Build(registry.Default())
	require.NoError(t, err)

	submission := domain.Wrap(domain.NewStructured().
		Set("name", domain.Scalar("Ada")).
		Set("address", domain.Wrap(domain.NewStructured().Set("city", domain.Scalar("London")))))
	require.NoError(t, root.Bind(submission))

	valid, err := root.Valid()
	require.NoError(t, err)
	assert.True(t, valid)

	notify, _ := root.Get("notify")
	norm, err := notify.NormalizedValue()
	require.NoError(t, err)
	assert.Equal(t, false, norm.Opaque(), "an absent checkbox entry binds unchecked")

	address, _ := root.Get("address")
	city, _ := address.Get("city")
	storage, err := city.StorageValue()
	require.NoError(t, err)
	assert.Equal(t, "London", storage.Scalar())
}
