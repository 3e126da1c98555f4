package espalier_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/testutils"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/schema"
)

func signupSource(t *testing.T) *memory.Source {
	t.Helper()
	source, err := memory.NewFromForms(schema.Form{
		Name: "signup",
		Fields: []schema.Field{
			{Name: "email", Type: "text", Required: true, Rules: "required,email"},
			{Name: "age", Type: "integer"},
			{Name: "address", Type: "group", Fields: []schema.Field{
				{Name: "city", Type: "text"},
			}},
		},
	})
	require.NoError(t, err)
	return source
}

func TestNewRequiresSourceOrPath(t *testing.T) {
	_, err := espalier.New("")
	require.Error(t, err)
}

func TestFacade_Integration(t *testing.T) {
	// A Loam repository of markdown definitions is the default source.
	dir := t.TempDir()
	testutils.WriteDefinition(t, dir, "signup",
		"name: signup\nfields:\n  - name: email\n    type: text\n    required: true",
		"Create an account.")

	engine, err := espalier.New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	names, err := engine.Definitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"signup"}, names)

	def, err := engine.Definition(ctx, "signup")
	require.NoError(t, err)
	assert.Equal(t, "Create an account.", def.Help)

	submission := domain.Wrap(domain.NewStructured().Set("email", domain.Scalar("ada@example.com")))
	report, err := engine.Bind(ctx, "signup", domain.Null(), submission)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.True(t, report.Synchronized)
}

func TestFormBuildsUnboundTree(t *testing.T) {
	engine, err := espalier.New("", espalier.WithSource(signupSource(t)))
	require.NoError(t, err)

	root, err := engine.Form(context.Background(), "signup")
	require.NoError(t, err)
	assert.False(t, root.Bound())
	assert.Equal(t, "signup", root.Name())
	require.Len(t, root.Children(), 3)
}

func TestFormRejectsInvalidDefinition(t *testing.T) {
	source, err := memory.NewFromForms(schema.Form{Name: "broken"})
	require.NoError(t, err)
	engine, err := espalier.New("", espalier.WithSource(source))
	require.NoError(t, err)

	_, err = engine.Form(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form has no fields")
}

func TestBindReportFlattensErrors(t *testing.T) {
	engine, err := espalier.New("", espalier.WithSource(signupSource(t)))
	require.NoError(t, err)

	submission := domain.Wrap(domain.NewStructured().
		Set("email", domain.Scalar("nope")).
		Set("stray", domain.Scalar("x")))
	report, err := engine.Bind(context.Background(), "signup", domain.Null(), submission)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "email")
	assert.Equal(t, []string{"stray"}, report.Extra)
}

func TestBindSeedsInitialData(t *testing.T) {
	source, err := memory.NewFromForms(schema.Form{
		Name: "profile",
		Fields: []schema.Field{
			{Name: "name", Type: "text"},
			{Name: "role", Type: "text", Disabled: true},
		},
	})
	require.NoError(t, err)
	engine, err := espalier.New("", espalier.WithSource(source))
	require.NoError(t, err)

	initial := domain.Wrap(domain.NewStructured().
		Set("name", domain.Scalar("Ada")).
		Set("role", domain.Scalar("admin")))
	submission := domain.Wrap(domain.NewStructured().
		Set("name", domain.Scalar("Grace")).
		Set("role", domain.Scalar("intruder")))
	report, err := engine.Bind(context.Background(), "profile", initial, submission)
	require.NoError(t, err)

	name, ok := report.Data.Structured().Get("name")
	require.True(t, ok)
	assert.Equal(t, "Grace", name.Scalar())

	// Disabled fields ignore the submission and keep their seeded value.
	role, ok := report.Data.Structured().Get("role")
	require.True(t, ok, testutils.Dump(report))
	assert.Equal(t, "admin", role.Scalar())
}

func TestBindUnknownFormFails(t *testing.T) {
	engine, err := espalier.New("", espalier.WithSource(signupSource(t)))
	require.NoError(t, err)

	_, err = engine.Bind(context.Background(), "ghost", domain.Null(), domain.Null())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestBindRecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	engine, err := espalier.New("",
		espalier.WithSource(signupSource(t)),
		espalier.WithMetrics(metrics),
	)
	require.NoError(t, err)

	submission := domain.Wrap(domain.NewStructured().Set("email", domain.Scalar("ada@example.com")))
	_, err = engine.Bind(context.Background(), "signup", domain.Null(), submission)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FormsBuilt.WithLabelValues("signup", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Binds.WithLabelValues("signup", "valid")))

	_, err = engine.Bind(context.Background(), "signup", domain.Null(),
		domain.Wrap(domain.NewStructured().Set("email", domain.Scalar("nope"))))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Binds.WithLabelValues("signup", "invalid")))
}

func TestWatchRequiresWatchableSource(t *testing.T) {
	engine, err := espalier.New("", espalier.WithSource(signupSource(t)))
	require.NoError(t, err)

	_, err = engine.Watch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support watching")
}
