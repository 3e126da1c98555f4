package transform

import (
	"testing"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestTrim(t *testing.T) {
	forward, err := Trim{}.Transform(domain.Scalar("  keep  "))
	require.NoError(t, err)
	assert.Equal(t, "  keep  ", forward.Scalar(), "forward pass leaves stored text alone")

	reverse, err := Trim{}.ReverseTransform(domain.Scalar("  submitted \n"))
	require.NoError(t, err)
	assert.Equal(t, "submitted", reverse.Scalar())

	passthrough, err := Trim{}.ReverseTransform(domain.Null())
	require.NoError(t, err)
	assert.True(t, passthrough.IsNull())
}

func TestInteger(t *testing.T) {
	t.Run("Forward", func(t *testing.T) {
		v, err := Integer{}.Transform(domain.Opaque(int64(42)))
		require.NoError(t, err)
		assert.Equal(t, "42", v.Scalar())

		v, err = Integer{}.Transform(domain.Null())
		require.NoError(t, err)
		assert.Equal(t, "", v.Scalar())

		_, err = Integer{}.Transform(domain.Opaque("not a number"))
		assert.True(t, domain.IsTransformationFailed(err))
	})

	t.Run("Reverse", func(t *testing.T) {
		v, err := Integer{}.ReverseTransform(domain.Scalar("42"))
		require.NoError(t, err)
		assert.Equal(t, int64(42), v.Opaque())

		v, err = Integer{}.ReverseTransform(domain.Scalar(""))
		require.NoError(t, err)
		assert.True(t, v.IsNull(), "empty text means no value")

		_, err = Integer{}.ReverseTransform(domain.Scalar("abc"))
		assert.True(t, domain.IsTransformationFailed(err))

		_, err = Integer{}.ReverseTransform(domain.Scalar("1.5"))
		assert.True(t, domain.IsTransformationFailed(err))
	})
}

func TestNumber(t *testing.T) {
	v, err := Number{}.Transform(domain.Opaque(1.5))
	require.NoError(t, err)
	assert.Equal(t, "1.5", v.Scalar())

	v, err = Number{}.ReverseTransform(domain.Scalar("2.25"))
	require.NoError(t, err)
	assert.Equal(t, 2.25, v.Opaque())

	_, err = Number{}.ReverseTransform(domain.Scalar("two"))
	assert.True(t, domain.IsTransformationFailed(err))
}

func TestBoolean(t *testing.T) {
	v, err := Boolean{}.Transform(domain.Opaque(true))
	require.NoError(t, err)
	assert.Equal(t, "1", v.Scalar())

	v, err = Boolean{}.Transform(domain.Opaque(false))
	require.NoError(t, err)
	assert.True(t, v.IsNull(), "false renders as an absent checkbox")

	v, err = Boolean{}.ReverseTransform(domain.Null())
	require.NoError(t, err)
	assert.Equal(t, false, v.Opaque())

	v, err = Boolean{}.ReverseTransform(domain.Scalar("on"))
	require.NoError(t, err)
	assert.Equal(t, true, v.Opaque(), "any non-empty submission counts as checked")

	v, err = Boolean{}.ReverseTransform(domain.Scalar(""))
	require.NoError(t, err)
	assert.Equal(t, false, v.Opaque())
}

func TestDate(t *testing.T) {
	day := types.Date{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

	v, err := Date{}.Transform(domain.Opaque(day))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", v.Scalar())

	v, err = Date{}.ReverseTransform(domain.Scalar("2024-05-01"))
	require.NoError(t, err)
	parsed, ok := v.Opaque().(types.Date)
	require.True(t, ok)
	assert.Equal(t, "2024-05-01", parsed.Format(types.DateFormat))

	_, err = Date{}.ReverseTransform(domain.Scalar("01/05/2024"))
	assert.True(t, domain.IsTransformationFailed(err))

	v, err = Date{}.ReverseTransform(domain.Scalar(""))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestChoice(t *testing.T) {
	c := NewChoice(map[string]domain.Value{
		"ga": domain.Scalar("general_admission"),
		"vip": domain.Scalar("very_important"),
	}, []string{"ga", "vip"})

	assert.Equal(t, []string{"ga", "vip"}, c.Keys())

	v, err := c.Transform(domain.Scalar("very_important"))
	require.NoError(t, err)
	assert.Equal(t, "vip", v.Scalar())

	v, err = c.ReverseTransform(domain.Scalar("ga"))
	require.NoError(t, err)
	assert.Equal(t, "general_admission", v.Scalar())

	_, err = c.ReverseTransform(domain.Scalar("backstage"))
	assert.True(t, domain.IsTransformationFailed(err), "a tampered submission is a transformation failure")

	_, err = c.Transform(domain.Scalar("unknown_stored"))
	assert.True(t, domain.IsTransformationFailed(err))

	v, err = c.ReverseTransform(domain.Scalar(""))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestJSON(t *testing.T) {
	s := domain.NewStructured().
		Set("city", domain.Scalar("Lisbon")).
		Set("zip", domain.Scalar("1100"))

	v, err := JSON{}.Transform(domain.Wrap(s))
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Lisbon","zip":"1100"}`, v.Scalar())

	back, err := JSON{}.ReverseTransform(v)
	require.NoError(t, err)
	require.Equal(t, domain.KindStructured, back.Kind())
	city, _ := back.Structured().Get("city")
	assert.Equal(t, "Lisbon", city.Scalar())

	_, err = JSON{}.ReverseTransform(domain.Scalar("{broken"))
	assert.True(t, domain.IsTransformationFailed(err))
}
