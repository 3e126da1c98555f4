package http

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestParseBracketPath(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{key: "name", want: []string{"name"}},
		{key: "address[city]", want: []string{"address", "city"}},
		{key: "a[b][c]", want: []string{"a", "b", "c"}},
		{key: "[orphan]", want: []string{"[orphan]"}},
		{key: "broken[", want: []string{"broken["}},
		{key: "broken[x]tail", want: []string{"broken[x]tail"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBracketPath(tt.key), "key %q", tt.key)
	}
}

func TestValuesToSubmissionNesting(t *testing.T) {
	values := url.Values{
		"name":            {"Ada"},
		"address[city]":   {"London"},
		"address[street]": {"Baker St"},
		"repeated":        {"first", "last"},
	}

	v := valuesToSubmission(values)
	require.Equal(t, domain.KindStructured, v.Kind())

	name, _ := v.Structured().Get("name")
	assert.Equal(t, "Ada", name.Scalar())

	address, ok := v.Structured().Get("address")
	require.True(t, ok)
	city, _ := address.Structured().Get("city")
	assert.Equal(t, "London", city.Scalar())
	street, _ := address.Structured().Get("street")
	assert.Equal(t, "Baker St", street.Scalar())

	repeated, _ := v.Structured().Get("repeated")
	assert.Equal(t, "last", repeated.Scalar(), "repeated keys keep the last value")
}

func TestJSONValueCoercions(t *testing.T) {
	v := jsonValue(map[string]any{
		"text":  "x",
		"yes":   true,
		"no":    false,
		"null":  nil,
		"items": []any{"a", "b"},
	})
	require.Equal(t, domain.KindStructured, v.Kind())

	yes, _ := v.Structured().Get("yes")
	assert.Equal(t, "1", yes.Scalar(), "true submits like a checked checkbox")
	no, _ := v.Structured().Get("no")
	assert.Equal(t, "", no.Scalar())

	null, _ := v.Structured().Get("null")
	assert.True(t, null.IsNull())

	items, _ := v.Structured().Get("items")
	first, ok := items.Structured().Get("0")
	require.True(t, ok)
	assert.Equal(t, "a", first.Scalar())
}

func TestSanitizeScalarStripsControlCharacters(t *testing.T) {
	clean, err := sanitizeScalar("a\x00b\tc\nd\x1be")
	require.NoError(t, err)
	assert.Equal(t, "ab\tc\nde", clean, "tabs and newlines survive, the rest is stripped")
}

func TestSanitizeScalarRejectsInvalidUTF8(t *testing.T) {
	_, err := sanitizeScalar("ok\xffnot")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestSanitizeScalarRejectsOversizedValue(t *testing.T) {
	_, err := sanitizeScalar(strings.Repeat("x", DefaultMaxValueSize+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueTooLarge)
}

func TestSanitizeSubmissionNamesFailingField(t *testing.T) {
	v := domain.Wrap(domain.NewStructured().
		Set("fine", domain.Scalar("ok")).
		Set("bad", domain.Scalar("oops\xff")))

	_, err := sanitizeSubmission(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
