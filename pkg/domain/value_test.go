package domain

import (
	"encoding/json"
	"testing"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		wantKind Kind
	}{
		{name: "nil", in: nil, wantKind: KindNull},
		{name: "string", in: "hello", wantKind: KindScalar},
		{name: "map", in: map[string]any{"a": "1"}, wantKind: KindStructured},
		{name: "string map", in: map[string]string{"a": "1"}, wantKind: KindStructured},
		{name: "slice", in: []any{"a", "b"}, wantKind: KindStructured},
		{name: "string slice", in: []string{"a", "b"}, wantKind: KindStructured},
		{name: "int stays opaque", in: 42, wantKind: KindOpaque},
		{name: "bool stays opaque", in: true, wantKind: KindOpaque},
		{name: "struct stays opaque", in: struct{ X int }{1}, wantKind: KindOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueOf(tt.in)
			if got.Kind() != tt.wantKind {
				t.Errorf("ValueOf(%v).Kind() = %s, want %s", tt.in, got.Kind(), tt.wantKind)
			}
		})
	}
}

func TestValueOfMapIsSorted(t *testing.T) {
	v := ValueOf(map[string]any{"z": "1", "a": "2", "m": "3"})
	keys := v.Structured().Keys()
	want := []string{"a", "m", "z"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestValueOfSliceUsesIndexKeys(t *testing.T) {
	v := ValueOf([]any{"x", "y"})
	first, ok := v.Structured().Get("0")
	if !ok || first.Scalar() != "x" {
		t.Errorf(`entry "0" = %v, want scalar "x"`, first)
	}
	second, ok := v.Structured().Get("1")
	if !ok || second.Scalar() != "y" {
		t.Errorf(`entry "1" = %v, want scalar "y"`, second)
	}
}

func TestValueIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{name: "null", v: Null(), want: true},
		{name: "empty scalar", v: Scalar(""), want: true},
		{name: "scalar", v: Scalar("x"), want: false},
		{name: "empty structured", v: Wrap(NewStructured()), want: true},
		{name: "structured", v: Wrap(NewStructured().Set("a", Scalar("1"))), want: false},
		{name: "opaque", v: Opaque(42), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	a := Wrap(NewStructured().Set("x", Scalar("1")).Set("y", Opaque(2)))
	b := Wrap(NewStructured().Set("x", Scalar("1")).Set("y", Opaque(2)))
	if !a.Equal(b) {
		t.Error("identical structured values should be equal")
	}

	// Same entries in a different insertion order are not equal.
	c := Wrap(NewStructured().Set("y", Opaque(2)).Set("x", Scalar("1")))
	if a.Equal(c) {
		t.Error("structured equality should be order-sensitive")
	}

	if Scalar("1").Equal(Opaque("1")) {
		t.Error("scalar and opaque should not compare equal")
	}
	if !Null().Equal(Value{}) {
		t.Error("zero value should equal Null()")
	}
}

func TestValueCloneIsolatesStructured(t *testing.T) {
	orig := NewStructured().Set("a", Scalar("1"))
	clone := Wrap(orig).Clone()
	clone.Structured().Set("a", Scalar("changed"))

	got, _ := orig.Get("a")
	if got.Scalar() != "1" {
		t.Errorf("mutating a clone must not touch the original, got %q", got.Scalar())
	}
}

type cloneable struct{ n int }

func (c *cloneable) CloneValue() any { return &cloneable{n: c.n} }

func TestValueCloneUsesCloner(t *testing.T) {
	orig := &cloneable{n: 7}
	clone := Opaque(orig).Clone()

	copied, ok := clone.Opaque().(*cloneable)
	if !ok {
		t.Fatalf("clone is %T, want *cloneable", clone.Opaque())
	}
	if copied == orig {
		t.Error("Cloner implementations must yield a fresh copy")
	}
	if copied.n != 7 {
		t.Errorf("clone lost payload: n = %d, want 7", copied.n)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want Value
	}{
		{name: "bool", in: Opaque(true), want: Scalar("true")},
		{name: "int", in: Opaque(42), want: Scalar("42")},
		{name: "int64", in: Opaque(int64(-3)), want: Scalar("-3")},
		{name: "uint", in: Opaque(uint(9)), want: Scalar("9")},
		{name: "float", in: Opaque(1.5), want: Scalar("1.5")},
		{name: "null passes", in: Null(), want: Null()},
		{name: "scalar passes", in: Scalar("x"), want: Scalar("x")},
		{name: "struct passes", in: Opaque(struct{}{}), want: Opaque(struct{}{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.in); !got.Equal(tt.want) {
				t.Errorf("Stringify(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestStructuredOrder(t *testing.T) {
	s := NewStructured().
		Set("first", Scalar("1")).
		Set("second", Scalar("2")).
		Set("third", Scalar("3"))

	// Replacing keeps the original position.
	s.Set("second", Scalar("2b"))

	want := []string{"first", "second", "third"}
	got := s.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}

	s.Delete("second")
	if s.Len() != 2 {
		t.Fatalf("Len() after delete = %d, want 2", s.Len())
	}
	if _, ok := s.Get("second"); ok {
		t.Error("deleted key still present")
	}
}

func TestStructuredMarshalJSONPreservesOrder(t *testing.T) {
	s := NewStructured().
		Set("z", Scalar("last-in-sort")).
		Set("a", Scalar("first-in-sort")).
		Set("nested", Wrap(NewStructured().Set("k", Opaque(2))))

	raw, err := json.Marshal(Wrap(s))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"z":"last-in-sort","a":"first-in-sort","nested":{"k":2}}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}

func TestTransformationFailureMark(t *testing.T) {
	err := TransformFailedf("cannot parse %q as number", "abc")
	if !IsTransformationFailed(err) {
		t.Error("constructed failure should carry the mark")
	}
	if IsTransformationFailed(ErrTypeMismatch) {
		t.Error("unrelated sentinel must not carry the mark")
	}
}
