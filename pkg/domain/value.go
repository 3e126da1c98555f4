package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants a Value can hold.
type Kind uint8

const (
	// KindNull is the absence of data. It is the zero value of Value.
	KindNull Kind = iota
	// KindScalar is presentation-oriented text.
	KindScalar
	// KindStructured is an insertion-ordered string-to-Value mapping.
	KindStructured
	// KindOpaque is a handle to an arbitrary Go value owned by the caller.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindStructured:
		return "structured"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is the tagged variant flowing through transformer chains and node
// slots. The zero value is Null.
type Value struct {
	kind   Kind
	scalar string
	fields *Structured
	opaque any
}

// Null returns the absent value.
func Null() Value {
	return Value{}
}

// Scalar returns a textual value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Opaque wraps an arbitrary Go value. A nil argument yields Null.
func Opaque(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: KindOpaque, opaque: v}
}

// Wrap turns a Structured into a Value. A nil argument yields Null.
func Wrap(s *Structured) Value {
	if s == nil {
		return Value{}
	}
	return Value{kind: KindStructured, fields: s}
}

// ValueOf coerces a Go value into the variant at a boundary. Strings become
// scalars, maps and slices become structured values (map keys sorted for
// determinism, slice indices rendered as decimal keys), nil becomes Null and
// everything else is kept opaque. Value and *Structured pass through.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case *Structured:
		return Wrap(x)
	case string:
		return Scalar(x)
	case map[string]any:
		s := NewStructured()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.Set(k, ValueOf(x[k]))
		}
		return Wrap(s)
	case map[string]string:
		s := NewStructured()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.Set(k, Scalar(x[k]))
		}
		return Wrap(s)
	case []any:
		s := NewStructured()
		for i, item := range x {
			s.Set(strconv.Itoa(i), ValueOf(item))
		}
		return Wrap(s)
	case []string:
		s := NewStructured()
		for i, item := range x {
			s.Set(strconv.Itoa(i), Scalar(item))
		}
		return Wrap(s)
	default:
		return Value{kind: KindOpaque, opaque: v}
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no data at all.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Scalar returns the text of a scalar value, or "" for any other kind.
func (v Value) Scalar() string { return v.scalar }

// Structured returns the ordered mapping of a structured value, or nil for
// any other kind. The mapping is shared, not copied.
func (v Value) Structured() *Structured { return v.fields }

// Opaque returns the wrapped Go value, or nil for any other kind.
func (v Value) Opaque() any { return v.opaque }

// IsEmpty reports whether v counts as empty: Null, a scalar of zero length,
// a structured value with no entries, or an opaque nil handle.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return v.scalar == ""
	case KindStructured:
		return v.fields == nil || v.fields.Len() == 0
	case KindOpaque:
		return v.opaque == nil
	default:
		return true
	}
}

// Cloner lets opaque payloads participate in defensive copying. Opaque
// values that do not implement it are shared between slots.
type Cloner interface {
	CloneValue() any
}

// Clone returns a deep copy of v. Structured values are copied recursively;
// opaque values are copied through Cloner when implemented and shared
// otherwise.
func (v Value) Clone() Value {
	switch v.kind {
	case KindStructured:
		return Wrap(v.fields.Clone())
	case KindOpaque:
		if c, ok := v.opaque.(Cloner); ok {
			return Opaque(c.CloneValue())
		}
		return v
	default:
		return v
	}
}

// Equal reports deep equality between two values. Opaque payloads are
// compared with reflect.DeepEqual.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return v.scalar == o.scalar
	case KindStructured:
		return v.fields.Equal(o.fields)
	case KindOpaque:
		return reflect.DeepEqual(v.opaque, o.opaque)
	default:
		return false
	}
}

// Interface unwraps v into plain Go data: nil, string, map[string]any (order
// lost) or the opaque payload. Useful at JSON boundaries where native types
// are expected.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindStructured:
		out := make(map[string]any, v.fields.Len())
		v.fields.Range(func(k string, item Value) bool {
			out[k] = item.Interface()
			return true
		})
		return out
	case KindOpaque:
		return v.opaque
	default:
		return nil
	}
}

// String renders a short debug representation.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindScalar:
		return strconv.Quote(v.scalar)
	case KindStructured:
		var b strings.Builder
		b.WriteString("{")
		first := true
		v.fields.Range(func(k string, item Value) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&b, "%s: %s", k, item.String())
			return true
		})
		b.WriteString("}")
		return b.String()
	case KindOpaque:
		return fmt.Sprintf("opaque(%T)", v.opaque)
	default:
		return "<invalid>"
	}
}

// MarshalJSON renders Null as null, scalars as strings, structured values as
// order-preserving objects and opaque payloads through the standard encoder.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindStructured:
		return v.fields.MarshalJSON()
	case KindOpaque:
		return json.Marshal(v.opaque)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes JSON into the variant, mirroring MarshalJSON:
// strings become scalars, objects become order-preserving structured values,
// arrays become structured values with decimal index keys, booleans and
// numbers stay opaque (numbers as json.Number).
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	got, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = got
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return Scalar(t), nil
	case bool:
		return Opaque(t), nil
	case json.Number:
		return Opaque(t), nil
	case json.Delim:
		switch t {
		case '{':
			s := NewStructured()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				s.Set(key, item)
			}
			// Consume the closing brace.
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Wrap(s), nil
		case '[':
			s := NewStructured()
			for i := 0; dec.More(); i++ {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				s.Set(strconv.Itoa(i), item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Wrap(s), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// Stringify coerces primitive values to their canonical textual form:
// opaque bools, integers and floats become scalars, scalars stay untouched
// and Null stays Null. Structured values and non-primitive opaques pass
// through unchanged.
func Stringify(v Value) Value {
	if v.kind != KindOpaque {
		return v
	}
	switch x := v.opaque.(type) {
	case bool:
		return Scalar(strconv.FormatBool(x))
	case int:
		return Scalar(strconv.FormatInt(int64(x), 10))
	case int8:
		return Scalar(strconv.FormatInt(int64(x), 10))
	case int16:
		return Scalar(strconv.FormatInt(int64(x), 10))
	case int32:
		return Scalar(strconv.FormatInt(int64(x), 10))
	case int64:
		return Scalar(strconv.FormatInt(x, 10))
	case uint:
		return Scalar(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return Scalar(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return Scalar(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return Scalar(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return Scalar(strconv.FormatUint(x, 10))
	case float32:
		return Scalar(strconv.FormatFloat(float64(x), 'f', -1, 32))
	case float64:
		return Scalar(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return v
	}
}
