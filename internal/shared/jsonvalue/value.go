// Package jsonvalue provides a closed JSON value type used for diagnostic
// payloads that must round-trip through storage without arbitrary Go types.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Value is one of string, number, bool, null, object or array.
// The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  Object
	arr  []Value
}

// Object is a JSON object of restricted values.
type Object map[string]Value

func Null() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func Int(n int64) Value {
	return Value{kind: KindNumber, num: float64(n)}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time encodes t as an RFC 3339 UTC string.
func Time(t time.Time) Value {
	return String(t.UTC().Format(time.RFC3339))
}

// OptionalString returns null for a nil pointer.
func OptionalString(s *string) Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}

func Strings(ss []string) Value {
	arr := make([]Value, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return Value{kind: KindArray, arr: arr}
}

func FromObject(o Object) Value {
	if o == nil {
		o = Object{}
	}
	return Value{kind: KindObject, obj: o}
}

func Array(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindArray, arr: vs}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsObject() (Object, bool) {
	return v.obj, v.kind == KindObject
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(map[string]Value(v.obj))
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	default:
		return nil, fmt.Errorf("jsonvalue: unknown kind %d", v.kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("jsonvalue: %w", err)
		}
		return Number(n), nil
	case float64:
		return Number(t), nil
	case map[string]any:
		obj := make(Object, len(t))
		for k, item := range t {
			val, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			obj[k] = val
		}
		return FromObject(obj), nil
	case []any:
		arr := make([]Value, 0, len(t))
		for _, item := range t {
			val, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, val)
		}
		return Array(arr...), nil
	default:
		return Value{}, fmt.Errorf("jsonvalue: unsupported type %T", raw)
	}
}

// Get returns the value stored under key, or null.
func (o Object) Get(key string) Value {
	if o == nil {
		return Null()
	}
	return o[key]
}

// GetString is a shortcut for Get(key).AsString().
func (o Object) GetString(key string) (string, bool) {
	return o.Get(key).AsString()
}

// Marshal encodes the object; nil encodes as {}.
func (o Object) Marshal() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(o))
}

// ParseObject decodes a JSON object. Empty input yields an empty object.
func ParseObject(data []byte) (Object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Object{}, nil
	}
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v.IsNull() {
		return Object{}, nil
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("jsonvalue: expected object, got %s", v.kind)
	}
	return obj, nil
}
