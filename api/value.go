package api

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the type carried by a Value.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "none"
	}
}

// Value is a resolved setting: absent, a string, a boolean or an ordered
// list of strings. The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	b    bool
	list []string
}

// None returns the absent value.
func None() Value { return Value{} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List wraps items. The slice is copied.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// Kind reports the type of the value.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the value is not absent.
func (v Value) Present() bool { return v.kind != KindNone }

// Str returns the string payload, or "" for any other kind.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.str
	}
	return ""
}

// Truth returns the boolean payload, or false for any other kind.
func (v Value) Truth() bool {
	return v.kind == KindBool && v.b
}

// Items returns a copy of the list payload, or nil for any other kind.
func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	return slices.Clone(v.list)
}

// Contains reports whether a list value holds item.
func (v Value) Contains(item string) bool {
	return v.kind == KindList && slices.Contains(v.list, item)
}

// Equal compares kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindList:
		return slices.Equal(v.list, o.list)
	}
	return true
}

// Display renders the value for humans.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "Yes"
		}
		return "No"
	case KindList:
		return strings.Join(v.list, ", ")
	}
	return ""
}

func (v Value) String() string {
	if v.kind == KindNone {
		return "<none>"
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.Display())
}

// MarshalJSON encodes the payload as null, string, bool or array.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Interface returns the payload as a plain Go value (nil, string, bool, []string).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindList:
		return slices.Clone(v.list)
	}
	return nil
}

// FromInterface converts decoded JSON/YAML scalars into a Value.
// Numbers are rendered as strings; nested maps are rejected.
func FromInterface(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return None(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int, int64, float64, uint64:
		return String(fmt.Sprint(t)), nil
	case []string:
		return List(t...), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return None(), fmt.Errorf("list item %v is %T, want string", item, item)
			}
			items = append(items, s)
		}
		return List(items...), nil
	}
	return None(), fmt.Errorf("unsupported value type %T", raw)
}
