// Package facts models the semi-structured fact records produced by upstream
// extraction as a tagged variant type. A Value is either absent, a scalar
// (string, number, bool), an ordered list, or a record of named values.
//
// Values are treated as immutable everywhere in waymark: merge operations
// build new Values and never modify their inputs. Anything that needs to
// retain a Value across an API boundary should call Copy.
package facts

import (
	"encoding/json"
	"sort"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindAbsent is the zero Kind: no information at all.
	KindAbsent Kind = iota
	// KindString holds a free-text scalar.
	KindString
	// KindNumber holds a numeric scalar.
	KindNumber
	// KindBool holds a boolean scalar.
	KindBool
	// KindList holds an ordered sequence of Values.
	KindList
	// KindRecord holds a mapping from field name to Value.
	KindRecord
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "absent"
	}
}

// Value is a single node of a semi-structured fact record.
// The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	rec  map[string]Value
}

// Absent returns the absent Value.
func Absent() Value { return Value{} }

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List constructs a list Value from the given items.
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Record constructs a record Value from the given fields.
// The map is copied; later changes to it do not affect the Value.
func Record(fields map[string]Value) Value {
	rec := make(map[string]Value, len(fields))
	for name, v := range fields {
		rec[name] = v
	}
	return Value{kind: KindRecord, rec: rec}
}

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the Value carries information that a merge should
// honor. Absent values and the empty string do not; zero, false, empty lists
// and empty records all do. The asymmetry is deliberate: an empty string is
// "field not answered" while a falsy or empty collection value is an answer.
func (v Value) Present() bool {
	switch v.kind {
	case KindAbsent:
		return false
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// IsRecord reports whether the Value is a record.
func (v Value) IsRecord() bool { return v.kind == KindRecord }

// IsList reports whether the Value is a list.
func (v Value) IsList() bool { return v.kind == KindList }

// AsString returns the string scalar and whether the Value holds one.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric scalar and whether the Value holds one.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean scalar and whether the Value holds one.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Len returns the number of items in a list or fields in a record,
// and zero for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindRecord:
		return len(v.rec)
	default:
		return 0
	}
}

// Items returns a copy of the list items, or nil for non-lists.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	items := make([]Value, len(v.list))
	copy(items, v.list)
	return items
}

// Field returns the named field of a record, or the absent Value.
func (v Value) Field(name string) Value {
	if v.kind != KindRecord {
		return Value{}
	}
	return v.rec[name]
}

// HasField reports whether a record carries the named field.
func (v Value) HasField(name string) bool {
	if v.kind != KindRecord {
		return false
	}
	_, ok := v.rec[name]
	return ok
}

// FieldNames returns the field names of a record in sorted order,
// or nil for non-records.
func (v Value) FieldNames() []string {
	if v.kind != KindRecord {
		return nil
	}
	names := make([]string, 0, len(v.rec))
	for name := range v.rec {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copy returns a structurally independent deep copy of the Value.
func (v Value) Copy() Value {
	switch v.kind {
	case KindList:
		list := make([]Value, len(v.list))
		for i, item := range v.list {
			list[i] = item.Copy()
		}
		return Value{kind: KindList, list: list}
	case KindRecord:
		rec := make(map[string]Value, len(v.rec))
		for name, field := range v.rec {
			rec[name] = field.Copy()
		}
		return Value{kind: KindRecord, rec: rec}
	default:
		return v
	}
}

// Equal reports deep structural equality. Record field order is irrelevant;
// list order is significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(v.rec) != len(other.rec) {
			return false
		}
		for name, field := range v.rec {
			of, ok := other.rec[name]
			if !ok || !field.Equal(of) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// FromAny converts a value decoded from JSON (or any similarly shaped
// interface tree) into a Value. Unrecognized types become absent.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Value{}
	case string:
		return String(t)
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}
		return Number(f)
	case bool:
		return Bool(t)
	case []any:
		list := make([]Value, 0, len(t))
		for _, item := range t {
			list = append(list, FromAny(item))
		}
		return Value{kind: KindList, list: list}
	case map[string]any:
		rec := make(map[string]Value, len(t))
		for name, field := range t {
			rec[name] = FromAny(field)
		}
		return Value{kind: KindRecord, rec: rec}
	default:
		return Value{}
	}
}

// ToAny converts the Value back into plain interface form, suitable for
// encoding. Absent becomes nil.
func (v Value) ToAny() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.ToAny()
		}
		return items
	case KindRecord:
		fields := make(map[string]any, len(v.rec))
		for name, field := range v.rec {
			fields[name] = field.ToAny()
		}
		return fields
	default:
		return nil
	}
}

// MarshalJSON encodes the Value as its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON decodes arbitrary JSON into a Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
