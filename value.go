package msgpack

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tag discriminates which payload of a Value is live.
type Tag int

const (
	TagNil Tag = iota
	TagBool
	TagInt
	TagUint
	TagFloat
	TagStr
	TagBin
	TagArray
	TagMap
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagUint:
		return "uint"
	case TagFloat:
		return "float"
	case TagStr:
		return "str"
	case TagBin:
		return "bin"
	case TagArray:
		return "array"
	case TagMap:
		return "map"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// MapEntry is one (key, value) pair of a Map value. Order and duplicates are
// preserved; the map is a list of entries, never a hash table.
type MapEntry struct {
	Key   Value
	Value Value
}

// Value is a dynamically typed MessagePack value. The zero Value is Nil.
//
// Go has no native sum type, so Value carries a Tag plus a single heap-owned
// payload behind an any field rather than one struct field per variant: the
// latter would waste memory and obscure which field is actually live.
type Value struct {
	tag     Tag
	payload any
}

// Nil returns the Nil value.
func Nil() Value { return Value{tag: TagNil} }

// FromBool constructs a Bool value.
func FromBool(b bool) Value { return Value{tag: TagBool, payload: b} }

// FromInt constructs a signed Int value.
func FromInt(i int64) Value { return Value{tag: TagInt, payload: i} }

// FromUint constructs an unsigned UInt value.
func FromUint(u uint64) Value { return Value{tag: TagUint, payload: u} }

// FromFloat constructs a Float value from a binary64.
func FromFloat(f float64) Value { return Value{tag: TagFloat, payload: f} }

// FromFloat32 constructs a Float value from a binary32, widened to float64.
func FromFloat32(f float32) Value { return Value{tag: TagFloat, payload: float64(f)} }

// FromString constructs a Str value. The bytes are taken verbatim; no UTF-8
// validation is performed (Str is opaque bytes on the wire).
func FromString(s string) Value { return Value{tag: TagStr, payload: s} }

// FromStringBytes constructs a Str value from a byte slice, copying it so the
// Value does not alias the caller's storage.
func FromStringBytes(b []byte) Value {
	return Value{tag: TagStr, payload: string(b)}
}

// FromBin constructs a Bin value, copying b so the Value does not alias the
// caller's storage.
func FromBin(b []byte) Value {
	return Value{tag: TagBin, payload: append([]byte(nil), b...)}
}

// FromArray constructs an Array value, copying the elements into new storage
// (a shallow copy: the elements' own payloads are not cloned).
func FromArray(elems []Value) Value {
	return Value{tag: TagArray, payload: append([]Value(nil), elems...)}
}

// FromMap constructs a Map value from an ordered list of entries, preserving
// order and duplicate keys verbatim.
func FromMap(entries []MapEntry) Value {
	return Value{tag: TagMap, payload: append([]MapEntry(nil), entries...)}
}

// Type returns the value's tag.
func (v Value) Type() Tag { return v.tag }

func (v Value) IsNil() bool   { return v.tag == TagNil }
func (v Value) IsBool() bool  { return v.tag == TagBool }
func (v Value) IsInt() bool   { return v.tag == TagInt }
func (v Value) IsUint() bool  { return v.tag == TagUint }
func (v Value) IsFloat() bool { return v.tag == TagFloat }
func (v Value) IsStr() bool   { return v.tag == TagStr }
func (v Value) IsBin() bool   { return v.tag == TagBin }
func (v Value) IsArray() bool { return v.tag == TagArray }
func (v Value) IsMap() bool   { return v.tag == TagMap }

// IsInteger reports whether the tag is Int or Uint.
func (v Value) IsInteger() bool { return v.tag == TagInt || v.tag == TagUint }

// IsNumber reports whether the tag is Int, Uint, or Float.
func (v Value) IsNumber() bool { return v.IsInteger() || v.tag == TagFloat }

// Bool returns the payload if the tag is Bool, otherwise false.
func (v Value) Bool() bool {
	b, _ := v.payload.(bool)
	return b
}

// Int returns the signed payload for Int, the two's-complement
// reinterpretation of the payload for Uint (values >= 2^63 wrap negative),
// or 0 for any other tag.
func (v Value) Int() int64 {
	switch v.tag {
	case TagInt:
		return v.payload.(int64)
	case TagUint:
		return int64(v.payload.(uint64))
	default:
		return 0
	}
}

// Uint returns the unsigned payload for Uint, the payload for Int if it is
// non-negative (0 if negative), or 0 for any other tag.
func (v Value) Uint() uint64 {
	switch v.tag {
	case TagUint:
		return v.payload.(uint64)
	case TagInt:
		i := v.payload.(int64)
		if i < 0 {
			return 0
		}
		return uint64(i)
	default:
		return 0
	}
}

// Float returns the payload for Float, a widened copy of Int/Uint, or 0 for
// any other tag.
func (v Value) Float() float64 {
	switch v.tag {
	case TagFloat:
		return v.payload.(float64)
	case TagInt:
		return float64(v.payload.(int64))
	case TagUint:
		return float64(v.payload.(uint64))
	default:
		return 0
	}
}

// Str returns the payload for Str, or "" for any other tag.
func (v Value) Str() string {
	s, _ := v.payload.(string)
	return s
}

// Bin returns the payload for Bin, or nil for any other tag. The returned
// slice aliases the Value's storage; callers must not mutate it.
func (v Value) Bin() []byte {
	b, _ := v.payload.([]byte)
	return b
}

// Array returns the payload for Array, or nil for any other tag. The
// returned slice aliases the Value's storage; callers must not mutate it.
func (v Value) Array() []Value {
	a, _ := v.payload.([]Value)
	return a
}

// Map returns the payload for Map, or nil for any other tag. The returned
// slice aliases the Value's storage; callers must not mutate it.
func (v Value) Map() []MapEntry {
	m, _ := v.payload.([]MapEntry)
	return m
}

// Len returns the element count for Array/Map, the byte count for Str/Bin,
// or 0 for any other tag.
func (v Value) Len() int {
	switch v.tag {
	case TagArray:
		return len(v.payload.([]Value))
	case TagMap:
		return len(v.payload.([]MapEntry))
	case TagStr:
		return len(v.payload.(string))
	case TagBin:
		return len(v.payload.([]byte))
	default:
		return 0
	}
}

// At returns the i-th element of an Array, or Nil if v is not an Array or i
// is out of range.
func (v Value) At(i int) Value {
	if v.tag != TagArray {
		return Nil()
	}
	a := v.payload.([]Value)
	if i < 0 || i >= len(a) {
		return Nil()
	}
	return a[i]
}

// Lookup performs a linear scan of a Map's entries for the first one whose
// key is a Str equal to key, returning its value, or Nil if v is not a Map or
// no such entry exists.
func (v Value) Lookup(key string) Value {
	if v.tag != TagMap {
		return Nil()
	}
	for _, e := range v.payload.([]MapEntry) {
		if e.Key.tag == TagStr && e.Key.payload.(string) == key {
			return e.Value
		}
	}
	return Nil()
}

// Equal reports whether v and other have the same tag and pointwise-equal
// payload. Float comparison uses IEEE equality (NaN != NaN), not bitwise
// equality. Int and Uint are distinct tags and never equal to each other
// even when they carry the same numeric value.
func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case TagNil:
		return true
	case TagBool:
		return v.payload.(bool) == other.payload.(bool)
	case TagInt:
		return v.payload.(int64) == other.payload.(int64)
	case TagUint:
		return v.payload.(uint64) == other.payload.(uint64)
	case TagFloat:
		return v.payload.(float64) == other.payload.(float64)
	case TagStr:
		return v.payload.(string) == other.payload.(string)
	case TagBin:
		a, b := v.payload.([]byte), other.payload.([]byte)
		return bytesEqual(a, b)
	case TagArray:
		a, b := v.payload.([]Value), other.payload.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case TagMap:
		a, b := v.payload.([]MapEntry), other.payload.([]MapEntry)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Key.Equal(b[i].Key) || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v: Array/Map/Str/Bin payloads are copied so
// the result shares no backing storage with the receiver.
func (v Value) Clone() Value {
	switch v.tag {
	case TagStr:
		return Value{tag: TagStr, payload: strings.Clone(v.payload.(string))}
	case TagBin:
		return FromBin(v.payload.([]byte))
	case TagArray:
		src := v.payload.([]Value)
		dst := make([]Value, len(src))
		for i, e := range src {
			dst[i] = e.Clone()
		}
		return Value{tag: TagArray, payload: dst}
	case TagMap:
		src := v.payload.([]MapEntry)
		dst := make([]MapEntry, len(src))
		for i, e := range src {
			dst[i] = MapEntry{Key: e.Key.Clone(), Value: e.Value.Clone()}
		}
		return Value{tag: TagMap, payload: dst}
	default:
		return v
	}
}

// String returns a diagnostic textual form of v. It is not a wire format and
// is meant for test failure messages and debugging, not machine parsing.
func (v Value) String() string {
	switch v.tag {
	case TagNil:
		return "nil"
	case TagBool:
		if v.payload.(bool) {
			return "true"
		}
		return "false"
	case TagInt:
		return strconv.FormatInt(v.payload.(int64), 10)
	case TagUint:
		return strconv.FormatUint(v.payload.(uint64), 10)
	case TagFloat:
		return formatFloat(v.payload.(float64))
	case TagStr:
		return `"` + v.payload.(string) + `"`
	case TagBin:
		return fmt.Sprintf("<binary:%d bytes>", len(v.payload.([]byte)))
	case TagArray:
		a := v.payload.([]Value)
		parts := make([]string, len(a))
		for i, e := range a {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TagMap:
		m := v.payload.([]MapEntry)
		parts := make([]string, len(m))
		for i, e := range m {
			parts[i] = e.Key.String() + ": " + e.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "+Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
