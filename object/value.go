// Package object implements the MiniScript value representation and the
// seven heap object kinds the front end allocates into: String, List, Map,
// Range, Script, Function and Fiber. Allocation is always routed through an
// Allocator (implemented by package heap) so every object lands on the
// all-objects list the collector walks.
package object

import "math"

// Tag discriminates the variants of a Value.
type Tag uint8

const (
	TagNull Tag = iota
	TagBool
	TagNumber
	TagObject
	// TagUndefined is the internal sentinel from spec §3: a map-entry empty
	// slot marker, a token's initial literal, and a "name not found" marker.
	// It is never constructed from user-visible syntax.
	TagUndefined
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "Null"
	case TagBool:
		return "Bool"
	case TagNumber:
		return "Number"
	case TagObject:
		return "Object"
	case TagUndefined:
		return "Undefined"
	default:
		return "?"
	}
}

// Value is a tagged union over {null, bool, number, object-reference,
// undefined}, implemented as an explicit tagged record rather than a
// NaN-boxed float64 word: spec §3 permits either encoding, and a record is
// the idiomatic Go realization (no example in the corpus represents a
// dynamic value by bit-packing a float).
type Value struct {
	tag Tag
	num float64
	b   bool
	obj Obj
}

// Obj is implemented by every heap object kind (via the embedded Header) so
// a Value can hold a reference to any of them without object depending on a
// concrete Value-shaped field per kind.
type Obj interface {
	header() *Header
}

// Null returns the null value.
func Null() Value { return Value{tag: TagNull} }

// Undefined returns the internal undefined sentinel.
func Undefined() Value { return Value{tag: TagUndefined} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{tag: TagBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{tag: TagNumber, num: n} }

// FromObj returns a value wrapping a heap object.
func FromObj(o Obj) Value { return Value{tag: TagObject, obj: o} }

// Tag reports the value's discriminant.
func (v Value) Tag() Tag { return v.tag }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.tag == TagNull }

// IsUndefined reports whether v is the undefined sentinel.
func (v Value) IsUndefined() bool { return v.tag == TagUndefined }

// AsBool returns v's boolean payload and whether v is actually a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.tag == TagBool }

// AsNumber returns v's numeric payload and whether v is actually a number.
func (v Value) AsNumber() (float64, bool) { return v.num, v.tag == TagNumber }

// AsObj returns v's object payload and whether v actually holds one.
func (v Value) AsObj() (Obj, bool) { return v.obj, v.tag == TagObject }

// Kind returns the heap-object kind of v, or false if v is not an object.
func (v Value) Kind() (Kind, bool) {
	if v.tag != TagObject {
		return 0, false
	}
	return v.obj.header().kind, true
}

// HeaderOf returns the object header backing o, for the collector to mark
// and for the all-objects list to link through. It is the one place outside
// this package that needs to cross from the opaque Obj interface to the
// header every kind embeds.
func HeaderOf(o Obj) *Header { return o.header() }

// ObjHeader returns v's header and whether v actually holds an object.
func (v Value) ObjHeader() (*Header, bool) {
	if v.tag != TagObject {
		return nil, false
	}
	return v.obj.header(), true
}

// TypeName returns the user-facing type name of v, per the GLOSSARY's
// notion of a "type-name" literal.
func (v Value) TypeName() string {
	switch v.tag {
	case TagNull:
		return "Null"
	case TagBool:
		return "Bool"
	case TagNumber:
		return "Number"
	case TagUndefined:
		return "Undefined"
	case TagObject:
		return v.obj.header().kind.String()
	default:
		return "?"
	}
}

// IsTruthy reports whether v is truthy in a conditional context: only
// false and null are falsy, matching the dynamic-language convention the
// rest of the corpus's interpreters (Starlark, DYMS-Lang, nenuphar) use.
func (v Value) IsTruthy() bool {
	switch v.tag {
	case TagNull:
		return false
	case TagBool:
		return v.b
	default:
		return true
	}
}

// Same implements spec §3's bitwise/identity comparison: two numbers are
// Same only if their bit patterns match (so NaN is Same as itself, and +0
// is not Same as -0), two objects are Same only if they are the identical
// heap object, and other tags are Same iff the tags match.
func Same(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagNull, TagUndefined:
		return true
	case TagBool:
		return a.b == b.b
	case TagNumber:
		return math.Float64bits(a.num) == math.Float64bits(b.num)
	case TagObject:
		return a.obj == b.obj
	default:
		return false
	}
}

// Equal implements spec §3's deep comparison: Same values are always Equal;
// beyond that, Strings compare by hash+length+bytes and Ranges compare
// field-wise, while every other object kind falls back to identity (i.e.
// gains nothing Same didn't already give it).
func Equal(a, b Value) bool {
	if Same(a, b) {
		return true
	}
	if a.tag != TagObject || b.tag != TagObject {
		return false
	}
	ak, bk := a.obj.header().kind, b.obj.header().kind
	if ak != bk {
		return false
	}
	switch ak {
	case KindString:
		as, bs := a.obj.(*String), b.obj.(*String)
		return as.hash == bs.hash && as.length == bs.length && string(as.Bytes()) == string(bs.Bytes())
	case KindRange:
		ar, br := a.obj.(*Range), b.obj.(*Range)
		return ar.From == br.From && ar.To == br.To
	default:
		return false
	}
}

// Same reports whether v and other are bitwise/identity-equal.
func (v Value) Same(other Value) bool { return Same(v, other) }

// Equal reports whether v and other are deep-equal.
func (v Value) Equal(other Value) bool { return Equal(v, other) }
