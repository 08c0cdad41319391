// Package value implements the BJData/UBJSON in-memory value tree: the
// tagged variant described in spec.md section 3 that the encoder consumes
// and the decoder produces.
package value

import "github.com/NeuroJSON/pybj/marker"

// Value is a tagged union over the BJData/UBJSON data model. The zero
// Value is Null. Values are immutable once constructed; the constructor
// functions below (Null, Bool, Int, ...) are the only way to populate a
// carrier.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string // String/HighPrec text
	bytes []byte
	arr   *Array
	obj   *Object
	nd    *NDArray
	st    *Struct
}

// Kind reports which carrier is populated.
func (v Value) Kind() Kind { return v.kind }

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a signed Int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Uint returns an unsigned Int value. The decoder produces it for every
// unsigned wire marker (UInt8, UInt16, UInt32, UInt64, Byte), whatever
// the magnitude of the value.
func Uint(u uint64) Value { return Value{kind: KindUint, u: u} }

// Float returns a Float value. The encoder chooses the narrowest wire
// width (float32/float64) per spec.md section 4.5.3; Value itself always
// carries the full float64 precision.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// HighPrec returns a HighPrec value carrying decimal text verbatim.
func HighPrec(d Decimal) Value { return Value{kind: KindHighPrec, s: string(d)} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes returns a Bytes value. The slice is retained, not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Arr returns an Array value.
func Arr(a *Array) Value { return Value{kind: KindArray, arr: a} }

// Obj returns an Object value.
func Obj(o *Object) Value { return Value{kind: KindObject, obj: o} }

// NDArr returns an NDArray value.
func NDArr(n *NDArray) Value { return Value{kind: KindNDArray, nd: n} }

// Struc returns a structured (SOA/AOS) array value.
func Struc(s *Struct) Value { return Value{kind: KindStruct, st: s} }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the signed integer payload and whether v is an Int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsUint returns the unsigned integer payload and whether v is an
// unsigned Int.
func (v Value) AsUint() (uint64, bool) { return v.u, v.kind == KindUint }

// AsFloat returns the float payload and whether v is a Float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsHighPrec returns the decimal text payload and whether v is a HighPrec.
func (v Value) AsHighPrec() (Decimal, bool) { return Decimal(v.s), v.kind == KindHighPrec }

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsBytes returns the byte payload and whether v is Bytes.
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

// AsArray returns the array payload and whether v is an Array.
func (v Value) AsArray() (*Array, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the object payload and whether v is an Object.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == KindObject }

// AsNDArray returns the NDArray payload and whether v is an NDArray.
func (v Value) AsNDArray() (*NDArray, bool) { return v.nd, v.kind == KindNDArray }

// AsStruct returns the structured-array payload and whether v is a Struct.
func (v Value) AsStruct() (*Struct, bool) { return v.st, v.kind == KindStruct }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Sequencer is the duck-typed analogue of Python's collections.abc.Sequence
// used by spec.md section 4.5's dispatch order: any Go value implementing
// it is encoded as an Array, checked after Mapper so that a value
// implementing both is encoded as an Object first (spec.md section 4.5
// point 10's ordering note).
type Sequencer interface {
	Len() int
	Index(i int) any
}

// Mapper is the duck-typed analogue of Python's collections.abc.Mapping.
// Range must call yield once per key/value pair in a stable iteration
// order and stop early if yield returns false.
type Mapper interface {
	Len() int
	Range(yield func(key string, val any) bool)
}

// Marshaler lets a Go type provide its own BJData representation, the
// idiomatic-Go analogue of spec.md section 6's default_func adapter.
type Marshaler interface {
	MarshalBJData() (Value, error)
}

// MapEntry is one key/value pair of an Object, in source or wire order.
type MapEntry struct {
	Key   string
	Value Value
}

// Array is an ordered sequence of Values, with an optional declared
// element marker recorded by the decoder when it decoded a strongly-typed
// container (spec.md section 4.6's "$<marker>" prefix).
type Array struct {
	Items        []Value
	DeclaredElem marker.Marker // 0 if no declared element type
	HasDeclared  bool
}

// NewArray returns an Array containing items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

// Len returns the number of items, satisfying Sequencer.
func (a *Array) Len() int { return len(a.Items) }

// Index returns the item at i as any, satisfying Sequencer.
func (a *Array) Index(i int) any { return a.Items[i] }

// Object is an ordered mapping from UTF-8 string keys to Values.
type Object struct {
	Entries      []MapEntry
	DeclaredElem marker.Marker
	HasDeclared  bool

	// Native holds the result of a decoder ObjectPairsHook, when one is
	// configured, in place of the default Object representation.
	// HasNative reports whether it is populated; Entries is still set
	// alongside it so callers that ignore hooks keep working.
	Native    any
	HasNative bool
}

// NewObject returns an Object containing entries, in order.
func NewObject(entries ...MapEntry) *Object {
	return &Object{Entries: entries}
}

// Len returns the number of entries, satisfying Mapper.
func (o *Object) Len() int { return len(o.Entries) }

// Range iterates entries in order, satisfying Mapper.
func (o *Object) Range(yield func(key string, val any) bool) {
	for _, e := range o.Entries {
		if !yield(e.Key, e.Value) {
			return
		}
	}
}

// Get returns the value for key and whether it was found. If the object
// has duplicate keys, Get returns the first occurrence; decode-time
// duplicate resolution (last-wins vs first-wins) happens before the
// Object is built, so by the time it exists there are no duplicates
// unless the caller built it directly.
func (o *Object) Get(key string) (Value, bool) {
	for _, e := range o.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return Value{}, false
}
