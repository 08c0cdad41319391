// Package encoder implements the BJData/UBJSON encoder: polymorphic
// dispatch over Go value shapes to the minimal wire representation,
// following the dispatch cascade of the reference bjdata encoder
// (_examples/original_source/bjdata/encoder.py's __encode method),
// adapted to arloliu/mebo's Encoder-type-plus-functional-options shape.
package encoder

import (
	"fmt"
	"io"
	"reflect"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/endian"
	"github.com/NeuroJSON/pybj/internal/buffer"
	"github.com/NeuroJSON/pybj/internal/options"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

// Encoder translates Go values into BJData wire bytes. An Encoder is not
// safe for concurrent use; create one per goroutine (spec.md section 5).
type Encoder struct {
	cfg    *config
	engine endian.EndianEngine
	wb     *buffer.WriteBuffer
	depth  int
	seen   map[uintptr]struct{}
}

// New constructs an Encoder with the given options applied over the
// package defaults (BJData mode, little-endian, UInt8-bytes-as-bytes,
// recursion limit 512).
func New(opts ...Option) (*Encoder, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg, engine: endian.EngineFor(cfg.littleEndian)}, nil
}

// EncodeToBytes encodes v and returns the accumulated bytes (dumpb).
func (e *Encoder) EncodeToBytes(v any) ([]byte, error) {
	e.reset(buffer.NewWriteBuffer())

	if err := e.encode(v, ""); err != nil {
		return nil, err
	}

	return e.wb.Finalize()
}

// EncodeTo encodes v, writing wire bytes to sink as they are produced,
// past buffer.DefaultSize worth of buffering (dump).
func (e *Encoder) EncodeTo(sink io.Writer, v any) error {
	e.reset(buffer.NewSinkWriteBuffer(sink, buffer.DefaultSize))

	if err := e.encode(v, ""); err != nil {
		return err
	}
	_, err := e.wb.Finalize()

	return err
}

func (e *Encoder) reset(wb *buffer.WriteBuffer) {
	e.wb = wb
	e.depth = 0
	e.seen = make(map[uintptr]struct{})
}

// encode is the dispatch cascade of spec.md section 4.5: the first
// matching arm wins.
func (e *Encoder) encode(v any, path string) error {
	if vv, ok := v.(value.Value); ok {
		return e.encodeValue(vv, path)
	}
	if m, ok := v.(value.Marshaler); ok {
		out, err := m.MarshalBJData()
		if err != nil {
			return bjerr.NewEncoderError(path, err)
		}

		return e.encodeValue(out, path)
	}

	if v == nil {
		return e.writeMarker(marker.Null)
	}

	switch vv := v.(type) {
	case bool:
		return e.writeBool(vv)
	case string:
		return e.writeString(vv)
	case value.Decimal:
		return e.writeHighPrecText(string(vv), path)
	case []byte:
		return e.writeBytesValue(vv)
	case *value.NDArray:
		return e.writeNDArray(vv, path)
	case *value.Struct:
		return e.writeStruct(vv, path)
	}

	if isIntegerKind(v) {
		return e.writeSignedFromAny(v)
	}
	if isUnsignedKind(v) {
		return e.writeUnsignedFromAny(v)
	}
	if isFloatKind(v) {
		return e.writeFloatFromAny(v)
	}

	// spec.md section 4.5 arms 9/10: a duck-typed Mapper is checked
	// ahead of Sequencer so a type implementing both encodes as an
	// Object, matching value.Sequencer's doc comment.
	if m, ok := v.(value.Mapper); ok {
		return e.encodeMapperValue(m, path)
	}
	if s, ok := v.(value.Sequencer); ok {
		return e.encodeSequencerValue(s, path)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return e.encodeSequenceReflect(rv, path)
	case reflect.Map:
		return e.encodeMapReflect(rv, path)
	case reflect.Struct:
		if e.cfg.defaultFunc == nil {
			return e.encodeStructReflect(rv, path)
		}
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return e.writeMarker(marker.Null)
		}

		return e.encode(rv.Elem().Interface(), path)
	}

	if e.cfg.defaultFunc != nil {
		out, err := e.cfg.defaultFunc(v)
		if err != nil {
			return bjerr.NewEncoderError(path, err)
		}

		return e.encodeValue(out, path)
	}

	return bjerr.NewEncoderError(path, fmt.Errorf("%w: %T", bjerr.ErrUnencodableType, v))
}

// encodeValue dispatches an already-built value.Value.
func (e *Encoder) encodeValue(v value.Value, path string) error {
	switch v.Kind() {
	case value.KindNull:
		return e.writeMarker(marker.Null)
	case value.KindBool:
		b, _ := v.AsBool()

		return e.writeBool(b)
	case value.KindString:
		s, _ := v.AsString()

		return e.writeString(s)
	case value.KindInt:
		i, _ := v.AsInt()

		return e.writeInt(i)
	case value.KindUint:
		u, _ := v.AsUint()

		return e.writeUint(u)
	case value.KindFloat:
		f, _ := v.AsFloat()

		return e.writeFloat(f)
	case value.KindHighPrec:
		d, _ := v.AsHighPrec()

		return e.writeHighPrecText(string(d), path)
	case value.KindBytes:
		b, _ := v.AsBytes()

		return e.writeBytesValue(b)
	case value.KindArray:
		a, _ := v.AsArray()

		return e.encodeArrayValue(a, path)
	case value.KindObject:
		o, _ := v.AsObject()

		return e.encodeObjectValue(o, path)
	case value.KindNDArray:
		nd, _ := v.AsNDArray()

		return e.writeNDArray(nd, path)
	case value.KindStruct:
		st, _ := v.AsStruct()

		return e.writeStruct(st, path)
	default:
		return bjerr.NewEncoderError(path, fmt.Errorf("%w: value.Kind(%d)", bjerr.ErrUnencodableType, v.Kind()))
	}
}

func (e *Encoder) writeMarker(m marker.Marker) error {
	return e.wb.WriteByte(byte(m))
}

func (e *Encoder) writeBool(b bool) error {
	if b {
		return e.writeMarker(marker.BoolTrue)
	}

	return e.writeMarker(marker.BoolFalse)
}

// enterComposite registers ptr as in-progress and fails with
// ErrCircularReference on re-entry, spec.md section 4.5.6's identity
// tracking. It also advances and checks the recursion guard.
func (e *Encoder) enterComposite(ptr uintptr, path string) error {
	e.depth++
	if e.depth > e.cfg.recursionLimit {
		return bjerr.NewEncoderError(path, &bjerr.RecursionError{Depth: e.depth, Limit: e.cfg.recursionLimit})
	}
	if ptr != 0 {
		if _, ok := e.seen[ptr]; ok {
			return bjerr.NewEncoderError(path, bjerr.ErrCircularReference)
		}
		e.seen[ptr] = struct{}{}
	}

	return nil
}

func (e *Encoder) exitComposite(ptr uintptr) {
	e.depth--
	if ptr != 0 {
		delete(e.seen, ptr)
	}
}

// identityPointer returns v's underlying pointer for cycle tracking, or 0
// for kinds with no stable identity to track.
func identityPointer(v any) uintptr {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.Pointer()
	default:
		return 0
	}
}
