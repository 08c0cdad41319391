package encoder

import (
	"math"
	"reflect"
	"strconv"

	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/numeric"
	"github.com/NeuroJSON/pybj/value"
)

// writeString implements spec.md section 4.5.1: a one-byte, sub-0x80
// string is a Char; everything else is a length-prefixed String.
func (e *Encoder) writeString(s string) error {
	if len(s) == 1 && s[0] < 0x80 {
		if err := e.writeMarker(marker.Char); err != nil {
			return err
		}

		return e.wb.WriteByte(s[0])
	}

	if err := e.writeMarker(marker.String); err != nil {
		return err
	}
	if err := e.writeLength(int64(len(s))); err != nil {
		return err
	}
	_, err := e.wb.Write([]byte(s))

	return err
}

// writeLength encodes a non-negative count/length as the narrowest
// integer marker, spec.md section 4.5.2 as referenced by 4.5.1/4.5.6/4.5.7.
func (e *Encoder) writeLength(n int64) error {
	return e.writeInt(n)
}

// writeInt implements spec.md section 4.5.2 for a signed value: choose
// the narrowest marker that fits, preferring unsigned 8-bit for small
// non-negative values.
func (e *Encoder) writeInt(n int64) error {
	if n >= 0 {
		return e.writeNonNegative(uint64(n))
	}

	m, width := signedMarker(n)

	return e.writeFixed(m, width, true, n)
}

// signedMarker picks the narrowest signed marker/width for a negative n.
func signedMarker(n int64) (marker.Marker, int) {
	switch {
	case n >= math.MinInt8:
		return marker.Int8, 1
	case n >= math.MinInt16:
		return marker.Int16, 2
	case n >= math.MinInt32:
		return marker.Int32, 4
	default:
		return marker.Int64, 8
	}
}

// writeUint implements the BJData-mode unsigned branch of spec.md section
// 4.5.2 for values that may exceed math.MaxInt64.
func (e *Encoder) writeUint(u uint64) error {
	return e.writeNonNegative(u)
}

func (e *Encoder) writeNonNegative(u uint64) error {
	if u <= math.MaxUint8 {
		return e.writeFixed(marker.UInt8, 1, false, int64(u))
	}
	if e.cfg.mode == ModeStrictUBJSON {
		return e.writeStrictNonNegative(u)
	}

	switch {
	case u <= math.MaxUint16:
		return e.writeFixed(marker.UInt16, 2, false, int64(u))
	case u <= math.MaxUint32:
		return e.writeFixed(marker.UInt32, 4, false, int64(u))
	case u <= math.MaxInt64:
		return e.writeFixed(marker.Int64, 8, true, int64(u))
	default:
		if err := e.writeMarker(marker.UInt64); err != nil {
			return err
		}

		return e.writeRaw(numeric.PackUint64(e.engine, u))
	}
}

// writeStrictNonNegative applies strict-UBJSON ranges (UInt8, Int16,
// Int32, Int64; no UInt16/32/64) to a non-negative value already known
// not to fit in UInt8.
func (e *Encoder) writeStrictNonNegative(u uint64) error {
	switch {
	case u <= math.MaxInt16:
		return e.writeFixed(marker.Int16, 2, true, int64(u))
	case u <= math.MaxInt32:
		return e.writeFixed(marker.Int32, 4, true, int64(u))
	case u <= math.MaxInt64:
		return e.writeFixed(marker.Int64, 8, true, int64(u))
	default:
		return e.writeHighPrecText(strconv.FormatUint(u, 10), "")
	}
}

// intMarker reports the marker writeInt would choose for n, without
// writing anything. Used by the STC scan (array.go) to test whether a
// sequence is uniformly typed.
func (e *Encoder) intMarker(n int64) marker.Marker {
	if n >= 0 {
		return e.nonNegativeMarker(uint64(n))
	}
	m, _ := signedMarker(n)

	return m
}

func (e *Encoder) nonNegativeMarker(u uint64) marker.Marker {
	if u <= math.MaxUint8 {
		return marker.UInt8
	}
	if e.cfg.mode == ModeStrictUBJSON {
		switch {
		case u <= math.MaxInt16:
			return marker.Int16
		case u <= math.MaxInt32:
			return marker.Int32
		default:
			return marker.Int64
		}
	}

	switch {
	case u <= math.MaxUint16:
		return marker.UInt16
	case u <= math.MaxUint32:
		return marker.UInt32
	case u <= math.MaxInt64:
		return marker.Int64
	default:
		return marker.UInt64
	}
}

// floatMarker reports the marker writeFloat would choose for f, and
// whether f can be represented as a fixed-width float at all (false for
// NaN/Inf/subnormal, which fall back to Null/HighPrec).
func (e *Encoder) floatMarker(f float64) (marker.Marker, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f == 0 {
		return marker.Float32, true
	}
	abs := math.Abs(f)
	if abs < float64MinNormal {
		return 0, false
	}
	if !e.cfg.noFloat32 && isFloat32Range(abs) {
		return marker.Float32, true
	}

	return marker.Float64, true
}

func (e *Encoder) writeFixed(m marker.Marker, width int, signed bool, value int64) error {
	if err := e.writeMarker(m); err != nil {
		return err
	}

	buf, err := numeric.PackInt(e.engine, width, signed, value)
	if err != nil {
		return err
	}

	return e.writeRaw(buf)
}

// writeFixedRaw writes value's payload only, without a marker byte. Used
// by the STC element writer, which already emitted one shared marker for
// the whole container.
func (e *Encoder) writeFixedRaw(width int, signed bool, value int64) error {
	buf, err := numeric.PackInt(e.engine, width, signed, value)
	if err != nil {
		return err
	}

	return e.writeRaw(buf)
}

func (e *Encoder) writeRaw(b []byte) error {
	_, err := e.wb.Write(b)

	return err
}

// writeFloat implements spec.md section 4.5.3.
func (e *Encoder) writeFloat(f float64) error {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		// spec.md section 4.5.4: a non-finite HighPrec decimal always maps
		// to Null, and that rule governs NaN/Inf floats too since neither
		// can be written as canonical decimal text.
		return e.writeMarker(marker.Null)
	case f == 0:
		return e.writeFloat32Wire(0)
	}

	abs := math.Abs(f)
	if abs < float64MinNormal {
		// Below the smallest normal float64: neither wire float width can
		// carry it without loss, so it falls back to decimal text.
		return e.writeHighPrecText(strconv.FormatFloat(f, 'g', -1, 64), "")
	}
	if !e.cfg.noFloat32 && isFloat32Range(abs) {
		return e.writeFloat32Wire(float32(f))
	}

	return e.writeFloat64Wire(f)
}

const (
	float32MinNormal = 1.1754943508222875e-38
	float32Max       = 3.4028234663852886e+38
	float64MinNormal = 2.2250738585072014e-308
)

func isFloat32Range(abs float64) bool {
	return abs >= float32MinNormal && abs <= float32Max
}

func (e *Encoder) writeFloat32Wire(f float32) error {
	if err := e.writeMarker(marker.Float32); err != nil {
		return err
	}

	return e.writeRaw(numeric.PackFloat32(e.engine, f))
}

func (e *Encoder) writeFloat64Wire(f float64) error {
	if err := e.writeMarker(marker.Float64); err != nil {
		return err
	}

	return e.writeRaw(numeric.PackFloat64(e.engine, f))
}

// writeHighPrecText implements spec.md section 4.5.4: non-finite decimal
// text maps to Null, everything else is length-prefixed UTF-8 behind the
// HighPrec marker.
func (e *Encoder) writeHighPrecText(text string, path string) error {
	if _, ok := value.NewDecimal(text); !ok {
		return e.writeMarker(marker.Null)
	}

	if err := e.writeMarker(marker.HighPrec); err != nil {
		return err
	}
	if err := e.writeLength(int64(len(text))); err != nil {
		return err
	}

	return e.writeRaw([]byte(text))
}

// writeBytesValue implements spec.md section 4.5's Bytes form: a
// strongly-typed UInt8 array with an explicit count, no terminator.
func (e *Encoder) writeBytesValue(b []byte) error {
	if !e.cfg.uint8Bytes {
		return e.encodeSequenceReflect(reflect.ValueOf(b), "")
	}

	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerType); err != nil {
		return err
	}
	if err := e.writeMarker(marker.UInt8); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerCount); err != nil {
		return err
	}
	if err := e.writeLength(int64(len(b))); err != nil {
		return err
	}

	return e.writeRaw(b)
}

func isIntegerKind(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64:
		return true
	default:
		return false
	}
}

func isUnsignedKind(v any) bool {
	switch v.(type) {
	case uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isFloatKind(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

func (e *Encoder) writeSignedFromAny(v any) error {
	return e.writeInt(reflect.ValueOf(v).Int())
}

func (e *Encoder) writeUnsignedFromAny(v any) error {
	return e.writeUint(reflect.ValueOf(v).Uint())
}

func (e *Encoder) writeFloatFromAny(v any) error {
	if f32, ok := v.(float32); ok {
		return e.writeFloat(float64(f32))
	}

	return e.writeFloat(v.(float64))
}
