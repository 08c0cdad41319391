package encoder

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/numeric"
	"github.com/NeuroJSON/pybj/value"
)

// encodeArrayValue implements spec.md section 4.5.6 for a pre-built
// value.Array.
func (e *Encoder) encodeArrayValue(a *value.Array, path string) error {
	ptr := uintptr(unsafe.Pointer(a))
	if err := e.enterComposite(ptr, path); err != nil {
		return err
	}
	defer e.exitComposite(ptr)

	if e.cfg.stc {
		if m, ok := e.uniformMarker(a.Items); ok {
			return e.writeSTCArray(m, a.Items, path)
		}
	}

	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}

	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(len(a.Items))); err != nil {
			return err
		}
		for i, item := range a.Items {
			if err := e.encodeValue(item, childPath(path, i)); err != nil {
				return err
			}
		}

		return nil
	}

	for i, item := range a.Items {
		if err := e.encodeValue(item, childPath(path, i)); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ArrayEnd)
}

// writeSTCArray emits the strongly-typed-container form:
// "[ $ <marker> # <count> <raw elements, no per-element marker>".
func (e *Encoder) writeSTCArray(m marker.Marker, items []value.Value, path string) error {
	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerType); err != nil {
		return err
	}
	if err := e.writeMarker(m); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerCount); err != nil {
		return err
	}
	if err := e.writeLength(int64(len(items))); err != nil {
		return err
	}

	for i, item := range items {
		if err := e.writeSTCElement(m, item, childPath(path, i)); err != nil {
			return err
		}
	}

	return nil
}

// writeSTCElement writes item's raw payload only, per the marker already
// declared by the enclosing STC prefix.
func (e *Encoder) writeSTCElement(m marker.Marker, item value.Value, path string) error {
	switch m {
	case marker.BoolTrue, marker.BoolFalse:
		return nil // the marker itself encodes the value; nothing else to write.
	case marker.Float32, marker.Float64:
		f, _ := item.AsFloat()
		if m == marker.Float32 {
			return e.writeRaw(numeric.PackFloat32(e.engine, float32(f)))
		}

		return e.writeRaw(numeric.PackFloat64(e.engine, f))
	default:
		width, _ := m.IsFixedWidth()
		var n int64
		switch item.Kind() {
		case value.KindInt:
			n, _ = item.AsInt()
		case value.KindUint:
			u, _ := item.AsUint()
			n = int64(u)
		default:
			return fmt.Errorf("encoder: STC element at %s has unexpected kind %v for marker %v", path, item.Kind(), m)
		}
		signed := m != marker.UInt8 && m != marker.UInt16 && m != marker.UInt32 && m != marker.UInt64

		return e.writeFixedRaw(width, signed, n)
	}
}

// uniformMarker reports whether every item in items would be written with
// the same fixed-width marker, and if so, which one. Used to decide
// whether the STC optimization applies.
func (e *Encoder) uniformMarker(items []value.Value) (marker.Marker, bool) {
	if len(items) == 0 {
		return 0, false
	}

	first, ok := e.markerFor(items[0])
	if !ok {
		return 0, false
	}
	if _, fixed := first.IsFixedWidth(); !fixed {
		return 0, false
	}

	for _, item := range items[1:] {
		m, ok := e.markerFor(item)
		if !ok || m != first {
			return 0, false
		}
	}

	return first, true
}

func (e *Encoder) markerFor(v value.Value) (marker.Marker, bool) {
	switch v.Kind() {
	case value.KindInt:
		i, _ := v.AsInt()

		return e.intMarker(i), true
	case value.KindUint:
		u, _ := v.AsUint()

		return e.nonNegativeMarker(u), true
	case value.KindFloat:
		f, _ := v.AsFloat()

		return e.floatMarker(f)
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return marker.BoolTrue, true
		}

		return marker.BoolFalse, true
	default:
		return 0, false
	}
}

// encodeSequencerValue implements spec.md section 4.5's Sequence arm for a
// user type implementing value.Sequencer without a native slice/array
// kind.
func (e *Encoder) encodeSequencerValue(s value.Sequencer, path string) error {
	ptr := identityPointer(s)
	if err := e.enterComposite(ptr, path); err != nil {
		return err
	}
	defer e.exitComposite(ptr)

	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}

	n := s.Len()
	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.encode(s.Index(i), childPath(path, i)); err != nil {
				return err
			}
		}

		return nil
	}

	for i := 0; i < n; i++ {
		if err := e.encode(s.Index(i), childPath(path, i)); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ArrayEnd)
}

// encodeSequenceReflect implements spec.md section 4.5.6 for a native Go
// slice or array, without materializing a value.Array.
func (e *Encoder) encodeSequenceReflect(rv reflect.Value, path string) error {
	var ptr uintptr
	if rv.Kind() == reflect.Slice && rv.Len() > 0 {
		ptr = rv.Pointer()
	}
	if err := e.enterComposite(ptr, path); err != nil {
		return err
	}
	defer e.exitComposite(ptr)

	if e.cfg.stc {
		items := make([]value.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			switch ev := rv.Index(i); ev.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				items = append(items, value.Int(ev.Int()))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				items = append(items, value.Uint(ev.Uint()))
			case reflect.Float32, reflect.Float64:
				items = append(items, value.Float(ev.Float()))
			}
		}
		if m, ok := e.uniformMarker(items); ok && len(items) == rv.Len() {
			return e.writeSTCArray(m, items, path)
		}
	}

	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}

	n := rv.Len()
	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.encode(rv.Index(i).Interface(), childPath(path, i)); err != nil {
				return err
			}
		}

		return nil
	}

	for i := 0; i < n; i++ {
		if err := e.encode(rv.Index(i).Interface(), childPath(path, i)); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ArrayEnd)
}

func childPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
