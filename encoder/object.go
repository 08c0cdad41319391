package encoder

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

func nonStringKeyError(path string, keyType reflect.Type) error {
	return bjerr.NewEncoderError(path, fmt.Errorf("%w: map key type %s", bjerr.ErrNonStringKey, keyType))
}

// encodeObjectValue implements spec.md section 4.5.7 for a pre-built
// value.Object.
func (e *Encoder) encodeObjectValue(o *value.Object, path string) error {
	ptr := uintptr(unsafe.Pointer(o))
	if err := e.enterComposite(ptr, path); err != nil {
		return err
	}
	defer e.exitComposite(ptr)

	entries := o.Entries
	if e.cfg.sortKeys {
		entries = sortedEntries(entries)
	}

	return e.writeObjectEntries(entries, path)
}

func sortedEntries(entries []value.MapEntry) []value.MapEntry {
	sorted := make([]value.MapEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	return sorted
}

func (e *Encoder) writeObjectEntries(entries []value.MapEntry, path string) error {
	if err := e.writeMarker(marker.ObjectStart); err != nil {
		return err
	}

	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(len(entries))); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := e.writeObjectEntry(entry, path); err != nil {
				return err
			}
		}

		return nil
	}

	for _, entry := range entries {
		if err := e.writeObjectEntry(entry, path); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ObjectEnd)
}

func (e *Encoder) writeObjectEntry(entry value.MapEntry, path string) error {
	if err := e.writeLength(int64(len(entry.Key))); err != nil {
		return err
	}
	if err := e.writeRaw([]byte(entry.Key)); err != nil {
		return err
	}

	return e.encodeValue(entry.Value, path+"."+entry.Key)
}

// encodeMapperValue implements spec.md section 4.5's Mapping arm for a
// user type implementing value.Mapper without a native map or struct
// kind (e.g. an ordered-map wrapper).
func (e *Encoder) encodeMapperValue(m value.Mapper, path string) error {
	ptr := identityPointer(m)
	if err := e.enterComposite(ptr, path); err != nil {
		return err
	}
	defer e.exitComposite(ptr)

	type pair struct {
		key string
		val any
	}
	pairs := make([]pair, 0, m.Len())
	m.Range(func(key string, val any) bool {
		pairs = append(pairs, pair{key, val})

		return true
	})
	if e.cfg.sortKeys {
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	}

	writeEntry := func(p pair) error {
		if err := e.writeLength(int64(len(p.key))); err != nil {
			return err
		}
		if err := e.writeRaw([]byte(p.key)); err != nil {
			return err
		}

		return e.encode(p.val, path+"."+p.key)
	}

	if err := e.writeMarker(marker.ObjectStart); err != nil {
		return err
	}

	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(len(pairs))); err != nil {
			return err
		}
		for _, p := range pairs {
			if err := writeEntry(p); err != nil {
				return err
			}
		}

		return nil
	}

	for _, p := range pairs {
		if err := writeEntry(p); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ObjectEnd)
}

// encodeMapReflect implements spec.md section 4.5.7 for a native Go map.
// Non-string keys fail with ErrNonStringKey via nonStringKeyError.
func (e *Encoder) encodeMapReflect(rv reflect.Value, path string) error {
	if rv.Type().Key().Kind() != reflect.String {
		return nonStringKeyError(path, rv.Type().Key())
	}

	var ptr uintptr
	if rv.Len() > 0 {
		ptr = rv.Pointer()
	}
	if err := e.enterComposite(ptr, path); err != nil {
		return err
	}
	defer e.exitComposite(ptr)

	keys := rv.MapKeys()
	if e.cfg.sortKeys {
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	}

	if err := e.writeMarker(marker.ObjectStart); err != nil {
		return err
	}

	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(len(keys))); err != nil {
			return err
		}
		for _, k := range keys {
			if err := e.writeMapReflectEntry(rv, k, path); err != nil {
				return err
			}
		}

		return nil
	}

	for _, k := range keys {
		if err := e.writeMapReflectEntry(rv, k, path); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ObjectEnd)
}

func (e *Encoder) writeMapReflectEntry(rv, k reflect.Value, path string) error {
	key := k.String()
	if err := e.writeLength(int64(len(key))); err != nil {
		return err
	}
	if err := e.writeRaw([]byte(key)); err != nil {
		return err
	}

	return e.encode(rv.MapIndex(k).Interface(), path+"."+key)
}

// encodeStructReflect encodes an exported-field Go struct as an Object,
// the idiomatic-Go analogue of "Mapping" for types that don't implement
// value.Mapper: field name (or its `bjdata:"name"` tag) becomes the key.
// A field tagged `bjdata:"-"` is skipped.
func (e *Encoder) encodeStructReflect(rv reflect.Value, path string) error {
	t := rv.Type()
	names := make([]string, 0, t.NumField())
	fieldByName := make(map[string]reflect.Value, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := structFieldName(field)
		if skip {
			continue
		}
		names = append(names, name)
		fieldByName[name] = rv.Field(i)
	}

	if e.cfg.sortKeys {
		sort.Strings(names)
	}

	if err := e.writeMarker(marker.ObjectStart); err != nil {
		return err
	}

	if e.cfg.containerCount {
		if err := e.writeMarker(marker.ContainerCount); err != nil {
			return err
		}
		if err := e.writeLength(int64(len(names))); err != nil {
			return err
		}
		for _, name := range names {
			if err := e.writeStructField(name, fieldByName[name], path); err != nil {
				return err
			}
		}

		return nil
	}

	for _, name := range names {
		if err := e.writeStructField(name, fieldByName[name], path); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ObjectEnd)
}

func (e *Encoder) writeStructField(name string, fv reflect.Value, path string) error {
	if err := e.writeLength(int64(len(name))); err != nil {
		return err
	}
	if err := e.writeRaw([]byte(name)); err != nil {
		return err
	}

	return e.encode(fv.Interface(), path+"."+name)
}

func structFieldName(field reflect.StructField) (name string, skip bool) {
	tag, ok := field.Tag.Lookup("bjdata")
	if !ok {
		return field.Name, false
	}
	if tag == "-" {
		return "", true
	}

	return tag, false
}
