package decoder

import (
	"fmt"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

// decodeObject reads the body of an object whose ObjectStart marker has
// already been consumed. Like decodeArray, it dispatches on the next
// byte: '$' introduces a column-major SOA, whose declared type must be an
// inline schema (any other declared value type fails with
// ErrTypeMismatch), '#' introduces a declared count, anything else is a
// terminated object read until ObjectEnd.
func (d *Decoder) decodeObject() (value.Value, error) {
	next, err := d.peekMarker()
	if err != nil {
		return value.Value{}, err
	}

	switch next {
	case marker.ContainerType:
		_, _ = d.readMarker()

		return d.decodeTypedObjectBody()
	case marker.ContainerCount:
		_, _ = d.readMarker()

		n, err := d.decodeLength()
		if err != nil {
			return value.Value{}, err
		}
		if err := d.checkCount(n); err != nil {
			return value.Value{}, err
		}

		entries := make([]value.MapEntry, 0, n)
		for range n {
			entry, err := d.decodeEntry()
			if err != nil {
				return value.Value{}, err
			}
			entries = appendEntry(entries, entry, d.cfg.firstKeyWins)
		}

		return d.buildObject(entries)
	default:
		var entries []value.MapEntry
		for {
			peeked, err := d.peekMarker()
			if err != nil {
				return value.Value{}, err
			}
			if peeked == marker.ObjectEnd {
				_, _ = d.readMarker()

				break
			}
			entry, err := d.decodeEntry()
			if err != nil {
				return value.Value{}, err
			}
			entries = appendEntry(entries, entry, d.cfg.firstKeyWins)
		}

		return d.buildObject(entries)
	}
}

// buildObject wraps entries as the default value.Object, unless an
// ObjectPairsHook is configured, in which case the hook's result is
// carried alongside entries as Object.Native.
func (d *Decoder) buildObject(entries []value.MapEntry) (value.Value, error) {
	if d.cfg.objectPairsHook == nil {
		return value.Obj(value.NewObject(entries...)), nil
	}

	native, err := d.cfg.objectPairsHook(entries)
	if err != nil {
		return value.Value{}, d.fail(err)
	}

	return value.Obj(&value.Object{Entries: entries, Native: native, HasNative: true}), nil
}

func (d *Decoder) decodeEntry() (value.MapEntry, error) {
	key, err := d.decodeKey()
	if err != nil {
		return value.MapEntry{}, err
	}
	v, err := d.decodeValue()
	if err != nil {
		return value.MapEntry{}, err
	}

	return value.MapEntry{Key: key, Value: v}, nil
}

func (d *Decoder) decodeKey() (string, error) {
	n, err := d.decodeLength()
	if err != nil {
		return "", err
	}
	raw, err := d.src.Read(n)
	if err != nil {
		return "", d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	key := string(raw)
	if !d.cfg.internKeys {
		return key, nil
	}

	if interned, ok := d.keyIntern[key]; ok {
		return interned, nil
	}
	if d.keyIntern == nil {
		d.keyIntern = make(map[string]string)
	}
	d.keyIntern[key] = key

	return key, nil
}

// appendEntry resolves duplicate keys per firstKeyWins, keeping entries
// free of duplicates so Object.Get's first-match scan stays correct
// either way: last-wins (the default) overwrites the earlier entry's
// value in place, first-wins leaves it untouched.
func appendEntry(entries []value.MapEntry, e value.MapEntry, firstKeyWins bool) []value.MapEntry {
	for i, existing := range entries {
		if existing.Key == e.Key {
			if !firstKeyWins {
				entries[i] = e
			}

			return entries
		}
	}

	return append(entries, e)
}

// decodeSchema reads a "{ <name-len><name><type-marker>... }" inline
// schema object, with ObjectStart already consumed, the format the
// encoder's writeSchema produces for SOA row/column layouts.
func (d *Decoder) decodeSchema() ([]value.FieldSpec, error) {
	var fields []value.FieldSpec
	for {
		peeked, err := d.peekMarker()
		if err != nil {
			return nil, err
		}
		if peeked == marker.ObjectEnd {
			_, _ = d.readMarker()

			break
		}
		name, err := d.decodeKey()
		if err != nil {
			return nil, err
		}
		typeMarker, err := d.readMarker()
		if err != nil {
			return nil, err
		}
		fields = append(fields, value.FieldSpec{Name: name, Elem: typeMarker})
	}

	return fields, nil
}

// decodeTypedObjectBody handles everything that can follow "{$": a
// column-major SOA (elem marker is ObjectStart, i.e. an inline schema).
func (d *Decoder) decodeTypedObjectBody() (value.Value, error) {
	elemMarker, err := d.readMarker()
	if err != nil {
		return value.Value{}, err
	}

	if elemMarker != marker.ObjectStart {
		return value.Value{}, d.fail(fmt.Errorf("%w: strongly-typed object requires an inline schema", bjerr.ErrTypeMismatch))
	}

	fields, err := d.decodeSchema()
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeSOAColumns(fields)
}

// decodeSOAColumns reads a column-major SOA body: "#<count>" followed by
// each field's values packed contiguously in schema order.
func (d *Decoder) decodeSOAColumns(fields []value.FieldSpec) (value.Value, error) {
	if err := d.expectMarker(marker.ContainerCount); err != nil {
		return value.Value{}, err
	}
	n, err := d.decodeLength()
	if err != nil {
		return value.Value{}, err
	}
	if err := d.checkCount(n); err != nil {
		return value.Value{}, err
	}

	columns := make(map[string]any, len(fields))
	for _, f := range fields {
		col, err := d.decodeTypedSlice(f.Elem, n)
		if err != nil {
			return value.Value{}, err
		}
		columns[f.Name] = col
	}

	return value.Struc(&value.Struct{Fields: fields, Count: n, Columns: columns}), nil
}

// decodeRowElement reads one field value in a row-major SOA record: a
// bool field carries one T/F marker per element (writeStructRows's
// writeBool), everything else is a fixed-width payload.
func (d *Decoder) decodeRowElement(elem marker.Marker) (value.Value, error) {
	if elem == marker.BoolTrue || elem == marker.BoolFalse {
		return d.decodeBoolElement()
	}

	width, ok := elem.IsFixedWidth()
	if !ok || width == 0 {
		return value.Value{}, d.fail(fmt.Errorf("%w: %s is not a valid struct field type", bjerr.ErrTypeMismatch, elem))
	}

	raw, err := d.src.Read(width)
	if err != nil {
		return value.Value{}, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	return d.decodeFixedValue(elem, raw)
}

// decodeSOARows reads a row-major SOA body: "#<count>" followed by count
// records, each holding one value per field in schema order.
func (d *Decoder) decodeSOARows(fields []value.FieldSpec) (value.Value, error) {
	if err := d.expectMarker(marker.ContainerCount); err != nil {
		return value.Value{}, err
	}
	n, err := d.decodeLength()
	if err != nil {
		return value.Value{}, err
	}
	if err := d.checkCount(n); err != nil {
		return value.Value{}, err
	}

	columns := make(map[string]any, len(fields))
	for _, f := range fields {
		columns[f.Name] = newColumnSlice(f.Elem, n)
	}

	for row := range n {
		for _, f := range fields {
			elem, err := d.decodeRowElement(f.Elem)
			if err != nil {
				return value.Value{}, err
			}
			assignColumn(columns[f.Name], row, elem)
		}
	}

	return value.Struc(&value.Struct{Fields: fields, Count: n, Columns: columns}), nil
}
