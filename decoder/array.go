package decoder

import (
	"fmt"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

// decodeArray reads the body of an array whose ArrayStart marker has
// already been consumed, dispatching on the next byte per spec.md
// section 4.6: '$' introduces a strongly-typed container (STC, NDArray or
// row-major SOA), '#' introduces a declared count, anything else is a
// terminated array read until ArrayEnd.
func (d *Decoder) decodeArray() (value.Value, error) {
	next, err := d.peekMarker()
	if err != nil {
		return value.Value{}, err
	}

	switch next {
	case marker.ContainerType:
		_, _ = d.readMarker()

		return d.decodeTypedArrayBody()
	case marker.ContainerCount:
		_, _ = d.readMarker()

		n, err := d.decodeLength()
		if err != nil {
			return value.Value{}, err
		}
		if err := d.checkCount(n); err != nil {
			return value.Value{}, err
		}

		items := make([]value.Value, n)
		for i := range items {
			items[i], err = d.decodeValue()
			if err != nil {
				return value.Value{}, err
			}
		}

		return value.Arr(value.NewArray(items...)), nil
	default:
		var items []value.Value
		for {
			peeked, err := d.peekMarker()
			if err != nil {
				return value.Value{}, err
			}
			if peeked == marker.ArrayEnd {
				_, _ = d.readMarker()

				break
			}
			item, err := d.decodeValue()
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, item)
		}

		return value.Arr(value.NewArray(items...)), nil
	}
}

// decodeTypedArrayBody handles everything that can follow "[$": a
// row-major SOA (elem marker is ObjectStart, i.e. an inline schema), or a
// uniformly-typed container (NDArray, plain STC array, or a UInt8 byte
// string) whose element marker is a scalar type.
func (d *Decoder) decodeTypedArrayBody() (value.Value, error) {
	elemMarker, err := d.readMarker()
	if err != nil {
		return value.Value{}, err
	}

	if elemMarker == marker.ObjectStart {
		fields, err := d.decodeSchema()
		if err != nil {
			return value.Value{}, err
		}

		return d.decodeSOARows(fields)
	}

	if _, ok := elemMarker.IsFixedWidth(); !ok {
		return value.Value{}, d.fail(fmt.Errorf("%w: %s cannot be a strongly-typed element", bjerr.ErrTypeMismatch, elemMarker))
	}

	if err := d.expectMarker(marker.ContainerCount); err != nil {
		return value.Value{}, err
	}

	shapePeek, err := d.peekMarker()
	if err != nil {
		return value.Value{}, err
	}

	if shapePeek == marker.ArrayStart {
		return d.decodeShapedNDArray(elemMarker)
	}

	n, err := d.decodeLength()
	if err != nil {
		return value.Value{}, err
	}
	if err := d.checkCount(n); err != nil {
		return value.Value{}, err
	}

	if elemMarker == marker.UInt8 && !d.cfg.noBytes {
		raw, err := d.src.Read(n)
		if err != nil {
			return value.Value{}, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
		}

		return value.Bytes(append([]byte(nil), raw...)), nil
	}

	items, err := d.decodeFixedElements(elemMarker, n)
	if err != nil {
		return value.Value{}, err
	}

	return value.Arr(&value.Array{Items: items, DeclaredElem: elemMarker, HasDeclared: true}), nil
}

// decodeShapedNDArray reads a "[shape]" dimension vector, already peeked
// at ArrayStart, followed by the packed element data.
func (d *Decoder) decodeShapedNDArray(elemMarker marker.Marker) (value.Value, error) {
	if err := d.expectMarker(marker.ArrayStart); err != nil {
		return value.Value{}, err
	}

	var shape []int
	for {
		peeked, err := d.peekMarker()
		if err != nil {
			return value.Value{}, err
		}
		if peeked == marker.ArrayEnd {
			_, _ = d.readMarker()

			break
		}
		dim, err := d.decodeLength()
		if err != nil {
			return value.Value{}, err
		}
		if dim < 0 {
			return value.Value{}, d.fail(bjerr.ErrNegativeLength)
		}
		shape = append(shape, dim)
	}

	product := 1
	for _, dim := range shape {
		product *= dim
	}
	if product > d.cfg.maxShapeProduct {
		return value.Value{}, d.fail(fmt.Errorf("%w: %d > %d", bjerr.ErrShapeExceedsLimit, product, d.cfg.maxShapeProduct))
	}

	data, err := d.decodeTypedSlice(elemMarker, product)
	if err != nil {
		return value.Value{}, err
	}

	return value.NDArr(&value.NDArray{Shape: shape, Elem: elemMarker, Data: data}), nil
}

func (d *Decoder) expectMarker(want marker.Marker) error {
	got, err := d.readMarker()
	if err != nil {
		return err
	}
	if got != want {
		return d.fail(fmt.Errorf("%w: expected %s, got %s", bjerr.ErrTypeMismatch, want, got))
	}

	return nil
}
