package encoder

import (
	"fmt"

	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

// writeNDArray implements spec.md section 4.5.5's typed, homogeneous,
// optionally multi-dimensional array form.
func (e *Encoder) writeNDArray(nd *value.NDArray, path string) error {
	if len(nd.Shape) == 0 {
		if err := validateNDArrayScalarOrFlat(nd, path); err != nil {
			return err
		}
		if nd.Len() == 1 {
			return e.writeNDArrayScalar(nd, path)
		}

		return e.writeNDArrayFlat(nd, path)
	}

	product := nd.Len()
	raw, err := packNDArrayData(e.engine, nd.Elem, nd.Data)
	if err != nil {
		return err
	}
	if len(raw)/max1(elemWidth(nd.Elem)) != product && elemWidth(nd.Elem) > 0 {
		return fmt.Errorf("%s: ndarray data length does not match shape product %d", path, product)
	}

	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerType); err != nil {
		return err
	}
	if err := e.writeMarker(nd.Elem); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerCount); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}
	for _, dim := range nd.Shape {
		if err := e.writeLength(int64(dim)); err != nil {
			return err
		}
	}
	if err := e.writeMarker(marker.ArrayEnd); err != nil {
		return err
	}

	return e.writeRaw(raw)
}

func validateNDArrayScalarOrFlat(nd *value.NDArray, path string) error {
	if nd.Elem == 0 {
		return fmt.Errorf("%s: ndarray has no declared element marker", path)
	}

	return nil
}

func (e *Encoder) writeNDArrayScalar(nd *value.NDArray, path string) error {
	raw, err := packNDArrayData(e.engine, nd.Elem, nd.Data)
	if err != nil {
		return err
	}
	if err := e.writeMarker(nd.Elem); err != nil {
		return err
	}

	return e.writeRaw(raw)
}

func (e *Encoder) writeNDArrayFlat(nd *value.NDArray, path string) error {
	raw, err := packNDArrayData(e.engine, nd.Elem, nd.Data)
	if err != nil {
		return err
	}

	if err := e.writeMarker(marker.ArrayStart); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerType); err != nil {
		return err
	}
	if err := e.writeMarker(nd.Elem); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerCount); err != nil {
		return err
	}
	if err := e.writeLength(int64(nd.Len())); err != nil {
		return err
	}

	return e.writeRaw(raw)
}

// writeStruct implements spec.md section 4.5.5's SOA path: a schema
// object followed by either row-major (AoS) or column-major (SoA)
// payload bytes.
func (e *Encoder) writeStruct(st *value.Struct, path string) error {
	format := e.cfg.soaFormat
	if format == SOANone {
		// spec.md section 9's Open Question resolution: structured
		// arrays auto-select column-major when soa_format is unset.
		format = SOAColumn
	}

	outer := marker.ArrayStart
	if format == SOAColumn {
		outer = marker.ObjectStart
	}

	if err := e.writeMarker(outer); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerType); err != nil {
		return err
	}
	if err := e.writeSchema(st.Fields); err != nil {
		return err
	}
	if err := e.writeMarker(marker.ContainerCount); err != nil {
		return err
	}
	if err := e.writeLength(int64(st.Count)); err != nil {
		return err
	}

	if format == SOAColumn {
		return e.writeStructColumns(st, path)
	}

	return e.writeStructRows(st, path)
}

// writeSchema emits "{ <name-length><name-bytes><type-marker> ... }".
func (e *Encoder) writeSchema(fields []value.FieldSpec) error {
	if err := e.writeMarker(marker.ObjectStart); err != nil {
		return err
	}
	for _, f := range fields {
		if err := e.writeLength(int64(len(f.Name))); err != nil {
			return err
		}
		if err := e.writeRaw([]byte(f.Name)); err != nil {
			return err
		}
		if err := e.writeMarker(f.Elem); err != nil {
			return err
		}
	}

	return e.writeMarker(marker.ObjectEnd)
}

func (e *Encoder) writeStructColumns(st *value.Struct, path string) error {
	for _, f := range st.Fields {
		col := st.Columns[f.Name]
		if f.Elem == marker.BoolTrue || f.Elem == marker.BoolFalse {
			if err := e.writeBoolColumn(col, path); err != nil {
				return err
			}

			continue
		}
		raw, err := packNDArrayData(e.engine, f.Elem, col)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", path, f.Name, err)
		}
		if err := e.writeRaw(raw); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeStructRows(st *value.Struct, path string) error {
	for i := 0; i < st.Count; i++ {
		row := st.Row(i)
		for j, f := range st.Fields {
			if f.Elem == marker.BoolTrue || f.Elem == marker.BoolFalse {
				b, _ := row[j].AsBool()
				if err := e.writeBool(b); err != nil {
					return err
				}

				continue
			}
			raw, err := packScalar(e.engine, f.Elem, row[j])
			if err != nil {
				return fmt.Errorf("%s.%s[%d]: %w", path, f.Name, i, err)
			}
			if err := e.writeRaw(raw); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Encoder) writeBoolColumn(col any, path string) error {
	bools, ok := col.([]bool)
	if !ok {
		return fmt.Errorf("%s: expected []bool column, got %T", path, col)
	}
	for _, b := range bools {
		if err := e.writeBool(b); err != nil {
			return err
		}
	}

	return nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}

	return n
}

func elemWidth(m marker.Marker) int {
	w, _ := m.IsFixedWidth()

	return w
}
