package value

import "github.com/NeuroJSON/pybj/marker"

// NDArray is a homogeneously-typed, optionally multi-dimensional numeric
// array as described by spec.md section 4.5.5's "$<marker>#[shape]" form.
// Shape holds the declared dimensions in row-major order; a 1-D array with
// Shape == nil is a plain typed array (STC without a shape vector). Data
// holds a concrete typed Go slice (e.g. []int32, []float64) whose length
// equals the product of Shape (or len(Data) itself when Shape is nil).
type NDArray struct {
	Shape []int
	Elem  marker.Marker
	Data  any
}

// Len returns the total element count implied by Shape, or the length of
// Data when Shape is empty.
func (n *NDArray) Len() int {
	if len(n.Shape) == 0 {
		return sliceLen(n.Data)
	}

	product := 1
	for _, dim := range n.Shape {
		product *= dim
	}

	return product
}

// FieldSpec names one column of a Struct and the wire marker its values
// are encoded with.
type FieldSpec struct {
	Name string
	Elem marker.Marker
}

// Struct is a structured array of records sharing a fixed field schema,
// spec.md section 4.5.5's "array of structures" / "structure of arrays"
// feature. Fields declares the schema in wire order. Columns maps each
// field name to a concrete typed Go slice of length Count; row-major
// (array-of-structs) access is reconstructed on demand by Row, wire
// layout (row-major bytes vs column-major bytes) is a Layout concern
// handled by the encoder/decoder, not by this in-memory representation.
type Struct struct {
	Fields  []FieldSpec
	Count   int
	Columns map[string]any
}

// Row returns the i-th record as an ordered slice of field values, one
// per Fields entry, boxed as Value.
func (s *Struct) Row(i int) []Value {
	row := make([]Value, len(s.Fields))
	for idx, f := range s.Fields {
		row[idx] = columnElem(s.Columns[f.Name], i)
	}

	return row
}

func sliceLen(data any) int {
	switch d := data.(type) {
	case []int8:
		return len(d)
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	case []bool:
		return len(d)
	case []string:
		return len(d)
	default:
		return 0
	}
}

func columnElem(col any, i int) Value {
	switch c := col.(type) {
	case []int8:
		return Int(int64(c[i]))
	case []uint8:
		return Uint(uint64(c[i]))
	case []int16:
		return Int(int64(c[i]))
	case []uint16:
		return Uint(uint64(c[i]))
	case []int32:
		return Int(int64(c[i]))
	case []uint32:
		return Uint(uint64(c[i]))
	case []int64:
		return Int(c[i])
	case []uint64:
		return Uint(c[i])
	case []float32:
		return Float(float64(c[i]))
	case []float64:
		return Float(c[i])
	case []bool:
		return Bool(c[i])
	case []string:
		return String(c[i])
	default:
		return Null()
	}
}
