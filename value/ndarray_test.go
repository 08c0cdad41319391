package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeuroJSON/pybj/marker"
)

func TestNDArrayLenFlat(t *testing.T) {
	nd := &NDArray{Elem: marker.Int32, Data: []int32{1, 2, 3, 4}}
	require.Equal(t, 4, nd.Len())
}

func TestNDArrayLenShaped(t *testing.T) {
	nd := &NDArray{Shape: []int{2, 3}, Elem: marker.Float64, Data: []float64{1, 2, 3, 4, 5, 6}}
	require.Equal(t, 6, nd.Len())
}

func TestNDArrValue(t *testing.T) {
	nd := &NDArray{Elem: marker.UInt8, Data: []uint8{1, 2}}
	v := NDArr(nd)
	got, ok := v.AsNDArray()
	require.True(t, ok)
	require.Same(t, nd, got)
}

func TestStructRow(t *testing.T) {
	s := &Struct{
		Fields: []FieldSpec{
			{Name: "x", Elem: marker.Int32},
			{Name: "y", Elem: marker.Float64},
		},
		Count: 2,
		Columns: map[string]any{
			"x": []int32{1, 2},
			"y": []float64{1.5, 2.5},
		},
	}

	row0 := s.Row(0)
	require.Equal(t, []Value{Int(1), Float(1.5)}, row0)

	row1 := s.Row(1)
	require.Equal(t, []Value{Int(2), Float(2.5)}, row1)

	v := Struc(s)
	got, ok := v.AsStruct()
	require.True(t, ok)
	require.Same(t, s, got)
}
