package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

func TestNDArrayFlat(t *testing.T) {
	nd := &value.NDArray{Elem: marker.Int32, Data: []int32{1, 2, 3}}
	got := mustEncode(t, value.NDArr(nd))

	want := []byte{'[', '$', 'l', '#', 0x55, 0x03}
	want = append(want, 1, 0, 0, 0)
	want = append(want, 2, 0, 0, 0)
	want = append(want, 3, 0, 0, 0)
	require.Equal(t, want, got)
}

func TestNDArrayShaped(t *testing.T) {
	nd := &value.NDArray{Shape: []int{2, 2}, Elem: marker.UInt8, Data: []uint8{1, 2, 3, 4}}
	got := mustEncode(t, value.NDArr(nd))

	want := []byte{'[', '$', 'U', '#', '[', 0x55, 0x02, 0x55, 0x02, ']', 1, 2, 3, 4}
	require.Equal(t, want, got)
}

func TestNDArrayScalar(t *testing.T) {
	nd := &value.NDArray{Elem: marker.Float64, Data: []float64{3.5}}
	got := mustEncode(t, value.NDArr(nd))
	require.Equal(t, byte('D'), got[0])
	require.Len(t, got, 9)
}

func TestStructColumnLayout(t *testing.T) {
	st := &value.Struct{
		Fields: []value.FieldSpec{
			{Name: "x", Elem: marker.Int32},
			{Name: "y", Elem: marker.Float32},
		},
		Count: 3,
		Columns: map[string]any{
			"x": []int32{1, 2, 3},
			"y": []float32{1.5, 2.5, 3.5},
		},
	}
	got := mustEncode(t, value.Struc(st), WithSOAFormat(SOAColumn))
	require.Equal(t, byte('{'), got[0])
	require.Equal(t, byte('$'), got[1])
	require.Equal(t, byte('{'), got[2]) // schema object start
}

func TestStructRowLayout(t *testing.T) {
	st := &value.Struct{
		Fields: []value.FieldSpec{
			{Name: "x", Elem: marker.Int32},
		},
		Count: 2,
		Columns: map[string]any{
			"x": []int32{7, 8},
		},
	}
	got := mustEncode(t, value.Struc(st), WithSOAFormat(SOARow))
	require.Equal(t, byte('['), got[0])
}

func TestStructAutoSelectsColumnWhenSOANone(t *testing.T) {
	st := &value.Struct{
		Fields:  []value.FieldSpec{{Name: "x", Elem: marker.Int8}},
		Count:   1,
		Columns: map[string]any{"x": []int8{5}},
	}
	got := mustEncode(t, value.Struc(st))
	require.Equal(t, byte('{'), got[0])
}
