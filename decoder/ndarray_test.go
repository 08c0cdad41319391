package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

// A flat "[$<marker>#<count>" body is wire-identical whether it was
// produced by the encoder's STC array path or its unshaped-NDArray path,
// so the decoder resolves the ambiguity in favor of the more general
// declared-type Array, matching value.Array's DeclaredElem field.
func TestDecodeFlatTypedArray(t *testing.T) {
	data := []byte{'[', '$', 'l', '#', 0x55, 0x03}
	data = append(data, 1, 0, 0, 0)
	data = append(data, 2, 0, 0, 0)
	data = append(data, 3, 0, 0, 0)

	v := mustDecode(t, data)
	arr, ok := v.AsArray()
	require.True(t, ok)
	require.True(t, arr.HasDeclared)
	require.Equal(t, marker.Int32, arr.DeclaredElem)
	require.Equal(t, 3, arr.Len())
	i0, _ := arr.Index(0).(value.Value).AsInt()
	require.Equal(t, int64(1), i0)
}

func TestDecodeNDArrayShaped(t *testing.T) {
	data := []byte{'[', '$', 'U', '#', '[', 0x55, 0x02, 0x55, 0x02, ']', 1, 2, 3, 4}
	v := mustDecode(t, data)
	nd, ok := v.AsNDArray()
	require.True(t, ok)
	require.Equal(t, []int{2, 2}, nd.Shape)
	require.Equal(t, []uint8{1, 2, 3, 4}, nd.Data)
}

func TestDecodeStructColumnLayout(t *testing.T) {
	data := []byte{'{', '$', '{'}
	// schema: field "x" -> Int32 ('l'), field "y" -> Float32 ('d')
	data = append(data, 0x55, 0x01, 'x', 'l')
	data = append(data, 0x55, 0x01, 'y', 'd')
	data = append(data, '}')       // schema end
	data = append(data, '#', 0x55, 0x03) // count = 3
	// column x: three int32
	data = append(data, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0)
	// column y: three float32 (bit patterns irrelevant, just needs 12 bytes)
	data = append(data, make([]byte, 12)...)

	v := mustDecode(t, data)
	st, ok := v.AsStruct()
	require.True(t, ok)
	require.Equal(t, 3, st.Count)
	require.Equal(t, []int32{1, 2, 3}, st.Columns["x"])
}

func TestDecodeStructRowLayout(t *testing.T) {
	data := []byte{'[', '$', '{'}
	data = append(data, 0x55, 0x01, 'x', 'i') // field x: Int8
	data = append(data, '}')
	data = append(data, '#', 0x55, 0x02) // count = 2
	data = append(data, 7, 8)            // row-major: x=7, x=8

	v := mustDecode(t, data)
	st, ok := v.AsStruct()
	require.True(t, ok)
	require.Equal(t, 2, st.Count)
	require.Equal(t, []int8{7, 8}, st.Columns["x"])
}

// A bool column carries one real T/F marker byte per element (the
// encoder's writeBoolColumn), unlike other fixed-width column types which
// pack raw payload bytes back to back.
func TestDecodeStructColumnLayoutBool(t *testing.T) {
	data := []byte{'{', '$', '{'}
	data = append(data, 0x55, 0x01, 'x', 'l') // field x: Int32
	data = append(data, 0x55, 0x01, 'y', 'T') // field y: bool
	data = append(data, '}')
	data = append(data, '#', 0x55, 0x03) // count = 3
	data = append(data, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0)
	data = append(data, 'T', 'F', 'T') // column y: three T/F markers

	v := mustDecode(t, data)
	st, ok := v.AsStruct()
	require.True(t, ok)
	require.Equal(t, 3, st.Count)
	require.Equal(t, []int32{1, 2, 3}, st.Columns["x"])
	require.Equal(t, []bool{true, false, true}, st.Columns["y"])
}

// A bool row field likewise carries one real T/F marker byte per record
// (the encoder's writeStructRows), interleaved with the other fields'
// fixed-width payloads.
func TestDecodeStructRowLayoutBool(t *testing.T) {
	data := []byte{'[', '$', '{'}
	data = append(data, 0x55, 0x01, 'x', 'i') // field x: Int8
	data = append(data, 0x55, 0x01, 'y', 'T') // field y: bool
	data = append(data, '}')
	data = append(data, '#', 0x55, 0x02) // count = 2
	data = append(data, 7, 'T')          // row 0: x=7, y=true
	data = append(data, 8, 'F')          // row 1: x=8, y=false

	v := mustDecode(t, data)
	st, ok := v.AsStruct()
	require.True(t, ok)
	require.Equal(t, 2, st.Count)
	require.Equal(t, []int8{7, 8}, st.Columns["x"])
	require.Equal(t, []bool{true, false}, st.Columns["y"])
}
