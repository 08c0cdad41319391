package marker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWireBytes(t *testing.T) {
	// These byte values are the wire-format contract and must never drift.
	require.Equal(t, byte('Z'), byte(Null))
	require.Equal(t, byte('T'), byte(BoolTrue))
	require.Equal(t, byte('F'), byte(BoolFalse))
	require.Equal(t, byte('i'), byte(Int8))
	require.Equal(t, byte('U'), byte(UInt8))
	require.Equal(t, byte('I'), byte(Int16))
	require.Equal(t, byte('u'), byte(UInt16))
	require.Equal(t, byte('l'), byte(Int32))
	require.Equal(t, byte('m'), byte(UInt32))
	require.Equal(t, byte('L'), byte(Int64))
	require.Equal(t, byte('M'), byte(UInt64))
	require.Equal(t, byte('h'), byte(Float16))
	require.Equal(t, byte('d'), byte(Float32))
	require.Equal(t, byte('D'), byte(Float64))
	require.Equal(t, byte('H'), byte(HighPrec))
	require.Equal(t, byte('C'), byte(Char))
	require.Equal(t, byte('S'), byte(String))
	require.Equal(t, byte('['), byte(ArrayStart))
	require.Equal(t, byte(']'), byte(ArrayEnd))
	require.Equal(t, byte('{'), byte(ObjectStart))
	require.Equal(t, byte('}'), byte(ObjectEnd))
	require.Equal(t, byte('$'), byte(ContainerType))
	require.Equal(t, byte('#'), byte(ContainerCount))
}

func TestIsFixedWidth(t *testing.T) {
	cases := []struct {
		m     Marker
		width int
		ok    bool
	}{
		{Null, 0, true},
		{BoolTrue, 0, true},
		{Int8, 1, true},
		{UInt8, 1, true},
		{Char, 1, true},
		{Int16, 2, true},
		{Float16, 2, true},
		{Int32, 4, true},
		{Float32, 4, true},
		{Int64, 8, true},
		{Float64, 8, true},
		{String, 0, false},
		{HighPrec, 0, false},
		{ArrayStart, 0, false},
	}
	for _, c := range cases {
		w, ok := c.m.IsFixedWidth()
		require.Equal(t, c.ok, ok, "marker %v", c.m)
		if ok {
			require.Equal(t, c.width, w, "marker %v", c.m)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	require.True(t, Int8.IsNumeric())
	require.True(t, Float64.IsNumeric())
	require.False(t, Null.IsNumeric())
	require.False(t, String.IsNumeric())
	require.False(t, Char.IsNumeric())
}

func TestString(t *testing.T) {
	require.Equal(t, "int8", Int8.String())
	require.Equal(t, "unknown", Marker(0).String())
}
