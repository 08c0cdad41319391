package numeric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeuroJSON/pybj/endian"
)

func TestFloat64RoundTrip(t *testing.T) {
	le := endian.GetLittleEndianEngine()
	for _, v := range []float64{0, 1, -1, 3.14159, 1e300, -1e-300} {
		buf := PackFloat64(le, v)
		require.Len(t, buf, 8)
		got, err := UnpackFloat64(le, buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFloat32RoundTrip(t *testing.T) {
	be := endian.GetBigEndianEngine()
	for _, v := range []float32{0, 1, -1, 3.5} {
		buf := PackFloat32(be, v)
		got, err := UnpackFloat32(be, buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	le := endian.GetLittleEndianEngine()
	for _, v := range []float32{0, 1, -1, 2.5, 100} {
		buf := PackFloat16(le, v)
		require.Len(t, buf, 2)
		got, err := UnpackFloat16(le, buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestEndiannessMirrorsAcrossMarker(t *testing.T) {
	le := endian.GetLittleEndianEngine()
	be := endian.GetBigEndianEngine()

	leBuf, err := PackInt(le, 4, true, 0x01020304)
	require.NoError(t, err)
	beBuf, err := PackInt(be, 4, true, 0x01020304)
	require.NoError(t, err)

	// Reversing the little-endian payload must equal the big-endian payload.
	reversed := make([]byte, len(leBuf))
	for i, b := range leBuf {
		reversed[len(leBuf)-1-i] = b
	}
	require.Equal(t, beBuf, reversed)
}

func TestPackIntWidths(t *testing.T) {
	le := endian.GetLittleEndianEngine()

	cases := []struct {
		width  int
		signed bool
		value  int64
	}{
		{1, false, 255},
		{1, true, -128},
		{2, false, 65535},
		{2, true, -32768},
		{4, false, 4294967295},
		{4, true, -2147483648},
		{8, true, -1},
	}
	for _, c := range cases {
		buf, err := PackInt(le, c.width, c.signed, c.value)
		require.NoError(t, err)
		require.Len(t, buf, c.width)

		got, err := UnpackInt(le, c.width, c.signed, buf)
		require.NoError(t, err)
		require.Equal(t, c.value, got)
	}
}

func TestPackIntOverflow(t *testing.T) {
	le := endian.GetLittleEndianEngine()

	_, err := PackInt(le, 1, false, 256)
	require.Error(t, err)

	_, err = PackInt(le, 1, true, 128)
	require.Error(t, err)

	_, err = PackInt(le, 2, false, -1)
	require.Error(t, err)
}

func TestPackUnpackUint64(t *testing.T) {
	le := endian.GetLittleEndianEngine()

	const big = uint64(1) << 63
	buf := PackUint64(le, big)
	got, err := UnpackUint64(le, buf)
	require.NoError(t, err)
	require.Equal(t, big, got)
}

func TestUnpackIntTruncated(t *testing.T) {
	le := endian.GetLittleEndianEngine()
	_, err := UnpackInt(le, 4, true, []byte{1, 2})
	require.Error(t, err)
}

func TestDetectHostFloatFormat(t *testing.T) {
	require.True(t, DetectHostFloatFormat())
}
