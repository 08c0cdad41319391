package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.True(t, cfg.uint8Bytes)
	require.True(t, cfg.littleEndian)
	require.False(t, cfg.stc)
	require.Equal(t, ModeBJData, cfg.mode)
	require.Equal(t, defaultRecursionLimit, cfg.recursionLimit)
}

func TestOptionsApplyOverridesDefaults(t *testing.T) {
	enc, err := New(
		WithContainerCount(true),
		WithSortKeys(true),
		WithNoFloat32(true),
		WithUint8Bytes(false),
		WithBigEndian(),
		WithSOAFormat(SOARow),
		WithMode(ModeStrictUBJSON),
		WithSTC(true),
	)
	require.NoError(t, err)
	require.True(t, enc.cfg.containerCount)
	require.True(t, enc.cfg.sortKeys)
	require.True(t, enc.cfg.noFloat32)
	require.False(t, enc.cfg.uint8Bytes)
	require.False(t, enc.cfg.littleEndian)
	require.Equal(t, SOARow, enc.cfg.soaFormat)
	require.Equal(t, ModeStrictUBJSON, enc.cfg.mode)
	require.True(t, enc.cfg.stc)
}
