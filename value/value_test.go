package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructorsAndAccessors(t *testing.T) {
	require.True(t, Null().IsNull())

	b := Bool(true)
	got, ok := b.AsBool()
	require.True(t, ok)
	require.True(t, got)

	i := Int(-42)
	iv, ok := i.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(-42), iv)

	u := Uint(1 << 40)
	uv, ok := u.AsUint()
	require.True(t, ok)
	require.Equal(t, uint64(1<<40), uv)

	f := Float(3.5)
	fv, ok := f.AsFloat()
	require.True(t, ok)
	require.Equal(t, 3.5, fv)

	d, ok := NewDecimal("1.23e10")
	require.True(t, ok)
	hp := HighPrec(d)
	hv, ok := hp.AsHighPrec()
	require.True(t, ok)
	require.Equal(t, d, hv)

	s := String("hello")
	sv, ok := s.AsString()
	require.True(t, ok)
	require.Equal(t, "hello", sv)

	by := Bytes([]byte{1, 2, 3})
	byv, ok := by.AsBytes()
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, byv)
}

func TestAccessorsFailOnWrongKind(t *testing.T) {
	v := Int(1)
	_, ok := v.AsBool()
	require.False(t, ok)
	_, ok = v.AsString()
	require.False(t, ok)
}

func TestArray(t *testing.T) {
	a := NewArray(Int(1), Int(2), Int(3))
	require.Equal(t, 3, a.Len())
	require.Equal(t, Int(2), a.Index(1))

	v := Arr(a)
	got, ok := v.AsArray()
	require.True(t, ok)
	require.Same(t, a, got)
}

func TestObject(t *testing.T) {
	o := NewObject(
		MapEntry{Key: "a", Value: Int(1)},
		MapEntry{Key: "b", Value: String("x")},
	)
	require.Equal(t, 2, o.Len())

	got, ok := o.Get("b")
	require.True(t, ok)
	require.Equal(t, String("x"), got)

	_, ok = o.Get("missing")
	require.False(t, ok)

	var visited []string
	o.Range(func(key string, val any) bool {
		visited = append(visited, key)
		return true
	})
	require.Equal(t, []string{"a", "b"}, visited)
}

func TestObjectRangeStopsEarly(t *testing.T) {
	o := NewObject(
		MapEntry{Key: "a", Value: Int(1)},
		MapEntry{Key: "b", Value: Int(2)},
		MapEntry{Key: "c", Value: Int(3)},
	)

	var visited []string
	o.Range(func(key string, val any) bool {
		visited = append(visited, key)
		return key != "b"
	})
	require.Equal(t, []string{"a", "b"}, visited)
}
