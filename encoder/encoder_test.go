package encoder

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/value"
)

func mustEncode(t *testing.T, v any, opts ...Option) []byte {
	t.Helper()
	enc, err := New(opts...)
	require.NoError(t, err)
	b, err := enc.EncodeToBytes(v)
	require.NoError(t, err)

	return b
}

func TestScenarioNull(t *testing.T) {
	require.Equal(t, []byte{0x5A}, mustEncode(t, nil))
}

func TestScenarioBool(t *testing.T) {
	require.Equal(t, []byte{0x54}, mustEncode(t, true))
	require.Equal(t, []byte{0x46}, mustEncode(t, false))
}

func TestScenarioIntNarrowing(t *testing.T) {
	require.Equal(t, []byte{0x55, 0xFF}, mustEncode(t, 255))
	require.Equal(t, []byte{0x75, 0x00, 0x01}, mustEncode(t, 256))
}

func TestScenarioStrings(t *testing.T) {
	require.Equal(t, []byte{0x43, 0x41}, mustEncode(t, "A"))
	require.Equal(t, []byte{0x53, 0x55, 0x02, 0x68, 0x69}, mustEncode(t, "hi"))
}

func TestScenarioArrayContainerCount(t *testing.T) {
	got := mustEncode(t, []int{1, 2, 3}, WithContainerCount(true))
	want := []byte{'[', '#', 0x55, 0x03, 0x55, 0x01, 0x55, 0x02, 0x55, 0x03}
	require.Equal(t, want, got)
}

func TestScenarioObjectTerminated(t *testing.T) {
	obj := value.NewObject(value.MapEntry{Key: "k", Value: value.Int(1)})
	got := mustEncode(t, value.Obj(obj))
	want := []byte{'{', 0x55, 0x01, 'k', 0x55, 0x01, '}'}
	require.Equal(t, want, got)
}

func TestScenarioObjectContainerCount(t *testing.T) {
	obj := value.NewObject(value.MapEntry{Key: "k", Value: value.Int(1)})
	got := mustEncode(t, value.Obj(obj), WithContainerCount(true))
	want := []byte{'{', '#', 0x55, 0x01, 0x55, 0x01, 'k', 0x55, 0x01}
	require.Equal(t, want, got)
}

func TestNegativeIntWidths(t *testing.T) {
	require.Equal(t, []byte{'i', 0x80}, mustEncode(t, -128))
	require.Equal(t, []byte{'I', 0x00, 0x80}, mustEncode(t, -32768))
}

func TestNonFiniteFloatMapsToNull(t *testing.T) {
	require.Equal(t, []byte{0x5A}, mustEncode(t, math.Inf(1)))
	require.Equal(t, []byte{0x5A}, mustEncode(t, math.NaN()))
}

func TestZeroFloatIsFloat32(t *testing.T) {
	got := mustEncode(t, 0.0)
	require.Equal(t, byte('d'), got[0])
	require.Len(t, got, 5)
}

func TestFloatInFloat32Range(t *testing.T) {
	got := mustEncode(t, 3.5)
	require.Equal(t, byte('d'), got[0])
}

func TestFloatOutOfFloat32RangeUsesFloat64(t *testing.T) {
	got := mustEncode(t, 1e300)
	require.Equal(t, byte('D'), got[0])
}

func TestNoFloat32ForcesFloat64(t *testing.T) {
	got := mustEncode(t, 3.5, WithNoFloat32(true))
	require.Equal(t, byte('D'), got[0])
}

func TestCircularReferenceRejected(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	enc, err := New()
	require.NoError(t, err)
	_, err = enc.EncodeToBytes(m)
	require.Error(t, err)
	require.ErrorIs(t, err, bjerr.ErrCircularReference)
}

func TestRecursionLimitExceeded(t *testing.T) {
	enc, err := New(WithRecursionLimit(2))
	require.NoError(t, err)

	nested := []any{[]any{[]any{[]any{1}}}}
	_, err = enc.EncodeToBytes(nested)
	require.Error(t, err)
	require.ErrorIs(t, err, bjerr.ErrRecursionExceeded)
}

func TestWithRecursionLimitRejectsNonPositive(t *testing.T) {
	_, err := New(WithRecursionLimit(0))
	require.Error(t, err)
	require.ErrorIs(t, err, bjerr.ErrInvalidConfig)
}

func TestNonStringMapKeyFails(t *testing.T) {
	m := map[int]string{1: "a"}
	enc, err := New()
	require.NoError(t, err)
	_, err = enc.EncodeToBytes(m)
	require.Error(t, err)
	require.ErrorIs(t, err, bjerr.ErrNonStringKey)
}

func TestUnencodableTypeFails(t *testing.T) {
	enc, err := New()
	require.NoError(t, err)
	_, err = enc.EncodeToBytes(make(chan int))
	require.Error(t, err)
	require.ErrorIs(t, err, bjerr.ErrUnencodableType)
}

type unencodableThing struct{ fn func() }

func TestDefaultFuncAdapter(t *testing.T) {
	enc, err := New(WithDefaultFunc(func(v any) (value.Value, error) {
		return value.String("adapted"), nil
	}))
	require.NoError(t, err)
	got, err := enc.EncodeToBytes(unencodableThing{fn: func() {}})
	require.NoError(t, err)
	require.Equal(t, mustEncode(t, "adapted"), got)
}

func TestBytesAsStronglyTypedUInt8Array(t *testing.T) {
	got := mustEncode(t, []byte{1, 2, 3})
	want := []byte{'[', '$', 'U', '#', 0x55, 0x03, 1, 2, 3}
	require.Equal(t, want, got)
}

func TestSortKeysOrdersLexicographically(t *testing.T) {
	obj := value.NewObject(
		value.MapEntry{Key: "b", Value: value.Int(2)},
		value.MapEntry{Key: "a", Value: value.Int(1)},
	)
	got := mustEncode(t, value.Obj(obj), WithSortKeys(true))
	want := []byte{'{', 0x55, 0x01, 'a', 0x55, 0x01, 0x55, 0x01, 'b', 0x55, 0x02, '}'}
	require.Equal(t, want, got)
}

func TestSTCArray(t *testing.T) {
	got := mustEncode(t, []int{1, 2, 3}, WithSTC(true))
	want := []byte{'[', '$', 'U', '#', 0x55, 0x03, 1, 2, 3}
	require.Equal(t, want, got)
}

func TestEncodeToSink(t *testing.T) {
	var buf bytes.Buffer
	enc, err := New()
	require.NoError(t, err)
	require.NoError(t, enc.EncodeTo(&buf, "hi"))
	require.Equal(t, []byte{0x53, 0x55, 0x02, 0x68, 0x69}, buf.Bytes())
}

func TestBigEndianReversesBytes(t *testing.T) {
	le := mustEncode(t, int32(0x01020304), WithLittleEndian())
	be := mustEncode(t, int32(0x01020304), WithBigEndian())
	require.Equal(t, le[0], be[0])
	reversed := make([]byte, len(le)-1)
	for i, b := range le[1:] {
		reversed[len(le)-2-i] = b
	}
	require.Equal(t, be[1:], reversed)
}

func TestStructEncodedAsObject(t *testing.T) {
	type person struct {
		Name string
		Age  int
		Skip string `bjdata:"-"`
	}
	got := mustEncode(t, person{Name: "A", Age: 1})
	require.Equal(t, byte('{'), got[0])
	require.NotContains(t, string(got), "Skip")
}

// intList implements value.Sequencer without a native Go slice/array
// kind, exercising spec.md section 4.5's Sequence arm.
type intList struct{ items []int }

func (l *intList) Len() int        { return len(l.items) }
func (l *intList) Index(i int) any { return l.items[i] }

func TestSequencerDispatchesToArray(t *testing.T) {
	got := mustEncode(t, &intList{items: []int{1, 2, 3}})
	require.Equal(t, byte('['), got[0])
	require.Equal(t, byte(']'), got[len(got)-1])
}

// strIntMap implements value.Mapper without a native Go map kind,
// exercising spec.md section 4.5's Mapping arm.
type strIntMap struct{ entries []value.MapEntry }

func (m *strIntMap) Len() int { return len(m.entries) }
func (m *strIntMap) Range(yield func(key string, val any) bool) {
	for _, e := range m.entries {
		i, _ := e.Value.AsInt()
		if !yield(e.Key, i) {
			return
		}
	}
}

func TestMapperDispatchesToObject(t *testing.T) {
	got := mustEncode(t, &strIntMap{entries: []value.MapEntry{{Key: "a", Value: value.Int(1)}}})
	require.Equal(t, byte('{'), got[0])
	require.Equal(t, byte('}'), got[len(got)-1])
}

// mapperAndSequencer implements both interfaces; Mapper must win, per
// value.Sequencer's doc comment.
type mapperAndSequencer struct{ strIntMap }

func (m *mapperAndSequencer) Index(i int) any { return i }

func TestMapperCheckedBeforeSequencer(t *testing.T) {
	got := mustEncode(t, &mapperAndSequencer{strIntMap{entries: []value.MapEntry{{Key: "a", Value: value.Int(1)}}}})
	require.Equal(t, byte('{'), got[0])
}
