// Package marker defines the single-byte type tags and container framing
// bytes of the BJData/UBJSON wire format.
//
// These byte values are part of the wire format contract and must never
// change: any implementation that wants to interoperate with other
// BJData/UBJSON encoders and decoders has to emit and recognize exactly
// these bytes.
package marker

// Marker is a single wire-format tag byte.
type Marker byte

// Value type markers.
const (
	Null       Marker = 'Z'
	NoOp       Marker = 'N'
	BoolTrue   Marker = 'T'
	BoolFalse  Marker = 'F'
	Byte       Marker = 'B'
	Int8       Marker = 'i'
	UInt8      Marker = 'U'
	Int16      Marker = 'I'
	UInt16     Marker = 'u'
	Int32      Marker = 'l'
	UInt32     Marker = 'm'
	Int64      Marker = 'L'
	UInt64     Marker = 'M'
	Float16    Marker = 'h'
	Float32    Marker = 'd'
	Float64    Marker = 'D'
	HighPrec   Marker = 'H'
	Char       Marker = 'C'
	String     Marker = 'S'
	ArrayStart  Marker = '['
	ArrayEnd    Marker = ']'
	ObjectStart Marker = '{'
	ObjectEnd   Marker = '}'

	// ContainerType introduces the "$<marker>" strongly-typed-container prefix.
	ContainerType Marker = '$'
	// ContainerCount introduces the "#<count>" declared-count prefix.
	ContainerCount Marker = '#'
)

// String returns a human-readable name for the marker, mainly for error
// messages and debugging.
func (m Marker) String() string {
	switch m {
	case Null:
		return "null"
	case NoOp:
		return "noop"
	case BoolTrue:
		return "true"
	case BoolFalse:
		return "false"
	case Byte:
		return "byte"
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case HighPrec:
		return "high_precision"
	case Char:
		return "char"
	case String:
		return "string"
	case ArrayStart:
		return "array_start"
	case ArrayEnd:
		return "array_end"
	case ObjectStart:
		return "object_start"
	case ObjectEnd:
		return "object_end"
	case ContainerType:
		return "container_type"
	case ContainerCount:
		return "container_count"
	default:
		return "unknown"
	}
}

// IsFixedWidth reports whether m marks a fixed-width scalar payload, and if
// so, returns that width in bytes. Used by the encoder's STC scan and the
// decoder's declared-type fast path.
func (m Marker) IsFixedWidth() (width int, ok bool) {
	switch m {
	case Null, BoolTrue, BoolFalse, NoOp:
		return 0, true
	case Int8, UInt8, Byte, Char:
		return 1, true
	case Int16, UInt16, Float16:
		return 2, true
	case Int32, UInt32, Float32:
		return 4, true
	case Int64, UInt64, Float64:
		return 8, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether m marks one of the fixed-width numeric types
// (integer or float), as opposed to Null/Bool/Char/String/HighPrec.
func (m Marker) IsNumeric() bool {
	switch m {
	case Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64, Float16, Float32, Float64:
		return true
	default:
		return false
	}
}
