package value

// Kind identifies which carrier of the tagged Value variant is populated.
// It mirrors spec section 3's value model (Null, Bool, Int, Float,
// HighPrecision, Char/String, Bytes, Array, Object, NDArray) with Char
// folded into String: whether a one-byte string is emitted as a Char
// marker or a String marker is a wire-encoding choice, not a distinct
// value shape, exactly as spec.md section 4.5.1 describes it.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindHighPrec
	KindString
	KindBytes
	KindArray
	KindObject
	KindNDArray
	KindStruct
)

// String returns a lower-case name for k, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindHighPrec:
		return "high_precision"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNDArray:
		return "ndarray"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}
