package encoder

import (
	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/internal/options"
	"github.com/NeuroJSON/pybj/value"
)

// SOAFormat selects how a structured NDArray (value.Struct) is laid out
// on the wire, spec.md section 4.5.5.
type SOAFormat int

const (
	// SOANone lets the encoder decide: it auto-selects Column layout for
	// value.Struct values, matching the reference encoder's structured
	// array behavior (spec.md section 9's Open Question resolution).
	SOANone SOAFormat = iota
	SOARow
	SOAColumn
)

// Mode selects strict UBJSON integer ranges vs the wider BJData mode
// (spec.md section 4.5.2).
type Mode int

const (
	ModeBJData Mode = iota
	ModeStrictUBJSON
)

const defaultRecursionLimit = 512

// config holds the resolved state of every Option, mirroring
// arloliu/mebo's pattern of a private config struct populated by
// options.Apply before construction.
type config struct {
	containerCount bool
	sortKeys       bool
	noFloat32      bool
	uint8Bytes     bool
	littleEndian   bool
	defaultFunc    func(any) (value.Value, error)
	soaFormat      SOAFormat
	recursionLimit int
	mode           Mode
	stc            bool
}

func newConfig() *config {
	return &config{
		uint8Bytes:     true,
		littleEndian:   true,
		recursionLimit: defaultRecursionLimit,
		mode:           ModeBJData,
		// STC defaults off: spec.md section 8's concrete scenario 5 shows
		// a uniform-int array encoded with a per-element marker on each
		// value, not the "$<marker>#<count>" strongly-typed form.
		stc: false,
	}
}

// Option configures an Encoder.
type Option = options.Option[*config]

// WithContainerCount makes the encoder emit a "#" declared-count prefix
// for arrays and objects instead of a terminator byte.
func WithContainerCount(enabled bool) Option {
	return options.NoError(func(c *config) { c.containerCount = enabled })
}

// WithSortKeys emits object entries in lexicographic order of their UTF-8
// key bytes rather than the mapping's iteration order.
func WithSortKeys(enabled bool) Option {
	return options.NoError(func(c *config) { c.sortKeys = enabled })
}

// WithNoFloat32 forces every finite, non-special float to Float64.
func WithNoFloat32(enabled bool) Option {
	return options.NoError(func(c *config) { c.noFloat32 = enabled })
}

// WithUint8Bytes controls whether []byte values are emitted as a
// strongly-typed UInt8 array (the default) or, when false, as a plain
// Sequence of UInt8 integers.
func WithUint8Bytes(enabled bool) Option {
	return options.NoError(func(c *config) { c.uint8Bytes = enabled })
}

// WithLittleEndian selects little-endian numeric payloads (the default).
func WithLittleEndian() Option {
	return options.NoError(func(c *config) { c.littleEndian = true })
}

// WithBigEndian selects big-endian numeric payloads.
func WithBigEndian() Option {
	return options.NoError(func(c *config) { c.littleEndian = false })
}

// WithDefaultFunc registers an adapter invoked for values that don't
// match any built-in shape (spec.md section 4.5, dispatch arm 11). Its
// result is recursively encoded.
func WithDefaultFunc(fn func(any) (value.Value, error)) Option {
	return options.NoError(func(c *config) { c.defaultFunc = fn })
}

// WithSOAFormat selects the structured-array wire layout.
func WithSOAFormat(format SOAFormat) Option {
	return options.NoError(func(c *config) { c.soaFormat = format })
}

// WithRecursionLimit sets the maximum nested composite depth. A value
// <= 0 is rejected with ConfigError.
func WithRecursionLimit(limit int) Option {
	return options.New(func(c *config) error {
		if limit <= 0 {
			return bjerr.NewConfigError("recursion_limit", bjerr.ErrInvalidConfig)
		}
		c.recursionLimit = limit

		return nil
	})
}

// WithMode selects strict-UBJSON vs BJData integer range rules. Float
// encoding is the same in both modes.
func WithMode(mode Mode) Option {
	return options.NoError(func(c *config) { c.mode = mode })
}

// WithSTC enables or disables the strongly-typed-container scan for
// homogeneous sequences (disabled by default, matching the reference
// encoder's plain per-element-marker output). The scan covers the items
// of a value.Array and native Go slices/arrays whose element kind is an
// integer or float; a slice of interface values keeps per-element markers.
func WithSTC(enabled bool) Option {
	return options.NoError(func(c *config) { c.stc = enabled })
}

