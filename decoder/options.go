package decoder

import (
	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/internal/options"
	"github.com/NeuroJSON/pybj/value"
)

const (
	defaultMaxContainerCount = 1 << 32
	defaultMaxShapeProduct   = 1 << 32
)

// config holds the resolved state of every Option.
type config struct {
	littleEndian      bool
	internKeys        bool
	objectPairsHook   func(pairs []value.MapEntry) (any, error)
	noBytes           bool
	maxContainerCount int
	maxShapeProduct   int
	firstKeyWins      bool
}

func newConfig() *config {
	return &config{
		littleEndian:      true,
		maxContainerCount: defaultMaxContainerCount,
		maxShapeProduct:   defaultMaxShapeProduct,
	}
}

// Option configures a Decoder.
type Option = options.Option[*config]

// WithDecodeLittleEndian expects little-endian numeric payloads (default).
func WithDecodeLittleEndian() Option {
	return options.NoError(func(c *config) { c.littleEndian = true })
}

// WithDecodeBigEndian expects big-endian numeric payloads.
func WithDecodeBigEndian() Option {
	return options.NoError(func(c *config) { c.littleEndian = false })
}

// WithInternKeys reuses equal object key strings across entries, reducing
// allocation for documents with repetitive schemas.
func WithInternKeys(enabled bool) Option {
	return options.NoError(func(c *config) { c.internKeys = enabled })
}

// WithObjectPairsHook registers a callable that constructs a mapping from
// ordered key/value pairs, instead of the default value.Object. The
// result is reachable via Object.Native (Object.HasNative reports true)
// once decoding completes.
func WithObjectPairsHook(fn func(pairs []value.MapEntry) (any, error)) Option {
	return options.NoError(func(c *config) { c.objectPairsHook = fn })
}

// WithNoBytes keeps UInt8 strongly-typed arrays as an integer Array
// rather than materializing them as a Bytes value.
func WithNoBytes(enabled bool) Option {
	return options.NoError(func(c *config) { c.noBytes = enabled })
}

// WithMaxContainerCount caps the declared element count the decoder will
// honor before failing with ErrCountExceedsLimit.
func WithMaxContainerCount(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return bjerr.NewConfigError("max_container_count", bjerr.ErrInvalidConfig)
		}
		c.maxContainerCount = n

		return nil
	})
}

// WithMaxShapeProduct caps the product of a declared NDArray shape before
// failing with ErrShapeExceedsLimit.
func WithMaxShapeProduct(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return bjerr.NewConfigError("max_shape_product", bjerr.ErrInvalidConfig)
		}
		c.maxShapeProduct = n

		return nil
	})
}

// WithFirstKeyWins makes duplicate object keys resolve to the first
// occurrence instead of the default last-wins.
func WithFirstKeyWins(enabled bool) Option {
	return options.NoError(func(c *config) { c.firstKeyWins = enabled })
}
