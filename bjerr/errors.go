// Package bjerr defines the sentinel errors and wrapper types the
// encoder and decoder return, in the sentinel-plus-fmt.Errorf("%w: ...")
// wrapping idiom used throughout github.com/arloliu/mebo's errs package.
package bjerr

import (
	"errors"
	"fmt"
)

// Encoder sentinel errors.
var (
	ErrUnencodableType   = errors.New("bjerr: value cannot be encoded")
	ErrNonStringKey      = errors.New("bjerr: mapping key is not a string")
	ErrCircularReference = errors.New("bjerr: circular reference detected")
	ErrRecursionExceeded = errors.New("bjerr: recursion depth limit exceeded")
)

// Decoder sentinel errors.
var (
	ErrUnexpectedEnd     = errors.New("bjerr: unexpected end of input")
	ErrUnknownMarker     = errors.New("bjerr: unknown marker byte")
	ErrCountExceedsLimit = errors.New("bjerr: declared count exceeds configured limit")
	ErrShapeExceedsLimit = errors.New("bjerr: declared shape product exceeds configured limit")
	ErrTypeMismatch      = errors.New("bjerr: value does not match declared type")
	ErrNegativeLength    = errors.New("bjerr: declared length is negative")
	ErrInvalidUTF8       = errors.New("bjerr: string payload is not valid UTF-8")
)

// Config sentinel error.
var ErrInvalidConfig = errors.New("bjerr: invalid configuration")

// EncoderError wraps a failure raised while encoding a value, recording
// the JSON-pointer-like Path to the offending value within the input
// tree (e.g. "$.items[3].name").
type EncoderError struct {
	Path string
	Err  error
}

func (e *EncoderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bjerr: encode: %v", e.Err)
	}

	return fmt.Sprintf("bjerr: encode at %s: %v", e.Path, e.Err)
}

func (e *EncoderError) Unwrap() error { return e.Err }

// NewEncoderError wraps err with the path at which it occurred.
func NewEncoderError(path string, err error) *EncoderError {
	return &EncoderError{Path: path, Err: err}
}

// DecoderError wraps a failure raised while decoding, recording the byte
// Offset within the input at which the failure was detected.
type DecoderError struct {
	Offset int
	Err    error
}

func (e *DecoderError) Error() string {
	return fmt.Sprintf("bjerr: decode at offset %d: %v", e.Offset, e.Err)
}

func (e *DecoderError) Unwrap() error { return e.Err }

// NewDecoderError wraps err with the offset at which it occurred.
func NewDecoderError(offset int, err error) *DecoderError {
	return &DecoderError{Offset: offset, Err: err}
}

// IOError wraps a failure from the underlying io.Writer/io.Reader,
// distinguishing transport failures from malformed-data failures.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("bjerr: io: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps an I/O failure.
func NewIOError(err error) *IOError { return &IOError{Err: err} }

// ConfigError wraps an invalid combination of options passed to New.
type ConfigError struct {
	Option string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bjerr: config %q: %v", e.Option, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps a configuration failure for the named option.
func NewConfigError(option string, err error) *ConfigError {
	return &ConfigError{Option: option, Err: err}
}

// RecursionError reports that encoding or decoding exceeded the
// configured recursion depth limit at the given depth.
type RecursionError struct {
	Depth int
	Limit int
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("bjerr: recursion depth %d exceeds limit %d", e.Depth, e.Limit)
}

func (e *RecursionError) Unwrap() error { return ErrRecursionExceeded }
