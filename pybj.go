// Package pybj implements a BJData/UBJSON binary serialization codec: a
// compact, self-describing, strongly-typed superset of JSON's data model
// with efficient binary encodings for numeric arrays and structured
// records.
//
// The package mirrors the shape of github.com/arloliu/mebo's top-level
// convenience wrappers: Dump/Dumpb encode a Go value or a pre-built
// value.Value tree; Load/Loadb decode wire bytes back into a
// value.Value tree. Callers who need per-call configuration reach for
// encoder.Option/decoder.Option (re-exported here as EncodeOption/
// DecodeOption) rather than a package-level global.
//
//	data, err := pybj.Dumpb(map[string]any{"hello": "world"})
//	if err != nil {
//		// handle error
//	}
//	v, err := pybj.Loadb(data)
package pybj

import (
	"io"

	"github.com/NeuroJSON/pybj/decoder"
	"github.com/NeuroJSON/pybj/encoder"
	"github.com/NeuroJSON/pybj/value"
)

// EncodeOption configures an Encoder used by Dump/Dumpb.
type EncodeOption = encoder.Option

// DecodeOption configures a Decoder used by Load/Loadb.
type DecodeOption = decoder.Option

// Dumpb encodes v and returns the accumulated BJData/UBJSON bytes.
func Dumpb(v any, opts ...EncodeOption) ([]byte, error) {
	enc, err := encoder.New(opts...)
	if err != nil {
		return nil, err
	}

	return enc.EncodeToBytes(v)
}

// Dump encodes v, writing wire bytes to w as they are produced.
func Dump(w io.Writer, v any, opts ...EncodeOption) error {
	enc, err := encoder.New(opts...)
	if err != nil {
		return err
	}

	return enc.EncodeTo(w, v)
}

// Loadb decodes data in-memory and returns the resulting value tree.
func Loadb(data []byte, opts ...DecodeOption) (value.Value, error) {
	dec, err := decoder.New(opts...)
	if err != nil {
		return value.Value{}, err
	}

	return dec.DecodeBytes(data)
}

// Load pulls bytes from r as needed and returns the resulting value
// tree.
func Load(r io.Reader, opts ...DecodeOption) (value.Value, error) {
	dec, err := decoder.New(opts...)
	if err != nil {
		return value.Value{}, err
	}

	return dec.DecodeFrom(r)
}
