// Command pybj converts between JSON and BJData/UBJSON, in the idiom of
// arloliu/mebo's examples/*/main.go programs: stdlib flag + log, no
// framework.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/NeuroJSON/pybj"
	"github.com/NeuroJSON/pybj/encoder"
	"github.com/NeuroJSON/pybj/value"
)

func encodeOptions(containerCount, sortKeys, bigEndian bool) []pybj.EncodeOption {
	opts := []pybj.EncodeOption{
		encoder.WithContainerCount(containerCount),
		encoder.WithSortKeys(sortKeys),
	}
	if bigEndian {
		opts = append(opts, encoder.WithBigEndian())
	}

	return opts
}

func main() {
	var (
		toJSON       = flag.Bool("d", false, "decode BJData input to JSON instead of encoding JSON to BJData")
		containerCnt = flag.Bool("container-count", false, "emit declared counts instead of terminators")
		sortKeys     = flag.Bool("sort-keys", false, "sort object keys lexicographically")
		bigEndian    = flag.Bool("big-endian", false, "use big-endian numeric payloads")
	)
	flag.Parse()

	in := io.Reader(os.Stdin)
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("pybj: open %s: %v", args[0], err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		log.Fatalf("pybj: read input: %v", err)
	}

	if *toJSON {
		if err := bjdataToJSON(data, os.Stdout); err != nil {
			log.Fatalf("pybj: %v", err)
		}

		return
	}

	if err := jsonToBJData(data, os.Stdout, *containerCnt, *sortKeys, *bigEndian); err != nil {
		log.Fatalf("pybj: %v", err)
	}
}

func jsonToBJData(data []byte, w io.Writer, containerCount, sortKeys, bigEndian bool) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	opts := encodeOptions(containerCount, sortKeys, bigEndian)

	return pybj.Dump(w, v, opts...)
}

func bjdataToJSON(data []byte, w io.Writer) error {
	v, err := pybj.Loadb(data)
	if err != nil {
		return fmt.Errorf("decode BJData: %w", err)
	}

	out := json.NewEncoder(w)
	out.SetIndent("", "  ")

	return out.Encode(valueToAny(v))
}

// valueToAny converts a decoded value.Value tree into plain Go values
// encoding/json can marshal.
func valueToAny(v value.Value) any {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		b, _ := v.AsBool()

		return b
	case value.KindInt:
		n, _ := v.AsInt()

		return n
	case value.KindUint:
		u, _ := v.AsUint()

		return u
	case value.KindFloat:
		f, _ := v.AsFloat()

		return f
	case value.KindHighPrec:
		d, _ := v.AsHighPrec()

		return json.Number(string(d))
	case value.KindString:
		s, _ := v.AsString()

		return s
	case value.KindBytes:
		b, _ := v.AsBytes()

		return b
	case value.KindArray:
		arr, _ := v.AsArray()
		out := make([]any, arr.Len())
		for i := range out {
			out[i] = valueToAny(arr.Index(i).(value.Value))
		}

		return out
	case value.KindObject:
		obj, _ := v.AsObject()
		out := make(map[string]any, obj.Len())
		obj.Range(func(key string, val any) bool {
			out[key] = valueToAny(val.(value.Value))

			return true
		})

		return out
	case value.KindNDArray:
		nd, _ := v.AsNDArray()

		return map[string]any{"shape": nd.Shape, "data": nd.Data}
	case value.KindStruct:
		st, _ := v.AsStruct()

		return map[string]any{"count": st.Count, "columns": st.Columns}
	default:
		return nil
	}
}
