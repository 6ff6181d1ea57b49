package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/Neumenon/etfer/bridge"
	"github.com/Neumenon/etfer/etf"
	"github.com/Neumenon/etfer/stream"
)

func decodeCommand(fs *pflag.FlagSet) func(*env, []string) error {
	pretty := fs.BoolP("pretty", "p", false, "indent the JSON output")
	asYAML := fs.Bool("yaml", false, "write YAML instead of JSON")
	hexIn := fs.BoolP("hex", "x", false, "input is hex-encoded")

	return func(e *env, args []string) error {
		data, err := readInput(args, e.stdin, *hexIn)
		if err != nil {
			return err
		}
		dec := etf.NewDecoder(e.cfg.DecodeOptions())

		if *asYAML {
			v, err := dec.Value(data)
			if err != nil {
				return err
			}
			out, err := bridge.ToYAML(v)
			if err != nil {
				return err
			}
			_, err = e.stdout.Write(out)
			return err
		}

		out, err := dec.ToJSON(data)
		if err != nil {
			return err
		}
		if *pretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				return fmt.Errorf("indent: %w", err)
			}
			out = buf.Bytes()
		}
		e.logger.Debug("decoded term", "input_bytes", len(data), "json_bytes", len(out))
		_, err = fmt.Fprintf(e.stdout, "%s\n", out)
		return err
	}
}

func encodeCommand(fs *pflag.FlagSet) func(*env, []string) error {
	sortKeys := fs.Bool("sort-keys", false, "write map members in key order")
	compress := fs.Bool("compress", false, "wrap the term in the zlib envelope")
	hexOut := fs.BoolP("hex", "x", false, "write hex instead of binary")

	return func(e *env, args []string) error {
		data, err := readInput(args, e.stdin, false)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return fmt.Errorf("empty input: expected JSON data")
		}

		v, err := etf.FromJSON(jsonc.ToJSON(data))
		if err != nil {
			return err
		}

		opts := e.cfg.EncodeOptions()
		if fs.Changed("sort-keys") {
			opts.SortKeys = *sortKeys
		}
		if fs.Changed("compress") {
			opts.Compress = *compress
		}
		out, err := etf.NewEncoder(opts).Encode(v)
		if err != nil {
			return err
		}
		e.logger.Debug("encoded term", "bytes", len(out), "compressed", opts.Compress)
		return writeOutput(e.stdout, out, *hexOut)
	}
}

func measureCommand(fs *pflag.FlagSet) func(*env, []string) error {
	hexIn := fs.BoolP("hex", "x", false, "input is hex-encoded")

	return func(e *env, args []string) error {
		data, err := readInput(args, e.stdin, *hexIn)
		if err != nil {
			return err
		}
		n, err := etf.NewDecoder(e.cfg.DecodeOptions()).Measure(data)
		if err != nil {
			return err
		}
		if trailing := len(data) - 1 - n; trailing > 0 {
			e.logger.Info("input has trailing bytes", "term_bytes", n, "trailing_bytes", trailing)
		}
		_, err = fmt.Fprintln(e.stdout, n)
		return err
	}
}

func cborCommand(fs *pflag.FlagSet) func(*env, []string) error {
	diag := fs.Bool("diag", false, "write CBOR diagnostic notation")
	hexIO := fs.BoolP("hex", "x", false, "hex-encoded input and output")

	return func(e *env, args []string) error {
		v, err := readTerm(e, args, *hexIO)
		if err != nil {
			return err
		}
		if *diag {
			text, err := bridge.DiagnoseCBOR(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.stdout, text)
			return err
		}
		out, err := bridge.ToCBOR(v)
		if err != nil {
			return err
		}
		return writeOutput(e.stdout, out, *hexIO)
	}
}

func msgpackCommand(fs *pflag.FlagSet) func(*env, []string) error {
	hexIO := fs.BoolP("hex", "x", false, "hex-encoded input and output")

	return func(e *env, args []string) error {
		v, err := readTerm(e, args, *hexIO)
		if err != nil {
			return err
		}
		out, err := bridge.ToMsgpack(v)
		if err != nil {
			return err
		}
		return writeOutput(e.stdout, out, *hexIO)
	}
}

func framesCommand(fs *pflag.FlagSet) func(*env, []string) error {
	hexIn := fs.BoolP("hex", "x", false, "input is hex-encoded")

	return func(e *env, args []string) error {
		data, err := readInput(args, e.stdin, *hexIn)
		if err != nil {
			return err
		}

		r := stream.NewReader(bytes.NewReader(data),
			stream.WithMaxPayload(e.cfg.Stream.MaxPayload),
			stream.WithCRCVerification(e.cfg.Stream.CRC),
		)
		h := stream.NewHandler(e.logger)
		h.Decoder = etf.NewDecoder(e.cfg.DecodeOptions())
		h.OnValue = func(f *stream.Frame, _ *etf.Value, _ stream.SIDState) error {
			out, err := h.Decoder.ToJSON(f.Payload)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(e.stdout, "%d\t%d\t%s\t%s\n", f.SID, f.Seq, f.Flags, out)
			return err
		}
		if err := h.Run(e.ctx, r); err != nil {
			return fmt.Errorf("at byte %d: %w", r.Offset(), err)
		}
		e.logger.Debug("stream done", "bytes", r.Offset(), "sids", len(h.Cursor.SIDs()))
		return nil
	}
}

func packCommand(fs *pflag.FlagSet) func(*env, []string) error {
	sid := fs.Uint64("sid", 1, "stream id for every frame")
	hexOut := fs.BoolP("hex", "x", false, "write hex instead of binary")

	return func(e *env, args []string) error {
		data, err := readInput(args, e.stdin, false)
		if err != nil {
			return err
		}
		v, err := etf.FromJSON(jsonc.ToJSON(data))
		if err != nil {
			return err
		}
		items, err := v.AsArray()
		if err != nil {
			return fmt.Errorf("input must be a JSON array: %w", err)
		}

		opts := []stream.WriterOption{
			stream.WithCompressThreshold(e.cfg.Stream.CompressThreshold),
			stream.WithEncodeOptions(e.cfg.EncodeOptions()),
		}
		if e.cfg.Stream.CRC {
			opts = append(opts, stream.WithCRC())
		}

		var buf bytes.Buffer
		w := stream.NewWriter(&buf, opts...)
		for i, item := range items {
			seq := uint64(i + 1)
			if i == len(items)-1 {
				err = w.WriteFinal(*sid, seq, item)
			} else {
				err = w.WriteValue(*sid, seq, item)
			}
			if err != nil {
				return err
			}
		}
		e.logger.Debug("packed frames", "frames", len(items), "bytes", buf.Len())
		return writeOutput(e.stdout, buf.Bytes(), *hexOut)
	}
}

func versionCommand(*pflag.FlagSet) func(*env, []string) error {
	return func(e *env, _ []string) error {
		_, err := fmt.Fprintf(e.stdout, "etfer %s (%s)\n", version, runtime.Version())
		return err
	}
}

// readTerm reads and decodes one ETF term from the command input.
func readTerm(e *env, args []string, hexIn bool) (*etf.Value, error) {
	data, err := readInput(args, e.stdin, hexIn)
	if err != nil {
		return nil, err
	}
	return etf.NewDecoder(e.cfg.DecodeOptions()).Value(data)
}
