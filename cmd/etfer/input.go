package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"
)

// readInput reads the command's input: the file named by the single
// positional argument, or stdin when there is none or it is "-". With
// hexMode the input is hex text, whitespace allowed.
func readInput(args []string, stdin io.Reader, hexMode bool) ([]byte, error) {
	var data []byte
	switch {
	case len(args) > 1:
		return nil, fmt.Errorf("expected at most one input file, got %d arguments", len(args))
	case len(args) == 1 && args[0] != "-":
		var err error
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
	default:
		var err error
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it ("83 61 01" and "836101" are the same).
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	n, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:n], nil
}

// writeOutput writes binary output, or lowercase hex and a newline.
func writeOutput(w io.Writer, data []byte, hexMode bool) error {
	if hexMode {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	_, err := w.Write(data)
	return err
}
