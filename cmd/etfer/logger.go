package main

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Neumenon/etfer/internal/config"
)

// newLogger builds the CLI logger. In auto format it writes text when w
// is a terminal and JSON otherwise, so piped output stays parseable.
func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: level}

	text := cfg.Format == "text"
	if cfg.Format == "auto" {
		f, ok := w.(*os.File)
		text = ok && term.IsTerminal(int(f.Fd()))
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler), nil
}
