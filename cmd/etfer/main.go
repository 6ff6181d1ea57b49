// etfer - Erlang External Term Format CLI tool
//
// Usage:
//
//	etfer decode [--pretty] [--yaml] [--hex] [file]   Convert an ETF term to JSON (or YAML)
//	etfer encode [--sort-keys] [--compress] [--hex] [file]
//	                                                   Convert JSON or JSONC to an ETF term
//	etfer measure [--hex] [file]                       Print the encoded size of a term
//	etfer cbor [--diag] [--hex] [file]                 Convert an ETF term to CBOR
//	etfer msgpack [--hex] [file]                       Convert an ETF term to MessagePack
//	etfer frames [--hex] [file]                        Decode a framed stream, one line per frame
//	etfer pack [--sid N] [--hex] [file]                Frame each element of a JSON array
//	etfer version                                      Print version info
//
// Every command also accepts --config and --log-level. If no file is
// given, input is read from stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/Neumenon/etfer/internal/config"
)

const version = "0.1.0"

// env is what a command runs against.
type env struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *slog.Logger
}

// command is one subcommand. setup registers its flags on fs and returns
// the function that runs it with the positional arguments.
type command struct {
	name    string
	summary string
	setup   func(fs *pflag.FlagSet) func(*env, []string) error
}

func commands() []command {
	return []command{
		{"decode", "convert an ETF term to JSON", decodeCommand},
		{"encode", "convert JSON or JSONC to an ETF term", encodeCommand},
		{"measure", "print the encoded size of a term", measureCommand},
		{"cbor", "convert an ETF term to CBOR", cborCommand},
		{"msgpack", "convert an ETF term to MessagePack", msgpackCommand},
		{"frames", "decode a framed stream", framesCommand},
		{"pack", "frame each element of a JSON array", packCommand},
		{"version", "print version info", versionCommand},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the exit status: 0 on
// success, 1 on failure, 2 on a usage error.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	var cmd *command
	for _, c := range commands() {
		if c.name == args[0] {
			cmd = &c
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "etfer: unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}

	fs := pflag.NewFlagSet("etfer "+cmd.name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "configuration file (default $"+config.EnvVar+")")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	runCmd := cmd.setup(fs)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "etfer: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logger, err := newLogger(stderr, cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "etfer: %v\n", err)
		return 2
	}

	e := &env{
		ctx:    ctx,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		logger: logger.With("command", cmd.name),
	}
	if err := runCmd(e, fs.Args()); err != nil {
		e.logger.Debug("command failed", "error", err)
		fmt.Fprintf(stderr, "etfer %s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: etfer <command> [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `run "etfer <command> --help" for its flags`)
}
