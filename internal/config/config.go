// Package config loads etfer configuration.
//
// Configuration comes from a single YAML file named by the --config
// flag or, failing that, the ETFER_CONFIG environment variable. There
// is no discovery: without either, the built-in defaults apply. Values
// in the file override the defaults field by field; fields the file
// does not mention keep their default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Neumenon/etfer/etf"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "ETFER_CONFIG"

// Config is the complete etfer configuration.
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Encode EncodeConfig `yaml:"encode"`
	Stream StreamConfig `yaml:"stream"`
	Log    LogConfig    `yaml:"log"`
}

// DecodeConfig bounds the work a single decode may do.
type DecodeConfig struct {
	// MaxDepth limits container nesting. Negative means unlimited.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// MaxDecompressedSize caps the inflated size of a compressed term.
	// Default: 64 MiB
	MaxDecompressedSize int `yaml:"max_decompressed_size"`

	// RejectTrailing makes bytes after the top-level term an error.
	RejectTrailing bool `yaml:"reject_trailing"`
}

// EncodeConfig controls term encoding.
type EncodeConfig struct {
	// SortKeys writes map members in key order.
	SortKeys bool `yaml:"sort_keys"`

	// Compress wraps terms in the zlib envelope.
	Compress bool `yaml:"compress"`

	// CompressLevel is a zlib level: -1 for the zlib default, 0 for
	// stored blocks, 1 to 9 for speed through size.
	// Default: -1
	CompressLevel int `yaml:"compress_level"`

	// MaxDepth limits container nesting. Negative means unlimited.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`
}

// StreamConfig configures framed transport.
type StreamConfig struct {
	// MaxPayload is the largest accepted frame payload in bytes.
	// Default: 64 MiB
	MaxPayload int `yaml:"max_payload"`

	// CRC adds a checksum to written frames and verifies read ones.
	// Default: true
	CRC bool `yaml:"crc"`

	// CompressThreshold is the payload size from which frames are zstd
	// compressed. Zero disables compression.
	// Default: 4096
	CompressThreshold int `yaml:"compress_threshold"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is text, json or auto (text on a terminal, JSON otherwise).
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	decode := etf.DefaultDecodeOptions()
	encode := etf.DefaultEncodeOptions()
	return &Config{
		Decode: DecodeConfig{
			MaxDepth:            decode.MaxDepth,
			MaxDecompressedSize: decode.MaxDecompressedSize,
		},
		Encode: EncodeConfig{
			CompressLevel: encode.CompressLevel,
			MaxDepth:      encode.MaxDepth,
		},
		Stream: StreamConfig{
			MaxPayload:        64 * 1024 * 1024,
			CRC:               true,
			CompressThreshold: 4096,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads the file at path, or the file named by ETFER_CONFIG when
// path is empty. With neither it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads and validates the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Decode.MaxDecompressedSize <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_decompressed_size must be positive"))
	}
	if c.Encode.CompressLevel < -1 || c.Encode.CompressLevel > 9 {
		errs = append(errs, fmt.Errorf("encode.compress_level must be between -1 and 9, got %d", c.Encode.CompressLevel))
	}
	if c.Stream.MaxPayload <= 0 {
		errs = append(errs, fmt.Errorf("stream.max_payload must be positive"))
	}
	if c.Stream.CompressThreshold < 0 {
		errs = append(errs, fmt.Errorf("stream.compress_threshold must not be negative"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: auto, text, json"))
	}

	return errors.Join(errs...)
}

// DecodeOptions converts the decode section.
func (c *Config) DecodeOptions() etf.DecodeOptions {
	return etf.DecodeOptions{
		MaxDepth:            c.Decode.MaxDepth,
		MaxDecompressedSize: c.Decode.MaxDecompressedSize,
		RejectTrailing:      c.Decode.RejectTrailing,
	}
}

// EncodeOptions converts the encode section.
func (c *Config) EncodeOptions() etf.EncodeOptions {
	return etf.EncodeOptions{
		SortKeys:      c.Encode.SortKeys,
		Compress:      c.Encode.Compress,
		CompressLevel: c.compressLevel(),
		MaxDepth:      c.Encode.MaxDepth,
	}
}

// compressLevel maps the zlib level onto etf.EncodeOptions, where zero
// means the default.
func (c *Config) compressLevel() int {
	if c.Encode.CompressLevel == 0 {
		return etf.LevelStored
	}
	return c.Encode.CompressLevel
}

// SlogLevel parses the log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
