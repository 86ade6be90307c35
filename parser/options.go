package parser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/speclint/internal/options"
	"github.com/erraggy/speclint/oaserrors"
)

// DefaultMaxFileSize bounds inputs read through ParseWithOptions.
const DefaultMaxFileSize int64 = 10 << 20

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	maxFileSize int64
	logger      Logger
}

// ParseWithOptions parses a specification using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithLogger(logger),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg := &parseConfig{maxFileSize: DefaultMaxFileSize, logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("parser: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	data, source, err := cfg.read()
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("parsing document", "source", source, "bytes", len(data))

	doc, err := Parse(string(data))
	if err != nil {
		var perr *oaserrors.ParseError
		if errors.As(err, &perr) {
			perr.Path = source
		}
		return nil, err
	}
	doc.SourcePath = source
	return doc, nil
}

func (cfg *parseConfig) read() ([]byte, string, error) {
	switch {
	case cfg.filePath != nil:
		data, err := ReadFileLimited(*cfg.filePath, cfg.maxFileSize)
		if err != nil {
			return nil, *cfg.filePath, err
		}
		return data, *cfg.filePath, nil
	case cfg.reader != nil:
		data, err := readLimited(cfg.reader, cfg.maxFileSize)
		return data, "", err
	default:
		if int64(len(cfg.bytes)) > cfg.maxFileSize {
			return nil, "", &oaserrors.ResourceLimitError{
				ResourceType: "input size",
				Limit:        cfg.maxFileSize,
				Actual:       int64(len(cfg.bytes)),
			}
		}
		return cfg.bytes, "", nil
	}
}

// ReadFileLimited reads path, refusing files larger than limit bytes.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // caller-selected input file
	if err != nil {
		return nil, fmt.Errorf("parser: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, limit)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: read input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "input size", Limit: limit}
	}
	return data, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		cfg.bytes = data
		return nil
	}
}

// WithMaxFileSize sets the maximum input size in bytes (0 uses the default).
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return &oaserrors.ConfigError{Option: "maxFileSize", Value: size, Message: "must not be negative"}
		}
		if size > 0 {
			cfg.maxFileSize = size
		}
		return nil
	}
}

// WithLogger sets the logger used while reading input.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = LoggerOrNop(l)
		return nil
	}
}
