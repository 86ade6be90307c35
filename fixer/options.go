package fixer

import (
	"fmt"

	"github.com/erraggy/speclint/internal/options"
	"github.com/erraggy/speclint/oaserrors"
	"github.com/erraggy/speclint/parser"
)

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

// fixConfig holds configuration for a fix operation
type fixConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	content  *string

	selection   []int
	selective   bool
	strict      bool
	maxFileSize int64
	logger      parser.Logger
}

// FixWithOptions fixes a document using functional options.
//
// Example:
//
//	result, err := fixer.FixWithOptions(
//	    fixer.WithFilePath("openapi.yaml"),
//	    fixer.WithSelection(0, 3),
//	)
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg := &fixConfig{maxFileSize: parser.DefaultMaxFileSize}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("fixer: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithContent)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.content != nil,
	); err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}

	text, source := "", ""
	if cfg.filePath != nil {
		data, err := parser.ReadFileLimited(*cfg.filePath, cfg.maxFileSize)
		if err != nil {
			return nil, fmt.Errorf("fixer: %w", err)
		}
		text, source = string(data), *cfg.filePath
	} else {
		text = *cfg.content
	}

	f := &Fixer{Logger: cfg.logger, Strict: cfg.strict}
	var (
		res *FixResult
		err error
	)
	if cfg.selective {
		res, err = f.FixSelective(text, cfg.selection)
	} else {
		res, err = f.Fix(text)
	}
	if res != nil {
		res.SourcePath = source
	}
	return res, err
}

// WithFilePath specifies a file to fix.
func WithFilePath(path string) Option {
	return func(cfg *fixConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithContent specifies the document text to fix.
func WithContent(text string) Option {
	return func(cfg *fixConfig) error {
		cfg.content = &text
		return nil
	}
}

// WithSelection restricts fixing to the issues at the given indices of the
// document's analysis. Repeated calls accumulate.
func WithSelection(indices ...int) Option {
	return func(cfg *fixConfig) error {
		cfg.selective = true
		cfg.selection = append(cfg.selection, indices...)
		return nil
	}
}

// WithStrict makes a refused fix return an error wrapping
// oaserrors.ErrStructural.
func WithStrict(strict bool) Option {
	return func(cfg *fixConfig) error {
		cfg.strict = strict
		return nil
	}
}

// WithMaxFileSize bounds the size of a file read through WithFilePath.
func WithMaxFileSize(size int64) Option {
	return func(cfg *fixConfig) error {
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "max file size", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l parser.Logger) Option {
	return func(cfg *fixConfig) error {
		cfg.logger = l
		return nil
	}
}
