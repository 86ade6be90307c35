package differ

import (
	"fmt"

	"github.com/erraggy/speclint/internal/options"
	"github.com/erraggy/speclint/oaserrors"
	"github.com/erraggy/speclint/parser"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Before source (exactly one must be set)
	beforePath    *string
	beforeContent *string

	// After source (exactly one must be set)
	afterPath    *string
	afterContent *string

	context     int
	maxFileSize int64
	logger      parser.Logger
}

// DiffWithOptions compares two documents using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithBeforePath("openapi.yaml"),
//	    differ.WithAfterContent(fixed),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg := &diffConfig{
		context:     DefaultContext,
		maxFileSize: parser.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("differ: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"must specify a before source (use WithBeforePath or WithBeforeContent)",
		"must specify exactly one before source",
		cfg.beforePath != nil, cfg.beforeContent != nil,
	); err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}
	if err := options.ValidateSingleInputSource(
		"must specify an after source (use WithAfterPath or WithAfterContent)",
		"must specify exactly one after source",
		cfg.afterPath != nil, cfg.afterContent != nil,
	); err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	before, beforeName, err := cfg.read(cfg.beforePath, cfg.beforeContent, "before")
	if err != nil {
		return nil, err
	}
	after, afterName, err := cfg.read(cfg.afterPath, cfg.afterContent, "after")
	if err != nil {
		return nil, err
	}

	d := &Differ{
		Logger:     cfg.logger,
		Context:    cfg.context,
		BeforeName: beforeName,
		AfterName:  afterName,
	}
	res, err := d.Diff(before, after)
	if err != nil {
		return nil, err
	}
	if cfg.beforePath != nil {
		res.BeforePath = *cfg.beforePath
	}
	if cfg.afterPath != nil {
		res.AfterPath = *cfg.afterPath
	}
	return res, nil
}

// read returns one side's text and its unified-diff label.
func (cfg *diffConfig) read(path, content *string, label string) (string, string, error) {
	if path == nil {
		return *content, label, nil
	}
	data, err := parser.ReadFileLimited(*path, cfg.maxFileSize)
	if err != nil {
		return "", "", fmt.Errorf("differ: %s: %w", label, err)
	}
	return string(data), *path, nil
}

// WithBeforePath specifies the before file.
func WithBeforePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.beforePath = &path
		return nil
	}
}

// WithBeforeContent specifies the before text.
func WithBeforeContent(text string) Option {
	return func(cfg *diffConfig) error {
		cfg.beforeContent = &text
		return nil
	}
}

// WithAfterPath specifies the after file.
func WithAfterPath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.afterPath = &path
		return nil
	}
}

// WithAfterContent specifies the after text.
func WithAfterContent(text string) Option {
	return func(cfg *diffConfig) error {
		cfg.afterContent = &text
		return nil
	}
}

// WithContext sets the number of context lines in unified output.
// Default: 3
func WithContext(lines int) Option {
	return func(cfg *diffConfig) error {
		if lines < 0 {
			return &oaserrors.ConfigError{Option: "context", Value: lines, Message: "must not be negative"}
		}
		cfg.context = lines
		return nil
	}
}

// WithMaxFileSize bounds the size of each file read.
func WithMaxFileSize(size int64) Option {
	return func(cfg *diffConfig) error {
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "max file size", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l parser.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = l
		return nil
	}
}
