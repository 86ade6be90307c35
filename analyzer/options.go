package analyzer

import (
	"fmt"

	"github.com/erraggy/speclint/internal/options"
	"github.com/erraggy/speclint/internal/severity"
	"github.com/erraggy/speclint/oaserrors"
	"github.com/erraggy/speclint/parser"
)

// Option is a function that configures an analysis operation
type Option func(*analyzeConfig) error

// analyzeConfig holds configuration for an analysis operation
type analyzeConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	content  *string

	disabledRules []string
	minSeverity   severity.Severity
	maxFileSize   int64
	logger        parser.Logger
}

// AnalyzeWithOptions analyzes a document using functional options.
//
// Only I/O and option errors are returned; a document that fails to parse
// produces a Result holding a single parse-error issue.
//
// Example:
//
//	result, err := analyzer.AnalyzeWithOptions(
//	    analyzer.WithFilePath("openapi.yaml"),
//	    analyzer.WithMinSeverity(analyzer.SeverityWarning),
//	)
func AnalyzeWithOptions(opts ...Option) (*Result, error) {
	cfg := &analyzeConfig{
		minSeverity: SeverityInfo,
		maxFileSize: parser.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("analyzer: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithContent)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.content != nil,
	); err != nil {
		return nil, fmt.Errorf("analyzer: invalid options: %w", err)
	}

	a := &Analyzer{
		Logger:        cfg.logger,
		DisabledRules: cfg.disabledRules,
		MinSeverity:   cfg.minSeverity,
	}

	text := ""
	source := ""
	if cfg.filePath != nil {
		data, err := parser.ReadFileLimited(*cfg.filePath, cfg.maxFileSize)
		if err != nil {
			return nil, fmt.Errorf("analyzer: %w", err)
		}
		text, source = string(data), *cfg.filePath
	} else {
		text = *cfg.content
	}

	res := a.Analyze(text)
	res.SourcePath = source
	return res, nil
}

// WithFilePath specifies a file to analyze.
func WithFilePath(path string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithContent specifies the document text to analyze.
func WithContent(text string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.content = &text
		return nil
	}
}

// WithDisabledRules drops issues of the given rule IDs from the result.
// Unknown IDs are rejected so that typos do not silently disable nothing.
func WithDisabledRules(ids ...string) Option {
	return func(cfg *analyzeConfig) error {
		for _, id := range ids {
			if _, ok := LookupRule(id); !ok {
				return &oaserrors.ConfigError{Option: "disabled rule", Value: id, Message: "unknown rule ID"}
			}
		}
		cfg.disabledRules = append(cfg.disabledRules, ids...)
		return nil
	}
}

// WithMinSeverity drops issues below min.
// Default: info (keep all)
func WithMinSeverity(min severity.Severity) Option {
	return func(cfg *analyzeConfig) error {
		cfg.minSeverity = min
		return nil
	}
}

// WithMaxFileSize bounds the size of a file read through WithFilePath.
func WithMaxFileSize(size int64) Option {
	return func(cfg *analyzeConfig) error {
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "max file size", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l parser.Logger) Option {
	return func(cfg *analyzeConfig) error {
		cfg.logger = l
		return nil
	}
}
