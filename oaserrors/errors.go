package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through their Is methods.
var (
	// ErrParse matches any *ParseError.
	ErrParse = errors.New("parse error")

	// ErrStructural matches any *StructuralError: a document whose
	// structure was corrupted before it reached speclint, such as a
	// duplicated HTTP method under one path.
	ErrStructural = errors.New("structural defect")

	// ErrResourceLimit matches any *ResourceLimitError.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig matches any *ConfigError.
	ErrConfig = errors.New("configuration error")
)

// ParseError reports a document that is not valid YAML or JSON, or whose
// root is not a mapping.
type ParseError struct {
	// Path is the file the document came from, if any
	Path string
	// Line and Column locate the failure; zero when unknown
	Line   int
	Column int
	// Message describes the failure
	Message string
	// Cause is the decoder error, if any
	Cause error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(ErrParse.Error())
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}
	appendDetail(&b, e.Message, e.Cause)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// StructuralError reports repeated mapping keys. Once such a document has
// been decoded, one of the duplicates is already lost, so fixing refuses
// to rewrite it.
type StructuralError struct {
	// Path is the API path the first repeated key was found under
	Path string
	// Keys lists the repeated keys: methods, or paths for a repeated path key
	Keys []string
	// Line is the line of the first repeated key; zero when unknown
	Line int
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString(ErrStructural.Error())
	if e.Path != "" {
		b.WriteString(" under ")
		b.WriteString(e.Path)
	}
	if len(e.Keys) > 0 {
		b.WriteString(": repeated key(s) ")
		b.WriteString(strings.Join(e.Keys, ", "))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

func (e *StructuralError) Is(target error) bool { return target == ErrStructural }

// ResourceLimitError reports an input larger than the configured maximum.
type ResourceLimitError struct {
	// ResourceType names what was limited, e.g. "input size"
	ResourceType string
	Limit        int64
	// Actual is the observed value when known
	Actual  int64
	Message string
}

func (e *ResourceLimitError) Error() string {
	var b strings.Builder
	b.WriteString(ErrResourceLimit.Error())
	if e.ResourceType != "" {
		b.WriteString(": ")
		b.WriteString(e.ResourceType)
	}
	switch {
	case e.Limit > 0 && e.Actual > 0:
		fmt.Fprintf(&b, " (limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		fmt.Fprintf(&b, " (limit: %d)", e.Limit)
	}
	appendDetail(&b, e.Message, nil)
	return b.String()
}

func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError reports an invalid option: an unknown rule ID, an unparseable
// severity, a negative limit, or a missing or doubled input source.
type ConfigError struct {
	// Option names the setting, e.g. "min severity" or "output.format"
	Option string
	// Value is the rejected value; nil when there was none
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConfig.Error())
	if e.Option != "" {
		b.WriteString(" for ")
		b.WriteString(e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	appendDetail(&b, e.Message, e.Cause)
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Cause }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func appendDetail(b *strings.Builder, message string, cause error) {
	if message != "" {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
}
