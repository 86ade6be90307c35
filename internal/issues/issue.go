// Package issues provides the issue type reported by the analyzer.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/speclint/internal/severity"
)

// NoIndex is the Endpoint.Index value for issues that are not tied to a
// position in a bespoke apis list.
const NoIndex = -1

// Endpoint identifies the endpoint an issue was raised against.
// OpenAPI documents use Method and Path (the path key as written in the
// document); bespoke documents use Index into the apis list.
type Endpoint struct {
	Method string `json:"method,omitempty"`
	Path   string `json:"path,omitempty"`
	Index  int    `json:"index"`
}

// IsZero reports whether the endpoint carries no identity at all.
func (e Endpoint) IsZero() bool {
	return e.Method == "" && e.Path == "" && e.Index == NoIndex
}

// String renders the endpoint as "GET /users" or "apis[2]".
func (e Endpoint) String() string {
	var parts []string
	if e.Index != NoIndex {
		parts = append(parts, fmt.Sprintf("apis[%d]", e.Index))
	}
	if e.Method != "" {
		parts = append(parts, e.Method)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	return strings.Join(parts, " ")
}

// Issue represents a single rule violation found in a document.
type Issue struct {
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// RuleID is the stable rule identifier derived from the message
	RuleID string `json:"ruleId"`
	// Endpoint references the endpoint the issue belongs to (may be zero)
	Endpoint Endpoint `json:"endpoint"`
	// Field locates the parameter or body field within the endpoint,
	// e.g. "parameters[1]" or "requestBody.address.zip"
	Field string `json:"field,omitempty"`
	// Line is the 1-based line number in the source document (0 if unknown)
	Line int `json:"line,omitempty"`
	// Fixable is true when the fixer can repair the issue automatically
	Fixable bool `json:"fixable"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var sb strings.Builder
	sb.WriteString(symbol)
	if i.RuleID != "" {
		fmt.Fprintf(&sb, " [%s]", i.RuleID)
	}
	if where := i.Location(); where != "" {
		sb.WriteString(" " + where)
	}
	sb.WriteString(": " + i.Message)
	return sb.String()
}

// Location returns the endpoint, field and line the issue points at, or an
// empty string when none are known.
func (i Issue) Location() string {
	var parts []string
	if !i.Endpoint.IsZero() {
		parts = append(parts, i.Endpoint.String())
	}
	if i.Field != "" {
		parts = append(parts, i.Field)
	}
	loc := strings.Join(parts, " ")
	if i.Line > 0 {
		if loc == "" {
			return fmt.Sprintf("(line %d)", i.Line)
		}
		loc += fmt.Sprintf(" (line %d)", i.Line)
	}
	return loc
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Counts tallies issues per severity.
type Counts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Count returns per-severity totals for list.
func Count(list []Issue) Counts {
	var c Counts
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityError:
			c.Errors++
		case severity.SeverityWarning:
			c.Warnings++
		case severity.SeverityInfo:
			c.Infos++
		}
	}
	return c
}

// Filter returns the issues at or above min severity whose rule is not in
// disabled. The input slice is not modified.
func Filter(list []Issue, min severity.Severity, disabled []string) []Issue {
	skip := make(map[string]struct{}, len(disabled))
	for _, id := range disabled {
		skip[id] = struct{}{}
	}
	out := make([]Issue, 0, len(list))
	for _, i := range list {
		if !i.Severity.AtLeast(min) {
			continue
		}
		if _, ok := skip[i.RuleID]; ok {
			continue
		}
		out = append(out, i)
	}
	return out
}
