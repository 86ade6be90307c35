// Package severity provides the severity levels attached to lint issues.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates how serious a reported issue is.
type Severity int

const (
	// SeverityError marks a structural defect or a constraint that can never
	// be satisfied, such as an inverted range.
	SeverityError Severity = iota

	// SeverityWarning marks a house-style violation that should be addressed.
	SeverityWarning

	// SeverityInfo marks a suggestion: nothing is wrong yet, but a
	// category-specific constraint would help.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Rank orders severities so that larger values are more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is at least as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// Parse converts a textual severity into a Severity.
// "warning" is accepted as an alias of "warn".
func Parse(text string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "error":
		return SeverityError, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", text)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
