package cliutil

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/internal/severity"
)

// Color modes accepted by --color and output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// UseColor decides whether output to f is colored. In auto mode color is
// used only when f is a terminal and NO_COLOR is unset.
func UseColor(mode string, f *os.File) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return f != nil && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid color mode %q: must be auto, always or never", mode)
	}
}

// Styler colors CLI output. A disabled Styler returns text unchanged.
type Styler struct {
	err, warn, info *color.Color
	added, removed  *color.Color
	dim             *color.Color
}

// NewStyler creates a Styler that colors only when enabled is true.
func NewStyler(enabled bool) *Styler {
	st := &Styler{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{st.err, st.warn, st.info, st.added, st.removed, st.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return st
}

func (s *Styler) Error(text string) string   { return s.err.Sprint(text) }
func (s *Styler) Warning(text string) string { return s.warn.Sprint(text) }
func (s *Styler) Info(text string) string    { return s.info.Sprint(text) }
func (s *Styler) Added(text string) string   { return s.added.Sprint(text) }
func (s *Styler) Removed(text string) string { return s.removed.Sprint(text) }
func (s *Styler) Dim(text string) string     { return s.dim.Sprint(text) }

// Severity colors text by sev.
func (s *Styler) Severity(sev severity.Severity, text string) string {
	switch sev {
	case severity.SeverityError:
		return s.Error(text)
	case severity.SeverityWarning:
		return s.Warning(text)
	default:
		return s.Info(text)
	}
}

// Issue renders one issue as "<severity> [rule] location: message".
func (s *Styler) Issue(i issues.Issue) string {
	line := s.Severity(i.Severity, fmt.Sprintf("%-5s", i.Severity.String()))
	if i.RuleID != "" {
		line += " " + s.Dim("["+i.RuleID+"]")
	}
	if loc := i.Location(); loc != "" {
		line += " " + loc
	}
	line += ": " + i.Message
	if i.Fixable {
		line += " " + s.Dim("(fixable)")
	}
	return line
}
