// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/speclint/internal/issues"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues writes one line per issue, prefixed with source when it is
// not empty, followed by a per-severity summary line.
func WriteIssues(w io.Writer, st *Styler, source string, list []issues.Issue) {
	prefix := ""
	if source != "" {
		prefix = source + ": "
	}
	for _, i := range list {
		Writef(w, "%s%s\n", prefix, st.Issue(i))
	}
	c := issues.Count(list)
	Writef(w, "%s%s, %s, %s\n", prefix,
		st.Error(plural(c.Errors, "error")),
		st.Warning(plural(c.Warnings, "warning")),
		st.Info(plural(c.Infos, "info")))
}

func plural(n int, noun string) string {
	if n == 1 || noun == "info" {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
