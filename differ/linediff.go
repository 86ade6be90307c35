package differ

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineOp classifies one line of a line diff.
type LineOp string

const (
	// OpEqual is a line present on both sides
	OpEqual LineOp = "equal"
	// OpAdd is a line only present in the after text
	OpAdd LineOp = "add"
	// OpRemove is a line only present in the before text
	OpRemove LineOp = "remove"
)

// NoLine is the line number used for the side a line does not exist on.
const NoLine = -1

// LineChange is one aligned line of a line diff. Line numbers are zero-based.
type LineChange struct {
	Op         LineOp `json:"op"`
	BeforeLine int    `json:"beforeLine"`
	AfterLine  int    `json:"afterLine"`
	Text       string `json:"text"`
}

// String renders the change in unified-diff style, e.g. "+ maxLength: 255".
func (c LineChange) String() string {
	switch c.Op {
	case OpAdd:
		return "+ " + c.Text
	case OpRemove:
		return "- " + c.Text
	default:
		return "  " + c.Text
	}
}

// LineStats counts the lines of a line diff by op.
type LineStats struct {
	Equal   int `json:"equal"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// HasChanges reports whether any line was added or removed.
func (s LineStats) HasChanges() bool {
	return s.Added > 0 || s.Removed > 0
}

// CountLines tallies changes by op.
func CountLines(changes []LineChange) LineStats {
	var s LineStats
	for _, c := range changes {
		switch c.Op {
		case OpEqual:
			s.Equal++
		case OpAdd:
			s.Added++
		case OpRemove:
			s.Removed++
		}
	}
	return s
}

// splitLines splits text on "\n". A final newline does not start an extra
// empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// diffLines aligns a and b by longest common subsequence. When removing and
// adding would keep the same common length, backtracking takes the add,
// so a replaced line reads as its removal followed by its addition.
func diffLines(a, b []string) []LineChange {
	n, m := len(a), len(b)
	width := m + 1
	table := getTable((n + 1) * width)
	defer putTable(table)
	lcs := *table

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case a[i-1] == b[j-1]:
				lcs[i*width+j] = lcs[(i-1)*width+j-1] + 1
			case lcs[(i-1)*width+j] >= lcs[i*width+j-1]:
				lcs[i*width+j] = lcs[(i-1)*width+j]
			default:
				lcs[i*width+j] = lcs[i*width+j-1]
			}
		}
	}

	out := make([]LineChange, 0, max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			out = append(out, LineChange{Op: OpEqual, BeforeLine: i - 1, AfterLine: j - 1, Text: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || lcs[i*width+j-1] >= lcs[(i-1)*width+j]):
			out = append(out, LineChange{Op: OpAdd, BeforeLine: NoLine, AfterLine: j - 1, Text: b[j-1]})
			j--
		default:
			out = append(out, LineChange{Op: OpRemove, BeforeLine: i - 1, AfterLine: NoLine, Text: a[i-1]})
			i--
		}
	}

	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// unified renders a unified diff with the given number of context lines.
func unified(before, after, beforeName, afterName string, context int) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: beforeName,
		ToFile:   afterName,
		Context:  context,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("differ: unified diff: %w", err)
	}
	return out, nil
}
