package differ

import (
	"fmt"

	"github.com/erraggy/speclint/parser"
)

// DefaultContext is the number of context lines in unified output.
const DefaultContext = 3

// DiffResult contains the results of comparing two document snapshots
type DiffResult struct {
	// Lines is the line-by-line alignment of the two texts
	Lines []LineChange `json:"lines"`
	// LineStats counts Lines by op
	LineStats LineStats `json:"lineStats"`
	// Impact is the endpoint-level comparison
	Impact *Impact `json:"impact"`
	// Unified is the unified diff text (empty when the texts are equal)
	Unified string `json:"unified,omitempty"`
	// BeforePath is the before file, if any
	BeforePath string `json:"beforePath,omitempty"`
	// AfterPath is the after file, if any
	AfterPath string `json:"afterPath,omitempty"`
}

// HasChanges reports whether the texts differ at all.
func (r *DiffResult) HasChanges() bool {
	return r.LineStats.HasChanges()
}

// Differ compares two document snapshots.
type Differ struct {
	// Logger receives diagnostics, including recovered internal failures.
	// Defaults to a no-op logger.
	Logger parser.Logger
	// Context is the number of unchanged lines around each hunk in unified
	// output. Defaults to DefaultContext.
	Context int
	// BeforeName and AfterName label the two sides in unified output.
	BeforeName string
	AfterName  string
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		Context:    DefaultContext,
		BeforeName: "before",
		AfterName:  "after",
	}
}

func (d *Differ) log() parser.Logger {
	return parser.LoggerOrNop(d.Logger)
}

// DiffText aligns the lines of before and after.
func DiffText(before, after string) []LineChange {
	return New().DiffText(before, after)
}

// DiffStructure compares the endpoints of before and after. The two texts
// may be any snapshots, not only a document and its fixed form. Paths are
// correlated by their normalized form, so a path renamed by path hygiene is
// one modified endpoint, not a removal and an addition.
func DiffStructure(before, after string) *Impact {
	return New().DiffStructure(before, after)
}

// DiffText aligns the lines of before and after.
func (d *Differ) DiffText(before, after string) []LineChange {
	return diffLines(splitLines(before), splitLines(after))
}

// DiffStructure compares the endpoints of before and after. It never
// fails: unparseable input or an internal fault yields an empty Impact.
func (d *Differ) DiffStructure(before, after string) (imp *Impact) {
	defer func() {
		if r := recover(); r != nil {
			d.log().Error("diff failed; returning an empty impact", "panic", fmt.Sprint(r))
			imp = &Impact{Endpoints: []ChangeRecord{}, Schemas: []SchemaChange{}}
		}
	}()
	return d.structure(before, after)
}

// Unified renders a unified diff of before and after.
func (d *Differ) Unified(before, after string) (string, error) {
	context := d.Context
	if context < 0 {
		context = DefaultContext
	}
	return unified(before, after, d.BeforeName, d.AfterName, context)
}

// Diff runs every comparison.
func (d *Differ) Diff(before, after string) (*DiffResult, error) {
	lines := d.DiffText(before, after)
	res := &DiffResult{
		Lines:     lines,
		LineStats: CountLines(lines),
		Impact:    d.DiffStructure(before, after),
	}
	if res.LineStats.HasChanges() {
		text, err := d.Unified(before, after)
		if err != nil {
			return nil, err
		}
		res.Unified = text
	}
	d.log().Debug("diff: done", "added", res.LineStats.Added, "removed", res.LineStats.Removed,
		"endpoints", len(res.Impact.Endpoints))
	return res, nil
}
