package fixer

import (
	"fmt"
	"strings"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/oaserrors"
	"github.com/erraggy/speclint/parser"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypePath indicates a path key, basePath or server URL was cleaned
	FixTypePath FixType = "path"
	// FixTypeOperationID indicates an operationId was synthesized
	FixTypeOperationID FixType = "operation-id"
	// FixTypeDescription indicates an operation description was copied from its summary
	FixTypeDescription FixType = "description"
	// FixTypeParamType indicates a missing parameter type was set to string
	FixTypeParamType FixType = "param-type"
	// FixTypeConstraint indicates a suggested constraint was added
	FixTypeConstraint FixType = "constraint"
	// FixTypeNotNull indicates not-null enforcement was added to a required field
	FixTypeNotNull FixType = "not-null"
	// FixTypeSwap indicates an inverted bound pair was swapped
	FixTypeSwap FixType = "swap"
)

// AppliedFix represents a single fix applied to the document
type AppliedFix struct {
	// Type identifies the category of fix
	Type FixType `json:"type"`
	// Target names what was fixed, e.g. "GET /users parameters[1]" or "basePath"
	Target string `json:"target"`
	// Description is a human-readable description of the fix
	Description string `json:"description"`
	// Before is the previous value (empty if the value was added)
	Before string `json:"before,omitempty"`
	// After is the new value
	After string `json:"after,omitempty"`
}

// FixStats counts what a fix call changed.
type FixStats struct {
	// FieldsFixed counts parameters, properties and bespoke fields changed
	FieldsFixed int `json:"fieldsFixed"`
	// PathsFixed counts path keys, base paths, server URLs and bespoke paths changed
	PathsFixed int `json:"pathsFixed"`
	// OperationsFixed counts operations that received an id or description
	OperationsFixed int `json:"operationsFixed"`
}

// Total returns the number of changed items.
func (s FixStats) Total() int {
	return s.FieldsFixed + s.PathsFixed + s.OperationsFixed
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Content is the fixed document text, or the input text unchanged when
	// nothing was fixed, fixing was refused, or fixing failed.
	Content string `json:"content"`
	// Changed is true when Content differs from the input
	Changed bool `json:"changed"`
	// Refused is true when a structural defect blocked fixing
	Refused bool `json:"refused"`
	// Stats counts what changed
	Stats FixStats `json:"stats"`
	// Fixes lists every change in the order applied
	Fixes []AppliedFix `json:"fixes"`
	// Issues are the analysis results the fix was based on
	Issues []analyzer.Issue `json:"issues"`
	// SourcePath is the fixed file, if any
	SourcePath string `json:"sourcePath,omitempty"`
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return len(r.Fixes) > 0
}

// Fixer applies automatic repairs for analyzer issues.
type Fixer struct {
	// Logger receives diagnostics, including recovered internal failures.
	// Defaults to a no-op logger.
	Logger parser.Logger
	// Strict makes a refused fix return an error wrapping
	// oaserrors.ErrStructural instead of a silent unchanged result.
	Strict bool
}

// New creates a new Fixer instance with default settings
func New() *Fixer {
	return &Fixer{}
}

// Fix repairs every fixable issue in text and returns the new text. It
// returns text unchanged when nothing applies, when a repeated key blocks
// fixing, or on any internal failure.
func Fix(text string) string {
	res, _ := New().Fix(text)
	return res.Content
}

// FixSelective repairs only the issues at the given indices of
// analyzer.Analyze(text). Path hygiene is always repaired.
//
// The indices must come from analyzing this exact text. Indices from an
// older or different snapshot are not detected: they silently select other
// issues or nothing at all.
func FixSelective(text string, indices []int) string {
	res, _ := New().FixSelective(text, indices)
	return res.Content
}

// Fix repairs every fixable issue in text.
func (f *Fixer) Fix(text string) (*FixResult, error) {
	return f.run(text, nil)
}

// FixSelective repairs the chosen issues in text. See the package-level
// FixSelective for the index contract.
func (f *Fixer) FixSelective(text string, indices []int) (*FixResult, error) {
	if indices == nil {
		indices = []int{}
	}
	return f.run(text, indices)
}

// run fixes text; a nil selection means a full fix.
func (f *Fixer) run(text string, selection []int) (result *FixResult, err error) {
	log := parser.LoggerOrNop(f.Logger)
	result = &FixResult{Content: text}

	defer func() {
		if r := recover(); r != nil {
			log.Error("fix failed; returning the input unchanged", "panic", fmt.Sprint(r))
			result = &FixResult{Content: text, Issues: result.Issues}
			err = nil
		}
	}()

	doc, perr := parser.Parse(text)
	if perr != nil {
		log.Debug("fix: document does not parse", "error", perr)
		result.Issues = analyzer.Analyze(text)
		return result, nil
	}

	az := &analyzer.Analyzer{Logger: f.Logger, MinSeverity: analyzer.SeverityInfo}
	result.Issues = az.AnalyzeDocument(doc).Issues
	if analyzer.HasGate(result.Issues) {
		result.Refused = true
		log.Warn("fix refused: document has repeated keys", "issues", len(result.Issues))
		if f.Strict {
			return result, structuralError(result.Issues)
		}
		return result, nil
	}

	s := newSession(doc, result, log)
	if selection == nil {
		s.fixAll()
	} else {
		s.fixSelected(selection)
	}

	if len(result.Fixes) == 0 {
		return result, nil
	}
	out, serr := doc.Serialize()
	if serr != nil {
		log.Error("fix: serialize failed; returning the input unchanged", "error", serr)
		return &FixResult{Content: text, Issues: result.Issues}, nil
	}
	result.Content = out
	result.Changed = out != text
	log.Debug("fix: done", "fields", result.Stats.FieldsFixed,
		"paths", result.Stats.PathsFixed, "operations", result.Stats.OperationsFixed)
	return result, nil
}

func structuralError(list []analyzer.Issue) error {
	serr := &oaserrors.StructuralError{}
	for _, i := range list {
		if !analyzer.IsGating(i.RuleID) {
			continue
		}
		if serr.Path == "" {
			serr.Path = i.Endpoint.Path
			serr.Line = i.Line
		}
		switch {
		case i.Endpoint.Method != "":
			serr.Keys = append(serr.Keys, strings.ToLower(i.Endpoint.Method))
		case i.Endpoint.Path != "":
			serr.Keys = append(serr.Keys, i.Endpoint.Path)
		}
	}
	return fmt.Errorf("fixer: %w", serr)
}
