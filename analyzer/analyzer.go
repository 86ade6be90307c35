package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/internal/severity"
	"github.com/erraggy/speclint/oaserrors"
	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

// Issue is a single rule violation.
type Issue = issues.Issue

// Endpoint identifies the endpoint an issue belongs to.
type Endpoint = issues.Endpoint

// Severity levels, re-exported for callers that only import analyzer.
const (
	SeverityError   = severity.SeverityError
	SeverityWarning = severity.SeverityWarning
	SeverityInfo    = severity.SeverityInfo
)

// Result contains the outcome of analyzing one document.
type Result struct {
	// Issues in the order they were found.
	Issues []Issue
	// Counts per severity, after filtering.
	Counts issues.Counts
	// Shape is the detected document layout.
	Shape parser.Shape
	// Version is the swagger/openapi version, if declared.
	Version string
	// Halted is true when a structural defect stopped the analysis early.
	Halted bool
	// SourcePath is the analyzed file, if any.
	SourcePath string
}

// HasErrors reports whether any error-severity issue was found.
func (r *Result) HasErrors() bool {
	return r.Counts.Errors > 0
}

// Analyzer checks documents against the house rules.
type Analyzer struct {
	// Logger receives debug output. Defaults to a no-op logger.
	Logger parser.Logger
	// DisabledRules lists rule IDs to drop from results.
	DisabledRules []string
	// MinSeverity drops issues below this level. Default: info (keep all).
	MinSeverity severity.Severity
}

// New creates a new Analyzer with default settings.
func New() *Analyzer {
	return &Analyzer{MinSeverity: SeverityInfo}
}

// Analyze returns every issue found in text. It never fails: text that
// does not parse yields a single parse-error issue.
func Analyze(text string) []Issue {
	return New().Analyze(text).Issues
}

// Analyze checks text and returns the filtered result.
func (a *Analyzer) Analyze(text string) *Result {
	log := parser.LoggerOrNop(a.Logger)

	doc, err := parser.Parse(text)
	if err != nil {
		log.Debug("analyze: parse failed", "error", err)
		return a.finish(&Result{Issues: []Issue{parseIssue(err)}, Halted: true})
	}
	return a.AnalyzeDocument(doc)
}

// AnalyzeDocument checks an already parsed document. The document is not
// modified.
func (a *Analyzer) AnalyzeDocument(doc *parser.Document) *Result {
	log := parser.LoggerOrNop(a.Logger)
	res := &Result{Shape: doc.Shape, Version: doc.Version, SourcePath: doc.SourcePath}

	r := &run{doc: doc}
	if dups := r.checkDuplicates(); dups {
		res.Issues = r.issues
		res.Halted = true
		log.Debug("analyze: halted on repeated keys", "issues", len(r.issues))
		return a.finish(res)
	}

	switch doc.Shape {
	case parser.ShapeOpenAPI:
		r.analyzeOpenAPI()
	case parser.ShapeBespoke:
		r.analyzeBespoke()
	default:
		r.add(SeverityError, Endpoint{Index: issues.NoIndex}, "", 1,
			"document is neither an OpenAPI document nor a bespoke API document (no paths or apis)")
	}
	res.Issues = r.issues
	log.Debug("analyze: done", "shape", doc.Shape.String(), "issues", len(r.issues))
	return a.finish(res)
}

func (a *Analyzer) finish(res *Result) *Result {
	if len(a.DisabledRules) > 0 || a.MinSeverity != SeverityInfo {
		res.Issues = issues.Filter(res.Issues, a.MinSeverity, a.DisabledRules)
	}
	res.Counts = issues.Count(res.Issues)
	return res
}

func parseIssue(err error) Issue {
	msg := "failed to parse document: " + err.Error()
	if parser.IsDuplicateKeyError(err) {
		msg = "repeated mapping key rejected by the YAML decoder: " + err.Error()
	}
	line := 0
	var perr *oaserrors.ParseError
	if errors.As(err, &perr) {
		line = perr.Line
	}
	return newIssue(SeverityError, Endpoint{Index: issues.NoIndex}, "", line, msg)
}

// newIssue builds an Issue, deriving its rule and fixability from msg.
func newIssue(sev severity.Severity, ep Endpoint, field string, line int, msg string) Issue {
	rule := RuleFor(msg)
	return Issue{
		Severity: sev,
		Message:  msg,
		RuleID:   rule.ID,
		Endpoint: ep,
		Field:    field,
		Line:     line,
		Fixable:  rule.Fixable,
	}
}

// HasGate reports whether list contains an issue that blocks fixing.
func HasGate(list []Issue) bool {
	for _, i := range list {
		if IsGating(i.RuleID) {
			return true
		}
	}
	return false
}

// run holds the state of one analysis.
type run struct {
	doc    *parser.Document
	issues []Issue
}

func (r *run) add(sev severity.Severity, ep Endpoint, field string, line int, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.issues = append(r.issues, newIssue(sev, ep, field, line, msg))
}

// checkDuplicates reports repeated keys at the document root, under paths,
// and repeated methods under each path. It reports whether any were found.
func (r *run) checkDuplicates() bool {
	root := r.doc.Root()
	noEndpoint := Endpoint{Index: issues.NoIndex}
	for _, e := range root.Duplicates() {
		r.add(SeverityError, noEndpoint, "", e.KeyNode.Line,
			"document root declares %q more than once", e.Key)
	}
	if paths, ok := root.Map("paths"); ok {
		for _, e := range paths.Duplicates() {
			r.add(SeverityError, Endpoint{Path: e.Key, Index: issues.NoIndex}, "", e.KeyNode.Line,
				"paths declares %q more than once", e.Key)
		}
		for _, pe := range paths.Entries() {
			item, isMap := parser.AsMap(pe.Value)
			if !isMap {
				continue
			}
			for _, e := range item.Duplicates() {
				if !walker.IsHTTPMethod(e.Key) {
					continue
				}
				ep := Endpoint{Method: strings.ToUpper(e.Key), Path: pe.Key, Index: issues.NoIndex}
				r.add(SeverityError, ep, "", e.KeyNode.Line,
					"path %q declares the %s method more than once; data may already have been lost",
					pe.Key, strings.ToUpper(e.Key))
			}
		}
	}
	return len(r.issues) > 0
}
