package fixer

import (
	"strconv"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/naming"
	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

// session holds the state of one fix call on one parsed document.
type session struct {
	doc    *parser.Document
	result *FixResult
	log    parser.Logger

	// renamed maps original path keys to their cleaned form.
	renamed map[string]string
	// usedIDs holds every operationId in the document, for uniqueness.
	usedIDs map[string]bool
	// touched marks fields already counted in Stats.FieldsFixed.
	touched map[string]bool
}

func newSession(doc *parser.Document, result *FixResult, log parser.Logger) *session {
	return &session{
		doc:     doc,
		result:  result,
		log:     log,
		renamed: make(map[string]string),
		usedIDs: make(map[string]bool),
		touched: make(map[string]bool),
	}
}

func (s *session) record(fix AppliedFix) {
	s.result.Fixes = append(s.result.Fixes, fix)
}

// fieldTarget names a field for Fix.Target.
func fieldTarget(f *walker.Field) string {
	switch {
	case f.Op != nil:
		return f.Op.Method + " " + f.Op.Path + " " + f.Locator
	case f.API != nil:
		return f.API.Endpoint().String() + " " + f.Locator
	default:
		return f.Locator
	}
}

// countField bumps FieldsFixed once per field.
func (s *session) countField(f *walker.Field) {
	key := fieldTarget(f)
	if s.touched[key] {
		return
	}
	s.touched[key] = true
	s.result.Stats.FieldsFixed++
}

// fixAll applies every repair: path hygiene first, then operations and
// fields in document order, then shared schemas.
func (s *session) fixAll() {
	s.fixPaths()
	s.collectOperationIDs()

	_ = walker.Walk(s.doc,
		walker.WithSharedSchemas(true),
		walker.WithOperationHandler(func(op *walker.Operation) walker.Action {
			s.enrichOperation(op)
			return walker.Continue
		}),
		walker.WithFieldHandler(func(f *walker.Field) walker.Action {
			s.fixParamType(f)
			s.addSuggested(f)
			s.addNotNull(f)
			for _, p := range analyzer.BoundPairs {
				s.swapInverted(f, p.Min, p.Max)
			}
			return walker.Continue
		}),
	)
}

// collectOperationIDs records the ids already in use so synthesized ids
// never collide with them.
func (s *session) collectOperationIDs() {
	_ = walker.Walk(s.doc, walker.WithOperationHandler(func(op *walker.Operation) walker.Action {
		if id, ok := op.Node.Str("operationId"); ok {
			s.usedIDs[id] = true
		}
		return walker.SkipChildren
	}))
}

// enrichOperation synthesizes a missing operationId from the summary (or
// the method and path) and copies the summary into a missing description.
func (s *session) enrichOperation(op *walker.Operation) {
	changed := s.addOperationID(op)

	summary := op.Node.Text("summary")
	if summary != "" && !op.Node.Has("description") {
		op.Node.SetString("description", summary)
		s.record(AppliedFix{Type: FixTypeDescription, Target: op.Method + " " + op.Path,
			Description: "copied summary into description", After: summary})
		changed = true
	}

	if changed {
		s.result.Stats.OperationsFixed++
	}
}

// addOperationID gives op a unique operationId when it has none.
func (s *session) addOperationID(op *walker.Operation) bool {
	if op.Node.Has("operationId") {
		return false
	}
	base := naming.OperationIDFromSummary(op.Node.Text("summary"))
	if base == "" {
		base = naming.OperationIDFromRoute(op.Method, op.Path)
	}
	id := s.uniqueID(base)
	op.Node.SetString("operationId", id)
	s.record(AppliedFix{Type: FixTypeOperationID, Target: op.Method + " " + op.Path,
		Description: "synthesized operationId", After: id})
	return true
}

func (s *session) uniqueID(base string) string {
	if base == "" {
		base = "operation"
	}
	id := base
	for n := 2; s.usedIDs[id]; n++ {
		id = base + strconv.Itoa(n)
	}
	s.usedIDs[id] = true
	return id
}

// fixParamType gives an untyped parameter a string type: on the parameter
// for Swagger 2.0, through a schema for OpenAPI 3.x.
func (s *session) fixParamType(f *walker.Field) {
	if f.Kind != walker.KindParameter {
		return
	}
	if f.Node.Has("type") || f.Node.Has("schema") || f.Node.Has("content") {
		return
	}
	if s.doc.IsOAS2() || s.doc.Version == "" {
		f.Node.SetString("type", "string")
	} else {
		f.Node.Ensure("schema").SetString("type", "string")
	}
	s.countField(f)
	s.record(AppliedFix{Type: FixTypeParamType, Target: fieldTarget(f),
		Description: "set missing parameter type", After: "string"})
}

// pathTarget describes a renamed path for Fix.Target.
func pathTarget(old string) string {
	return "paths." + old
}

// cleanPathKeys renames every path key that needs hygiene repair, keeping
// each entry's position and value. A rename onto an existing key is skipped.
func (s *session) cleanPathKeys(paths parser.Map) {
	for _, e := range paths.Entries() {
		clean := pathutil.Clean(e.Key)
		if clean == e.Key {
			continue
		}
		if !paths.Rename(e.Key, clean) {
			s.log.Warn("fix: path rename skipped, target already exists", "from", e.Key, "to", clean)
			continue
		}
		s.renamed[e.Key] = clean
		s.result.Stats.PathsFixed++
		s.record(AppliedFix{Type: FixTypePath, Target: pathTarget(e.Key),
			Description: "cleaned path key", Before: e.Key, After: clean})
	}
}
