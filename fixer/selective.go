package fixer

import (
	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/walker"
)

// opKey identifies an OpenAPI operation by method and current path key.
type opKey struct {
	method, path string
}

// fieldKey identifies one field of an operation or of a bespoke API.
// OpenAPI fields leave index at NoIndex; bespoke fields leave method and
// path empty.
type fieldKey struct {
	method, path string
	index        int
	locator      string
}

// selection is the set of repairs chosen by issue index.
type selection struct {
	ops    map[opKey]bool
	fields map[fieldKey]map[string]bool
}

func (sel *selection) add(k fieldKey, rule string) {
	if sel.fields[k] == nil {
		sel.fields[k] = make(map[string]bool)
	}
	sel.fields[k][rule] = true
}

// fixSelected repairs only the chosen issues. Path hygiene runs first and
// unconditionally, so selections whose endpoint was renamed by it are
// resolved against the cleaned keys.
func (s *session) fixSelected(indices []int) {
	s.fixPaths()

	sel := s.resolveSelection(indices)
	if len(sel.ops) == 0 && len(sel.fields) == 0 {
		return
	}
	if len(sel.ops) > 0 {
		s.collectOperationIDs()
	}

	_ = walker.Walk(s.doc,
		walker.WithOperationHandler(func(op *walker.Operation) walker.Action {
			if sel.ops[opKey{op.Method, op.Path}] && s.addOperationID(op) {
				s.result.Stats.OperationsFixed++
			}
			return walker.Continue
		}),
		walker.WithFieldHandler(func(f *walker.Field) walker.Action {
			if rules := sel.fields[keyOf(f)]; rules != nil {
				s.applyRules(f, rules)
			}
			return walker.Continue
		}),
	)
}

// resolveSelection maps issue indices onto the document as it stands after
// path hygiene. Indices out of range and issues that are not fixable are
// ignored.
func (s *session) resolveSelection(indices []int) *selection {
	sel := &selection{ops: make(map[opKey]bool), fields: make(map[fieldKey]map[string]bool)}
	list := s.result.Issues
	for _, i := range indices {
		if i < 0 || i >= len(list) {
			s.log.Debug("fix: selection index out of range", "index", i, "issues", len(list))
			continue
		}
		issue := list[i]
		if !issue.Fixable {
			continue
		}

		if issue.Endpoint.Index != issues.NoIndex {
			if issue.Field != "" {
				sel.add(fieldKey{index: issue.Endpoint.Index, locator: issue.Field}, issue.RuleID)
			}
			continue
		}

		path := s.resolvePath(issue.Endpoint.Path)
		method := issue.Endpoint.Method
		switch {
		case issue.RuleID == analyzer.RuleMissingOperationID:
			sel.ops[opKey{method, path}] = true
		case issue.Field != "":
			sel.add(fieldKey{method: method, path: path, index: issues.NoIndex, locator: issue.Field}, issue.RuleID)
		}
	}
	return sel
}

// resolvePath returns the current key for a path named by an issue: the
// cleaned key when path hygiene renamed it, the exact key when present, and
// otherwise the first key that normalizes the same way.
func (s *session) resolvePath(path string) string {
	if renamed, ok := s.renamed[path]; ok {
		path = renamed
	}
	paths, ok := s.doc.Root().Map("paths")
	if !ok || paths.Has(path) {
		return path
	}
	want := pathutil.Normalize(path)
	for _, key := range paths.Keys() {
		if pathutil.Normalize(key) == want {
			return key
		}
	}
	return path
}

func keyOf(f *walker.Field) fieldKey {
	switch {
	case f.Op != nil:
		return fieldKey{method: f.Op.Method, path: f.Op.Path, index: issues.NoIndex, locator: f.Locator}
	case f.API != nil:
		return fieldKey{index: f.API.Index, locator: f.Locator}
	default:
		return fieldKey{index: issues.NoIndex, locator: f.Locator}
	}
}

// applyRules runs the repair for each selected rule on f, in the same order
// as a full fix.
func (s *session) applyRules(f *walker.Field, rules map[string]bool) {
	if rules[analyzer.RuleMissingParamType] {
		s.fixParamType(f)
	}
	for _, id := range suggestionRules {
		if rules[id] {
			s.addSuggested(f)
			break
		}
	}
	if rules[analyzer.RuleMissingNotNull] {
		s.addNotNull(f)
	}
	for i, id := range swapRules {
		if rules[id] {
			p := analyzer.BoundPairs[i]
			s.swapInverted(f, p.Min, p.Max)
		}
	}
}

// suggestionRules are repaired by adding the heuristic table's constraint.
var suggestionRules = []string{
	analyzer.RuleStringLength,
	analyzer.RuleEmailFormat,
	analyzer.RulePhonePattern,
	analyzer.RuleURLPattern,
	analyzer.RulePastDate,
	analyzer.RuleFutureDate,
	analyzer.RuleNumericRange,
	analyzer.RuleArraySize,
}

// swapRules lists the inversion rules in analyzer.BoundPairs order.
var swapRules = []string{
	analyzer.RuleInvertedLength,
	analyzer.RuleInvertedRange,
	analyzer.RuleInvertedItems,
}
