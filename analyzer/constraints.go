package analyzer

import (
	"github.com/erraggy/speclint/internal/heuristic"
	"github.com/erraggy/speclint/walker"
)

// BoundPair is a min/max keyword pair that must never be inverted.
type BoundPair struct {
	Min, Max walker.Keyword
}

// BoundPairs lists the pairs checked for inversion, in report order.
var BoundPairs = []BoundPair{
	{walker.MinLength, walker.MaxLength},
	{walker.Minimum, walker.Maximum},
	{walker.MinItems, walker.MaxItems},
}

// Inverted reports whether f declares min greater than max, returning the
// two bound texts as written.
func Inverted(f *walker.Field, min, max walker.Keyword) (lo, hi string, inverted bool) {
	minNode, maxNode := f.Lookup(min), f.Lookup(max)
	if minNode == nil || maxNode == nil {
		return "", "", false
	}
	a, okA := f.Number(min)
	b, okB := f.Number(max)
	if !okA || !okB || a <= b {
		return "", "", false
	}
	return minNode.Value, maxNode.Value, true
}

// HasNotNull reports whether a required field carries anything that
// rejects a missing value: a lower bound or an explicit not-null marker.
func HasNotNull(f *walker.Field) bool {
	return f.Has(walker.MinLength) || f.Has(walker.Minimum) || f.Has(walker.MinItems) || f.Has(walker.NotNull)
}

// HasFamily reports whether f already carries a constraint of the family
// suggested by s. The fixer uses the same test, so it never adds a second
// constraint to a field the analyzer considers covered.
func HasFamily(f *walker.Field, s heuristic.Suggestion) bool {
	switch s.Family {
	case heuristic.FamilyLength:
		return f.Has(walker.MinLength) || f.Has(walker.MaxLength) || f.Has(walker.Pattern)
	case heuristic.FamilyFormat:
		return f.Has(walker.Email) || f.Has(walker.Pattern)
	case heuristic.FamilyPattern:
		return f.Has(walker.Pattern)
	case heuristic.FamilyRange:
		return f.Has(walker.Minimum) || f.Has(walker.Maximum)
	case heuristic.FamilyItems:
		return f.Has(walker.MinItems) || f.Has(walker.MaxItems)
	case heuristic.FamilyTemporal:
		return f.Has(walker.Past) || f.Has(walker.Future)
	default:
		return true
	}
}

// Suggest returns the constraint the heuristic table recommends for f, based
// on its declared type. Enumerations and booleans get none.
func Suggest(f *walker.Field) (heuristic.Suggestion, bool) {
	if f.Node.Has("enum") {
		return heuristic.Suggestion{}, false
	}
	t := f.Type()
	switch {
	case t.Family == walker.TypeString:
		return heuristic.String(f.Name, t.Format)
	case t.Family.IsNumeric():
		return heuristic.Number(f.Name, f.In, t.Hint())
	case t.Family == walker.TypeArray:
		return heuristic.Array(f.Name), true
	default:
		return heuristic.Suggestion{}, false
	}
}

// checkConstraints applies the inversion, not-null and type-specific rules
// to one field of either document shape.
func (r *run) checkConstraints(f *walker.Field) {
	ep := f.Endpoint()

	for _, p := range BoundPairs {
		if lo, hi, bad := Inverted(f, p.Min, p.Max); bad {
			r.add(SeverityError, ep, f.Locator, f.Line,
				"field %q has %s (%s) greater than %s (%s)", f.Name, p.Min, lo, p.Max, hi)
		}
	}

	if f.Required && !HasNotNull(f) {
		r.add(SeverityWarning, ep, f.Locator, f.Line,
			"required field %q has no not-null enforcement", f.Name)
	}

	s, ok := Suggest(f)
	if !ok || HasFamily(f, s) {
		return
	}
	switch s.Category {
	case heuristic.CategoryEmail:
		r.add(s.Severity, ep, f.Locator, f.Line,
			"field %q looks like an email address; consider an email format check (%s)", f.Name, s.Text())
	case heuristic.CategoryPhone:
		r.add(s.Severity, ep, f.Locator, f.Line,
			"field %q looks like a phone number; consider a pattern (%s)", f.Name, s.Pattern)
	case heuristic.CategoryURL:
		r.add(s.Severity, ep, f.Locator, f.Line,
			"field %q looks like a URL; consider a pattern (%s)", f.Name, s.Pattern)
	case heuristic.CategoryBirth:
		r.add(s.Severity, ep, f.Locator, f.Line,
			"field %q should be a past date; consider a past constraint", f.Name)
	case heuristic.CategorySchedule:
		r.add(s.Severity, ep, f.Locator, f.Line,
			"field %q should be a future date; consider a future constraint", f.Name)
	default:
		switch s.Family {
		case heuristic.FamilyLength:
			r.add(s.Severity, ep, f.Locator, f.Line,
				"string field %q has no length or pattern constraint (suggested %s)", f.Name, s.Text())
		case heuristic.FamilyRange:
			r.add(s.Severity, ep, f.Locator, f.Line,
				"numeric field %q has no range constraint (suggested %s)", f.Name, s.Text())
		case heuristic.FamilyItems:
			r.add(s.Severity, ep, f.Locator, f.Line,
				"array field %q has no item count constraint (suggested %s)", f.Name, s.Text())
		}
	}
}
