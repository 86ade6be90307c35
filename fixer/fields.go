package fixer

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/heuristic"
	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

// addSuggested adds the heuristic table's constraint to f, but only when f
// has no constraint of that family yet. Existing bounds are never
// overwritten.
func (s *session) addSuggested(f *walker.Field) bool {
	sug, ok := analyzer.Suggest(f)
	if !ok || analyzer.HasFamily(f, sug) {
		return false
	}

	var added []string
	set := func(kw walker.Keyword, n *yaml.Node) {
		f.Set(kw, n)
		added = append(added, string(kw))
	}

	switch sug.Family {
	case heuristic.FamilyLength:
		set(walker.MinLength, parser.NumberNode(sug.Min))
		set(walker.MaxLength, parser.NumberNode(sug.Max))
	case heuristic.FamilyFormat:
		// A field that already declares another format keeps it and gets
		// the pattern instead.
		if f.Kind != walker.KindBespoke && f.Has(walker.Format) {
			set(walker.Pattern, parser.StringNode(sug.Pattern))
		} else {
			set(walker.Email, parser.BoolNode(true))
		}
	case heuristic.FamilyPattern:
		set(walker.Pattern, parser.StringNode(sug.Pattern))
	case heuristic.FamilyRange:
		if sug.Min != "" {
			set(walker.Minimum, parser.NumberNode(sug.Min))
		}
		if sug.Max != "" {
			set(walker.Maximum, parser.NumberNode(sug.Max))
		}
	case heuristic.FamilyItems:
		set(walker.MinItems, parser.NumberNode(sug.Min))
		set(walker.MaxItems, parser.NumberNode(sug.Max))
	case heuristic.FamilyTemporal:
		kw := walker.Past
		if sug.Temporal == heuristic.Future {
			kw = walker.Future
		}
		set(kw, parser.BoolNode(true))
	}
	if len(added) == 0 {
		return false
	}

	s.countField(f)
	s.record(AppliedFix{Type: FixTypeConstraint, Target: fieldTarget(f),
		Description: fmt.Sprintf("added %s constraint for %s field %q", sug.Family, sug.Category, f.Name),
		After:       sug.Text()})
	return true
}

// addNotNull makes a required field reject missing values. The marker is
// picked by type: a lower bound where one is natural, otherwise an explicit
// notNull flag.
func (s *session) addNotNull(f *walker.Field) bool {
	if !f.Required || analyzer.HasNotNull(f) {
		return false
	}

	kw, value := walker.NotNull, parser.BoolNode(true)
	if f.Kind != walker.KindBespoke {
		t := f.Type()
		switch {
		case t.Family == walker.TypeObject:
			// References and properties-only schemas are objects too.
		case t.Family == walker.TypeString || !t.Declared:
			kw, value = walker.MinLength, parser.NumberNode("1")
		case t.Family.IsNumeric():
			if max, ok := f.Number(walker.Maximum); !ok || max >= 1 {
				kw, value = walker.Minimum, parser.NumberNode("1")
			}
		case t.Family == walker.TypeArray:
			kw, value = walker.MinItems, parser.NumberNode("1")
		}
	}
	f.Set(kw, value)

	s.countField(f)
	s.record(AppliedFix{Type: FixTypeNotNull, Target: fieldTarget(f),
		Description: fmt.Sprintf("enforced not-null on required field %q", f.Name),
		After:       fmt.Sprintf("%s: %s", kw, value.Value)})
	return true
}

// swapInverted exchanges an inverted min/max pair so the set of bounds is
// unchanged but min <= max holds.
func (s *session) swapInverted(f *walker.Field, min, max walker.Keyword) bool {
	lo, hi, bad := analyzer.Inverted(f, min, max)
	if !bad {
		return false
	}
	parser.SwapScalars(f.Lookup(min), f.Lookup(max))

	s.countField(f)
	s.record(AppliedFix{Type: FixTypeSwap, Target: fieldTarget(f),
		Description: fmt.Sprintf("swapped inverted %s/%s on field %q", min, max, f.Name),
		Before:      fmt.Sprintf("%s: %s, %s: %s", min, lo, max, hi),
		After:       fmt.Sprintf("%s: %s, %s: %s", min, hi, max, lo)})
	return true
}
