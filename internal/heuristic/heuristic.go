// Package heuristic maps field names to the constraint a field of that name
// should carry.
//
// The analyzer uses it to decide what to flag, the fixer uses it to decide
// what to add, and the differ uses it to label changes, so the three can
// never disagree about what a "pageSize" or "email" field should look like.
package heuristic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/speclint/internal/naming"
	"github.com/erraggy/speclint/internal/severity"
)

// Validation patterns added by the fixer.
const (
	EmailPattern = `^[\w.+-]+@([\w-]+\.)+[\w-]{2,}$`
	PhonePattern = `^\+?[1-9]\d{6,14}$`
	URLPattern   = `^https?://[\w-]+(\.[\w-]+)+[/#?]?.*$`
)

// Bound texts used by the table.
const (
	MaxInt32      = "2147483647"
	MaxInt64      = "9223372036854775807"
	MaxDecimal    = "9999999999"
	DefaultMinLen = "1"
	DefaultMaxLen = "255"
	DefaultMinCnt = "1"
	DefaultMaxCnt = "100"
)

// Family is the kind of constraint a suggestion adds.
type Family int

const (
	// FamilyLength is a minLength/maxLength pair.
	FamilyLength Family = iota
	// FamilyPattern is a regular-expression pattern.
	FamilyPattern
	// FamilyFormat is a format keyword such as email.
	FamilyFormat
	// FamilyRange is a minimum/maximum pair.
	FamilyRange
	// FamilyItems is a minItems/maxItems pair.
	FamilyItems
	// FamilyTemporal is a past/future marker.
	FamilyTemporal
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyLength:
		return "length"
	case FamilyPattern:
		return "pattern"
	case FamilyFormat:
		return "format"
	case FamilyRange:
		return "range"
	case FamilyItems:
		return "items"
	case FamilyTemporal:
		return "temporal"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Category names the semantic class a field name was matched to.
type Category string

// Categories recognized by the table.
const (
	CategoryText       Category = "text"
	CategoryEmail      Category = "email"
	CategoryPhone      Category = "phone"
	CategoryURL        Category = "url"
	CategoryBirth      Category = "birth"
	CategorySchedule   Category = "schedule"
	CategoryPage       Category = "page"
	CategoryPageSize   Category = "page-size"
	CategoryAge        Category = "age"
	CategoryScore      Category = "score"
	CategoryMoney      Category = "money"
	CategoryPathID     Category = "path-id"
	CategoryIdentifier Category = "identifier"
	CategoryNumber     Category = "number"
	CategoryList       Category = "list"
)

// Temporal is the direction of a date constraint.
type Temporal string

// Temporal directions.
const (
	Past   Temporal = "past"
	Future Temporal = "future"
)

// Suggestion is the constraint the table recommends for one field.
type Suggestion struct {
	Category Category
	Family   Family
	Severity severity.Severity

	// Min and Max hold bound texts for length, range and items families.
	// Either may be empty when the table suggests a one-sided bound.
	Min, Max string
	Pattern  string
	Format   string
	Temporal Temporal
}

// Text renders the suggestion for messages, e.g. "min: 1, max: 100".
func (s Suggestion) Text() string {
	switch s.Family {
	case FamilyLength, FamilyRange, FamilyItems:
		var parts []string
		if s.Min != "" {
			parts = append(parts, "min: "+s.Min)
		}
		if s.Max != "" {
			parts = append(parts, "max: "+s.Max)
		}
		return strings.Join(parts, ", ")
	case FamilyPattern:
		return "pattern: " + s.Pattern
	case FamilyFormat:
		return "format: " + s.Format
	case FamilyTemporal:
		return string(s.Temporal)
	default:
		return ""
	}
}

// names bundles the forms a field name is matched in.
type names struct {
	lower string
	words []string
}

func newNames(name string) names {
	return names{lower: strings.ToLower(name), words: naming.SplitWords(name)}
}

func (n names) contains(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(n.lower, s) {
			return true
		}
	}
	return false
}

func (n names) hasWord(words ...string) bool {
	for _, w := range words {
		if slices.Contains(n.words, w) {
			return true
		}
	}
	return false
}

// IsEmail reports whether name looks like an e-mail address field.
func IsEmail(name string) bool { return newNames(name).contains("email", "mail") }

// IsPhone reports whether name looks like a phone number field.
func IsPhone(name string) bool {
	n := newNames(name)
	return n.contains("phone", "mobile") || n.hasWord("tel")
}

// IsURL reports whether name looks like a URL field.
func IsURL(name string) bool {
	n := newNames(name)
	return n.hasWord("url", "uri", "link", "website", "homepage")
}

// IsIdentifier reports whether name looks like a record identifier.
func IsIdentifier(name string) bool {
	n := newNames(name)
	if len(n.words) == 0 {
		return false
	}
	last := n.words[len(n.words)-1]
	return last == "id" || last == "uuid"
}

// TemporalFor returns the date direction a field name implies.
func TemporalFor(name string) (Temporal, bool) {
	n := newNames(name)
	switch {
	case n.contains("birth") || n.hasWord("dob"):
		return Past, true
	case n.contains("appoint", "schedule", "starttime", "endtime"):
		return Future, true
	default:
		return "", false
	}
}

// IsDateFormat reports whether format is a date or date-time format.
func IsDateFormat(format string) bool {
	switch strings.ToLower(format) {
	case "date", "date-time", "datetime":
		return true
	default:
		return false
	}
}

// unconstrainedFormats already pin a string's shape, so no length is asked
// for.
var unconstrainedFormats = []string{"date", "date-time", "datetime", "uuid", "byte", "binary", "email", "uri", "url"}

// String returns the suggestion for a string field. Formatted date fields
// only get a suggestion when their name implies a direction; other formats
// that already fix the value's shape get none.
func String(name, format string) (Suggestion, bool) {
	if IsDateFormat(format) {
		dir, ok := TemporalFor(name)
		if !ok {
			return Suggestion{}, false
		}
		cat := CategoryBirth
		if dir == Future {
			cat = CategorySchedule
		}
		return Suggestion{Category: cat, Family: FamilyTemporal, Severity: severity.SeverityInfo, Temporal: dir}, true
	}

	switch {
	case IsEmail(name):
		return Suggestion{
			Category: CategoryEmail,
			Family:   FamilyFormat,
			Severity: severity.SeverityInfo,
			Format:   "email",
			Pattern:  EmailPattern,
		}, true
	case IsPhone(name):
		return Suggestion{
			Category: CategoryPhone,
			Family:   FamilyPattern,
			Severity: severity.SeverityInfo,
			Pattern:  PhonePattern,
		}, true
	case slices.Contains(unconstrainedFormats, strings.ToLower(format)):
		return Suggestion{}, false
	case IsURL(name):
		return Suggestion{
			Category: CategoryURL,
			Family:   FamilyPattern,
			Severity: severity.SeverityWarning,
			Pattern:  URLPattern,
		}, true
	default:
		return Suggestion{
			Category: CategoryText,
			Family:   FamilyLength,
			Severity: severity.SeverityWarning,
			Min:      DefaultMinLen,
			Max:      DefaultMaxLen,
		}, true
	}
}

// Number returns the range suggestion for a numeric field. in is the
// parameter location ("path", "query", ... or "" for body fields) and hint is
// the declared format or bespoke type name, used to size the generic upper
// bound. Identifier fields outside the path get no suggestion.
func Number(name, in, hint string) (Suggestion, bool) {
	n := newNames(name)
	s := Suggestion{Family: FamilyRange, Severity: severity.SeverityWarning}

	switch {
	case slices.Contains([]string{"page", "pagenum", "pageno", "pagenumber", "pageindex"}, n.lower):
		s.Category, s.Min, s.Max = CategoryPage, "1", MaxInt32
	case n.contains("size", "limit"):
		s.Category, s.Min, s.Max = CategoryPageSize, "1", "100"
	case n.hasWord("age"):
		s.Category, s.Min, s.Max = CategoryAge, "0", "150"
	case n.hasWord("score", "rate", "rating", "percent", "percentage"):
		s.Category, s.Min, s.Max = CategoryScore, "0", "100"
	case n.hasWord("price", "amount", "total", "balance", "fee", "cost"):
		s.Category, s.Min = CategoryMoney, "0"
	case in == "path":
		s.Category, s.Min = CategoryPathID, "1"
	case IsIdentifier(name) || n.lower == "id":
		return Suggestion{Category: CategoryIdentifier}, false
	default:
		s.Category, s.Min, s.Max = CategoryNumber, "0", genericMax(hint)
	}
	return s, true
}

func genericMax(hint string) string {
	switch strings.ToLower(hint) {
	case "long", "int64":
		return MaxInt64
	case "double", "float", "bigdecimal", "decimal":
		return MaxDecimal
	default:
		return MaxInt32
	}
}

// Array returns the item-count suggestion for a list field.
func Array(string) Suggestion {
	return Suggestion{
		Category: CategoryList,
		Family:   FamilyItems,
		Severity: severity.SeverityWarning,
		Min:      DefaultMinCnt,
		Max:      DefaultMaxCnt,
	}
}
