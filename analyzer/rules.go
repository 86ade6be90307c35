package analyzer

import "regexp"

// Rule identifiers. Each one is derived from an issue's message by
// [RuleFor], so tools can filter and document issues by a stable name.
const (
	RuleParseError              = "parse-error"
	RuleUnknownShape            = "unknown-shape"
	RuleDuplicateMethod         = "duplicate-method"
	RuleDuplicateKey            = "duplicate-key"
	RuleMissingPaths            = "missing-paths"
	RulePathLeadingSlash        = "path-leading-slash"
	RulePathDoubleSlash         = "path-double-slash"
	RuleMissingOperationID      = "missing-operation-id"
	RuleMissingParamDescription = "missing-param-description"
	RuleMissingBodyDescription  = "missing-body-description"
	RuleMissingParamType        = "missing-param-type"
	RuleInvertedLength          = "inverted-length"
	RuleInvertedRange           = "inverted-range"
	RuleInvertedItems           = "inverted-items"
	RuleMissingNotNull          = "missing-not-null"
	RuleEmailFormat             = "email-format"
	RulePhonePattern            = "phone-pattern"
	RuleURLPattern              = "url-pattern"
	RulePastDate                = "past-date"
	RuleFutureDate              = "future-date"
	RuleStringLength            = "string-length"
	RuleNumericRange            = "numeric-range"
	RuleArraySize               = "array-size"
	RuleMissingSuccessResponse  = "missing-success-response"
	RuleClassAnnotationMismatch = "class-annotation-mismatch"
	RuleMissingAPIName          = "missing-api-name"
	RuleMissingAPIPath          = "missing-api-path"
	RuleMissingAPIMethod        = "missing-api-method"
	RuleInvalidMethod           = "invalid-method"
	RuleAnnotationsNotList      = "annotations-not-list"
	RuleAnnotationNotString     = "annotation-not-string"
	RuleMissingFieldName        = "missing-field-name"
	RuleMissingFieldType        = "missing-field-type"

	// RuleGeneral is reported for messages no pattern recognizes.
	RuleGeneral = "general"
)

// Rule describes one entry of the message lookup table.
type Rule struct {
	ID string
	// Fixable is true when the fixer can repair the issue without a human.
	Fixable bool
	// Description is a one-line summary for help output.
	Description string

	pattern *regexp.Regexp
}

// rules is ordered: the first pattern matching a message wins, so more
// specific patterns come before general ones.
var rules = []Rule{
	{ID: RuleParseError, Description: "the document could not be parsed",
		pattern: regexp.MustCompile(`^failed to parse document`)},
	{ID: RuleUnknownShape, Description: "the document is neither OpenAPI nor a bespoke API document",
		pattern: regexp.MustCompile(`^document is neither`)},
	{ID: RuleDuplicateMethod, Description: "a path declares the same HTTP method twice",
		pattern: regexp.MustCompile(`declares the \S+ method more than once`)},
	{ID: RuleDuplicateKey, Description: "a mapping repeats a key",
		pattern: regexp.MustCompile(`(declares .* more than once|repeated mapping key)`)},
	{ID: RuleMissingPaths, Description: "an OpenAPI document has no paths",
		pattern: regexp.MustCompile(`^document has no paths`)},
	{ID: RulePathLeadingSlash, Fixable: true, Description: "a path does not start with a slash",
		pattern: regexp.MustCompile(`does not start with "/"`)},
	{ID: RulePathDoubleSlash, Fixable: true, Description: "a path contains a repeated slash",
		pattern: regexp.MustCompile(`contains a repeated "/"`)},
	{ID: RuleMissingOperationID, Fixable: true, Description: "an operation has no operationId",
		pattern: regexp.MustCompile(`has no operationId`)},
	{ID: RuleMissingParamDescription, Description: "a required parameter has no description",
		pattern: regexp.MustCompile(`^required parameter .* has no description`)},
	{ID: RuleMissingBodyDescription, Description: "a required request body has no description",
		pattern: regexp.MustCompile(`^required request body has no description`)},
	{ID: RuleMissingParamType, Fixable: true, Description: "a parameter declares neither type nor schema",
		pattern: regexp.MustCompile(`^parameter .* declares no type`)},
	{ID: RuleInvertedLength, Fixable: true, Description: "minLength is greater than maxLength",
		pattern: regexp.MustCompile(`minLength \(.*\) greater than maxLength`)},
	{ID: RuleInvertedRange, Fixable: true, Description: "minimum is greater than maximum",
		pattern: regexp.MustCompile(`minimum \(.*\) greater than maximum`)},
	{ID: RuleInvertedItems, Fixable: true, Description: "minItems is greater than maxItems",
		pattern: regexp.MustCompile(`minItems \(.*\) greater than maxItems`)},
	{ID: RuleMissingNotNull, Fixable: true, Description: "a required field has no not-null enforcement",
		pattern: regexp.MustCompile(`has no not-null enforcement`)},
	{ID: RuleEmailFormat, Fixable: true, Description: "an email-like string has no email check",
		pattern: regexp.MustCompile(`looks like an email address`)},
	{ID: RulePhonePattern, Fixable: true, Description: "a phone-like string has no pattern",
		pattern: regexp.MustCompile(`looks like a phone number`)},
	{ID: RuleURLPattern, Fixable: true, Description: "a URL-like string has no pattern",
		pattern: regexp.MustCompile(`looks like a URL`)},
	{ID: RulePastDate, Fixable: true, Description: "a birth-like date has no past constraint",
		pattern: regexp.MustCompile(`should be a past date`)},
	{ID: RuleFutureDate, Fixable: true, Description: "a schedule-like date has no future constraint",
		pattern: regexp.MustCompile(`should be a future date`)},
	{ID: RuleStringLength, Fixable: true, Description: "a string has no length or pattern constraint",
		pattern: regexp.MustCompile(`^string field .* has no length or pattern constraint`)},
	{ID: RuleNumericRange, Fixable: true, Description: "a number has no range constraint",
		pattern: regexp.MustCompile(`^numeric field .* has no range constraint`)},
	{ID: RuleArraySize, Fixable: true, Description: "an array has no item count constraint",
		pattern: regexp.MustCompile(`^array field .* has no item count constraint`)},
	{ID: RuleMissingSuccessResponse, Description: "an operation declares no 2xx response",
		pattern: regexp.MustCompile(`declares no success response`)},
	{ID: RuleClassAnnotationMismatch, Description: "operation and path class annotations disagree",
		pattern: regexp.MustCompile(`class annotations`)},
	{ID: RuleMissingAPIName, Description: "a bespoke API has no name",
		pattern: regexp.MustCompile(`^API has no name`)},
	{ID: RuleMissingAPIPath, Description: "a bespoke API has no path",
		pattern: regexp.MustCompile(`^API .* has no path`)},
	{ID: RuleMissingAPIMethod, Description: "a bespoke API has no method",
		pattern: regexp.MustCompile(`^API .* has no method`)},
	{ID: RuleInvalidMethod, Description: "a bespoke API uses an unknown HTTP method",
		pattern: regexp.MustCompile(`unsupported HTTP method`)},
	{ID: RuleAnnotationsNotList, Description: "bespoke annotations are not a list",
		pattern: regexp.MustCompile(`^annotations of API .* must be a list`)},
	{ID: RuleAnnotationNotString, Description: "a bespoke annotation is not a string",
		pattern: regexp.MustCompile(`^annotation \d+ of API .* is not a string`)},
	{ID: RuleMissingFieldName, Description: "a bespoke field has no name",
		pattern: regexp.MustCompile(`^field has no name`)},
	{ID: RuleMissingFieldType, Description: "a bespoke field has no type",
		pattern: regexp.MustCompile(`^field .* has no type`)},
}

var rulesByID = func() map[string]Rule {
	m := make(map[string]Rule, len(rules))
	for _, r := range rules {
		m[r.ID] = r
	}
	return m
}()

// RuleFor returns the rule a message belongs to. Unrecognized messages map
// to [RuleGeneral], which is never fixable.
func RuleFor(message string) Rule {
	for _, r := range rules {
		if r.pattern.MatchString(message) {
			return r
		}
	}
	return Rule{ID: RuleGeneral, Description: "uncategorized issue"}
}

// LookupRule returns the rule registered under id.
func LookupRule(id string) (Rule, bool) {
	r, ok := rulesByID[id]
	return r, ok
}

// Rules returns every rule in lookup order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// IsGating reports whether a rule blocks fixing: once a repeated key has
// been decoded, data may already be lost, so nothing is rewritten.
func IsGating(ruleID string) bool {
	return ruleID == RuleDuplicateMethod || ruleID == RuleDuplicateKey
}
