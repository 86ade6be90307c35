// Package analyzer checks API specification documents against a fixed set of
// house rules for validation and documentation.
//
// Both Swagger 2.0 / OpenAPI 3.x documents and the bespoke apis layout are
// analyzed natively; neither is converted into the other first.
//
// # Quick Start
//
//	for _, issue := range analyzer.Analyze(text) {
//	    fmt.Println(issue)
//	}
//
// With options:
//
//	result, err := analyzer.AnalyzeWithOptions(
//	    analyzer.WithFilePath("openapi.yaml"),
//	    analyzer.WithDisabledRules("missing-success-response"),
//	)
//
// # Rules
//
// Every issue carries a RuleID derived from its message through an ordered
// pattern table (see [Rules]). The main groups are:
//
//   - structural: duplicate-method, duplicate-key (these halt analysis and
//     block fixing)
//   - path hygiene: path-leading-slash, path-double-slash
//   - documentation: missing-operation-id, missing-param-description,
//     missing-body-description, missing-success-response
//   - constraints: missing-not-null, string-length, numeric-range,
//     array-size, email-format, phone-pattern, url-pattern, past-date,
//     future-date
//   - inverted bounds (always errors): inverted-length, inverted-range,
//     inverted-items
//   - consistency: class-annotation-mismatch
//
// Suggested bounds come from the internal heuristic table, which the fixer
// and differ share.
//
// # Determinism
//
// Analysis is a pure function of the text. Issues are reported in document
// order, and the consistency check runs after all paths are collected.
// An issue's Field locator is only meaningful against the exact text that
// produced it.
package analyzer
