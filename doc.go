// Package speclint lints, repairs and compares API specification documents.
//
// Three document shapes are understood: Swagger 2.0, OpenAPI 3.x, and a
// bespoke format that lists endpoints under a top-level apis array. The
// shape is detected from the document itself.
//
// # Overview
//
// The library consists of three engine packages, each usable on its own:
//
//   - analyzer: report rule violations as severity-ranked issues
//   - fixer: repair every fixable issue, or a chosen subset of them
//   - differ: compare two snapshots by line and by endpoint impact
//
// They share the parser package, which decodes YAML or JSON into an
// order-preserving tree and serializes it back, and the walker package,
// which visits operations and fields in document order.
//
// # Quick Start
//
// Analyze a document:
//
//	import "github.com/erraggy/speclint/analyzer"
//
//	res, err := analyzer.AnalyzeWithOptions(analyzer.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range res.Issues {
//		fmt.Println(issue.Severity, issue.RuleID, issue.Location(), issue.Message)
//	}
//
// Fix it and see what changed:
//
//	import (
//		"github.com/erraggy/speclint/differ"
//		"github.com/erraggy/speclint/fixer"
//	)
//
//	fixed, err := fixer.FixWithOptions(fixer.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	impact := differ.DiffStructure(original, fixed.Content)
//	for _, ep := range impact.Endpoints {
//		fmt.Println(ep)
//	}
//
// Fixing only the issues a user picked uses their indices in the analysis:
//
//	fixed, err := fixer.FixWithOptions(
//		fixer.WithFilePath("openapi.yaml"),
//		fixer.WithSelection(0, 3),
//	)
//
// Indices refer to an analysis of the same text. Analyze again after the
// document changes.
//
// # Failure Behavior
//
// The plain entry points never fail. A document that does not parse yields
// a single parse-error issue from the analyzer, and the fixer returns it
// unchanged. The option-based entry points return errors from the
// oaserrors package for bad options and unreadable files.
//
// # Command-Line Tool
//
// The speclint command wraps the engines:
//
//	speclint analyze openapi.yaml
//	speclint fix openapi.yaml -o openapi.fixed.yaml
//	speclint diff openapi.yaml openapi.fixed.yaml
//	speclint watch openapi.yaml
//	speclint mcp
//
// Settings can be kept in a .speclint.yaml file in the working directory or
// given through SPECLINT_ environment variables.
package speclint
