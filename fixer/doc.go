// Package fixer applies automatic repairs for the issues reported by the
// analyzer package.
//
// The fixer re-runs the analyzer on the text it is given, so every repair is
// based on fresh, index-aligned issues. It works on the YAML node tree of the
// document, which keeps key order and comments. JSON input is written back
// as YAML.
//
// # Quick Start
//
//	fixed := fixer.Fix(text)
//
// With options:
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("fixed %d fields, %d paths\n", result.Stats.FieldsFixed, result.Stats.PathsFixed)
//
// # Supported Fixes
//
//   - Path hygiene: repeated "/" are collapsed and a missing leading "/" is
//     added, in path keys, basePath, server URLs and bespoke API paths. Path
//     keys are renamed in place, so their operations keep their position.
//   - Operation enrichment (full fix only): a missing operationId is
//     synthesized from the summary, or from the method and path when there is
//     no summary. A missing description is copied from the summary.
//   - Parameter type: an untyped parameter becomes a string.
//   - Suggested constraints: the bound the analyzer suggested is added, but
//     only when the field has no constraint of that family. Existing bounds
//     are never overwritten.
//   - Not-null: a required field gets a lower bound or a notNull marker.
//   - Inverted bounds: min and max are swapped.
//
// # Refusal
//
// A document with repeated keys is never fixed: the decoder has already
// merged or dropped data, and writing it back would make that permanent.
// The input is returned unchanged. With Fixer.Strict the call also returns
// an error wrapping oaserrors.ErrStructural.
//
// # Selective Fixes
//
// FixSelective repairs only the issues at the given indices. Path hygiene
// always runs first, and selections against a renamed path are resolved
// against the cleaned key. The indices must come from analyzing the same
// text; stale indices are not detected.
//
// # Idempotence
//
// A fix that changes nothing returns the input text byte for byte, and
// fixing an already fixed document changes nothing.
package fixer
