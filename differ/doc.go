// Package differ compares two snapshots of an API specification document.
//
// Two views are produced:
//
//   - a line diff: an LCS alignment of the two texts, one LineChange per
//     line with zero-based line numbers on the side(s) it exists on, plus a
//     unified rendering for terminals;
//   - an impact summary: one ChangeRecord per added or modified endpoint,
//     and one SchemaChange per modified shared-schema field.
//
// # Quick Start
//
//	lines := differ.DiffText(before, after)
//	impact := differ.DiffStructure(before, after)
//	for _, rec := range impact.Endpoints {
//	    fmt.Println(rec)
//	    for _, c := range rec.Changes {
//	        fmt.Println("  ", c.Describe())
//	    }
//	}
//
// # Correlation
//
// Endpoints are identified by their path, which fixing may rewrite. Paths
// are therefore matched by a normalized form: repeated "/" collapsed, a
// leading upper-case placeholder segment such as "/TENANT/" dropped, and a
// leading "/" ensured. A path found under a different key is reported as
// modified, with a leading "path" change. Bespoke APIs are matched by method
// and normalized path.
//
// Parameters are matched by name, body and schema properties by their
// locator, and bespoke fields by their chain of names.
//
// # Enrichment only
//
// The impact summary reports properties the after side gained: a property
// is listed only when the before side lacked it. Changed or removed values
// are not reported, so re-serialized but otherwise equal documents produce
// an empty impact.
package differ
