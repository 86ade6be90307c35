// Package naming provides the case conversion used when speclint has to
// invent names: synthesized operation ids, and the word splitting the
// field-name heuristics match against.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
