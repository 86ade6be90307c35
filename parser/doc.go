// Package parser loads specification documents into an ordered YAML node
// tree and writes them back.
//
// Both supported layouts are handled: Swagger 2.0 / OpenAPI 3.x documents
// keyed by paths, and the bespoke layout with a top-level apis list. The
// tree keeps mapping keys in source order and keeps repeated keys, which is
// how a duplicated HTTP method under one path stays observable.
//
// # Ordered maps
//
// [Map] is an association-list view over a mapping node. Path keys double
// as endpoint identity, so renaming one is done in place with [Map.Rename]:
// the key text changes while the value subtree and its position do not.
//
//	doc, err := parser.Parse(text)
//	if err != nil {
//	    return err
//	}
//	paths, _ := doc.Root().Map("paths")
//	paths.Rename("//users", "/users")
//	out, err := doc.Serialize()
//
// # Logging
//
// Packages built on parser accept a [Logger]. [NopLogger] is the default;
// [NewZapLogger] and [NewSlogAdapter] wrap zap and log/slog.
package parser
