// Package pathutil holds the path-string helpers shared by the engines.
//
// Endpoint paths are map keys, so every engine has to agree on what a
// "clean" path is and on how two spellings of one path correlate:
//
//	pathutil.Clean("api//users")          // "/api/users"
//	pathutil.Normalize("/TENANT//users")  // "/users"
//	pathutil.Join("/", "/users")          // "/users"
//
// [Locator] builds the field locators carried by issues, and
// [SanitizeOutputPath] vets files the CLI is asked to write.
package pathutil
