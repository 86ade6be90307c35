// Package oaserrors provides structured error types for speclint.
//
// Import path: github.com/erraggy/speclint/oaserrors
//
// The engines themselves never return these to callers of the plain entry
// points (analyze, fix and diff degrade to issues or unchanged output), but
// the option-based APIs, the CLI, and the MCP server surface them so that
// callers can branch with [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [ParseError]: YAML parsing failures
//   - [StructuralError]: repeated keys that make repair unsafe
//   - [ResourceLimitError]: oversized inputs
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrStructural]: Matches any [StructuralError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
package oaserrors
