// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes speclint's analyze, fix and diff engines as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/speclint"
	"github.com/erraggy/speclint/parser"
)

const serverInstructions = `speclint MCP server: lints, fixes and diffs API specification documents (Swagger 2.0, OpenAPI 3.x, or the bespoke apis-list layout).

Workflow: call analyze to list issues, fix to repair them (all fixable issues, or only the indices you pass), then diff to compare the original against the fixed document.

Issue indices passed to fix.only must come from analyze of the exact same document text. Indices from another snapshot silently select other issues or none.

Configuration: all defaults are configurable via SPECLINT_MCP_* environment variables set in your MCP client config.
- SPECLINT_MCP_MAX_INPUT_SIZE (default: 10MiB): limit for file, url and inline inputs
- SPECLINT_MCP_LIMIT (default: 100): default page size for issue and fix lists
- SPECLINT_MCP_FETCH_RATE / SPECLINT_MCP_FETCH_BURST (default: 2/s, burst 4): URL fetch rate limit
- SPECLINT_MCP_CACHE_URL_TTL (default: 5m): how long fetched URLs are reused
- SPECLINT_MCP_ALLOW_PRIVATE_IPS (default: false): allow fetching from private or loopback addresses`

// Options configures Run.
type Options struct {
	// MaxInputSize overrides SPECLINT_MCP_MAX_INPUT_SIZE when positive.
	MaxInputSize int64
	// Logger receives server diagnostics. Defaults to a text logger on
	// stderr, since stdout carries the protocol.
	Logger *slog.Logger
}

// logger is the engine logger used by tool handlers.
var logger parser.Logger = parser.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.MaxInputSize > 0 {
		cfg.MaxInputSize = opts.MaxInputSize
	}
	l := opts.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	logger = parser.NewSlogAdapter(l)

	server := newServer(l)
	l.Info("mcp server starting", "version", speclint.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer(l *slog.Logger) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "speclint", Version: speclint.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
			Logger:       l,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Lint an API specification document (Swagger 2.0, OpenAPI 3.x, or the bespoke apis-list layout) against house rules: path hygiene, operationIds, descriptions, parameter types, inverted min/max ranges, not-null enforcement on required fields, and category-specific constraint suggestions (length, email, ranges, dates). Returns issues with severity, rule id, endpoint, field locator, line and a fixable flag, plus per-severity counts. Use min_severity and disabled_rules to narrow results; use offset/limit to paginate. Each issue carries its index, which fix.only accepts.",
	}, handleAnalyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix",
		Description: "Repair fixable issues in an API specification document. Without only, every fixable issue is repaired; with only, just the issues at those analyze indices (path hygiene is always repaired). Inverted ranges are swapped, never replaced. A document with repeated methods or keys is returned unchanged with refused=true. Returns the applied fixes, per-kind statistics, and the fixed document when include_document is true.",
	}, handleFix)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two snapshots of an API specification document, typically the original and its fixed form. Returns line-change counts and an endpoint-level impact summary: added endpoints, and modified endpoints with the properties they gained (new constraints, operationIds, descriptions, path rewrites). Paths are correlated by their normalized form, so a path cleaned by fix shows as one modified endpoint. Set include_unified for a unified text diff.",
	}, handleDiff)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.DefaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
