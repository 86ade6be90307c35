package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/speclint/differ"
)

type diffInput struct {
	Before         specInput `json:"before"                    jsonschema:"The original API document"`
	After          specInput `json:"after"                     jsonschema:"The changed API document, e.g. the output of fix"`
	IncludeUnified bool      `json:"include_unified,omitempty" jsonschema:"Include a unified text diff"`
	Context        int       `json:"context,omitempty"         jsonschema:"Context lines around each unified hunk (default 3)"`
}

type propertyChange struct {
	Subject     string `json:"subject,omitempty"`
	Property    string `json:"property"`
	Before      string `json:"before,omitempty"`
	After       string `json:"after"`
	Description string `json:"description"`
}

type endpointChange struct {
	Type    string           `json:"type"`
	Method  string           `json:"method"`
	Path    string           `json:"path"`
	Name    string           `json:"name,omitempty"`
	Changes []propertyChange `json:"changes,omitempty"`
}

type schemaChange struct {
	Schema  string           `json:"schema"`
	Field   string           `json:"field"`
	Changes []propertyChange `json:"changes,omitempty"`
}

type diffOutput struct {
	LinesAdded     int              `json:"lines_added"`
	LinesRemoved   int              `json:"lines_removed"`
	LinesUnchanged int              `json:"lines_unchanged"`
	AddedCount     int              `json:"added_endpoints"`
	ModifiedCount  int              `json:"modified_endpoints"`
	Endpoints      []endpointChange `json:"endpoints,omitempty"`
	Schemas        []schemaChange   `json:"schemas,omitempty"`
	Unified        string           `json:"unified,omitempty"`
	Summary        string           `json:"summary"`
}

func handleDiff(ctx context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	if input.Context < 0 {
		return errResult(fmt.Errorf("context must not be negative")), diffOutput{}, nil
	}
	before, _, err := input.Before.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("before: %w", err)), diffOutput{}, nil
	}
	after, _, err := input.After.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("after: %w", err)), diffOutput{}, nil
	}

	d := differ.New()
	d.Logger = logger
	if input.Context > 0 {
		d.Context = input.Context
	}
	result, err := d.Diff(before, after)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		LinesAdded:     result.LineStats.Added,
		LinesRemoved:   result.LineStats.Removed,
		LinesUnchanged: result.LineStats.Equal,
		Endpoints:      makeSlice[endpointChange](len(result.Impact.Endpoints)),
		Schemas:        makeSlice[schemaChange](len(result.Impact.Schemas)),
	}
	output.AddedCount, output.ModifiedCount = result.Impact.Count()

	for _, rec := range result.Impact.Endpoints {
		output.Endpoints = append(output.Endpoints, endpointChange{
			Type:    string(rec.Type),
			Method:  rec.Method,
			Path:    rec.Path,
			Name:    rec.Name,
			Changes: toPropertyChanges(rec.Changes),
		})
	}
	for _, sc := range result.Impact.Schemas {
		output.Schemas = append(output.Schemas, schemaChange{
			Schema:  sc.Schema,
			Field:   sc.Field,
			Changes: toPropertyChanges(sc.Changes),
		})
	}
	if input.IncludeUnified {
		output.Unified = result.Unified
	}

	switch {
	case !result.HasChanges():
		output.Summary = "documents are identical"
	case result.Impact.IsEmpty():
		output.Summary = fmt.Sprintf("%d lines added, %d removed; no endpoint gained properties",
			output.LinesAdded, output.LinesRemoved)
	default:
		output.Summary = fmt.Sprintf("%d lines added, %d removed; %d endpoints added, %d modified, %d schema fields enriched",
			output.LinesAdded, output.LinesRemoved, output.AddedCount, output.ModifiedCount, len(output.Schemas))
	}

	return nil, output, nil
}

func toPropertyChanges(changes []differ.PropertyChange) []propertyChange {
	out := makeSlice[propertyChange](len(changes))
	for _, c := range changes {
		out = append(out, propertyChange{
			Subject:     c.Subject,
			Property:    c.Property,
			Before:      c.Before,
			After:       c.After,
			Description: c.Describe(),
		})
	}
	return out
}
