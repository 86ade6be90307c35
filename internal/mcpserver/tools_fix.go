package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/speclint/fixer"
	"github.com/erraggy/speclint/internal/fileutil"
	"github.com/erraggy/speclint/internal/pathutil"
)

type fixInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The API document to fix"`
	Only            []int     `json:"only,omitempty"             jsonschema:"Fix only the issues at these analyze indices. Omit to fix every fixable issue."`
	IncludeDocument bool      `json:"include_document,omitempty" jsonschema:"Include the full fixed document in output"`
	Output          string    `json:"output,omitempty"           jsonschema:"File path to write the fixed document to"`
	Offset          int       `json:"offset,omitempty"           jsonschema:"Skip the first N fixes (for pagination)"`
	Limit           int       `json:"limit,omitempty"            jsonschema:"Maximum number of fixes to return (default 100)"`
}

type fixApplied struct {
	Type        string `json:"type"`
	Target      string `json:"target"`
	Description string `json:"description"`
	Before      string `json:"before,omitempty"`
	After       string `json:"after,omitempty"`
}

type fixOutput struct {
	Changed         bool         `json:"changed"`
	Refused         bool         `json:"refused,omitempty"`
	FixCount        int          `json:"fix_count"`
	Returned        int          `json:"returned"`
	FieldsFixed     int          `json:"fields_fixed"`
	PathsFixed      int          `json:"paths_fixed"`
	OperationsFixed int          `json:"operations_fixed"`
	Fixes           []fixApplied `json:"fixes,omitempty"`
	WrittenTo       string       `json:"written_to,omitempty"`
	Document        string       `json:"document,omitempty"`
}

func handleFix(ctx context.Context, _ *mcp.CallToolRequest, input fixInput) (*mcp.CallToolResult, fixOutput, error) {
	text, _, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), fixOutput{}, nil
	}

	f := fixer.New()
	f.Logger = logger
	var result *fixer.FixResult
	if input.Only != nil {
		result, err = f.FixSelective(text, input.Only)
	} else {
		result, err = f.Fix(text)
	}
	if err != nil {
		return errResult(err), fixOutput{}, nil
	}

	output := fixOutput{
		Changed:         result.Changed,
		Refused:         result.Refused,
		FixCount:        len(result.Fixes),
		FieldsFixed:     result.Stats.FieldsFixed,
		PathsFixed:      result.Stats.PathsFixed,
		OperationsFixed: result.Stats.OperationsFixed,
	}

	fixes := makeSlice[fixApplied](len(result.Fixes))
	for _, fx := range result.Fixes {
		fixes = append(fixes, fixApplied{
			Type:        string(fx.Type),
			Target:      fx.Target,
			Description: fx.Description,
			Before:      fx.Before,
			After:       fx.After,
		})
	}
	output.Fixes = paginate(fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	if input.Output != "" {
		path, err := pathutil.SanitizeOutputPath(input.Output)
		if err != nil {
			return errResult(err), fixOutput{}, nil
		}
		if err := os.WriteFile(path, []byte(result.Content), fileutil.OwnerReadWrite); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), fixOutput{}, nil
		}
		output.WrittenTo = path
	}
	if input.IncludeDocument {
		output.Document = result.Content
	}

	return nil, output, nil
}
