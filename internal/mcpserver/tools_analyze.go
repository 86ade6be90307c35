package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/severity"
)

type analyzeInput struct {
	Spec          specInput `json:"spec"                     jsonschema:"The API document to analyze"`
	MinSeverity   string    `json:"min_severity,omitempty"   jsonschema:"Drop issues below this severity: error, warn or info (default info)"`
	DisabledRules []string  `json:"disabled_rules,omitempty" jsonschema:"Rule IDs to drop from the result"`
	Offset        int       `json:"offset,omitempty"         jsonschema:"Skip the first N issues (for pagination)"`
	Limit         int       `json:"limit,omitempty"          jsonschema:"Maximum number of issues to return (default 100)"`
}

type issueItem struct {
	// Index is the issue's position in the unfiltered analysis, as accepted
	// by fix.only.
	Index    int    `json:"index"`
	Severity string `json:"severity"`
	RuleID   string `json:"rule_id"`
	Message  string `json:"message"`
	Method   string `json:"method,omitempty"`
	Path     string `json:"path,omitempty"`
	APIIndex *int   `json:"api_index,omitempty"`
	Field    string `json:"field,omitempty"`
	Line     int    `json:"line,omitempty"`
	Fixable  bool   `json:"fixable"`
}

type analyzeOutput struct {
	Shape        string      `json:"shape"`
	Version      string      `json:"version,omitempty"`
	Total        int         `json:"total"`
	Returned     int         `json:"returned"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	InfoCount    int         `json:"info_count"`
	FixableCount int         `json:"fixable_count"`
	Halted       bool        `json:"halted,omitempty"`
	Issues       []issueItem `json:"issues,omitempty"`
}

func handleAnalyze(ctx context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	min := severity.SeverityInfo
	if input.MinSeverity != "" {
		parsed, err := severity.Parse(input.MinSeverity)
		if err != nil {
			return errResult(err), analyzeOutput{}, nil
		}
		min = parsed
	}
	for _, id := range input.DisabledRules {
		if _, ok := analyzer.LookupRule(id); !ok {
			return errResult(fmt.Errorf("unknown rule ID %q", id)), analyzeOutput{}, nil
		}
	}

	text, _, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	// Analyze unfiltered so that every reported index is valid for fix.only.
	a := analyzer.New()
	a.Logger = logger
	result := a.Analyze(text)

	output := analyzeOutput{
		Shape:   result.Shape.String(),
		Version: result.Version,
		Halted:  result.Halted,
	}

	disabled := make(map[string]bool, len(input.DisabledRules))
	for _, id := range input.DisabledRules {
		disabled[id] = true
	}

	items := makeSlice[issueItem](len(result.Issues))
	for i, issue := range result.Issues {
		if !issue.Severity.AtLeast(min) || disabled[issue.RuleID] {
			continue
		}
		items = append(items, toIssueItem(i, issue))
		switch issue.Severity {
		case severity.SeverityError:
			output.ErrorCount++
		case severity.SeverityWarning:
			output.WarningCount++
		default:
			output.InfoCount++
		}
		if issue.Fixable {
			output.FixableCount++
		}
	}

	output.Total = len(items)
	output.Issues = paginate(items, input.Offset, input.Limit)
	output.Returned = len(output.Issues)
	return nil, output, nil
}

func toIssueItem(index int, issue analyzer.Issue) issueItem {
	item := issueItem{
		Index:    index,
		Severity: issue.Severity.String(),
		RuleID:   issue.RuleID,
		Message:  issue.Message,
		Method:   issue.Endpoint.Method,
		Path:     issue.Endpoint.Path,
		Field:    issue.Field,
		Line:     issue.Line,
		Fixable:  issue.Fixable,
	}
	if issue.Endpoint.Index >= 0 {
		apiIndex := issue.Endpoint.Index
		item.APIIndex = &apiIndex
	}
	return item
}
