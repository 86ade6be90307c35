package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/speclint/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "endpoint and field",
			issue: Issue{
				Severity: severity.SeverityWarning,
				Message:  "operation GET /users has no operationId",
				RuleID:   "missing-operation-id",
				Endpoint: Endpoint{Method: "GET", Path: "/users", Index: NoIndex},
			},
			want: "⚠ [missing-operation-id] GET /users: operation GET /users has no operationId",
		},
		{
			name: "bespoke index with line",
			issue: Issue{
				Severity: severity.SeverityError,
				Message:  "api is missing a name",
				RuleID:   "missing-api-name",
				Endpoint: Endpoint{Index: 2},
				Field:    "name",
				Line:     7,
			},
			want: "✗ [missing-api-name] apis[2] name (line 7): api is missing a name",
		},
		{
			name: "document level",
			issue: Issue{
				Severity: severity.SeverityInfo,
				Message:  "hint",
				Endpoint: Endpoint{Index: NoIndex},
			},
			want: "ℹ: hint",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestCountAndFilter(t *testing.T) {
	list := []Issue{
		{Severity: severity.SeverityError, RuleID: "a"},
		{Severity: severity.SeverityWarning, RuleID: "b"},
		{Severity: severity.SeverityWarning, RuleID: "c"},
		{Severity: severity.SeverityInfo, RuleID: "d"},
	}

	assert.Equal(t, Counts{Errors: 1, Warnings: 2, Infos: 1}, Count(list))

	filtered := Filter(list, severity.SeverityWarning, []string{"c"})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].RuleID)
	assert.Equal(t, "b", filtered[1].RuleID)
	assert.Len(t, list, 4)
}
