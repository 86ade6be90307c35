package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "speclint-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// unmarshalStructured extracts the structured output of a tool call as a map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}

func ruleIDsOf(t *testing.T, out map[string]any) []string {
	t.Helper()
	raw, _ := out["issues"].([]any)
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		require.True(t, ok)
		ids = append(ids, m["rule_id"].(string))
	}
	return ids
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	assert.ElementsMatch(t, []string{"analyze", "fix", "diff"}, names)
}

func TestIntegration_Analyze(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "analyze", map[string]any{
		"spec": map[string]any{"content": testutil.DirtySwagger},
	})
	assert.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, "openapi", out["shape"])
	assert.Equal(t, "2.0", out["version"])
	assert.Equal(t, float64(1), out["error_count"])

	ids := ruleIDsOf(t, out)
	assert.Contains(t, ids, analyzer.RulePathDoubleSlash)
	assert.Contains(t, ids, analyzer.RuleMissingOperationID)
	assert.Contains(t, ids, analyzer.RuleEmailFormat)
	assert.Equal(t, float64(len(ids)), out["total"])
}

func TestIntegration_AnalyzeFilters(t *testing.T) {
	session := startTestSession(t)

	out := unmarshalStructured(t, callTool(t, session, "analyze", map[string]any{
		"spec":           map[string]any{"content": testutil.DirtySwagger},
		"min_severity":   "warn",
		"disabled_rules": []string{analyzer.RuleMissingOperationID},
	}))
	ids := ruleIDsOf(t, out)
	assert.Contains(t, ids, analyzer.RulePathDoubleSlash)
	assert.NotContains(t, ids, analyzer.RuleMissingOperationID)
	assert.NotContains(t, ids, analyzer.RuleEmailFormat)
	assert.Equal(t, float64(0), out["info_count"])

	// Indices refer to the unfiltered analysis.
	issues := out["issues"].([]any)
	first := issues[0].(map[string]any)
	assert.Equal(t, float64(0), first["index"])
}

func TestIntegration_AnalyzeRejectsBadInput(t *testing.T) {
	session := startTestSession(t)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"unknown rule", map[string]any{
			"spec":           map[string]any{"content": testutil.CleanSwagger},
			"disabled_rules": []string{"no-such-rule"},
		}},
		{"bad severity", map[string]any{
			"spec":         map[string]any{"content": testutil.CleanSwagger},
			"min_severity": "fatal",
		}},
		{"no input", map[string]any{"spec": map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, callTool(t, session, "analyze", tt.args).IsError)
		})
	}
}

func TestIntegration_Fix(t *testing.T) {
	session := startTestSession(t)

	out := unmarshalStructured(t, callTool(t, session, "fix", map[string]any{
		"spec":             map[string]any{"content": testutil.DirtySwagger},
		"include_document": true,
	}))
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, float64(1), out["paths_fixed"])
	assert.Equal(t, float64(1), out["operations_fixed"])

	doc := out["document"].(string)
	assert.Contains(t, doc, "/api/users:")
	assert.NotContains(t, doc, "/api//users")
	assert.Contains(t, doc, "operationId:")
	assert.Contains(t, doc, "format: email")
}

func TestIntegration_FixOnly(t *testing.T) {
	session := startTestSession(t)

	// Selecting nothing still cleans paths but leaves every other issue.
	out := unmarshalStructured(t, callTool(t, session, "fix", map[string]any{
		"spec":             map[string]any{"content": testutil.DirtySwagger},
		"only":             []int{},
		"include_document": true,
	}))
	doc := out["document"].(string)
	assert.Contains(t, doc, "/api/users:")
	assert.NotContains(t, doc, "operationId:")
	assert.NotContains(t, doc, "format: email")
}

func TestIntegration_FixRefused(t *testing.T) {
	session := startTestSession(t)

	out := unmarshalStructured(t, callTool(t, session, "fix", map[string]any{
		"spec":             map[string]any{"content": testutil.RepeatedMethod},
		"include_document": true,
	}))
	assert.Equal(t, true, out["refused"])
	assert.Equal(t, false, out["changed"])
	assert.Equal(t, testutil.RepeatedMethod, out["document"])
}

func TestIntegration_FixWritesOutput(t *testing.T) {
	session := startTestSession(t)
	path := filepath.Join(t.TempDir(), "fixed.yaml")

	out := unmarshalStructured(t, callTool(t, session, "fix", map[string]any{
		"spec":   map[string]any{"content": testutil.Bespoke},
		"output": path,
	}))
	assert.Equal(t, path, out["written_to"])
	assert.Nil(t, out["document"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: /users/new")
}

func TestIntegration_Diff(t *testing.T) {
	session := startTestSession(t)

	fixed := unmarshalStructured(t, callTool(t, session, "fix", map[string]any{
		"spec":             map[string]any{"content": testutil.DirtySwagger},
		"include_document": true,
	}))["document"].(string)

	out := unmarshalStructured(t, callTool(t, session, "diff", map[string]any{
		"before":          map[string]any{"content": testutil.DirtySwagger},
		"after":           map[string]any{"content": fixed},
		"include_unified": true,
	}))
	assert.Equal(t, float64(0), out["added_endpoints"])
	assert.Equal(t, float64(1), out["modified_endpoints"])
	assert.Greater(t, out["lines_added"].(float64), float64(0))
	assert.Contains(t, out["unified"], "+++ after")

	endpoints := out["endpoints"].([]any)
	require.Len(t, endpoints, 1)
	ep := endpoints[0].(map[string]any)
	assert.Equal(t, "modified", ep["type"])
	assert.Equal(t, "GET", ep["method"])
	assert.Equal(t, "/api/users", ep["path"])

	changes := ep["changes"].([]any)
	first := changes[0].(map[string]any)
	assert.Equal(t, "path", first["property"])
	assert.Equal(t, "/api//users", first["before"])
	assert.Equal(t, "/api/users", first["after"])
}

func TestIntegration_DiffIdentical(t *testing.T) {
	session := startTestSession(t)

	out := unmarshalStructured(t, callTool(t, session, "diff", map[string]any{
		"before": map[string]any{"content": testutil.CleanSwagger},
		"after":  map[string]any{"content": testutil.CleanSwagger},
	}))
	assert.Equal(t, "documents are identical", out["summary"])
	assert.Nil(t, out["endpoints"])
}

func TestIntegration_DiffMissingSide(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "diff", map[string]any{
		"before": map[string]any{"content": testutil.CleanSwagger},
		"after":  map[string]any{},
	})
	assert.True(t, result.IsError)
}
