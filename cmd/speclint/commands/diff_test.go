package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/differ"
	"github.com/erraggy/speclint/fixer"
	"github.com/erraggy/speclint/internal/testutil"
)

// fixedPair writes DirtySwagger and its fixed form to temporary files.
func fixedPair(t *testing.T) (before, after string) {
	t.Helper()
	res, err := fixer.New().Fix(testutil.DirtySwagger)
	require.NoError(t, err)
	require.True(t, res.Changed)
	return testutil.WriteTemp(t, "before.yaml", testutil.DirtySwagger),
		testutil.WriteTemp(t, "after.yaml", res.Content)
}

func TestDiffCommand_Impact(t *testing.T) {
	before, after := fixedPair(t)

	stdout, _, err := execute(t, "", "diff", before, after)
	require.NoError(t, err)
	assert.Contains(t, stdout, "modified GET /api/users (")
	assert.Contains(t, stdout, "0 added, 1 modified endpoints")
}

func TestDiffCommand_Identical(t *testing.T) {
	path := testutil.WriteTemp(t, "clean.yaml", testutil.CleanSwagger)

	stdout, _, err := execute(t, "", "diff", path, path)
	require.NoError(t, err)
	assert.Equal(t, "No endpoint changes\n", stdout)

	stdout, _, err = execute(t, "", "diff", "--mode", "unified", path, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestDiffCommand_Lines(t *testing.T) {
	before, after := fixedPair(t)

	stdout, _, err := execute(t, "", "diff", "--mode", "lines", before, after)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	assert.Contains(t, lines, "  info:")
	assert.Contains(t, lines, "-   /api//users:")
	assert.Contains(t, lines, "+   /api/users:")
}

func TestDiffCommand_UnifiedStdin(t *testing.T) {
	before, after := fixedPair(t)

	stdout, _, err := execute(t, testutil.ReadFile(t, after), "diff", "--mode", "unified", before, "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- "+before)
	assert.Contains(t, stdout, "+++ <stdin>")
}

func TestDiffCommand_JSON(t *testing.T) {
	before, after := fixedPair(t)

	stdout, _, err := execute(t, "", "-f", "json", "diff", before, after)
	require.NoError(t, err)

	var res differ.DiffResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	require.NotNil(t, res.Impact)
	require.Len(t, res.Impact.Endpoints, 1)
	assert.Equal(t, differ.ChangeTypeModified, res.Impact.Endpoints[0].Type)
	assert.Positive(t, res.LineStats.Added)
}

func TestDiffCommand_Errors(t *testing.T) {
	path := testutil.WriteTemp(t, "clean.yaml", testutil.CleanSwagger)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad mode", []string{"diff", "--mode", "words", path, path}, "invalid mode"},
		{"both stdin", []string{"diff", "-", "-"}, "only one side"},
		{"missing file", []string{"diff", path, "/nonexistent/after.yaml"}, "after.yaml"},
		{"one arg", []string{"diff", path}, "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
