package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/internal/testutil"
	"github.com/erraggy/speclint/oaserrors"
)

func TestFixCommand_Stdout(t *testing.T) {
	path := testutil.WriteTemp(t, "dirty.yaml", testutil.DirtySwagger)

	stdout, stderr, err := execute(t, "", "fix", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "/api/users:")
	assert.NotContains(t, stdout, "/api//users")
	assert.Contains(t, stdout, "operationId:")
	assert.Contains(t, stderr, "1 paths, 1 operations")
}

func TestFixCommand_Quiet(t *testing.T) {
	stdout, stderr, err := execute(t, testutil.Bespoke, "fix", "-q", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "path: /users/new")
	assert.Empty(t, stderr)
}

func TestFixCommand_Only(t *testing.T) {
	path := testutil.WriteTemp(t, "dirty.yaml", testutil.DirtySwagger)

	// Index 99 selects nothing; path hygiene still runs.
	stdout, _, err := execute(t, "", "fix", "--only", "99", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "/api/users:")
	assert.NotContains(t, stdout, "operationId:")
	assert.NotContains(t, stdout, "format: email")
}

func TestFixCommand_Output(t *testing.T) {
	path := testutil.WriteTemp(t, "dirty.yaml", testutil.DirtySwagger)
	out := filepath.Join(filepath.Dir(path), "fixed.yaml")

	stdout, stderr, err := execute(t, "", "fix", "-o", out, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote "+out)
	assert.Contains(t, testutil.ReadFile(t, out), "/api/users:")
}

func TestFixCommand_OutputOverInput(t *testing.T) {
	path := testutil.WriteTemp(t, "dirty.yaml", testutil.DirtySwagger)

	_, _, err := execute(t, "", "fix", "-o", path, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would overwrite input file")
	assert.Equal(t, testutil.DirtySwagger, testutil.ReadFile(t, path))
}

func TestFixCommand_Diff(t *testing.T) {
	path := testutil.WriteTemp(t, "dirty.yaml", testutil.DirtySwagger)

	stdout, _, err := execute(t, "", "fix", "--diff", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- "+path)
	assert.Contains(t, stdout, "+++ "+path+" (fixed)")
	assert.Contains(t, stdout, "-  /api//users:")
	assert.Contains(t, stdout, "+  /api/users:")
}

func TestFixCommand_Refused(t *testing.T) {
	path := testutil.WriteTemp(t, "repeated.yaml", testutil.RepeatedMethod)

	stdout, stderr, err := execute(t, "", "fix", path)
	require.NoError(t, err)
	assert.Equal(t, testutil.RepeatedMethod, stdout)
	assert.Contains(t, stderr, "document left unchanged")

	_, _, err = execute(t, "", "fix", "--strict", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}
