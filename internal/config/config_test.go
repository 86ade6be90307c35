package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/internal/severity"
	"github.com/erraggy/speclint/internal/testutil"
	"github.com/erraggy/speclint/oaserrors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NotNil(t, cfg.Analyze.DisabledRules)

	min, err := cfg.Severity()
	require.NoError(t, err)
	assert.Equal(t, severity.SeverityInfo, min)
}

func TestLoad_File(t *testing.T) {
	path := testutil.WriteTemp(t, "custom.yaml", `output:
  format: json
  color: never
analyze:
  min_severity: warn
  disabled_rules:
    - missing-description
watch:
  debounce: 1s
mcp:
  max_input_size: 2048
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, []string{"missing-description"}, cfg.Analyze.DisabledRules)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, int64(2048), cfg.MCP.MaxInputSize)

	min, err := cfg.Severity()
	require.NoError(t, err)
	assert.Equal(t, severity.SeverityWarning, min)
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("output:\n  format: json\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SPECLINT_OUTPUT_FORMAT", "json")
	t.Setenv("SPECLINT_ANALYZE_MIN_SEVERITY", "error")
	t.Setenv("SPECLINT_WATCH_DEBOUNCE", "50ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "error", cfg.Analyze.MinSeverity)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoad_EnvDisabledRules(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SPECLINT_ANALYZE_DISABLED_RULES", "missing-description,path-double-slash")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"missing-description", "path-double-slash"}, cfg.Analyze.DisabledRules)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		option string
	}{
		{"format", "output:\n  format: xml\n", "output.format"},
		{"color", "output:\n  color: rainbow\n", "output.color"},
		{"severity", "analyze:\n  min_severity: fatal\n", "analyze.min_severity"},
		{"debounce", "watch:\n  debounce: -1s\n", "watch.debounce"},
		{"max input", "mcp:\n  max_input_size: 0\n", "mcp.max_input_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteTemp(t, "bad.yaml", tt.body)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))

			var cerr *oaserrors.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.option, cerr.Option)
		})
	}
}
