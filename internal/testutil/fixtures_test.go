package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/parser"
)

func TestFixturesParse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		shape parser.Shape
	}{
		{"clean swagger", CleanSwagger, parser.ShapeOpenAPI},
		{"dirty swagger", DirtySwagger, parser.ShapeOpenAPI},
		{"inverted openapi", InvertedOpenAPI, parser.ShapeOpenAPI},
		{"bespoke", Bespoke, parser.ShapeBespoke},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, doc.Shape)
		})
	}
}

func TestWriteTemp(t *testing.T) {
	path := WriteTemp(t, "spec.yaml", CleanSwagger)

	assert.Equal(t, "spec.yaml", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CleanSwagger, string(data))
	assert.Equal(t, CleanSwagger, ReadFile(t, path))
}
