package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/oaserrors"
)

const swaggerDoc = `swagger: "2.0"
info:
  title: Users
  version: "1.0"
basePath: /api
paths:
  /users:
    get:
      summary: list users
  //orders:
    post:
      summary: create order
`

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		shape   Shape
		version string
		oas2    bool
	}{
		{"swagger", swaggerDoc, ShapeOpenAPI, "2.0", true},
		{"openapi", "openapi: 3.0.3\npaths: {}\n", ShapeOpenAPI, "3.0.3", false},
		{"paths only", "paths:\n  /a: {}\n", ShapeOpenAPI, "", false},
		{"bespoke", "apis:\n  - name: list\n    path: /users\n    method: GET\n", ShapeBespoke, "", false},
		{"unknown", "title: nothing\n", ShapeUnknown, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, doc.Shape)
			assert.Equal(t, tt.version, doc.Version)
			assert.Equal(t, tt.oas2, doc.IsOAS2())
			assert.Equal(t, tt.shape, DetectShape(tt.text))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank", "  \n\t\n"},
		{"syntax", "paths: [\n"},
		{"scalar root", "just some text\n"},
		{"sequence root", "- a\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
			assert.False(t, IsDuplicateKeyError(err))
		})
	}
	assert.Equal(t, ShapeUnknown, DetectShape("paths: [\n"))
}

func TestParseKeepsDuplicateKeys(t *testing.T) {
	text := `paths:
  /users:
    get:
      summary: first
    get:
      summary: second
`
	doc, err := Parse(text)
	require.NoError(t, err)

	paths, ok := doc.Root().Map("paths")
	require.True(t, ok)
	item, ok := paths.Map("/users")
	require.True(t, ok)

	assert.Equal(t, 2, item.Len())
	dups := item.Duplicates()
	require.Len(t, dups, 1)
	assert.Equal(t, "get", dups[0].Key)
	assert.Equal(t, 5, dups[0].KeyNode.Line)
}

func TestSerializeRoundTrip(t *testing.T) {
	doc, err := Parse(swaggerDoc)
	require.NoError(t, err)

	out, err := doc.Serialize()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	paths, _ := again.Root().Map("paths")
	assert.Equal(t, []string{"/users", "//orders"}, paths.Keys())
	assert.Equal(t, []string{"swagger", "info", "basePath", "paths"}, again.Root().Keys())

	// Serializing an unchanged tree twice gives identical text.
	out2, err := again.Serialize()
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestRenameKeepsPositionAndSubtree(t *testing.T) {
	doc, err := Parse(swaggerDoc)
	require.NoError(t, err)
	paths, _ := doc.Root().Map("paths")

	before := Encode(paths.Get("//orders"))
	require.True(t, paths.Rename("//orders", "/orders"))
	assert.Equal(t, []string{"/users", "/orders"}, paths.Keys())
	assert.Equal(t, before, Encode(paths.Get("/orders")))

	// Collisions and unknown keys are refused.
	assert.False(t, paths.Rename("/orders", "/users"))
	assert.False(t, paths.Rename("/missing", "/x"))
	assert.True(t, paths.Rename("/users", "/users"))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, "/orders:")
	assert.NotContains(t, out, "//orders")
}

func TestParseWithOptions(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		doc, err := ParseWithOptions(WithBytes([]byte(swaggerDoc)))
		require.NoError(t, err)
		assert.Equal(t, ShapeOpenAPI, doc.Shape)
	})

	t.Run("reader", func(t *testing.T) {
		doc, err := ParseWithOptions(WithReader(strings.NewReader(swaggerDoc)), WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, "2.0", doc.Version)
	})

	t.Run("no source", func(t *testing.T) {
		_, err := ParseWithOptions()
		assert.Error(t, err)
	})

	t.Run("two sources", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("a: 1")), WithReader(strings.NewReader("a: 1")))
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte(swaggerDoc)), WithMaxFileSize(10))
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte(swaggerDoc)), WithMaxFileSize(-1))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseWithOptions(WithFilePath(t.TempDir() + "/nope.yaml"))
		assert.Error(t, err)
	})
}

func TestSerializeKeepsIndent(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		indent int
	}{
		{"two spaces", "paths:\n  /users:\n    get:\n      operationId: a\n", 2},
		{"four spaces", "# comment\npaths:\n    /users:\n        get:\n            operationId: a\n", 4},
		{"flat", "apis: []\n", DefaultIndent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.indent, doc.Indent)

			out, err := doc.Serialize()
			require.NoError(t, err)
			again, err := Parse(out)
			require.NoError(t, err)
			assert.Equal(t, tt.indent, again.Indent)
		})
	}
}

func TestSerializeUnchangedIsIdentical(t *testing.T) {
	text := `swagger: "2.0"
paths:
  /users:
    get:
      parameters:
        - name: email
          in: query
          type: string
`
	doc, err := Parse(text)
	require.NoError(t, err)
	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, text, out)
}
