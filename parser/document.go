package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/speclint/oaserrors"
)

// Shape identifies which of the supported root layouts a document uses.
type Shape int

const (
	// ShapeUnknown is a mapping root that matches neither layout.
	ShapeUnknown Shape = iota
	// ShapeOpenAPI is a Swagger 2.0 or OpenAPI 3.x document keyed by paths.
	ShapeOpenAPI
	// ShapeBespoke is the in-house layout with a top-level apis list.
	ShapeBespoke
)

// String returns the string representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeOpenAPI:
		return "openapi"
	case ShapeBespoke:
		return "bespoke"
	default:
		return "unknown"
	}
}

// Document is a parsed specification held as an ordered YAML node tree.
//
// Mapping keys keep their source order and repeated keys are kept as-is, so
// callers can detect them. Mutations through [Map] are visible to
// [Document.Serialize].
type Document struct {
	root *yaml.Node

	// Shape is the detected root layout.
	Shape Shape
	// Version is the swagger/openapi version string, empty for bespoke documents.
	Version string
	// SourcePath is the file the document was read from, if any.
	SourcePath string
	// Indent is the indentation width detected in the source, reused by
	// Serialize so that unchanged lines stay byte-identical.
	Indent int
}

// DefaultIndent is used when the source has no indented line.
const DefaultIndent = 2

var lineInError = regexp.MustCompile(`line (\d+)`)

// Parse decodes text into a Document.
//
// Failures are returned as *oaserrors.ParseError. An empty document, or one
// whose root is not a mapping, is a parse failure too.
func Parse(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &oaserrors.ParseError{Message: "document is empty"}
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		perr := &oaserrors.ParseError{Cause: err}
		if m := lineInError.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &oaserrors.ParseError{Message: "document is empty"}
	}
	top := resolve(root.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Line:    top.Line,
			Message: "document root must be a mapping",
		}
	}

	doc := &Document{root: &root, Indent: detectIndent(text)}
	doc.detect()
	return doc, nil
}

// IsDuplicateKeyError reports whether err is the YAML library refusing a
// repeated mapping key. Node decoding normally keeps duplicates, so this is
// a fallback for decoders that reject them early.
func IsDuplicateKeyError(err error) bool {
	var perr *oaserrors.ParseError
	if !errors.As(err, &perr) || perr.Cause == nil {
		return false
	}
	return strings.Contains(perr.Cause.Error(), "already defined")
}

func (d *Document) detect() {
	root := d.Root()
	switch {
	case root.Has("swagger"):
		d.Shape = ShapeOpenAPI
		d.Version, _ = root.Str("swagger")
	case root.Has("openapi"):
		d.Shape = ShapeOpenAPI
		d.Version, _ = root.Str("openapi")
	case root.Has("paths"):
		d.Shape = ShapeOpenAPI
	case root.Has("apis"):
		d.Shape = ShapeBespoke
	default:
		d.Shape = ShapeUnknown
	}
}

// Root returns the top-level mapping.
func (d *Document) Root() Map {
	return Map{node: resolve(d.root.Content[0])}
}

// IsOAS2 reports whether the document declares swagger 2.0.
func (d *Document) IsOAS2() bool {
	return d.Shape == ShapeOpenAPI && strings.HasPrefix(d.Version, "2")
}

// Serialize renders the document back to YAML text.
func (d *Document) Serialize() (string, error) {
	indent := d.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(indent)
	if err := enc.Encode(d.root); err != nil {
		return "", fmt.Errorf("parser: serialize: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("parser: serialize: %w", err)
	}
	return b.String(), nil
}

// detectIndent returns the leading-space width of the first indented line
// that is not blank or a comment.
func detectIndent(text string) int {
	for line := range strings.Lines(text) {
		trimmed := strings.TrimLeft(line, " ")
		if strings.TrimSpace(trimmed) == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if n := len(line) - len(trimmed); n > 0 {
			return min(n, 8)
		}
	}
	return DefaultIndent
}

// DetectShape reports the layout of text without keeping the parsed tree.
// Text that does not parse is ShapeUnknown.
func DetectShape(text string) Shape {
	doc, err := Parse(text)
	if err != nil {
		return ShapeUnknown
	}
	return doc.Shape
}
