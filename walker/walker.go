package walker

import (
	"fmt"

	"github.com/erraggy/speclint/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// PathHandler is called for each entry of the paths mapping. fullPath is the
// path key joined to the document's base path or server prefix.
type PathHandler func(path, fullPath string, item parser.Map, keyLine int) Action

// OperationHandler is called for each HTTP method under a path.
type OperationHandler func(op *Operation) Action

// FieldHandler is called for each parameter, request-body property, shared
// schema property and bespoke field. Returning SkipChildren skips the
// nested properties of an object field.
type FieldHandler func(f *Field) Action

// APIHandler is called for each entry of a bespoke apis list.
type APIHandler func(api *API) Action

// Walker traverses a parsed document and calls handlers for each endpoint
// and field. A Walker is single-use.
type Walker struct {
	onPath      PathHandler
	onOperation OperationHandler
	onField     FieldHandler
	onAPI       APIHandler

	sharedSchemas bool
	maxDepth      int

	doc     *parser.Document
	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{maxDepth: 32}
}

// Option configures the Walker.
type Option func(*Walker)

// WithPathHandler sets the handler for path entries.
func WithPathHandler(fn PathHandler) Option {
	return func(w *Walker) { w.onPath = fn }
}

// WithOperationHandler sets the handler for operations.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithFieldHandler sets the handler for fields of every kind.
func WithFieldHandler(fn FieldHandler) Option {
	return func(w *Walker) { w.onField = fn }
}

// WithAPIHandler sets the handler for bespoke apis entries.
func WithAPIHandler(fn APIHandler) Option {
	return func(w *Walker) { w.onAPI = fn }
}

// WithSharedSchemas enables walking the properties of definitions
// (Swagger 2.0) or components.schemas (OpenAPI 3.x) as KindSchemaProperty
// fields, after all paths.
func WithSharedSchemas(enabled bool) Option {
	return func(w *Walker) { w.sharedSchemas = enabled }
}

// WithMaxSchemaDepth bounds how deep nested properties are followed.
// Non-positive values keep the default.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses doc, calling the configured handlers in document order.
func Walk(doc *parser.Document, opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w.Walk(doc)
}

// Walk traverses doc with this walker's handlers.
func (w *Walker) Walk(doc *parser.Document) error {
	if doc == nil {
		return fmt.Errorf("walker: nil document")
	}
	w.doc = doc
	w.stopped = false

	switch doc.Shape {
	case parser.ShapeOpenAPI:
		w.walkOpenAPI()
	case parser.ShapeBespoke:
		w.walkBespoke()
	}
	return nil
}

// handle applies an action to the walker state and reports whether children
// should be visited.
func (w *Walker) handle(a Action) bool {
	if a == Stop {
		w.stopped = true
		return false
	}
	return a == Continue
}
