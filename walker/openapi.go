package walker

import (
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
)

// HTTPMethods lists the operation keys of a path item, in the order
// operations are reported when a document uses the same order.
var HTTPMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// IsHTTPMethod reports whether key names an operation under a path item.
func IsHTTPMethod(key string) bool {
	for _, m := range HTTPMethods {
		if strings.EqualFold(m, key) {
			return true
		}
	}
	return false
}

// Local reference prefixes for shared parameters.
const (
	refPrefixParameters      = "#/parameters/"
	refPrefixComponentParams = "#/components/parameters/"
)

// PathPrefix returns what the document prepends to every path key: basePath
// for Swagger 2.0, the path of the first server URL for OpenAPI 3.x.
func PathPrefix(doc *parser.Document) string {
	root := doc.Root()
	if base, ok := root.Str("basePath"); ok {
		return base
	}
	servers := root.Seq("servers")
	if len(servers) == 0 {
		return ""
	}
	first, ok := parser.AsMap(servers[0])
	if !ok {
		return ""
	}
	return pathutil.ServerPrefix(first.Text("url"))
}

// SharedSchemas returns the definitions (Swagger 2.0) or components.schemas
// (OpenAPI 3.x) mapping.
func SharedSchemas(doc *parser.Document) (parser.Map, bool) {
	root := doc.Root()
	if defs, ok := root.Map("definitions"); ok {
		return defs, true
	}
	if comps, ok := root.Map("components"); ok {
		return comps.Map("schemas")
	}
	return parser.Map{}, false
}

func (w *Walker) walkOpenAPI() {
	root := w.doc.Root()
	paths, ok := root.Map("paths")
	if ok {
		prefix := PathPrefix(w.doc)
		for _, e := range paths.Entries() {
			if w.stopped {
				return
			}
			item, isMap := parser.AsMap(e.Value)
			if !isMap {
				continue
			}
			full := pathutil.Join(prefix, e.Key)
			if w.onPath != nil && !w.handle(w.onPath(e.Key, full, item, e.KeyNode.Line)) {
				continue
			}
			w.walkPathItem(e.Key, full, item)
		}
	}

	if w.sharedSchemas && !w.stopped {
		w.walkSharedSchemas()
	}
}

func (w *Walker) walkPathItem(path, full string, item parser.Map) {
	for _, e := range item.Entries() {
		if w.stopped {
			return
		}
		if !IsHTTPMethod(e.Key) {
			continue
		}
		opNode, ok := parser.AsMap(e.Value)
		if !ok {
			continue
		}
		op := &Operation{
			Method:   strings.ToUpper(e.Key),
			Path:     path,
			FullPath: full,
			PathItem: item,
			Node:     opNode,
			Line:     e.KeyNode.Line,
		}
		if w.onOperation != nil && !w.handle(w.onOperation(op)) {
			continue
		}
		w.walkOperationFields(op)
	}
}

func (w *Walker) walkOperationFields(op *Operation) {
	if w.onField == nil {
		return
	}
	for i, n := range op.Node.Seq("parameters") {
		if w.stopped {
			return
		}
		param, ok := w.resolveParameter(n)
		if !ok {
			continue
		}
		in := param.Text("in")
		if in == "body" {
			// Swagger 2.0 body parameters carry the request body schema.
			if schema, has := param.Map("schema"); has {
				loc := pathutil.NewLocator("requestBody")
				w.walkSchema(schema, loc, KindBodyProperty, op, "", map[string]bool{}, 0)
			}
			continue
		}
		f := &Field{
			Kind:     KindParameter,
			Op:       op,
			Locator:  "parameters[" + strconv.Itoa(i) + "]",
			Name:     param.Text("name"),
			In:       in,
			Required: param.Bool("required"),
			Node:     param,
			Line:     param.Line(),
		}
		w.handle(w.onField(f))
	}

	if w.stopped {
		return
	}
	if schema, ok := RequestBodySchema(op.Node); ok {
		loc := pathutil.NewLocator("requestBody")
		w.walkSchema(schema, loc, KindBodyProperty, op, "", map[string]bool{}, 0)
	}
}

// RequestBodySchema returns the schema of an OpenAPI 3.x requestBody,
// preferring a JSON media type.
func RequestBodySchema(op parser.Map) (parser.Map, bool) {
	body, ok := op.Map("requestBody")
	if !ok {
		return parser.Map{}, false
	}
	content, ok := body.Map("content")
	if !ok {
		return parser.Map{}, false
	}
	var fallback parser.Map
	for _, e := range content.Entries() {
		media, isMap := parser.AsMap(e.Value)
		if !isMap {
			continue
		}
		schema, has := media.Map("schema")
		if !has {
			continue
		}
		if strings.Contains(e.Key, "json") {
			return schema, true
		}
		if fallback.IsZero() {
			fallback = schema
		}
	}
	return fallback, !fallback.IsZero()
}

// resolveParameter follows a $ref to a shared parameter definition.
func (w *Walker) resolveParameter(n *yaml.Node) (parser.Map, bool) {
	param, ok := parser.AsMap(n)
	if !ok {
		return parser.Map{}, false
	}
	ref, has := param.Str("$ref")
	if !has {
		return param, true
	}
	root := w.doc.Root()
	if name, found := strings.CutPrefix(ref, refPrefixParameters); found {
		if params, isMap := root.Map("parameters"); isMap {
			return params.Map(name)
		}
	}
	if name, found := strings.CutPrefix(ref, refPrefixComponentParams); found {
		if comps, isMap := root.Map("components"); isMap {
			if params, hasParams := comps.Map("parameters"); hasParams {
				return params.Map(name)
			}
		}
	}
	return parser.Map{}, false
}

// resolveSchema follows a local schema $ref. It returns the target and the
// referenced schema name, or schema itself and "" when there is no ref.
func (w *Walker) resolveSchema(schema parser.Map) (parser.Map, string, bool) {
	ref, has := schema.Str("$ref")
	if !has {
		return schema, "", true
	}
	name, ok := pathutil.SchemaRefName(ref)
	if !ok {
		return parser.Map{}, "", false
	}
	shared, ok := SharedSchemas(w.doc)
	if !ok {
		return parser.Map{}, "", false
	}
	target, ok := shared.Map(name)
	return target, name, ok
}

// walkSchema visits the properties of schema (following refs and array
// items) as fields of the given kind. visited guards against reference
// cycles along the current branch.
func (w *Walker) walkSchema(schema parser.Map, loc *pathutil.Locator, kind FieldKind, op *Operation, owner string, visited map[string]bool, depth int) {
	if w.stopped || depth > w.maxDepth {
		return
	}
	target, name, ok := w.resolveSchema(schema)
	if !ok {
		return
	}
	if name != "" {
		if visited[name] {
			return
		}
		visited[name] = true
		defer delete(visited, name)
	}

	if items, isMap := target.Map("items"); isMap && !target.Has("properties") {
		loc.PushItems()
		w.walkSchema(items, loc, kind, op, owner, visited, depth+1)
		loc.Pop()
		return
	}

	props, ok := target.Map("properties")
	if !ok {
		return
	}
	required, _ := parser.StringSeq(target.Get("required"))
	for _, e := range props.Entries() {
		if w.stopped {
			return
		}
		prop, isMap := parser.AsMap(e.Value)
		if !isMap {
			continue
		}
		loc.Push(e.Key)
		f := &Field{
			Kind:     kind,
			Op:       op,
			Schema:   owner,
			Locator:  loc.String(),
			Name:     e.Key,
			Required: slices.Contains(required, e.Key),
			Node:     prop,
			Line:     e.KeyNode.Line,
		}
		if w.handle(w.onField(f)) {
			w.walkSchema(prop, loc, kind, op, owner, visited, depth+1)
		}
		loc.Pop()
	}
}

// walkSharedSchemas visits every declared property of every shared schema.
// Locators are "<Schema>.<property>".
func (w *Walker) walkSharedSchemas() {
	if w.onField == nil {
		return
	}
	shared, ok := SharedSchemas(w.doc)
	if !ok {
		return
	}
	for _, e := range shared.Entries() {
		if w.stopped {
			return
		}
		schema, isMap := parser.AsMap(e.Value)
		if !isMap {
			continue
		}
		loc := pathutil.NewLocator(e.Key)
		w.walkSchema(schema, loc, KindSchemaProperty, nil, e.Key, map[string]bool{e.Key: true}, 0)
	}
}
