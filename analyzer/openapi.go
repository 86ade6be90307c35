package analyzer

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

// pathOps collects the operations of one path for the consistency pass.
type pathOps struct {
	path string
	item parser.Map
	ops  []*walker.Operation
}

func (r *run) analyzeOpenAPI() {
	root := r.doc.Root()
	if _, ok := root.Map("paths"); !ok && !root.Has("paths") {
		r.add(SeverityWarning, Endpoint{Index: issues.NoIndex}, "", 1, "document has no paths")
		return
	}

	r.checkPrefixes()

	var collected []*pathOps
	var current *pathOps

	_ = walker.Walk(r.doc,
		walker.WithPathHandler(func(path, _ string, item parser.Map, line int) walker.Action {
			r.checkPath(path, line)
			current = &pathOps{path: path, item: item}
			collected = append(collected, current)
			return walker.Continue
		}),
		walker.WithOperationHandler(func(op *walker.Operation) walker.Action {
			current.ops = append(current.ops, op)
			r.checkOperation(op)
			return walker.Continue
		}),
		walker.WithFieldHandler(func(f *walker.Field) walker.Action {
			if f.Kind == walker.KindParameter {
				r.checkParameter(f)
			}
			r.checkConstraints(f)
			return walker.Continue
		}),
	)

	for _, p := range collected {
		r.checkClassAnnotations(p)
	}
}

// checkPath applies the path hygiene rules to a path key. Defects in the
// basePath or server prefix are reported once by checkPrefixes. Upper-case
// placeholder segments such as /TENANT/ are legitimate and never flagged.
func (r *run) checkPath(path string, line int) {
	ep := Endpoint{Path: path, Index: issues.NoIndex}
	if !strings.HasPrefix(path, "/") {
		r.add(SeverityError, ep, "", line, "path %q does not start with \"/\"", path)
	}
	if pathutil.HasRepeatedSlash(path) {
		r.add(SeverityError, ep, "", line, "path %q contains a repeated \"/\"", path)
	}
}

// checkPrefixes applies the path hygiene rules to basePath and to the path
// part of every server URL.
func (r *run) checkPrefixes() {
	root := r.doc.Root()
	noEndpoint := Endpoint{Index: issues.NoIndex}

	if base, ok := root.Str("basePath"); ok && base != "" {
		r.checkPrefix(noEndpoint, "basePath", base, root.KeyNode("basePath").Line)
	}
	for i, n := range root.Seq("servers") {
		server, ok := parser.AsMap(n)
		if !ok {
			continue
		}
		raw, ok := server.Str("url")
		if !ok || raw == "" {
			continue
		}
		field := fmt.Sprintf("servers[%d].url", i)
		line := server.KeyNode("url").Line
		if _, rest, absolute := strings.Cut(raw, "://"); absolute {
			// The scheme separator is not a repeated "/".
			if pathutil.HasRepeatedSlash(rest) {
				r.add(SeverityError, noEndpoint, field, line, "%s %q contains a repeated \"/\"", field, raw)
			}
			continue
		}
		r.checkPrefix(noEndpoint, field, raw, line)
	}
}

func (r *run) checkPrefix(ep Endpoint, field, prefix string, line int) {
	if !strings.HasPrefix(prefix, "/") {
		r.add(SeverityError, ep, field, line, "%s %q does not start with \"/\"", field, prefix)
	}
	if pathutil.HasRepeatedSlash(prefix) {
		r.add(SeverityError, ep, field, line, "%s %q contains a repeated \"/\"", field, prefix)
	}
}

func (r *run) checkOperation(op *walker.Operation) {
	ep := op.Endpoint()
	if !op.Node.Has("operationId") {
		r.add(SeverityWarning, ep, "", op.Line, "operation %s %s has no operationId", op.Method, op.FullPath)
	}

	if desc, required := requiredBody(op); required && desc == "" {
		r.add(SeverityWarning, ep, "requestBody", op.Line,
			"required request body has no description; document what the client must send")
	}

	if !hasSuccessResponse(op.Node) {
		r.add(SeverityWarning, ep, "responses", op.Line,
			"operation %s %s declares no success response (2xx)", op.Method, op.FullPath)
	}
}

// requiredBody reports the description of a required request body: the
// OpenAPI 3.x requestBody or the Swagger 2.0 body parameter.
func requiredBody(op *walker.Operation) (string, bool) {
	if body, ok := op.Node.Map("requestBody"); ok {
		return body.Text("description"), body.Bool("required")
	}
	for _, n := range op.Node.Seq("parameters") {
		p, ok := parser.AsMap(n)
		if ok && p.Text("in") == "body" {
			return p.Text("description"), p.Bool("required")
		}
	}
	return "", false
}

func hasSuccessResponse(op parser.Map) bool {
	responses, ok := op.Map("responses")
	if !ok {
		return false
	}
	for _, code := range responses.Keys() {
		if strings.HasPrefix(code, "2") {
			return true
		}
	}
	return false
}

func (r *run) checkParameter(f *walker.Field) {
	ep := f.Endpoint()
	if !f.Node.Has("type") && !f.Node.Has("schema") && !f.Node.Has("content") {
		r.add(SeverityWarning, ep, f.Locator, f.Line,
			"parameter %q declares no type; it will be treated as a string", f.Name)
	}
	if f.Required && f.Description() == "" {
		r.add(SeverityWarning, ep, f.Locator, f.Line,
			"required parameter %q has no description; describe it by hand", f.Name)
	}
}

// checkClassAnnotations compares operation-level class annotations with the
// path-level ones. It only runs once all operations of the path are known.
func (r *run) checkClassAnnotations(p *pathOps) {
	if len(p.ops) < 2 {
		return
	}
	pathNode := p.item.Get(walker.ClassAnnotationsExtension)
	pathLevel, pathHas := annotationSet(pathNode)
	for _, op := range p.ops {
		opNode := op.Node.Get(walker.ClassAnnotationsExtension)
		opLevel, opHas := annotationSet(opNode)
		if !opHas {
			continue
		}
		ep := op.Endpoint()
		switch {
		case !pathHas:
			r.add(SeverityWarning, ep, walker.ClassAnnotationsExtension, op.Line,
				"operation %s %s overrides class annotations %s but path %q declares none; "+
					"operations sharing a path generate one class, so align them by hand",
				op.Method, p.path, renderAnnotations(opNode), p.path)
		case !sameSet(pathLevel, opLevel):
			r.add(SeverityWarning, ep, walker.ClassAnnotationsExtension, op.Line,
				"operation %s %s class annotations %s differ from path-level class annotations %s; "+
					"align them by hand",
				op.Method, p.path, renderAnnotations(opNode), renderAnnotations(pathNode))
		}
	}
}

// annotationSet reads a class annotation value, which may be a single
// string or a list of strings.
func annotationSet(n *yaml.Node) (map[string]struct{}, bool) {
	if parser.IsNull(n) {
		return nil, false
	}
	set := make(map[string]struct{})
	if list, ok := parser.StringSeq(n); ok {
		for _, s := range list {
			set[strings.TrimSpace(s)] = struct{}{}
		}
		return set, true
	}
	if s, ok := parser.ScalarString(n); ok {
		set[strings.TrimSpace(s)] = struct{}{}
		return set, true
	}
	return nil, false
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// renderAnnotations renders a class annotation value as "[A, B]".
func renderAnnotations(n *yaml.Node) string {
	if list, ok := parser.StringSeq(n); ok {
		return "[" + strings.Join(list, ", ") + "]"
	}
	s, _ := parser.ScalarString(n)
	return "[" + s + "]"
}
