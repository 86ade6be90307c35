package analyzer

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

func (r *run) analyzeBespoke() {
	_ = walker.Walk(r.doc,
		walker.WithAPIHandler(func(api *walker.API) walker.Action {
			r.checkAPI(api)
			return walker.Continue
		}),
		walker.WithFieldHandler(func(f *walker.Field) walker.Action {
			ep := f.Endpoint()
			if f.Name == "" {
				r.add(SeverityError, ep, f.Locator, f.Line, "field has no name")
			} else if !f.Node.Has("type") {
				r.add(SeverityError, ep, f.Locator, f.Line, "field %q has no type", f.Name)
			}
			r.checkConstraints(f)
			return walker.Continue
		}),
	)
}

func (r *run) checkAPI(api *walker.API) {
	ep := api.Endpoint()
	line := api.Node.Line()
	label := api.Name
	if label == "" {
		label = ep.String()
		r.add(SeverityError, ep, "name", line, "API has no name")
	}

	switch {
	case api.Path == "":
		r.add(SeverityError, ep, "path", line, "API %q has no path", label)
	default:
		if !strings.HasPrefix(api.Path, "/") {
			r.add(SeverityError, ep, "path", line, "path %q does not start with \"/\"", api.Path)
		}
		if pathutil.HasRepeatedSlash(api.Path) {
			r.add(SeverityError, ep, "path", line, "path %q contains a repeated \"/\"", api.Path)
		}
	}

	switch {
	case api.Method == "":
		r.add(SeverityError, ep, "method", line, "API %q has no method", label)
	case !walker.IsHTTPMethod(api.Method):
		r.add(SeverityWarning, ep, "method", line, "API %q uses unsupported HTTP method %q", label, api.Method)
	}

	r.checkAnnotations(api, label)
}

func (r *run) checkAnnotations(api *walker.API, label string) {
	n := api.Node.Get("annotations")
	if parser.IsNull(n) {
		return
	}
	ep := api.Endpoint()
	if n.Kind != yaml.SequenceNode {
		r.add(SeverityError, ep, "annotations", n.Line, "annotations of API %q must be a list", label)
		return
	}
	for i, item := range n.Content {
		item = parser.Resolve(item)
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			r.add(SeverityError, ep, "annotations", item.Line,
				"annotation %d of API %q is not a string", i, label)
		}
	}
}
