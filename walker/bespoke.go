package walker

import (
	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
)

// BespokeSections are the API keys whose fields lists are walked.
var BespokeSections = []string{"request", "response"}

func (w *Walker) walkBespoke() {
	for i, n := range w.doc.Root().Seq("apis") {
		if w.stopped {
			return
		}
		node, _ := parser.AsMap(n)
		api := &API{
			Index:  i,
			Name:   node.Text("name"),
			Path:   node.Text("path"),
			Method: node.Text("method"),
			Node:   node,
		}
		if w.onAPI != nil && !w.handle(w.onAPI(api)) {
			continue
		}
		if w.onField == nil || node.IsZero() {
			continue
		}
		for _, section := range BespokeSections {
			class, ok := node.Map(section)
			if !ok {
				continue
			}
			w.walkBespokeFields(api, class, pathutil.NewLocator(section), 0)
		}
	}
}

// walkBespokeFields visits class.fields, then any nested fields lists of
// object-typed fields.
func (w *Walker) walkBespokeFields(api *API, class parser.Map, loc *pathutil.Locator, depth int) {
	if depth > w.maxDepth {
		return
	}
	loc.Push("fields")
	defer loc.Pop()
	for j, n := range class.Seq("fields") {
		if w.stopped {
			return
		}
		node, ok := parser.AsMap(n)
		if !ok {
			continue
		}
		loc.PushIndex(j)
		f := &Field{
			Kind:     KindBespoke,
			API:      api,
			Locator:  loc.String(),
			Name:     node.Text("name"),
			Required: node.Bool("required"),
			Node:     node,
			Line:     node.Line(),
		}
		if w.handle(w.onField(f)) && node.Has("fields") {
			w.walkBespokeFields(api, node, loc, depth+1)
		}
		loc.Pop()
	}
}
