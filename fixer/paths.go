package fixer

import (
	"strconv"
	"strings"

	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
)

// fixPaths applies path hygiene everywhere a path is declared. It runs for
// full and selective fixes alike.
func (s *session) fixPaths() {
	switch s.doc.Shape {
	case parser.ShapeOpenAPI:
		s.fixOpenAPIPaths()
	case parser.ShapeBespoke:
		s.fixBespokePaths()
	}
}

func (s *session) fixOpenAPIPaths() {
	root := s.doc.Root()

	if base, ok := root.Str("basePath"); ok {
		if clean := pathutil.Clean(base); clean != base {
			root.SetString("basePath", clean)
			s.result.Stats.PathsFixed++
			s.record(AppliedFix{Type: FixTypePath, Target: "basePath",
				Description: "cleaned basePath", Before: base, After: clean})
		}
	}

	for i, n := range root.Seq("servers") {
		server, ok := parser.AsMap(n)
		if !ok {
			continue
		}
		raw, ok := server.Str("url")
		if !ok {
			continue
		}
		clean := cleanServerURL(raw)
		if clean == raw {
			continue
		}
		server.SetString("url", clean)
		s.result.Stats.PathsFixed++
		s.record(AppliedFix{Type: FixTypePath, Target: "servers[" + strconv.Itoa(i) + "].url",
			Description: "cleaned server URL", Before: raw, After: clean})
	}

	if paths, ok := root.Map("paths"); ok {
		s.cleanPathKeys(paths)
	}
}

// cleanServerURL repairs an absolute URL's path part, or a relative URL as
// a path.
func cleanServerURL(raw string) string {
	if strings.Contains(raw, "://") {
		return pathutil.CleanServerURL(raw)
	}
	return pathutil.Clean(raw)
}

func (s *session) fixBespokePaths() {
	for i, n := range s.doc.Root().Seq("apis") {
		api, ok := parser.AsMap(n)
		if !ok {
			continue
		}
		raw, ok := api.Str("path")
		if !ok {
			continue
		}
		clean := pathutil.Clean(raw)
		if clean == raw {
			continue
		}
		api.SetString("path", clean)
		s.renamed[raw] = clean
		s.result.Stats.PathsFixed++
		s.record(AppliedFix{Type: FixTypePath, Target: "apis[" + strconv.Itoa(i) + "].path",
			Description: "cleaned API path", Before: raw, After: clean})
	}
}
