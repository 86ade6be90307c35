package differ

import (
	"strings"

	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

// opRef identifies an operation by its path key as written and its
// upper-case method.
type opRef struct {
	path, method string
}

// fieldSet holds the fields of one operation, API or the shared schemas,
// in walk order and by identity.
type fieldSet struct {
	list []*walker.Field
	ids  []string
	byID map[string]*walker.Field
	// bespoke maps a bespoke field's locator to its identity, so nested
	// fields can be named after their parent.
	bespoke map[string]string
}

func newFieldSet() *fieldSet {
	return &fieldSet{byID: make(map[string]*walker.Field), bespoke: make(map[string]string)}
}

// add records f under its identity. The first field wins when two share
// one.
func (s *fieldSet) add(f *walker.Field) {
	id := s.identity(f)
	if _, dup := s.byID[id]; dup {
		return
	}
	s.byID[id] = f
	s.list = append(s.list, f)
	s.ids = append(s.ids, id)
}

func (s *fieldSet) get(id string) *walker.Field {
	if s == nil {
		return nil
	}
	return s.byID[id]
}

// identity names a field so that it can be matched across snapshots.
// Parameters match by name because their position is not stable. Bespoke
// fields match by their chain of names within a section. Body and schema
// properties already carry name-based locators.
func (s *fieldSet) identity(f *walker.Field) string {
	switch f.Kind {
	case walker.KindParameter:
		return "parameter " + f.Name
	case walker.KindBespoke:
		parent := f.Locator
		if i := strings.LastIndex(parent, ".fields["); i >= 0 {
			parent = parent[:i]
		}
		prefix, ok := s.bespoke[parent]
		if !ok {
			prefix = parent
		}
		id := prefix + "." + f.Name
		s.bespoke[f.Locator] = id
		return id
	default:
		return f.Locator
	}
}

type opSnapshot struct {
	node   parser.Map
	fields *fieldSet
}

type apiSnapshot struct {
	api    *walker.API
	fields *fieldSet
}

// snapshot is one side of a structural comparison.
type snapshot struct {
	doc     *parser.Document
	ops     map[opRef]*opSnapshot
	apis    []*apiSnapshot
	schemas *fieldSet
}

func newSnapshot(text string) (*snapshot, error) {
	doc, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	s := &snapshot{
		doc:     doc,
		ops:     make(map[opRef]*opSnapshot),
		schemas: newFieldSet(),
	}

	err = walker.Walk(doc,
		walker.WithSharedSchemas(true),
		walker.WithOperationHandler(func(op *walker.Operation) walker.Action {
			ref := opRef{op.Path, op.Method}
			if _, seen := s.ops[ref]; !seen {
				s.ops[ref] = &opSnapshot{node: op.Node, fields: newFieldSet()}
			}
			return walker.Continue
		}),
		walker.WithAPIHandler(func(api *walker.API) walker.Action {
			s.apis = append(s.apis, &apiSnapshot{api: api, fields: newFieldSet()})
			return walker.Continue
		}),
		walker.WithFieldHandler(func(f *walker.Field) walker.Action {
			switch {
			case f.Op != nil:
				if op := s.ops[opRef{f.Op.Path, f.Op.Method}]; op != nil {
					op.fields.add(f)
				}
			case f.API != nil:
				if f.API.Index < len(s.apis) {
					s.apis[f.API.Index].fields.add(f)
				}
			case f.Kind == walker.KindSchemaProperty:
				s.schemas.add(f)
			}
			return walker.Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// schemaNames returns the names of the shared schemas that declare at least
// one field.
func (s *snapshot) schemaNames() map[string]bool {
	names := make(map[string]bool)
	for _, f := range s.schemas.list {
		names[f.Schema] = true
	}
	return names
}
