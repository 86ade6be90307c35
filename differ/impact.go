package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/internal/pathutil"
	"github.com/erraggy/speclint/parser"
	"github.com/erraggy/speclint/walker"
)

// ChangeType classifies an endpoint in an impact summary
type ChangeType string

const (
	// ChangeTypeAdded indicates an endpoint with no counterpart in the before document
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeModified indicates an endpoint that gained properties or moved to a new path
	ChangeTypeModified ChangeType = "modified"
)

// Property names used by change records besides the constraint keywords.
const (
	PropertyPath        = "path"
	PropertyEndpoint    = "endpoint"
	PropertyOperationID = "operationId"
	PropertyDescription = "description"
	PropertyType        = "type"
	PropertyRequired    = "required"
	PropertyParameter   = "parameter"
	PropertyField       = "field"
)

// PropertyChange is one typed (property, before, after) tuple. Before is
// empty when the before side lacked the property.
type PropertyChange struct {
	// Subject names the parameter or field the property belongs to, e.g.
	// "parameter pageSize" or "requestBody.address.zip". It is empty for
	// endpoint-level properties.
	Subject  string `json:"subject,omitempty"`
	Property string `json:"property"`
	Before   string `json:"before,omitempty"`
	After    string `json:"after"`
}

// label pairs the wording for a missing property with the wording for its
// added value.
type label struct {
	missing string
	added   string
}

var labels = map[string]label{
	PropertyOperationID: {"operationId", "operationId %s"},
	PropertyDescription: {"description", "description %q"},
	PropertyType:        {"type", "type %s"},
	PropertyRequired:    {"required flag", "required: %s"},
	"minLength":         {"min-length bound", "length constraint of at least %s"},
	"maxLength":         {"max-length bound", "length constraint of %s"},
	"minimum":           {"lower bound", "minimum of %s"},
	"min":               {"lower bound", "minimum of %s"},
	"maximum":           {"upper bound", "maximum of %s"},
	"max":               {"upper bound", "maximum of %s"},
	"minItems":          {"min-items bound", "at least %s items"},
	"minSize":           {"min-items bound", "at least %s items"},
	"maxItems":          {"max-items bound", "at most %s items"},
	"maxSize":           {"max-items bound", "at most %s items"},
	"pattern":           {"pattern", "pattern %s"},
	"format":            {"format", "format %s"},
	"email":             {"email check", "email check"},
	"notNull":           {"not-null enforcement", "not-null check"},
	"past":              {"past-date check", "past-date check"},
	"future":            {"future-date check", "future-date check"},
}

// Describe renders the change for a human, e.g.
// "parameter name: missing max-length bound → added length constraint of 255".
func (c PropertyChange) Describe() string {
	var text string
	switch c.Property {
	case PropertyEndpoint, PropertyParameter, PropertyField:
		text = "new " + c.Property
	default:
		prop := strings.TrimPrefix(c.Property, walker.ValidationExtension+".")
		l, ok := labels[prop]
		if !ok {
			l = label{missing: prop, added: prop + " %s"}
		}
		switch {
		case c.Before == "":
			added := l.added
			if strings.Contains(added, "%") {
				added = fmt.Sprintf(added, c.After)
			}
			text = "missing " + l.missing + " → added " + added
		default:
			text = prop + " " + c.Before + " → " + c.After
		}
	}
	if c.Subject != "" {
		return c.Subject + ": " + text
	}
	return text
}

// ChangeRecord is the impact on one endpoint of the after document.
type ChangeRecord struct {
	// Method is the upper-case HTTP method
	Method string `json:"method"`
	// Path is the endpoint's path in the after document
	Path string `json:"path"`
	// Index is the apis[] position in a bespoke after document, or -1
	Index int `json:"index"`
	// Name is the bespoke API name, if any
	Name string `json:"name,omitempty"`
	// Type classifies the endpoint as added or modified
	Type ChangeType `json:"type"`
	// Changes lists the property changes in document order
	Changes []PropertyChange `json:"changes"`
}

// String returns a one-line summary, e.g. "modified GET /users (2 changes)".
func (r ChangeRecord) String() string {
	target := r.Method + " " + r.Path
	if r.Index != issues.NoIndex {
		target = fmt.Sprintf("apis[%d] %s", r.Index, target)
	}
	return fmt.Sprintf("%s %s (%d changes)", r.Type, target, len(r.Changes))
}

// SchemaChange is the impact on one declared field of a shared schema
// (definitions or components.schemas).
type SchemaChange struct {
	Schema  string           `json:"schema"`
	Field   string           `json:"field"`
	Changes []PropertyChange `json:"changes"`
}

// Impact is the endpoint-level comparison of two document snapshots.
type Impact struct {
	Endpoints []ChangeRecord `json:"endpoints"`
	Schemas   []SchemaChange `json:"schemas"`
}

// IsEmpty reports whether nothing changed.
func (i *Impact) IsEmpty() bool {
	return i == nil || (len(i.Endpoints) == 0 && len(i.Schemas) == 0)
}

// Count returns the number of added and modified endpoints.
func (i *Impact) Count() (added, modified int) {
	if i == nil {
		return 0, 0
	}
	for _, r := range i.Endpoints {
		switch r.Type {
		case ChangeTypeAdded:
			added++
		case ChangeTypeModified:
			modified++
		}
	}
	return added, modified
}

// structure compares two texts. A side that does not parse yields an empty
// impact.
func (d *Differ) structure(before, after string) *Impact {
	imp := &Impact{Endpoints: []ChangeRecord{}, Schemas: []SchemaChange{}}
	b, err := newSnapshot(before)
	if err != nil {
		d.log().Debug("diff: before document does not parse", "error", err)
		return imp
	}
	a, err := newSnapshot(after)
	if err != nil {
		d.log().Debug("diff: after document does not parse", "error", err)
		return imp
	}

	switch {
	case a.doc.Shape == parser.ShapeBespoke && b.doc.Shape == parser.ShapeBespoke:
		diffBespoke(b, a, imp)
	case a.doc.Shape == parser.ShapeOpenAPI && b.doc.Shape == parser.ShapeOpenAPI:
		diffOpenAPI(b, a, imp)
		diffSchemas(b, a, imp)
	default:
		d.log().Debug("diff: documents have different shapes",
			"before", b.doc.Shape.String(), "after", a.doc.Shape.String())
	}
	return imp
}

func diffOpenAPI(b, a *snapshot, imp *Impact) {
	beforePaths, _ := b.doc.Root().Map("paths")
	afterPaths, ok := a.doc.Root().Map("paths")
	if !ok {
		return
	}

	normalized := make(map[string]string)
	for _, key := range beforePaths.Keys() {
		n := pathutil.Normalize(key)
		if _, seen := normalized[n]; !seen {
			normalized[n] = key
		}
	}

	for _, e := range afterPaths.Entries() {
		item, ok := parser.AsMap(e.Value)
		if !ok {
			continue
		}
		beforeKey := e.Key
		if !beforePaths.Has(e.Key) {
			beforeKey = normalized[pathutil.Normalize(e.Key)]
		}

		for _, m := range item.Keys() {
			if !walker.IsHTTPMethod(m) {
				continue
			}
			method := strings.ToUpper(m)
			cur := a.ops[opRef{e.Key, method}]
			if cur == nil {
				continue
			}
			prev := b.ops[opRef{beforeKey, method}]
			rec := ChangeRecord{Method: method, Path: e.Key, Index: issues.NoIndex}

			switch {
			case beforeKey != "" && beforeKey != e.Key:
				rec.Type = ChangeTypeModified
				rec.Changes = append([]PropertyChange{{Property: PropertyPath, Before: beforeKey, After: e.Key}},
					compareOperation(prev, cur)...)
			case prev != nil:
				rec.Type = ChangeTypeModified
				rec.Changes = compareOperation(prev, cur)
			case meaningful(cur.node):
				rec.Type = ChangeTypeAdded
				rec.Changes = []PropertyChange{{Property: PropertyEndpoint, After: method + " " + e.Key}}
			}
			if len(rec.Changes) > 0 {
				imp.Endpoints = append(imp.Endpoints, rec)
			}
		}
	}
}

// meaningful reports whether a new operation carries enough content to be
// reported: an id, a summary or at least one parameter.
func meaningful(op parser.Map) bool {
	return op.Has("operationId") || op.Text("summary") != "" || len(op.Seq("parameters")) > 0
}

// compareOperation lists what cur gained over prev. prev may be nil.
func compareOperation(prev, cur *opSnapshot) []PropertyChange {
	var prevNode parser.Map
	var prevFields *fieldSet
	if prev != nil {
		prevNode, prevFields = prev.node, prev.fields
	}

	var changes []PropertyChange
	for _, key := range []string{PropertyOperationID, PropertyDescription} {
		if !prevNode.Has(key) && cur.node.Has(key) {
			changes = append(changes, PropertyChange{Property: key, After: cur.node.Text(key)})
		}
	}
	return append(changes, compareFields(prevFields, cur.fields)...)
}

// compareFields lists what the fields in cur gained over their
// counterparts in prev, and the fields prev lacks entirely.
func compareFields(prev, cur *fieldSet) []PropertyChange {
	var changes []PropertyChange
	for i, f := range cur.list {
		id := cur.ids[i]
		old := prev.get(id)
		if old == nil {
			kind := PropertyField
			if f.Kind == walker.KindParameter {
				kind = PropertyParameter
			}
			changes = append(changes, PropertyChange{Subject: id, Property: kind, After: f.Name})
			continue
		}
		changes = append(changes, compareField(old, f, id)...)
	}
	return changes
}

// fieldProperty reads one comparable property of a field.
type fieldProperty struct {
	name func(f *walker.Field) string
	read func(f *walker.Field) (string, bool)
}

func fixedName(name string) func(*walker.Field) string {
	return func(*walker.Field) string { return name }
}

func keyword(kw walker.Keyword) fieldProperty {
	return fieldProperty{
		name: func(f *walker.Field) string { return f.KeyName(kw) },
		read: func(f *walker.Field) (string, bool) {
			if kw == walker.Email && f.Kind != walker.KindBespoke {
				// format already covers it
				return "", false
			}
			n := f.Lookup(kw)
			if n == nil {
				return "", false
			}
			if s, ok := parser.ScalarString(n); ok {
				return s, true
			}
			return parser.Encode(n), true
		},
	}
}

var fieldProperties = []fieldProperty{
	{
		name: fixedName(PropertyDescription),
		read: func(f *walker.Field) (string, bool) {
			d := f.Description()
			return d, d != ""
		},
	},
	{
		name: fixedName(PropertyType),
		read: func(f *walker.Field) (string, bool) {
			t := f.Type()
			return t.Raw, t.Raw != ""
		},
	},
	{
		name: fixedName(PropertyRequired),
		read: func(f *walker.Field) (string, bool) {
			return "true", f.Required
		},
	},
	keyword(walker.MinLength),
	keyword(walker.MaxLength),
	keyword(walker.Minimum),
	keyword(walker.Maximum),
	keyword(walker.MinItems),
	keyword(walker.MaxItems),
	keyword(walker.Pattern),
	keyword(walker.Format),
	keyword(walker.Email),
	keyword(walker.NotNull),
	keyword(walker.Past),
	keyword(walker.Future),
}

// compareField reports each property cur has and old lacked. A property
// both sides have is never reported, whatever its value.
func compareField(old, cur *walker.Field, subject string) []PropertyChange {
	var changes []PropertyChange
	for _, p := range fieldProperties {
		if _, had := p.read(old); had {
			continue
		}
		value, has := p.read(cur)
		if !has {
			continue
		}
		changes = append(changes, PropertyChange{Subject: subject, Property: p.name(cur), After: value})
	}
	return changes
}

// diffSchemas compares shared schema fields. Schemas that are new in the
// after document are not reported.
func diffSchemas(b, a *snapshot, imp *Impact) {
	known := b.schemaNames()
	for i, f := range a.schemas.list {
		if !known[f.Schema] {
			continue
		}
		id := a.schemas.ids[i]
		field := strings.TrimPrefix(id, f.Schema+".")
		old := b.schemas.get(id)

		var changes []PropertyChange
		if old == nil {
			changes = []PropertyChange{{Property: PropertyField, After: f.Name}}
		} else {
			changes = compareField(old, f, "")
		}
		if len(changes) > 0 {
			imp.Schemas = append(imp.Schemas, SchemaChange{Schema: f.Schema, Field: field, Changes: changes})
		}
	}
}

// apiKey correlates bespoke APIs across snapshots.
func apiKey(api *walker.API) string {
	return strings.ToUpper(api.Method) + " " + pathutil.Normalize(api.Path)
}

func diffBespoke(b, a *snapshot, imp *Impact) {
	index := make(map[string]int)
	for i, s := range b.apis {
		key := apiKey(s.api)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	for i, cur := range a.apis {
		rec := ChangeRecord{
			Method: strings.ToUpper(cur.api.Method),
			Path:   cur.api.Path,
			Index:  i,
			Name:   cur.api.Name,
		}
		j, ok := index[apiKey(cur.api)]
		if !ok {
			if cur.api.Name != "" || len(cur.fields.list) > 0 {
				rec.Type = ChangeTypeAdded
				rec.Changes = []PropertyChange{{Property: PropertyEndpoint, After: cur.api.Endpoint().String()}}
				imp.Endpoints = append(imp.Endpoints, rec)
			}
			continue
		}

		prev := b.apis[j]
		rec.Type = ChangeTypeModified
		if prev.api.Path != cur.api.Path {
			rec.Changes = append(rec.Changes, PropertyChange{Property: PropertyPath, Before: prev.api.Path, After: cur.api.Path})
		}
		rec.Changes = append(rec.Changes, compareFields(prev.fields, cur.fields)...)
		if len(rec.Changes) > 0 {
			imp.Endpoints = append(imp.Endpoints, rec)
		}
	}
}
