package walker

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/parser"
)

// ValidationExtension holds the constraints OpenAPI has no keyword for
// (not-null, past, future). Code generators downstream read it.
const ValidationExtension = "x-java-validation"

// ClassAnnotationsExtension carries class-level annotations on a path item or
// operation.
const ClassAnnotationsExtension = "x-java-class-annotations"

// Operation is one (method, path) endpoint of an OpenAPI document.
type Operation struct {
	// Method is the upper-case HTTP method.
	Method string
	// Path is the path key as written in the document.
	Path string
	// FullPath is Path joined to the base path or server prefix.
	FullPath string
	// PathItem is the mapping the operation lives in.
	PathItem parser.Map
	// Node is the operation mapping.
	Node parser.Map
	// Line is the source line of the method key.
	Line int
}

// Endpoint returns the issue reference for this operation.
func (o *Operation) Endpoint() issues.Endpoint {
	return issues.Endpoint{Method: o.Method, Path: o.Path, Index: issues.NoIndex}
}

// API is one entry of a bespoke apis list.
type API struct {
	Index  int
	Name   string
	Path   string
	Method string
	Node   parser.Map
}

// Endpoint returns the issue reference for this API.
func (a *API) Endpoint() issues.Endpoint {
	return issues.Endpoint{Method: strings.ToUpper(a.Method), Path: a.Path, Index: a.Index}
}

// FieldKind says where a field was found.
type FieldKind int

const (
	// KindParameter is an operation parameter.
	KindParameter FieldKind = iota
	// KindBodyProperty is a property of an operation's request body schema.
	KindBodyProperty
	// KindSchemaProperty is a property of a definitions/components schema.
	KindSchemaProperty
	// KindBespoke is a request or response field of a bespoke API.
	KindBespoke
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindParameter:
		return "parameter"
	case KindBodyProperty:
		return "body-property"
	case KindSchemaProperty:
		return "schema-property"
	case KindBespoke:
		return "bespoke"
	default:
		return "unknown"
	}
}

// Keyword names a constraint independently of how a document layout spells it.
type Keyword string

// Constraint keywords. The first group are OpenAPI schema keywords; NotNull,
// Past and Future live in ValidationExtension for OpenAPI documents. Email
// is satisfied by "format: email" in OpenAPI and "email: true" in bespoke
// documents.
const (
	MinLength Keyword = "minLength"
	MaxLength Keyword = "maxLength"
	Minimum   Keyword = "minimum"
	Maximum   Keyword = "maximum"
	MinItems  Keyword = "minItems"
	MaxItems  Keyword = "maxItems"
	Pattern   Keyword = "pattern"
	Format    Keyword = "format"
	Email     Keyword = "email"
	NotNull   Keyword = "notNull"
	Past      Keyword = "past"
	Future    Keyword = "future"
)

// bespokeKeys maps keywords to the bespoke validation block's spelling.
var bespokeKeys = map[Keyword]string{
	MinLength: "minLength",
	MaxLength: "maxLength",
	Minimum:   "min",
	Maximum:   "max",
	MinItems:  "minSize",
	MaxItems:  "maxSize",
	Pattern:   "pattern",
	Email:     "email",
	NotNull:   "notNull",
	Past:      "past",
	Future:    "future",
}

func isExtensionKeyword(kw Keyword) bool {
	return kw == NotNull || kw == Past || kw == Future
}

// Field is a parameter, body property, schema property or bespoke field,
// with uniform access to its constraints.
type Field struct {
	Kind FieldKind
	// Op is the owning operation for parameters and body properties.
	Op *Operation
	// API is the owning API for bespoke fields.
	API *API
	// Schema names the owning shared schema for KindSchemaProperty.
	Schema string
	// Locator addresses the field within its endpoint (or schema),
	// e.g. "parameters[1]", "requestBody.address.zip", "request.fields[2]".
	Locator string
	Name    string
	// In is the parameter location; empty for properties.
	In       string
	Required bool
	// Node is the parameter mapping, the property schema, or the bespoke
	// field mapping.
	Node parser.Map
	// Line is the source line of the field (0 if unknown).
	Line int
}

// Endpoint returns the issue reference of the field's owner.
func (f *Field) Endpoint() issues.Endpoint {
	switch {
	case f.Op != nil:
		return f.Op.Endpoint()
	case f.API != nil:
		return f.API.Endpoint()
	default:
		return issues.Endpoint{Index: issues.NoIndex}
	}
}

// schema returns the nested schema of an OpenAPI parameter, if any.
func (f *Field) schema() (parser.Map, bool) {
	if f.Kind != KindParameter {
		return parser.Map{}, false
	}
	return f.Node.Map("schema")
}

// Lookup returns the value node holding kw, or nil when the field has no
// such constraint. OpenAPI parameters are looked up on the parameter first
// and then on its schema.
func (f *Field) Lookup(kw Keyword) *yaml.Node {
	if f.Kind == KindBespoke {
		v, ok := f.Node.Map("validation")
		if !ok {
			return nil
		}
		key, known := bespokeKeys[kw]
		if !known {
			return nil
		}
		n := v.Get(key)
		if parser.IsNull(n) {
			return nil
		}
		// Boolean markers only count when set to true.
		if kw == Email || kw == NotNull || kw == Past || kw == Future {
			if !parser.ScalarBool(n) {
				return nil
			}
		}
		return n
	}

	if isExtensionKeyword(kw) {
		ext, ok := f.Node.Map(ValidationExtension)
		if !ok || !ext.Bool(string(kw)) {
			return nil
		}
		return ext.Get(string(kw))
	}
	if kw == Email {
		n := f.Lookup(Format)
		if s, _ := parser.ScalarString(n); s == "email" {
			return n
		}
		return nil
	}

	if n := f.Node.Get(string(kw)); !parser.IsNull(n) {
		return n
	}
	if s, ok := f.schema(); ok {
		if n := s.Get(string(kw)); !parser.IsNull(n) {
			return n
		}
	}
	return nil
}

// KeyName returns how the field's layout spells kw: the bespoke validation
// key, "x-java-validation.<kw>" for OpenAPI extension keywords, or kw itself.
func (f *Field) KeyName(kw Keyword) string {
	switch {
	case f.Kind == KindBespoke:
		if key, ok := bespokeKeys[kw]; ok {
			return key
		}
	case isExtensionKeyword(kw):
		return ValidationExtension + "." + string(kw)
	}
	return string(kw)
}

// Has reports whether the field carries kw.
func (f *Field) Has(kw Keyword) bool {
	return f.Lookup(kw) != nil
}

// Number returns kw's value as a number.
func (f *Field) Number(kw Keyword) (float64, bool) {
	return parser.ScalarNumber(f.Lookup(kw))
}

// Set writes kw onto the field. OpenAPI parameters with a schema receive
// schema keywords inside the schema; extension keywords always go on the
// field itself.
func (f *Field) Set(kw Keyword, value *yaml.Node) {
	if f.Kind == KindBespoke {
		key, known := bespokeKeys[kw]
		if !known {
			return
		}
		f.Node.Ensure("validation").Set(key, value)
		return
	}
	if isExtensionKeyword(kw) {
		f.Node.Ensure(ValidationExtension).Set(string(kw), value)
		return
	}
	if kw == Email {
		kw, value = Format, parser.StringNode("email")
	}
	if s, ok := f.schema(); ok {
		s.Set(string(kw), value)
		return
	}
	f.Node.Set(string(kw), value)
}

// Description returns the field's description text.
func (f *Field) Description() string {
	return f.Node.Text("description")
}

// TypeFamily is the broad type class of a field.
type TypeFamily int

// Type families.
const (
	TypeUnknown TypeFamily = iota
	TypeString
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeArray
	TypeObject
)

// String returns the family name.
func (t TypeFamily) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t is integer or number.
func (t TypeFamily) IsNumeric() bool {
	return t == TypeInteger || t == TypeNumber
}

// TypeInfo describes a field's declared type.
type TypeInfo struct {
	Family TypeFamily
	// Format is the declared format (OpenAPI) or the format implied by a
	// bespoke date type.
	Format string
	// Raw is the type as written.
	Raw string
	// Declared is false when the field states no type at all.
	Declared bool
}

// Hint returns the text used to size generic numeric bounds: the format for
// OpenAPI fields, the raw type for bespoke ones.
func (t TypeInfo) Hint() string {
	if t.Format != "" {
		return t.Format
	}
	return t.Raw
}

// Type resolves the field's declared type, reading an OpenAPI parameter's
// nested schema when the parameter itself has no type.
func (f *Field) Type() TypeInfo {
	if f.Kind == KindBespoke {
		return bespokeType(f.Node.Text("type"))
	}

	raw, ok := f.Node.Str("type")
	format := f.Node.Text("format")
	src := f.Node
	if !ok {
		if s, has := f.schema(); has {
			src = s
			raw, ok = s.Str("type")
			if format == "" {
				format = s.Text("format")
			}
		}
	}
	info := TypeInfo{Raw: raw, Format: format, Declared: ok}
	switch raw {
	case "string":
		info.Family = TypeString
	case "integer":
		info.Family = TypeInteger
	case "number":
		info.Family = TypeNumber
	case "boolean":
		info.Family = TypeBoolean
	case "array":
		info.Family = TypeArray
	case "object":
		info.Family = TypeObject
	case "":
		switch {
		case src.Has("$ref"), src.Has("properties"):
			info.Family = TypeObject
		case src.Has("items"):
			info.Family = TypeArray
		}
		if f.Kind == KindParameter && f.Node.Has("schema") {
			info.Declared = true
		}
	}
	return info
}

// bespokeType maps bespoke type names such as "String", "Long" or
// "List<String>" onto type families.
func bespokeType(raw string) TypeInfo {
	info := TypeInfo{Raw: raw, Declared: raw != ""}
	base := raw
	if i := strings.IndexByte(base, '<'); i >= 0 {
		base = base[:i]
	}
	switch strings.ToLower(strings.TrimSpace(base)) {
	case "string", "char", "character":
		info.Family = TypeString
	case "integer", "int", "long", "short", "byte", "biginteger":
		info.Family = TypeInteger
	case "double", "float", "bigdecimal", "number":
		info.Family = TypeNumber
	case "boolean", "bool":
		info.Family = TypeBoolean
	case "list", "set", "collection", "array":
		info.Family = TypeArray
	case "localdate":
		info.Family, info.Format = TypeString, "date"
	case "localdatetime", "date", "instant", "offsetdatetime", "zoneddatetime":
		info.Family, info.Format = TypeString, "date-time"
	case "":
		info.Family = TypeUnknown
	default:
		if strings.HasSuffix(raw, "[]") {
			info.Family = TypeArray
		} else {
			info.Family = TypeObject
		}
	}
	return info
}
