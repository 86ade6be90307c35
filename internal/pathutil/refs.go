package pathutil

import "strings"

// Local reference prefixes for shared schemas.
const (
	RefPrefixDefinitions = "#/definitions/"
	RefPrefixSchemas     = "#/components/schemas/"
)

// SchemaRefName returns the schema name a local $ref points at, and whether
// the ref is a definitions or components.schemas reference at all.
func SchemaRefName(ref string) (string, bool) {
	for _, prefix := range []string{RefPrefixDefinitions, RefPrefixSchemas} {
		if name, ok := strings.CutPrefix(ref, prefix); ok && name != "" {
			return name, true
		}
	}
	return "", false
}
