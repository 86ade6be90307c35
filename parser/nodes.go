package parser

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// resolve follows alias nodes to the anchored node they point at.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Resolve follows alias nodes to the anchored node they point at.
func Resolve(n *yaml.Node) *yaml.Node { return resolve(n) }

// IsNull reports whether n is missing or an explicit YAML null.
func IsNull(n *yaml.Node) bool {
	n = resolve(n)
	if n == nil {
		return true
	}
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// ScalarNumber parses n as a number.
func ScalarNumber(n *yaml.Node) (float64, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.ShortTag() {
	case "!!int", "!!float", "!!str":
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(n.Value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ScalarBool reports whether n is a true boolean scalar.
func ScalarBool(n *yaml.Node) bool {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	b, err := strconv.ParseBool(n.Value)
	return err == nil && b
}

// ScalarString returns the text of a scalar node.
func ScalarString(n *yaml.Node) (string, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) {
		return "", false
	}
	return n.Value, true
}

// StringNode creates a string scalar.
func StringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// BoolNode creates a boolean scalar.
func BoolNode(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}

// NumberNode creates a numeric scalar from its decimal text, tagging it as an
// integer when it has no fraction or exponent.
func NumberNode(text string) *yaml.Node {
	tag := "!!int"
	if strings.ContainsAny(text, ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

// StringSeq renders a sequence node as strings, skipping non-scalar items.
func StringSeq(n *yaml.Node) ([]string, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, false
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if s, ok := ScalarString(c); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// IsSeq reports whether n is a sequence node.
func IsSeq(n *yaml.Node) bool {
	n = resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// SwapScalars exchanges the values of two scalar nodes, tags included.
func SwapScalars(a, b *yaml.Node) {
	a, b = resolve(a), resolve(b)
	if a == nil || b == nil {
		return
	}
	a.Value, b.Value = b.Value, a.Value
	a.Tag, b.Tag = b.Tag, a.Tag
	a.Style, b.Style = b.Style, a.Style
}

// Encode renders a single node as YAML text, for messages and diffs.
func Encode(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
