package parser

import (
	"go.yaml.in/yaml/v4"
)

// Entry is one key/value pair of a mapping, in source order.
type Entry struct {
	Key     string
	KeyNode *yaml.Node
	Value   *yaml.Node
}

// Map is an ordered association-list view over a YAML mapping node.
//
// Keys are never reordered. Rename replaces the key node's text in place so
// the value subtree and its position survive untouched. The zero Map is an
// empty, read-only view; its mutating methods are no-ops.
type Map struct {
	node *yaml.Node
}

// AsMap returns a Map over n when n (after alias resolution) is a mapping.
func AsMap(n *yaml.Node) (Map, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return Map{}, false
	}
	return Map{node: n}, true
}

// NewMap returns a Map over a fresh, empty mapping node.
func NewMap() Map {
	return Map{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Node returns the underlying mapping node (nil for the zero Map).
func (m Map) Node() *yaml.Node { return m.node }

// IsZero reports whether m views no node.
func (m Map) IsZero() bool { return m.node == nil }

// Line returns the source line of the mapping (0 if unknown).
func (m Map) Line() int {
	if m.node == nil {
		return 0
	}
	return m.node.Line
}

// Len returns the number of entries, counting repeated keys.
func (m Map) Len() int {
	if m.node == nil {
		return 0
	}
	return len(m.node.Content) / 2
}

// Entries returns every key/value pair in source order, repeated keys included.
func (m Map) Entries() []Entry {
	if m.node == nil {
		return nil
	}
	out := make([]Entry, 0, len(m.node.Content)/2)
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		k := m.node.Content[i]
		out = append(out, Entry{Key: k.Value, KeyNode: k, Value: resolve(m.node.Content[i+1])})
	}
	return out
}

// Keys returns the keys in source order.
func (m Map) Keys() []string {
	entries := m.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Duplicates returns the entries whose key already appeared earlier in the
// mapping.
func (m Map) Duplicates() []Entry {
	seen := make(map[string]struct{})
	var dups []Entry
	for _, e := range m.Entries() {
		if _, ok := seen[e.Key]; ok {
			dups = append(dups, e)
			continue
		}
		seen[e.Key] = struct{}{}
	}
	return dups
}

func (m Map) index(key string) int {
	if m.node == nil {
		return -1
	}
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if m.node.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// Get returns the value of the first entry named key, or nil.
func (m Map) Get(key string) *yaml.Node {
	i := m.index(key)
	if i < 0 {
		return nil
	}
	return resolve(m.node.Content[i+1])
}

// KeyNode returns the key node of the first entry named key, or nil.
func (m Map) KeyNode(key string) *yaml.Node {
	i := m.index(key)
	if i < 0 {
		return nil
	}
	return m.node.Content[i]
}

// Has reports whether key is present with a non-null value.
func (m Map) Has(key string) bool {
	return !IsNull(m.Get(key))
}

// Map returns the mapping stored under key.
func (m Map) Map(key string) (Map, bool) {
	return AsMap(m.Get(key))
}

// Seq returns the items of the sequence stored under key, or nil.
func (m Map) Seq(key string) []*yaml.Node {
	n := m.Get(key)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = resolve(c)
	}
	return out
}

// Str returns the scalar text stored under key.
func (m Map) Str(key string) (string, bool) {
	n := m.Get(key)
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) {
		return "", false
	}
	return n.Value, true
}

// Text returns the scalar text stored under key, or "".
func (m Map) Text(key string) string {
	s, _ := m.Str(key)
	return s
}

// Bool reports whether key holds a true boolean scalar.
func (m Map) Bool(key string) bool {
	return ScalarBool(m.Get(key))
}

// Number returns the numeric scalar stored under key.
func (m Map) Number(key string) (float64, bool) {
	return ScalarNumber(m.Get(key))
}

// Set stores value under key, replacing the first existing entry in place or
// appending a new one.
func (m Map) Set(key string, value *yaml.Node) {
	if m.node == nil {
		return
	}
	if i := m.index(key); i >= 0 {
		m.node.Content[i+1] = value
		return
	}
	m.node.Content = append(m.node.Content, StringNode(key), value)
}

// SetString stores a string scalar under key.
func (m Map) SetString(key, value string) {
	m.Set(key, StringNode(value))
}

// Ensure returns the mapping stored under key, creating an empty one when the
// key is absent or holds something other than a mapping.
func (m Map) Ensure(key string) Map {
	if child, ok := m.Map(key); ok {
		return child
	}
	child := NewMap()
	m.Set(key, child.node)
	return child
}

// Rename changes the first key named oldKey to newKey in place. The value
// and the entry's position are kept. It reports false when oldKey is absent
// or newKey is already taken.
func (m Map) Rename(oldKey, newKey string) bool {
	i := m.index(oldKey)
	if i < 0 {
		return false
	}
	if oldKey == newKey {
		return true
	}
	if m.index(newKey) >= 0 {
		return false
	}
	k := m.node.Content[i]
	k.Value = newKey
	k.Tag = "!!str"
	k.Style = 0
	return true
}

// Delete removes the first entry named key and reports whether one existed.
func (m Map) Delete(key string) bool {
	i := m.index(key)
	if i < 0 {
		return false
	}
	m.node.Content = append(m.node.Content[:i], m.node.Content[i+2:]...)
	return true
}
