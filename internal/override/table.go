package override

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry pairs a raw pattern with its payload.
type Entry[T any] struct {
	Pattern string
	Value   T
}

// Table is an insertion-ordered list of pattern entries. It decodes from and
// encodes to a YAML mapping while keeping key order, since the first matching
// pattern wins.
type Table[T any] struct {
	entries []Entry[T]
}

// NewTable builds a table from entries, in order.
func NewTable[T any](entries ...Entry[T]) Table[T] {
	t := Table[T]{}
	for _, e := range entries {
		t.Append(e.Pattern, e.Value)
	}
	return t
}

// Set replaces the value of an existing pattern in place, or appends it.
func (t *Table[T]) Set(pattern string, v T) {
	for i := range t.entries {
		if t.entries[i].Pattern == pattern {
			t.entries[i].Value = v
			return
		}
	}
	t.entries = append(t.entries, Entry[T]{Pattern: pattern, Value: v})
}

// Append adds an entry at the end, even if the pattern is already present.
func (t *Table[T]) Append(pattern string, v T) {
	t.entries = append(t.entries, Entry[T]{Pattern: pattern, Value: v})
}

// Extend merges other into t in order. A pattern already present takes the
// new value in place; new patterns are appended.
func (t *Table[T]) Extend(other Table[T]) {
	for _, e := range other.entries {
		t.Set(e.Pattern, e.Value)
	}
}

// Entries returns a copy of the entries in declaration order.
func (t Table[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t Table[T]) Len() int {
	return len(t.entries)
}

// Clone returns an independent copy of the table.
func (t Table[T]) Clone() Table[T] {
	return Table[T]{entries: t.Entries()}
}

// Take returns all entries and leaves the table empty.
func (t *Table[T]) Take() []Entry[T] {
	out := t.entries
	t.entries = nil
	return out
}

// UnmarshalYAML decodes a mapping of pattern -> payload. Repeated keys are
// kept as separate entries in document order.
func (t *Table[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		t.entries = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of pattern to override", node.Line)
	}

	entries := make([]Entry[T], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var v T
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("override %q: %w", key.Value, err)
		}
		entries = append(entries, Entry[T]{Pattern: key.Value, Value: v})
	}
	t.entries = entries
	return nil
}

// MarshalYAML encodes the table as a mapping in entry order.
func (t Table[T]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range t.entries {
		var val yaml.Node
		if err := val.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("override %q: %w", e.Pattern, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Pattern},
			&val,
		)
	}
	return node, nil
}
