package oasloc

import "strconv"

// Kind discriminates the three node shapes of a document tree.
type Kind int

const (
	// KindScalar is a string, number, boolean or null leaf.
	KindScalar Kind = iota
	// KindMapping is an ordered map with unique string keys.
	KindMapping
	// KindSequence is an ordered list.
	KindSequence
)

// Node is one node of a parsed API description document. Mappings keep
// their insertion order; serialization emits keys in exactly this order.
type Node struct {
	Kind Kind

	// Scalar state. Tag is the YAML scalar tag ("!!str", "!!int", "!!bool",
	// "!!float", "!!null") and Value its raw text.
	Tag   string
	Value string

	// Mapping state.
	Pairs []Pair

	// Sequence state.
	Items []*Node
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   string
	Value *Node
}

// StringNode returns a new string scalar.
func StringNode(s string) *Node {
	return &Node{Kind: KindScalar, Tag: "!!str", Value: s}
}

// IsString reports whether the node is a string scalar.
func (n *Node) IsString() bool {
	return n != nil && n.Kind == KindScalar && n.Tag == "!!str"
}

// IsTruthy reports whether a scalar represents a true-ish value.
// Used for marker fields such as x-unimplemented.
func (n *Node) IsTruthy() bool {
	if n == nil || n.Kind != KindScalar {
		return false
	}
	switch n.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		return err == nil && b
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 10, 64)
		return err == nil && v != 0
	case "!!str":
		return n.Value == "true" || n.Value == "yes"
	}
	return false
}

// Get returns the value for key in a mapping, or nil.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	for _, p := range n.Pairs {
		if p.Key == key {
			return p.Value
		}
	}
	return nil
}

// Has reports whether a mapping contains key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Set replaces the value for key, or appends a new pair preserving order.
func (n *Node) Set(key string, value *Node) {
	for i, p := range n.Pairs {
		if p.Key == key {
			n.Pairs[i].Value = value
			return
		}
	}
	n.Pairs = append(n.Pairs, Pair{Key: key, Value: value})
}

// Delete removes the pair with the given key, if present.
func (n *Node) Delete(key string) {
	for i, p := range n.Pairs {
		if p.Key == key {
			n.Pairs = append(n.Pairs[:i], n.Pairs[i+1:]...)
			return
		}
	}
}

// Keys returns the mapping keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	keys := make([]string, len(n.Pairs))
	for i, p := range n.Pairs {
		keys[i] = p.Key
	}
	return keys
}

// Clone returns a deep copy of the node. Transformation and normalization
// always operate on a clone; the source tree is never mutated.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Tag: n.Tag, Value: n.Value}
	if n.Pairs != nil {
		c.Pairs = make([]Pair, len(n.Pairs))
		for i, p := range n.Pairs {
			c.Pairs[i] = Pair{Key: p.Key, Value: p.Value.Clone()}
		}
	}
	if n.Items != nil {
		c.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			c.Items[i] = item.Clone()
		}
	}
	return c
}

// Equal reports deep structural equality of two nodes, including order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case KindScalar:
		return n.Tag == other.Tag && n.Value == other.Value
	case KindMapping:
		if len(n.Pairs) != len(other.Pairs) {
			return false
		}
		for i, p := range n.Pairs {
			if p.Key != other.Pairs[i].Key || !p.Value.Equal(other.Pairs[i].Value) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(n.Items) != len(other.Items) {
			return false
		}
		for i, item := range n.Items {
			if !item.Equal(other.Items[i]) {
				return false
			}
		}
		return true
	}
	return false
}
