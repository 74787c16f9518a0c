package oasloc

import (
	"reflect"
	"testing"
)

func mapping(pairs ...Pair) *Node {
	return &Node{Kind: KindMapping, Pairs: pairs}
}

func TestNodeAccessors(t *testing.T) {
	n := mapping(
		Pair{Key: "b", Value: StringNode("two")},
		Pair{Key: "a", Value: StringNode("one")},
	)

	if got := n.Get("a"); got == nil || got.Value != "one" {
		t.Errorf("Get(a) = %v", got)
	}
	if n.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
	if !n.Has("b") || n.Has("c") {
		t.Error("Has misreports membership")
	}

	// Set on an existing key replaces in place; a new key appends.
	n.Set("a", StringNode("uno"))
	n.Set("c", StringNode("three"))
	if got := n.Keys(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Keys() = %v, want [b a c]", got)
	}
	if n.Get("a").Value != "uno" {
		t.Errorf("Get(a) after Set = %q", n.Get("a").Value)
	}

	n.Delete("b")
	if got := n.Keys(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Keys() after Delete = %v, want [a c]", got)
	}
}

func TestNodeIsString(t *testing.T) {
	if !StringNode("x").IsString() {
		t.Error("StringNode should be a string")
	}
	intNode := &Node{Kind: KindScalar, Tag: "!!int", Value: "7"}
	if intNode.IsString() {
		t.Error("int scalar should not be a string")
	}
	var nilNode *Node
	if nilNode.IsString() {
		t.Error("nil node should not be a string")
	}
}

func TestNodeIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"bool true", &Node{Kind: KindScalar, Tag: "!!bool", Value: "true"}, true},
		{"bool false", &Node{Kind: KindScalar, Tag: "!!bool", Value: "false"}, false},
		{"int nonzero", &Node{Kind: KindScalar, Tag: "!!int", Value: "1"}, true},
		{"int zero", &Node{Kind: KindScalar, Tag: "!!int", Value: "0"}, false},
		{"string true", StringNode("true"), true},
		{"string other", StringNode("nope"), false},
		{"nil", nil, false},
		{"mapping", mapping(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsTruthy(); got != tt.want {
				t.Errorf("IsTruthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeClone(t *testing.T) {
	original := mapping(
		Pair{Key: "info", Value: mapping(
			Pair{Key: "title", Value: StringNode("before")},
		)},
		Pair{Key: "tags", Value: &Node{Kind: KindSequence, Items: []*Node{StringNode("a")}}},
	)

	clone := original.Clone()
	if !clone.Equal(original) {
		t.Fatal("clone differs from original")
	}

	clone.Get("info").Set("title", StringNode("after"))
	clone.Get("tags").Items[0] = StringNode("b")

	if original.Get("info").Get("title").Value != "before" {
		t.Error("mutating the clone changed the original mapping")
	}
	if original.Get("tags").Items[0].Value != "a" {
		t.Error("mutating the clone changed the original sequence")
	}
}

func TestNodeEqual(t *testing.T) {
	a := mapping(Pair{Key: "k", Value: StringNode("v")})
	b := mapping(Pair{Key: "k", Value: StringNode("v")})
	c := mapping(Pair{Key: "k", Value: StringNode("other")})

	if !a.Equal(b) {
		t.Error("identical trees reported unequal")
	}
	if a.Equal(c) {
		t.Error("different values reported equal")
	}

	// Order matters: mappings are ordered data.
	d := mapping(
		Pair{Key: "x", Value: StringNode("1")},
		Pair{Key: "y", Value: StringNode("2")},
	)
	e := mapping(
		Pair{Key: "y", Value: StringNode("2")},
		Pair{Key: "x", Value: StringNode("1")},
	)
	if d.Equal(e) {
		t.Error("reordered mappings reported equal")
	}
}
