package oasloc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML (or JSON, which YAML subsumes) document into an
// ordered Node tree.
func Decode(data []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DocumentError{Message: "failed to parse document", Cause: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &DocumentError{Message: "empty document"}
	}
	n, err := fromYAML(root.Content[0])
	if err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeFile reads and parses a document from path.
func DecodeFile(path string) (*Node, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-specified input file
	if err != nil {
		return nil, &DocumentError{Message: "failed to read " + path, Cause: err}
	}
	return Decode(data)
}

// EncodeYAML serializes the node tree to YAML, preserving mapping order.
func EncodeYAML(n *Node) ([]byte, error) {
	yn := toYAML(n)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yn); err != nil {
		return nil, &DocumentError{Message: "failed to encode YAML", Cause: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &DocumentError{Message: "failed to encode YAML", Cause: err}
	}
	return buf.Bytes(), nil
}

// EncodeJSON serializes the node tree to indented JSON, preserving mapping
// order. The encoder never reorders keys; the post-processor's sort, when
// enabled, is the only reordering that can happen.
func EncodeJSON(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func fromYAML(yn *yaml.Node) (*Node, error) {
	for yn.Kind == yaml.AliasNode {
		yn = yn.Alias
	}
	switch yn.Kind {
	case yaml.ScalarNode:
		return &Node{Kind: KindScalar, Tag: yn.ShortTag(), Value: yn.Value}, nil
	case yaml.MappingNode:
		n := &Node{Kind: KindMapping, Pairs: make([]Pair, 0, len(yn.Content)/2)}
		for i := 0; i+1 < len(yn.Content); i += 2 {
			key := yn.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, &DocumentError{Message: fmt.Sprintf("non-scalar mapping key at line %d", key.Line)}
			}
			value, err := fromYAML(yn.Content[i+1])
			if err != nil {
				return nil, err
			}
			n.Pairs = append(n.Pairs, Pair{Key: key.Value, Value: value})
		}
		return n, nil
	case yaml.SequenceNode:
		n := &Node{Kind: KindSequence, Items: make([]*Node, 0, len(yn.Content))}
		for _, item := range yn.Content {
			child, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}
		return n, nil
	}
	return nil, &DocumentError{Message: fmt.Sprintf("unsupported node kind %d at line %d", yn.Kind, yn.Line)}
}

func toYAML(n *Node) *yaml.Node {
	switch n.Kind {
	case KindScalar:
		yn := &yaml.Node{Kind: yaml.ScalarNode, Tag: n.Tag, Value: n.Value}
		// Force quoting for strings that would otherwise resolve to
		// another scalar type on re-parse.
		if n.Tag == "!!str" && wouldResolveDifferently(n.Value) {
			yn.Style = yaml.DoubleQuotedStyle
		}
		return yn
	case KindMapping:
		yn := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range n.Pairs {
			yn.Content = append(yn.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				toYAML(p.Value))
		}
		return yn
	case KindSequence:
		yn := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items {
			yn.Content = append(yn.Content, toYAML(item))
		}
		return yn
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// wouldResolveDifferently reports whether a plain-style rendering of s
// would re-parse as a non-string scalar.
func wouldResolveDifferently(s string) bool {
	if s == "" {
		return true
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "null", "~", "yes", "no", "on", "off":
		return true
	}
	return false
}

func writeJSON(buf *bytes.Buffer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	child := strings.Repeat("  ", depth+1)

	switch n.Kind {
	case KindScalar:
		buf.WriteString(jsonScalar(n))
	case KindMapping:
		if len(n.Pairs) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, p := range n.Pairs {
			buf.WriteString(child)
			key, err := json.Marshal(p.Key)
			if err != nil {
				return &DocumentError{Message: "failed to encode JSON key", Cause: err}
			}
			buf.Write(key)
			buf.WriteString(": ")
			if err := writeJSON(buf, p.Value, depth+1); err != nil {
				return err
			}
			if i < len(n.Pairs)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent)
		buf.WriteByte('}')
	case KindSequence:
		if len(n.Items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Items {
			buf.WriteString(child)
			if err := writeJSON(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(n.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent)
		buf.WriteByte(']')
	}
	return nil
}

// jsonScalar renders a scalar as a JSON value according to its YAML tag.
// Values that cannot be represented natively in JSON fall back to strings.
func jsonScalar(n *Node) string {
	switch n.Tag {
	case "!!null":
		return "null"
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return strconv.FormatBool(b)
		}
	case "!!int":
		if _, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return n.Value
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			out, merr := json.Marshal(f)
			if merr == nil {
				return string(out)
			}
		}
	}
	out, err := json.Marshal(n.Value)
	if err != nil {
		return `""`
	}
	return string(out)
}
