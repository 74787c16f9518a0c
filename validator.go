package oasloc

import (
	"fmt"
	"strings"
)

// httpMethods are the operation keys recognized under a path item.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// Validate checks the transformed document against the declarative
// constraint set and returns every violation found. Checks are
// order-independent and never mutate the document; violations are report
// data, not errors.
func Validate(doc *Node, rules ValidationRules) []Violation {
	var violations []Violation
	if doc == nil || doc.Kind != KindMapping {
		return violations
	}

	paths := doc.Get("paths")
	if paths != nil && paths.Kind == KindMapping {
		for _, route := range paths.Pairs {
			if strings.HasPrefix(route.Key, "x-") || route.Value.Kind != KindMapping {
				continue
			}
			for _, op := range route.Value.Pairs {
				if !httpMethods[op.Key] || op.Value.Kind != KindMapping {
					continue
				}
				opPath := joinPath("paths", route.Key, op.Key)
				violations = append(violations, checkOperation(op.Value, opPath, rules)...)
			}
		}
	}

	if rules.RequireParameterDescriptions {
		violations = append(violations, checkParameters(doc, nil)...)
	}

	return violations
}

func checkOperation(op *Node, opPath string, rules ValidationRules) []Violation {
	var violations []Violation

	if rules.RequireTags {
		tags := op.Get("tags")
		if tags == nil || tags.Kind != KindSequence || len(tags.Items) == 0 {
			violations = append(violations, Violation{
				Path:    opPath,
				Rule:    "require_tags",
				Message: "operation has no tags",
			})
		}
	}

	responses := op.Get("responses")

	for _, code := range rules.RequiredResponseCodes {
		if responses == nil || !responses.Has(code) {
			violations = append(violations, Violation{
				Path:    opPath,
				Rule:    "required_response_codes",
				Message: fmt.Sprintf("missing required response code %s", code),
			})
		}
	}

	if rules.RequireExamples && responses != nil && responses.Kind == KindMapping {
		for _, resp := range responses.Pairs {
			if resp.Value.Kind != KindMapping {
				continue
			}
			if !responseHasExample(resp.Value) {
				violations = append(violations, Violation{
					Path:    joinPath(opPath, "responses", resp.Key),
					Rule:    "require_examples",
					Message: fmt.Sprintf("response %s has no example", resp.Key),
				})
			}
		}
	}

	return violations
}

// responseHasExample accepts an example declared on the response itself,
// on any of its media types, or on a media type's schema.
func responseHasExample(resp *Node) bool {
	if hasExampleField(resp) {
		return true
	}
	content := resp.Get("content")
	if content == nil || content.Kind != KindMapping {
		return false
	}
	for _, mt := range content.Pairs {
		if mt.Value.Kind != KindMapping {
			continue
		}
		if hasExampleField(mt.Value) {
			return true
		}
		if schema := mt.Value.Get("schema"); schema != nil && hasExampleField(schema) {
			return true
		}
	}
	return false
}

func hasExampleField(n *Node) bool {
	return n.Has("example") || n.Has("examples") || n.Has("x-example")
}

// checkParameters walks the whole document: any mapping carrying both
// "name" and "in" is treated as a parameter object and must have a
// non-empty description.
func checkParameters(n *Node, path []string) []Violation {
	var violations []Violation

	switch n.Kind {
	case KindMapping:
		if n.Has("name") && n.Has("in") {
			desc := n.Get("description")
			if desc == nil || !desc.IsString() || strings.TrimSpace(desc.Value) == "" {
				name := ""
				if nn := n.Get("name"); nn != nil {
					name = nn.Value
				}
				violations = append(violations, Violation{
					Path:    joinPath(path...),
					Rule:    "require_parameter_descriptions",
					Message: fmt.Sprintf("parameter %q has no description", name),
				})
			}
		}
		for _, p := range n.Pairs {
			violations = append(violations, checkParameters(p.Value, append(path, p.Key))...)
		}
	case KindSequence:
		for i, item := range n.Items {
			violations = append(violations, checkParameters(item, append(path, fmt.Sprintf("%d", i)))...)
		}
	}

	return violations
}

// joinPath renders a document path for violation messages.
func joinPath(parts ...string) string {
	return strings.Join(parts, ".")
}
