package oasloc

import (
	"fmt"
	"strings"
	"testing"
)

// benchDoc builds a document with n operations so walk and validation
// costs scale with realistic path counts.
func benchDoc(b *testing.B, n int) *Node {
	b.Helper()
	var sb strings.Builder
	sb.WriteString("openapi: 3.0.3\ninfo:\n  title: api.doc.info.title\npaths:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `  /things%d:
    get:
      tags: [things]
      summary: api.doc.things%d.get.summary
      responses:
        "200":
          description: api.doc.things%d.get.success
          example: x
`, i, i, i)
	}
	doc, err := Decode([]byte(sb.String()))
	if err != nil {
		b.Fatalf("Decode: %v", err)
	}
	return doc
}

func benchDict(n int) mockResolver {
	dict := mockResolver{"info.title": "Store API"}
	for i := 0; i < n; i++ {
		dict[fmt.Sprintf("things%d.get.summary", i)] = "List things"
		dict[fmt.Sprintf("things%d.get.success", i)] = "Things retrieved"
	}
	return dict
}

// nopEngine avoids the recording overhead of mockEngine in benchmarks.
type nopEngine struct{}

func (nopEngine) Apply(text string, _ ApplyContext) string { return text }
func (nopEngine) ApplyOutcome(text, _, _ string) string    { return text }

func BenchmarkTransform(b *testing.B) {
	doc := benchDoc(b, 50)
	tr := NewTransformer("es-ES", benchDict(50), nopEngine{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Transform(doc)
	}
}

func BenchmarkValidate(b *testing.B) {
	doc := benchDoc(b, 50)
	rules := DefaultValidationRules()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Validate(doc, rules)
	}
}

func BenchmarkEncodeYAML(b *testing.B) {
	doc := benchDoc(b, 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeYAML(doc); err != nil {
			b.Fatal(err)
		}
	}
}
