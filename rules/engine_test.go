package rules

import (
	"regexp"
	"testing"

	"github.com/ZaguanLabs/oasloc"
)

func testTable() *Table {
	return &Table{
		PhraseRemovals: []RegexRule{
			{Pattern: regexp.MustCompile(`(?i)\bthis endpoint (allows you to|will)\s*`), Replacement: ""},
			{Pattern: regexp.MustCompile(`(?i)\bplease note that\s*`), Replacement: ""},
		},
		Terms: map[string]string{
			"point of sale": "POS record",
			"point":         "location",
			"endpoint":      "operation",
		},
		FieldPatterns: map[string]string{
			"id":   "Unique ID of the {entity}",
			"name": "Name of the {entity}",
		},
		SuccessPatterns: map[string]string{
			"retrieved": "The {entity} was retrieved successfully",
			"created":   "El {entity} se ha creado correctamente",
			"created.f": "La {entity} se ha creado correctamente",
			"removed":   "The {entity} was removed",
		},
		Entities: map[string]Entity{
			"brand":  {Name: "Brand", Plural: "Brands"},
			"marca":  {Name: "marca", Plural: "marcas", Gender: "f", Article: "la"},
			"pedido": {Name: "pedido", Plural: "pedidos", Gender: "m", Article: "el"},
		},
		Formatting: []RegexRule{
			{Pattern: regexp.MustCompile(` {2,}`), Replacement: " "},
		},
		Contractions: []RegexRule{
			{Pattern: regexp.MustCompile(`\bde el\b`), Replacement: "del"},
		},
	}
}

func TestApply(t *testing.T) {
	e := NewEngine(testTable())

	tests := []struct {
		name string
		in   string
		ctx  oasloc.ApplyContext
		want string
	}{
		{
			name: "phrase removal runs before term mapping",
			in:   "This endpoint allows you to retrieve the point of sale",
			want: "Retrieve the POS record.",
		},
		{
			name: "longest term wins over its own prefix",
			in:   "each point of sale has a point on the map",
			want: "Each POS record has a location on the map.",
		},
		{
			name: "replacements are not rescanned",
			in:   "the endpoint",
			want: "The operation.",
		},
		{
			name: "contraction applied last",
			in:   "estado de el pedido",
			want: "Estado del pedido.",
		},
		{
			name: "whitespace and punctuation cleanup",
			in:   "  too   many spaces ,  and dots.. ",
			want: "Too many spaces, and dots.",
		},
		{
			name: "existing terminal punctuation preserved",
			in:   "is this valid?",
			want: "Is this valid?",
		},
		{
			name: "empty input stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(tt.in, tt.ctx)
			if got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	e := NewEngine(testTable())

	inputs := []string{
		"This endpoint allows you to retrieve the point of sale",
		"each point of sale has a point on the map",
		"estado de el pedido",
		"plain text without any rule triggers",
		"  whitespace   mess ,  here.. ",
	}

	for _, in := range inputs {
		once := e.Apply(in, oasloc.ApplyContext{})
		twice := e.Apply(once, oasloc.ApplyContext{})
		if once != twice {
			t.Errorf("Apply not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestApplyFieldTemplate(t *testing.T) {
	e := NewEngine(testTable())

	tests := []struct {
		name string
		in   string
		ctx  oasloc.ApplyContext
		want string
	}{
		{
			name: "template replaces text wholesale",
			in:   "whatever the dictionary said",
			ctx:  oasloc.ApplyContext{Field: "id", Entity: "brand"},
			want: "Unique ID of the Brand",
		},
		{
			name: "unknown entity falls back to humanized identifier",
			in:   "original",
			ctx:  oasloc.ApplyContext{Field: "name", Entity: "userProfile"},
			want: "Name of the user profile",
		},
		{
			name: "id text already naming an ID is preserved",
			in:   "Internal ID used by the billing system",
			ctx:  oasloc.ApplyContext{Field: "id", Entity: "brand"},
			want: "Internal ID used by the billing system",
		},
		{
			name: "field without template goes through the pipeline",
			in:   "the endpoint",
			ctx:  oasloc.ApplyContext{Field: "status", Entity: "brand"},
			want: "The operation.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(tt.in, tt.ctx)
			if got != tt.want {
				t.Errorf("Apply(%q, %+v) = %q, want %q", tt.in, tt.ctx, got, tt.want)
			}
		})
	}

	// Templated output is final copy; applying again must not add
	// punctuation or change capitalization.
	ctx := oasloc.ApplyContext{Field: "id", Entity: "brand"}
	once := e.Apply("x", ctx)
	twice := e.Apply(once, ctx)
	if once != twice {
		t.Errorf("templated Apply not idempotent: first %q, second %q", once, twice)
	}
}

func TestApplyOutcome(t *testing.T) {
	e := NewEngine(testTable())

	tests := []struct {
		name   string
		kind   string
		entity string
		want   string
	}{
		{
			name:   "base template",
			kind:   "retrieved",
			entity: "brand",
			want:   "The Brand was retrieved successfully",
		},
		{
			name:   "feminine variant wins for feminine entity",
			kind:   "created",
			entity: "marca",
			want:   "La marca se ha creado correctamente",
		},
		{
			name:   "masculine entity uses base template",
			kind:   "created",
			entity: "pedido",
			want:   "El pedido se ha creado correctamente",
		},
		{
			name:   "unknown entity humanized",
			kind:   "removed",
			entity: "salesOrder",
			want:   "The sales order was removed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ApplyOutcome("ignored source text", tt.kind, tt.entity)
			if got != tt.want {
				t.Errorf("ApplyOutcome(%q, %q) = %q, want %q", tt.kind, tt.entity, got, tt.want)
			}
		})
	}
}

func TestApplyOutcomeFallsBackToApply(t *testing.T) {
	e := NewEngine(testTable())

	// No "updated" template in the table: the text goes through Apply.
	got := e.ApplyOutcome("the endpoint was changed", "updated", "brand")
	want := "The operation was changed."
	if got != want {
		t.Errorf("ApplyOutcome fallback = %q, want %q", got, want)
	}
}

func TestCaseInsensitiveTerms(t *testing.T) {
	table := testTable()
	table.CaseInsensitiveTerms = true
	e := NewEngine(table)

	got := e.Apply("the Endpoint and the ENDPOINT", oasloc.ApplyContext{})
	want := "The operation and the operation."
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

func TestNewEngineNilTable(t *testing.T) {
	e := NewEngine(nil)

	got := e.Apply("  hello   world ", oasloc.ApplyContext{})
	want := "Hello world."
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

func TestHumanizeEntity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"userProfile", "user profile"},
		{"sales_order", "sales order"},
		{"point-of-sale", "point of sale"},
		{"brand", "brand"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := humanizeEntity(tt.in); got != tt.want {
			t.Errorf("humanizeEntity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func BenchmarkApply(b *testing.B) {
	e := NewEngine(testTable())
	text := "This endpoint allows you to retrieve the point of sale for a point on the map"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Apply(text, oasloc.ApplyContext{})
	}
}
