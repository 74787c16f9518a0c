package processor

import (
	"strings"
	"testing"
)

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"<p>hello</p>", true},
		{"text with <b>bold</b> inside", true},
		{"plain text", false},
		{"a < b and c > d", false},
		{"a<b", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := LooksLikeHTML(tt.in); got != tt.want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func upper(s string) string { return strings.ToUpper(s) }

func TestTransformHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "text nodes rewritten, tags kept",
			in:   "<p>hello <b>world</b></p>",
			want: "<p>HELLO <b>WORLD</b></p>",
		},
		{
			name: "attributes untouched",
			in:   `<a href="https://example.com/path">link</a>`,
			want: `<a href="https://example.com/path">LINK</a>`,
		},
		{
			name: "code content is not rewritten",
			in:   "<p>run <code>go test</code> now</p>",
			want: "<p>RUN <code>go test</code> NOW</p>",
		},
		{
			name: "pre content is not rewritten",
			in:   "<pre>verbatim\ntext</pre><p>after</p>",
			want: "<pre>verbatim\ntext</pre><p>AFTER</p>",
		},
		{
			name: "nested structure",
			in:   "<ul><li>one</li><li>two</li></ul>",
			want: "<ul><li>ONE</li><li>TWO</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransformHTML(tt.in, upper)
			if err != nil {
				t.Fatalf("TransformHTML: %v", err)
			}
			if got != tt.want {
				t.Errorf("TransformHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformHTMLPreservesSpacing(t *testing.T) {
	got, err := TransformHTML("<p>before <em>emph</em> after</p>", func(s string) string {
		return s // identity must round-trip spacing
	})
	if err != nil {
		t.Fatalf("TransformHTML: %v", err)
	}
	want := "<p>before <em>emph</em> after</p>"
	if got != want {
		t.Errorf("TransformHTML = %q, want %q", got, want)
	}
}

func TestPreserveWhitespace(t *testing.T) {
	tests := []struct {
		original    string
		replacement string
		want        string
	}{
		{"  hello  ", "bye", "  bye  "},
		{"hello", "bye", "bye"},
		{"\n\thello ", "bye", "\n\tbye "},
	}

	for _, tt := range tests {
		if got := preserveWhitespace(tt.original, tt.replacement); got != tt.want {
			t.Errorf("preserveWhitespace(%q, %q) = %q, want %q", tt.original, tt.replacement, got, tt.want)
		}
	}
}
