// Package processor rewrites rich-text field values without disturbing
// their markup. OpenAPI descriptions may embed HTML; the transformer
// routes those through TransformHTML so only text nodes are rewritten.
package processor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ignoredTags contains HTML tags whose content must not be rewritten.
var ignoredTags = map[string]bool{
	"script": true,
	"style":  true,
	"code":   true,
	"pre":    true,
}

// LooksLikeHTML reports whether a value contains markup worth a full
// parse. Plain text goes straight through the rule engine.
func LooksLikeHTML(s string) bool {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return false
	}
	close := strings.IndexByte(s[open:], '>')
	return close > 1
}

// TransformHTML parses an HTML fragment and applies fn to every text
// node, leaving tags, attributes and ignored elements untouched. The
// original leading/trailing whitespace of each text node is preserved so
// inline markup keeps its spacing.
func TransformHTML(fragment string, fn func(string) string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && ignoredTags[strings.ToLower(n.Data)] {
			return
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				n.Data = preserveWhitespace(n.Data, fn(trimmed))
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return fragment, nil
	}
	out, err := renderChildren(body.Nodes[0])
	if err != nil {
		return "", err
	}
	return out, nil
}

// renderChildren serializes the children of n, undoing the implicit
// html/body wrapping the parser adds around fragments.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// preserveWhitespace keeps the original's leading/trailing whitespace
// around the replacement text.
func preserveWhitespace(original, replacement string) string {
	leading := original[:len(original)-len(strings.TrimLeft(original, " \t\n\r"))]
	trailing := original[len(strings.TrimRight(original, " \t\n\r")):]
	return leading + replacement + trailing
}
