// Package oasloc localizes OpenAPI documents using per-locale dictionaries
// and rule tables.
//
// Oasloc replaces translation-key placeholders (e.g. "api.doc.v1.brand.id.description")
// embedded in an OpenAPI document with locale-specific text, runs every
// resolved string through a deterministic cleanup pipeline, validates the
// result against a small set of documentation constraints, and emits one
// normalized document plus a translation report per locale.
//
// Basic usage:
//
//	import (
//	    "github.com/ZaguanLabs/oasloc"
//	    "github.com/ZaguanLabs/oasloc/dictionary"
//	    "github.com/ZaguanLabs/oasloc/rules"
//	)
//
//	func main() {
//	    doc, err := oasloc.DecodeFile("openapi.yaml")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    dict, _ := dictionary.Load("locales/pt-BR.json")
//	    table, _ := rules.Load("rules/pt-BR.json")
//
//	    tr := oasloc.NewTransformer("pt-BR", dict, rules.NewEngine(table))
//	    out, report := tr.Transform(doc)
//
//	    report.Violations = oasloc.Validate(out, oasloc.DefaultValidationRules())
//	    out = oasloc.Normalize(out, oasloc.NormalizeOptions{SortPaths: true})
//	    // serialize out, persist report...
//	}
//
// Locales are mutually independent: every locale gets its own dictionary,
// rule table and document copy, so the Runner can process them in parallel
// without coordination.
package oasloc
