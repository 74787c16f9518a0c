package rules

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZaguanLabs/oasloc"
)

// stage indexes the fixed pipeline order. Reordering stages is a code
// change, never a side effect of rule-file edits.
type stage int

const (
	stagePhraseRemoval stage = iota
	stageTermMapping
	stageFieldTemplate
	stageFormatting
	stageContractions
)

var stageOrder = [...]stage{
	stagePhraseRemoval,
	stageTermMapping,
	stageFieldTemplate,
	stageFormatting,
	stageContractions,
}

// termMapping is one literal term substitution, ordered for matching.
type termMapping struct {
	From string
	To   string
}

// Engine applies a Table to single strings. It is stateless after
// construction and safe for concurrent use.
type Engine struct {
	table *Table
	terms []termMapping // sorted longest-first for precedence
}

var _ oasloc.RuleApplier = (*Engine)(nil)

// NewEngine builds an engine over a compiled table. A nil table yields an
// engine that only performs the final cleanup.
func NewEngine(table *Table) *Engine {
	if table == nil {
		table = &Table{
			Terms:           map[string]string{},
			FieldPatterns:   map[string]string{},
			SuccessPatterns: map[string]string{},
			Entities:        map[string]Entity{},
		}
	}

	terms := make([]termMapping, 0, len(table.Terms))
	for from, to := range table.Terms {
		terms = append(terms, termMapping{From: from, To: to})
	}
	// Longest first so a multi-word term always beats a substring of
	// itself; ties broken lexicographically for determinism.
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i].From) != len(terms[j].From) {
			return len(terms[i].From) > len(terms[j].From)
		}
		return terms[i].From < terms[j].From
	})

	return &Engine{table: table, terms: terms}
}

// Apply runs the full pipeline on text. The stage order is fixed: phrase
// removal, term mapping, field templating, formatting, contractions, then
// whitespace/punctuation cleanup. Applying the result again is a no-op as
// long as the table's replacements do not re-introduce their own triggers.
func (e *Engine) Apply(text string, ctx oasloc.ApplyContext) string {
	if text == "" {
		return text
	}

	// Templated text is authored final copy; it gets cleaned but not
	// re-capitalized or re-punctuated.
	templated := false

	for _, st := range stageOrder {
		switch st {
		case stagePhraseRemoval:
			for _, r := range e.table.PhraseRemovals {
				text = r.Pattern.ReplaceAllString(text, r.Replacement)
			}
		case stageTermMapping:
			text = e.mapTerms(text)
		case stageFieldTemplate:
			if out, ok := e.applyFieldTemplate(ctx, text); ok {
				text = out
				templated = true
			}
		case stageFormatting:
			for _, r := range e.table.Formatting {
				text = r.Pattern.ReplaceAllString(text, r.Replacement)
			}
		case stageContractions:
			for _, r := range e.table.Contractions {
				text = r.Pattern.ReplaceAllString(text, r.Replacement)
			}
		}
	}

	text = clean(text)
	if !templated {
		text = finalize(text)
	}
	return text
}

// ApplyOutcome rewrites a response description for an outcome kind using
// the table's success-message templates. A gender variant
// ("<kind>.<gender>") wins over the base template when the entity's
// gender is known. Without a template the text goes through Apply.
func (e *Engine) ApplyOutcome(text, kind, entity string) string {
	if kind != "" {
		if tpl, ok := e.lookupOutcome(kind, entity); ok {
			return clean(e.expandTemplate(tpl, entity))
		}
	}
	return e.Apply(text, oasloc.ApplyContext{Entity: entity})
}

func (e *Engine) lookupOutcome(kind, entity string) (string, bool) {
	if ent, ok := e.lookupEntity(entity); ok && ent.Gender != "" {
		if tpl, ok := e.table.SuccessPatterns[kind+"."+ent.Gender]; ok {
			return tpl, true
		}
	}
	tpl, ok := e.table.SuccessPatterns[kind]
	return tpl, ok
}

// mapTerms replaces literal term occurrences in a single left-to-right
// pass. At each position the longest matching term wins, and emitted
// replacements are never rescanned, so one application cannot re-trigger
// on its own output.
func (e *Engine) mapTerms(s string) string {
	if len(e.terms) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if to, n := e.matchTermAt(s, i); n > 0 {
			b.WriteString(to)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// matchTermAt tries every term, longest first, as a prefix of s[i:].
func (e *Engine) matchTermAt(s string, i int) (string, int) {
	rest := s[i:]
	for _, tm := range e.terms {
		l := len(tm.From)
		if l == 0 || l > len(rest) {
			continue
		}
		seg := rest[:l]
		if seg == tm.From || (e.table.CaseInsensitiveTerms && strings.EqualFold(seg, tm.From)) {
			return tm.To, l
		}
	}
	return "", 0
}

// applyFieldTemplate produces the wholesale replacement for a field with
// a template, superseding the earlier stages' output for that field.
// An id field whose text already names an ID is kept as-is: it is final
// copy, including a templated result from an earlier application.
func (e *Engine) applyFieldTemplate(ctx oasloc.ApplyContext, text string) (string, bool) {
	tpl, ok := e.table.FieldPatterns[ctx.Field]
	if !ok {
		return "", false
	}
	if ctx.Field == "id" && strings.Contains(text, "ID") {
		return text, true
	}
	return e.expandTemplate(tpl, ctx.Entity), true
}

// expandTemplate substitutes {entity}, {plural} and {article} using the
// entity table, falling back to a humanized form of the raw identifier.
func (e *Engine) expandTemplate(tpl, entityKey string) string {
	ent, ok := e.lookupEntity(entityKey)

	name := ent.Name
	if !ok || name == "" {
		name = humanizeEntity(entityKey)
	}
	plural := ent.Plural
	if plural == "" {
		plural = name
	}

	out := strings.ReplaceAll(tpl, "{entity}", name)
	out = strings.ReplaceAll(out, "{plural}", plural)
	out = strings.ReplaceAll(out, "{article}", ent.Article)
	return out
}

func (e *Engine) lookupEntity(key string) (Entity, bool) {
	if key == "" {
		return Entity{}, false
	}
	if ent, ok := e.table.Entities[key]; ok {
		return ent, true
	}
	ent, ok := e.table.Entities[strings.ToLower(key)]
	return ent, ok
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// humanizeEntity turns a raw identifier like "userProfile" or
// "user_profile" into "user profile".
func humanizeEntity(key string) string {
	if key == "" {
		return ""
	}
	s := camelBoundary.ReplaceAllString(key, "$1 $2")
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.ToLower(s)
}

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	spacePunct = regexp.MustCompile(`\s+([,.!?:;])`)
	dotRun     = regexp.MustCompile(`\.{2,}`)
)

// clean collapses whitespace and fixes punctuation spacing.
func clean(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = spacePunct.ReplaceAllString(s, "$1")
	s = dotRun.ReplaceAllString(s, ".")
	return s
}

// finalize upper-cases the first rune and guarantees terminal punctuation.
func finalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	last, _ := utf8.DecodeLastRuneInString(s)
	if !strings.ContainsRune(".!?:", last) {
		s += "."
	}
	return s
}
