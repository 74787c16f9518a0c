package oasloc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/oasloc/processor"
)

// DefaultKeyPrefix marks a string value as a translation key.
const DefaultKeyPrefix = "api.doc."

// Transformer walks a document tree, resolves translation keys through a
// dictionary and rewrites the resolved text via the rule engine. It holds
// no per-run state; Transform may be called repeatedly and concurrently.
type Transformer struct {
	locale    string
	dict      KeyResolver
	engine    RuleApplier
	cache     ResultCache
	fields    FieldSets
	keyPrefix string
	keyToken  *regexp.Regexp
	wholeKey  *regexp.Regexp
	fillInfo  bool
}

// TransformerOption is a functional option for configuring the Transformer.
type TransformerOption func(*Transformer)

// WithFieldSets overrides the translatable/example field classification.
func WithFieldSets(fields FieldSets) TransformerOption {
	return func(t *Transformer) {
		t.fields = fields
	}
}

// WithResultCache sets a cache for rule-engine output. Cache keys include
// the locale and field classification, so one cache may be shared across
// concurrently processed locales.
func WithResultCache(c ResultCache) TransformerOption {
	return func(t *Transformer) {
		t.cache = c
	}
}

// WithKeyPrefix changes the prefix that marks values as translation keys.
func WithKeyPrefix(prefix string) TransformerOption {
	return func(t *Transformer) {
		t.keyPrefix = prefix
	}
}

// WithInfoDefaults fills a missing or partial info object with default
// translation keys before the walk.
func WithInfoDefaults(enabled bool) TransformerOption {
	return func(t *Transformer) {
		t.fillInfo = enabled
	}
}

// NewTransformer creates a Transformer for one locale.
func NewTransformer(locale string, dict KeyResolver, engine RuleApplier, opts ...TransformerOption) *Transformer {
	t := &Transformer{
		locale:    locale,
		dict:      dict,
		engine:    engine,
		fields:    DefaultFieldSets(),
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(t)
	}

	token := regexp.QuoteMeta(t.keyPrefix) + `[A-Za-z0-9_-]+(?:\.[A-Za-z0-9_-]+)*`
	t.keyToken = regexp.MustCompile(token)
	t.wholeKey = regexp.MustCompile(`^` + token + `$`)
	return t
}

// Transform produces the locale's document from doc. The source tree is
// never mutated: all rewriting happens on a deep copy. The report records
// every key lookup, each distinct unresolved key once, and the number of
// fields whose value changed.
func (t *Transformer) Transform(doc *Node) (*Node, *TranslationReport) {
	report := NewTranslationReport(t.locale)
	out := doc.Clone()
	if out == nil {
		return nil, report
	}

	if t.fillInfo {
		t.ensureInfo(out)
	}
	t.translateTagObjects(out, report)
	t.walk(out, nil, report)
	return out, report
}

// ensureInfo fills a missing info block with default translation keys so
// the output is a valid, fully-titled document.
func (t *Transformer) ensureInfo(doc *Node) {
	if doc.Kind != KindMapping {
		return
	}
	info := doc.Get("info")
	if info == nil || info.Kind != KindMapping {
		info = &Node{Kind: KindMapping}
		doc.Set("info", info)
	}
	defaults := []Pair{
		{Key: "title", Value: StringNode(t.keyPrefix + "general.title")},
		{Key: "description", Value: StringNode(t.keyPrefix + "general.description")},
		{Key: "version", Value: StringNode("1.0.0")},
	}
	for _, d := range defaults {
		if !info.Has(d.Key) {
			info.Set(d.Key, d.Value)
		}
	}
}

// translateTagObjects resolves top-level tag declarations. A tag whose
// name is a translation key gets both its name and description from the
// same resolution, keeping the two in sync.
func (t *Transformer) translateTagObjects(doc *Node, report *TranslationReport) {
	tags := doc.Get("tags")
	if tags == nil || tags.Kind != KindSequence {
		return
	}
	for _, tag := range tags.Items {
		if tag.Kind != KindMapping {
			continue
		}
		name := tag.Get("name")
		if name == nil || !name.IsString() || !t.isKey(name.Value) {
			continue
		}
		resolved, ok := t.dict.Resolve(t.keyBody(name.Value))
		report.AddLookup(name.Value, ok)
		if !ok {
			continue
		}
		tag.Set("name", StringNode(resolved))
		if desc := tag.Get("description"); desc == nil || (desc.IsString() && t.isKey(desc.Value)) {
			tag.Set("description", StringNode(resolved))
		}
		report.TransformedFields++
	}
}

func (t *Transformer) walk(n *Node, path []string, report *TranslationReport) {
	switch n.Kind {
	case KindMapping:
		for i := range n.Pairs {
			p := &n.Pairs[i]
			childPath := append(path, p.Key)
			if p.Value.IsString() {
				if out, changed := t.rewriteScalar(p.Key, p.Value.Value, childPath, report); changed {
					p.Value = StringNode(out)
					report.TransformedFields++
				}
				continue
			}
			t.walk(p.Value, childPath, report)
		}
	case KindSequence:
		for i, item := range n.Items {
			t.walk(item, append(path, strconv.Itoa(i)), report)
		}
	}
}

// rewriteScalar handles one string field. Translatable fields hold a
// whole key; example fields may embed key tokens inside literal text.
func (t *Transformer) rewriteScalar(field, value string, path []string, report *TranslationReport) (string, bool) {
	switch {
	case t.fields.Translatable[field] && t.isKey(value):
		out := t.translateValue(field, value, path, report)
		return out, out != value
	case t.fields.Example[field]:
		out := t.replaceEmbedded(value, report)
		return out, out != value
	}
	return value, false
}

// translateValue resolves the key and runs the resolved text through the
// rule engine. An unresolved key is kept verbatim: a visible, greppable
// placeholder in the output.
func (t *Transformer) translateValue(field, key string, path []string, report *TranslationReport) string {
	text, ok := t.dict.Resolve(t.keyBody(key))
	report.AddLookup(key, ok)
	if !ok {
		return key
	}

	entity := inferEntity(path)
	kind := inferOutcome(field, path)
	field = templateField(field, path)

	cacheKey := ""
	if t.cache != nil {
		cacheKey = CacheKey(HashParts(text, field, entity, kind), t.locale)
		if cached, hit := t.cache.Get(cacheKey); hit {
			return cached
		}
	}

	out := t.applyRules(field, text, entity, kind, report)

	if t.cache != nil {
		_ = t.cache.Set(cacheKey, out) // cache errors degrade to recompute
	}
	return out
}

func (t *Transformer) applyRules(field, text, entity, kind string, report *TranslationReport) string {
	if kind != "" {
		return t.engine.ApplyOutcome(text, kind, entity)
	}
	if processor.LooksLikeHTML(text) {
		out, err := processor.TransformHTML(text, func(s string) string {
			return t.engine.Apply(s, ApplyContext{Field: field, Entity: entity})
		})
		if err != nil {
			report.AddError(fmt.Sprintf("html rewrite failed for %s field: %v", field, err))
			return t.engine.Apply(text, ApplyContext{Field: field, Entity: entity})
		}
		return out
	}
	return t.engine.Apply(text, ApplyContext{Field: field, Entity: entity})
}

// replaceEmbedded swaps key-shaped tokens inside an example value,
// leaving the surrounding literal text untouched. Embedded replacements
// skip the rule engine: mid-string text must not be re-capitalized or
// re-punctuated.
func (t *Transformer) replaceEmbedded(value string, report *TranslationReport) string {
	return t.keyToken.ReplaceAllStringFunc(value, func(token string) string {
		text, ok := t.dict.Resolve(t.keyBody(token))
		report.AddLookup(token, ok)
		if !ok {
			return token
		}
		return text
	})
}

func (t *Transformer) isKey(value string) bool {
	return strings.HasPrefix(value, t.keyPrefix) && t.wholeKey.MatchString(value)
}

// keyBody strips the key prefix: dictionaries are authored without it.
func (t *Transformer) keyBody(key string) string {
	return strings.TrimPrefix(key, t.keyPrefix)
}

// templateField names the field for template selection. A description
// describes the property that encloses it, so "properties.id.description"
// selects the "id" template; other translatable fields select their own
// name.
func templateField(field string, path []string) string {
	if field == "description" && len(path) >= 2 {
		return path[len(path)-2]
	}
	return field
}

// inferEntity finds the nearest enclosing entity identifier: the path
// segment preceding "properties", or the schema component's name.
func inferEntity(path []string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == "properties" {
			return path[i-1]
		}
	}
	if len(path) >= 3 && path[0] == "components" && path[1] == "schemas" {
		return path[2]
	}
	if len(path) >= 2 && path[0] == "paths" {
		return entityFromRoute(path[1])
	}
	return ""
}

// entityFromRoute derives an entity identifier from a route template:
// "/brands/{id}" → "brands".
func entityFromRoute(route string) string {
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		return seg
	}
	return ""
}

// outcomeByMethod maps HTTP methods to the outcome kind of a successful
// response.
var outcomeByMethod = map[string]string{
	"get":    "retrieved",
	"post":   "created",
	"put":    "updated",
	"patch":  "updated",
	"delete": "removed",
}

// inferOutcome classifies a response description by its structural
// position: paths/<route>/<method>/responses/<2xx code>/description.
func inferOutcome(field string, path []string) string {
	if field != "description" || len(path) < 6 {
		return ""
	}
	if path[0] != "paths" || path[3] != "responses" {
		return ""
	}
	code := path[4]
	if len(code) != 3 || code[0] != '2' {
		return ""
	}
	return outcomeByMethod[strings.ToLower(path[2])]
}
