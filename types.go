package oasloc

import (
	"sort"
	"time"
)

// KeyResolver resolves translation keys to locale-specific text.
// A miss returns ("", false); the caller decides the fallback.
type KeyResolver interface {
	Resolve(key string) (string, bool)
}

// ApplyContext carries the structural classification of the field whose
// value is being rewritten, so the rule engine can pick field templates
// and entity metadata.
type ApplyContext struct {
	Field  string // field name the value occupies, e.g. "id", "description"
	Entity string // nearest enclosing entity identifier, e.g. "brand"
}

// RuleApplier applies a locale's rule table to a single string.
// Implementations must be deterministic and idempotent:
// Apply(Apply(x)) == Apply(x).
type RuleApplier interface {
	Apply(text string, ctx ApplyContext) string

	// ApplyOutcome rewrites a response description for the given outcome
	// kind ("retrieved", "created", "updated", "removed"). When the table
	// has no template for the kind, the text falls through to Apply.
	ApplyOutcome(text, kind, entity string) string
}

// ResultCache caches rule-engine output keyed by content hash and locale.
type ResultCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// LocaleLoader loads the per-locale collaborators of a pipeline run.
// A load failure is fatal for that locale only.
type LocaleLoader interface {
	LoadLocale(locale string) (KeyResolver, RuleApplier, error)
}

// FieldSets configures which document fields the transformer touches.
type FieldSets struct {
	// Translatable fields hold a single translation key as their value.
	Translatable map[string]bool

	// Example fields may embed key-shaped tokens inside literal text.
	Example map[string]bool
}

// DefaultFieldSets returns the field classification used by OpenAPI
// documents: description/summary/title/name are translatable, example
// fields are scanned for embedded keys.
func DefaultFieldSets() FieldSets {
	return FieldSets{
		Translatable: map[string]bool{
			"description": true,
			"summary":     true,
			"title":       true,
			"name":        true,
		},
		Example: map[string]bool{
			"example":   true,
			"x-example": true,
		},
	}
}

// ValidationRules is the declarative constraint set checked by Validate.
type ValidationRules struct {
	RequireTags                  bool
	RequireExamples              bool
	RequireParameterDescriptions bool

	// RequiredResponseCodes must all be present in every operation's
	// response map. Each missing code produces one Violation.
	RequiredResponseCodes []string
}

// DefaultValidationRules enables every check with the usual response codes.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		RequireTags:                  true,
		RequireExamples:              true,
		RequireParameterDescriptions: true,
		RequiredResponseCodes:        []string{"200", "400", "401", "500"},
	}
}

// Violation is a single validation failure. Violations are report data,
// never errors: they do not abort the pipeline.
type Violation struct {
	Path    string `json:"path"`    // document path of the offending node
	Rule    string `json:"rule"`    // e.g. "require_tags"
	Message string `json:"message"` // human-readable description
}

// NormalizeOptions toggles the post-processing steps. Each step is
// independent and pure.
type NormalizeOptions struct {
	SortPaths           bool
	SortTags            bool
	RemoveUnimplemented bool
}

// TranslationReport aggregates the outcome of one locale's pipeline.
type TranslationReport struct {
	Locale    string    `json:"locale"`
	Timestamp time.Time `json:"timestamp"`

	TotalKeys         int `json:"total_keys"`         // key lookups attempted
	ResolvedKeys      int `json:"resolved_keys"`      // lookups that hit the dictionary
	TransformedFields int `json:"transformed_fields"` // fields whose value changed

	UnresolvedKeys []string    `json:"unresolved_keys"` // sorted, unique
	Violations     []Violation `json:"violations"`
	Errors         []string    `json:"errors"`

	missing map[string]bool
}

// NewTranslationReport creates an empty report for the locale.
func NewTranslationReport(locale string) *TranslationReport {
	return &TranslationReport{
		Locale:    locale,
		Timestamp: time.Now().UTC(),
		missing:   make(map[string]bool),
	}
}

// AddLookup records one key resolution attempt. Unresolved keys are
// deduplicated: each distinct key appears once in UnresolvedKeys.
func (r *TranslationReport) AddLookup(key string, found bool) {
	r.TotalKeys++
	if found {
		r.ResolvedKeys++
		return
	}
	if r.missing == nil {
		r.missing = make(map[string]bool)
	}
	if !r.missing[key] {
		r.missing[key] = true
		r.UnresolvedKeys = append(r.UnresolvedKeys, key)
		sort.Strings(r.UnresolvedKeys)
	}
}

// AddError records a non-fatal processing error.
func (r *TranslationReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// TranslationRate returns the fraction of lookups that resolved, in [0, 1].
func (r *TranslationReport) TranslationRate() float64 {
	if r.TotalKeys == 0 {
		return 0
	}
	return float64(r.ResolvedKeys) / float64(r.TotalKeys)
}
