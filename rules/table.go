// Package rules implements per-locale rule tables and the deterministic
// text-cleanup engine that applies them.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ZaguanLabs/oasloc"
)

// RegexRule is one compiled (pattern, replacement) pair. Rules within a
// category run in authoring order; reordering the file changes output.
type RegexRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Entity holds per-locale metadata for a domain entity referenced by
// field and outcome templates.
type Entity struct {
	Name    string `json:"name" toml:"name"`       // canonical display name
	Plural  string `json:"plural" toml:"plural"`   // plural display name
	Gender  string `json:"gender" toml:"gender"`   // "m" or "f"; template hint only
	Article string `json:"article" toml:"article"` // definite article, where the locale has one
}

// Table is a locale's immutable rule set. Load compiles every pattern up
// front; tables are never mutated after load and are safe for concurrent
// use.
type Table struct {
	// PhraseRemovals are anchored, case-insensitive regex rules applied
	// first, each once, in order.
	PhraseRemovals []RegexRule

	// Terms maps literal source terms to replacements. Overlapping terms
	// are matched longest-first by the engine.
	Terms map[string]string

	// CaseInsensitiveTerms makes term matching ignore case.
	CaseInsensitiveTerms bool

	// FieldPatterns maps a field name to a template that replaces the
	// field's text wholesale. Templates may reference {entity}, {plural}
	// and {article}.
	FieldPatterns map[string]string

	// SuccessPatterns maps an outcome kind ("retrieved", "created",
	// "updated", "removed") to a response-description template. A
	// gender-specific variant may be declared under "<kind>.f" or
	// "<kind>.m".
	SuccessPatterns map[string]string

	// Entities maps entity identifiers to their locale metadata.
	Entities map[string]Entity

	// Formatting are ordered regex rules for structural text shape,
	// applied after the content rules.
	Formatting []RegexRule

	// Contractions are locale-specific token-fusion rules applied last.
	Contractions []RegexRule
}

// rawTable mirrors the on-disk rule file layout.
type rawTable struct {
	RedundantPhrases       [][]string        `json:"redundant_phrases" toml:"redundant_phrases"`
	TermMappings           map[string]string `json:"term_mappings" toml:"term_mappings"`
	CaseInsensitiveTerms   bool              `json:"case_insensitive_terms" toml:"case_insensitive_terms"`
	FieldPatterns          map[string]string `json:"field_patterns" toml:"field_patterns"`
	SuccessMessagePatterns map[string]string `json:"success_message_patterns" toml:"success_message_patterns"`
	Entities               map[string]Entity `json:"entities" toml:"entities"`
	FormattingPatterns     [][]string        `json:"formatting_patterns" toml:"formatting_patterns"`
	Contractions           [][]string        `json:"contractions" toml:"contractions"`
}

// Load reads and compiles a rule table from a .json or .toml file.
// Any invalid pattern makes the whole table unusable; the caller treats
// that as fatal for the locale.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-specified rule file
	if err != nil {
		return nil, fmt.Errorf("rules: reading %s: %w", path, err)
	}

	var raw rawTable
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("rules: parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("rules: parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("rules: unsupported rule file extension %q", ext)
	}

	return compile(raw)
}

// compile turns a raw table into a compiled, immutable Table.
func compile(raw rawTable) (*Table, error) {
	t := &Table{
		Terms:                raw.TermMappings,
		CaseInsensitiveTerms: raw.CaseInsensitiveTerms,
		FieldPatterns:        raw.FieldPatterns,
		SuccessPatterns:      raw.SuccessMessagePatterns,
		Entities:             raw.Entities,
	}
	if t.Terms == nil {
		t.Terms = map[string]string{}
	}
	if t.FieldPatterns == nil {
		t.FieldPatterns = map[string]string{}
	}
	if t.SuccessPatterns == nil {
		t.SuccessPatterns = map[string]string{}
	}
	if t.Entities == nil {
		t.Entities = map[string]Entity{}
	}

	var err error
	// Redundant phrases match case-insensitively; the cleanup pipeline may
	// have changed capitalization by the time they see repeated input.
	t.PhraseRemovals, err = compileRules("redundant_phrases", raw.RedundantPhrases, "(?i)")
	if err != nil {
		return nil, err
	}
	t.Formatting, err = compileRules("formatting_patterns", raw.FormattingPatterns, "")
	if err != nil {
		return nil, err
	}
	t.Contractions, err = compileRules("contractions", raw.Contractions, "")
	if err != nil {
		return nil, err
	}
	return t, nil
}

func compileRules(category string, pairs [][]string, prefix string) ([]RegexRule, error) {
	rules := make([]RegexRule, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("rules: %s entry %d: want [pattern, replacement], got %d elements", category, i, len(pair))
		}
		re, err := regexp.Compile(prefix + pair[0])
		if err != nil {
			return nil, &oasloc.RuleCompileError{Category: category, Pattern: pair[0], Cause: err}
		}
		rules = append(rules, RegexRule{Pattern: re, Replacement: pair[1]})
	}
	return rules, nil
}
