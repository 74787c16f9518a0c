package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaguanLabs/oasloc"
	"github.com/ZaguanLabs/oasloc/dictionary"
	"github.com/ZaguanLabs/oasloc/rules"
)

// ruleFileExtensions, in lookup order. JSON wins over TOML when a locale
// ships both.
var ruleFileExtensions = []string{".json", ".toml"}

// fileLocaleLoader loads each locale's dictionary and rule table from
// sibling files named after the locale, e.g. locales/es-ES.json and
// rules/es-ES.toml. Both files are required: a locale without rules
// would silently skip the whole rewrite stage.
type fileLocaleLoader struct {
	dictDir  string
	rulesDir string
}

func (l *fileLocaleLoader) LoadLocale(locale string) (oasloc.KeyResolver, oasloc.RuleApplier, error) {
	dict, err := dictionary.LoadDir(l.dictDir, locale)
	if err != nil {
		return nil, nil, err
	}

	rulesPath, err := localeFile(l.rulesDir, locale)
	if err != nil {
		return nil, nil, fmt.Errorf("rules: %w", err)
	}
	table, err := rules.Load(rulesPath)
	if err != nil {
		return nil, nil, err
	}

	return dict, rules.NewEngine(table), nil
}

// localeFile returns dir/<locale>.<ext> for the first extension that
// exists on disk. Underscore-named files (es_ES.json) are accepted for
// hyphenated locales.
func localeFile(dir, locale string) (string, error) {
	stems := []string{locale}
	if underscored := strings.ReplaceAll(locale, "-", "_"); underscored != locale {
		stems = append(stems, underscored)
	}
	for _, stem := range stems {
		for _, ext := range ruleFileExtensions {
			path := filepath.Join(dir, stem+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("no file for locale %s in %s", locale, dir)
}

// discoverLocales lists the locales that have a dictionary file,
// normalized and sorted. Locales named explicitly in the config bypass
// discovery.
func discoverLocales(dictDir string) ([]string, error) {
	entries, err := os.ReadDir(dictDir)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary dir: %w", err)
	}

	seen := make(map[string]bool)
	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".json" && ext != ".toml" {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ext)
		normalized, err := oasloc.NormalizeLocale(stem)
		if err != nil {
			return nil, fmt.Errorf("dictionary file %s: %w", entry.Name(), err)
		}
		if !seen[normalized] {
			seen[normalized] = true
			locales = append(locales, normalized)
		}
	}
	sort.Strings(locales)
	return locales, nil
}
