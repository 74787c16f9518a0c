// Package dictionary loads per-locale translation dictionaries and
// resolves dotted translation keys against them.
package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Store is one locale's dictionary: a nested key→string mapping, fully
// loaded into memory and read-only after load. Lookups are safe for
// concurrent use.
type Store struct {
	locale string
	root   map[string]any
}

// Locale returns the locale code the store was loaded for.
func (s *Store) Locale() string {
	return s.locale
}

// New builds a store from an already-parsed nested mapping. Values must
// be strings or further nesting; anything else is ignored by Resolve.
func New(locale string, entries map[string]any) *Store {
	if entries == nil {
		entries = map[string]any{}
	}
	return &Store{locale: locale, root: entries}
}

// Load reads a dictionary from a .json or .toml file. The locale code is
// taken from the file's base name ("locales/pt-BR.json" → "pt-BR").
// A missing or malformed file is fatal for the locale.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-specified dictionary file
	if err != nil {
		return nil, fmt.Errorf("dictionary: reading %s: %w", path, err)
	}

	var root map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("dictionary: parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("dictionary: parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("dictionary: unsupported dictionary extension %q", ext)
	}

	locale := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(locale, root), nil
}

// LoadDir loads the dictionary for a locale from dir, trying
// <dir>/<locale>.json then <dir>/<locale>.toml. Underscore-named files
// (es_ES.json) are accepted for hyphenated locales.
func LoadDir(dir, locale string) (*Store, error) {
	stems := []string{locale}
	if underscored := strings.ReplaceAll(locale, "-", "_"); underscored != locale {
		stems = append(stems, underscored)
	}
	for _, stem := range stems {
		for _, ext := range []string{".json", ".toml"} {
			path := filepath.Join(dir, stem+ext)
			if _, err := os.Stat(path); err == nil {
				s, err := Load(path)
				if err != nil {
					return nil, err
				}
				s.locale = locale
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("dictionary: no file for locale %s in %s", locale, dir)
}

// Resolve walks the dotted key through the nested mapping. Flat dotted
// keys and nested sub-maps may be mixed in one file: at every level an
// exact match on the remaining key wins over segment descent. A miss at
// any segment returns ("", false); resolution never fails the run.
func (s *Store) Resolve(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	return resolve(s.root, key)
}

func resolve(m map[string]any, key string) (string, bool) {
	// Exact match first: dictionaries exported from flat tooling keep
	// whole dotted keys at the top level.
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str, true
		}
	}

	head, rest, found := strings.Cut(key, ".")
	if !found {
		return "", false
	}
	switch sub := m[head].(type) {
	case map[string]any:
		return resolve(sub, rest)
	}
	return "", false
}

// Len returns the number of top-level entries; mostly useful in logs.
func (s *Store) Len() int {
	return len(s.root)
}
