package main

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the file/env-backed configuration of the CLI. Flags override
// env, which overrides the YAML file, which overrides the defaults here.
type Config struct {
	Input         string   `yaml:"input" env:"OASLOC_INPUT" env-default:"openapi.yaml"`
	DictionaryDir string   `yaml:"dictionary_dir" env:"OASLOC_DICTIONARY_DIR" env-default:"locales"`
	RulesDir      string   `yaml:"rules_dir" env:"OASLOC_RULES_DIR" env-default:"rules"`
	OutputDir     string   `yaml:"output_dir" env:"OASLOC_OUTPUT_DIR" env-default:"dist"`
	BaseName      string   `yaml:"base_name" env:"OASLOC_BASE_NAME" env-default:"openapi"`
	Formats       []string `yaml:"formats" env:"OASLOC_FORMATS" env-default:"yaml"`
	Locales       []string `yaml:"locales" env:"OASLOC_LOCALES"`
	KeyPrefix     string   `yaml:"key_prefix" env:"OASLOC_KEY_PREFIX" env-default:"api.doc."`
	Concurrency   int      `yaml:"concurrency" env:"OASLOC_CONCURRENCY" env-default:"1"`

	RedisURL string `yaml:"redis_url" env:"OASLOC_REDIS_URL"`
	CacheTTL int    `yaml:"cache_ttl" env:"OASLOC_CACHE_TTL" env-default:"3600"`

	Validation struct {
		RequireTags                  bool     `yaml:"require_tags" env:"OASLOC_REQUIRE_TAGS" env-default:"true"`
		RequireExamples              bool     `yaml:"require_examples" env:"OASLOC_REQUIRE_EXAMPLES" env-default:"true"`
		RequireParameterDescriptions bool     `yaml:"require_parameter_descriptions" env:"OASLOC_REQUIRE_PARAM_DESCRIPTIONS" env-default:"true"`
		RequiredResponseCodes        []string `yaml:"required_response_codes" env:"OASLOC_REQUIRED_RESPONSE_CODES" env-default:"200,400,401,500"`
	} `yaml:"validation"`

	Normalize struct {
		SortPaths           bool `yaml:"sort_paths" env:"OASLOC_SORT_PATHS"`
		SortTags            bool `yaml:"sort_tags" env:"OASLOC_SORT_TAGS"`
		RemoveUnimplemented bool `yaml:"remove_unimplemented" env:"OASLOC_REMOVE_UNIMPLEMENTED"`
	} `yaml:"normalize"`
}

// loadConfig reads the YAML config at path, or ENV + defaults when path
// is empty and no default config file exists.
func loadConfig(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = "oasloc.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
