// Command oasloc localizes OpenAPI documents using per-locale
// dictionaries and rule tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ZaguanLabs/oasloc"
	"github.com/ZaguanLabs/oasloc/cache"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = oasloc.Version
	commit    = oasloc.GitCommit
	buildDate = oasloc.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("oasloc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	configPath := fs.String("config", "", "Config file (default: oasloc.yaml if present)")
	input := fs.String("input", "", "Source OpenAPI document (YAML or JSON)")
	dictDir := fs.String("dict-dir", "", "Directory of per-locale dictionaries")
	rulesDir := fs.String("rules-dir", "", "Directory of per-locale rule tables")
	outputDir := fs.String("output", "", "Output directory")
	baseName := fs.String("base-name", "", "Output file stem")
	formats := fs.String("formats", "", "Comma-separated output formats (yaml, json)")
	localesFlag := fs.String("locales", "", "Comma-separated locales (default: all with a dictionary)")
	keyPrefix := fs.String("prefix", "", "Translation key prefix")
	concurrency := fs.Int("concurrency", 0, "Locales processed in parallel")
	redisURL := fs.String("redis", "", "Redis URL for the result cache (default: in-memory)")
	cacheTTL := fs.Int("cache-ttl", -1, "Cache TTL in seconds (0 to disable)")
	noBackup := fs.Bool("no-backup", false, "Skip the original-document backup")
	sortPaths := fs.Bool("sort-paths", false, "Sort path routes alphabetically")
	sortTags := fs.Bool("sort-tags", false, "Sort tags alphabetically")
	removeUnimplemented := fs.Bool("remove-unimplemented", false, "Drop operations marked x-unimplemented")
	strict := fs.Bool("strict", false, "Exit non-zero on validation violations or unresolved keys")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", oasloc.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	// .env feeds the OASLOC_* variables cleanenv reads; a missing file
	// is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// Flags given on the command line override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "dict-dir":
			cfg.DictionaryDir = *dictDir
		case "rules-dir":
			cfg.RulesDir = *rulesDir
		case "output":
			cfg.OutputDir = *outputDir
		case "base-name":
			cfg.BaseName = *baseName
		case "formats":
			cfg.Formats = splitList(*formats)
		case "locales":
			cfg.Locales = splitList(*localesFlag)
		case "prefix":
			cfg.KeyPrefix = *keyPrefix
		case "concurrency":
			cfg.Concurrency = *concurrency
		case "redis":
			cfg.RedisURL = *redisURL
		case "cache-ttl":
			cfg.CacheTTL = *cacheTTL
		case "sort-paths":
			cfg.Normalize.SortPaths = *sortPaths
		case "sort-tags":
			cfg.Normalize.SortTags = *sortTags
		case "remove-unimplemented":
			cfg.Normalize.RemoveUnimplemented = *removeUnimplemented
		}
	})

	// A positional argument also names the input document.
	if fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}

	locales := cfg.Locales
	if len(locales) == 0 {
		locales, err = discoverLocales(cfg.DictionaryDir)
		if err != nil {
			return err
		}
	} else {
		for i, l := range locales {
			normalized, err := oasloc.NormalizeLocale(l)
			if err != nil {
				return err
			}
			locales[i] = normalized
		}
	}
	if len(locales) == 0 {
		return fmt.Errorf("no locales to process (no dictionaries in %s)", cfg.DictionaryDir)
	}

	source, err := oasloc.DecodeFile(cfg.Input)
	if err != nil {
		return err
	}

	resultCache, closeCache, err := buildCache(cfg)
	if err != nil {
		return err
	}
	if closeCache != nil {
		defer closeCache()
	}

	validation := oasloc.DefaultValidationRules()
	validation.RequireTags = cfg.Validation.RequireTags
	validation.RequireExamples = cfg.Validation.RequireExamples
	validation.RequireParameterDescriptions = cfg.Validation.RequireParameterDescriptions
	if len(cfg.Validation.RequiredResponseCodes) > 0 {
		validation.RequiredResponseCodes = cfg.Validation.RequiredResponseCodes
	}

	runner := &oasloc.Runner{
		Source:     source,
		Locales:    locales,
		Loader:     &fileLocaleLoader{dictDir: cfg.DictionaryDir, rulesDir: cfg.RulesDir},
		Cache:      resultCache,
		Validation: validation,
		Normalize: oasloc.NormalizeOptions{
			SortPaths:           cfg.Normalize.SortPaths,
			SortTags:            cfg.Normalize.SortTags,
			RemoveUnimplemented: cfg.Normalize.RemoveUnimplemented,
		},
		Writer: &oasloc.Writer{
			Dir:      cfg.OutputDir,
			BaseName: cfg.BaseName,
			Formats:  cfg.Formats,
		},
		Backup:      !*noBackup,
		Concurrency: cfg.Concurrency,
	}
	if cfg.KeyPrefix != "" {
		runner.TransformerOptions = append(runner.TransformerOptions, oasloc.WithKeyPrefix(cfg.KeyPrefix))
	}

	if !*quiet {
		fmt.Fprintf(stderr, "Localizing %s for %s...\n", cfg.Input, strings.Join(locales, ", "))
	}

	start := time.Now()
	summary, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !*quiet {
		printSummary(stderr, summary, elapsed)
	}

	if failed := summary.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d locale(s) failed", len(failed))
	}
	if *strict && (summary.TotalViolations() > 0 || summary.TotalUnresolved() > 0) {
		return fmt.Errorf("strict mode: %d violation(s), %d unresolved key(s)",
			summary.TotalViolations(), summary.TotalUnresolved())
	}
	return nil
}

// buildCache picks the shared result cache: Redis when configured,
// in-memory otherwise, none when the TTL is zero.
func buildCache(cfg *Config) (oasloc.ResultCache, func() error, error) {
	if cfg.CacheTTL == 0 {
		return nil, nil, nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: cfg.RedisURL, TTL: cfg.CacheTTL})
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	}
	return cache.NewMemoryCache(cfg.CacheTTL), nil, nil
}

func printSummary(stderr io.Writer, summary *oasloc.RunSummary, elapsed time.Duration) {
	fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
	if summary.BackupPath != "" {
		fmt.Fprintf(stderr, "  Backup:      %s\n", summary.BackupPath)
	}
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "  %-8s FAILED: %v\n", r.Locale, r.Err)
			continue
		}
		fmt.Fprintf(stderr, "  %-8s translated %d/%d (%.0f%%), %d violation(s)\n",
			r.Locale,
			r.Report.ResolvedKeys, r.Report.TotalKeys,
			r.Report.TranslationRate()*100,
			len(r.Report.Violations))
		for _, key := range r.Report.UnresolvedKeys {
			fmt.Fprintf(stderr, "           unresolved: %s\n", key)
		}
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
