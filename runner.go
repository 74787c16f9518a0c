package oasloc

import (
	"context"
	"errors"
	"time"
)

// LocaleResult is the outcome of one locale's pipeline.
type LocaleResult struct {
	Locale  string
	Report  *TranslationReport
	Outputs []string // written artifact paths, empty when Err is set
	Err     error    // fatal for this locale only
}

// RunSummary aggregates a whole run.
type RunSummary struct {
	BackupPath string
	Results    []LocaleResult
}

// Failed returns the locales whose pipeline fatally failed.
func (s *RunSummary) Failed() []LocaleResult {
	var failed []LocaleResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// TotalViolations counts violations across all successful locales.
func (s *RunSummary) TotalViolations() int {
	n := 0
	for _, r := range s.Results {
		if r.Report != nil {
			n += len(r.Report.Violations)
		}
	}
	return n
}

// TotalUnresolved counts distinct unresolved keys across all locales.
func (s *RunSummary) TotalUnresolved() int {
	n := 0
	for _, r := range s.Results {
		if r.Report != nil {
			n += len(r.Report.UnresolvedKeys)
		}
	}
	return n
}

// Runner orchestrates a full run: one backup of the source document,
// then the transform → validate → normalize → write pipeline per locale.
// Locales are independent; a fatal locale is recorded and skipped while
// its siblings complete.
type Runner struct {
	// Source is the parsed original document. It is never mutated:
	// every locale transforms its own deep copy.
	Source *Node

	// Locales to process, in reporting order.
	Locales []string

	// Loader provides each locale's dictionary and rule engine.
	Loader LocaleLoader

	// Cache, when set, is shared by all locales; keys embed the locale.
	Cache ResultCache

	Validation ValidationRules
	Normalize  NormalizeOptions

	// Writer persists artifacts. Required.
	Writer *Writer

	// Backup controls whether the original snapshot is written. On by
	// default in the CLI; disabled only explicitly.
	Backup bool

	// Concurrency is the number of locales processed at once.
	// Values below 2 mean sequential processing.
	Concurrency int

	// TransformerOptions are applied to every locale's transformer,
	// e.g. WithKeyPrefix or WithInfoDefaults.
	TransformerOptions []TransformerOption
}

// Run executes the pipeline for every configured locale and returns the
// aggregate summary. Only run-level problems (no source, backup write
// failure) are returned as errors; per-locale failures live in the
// summary.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	if r.Source == nil {
		return nil, errors.New("oasloc: runner has no source document")
	}
	if r.Loader == nil {
		return nil, errors.New("oasloc: runner has no locale loader")
	}
	if r.Writer == nil {
		return nil, errors.New("oasloc: runner has no writer")
	}

	summary := &RunSummary{}

	// The backup is taken once, before any locale's work begins, so
	// every locale shares the same pre-transform snapshot.
	if r.Backup {
		path, err := r.Writer.WriteBackup(r.Source, time.Now())
		if err != nil {
			return nil, err
		}
		summary.BackupPath = path
	}

	summary.Results = runParallel(ctx, r.Locales, r.Concurrency, r.processLocale)
	return summary, nil
}

func (r *Runner) processLocale(ctx context.Context, locale string) LocaleResult {
	if err := ctx.Err(); err != nil {
		return LocaleResult{Locale: locale, Err: err}
	}

	dict, engine, err := r.Loader.LoadLocale(locale)
	if err != nil {
		return LocaleResult{Locale: locale, Err: &LocaleError{Locale: locale, Message: "loading locale", Cause: err}}
	}

	opts := r.TransformerOptions
	if r.Cache != nil {
		opts = append(opts[:len(opts):len(opts)], WithResultCache(r.Cache))
	}
	transformer := NewTransformer(locale, dict, engine, opts...)

	out, report := transformer.Transform(r.Source)
	report.Violations = Validate(out, r.Validation)
	normalized := Normalize(out, r.Normalize)

	outputs, err := r.Writer.WriteDocument(locale, normalized)
	if err != nil {
		// The computed document is discarded; the failure is fatal for
		// this locale's output step only.
		return LocaleResult{Locale: locale, Report: report, Err: err}
	}

	reportPath, err := r.Writer.WriteReport(report)
	if err != nil {
		return LocaleResult{Locale: locale, Report: report, Err: err}
	}

	return LocaleResult{
		Locale:  locale,
		Report:  report,
		Outputs: append(outputs, reportPath),
	}
}
