package oasloc

import "fmt"

// LocaleError indicates that a locale's pipeline could not run at all,
// typically because its dictionary or rule table failed to load.
// Other locales are unaffected.
type LocaleError struct {
	Locale  string
	Message string
	Cause   error
}

func (e *LocaleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("locale %s: %s: %v", e.Locale, e.Message, e.Cause)
	}
	return fmt.Sprintf("locale %s: %s", e.Locale, e.Message)
}

func (e *LocaleError) Unwrap() error {
	return e.Cause
}

// RuleCompileError indicates an invalid regular expression in a rule table.
// It is fatal for the locale that owns the table.
type RuleCompileError struct {
	Category string // rule category, e.g. "redundant_phrases"
	Pattern  string
	Cause    error
}

func (e *RuleCompileError) Error() string {
	return fmt.Sprintf("rule compile error (%s): %q: %v", e.Category, e.Pattern, e.Cause)
}

func (e *RuleCompileError) Unwrap() error {
	return e.Cause
}

// DocumentError indicates the source document could not be parsed.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document error: %s", e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// WriteError indicates an output artifact could not be written.
// It is fatal for that locale's output step only; already-computed results
// for the locale are discarded and sibling locales proceed.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
