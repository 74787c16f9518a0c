package oasloc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// backupTimeLayout names backup files down to the second.
const backupTimeLayout = "20060102_150405"

// Writer persists per-locale output documents, translation reports and
// the one-per-run backup snapshot. The serializers preserve mapping
// order; the post-processor's sort, when enabled, is the only reordering.
type Writer struct {
	// Dir is the output directory. Created on first write.
	Dir string

	// BaseName is the output file stem (default "openapi").
	BaseName string

	// Formats lists the output serializations, "yaml" and/or "json"
	// (default: yaml only).
	Formats []string
}

func (w *Writer) baseName() string {
	if w.BaseName == "" {
		return "openapi"
	}
	return w.BaseName
}

func (w *Writer) formats() []string {
	if len(w.Formats) == 0 {
		return []string{"yaml"}
	}
	return w.Formats
}

// WriteDocument serializes the normalized document for a locale in each
// configured format and returns the written paths. A failure is fatal
// for this locale's output only.
func (w *Writer) WriteDocument(locale string, doc *Node) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, &WriteError{Path: w.Dir, Cause: err}
	}

	var paths []string
	for _, format := range w.formats() {
		var (
			data []byte
			err  error
		)
		switch format {
		case "yaml", "yml":
			data, err = EncodeYAML(doc)
		case "json":
			data, err = EncodeJSON(doc)
		default:
			return nil, &WriteError{Path: w.Dir, Cause: fmt.Errorf("unsupported output format %q", format)}
		}
		if err != nil {
			return nil, err
		}

		path := filepath.Join(w.Dir, fmt.Sprintf("%s_%s.%s", w.baseName(), locale, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, &WriteError{Path: path, Cause: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteReport persists a locale's translation report as indented JSON.
func (w *Writer) WriteReport(report *TranslationReport) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", &WriteError{Path: w.Dir, Cause: err}
	}

	payload := struct {
		*TranslationReport
		TranslationRate float64 `json:"translation_rate"`
	}{report, report.TranslationRate()}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", &WriteError{Path: w.Dir, Cause: err}
	}
	data = append(data, '\n')

	path := filepath.Join(w.Dir, fmt.Sprintf("translation_report_%s.json", report.Locale))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}
	return path, nil
}

// WriteBackup snapshots the original document under <Dir>/backup with a
// timestamped name. The runner calls this exactly once per run, before
// any locale's transformation begins; the backup is shared by all
// locales.
func (w *Writer) WriteBackup(doc *Node, now time.Time) (string, error) {
	dir := filepath.Join(w.Dir, "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Path: dir, Cause: err}
	}

	data, err := EncodeYAML(doc)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_original_%s.yaml", w.baseName(), now.Format(backupTimeLayout)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}
	return path, nil
}
