package reporter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures every reporter. Fields a format has no use for are
// ignored by it.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line and a caret under each text diagnostic.
	ShowContext bool
	ShowSummary bool

	// ShowFadeOut includes fade-out records in text, table and JSON output.
	// SARIF always carries them, tagged "unnecessary".
	ShowFadeOut bool

	// Text output only.
	GroupByFile bool

	// JSON and SARIF output only.
	Compact bool

	// Table output only: one table per file.
	PerFile bool

	RuleFormat   config.RuleFormat
	SummaryOrder SummaryOrder

	// WorkingDir relativizes displayed paths. Empty keeps them absolute.
	WorkingDir string

	// Descriptors supply rule metadata (SARIF rules, summary categories).
	// Without them SARIF derives rules from the reported records.
	Descriptors []*lint.Descriptor

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions returns the options of a plain "sharplint lint" run.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: SummaryOrderRules,
	}
}

// displayPath returns path relative to WorkingDir when possible.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// visible reports whether rec is shown by text, table and JSON output.
func (o Options) visible(rec *lint.Record) bool {
	return !rec.FadeOut || o.ShowFadeOut
}

// categories maps descriptor IDs to their categories.
func (o Options) categories() map[string]string {
	if len(o.Descriptors) == 0 {
		return nil
	}
	out := make(map[string]string, len(o.Descriptors))
	for _, desc := range o.Descriptors {
		out[desc.ID] = desc.Category
	}
	return out
}
