package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/runner"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// TextReporter writes one line per diagnostic, optionally grouped under a
// header per file and followed by the offending source line.
type TextReporter struct {
	terminal
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{terminal: newTerminal(opts)}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (issues int, err error) {
	defer r.flush(&err)

	if r.nothingToCheck(result) {
		return 0, nil
	}

	for i := range result.Files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return issues, fmt.Errorf("text report: %w", ctxErr)
		}
		issues += r.writeFile(&result.Files[i])
	}

	r.cancelled(result)
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return issues, nil
}

// writeFile returns the number of issues written for file.
func (r *TextReporter) writeFile(file *runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)
	if file.Error != nil {
		r.fileError(path, file.Error)
		return 0
	}

	var shown []*lint.Record
	issues := 0
	for i := range file.Records {
		if rec := &file.Records[i]; r.opts.visible(rec) {
			shown = append(shown, rec)
			if !rec.FadeOut {
				issues++
			}
		}
	}
	if len(shown) == 0 && len(file.Faults) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, issues))
	}

	source := r.sourceLines(file)
	for _, rec := range shown {
		fmt.Fprint(r.bw, r.styles.FormatRecord(rec, path, r.opts.ShowContext, source(rec.StartLine), r.opts.RuleFormat))
	}
	r.faults(path, file)

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return issues
}

// sourceLines returns a lookup for 1-based source lines, empty unless
// context output is on.
func (r *TextReporter) sourceLines(file *runner.FileOutcome) func(int) string {
	if !r.opts.ShowContext || file.Source == nil {
		return func(int) string { return "" }
	}
	text := syntax.NewSourceText(file.Source)
	return func(line int) string { return string(text.Line(line)) }
}
