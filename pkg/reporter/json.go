package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/analysis"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/runner"
)

// JSONOutput is the document written by the json format. Every analyzed
// file appears in Files, in run order, even when it has no diagnostics.
type JSONOutput struct {
	Version    string                      `json:"version"`
	Files      []JSONFileResult            `json:"files"`
	Summary    JSONSummary                 `json:"summary"`
	ByRule     []analysis.RuleAnalysis     `json:"byRule,omitempty"`
	ByCategory []analysis.CategoryAnalysis `json:"byCategory,omitempty"`
	Cancelled  bool                        `json:"cancelled,omitempty"`
}

// JSONFileResult is one file's diagnostics plus its fault, cache and read state.
type JSONFileResult struct {
	Path        string                     `json:"path"`
	Diagnostics []analysis.DiagnosticEntry `json:"diagnostics"`
	Faults      []JSONFault                `json:"faults,omitempty"`
	Cached      bool                       `json:"cached,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

// JSONFault is an analyzer callback that panicked on a node.
type JSONFault struct {
	Analyzer  string `json:"analyzer"`
	NodeKind  string `json:"nodeKind"`
	SpanStart int    `json:"spanStart"`
	SpanEnd   int    `json:"spanEnd"`
	Message   string `json:"message"`
}

// JSONSummary is analysis.Totals plus the non-zero issue counts keyed by
// severity.
type JSONSummary struct {
	analysis.Totals

	BySeverity map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.Issues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	categories := r.opts.categories()
	report := analysis.Analyze(result, analysis.Options{
		IncludeDiagnostics: true,
		IncludeFadeOuts:    r.opts.ShowFadeOut,
		IncludeByRule:      true,
		IncludeByCategory:  categories != nil,
		Categories:         categories,
		SortBy:             analysis.SortByAlpha,
		WorkingDir:         r.opts.WorkingDir,
	})

	output := &JSONOutput{
		Version:    analysis.ReportVersion,
		Files:      []JSONFileResult{},
		Summary:    JSONSummary{Totals: report.Totals, BySeverity: bySeverity(report.Totals)},
		ByRule:     report.ByRule,
		ByCategory: report.ByCategory,
	}
	if result == nil {
		return output
	}
	output.Cancelled = result.Cancelled

	byPath := make(map[string][]analysis.DiagnosticEntry)
	for _, entry := range report.Diagnostics {
		byPath[entry.FilePath] = append(byPath[entry.FilePath], entry)
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		entry := JSONFileResult{
			Path:        path,
			Diagnostics: byPath[path],
			Cached:      file.Cached,
		}
		if entry.Diagnostics == nil {
			entry.Diagnostics = []analysis.DiagnosticEntry{}
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		for _, fault := range file.Faults {
			entry.Faults = append(entry.Faults, JSONFault{
				Analyzer:  fault.Analyzer,
				NodeKind:  fault.Kind.String(),
				SpanStart: fault.Span.Start,
				SpanEnd:   fault.Span.End,
				Message:   fmt.Sprint(fault.Value),
			})
		}
		output.Files = append(output.Files, entry)
	}
	return output
}

func bySeverity(totals analysis.Totals) map[string]int {
	counts := make(map[string]int)
	for sev, n := range map[config.Severity]int{
		config.SeverityError:   totals.Errors,
		config.SeverityWarning: totals.Warnings,
		config.SeverityInfo:    totals.Infos,
		config.SeverityHidden:  totals.Hidden,
	} {
		if n > 0 {
			counts[string(sev)] = n
		}
	}
	return counts
}
