// Package reporter writes analysis results as text, tables, JSON, SARIF or
// aggregate summaries.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/analysis"
	"github.com/yaklabco/sharplint/pkg/runner"
)

// Reporter writes the results of one run and returns the number of primary
// findings. Fade-outs never count.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an aggregated report. Formats that need per-rule or
// per-file totals are Renderers wrapped by analyzed.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

var _ Reporter = (*analyzed)(nil)

// analyzed aggregates a runner.Result with analysis.Analyze before
// rendering it.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

func newAnalyzed(renderer Renderer, opts Options) *analyzed {
	categories := opts.categories()
	return &analyzed{
		renderer: renderer,
		opts: analysis.Options{
			IncludeByFile:     true,
			IncludeByRule:     true,
			IncludeByCategory: categories != nil,
			Categories:        categories,
			SortBy:            analysis.SortByCount,
			SortDesc:          true,
			WorkingDir:        opts.WorkingDir,
		},
	}
}

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// New returns the Reporter for opts.Format; the empty format is text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case "", FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return newAnalyzed(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
