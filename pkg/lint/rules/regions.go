package rules

import (
	"strings"

	"github.com/yaklabco/sharplint/pkg/classify"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// RemoveEmptyRegionAnalyzer reports `#region` / `#endregion` pairs with only
// whitespace between them. Directives are trivia, so the analyzer scans the
// whole file once from the compilation unit.
type RemoveEmptyRegionAnalyzer struct {
	lint.BaseAnalyzer
}

// NewRemoveEmptyRegionAnalyzer creates the remove-empty-region analyzer.
func NewRemoveEmptyRegionAnalyzer() *RemoveEmptyRegionAnalyzer {
	return &RemoveEmptyRegionAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("remove-empty-region", RemoveEmptyRegion),
	}
}

// Initialize registers the compilation-unit action.
func (a *RemoveEmptyRegionAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.CompilationUnit)
}

func (a *RemoveEmptyRegionAnalyzer) analyze(nc *lint.NodeContext) {
	root := nc.Node

	var open []syntax.Trivia
	for trivia := range root.DescendantTrivia(root.FullSpan()) {
		switch trivia.Kind {
		case syntax.RegionDirectiveTrivia:
			open = append(open, trivia)
		case syntax.EndRegionDirectiveTrivia:
			if len(open) == 0 {
				continue
			}
			region := open[len(open)-1]
			open = open[:len(open)-1]

			if nc.Cancelled() {
				return
			}
			if !classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(root, syntax.NewSpan(region.Span.End, trivia.Span.Start)) {
				continue
			}

			nc.ReportSpan(RemoveEmptyRegion, region.Span, regionName(region))
			nc.ReportSpan(RemoveEmptyRegion.FadeOut(), syntax.NewSpan(region.Span.Start, trivia.Span.End))
		}
	}
}

func regionName(region syntax.Trivia) string {
	text := strings.TrimSpace(region.Text())
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimPrefix(text, "region"))
}
