package rules

import (
	"github.com/yaklabco/sharplint/pkg/classify"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// RemoveEmptyStatementAnalyzer reports stray semicolons.
type RemoveEmptyStatementAnalyzer struct {
	lint.BaseAnalyzer
}

// NewRemoveEmptyStatementAnalyzer creates the remove-empty-statement analyzer.
func NewRemoveEmptyStatementAnalyzer() *RemoveEmptyStatementAnalyzer {
	return &RemoveEmptyStatementAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("remove-empty-statement", RemoveEmptyStatement),
	}
}

// Initialize registers the empty-statement action.
func (a *RemoveEmptyStatementAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.EmptyStatement)
}

func (a *RemoveEmptyStatementAnalyzer) analyze(nc *lint.NodeContext) {
	parent := nc.Node.Parent()
	if parent == nil || !parent.IsKind(syntax.Block, syntax.CompilationUnit) {
		return
	}

	if semicolon := nc.Node.ChildToken(syntax.SemicolonToken); semicolon != nil {
		nc.ReportToken(RemoveEmptyStatement, semicolon)
	}
}

// RemoveEmptyElseClauseAnalyzer reports `else {}`.
type RemoveEmptyElseClauseAnalyzer struct {
	lint.BaseAnalyzer
}

// NewRemoveEmptyElseClauseAnalyzer creates the remove-empty-else-clause analyzer.
func NewRemoveEmptyElseClauseAnalyzer() *RemoveEmptyElseClauseAnalyzer {
	return &RemoveEmptyElseClauseAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("remove-empty-else-clause", RemoveEmptyElseClause),
	}
}

// Initialize registers the else-clause action.
func (a *RemoveEmptyElseClauseAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.ElseClause)
}

func (a *RemoveEmptyElseClauseAnalyzer) analyze(nc *lint.NodeContext) {
	clause := nc.Node

	block := clause.Statement()
	if block == nil || block.Kind != syntax.Block || len(block.Statements()) != 0 {
		return
	}

	open := block.ChildToken(syntax.OpenBraceToken)
	closing := block.ChildToken(syntax.CloseBraceToken)
	if open == nil || closing == nil || open.IsMissing() || closing.IsMissing() {
		return
	}

	if !classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(block, syntax.NewSpan(open.Span().End, closing.Span().Start)) {
		return
	}
	if classify.SpanContainsDirectives(clause, clause.FullSpan()) {
		return
	}

	nc.ReportNode(RemoveEmptyElseClause, clause)
	nc.ReportNode(RemoveEmptyElseClause.FadeOut(), clause)
}
