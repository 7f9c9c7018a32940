package rules

import (
	"github.com/yaklabco/sharplint/pkg/classify"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// EmbeddedStatementOnSeparateLineAnalyzer reports an embedded statement that
// starts on the same line as the end of its `if (...)`, `while (...)` or
// `else` header. Blocks, `else if` chains and empty statements are exempt.
type EmbeddedStatementOnSeparateLineAnalyzer struct {
	lint.BaseAnalyzer
}

// NewEmbeddedStatementOnSeparateLineAnalyzer creates the embedded-statement-on-separate-line analyzer.
func NewEmbeddedStatementOnSeparateLineAnalyzer() *EmbeddedStatementOnSeparateLineAnalyzer {
	return &EmbeddedStatementOnSeparateLineAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("embedded-statement-on-separate-line", EmbeddedStatementOnSeparateLine),
	}
}

// Initialize registers the statement actions.
func (a *EmbeddedStatementOnSeparateLineAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.IfStatement, syntax.ElseClause, syntax.WhileStatement)
}

func (a *EmbeddedStatementOnSeparateLineAnalyzer) analyze(nc *lint.NodeContext) {
	owner := nc.Node

	stmt := owner.Statement()
	if stmt == nil || stmt.IsKind(syntax.Block, syntax.EmptyStatement) {
		return
	}
	if owner.Kind == syntax.ElseClause && stmt.Kind == syntax.IfStatement {
		return
	}

	var header *syntax.Token
	if owner.Kind == syntax.ElseClause {
		header = owner.ChildToken(syntax.ElseKeyword)
	} else {
		header = owner.ChildToken(syntax.CloseParenToken)
	}
	if header == nil {
		return
	}

	// TokensOnSameLine is false for missing tokens, so recovered statements are skipped.
	if classify.TokensOnSameLine(header, stmt.FirstToken()) {
		nc.ReportNode(EmbeddedStatementOnSeparateLine, stmt, keywordText(owner))
	}
}
