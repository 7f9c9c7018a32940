package rules

import (
	"github.com/yaklabco/sharplint/pkg/classify"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// RemoveBracesAnalyzer reports blocks around a single embedded statement.
// The braces are reported again with the fade-out descriptor so editors can
// dim them.
type RemoveBracesAnalyzer struct {
	lint.BaseAnalyzer
}

// NewRemoveBracesAnalyzer creates the remove-braces analyzer.
func NewRemoveBracesAnalyzer() *RemoveBracesAnalyzer {
	return &RemoveBracesAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("remove-braces", RemoveBraces),
	}
}

// Initialize registers the block action.
func (a *RemoveBracesAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.Block)
}

func (a *RemoveBracesAnalyzer) analyze(nc *lint.NodeContext) {
	block := nc.Node

	owner := block.Parent()
	if owner == nil || !owner.IsKind(syntax.IfStatement, syntax.ElseClause, syntax.WhileStatement) {
		return
	}
	if owner.Statement() != block {
		return
	}

	stmts := block.Statements()
	if len(stmts) != 1 {
		return
	}
	stmt := stmts[0]
	if !isRemovableBraceContent(owner, stmt) {
		return
	}

	open := block.ChildToken(syntax.OpenBraceToken)
	closing := block.ChildToken(syntax.CloseBraceToken)
	if open == nil || closing == nil || open.IsMissing() || closing.IsMissing() {
		return
	}

	// Anything other than whitespace between the braces and the statement
	// would be lost with the braces.
	if !classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(block, syntax.NewSpan(open.Span().End, stmt.Span().Start)) ||
		!classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(block, syntax.NewSpan(stmt.Span().End, closing.Span().Start)) {
		return
	}
	if classify.SpanContainsDirectives(block, block.Span()) {
		return
	}
	if !classify.IsSingleLine(stmt, true) {
		return
	}

	nc.ReportToken(RemoveBraces, open, keywordText(owner))
	nc.ReportBraces(RemoveBraces.FadeOut(), block)
}

func isRemovableBraceContent(owner, stmt *syntax.Node) bool {
	switch stmt.Kind {
	case syntax.LocalDeclarationStatement, syntax.EmptyStatement, syntax.IncompleteStatement, syntax.Block:
		return false
	case syntax.IfStatement:
		// if (a) { if (b) x(); } else y(); would bind the else to the inner if.
		return owner.Kind != syntax.IfStatement || owner.Else() == nil
	default:
		return true
	}
}
