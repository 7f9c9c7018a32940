package rules

import (
	"github.com/yaklabco/sharplint/pkg/classify"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// RemoveRedundantParenthesesAnalyzer reports parentheses that cannot change
// evaluation order: around a primary expression or another parenthesized
// expression, and around a whole argument, initializer, return value,
// condition or assignment source.
type RemoveRedundantParenthesesAnalyzer struct {
	lint.BaseAnalyzer
}

// NewRemoveRedundantParenthesesAnalyzer creates the remove-redundant-parentheses analyzer.
func NewRemoveRedundantParenthesesAnalyzer() *RemoveRedundantParenthesesAnalyzer {
	return &RemoveRedundantParenthesesAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("remove-redundant-parentheses", RemoveRedundantParentheses),
	}
}

// Initialize registers the parenthesized-expression action.
func (a *RemoveRedundantParenthesesAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.ParenthesizedExpression)
}

func (a *RemoveRedundantParenthesesAnalyzer) analyze(nc *lint.NodeContext) {
	node := nc.Node

	inner := node.Expression()
	if inner == nil || inner.FirstToken().IsMissing() || !isRedundant(node, inner) {
		return
	}

	open := node.ChildToken(syntax.OpenParenToken)
	closing := node.ChildToken(syntax.CloseParenToken)
	if open == nil || closing == nil || open.IsMissing() || closing.IsMissing() {
		return
	}

	interior := syntax.NewSpan(open.Span().End, closing.Span().Start)
	if classify.SpanContainsDirectives(node, interior) ||
		!classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(node, syntax.NewSpan(open.Span().End, inner.Span().Start)) ||
		!classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(node, syntax.NewSpan(inner.Span().End, closing.Span().Start)) {
		return
	}

	nc.ReportToken(RemoveRedundantParentheses, open)
	nc.ReportParentheses(RemoveRedundantParentheses.FadeOut(), node)
}

func isRedundant(node, inner *syntax.Node) bool {
	switch inner.Kind {
	case syntax.IdentifierName, syntax.ParenthesizedExpression,
		syntax.InvocationExpression, syntax.SimpleMemberAccessExpression:
		return true
	}
	if inner.Kind.IsLiteral() {
		return true
	}

	parent := node.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind {
	case syntax.Argument, syntax.ReturnStatement, syntax.LocalDeclarationStatement:
		return true
	case syntax.IfStatement, syntax.WhileStatement:
		// The statement's own parentheses are tokens; this is a second pair.
		return parent.Condition() == node
	default:
		return parent.Kind.IsAssignment() && parent.Right() == node
	}
}
