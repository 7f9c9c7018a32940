package rules

import (
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// SimplifyBooleanComparisonAnalyzer reports `==` and `!=` comparisons of a
// bool expression with a boolean literal. The operand's type comes from the
// semantic model; comparisons with an operand of unknown type are skipped
// because `bool?` compared with `true` is not redundant.
type SimplifyBooleanComparisonAnalyzer struct {
	lint.BaseAnalyzer
}

// NewSimplifyBooleanComparisonAnalyzer creates the simplify-boolean-comparison analyzer.
func NewSimplifyBooleanComparisonAnalyzer() *SimplifyBooleanComparisonAnalyzer {
	return &SimplifyBooleanComparisonAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("simplify-boolean-comparison", SimplifyBooleanComparison),
	}
}

// Initialize registers the equality actions.
func (a *SimplifyBooleanComparisonAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.EqualsExpression, syntax.NotEqualsExpression)
}

func (a *SimplifyBooleanComparisonAnalyzer) analyze(nc *lint.NodeContext) {
	node := nc.Node
	left, right := node.Left(), node.Right()
	op := node.OperatorToken()
	if left == nil || right == nil || op == nil {
		return
	}

	literal, operand := right, left
	if !isBooleanLiteral(literal) {
		literal, operand = left, right
	}
	if !isBooleanLiteral(literal) || isBooleanLiteral(operand) {
		return
	}

	typ := nc.Semantic.TypeOf(operand)
	if typ == nil || typ.Name() != "bool" {
		return
	}

	nc.ReportNode(SimplifyBooleanComparison, node, literal.Text())

	// Fade the operator and the literal: "x == true" leaves "x".
	var faded syntax.TextSpan
	if literal == right {
		faded = syntax.NewSpan(op.Span().Start, literal.Span().End)
	} else {
		faded = syntax.NewSpan(literal.Span().Start, op.Span().End)
	}
	nc.ReportSpan(SimplifyBooleanComparison.FadeOut(), faded)
}

func isBooleanLiteral(node *syntax.Node) bool {
	return node.Kind == syntax.TrueLiteralExpression || node.Kind == syntax.FalseLiteralExpression
}
