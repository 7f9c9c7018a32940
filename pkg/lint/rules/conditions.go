package rules

import (
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// ConditionAlwaysTrueAnalyzer reports `if` and `while` statements whose
// condition is the literal `true`, with or without extra parentheses.
//
// `while (true)` is the usual way to write an endless loop, so loops are only
// checked when the "loops" option is set.
type ConditionAlwaysTrueAnalyzer struct {
	lint.BaseAnalyzer
}

// NewConditionAlwaysTrueAnalyzer creates the condition-always-true analyzer.
func NewConditionAlwaysTrueAnalyzer() *ConditionAlwaysTrueAnalyzer {
	return &ConditionAlwaysTrueAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("condition-always-true", ConditionAlwaysTrue),
	}
}

// Initialize registers the statement action.
func (a *ConditionAlwaysTrueAnalyzer) Initialize(r *lint.Registrar) {
	r.EnableConcurrentExecution()
	r.RegisterNodeAction(a.analyze, syntax.IfStatement, syntax.WhileStatement)
}

func (a *ConditionAlwaysTrueAnalyzer) analyze(nc *lint.NodeContext) {
	stmt := nc.Node
	if stmt.Kind == syntax.WhileStatement && !nc.OptionBool("loops", false) {
		return
	}

	cond := stmt.Condition()
	if cond == nil || unparenthesize(cond).Kind != syntax.TrueLiteralExpression {
		return
	}

	nc.ReportNode(ConditionAlwaysTrue, cond, keywordText(stmt))
}

// unparenthesize strips any number of enclosing parentheses.
func unparenthesize(expr *syntax.Node) *syntax.Node {
	for expr.Kind == syntax.ParenthesizedExpression {
		inner := expr.Expression()
		if inner == nil {
			break
		}
		expr = inner
	}
	return expr
}

// keywordText returns the leading keyword of a statement or clause, e.g. "if".
func keywordText(node *syntax.Node) string {
	if tok := node.FirstToken(); tok != nil {
		return tok.Text()
	}
	return node.Kind.String()
}
