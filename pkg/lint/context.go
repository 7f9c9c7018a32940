package lint

import (
	"context"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// NodeContext is the per-invocation record handed to an Action: the visited
// node, its tree, the semantic model and the cancellation signal. Reporting
// methods come from the embedded Reporter.
//
// NodeContext stores context.Context as a field (Ctx) rather than taking it as
// a method parameter. It is a short-lived parameter object created per action
// invocation and discarded after, which keeps Action a single-argument func.
type NodeContext struct {
	Reporter

	// Ctx is the run's context for cancellation.
	Ctx context.Context

	// Node is the node being visited.
	Node *syntax.Node

	// Tree is the tree being walked.
	Tree *syntax.Tree

	// Semantic answers symbol and type questions about Tree.
	Semantic SemanticModel

	// Analyzer is the name of the analyzer that registered the action.
	Analyzer string

	options map[string]any
	filter  GeneratedCodeFilter
}

// Cancelled returns true if the run has been cancelled. Actions doing
// expensive sub-scans should check it and return early.
func (nc *NodeContext) Cancelled() bool {
	select {
	case <-nc.Ctx.Done():
		return true
	default:
		return false
	}
}

// IsGeneratedCode reports whether the tree is generated code.
// The answer is memoized per tree by the session's filter.
func (nc *NodeContext) IsGeneratedCode() bool {
	if nc.filter == nil {
		return false
	}
	return nc.filter.IsGeneratedCode(nc.Tree)
}

// Option returns a rule-specific option value, or the default if not set.
func (nc *NodeContext) Option(key string, defaultValue any) any {
	if nc.options == nil {
		return defaultValue
	}
	if v, ok := nc.options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (nc *NodeContext) OptionBool(key string, defaultValue bool) bool {
	v := nc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}
