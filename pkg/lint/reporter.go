package lint

import (
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Reporter is the single entry point for emitting diagnostics from an action.
//
// Diagnostics are buffered per invocation and committed by the dispatcher only
// when the action returns normally. Message arguments are stored, not
// formatted; formatting happens when a consumer calls Diagnostic.Message.
// The reporter neither deduplicates nor caps what an action reports.
//
// Invalid locations panic with *PreconditionError. The dispatcher's fault
// boundary turns that into a Fault for the offending action only.
type Reporter struct {
	tree        *syntax.Tree
	trigger     *syntax.Node
	severity    SeverityResolver
	diagnostics []Diagnostic
}

// Report appends one diagnostic at location.
//
// The location must lie in the tree being walked. A fade-out descriptor's
// location must also lie within the full span of the node that triggered the
// action. Diagnostics for descriptors disabled by configuration are dropped.
func (r *Reporter) Report(descriptor *Descriptor, location Location, args ...any) {
	if descriptor == nil {
		precondition("Report", "descriptor is nil")
	}
	if location.Tree != r.tree {
		precondition("Report", "%s: location is not in the tree being analyzed", descriptor.ID)
	}
	if span := location.Span; span.Start < 0 || span.Start > span.End || !r.tree.FullSpan().ContainsSpan(span) {
		precondition("Report", "%s: span %s is outside the source text", descriptor.ID, span)
	}
	if descriptor.IsFadeOut() && r.trigger != nil && !r.trigger.FullSpan().ContainsSpan(location.Span) {
		precondition("Report", "%s: fade-out span %s is outside triggering %s %s",
			descriptor.ID, location.Span, r.trigger.Kind, r.trigger.FullSpan())
	}

	severity, keep := r.resolve(descriptor)
	if !keep {
		return
	}

	r.diagnostics = append(r.diagnostics, Diagnostic{
		Descriptor: descriptor,
		Location:   location,
		Args:       args,
		Severity:   severity,
	})
}

func (r *Reporter) resolve(descriptor *Descriptor) (config.Severity, bool) {
	resolver := r.severity
	if resolver == nil {
		resolver = DefaultSeverity
	}
	if descriptor.IsFadeOut() {
		// Fade-outs follow their primary descriptor's enablement but stay hidden.
		if _, keep := resolver(descriptor.Primary()); !keep {
			return "", false
		}
		return descriptor.DefaultSeverity, true
	}
	return resolver(descriptor)
}

// ReportNode reports at node's span.
func (r *Reporter) ReportNode(descriptor *Descriptor, node *syntax.Node, args ...any) {
	if node == nil {
		precondition("ReportNode", "node is nil")
	}
	r.Report(descriptor, NodeLocation(node), args...)
}

// ReportToken reports at token's span. Missing tokens have no source text to
// point at and are skipped silently.
func (r *Reporter) ReportToken(descriptor *Descriptor, token *syntax.Token, args ...any) {
	if token == nil {
		precondition("ReportToken", "token is nil")
	}
	if token.IsMissing() {
		return
	}
	r.Report(descriptor, TokenLocation(token), args...)
}

// ReportTokens reports each token in turn.
func (r *Reporter) ReportTokens(descriptor *Descriptor, tokens ...*syntax.Token) {
	for _, token := range tokens {
		r.ReportToken(descriptor, token)
	}
}

// ReportSpan reports at an explicit span of the tree being walked.
func (r *Reporter) ReportSpan(descriptor *Descriptor, span syntax.TextSpan, args ...any) {
	r.Report(descriptor, Location{Tree: r.tree, Span: span}, args...)
}

// ReportBraces reports the open and close brace of block, typically with a
// fade-out descriptor.
func (r *Reporter) ReportBraces(descriptor *Descriptor, block *syntax.Node, args ...any) {
	if block == nil || block.Kind != syntax.Block {
		precondition("ReportBraces", "node is not a block")
	}
	r.reportPair(descriptor, block, syntax.OpenBraceToken, syntax.CloseBraceToken, args)
}

// ReportParentheses reports the open and close parenthesis owned by node,
// typically with a fade-out descriptor.
func (r *Reporter) ReportParentheses(descriptor *Descriptor, node *syntax.Node, args ...any) {
	if node == nil || node.ChildToken(syntax.OpenParenToken) == nil {
		precondition("ReportParentheses", "node has no parentheses")
	}
	r.reportPair(descriptor, node, syntax.OpenParenToken, syntax.CloseParenToken, args)
}

func (r *Reporter) reportPair(descriptor *Descriptor, node *syntax.Node, open, closing syntax.Kind, args []any) {
	if tok := node.ChildToken(open); tok != nil {
		r.ReportToken(descriptor, tok, args...)
	}
	if tok := node.ChildToken(closing); tok != nil {
		r.ReportToken(descriptor, tok, args...)
	}
}

// Reported returns the diagnostics buffered so far by this invocation.
func (r *Reporter) Reported() []Diagnostic {
	return r.diagnostics
}
