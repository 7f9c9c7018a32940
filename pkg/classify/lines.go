package classify

import (
	"fmt"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// IsSingleLineSpan reports whether span starts and ends on the same line of tree.
func IsSingleLineSpan(tree *syntax.Tree, span syntax.TextSpan) bool {
	if tree == nil || tree.Text == nil {
		return false
	}
	return tree.Text.LineIndex(span.Start) == tree.Text.LineIndex(span.End)
}

// IsMultiLineSpan reports whether span crosses at least one line ending of tree.
// For any span on a valid tree it is the exact complement of IsSingleLineSpan.
func IsMultiLineSpan(tree *syntax.Tree, span syntax.TextSpan) bool {
	if tree == nil || tree.Text == nil {
		return false
	}
	return !IsSingleLineSpan(tree, span)
}

// IsSingleLine reports whether node fits on one line. With
// includeExteriorTrivia the node's leading and trailing trivia are included,
// minus whitespace and line endings at the edges, so a trailing comment on the
// same line keeps a node single-line while a comment above it does not.
func IsSingleLine(node *syntax.Node, includeExteriorTrivia bool) bool {
	if node == nil || node.Tree() == nil {
		return false
	}
	return IsSingleLineSpan(node.Tree(), nodeSpan(node, includeExteriorTrivia))
}

// IsMultiLine is the complement of IsSingleLine for nodes attached to a tree.
func IsMultiLine(node *syntax.Node, includeExteriorTrivia bool) bool {
	if node == nil || node.Tree() == nil {
		return false
	}
	return IsMultiLineSpan(node.Tree(), nodeSpan(node, includeExteriorTrivia))
}

func nodeSpan(node *syntax.Node, includeExteriorTrivia bool) syntax.TextSpan {
	if includeExteriorTrivia {
		return TrimmedFullSpan(node)
	}
	return node.Span()
}

// TrimmedFullSpan returns node's full span with whitespace and end-of-line
// trivia removed from both edges. Comments and directives are kept.
func TrimmedFullSpan(node *syntax.Node) syntax.TextSpan {
	span := node.Span()

	if first := node.FirstToken(); first != nil {
		for _, tr := range first.LeadingTrivia() {
			if !IsWhitespaceOrEndOfLineTrivia(tr) {
				span.Start = min(span.Start, tr.Span.Start)
				break
			}
		}
	}

	if last := node.LastToken(); last != nil {
		trailing := last.TrailingTrivia()
		for i := len(trailing) - 1; i >= 0; i-- {
			if !IsWhitespaceOrEndOfLineTrivia(trailing[i]) {
				span.End = max(span.End, trailing[i].Span.End)
				break
			}
		}
	}

	return span
}

// GetSpanStartLine returns the 1-based line on which the token's span starts.
// It returns 0 for nil, missing or detached tokens.
func GetSpanStartLine(token *syntax.Token) int {
	tree, ok := lineSource(token)
	if !ok {
		return 0
	}
	return tree.Text.LineIndex(token.Span().Start) + 1
}

// GetSpanEndLine returns the 1-based line on which the token's span ends.
// It returns 0 for nil, missing or detached tokens.
func GetSpanEndLine(token *syntax.Token) int {
	tree, ok := lineSource(token)
	if !ok {
		return 0
	}
	return tree.Text.LineIndex(token.Span().End) + 1
}

// GetFullSpanStartLine returns the 1-based line on which the token's full span starts.
func GetFullSpanStartLine(token *syntax.Token) int {
	tree, ok := lineSource(token)
	if !ok {
		return 0
	}
	return tree.Text.LineIndex(token.FullSpan().Start) + 1
}

// GetFullSpanEndLine returns the 1-based line on which the token's full span ends.
func GetFullSpanEndLine(token *syntax.Token) int {
	tree, ok := lineSource(token)
	if !ok {
		return 0
	}
	return tree.Text.LineIndex(token.FullSpan().End) + 1
}

// TokensOnSameLine reports whether second starts on the line where first ends.
// Missing tokens are never on the same line as anything.
func TokensOnSameLine(first, second *syntax.Token) bool {
	end := GetSpanEndLine(first)
	start := GetSpanStartLine(second)
	return end != 0 && end == start && first.Tree() == second.Tree()
}

func lineSource(token *syntax.Token) (*syntax.Tree, bool) {
	if token == nil || token.IsMissing() {
		return nil, false
	}
	tree := token.Tree()
	if tree == nil || tree.Text == nil {
		return nil, false
	}
	return tree, true
}

// NodeLineSpan resolves node's span to line positions through tree's line map.
// The node must belong to tree.
func NodeLineSpan(tree *syntax.Tree, node *syntax.Node) (syntax.LinePositionSpan, error) {
	if tree == nil || node == nil {
		return syntax.LinePositionSpan{}, fmt.Errorf("resolve line span: %w", ErrForeignNode)
	}
	if !tree.Owns(node) {
		return syntax.LinePositionSpan{}, fmt.Errorf("resolve line span of %s in %q: %w", node.Kind, tree.Path, ErrForeignNode)
	}
	return tree.LineSpan(node.Span()), nil
}
