// Package classify provides pure predicates over tokens, trivia and spans.
//
// Every predicate is conservative on malformed input: missing tokens
// synthesized by error recovery never start a line, never contain directives
// and are never whitespace.
package classify

import (
	"errors"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// ErrForeignNode is returned when a node is resolved against a tree that does not own it.
var ErrForeignNode = errors.New("node belongs to a different syntax tree")

// IsWhitespaceOrEndOfLineKind reports whether kind is exactly whitespace or end-of-line trivia.
func IsWhitespaceOrEndOfLineKind(kind syntax.Kind) bool {
	return kind == syntax.WhitespaceTrivia || kind == syntax.EndOfLineTrivia
}

// IsWhitespaceOrEndOfLineTrivia reports whether trivia is whitespace or a line ending.
func IsWhitespaceOrEndOfLineTrivia(trivia syntax.Trivia) bool {
	return IsWhitespaceOrEndOfLineKind(trivia.Kind)
}

// AllTriviaAreWhitespaceOrEndOfLine reports whether every piece is whitespace
// or a line ending. An empty list is vacuously true.
func AllTriviaAreWhitespaceOrEndOfLine(trivia []syntax.Trivia) bool {
	for _, tr := range trivia {
		if !IsWhitespaceOrEndOfLineTrivia(tr) {
			return false
		}
	}
	return true
}

// AllTriviaInSpanAreWhitespaceOrEndOfLine reports whether span, within node,
// holds nothing but whitespace and line endings. It returns false as soon as a
// comment, directive or present token overlaps the span. An empty span is
// vacuously true.
func AllTriviaInSpanAreWhitespaceOrEndOfLine(node *syntax.Node, span syntax.TextSpan) bool {
	if node == nil {
		return false
	}
	if span.IsEmpty() {
		return true
	}

	for tok := range node.DescendantTokens() {
		if !tok.IsMissing() && tok.Span().OverlapsWith(span) {
			return false
		}
	}

	for trivia := range node.DescendantTrivia(span) {
		if !IsWhitespaceOrEndOfLineTrivia(trivia) {
			return false
		}
	}

	return true
}

// ContainsDirectives reports whether any directive trivia lies within node's full span.
func ContainsDirectives(node *syntax.Node) bool {
	if node == nil {
		return false
	}
	return SpanContainsDirectives(node, node.FullSpan())
}

// SpanContainsDirectives reports whether any preprocessor directive trivia
// under node overlaps span.
func SpanContainsDirectives(node *syntax.Node, span syntax.TextSpan) bool {
	if node == nil || span.IsEmpty() {
		return false
	}

	for trivia := range node.DescendantTrivia(span) {
		if trivia.IsDirective() {
			return true
		}
	}
	return false
}

// TokenContainsDirectives reports whether the token's leading or trailing trivia holds a directive.
func TokenContainsDirectives(token *syntax.Token) bool {
	if token == nil || token.IsMissing() {
		return false
	}
	for _, tr := range token.LeadingTrivia() {
		if tr.IsDirective() {
			return true
		}
	}
	for _, tr := range token.TrailingTrivia() {
		if tr.IsDirective() {
			return true
		}
	}
	return false
}
