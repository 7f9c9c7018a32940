package syntax

import "fmt"

// Tree is an immutable syntax tree for one source file.
type Tree struct {
	// Path is the file path the tree was parsed from. Empty when unknown.
	Path string

	// Text is the source text with its line index.
	Text *SourceText

	// Root is the compilation unit.
	Root *Node
}

// NewTree binds root and every element under it to a new tree.
func NewTree(path string, text *SourceText, root *Node) *Tree {
	tree := &Tree{Path: path, Text: text, Root: root}
	if root != nil {
		bindTree(root, tree)
	}
	return tree
}

func bindTree(node *Node, tree *Tree) {
	node.tree = tree
	for _, child := range node.children {
		switch c := child.(type) {
		case *Token:
			c.tree = tree
		case *Node:
			bindTree(c, tree)
		}
	}
}

// FullSpan returns the span of the whole source text.
func (t *Tree) FullSpan() TextSpan {
	return TextSpan{Start: 0, End: t.Text.Len()}
}

// LinePosition is a 1-based line and byte column.
type LinePosition struct {
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p LinePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LinePositionSpan is the line/column form of a TextSpan.
type LinePositionSpan struct {
	Start LinePosition
	End   LinePosition
}

// IsSingleLine reports whether the span starts and ends on the same line.
func (s LinePositionSpan) IsSingleLine() bool {
	return s.Start.Line == s.End.Line
}

// LineSpan maps span to 1-based line and column positions.
func (t *Tree) LineSpan(span TextSpan) LinePositionSpan {
	startLine, startCol := t.Text.LineAt(span.Start)
	endLine, endCol := t.Text.LineAt(span.End)
	return LinePositionSpan{
		Start: LinePosition{Line: startLine, Column: startCol},
		End:   LinePosition{Line: endLine, Column: endCol},
	}
}

// Owns reports whether node belongs to this tree.
func (t *Tree) Owns(node *Node) bool {
	return node != nil && node.tree == t
}
