package syntax

import "iter"

// Element is either a *Node or a *Token.
type Element interface {
	Span() TextSpan
	FullSpan() TextSpan
	Parent() *Node
	element()
}

// Node is a non-terminal of the syntax tree. Nodes are immutable once their
// tree is constructed.
type Node struct {
	Kind Kind

	children []Element
	parent   *Node
	tree     *Tree
	span     TextSpan
	fullSpan TextSpan
	present  bool
}

// NewNode creates a node over children, which must be in source order.
// Nil children are skipped so optional parts can be passed directly.
func NewNode(kind Kind, children ...Element) *Node {
	node := &Node{Kind: kind, children: make([]Element, 0, len(children))}

	for _, child := range children {
		switch c := child.(type) {
		case *Node:
			if c == nil {
				continue
			}
			c.parent = node
		case *Token:
			if c == nil {
				continue
			}
			c.parent = node
		default:
			continue
		}
		node.children = append(node.children, child)
	}

	node.computeSpans()
	return node
}

func (n *Node) computeSpans() {
	if len(n.children) == 0 {
		return
	}

	n.fullSpan = TextSpan{
		Start: n.children[0].FullSpan().Start,
		End:   n.children[len(n.children)-1].FullSpan().End,
	}

	// Span is bounded by the first and last present (non-missing) tokens.
	for _, child := range n.children {
		span, ok := presentSpan(child)
		if !ok {
			continue
		}
		if !n.present {
			n.span = span
			n.present = true
			continue
		}
		n.span.End = span.End
	}

	if !n.present {
		n.span = TextSpan{Start: n.fullSpan.Start, End: n.fullSpan.Start}
	}
}

func presentSpan(el Element) (TextSpan, bool) {
	switch c := el.(type) {
	case *Token:
		return c.span, !c.missing
	case *Node:
		return c.span, c.present
	default:
		return TextSpan{}, false
	}
}

// Span returns the node's span without the leading trivia of its first token
// and the trailing trivia of its last token.
func (n *Node) Span() TextSpan {
	return n.span
}

// FullSpan returns the node's span including all attached trivia.
func (n *Node) FullSpan() TextSpan {
	return n.fullSpan
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Children returns the node's direct children in source order.
func (n *Node) Children() []Element {
	return n.children
}

// ChildNodes returns the direct child nodes in source order.
func (n *Node) ChildNodes() []*Node {
	nodes := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		if node, ok := child.(*Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// ChildTokens returns the direct child tokens in source order.
func (n *Node) ChildTokens() []*Token {
	tokens := make([]*Token, 0, len(n.children))
	for _, child := range n.children {
		if tok, ok := child.(*Token); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ChildToken returns the first direct child token of the given kind, or nil.
func (n *Node) ChildToken(kind Kind) *Token {
	for _, child := range n.children {
		if tok, ok := child.(*Token); ok && tok.Kind == kind {
			return tok
		}
	}
	return nil
}

// ChildNode returns the index-th direct child node, or nil.
func (n *Node) ChildNode(index int) *Node {
	for _, child := range n.children {
		node, ok := child.(*Node)
		if !ok {
			continue
		}
		if index == 0 {
			return node
		}
		index--
	}
	return nil
}

// FirstToken returns the first token under the node, including missing tokens.
func (n *Node) FirstToken() *Token {
	for tok := range n.DescendantTokens() {
		return tok
	}
	return nil
}

// LastToken returns the last token under the node, including missing tokens.
func (n *Node) LastToken() *Token {
	for i := len(n.children) - 1; i >= 0; i-- {
		switch c := n.children[i].(type) {
		case *Token:
			return c
		case *Node:
			if tok := c.LastToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// Ancestors yields the parent chain, nearest first.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// DescendantNodes yields every node below n in pre-order, excluding n.
func (n *Node) DescendantNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descendNodes(yield)
	}
}

// DescendantNodesAndSelf yields n followed by its descendants in pre-order.
func (n *Node) DescendantNodesAndSelf() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if yield(n) {
			n.descendNodes(yield)
		}
	}
}

func (n *Node) descendNodes(yield func(*Node) bool) bool {
	for _, child := range n.children {
		node, ok := child.(*Node)
		if !ok {
			continue
		}
		if !yield(node) || !node.descendNodes(yield) {
			return false
		}
	}
	return true
}

// DescendantTokens yields every token under n in source order.
func (n *Node) DescendantTokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.descendTokens(yield)
	}
}

func (n *Node) descendTokens(yield func(*Token) bool) bool {
	for _, child := range n.children {
		switch c := child.(type) {
		case *Token:
			if !yield(c) {
				return false
			}
		case *Node:
			if !c.descendTokens(yield) {
				return false
			}
		}
	}
	return true
}

// DescendantTrivia yields, in source order, every trivia piece under n that
// overlaps span. Trivia merely touching the span boundary is excluded.
func (n *Node) DescendantTrivia(span TextSpan) iter.Seq[Trivia] {
	return func(yield func(Trivia) bool) {
		n.descendTrivia(span, yield)
	}
}

func (n *Node) descendTrivia(span TextSpan, yield func(Trivia) bool) bool {
	for _, child := range n.children {
		if !child.FullSpan().IntersectsWith(span) {
			continue
		}
		switch c := child.(type) {
		case *Token:
			if !yieldOverlapping(c.leading, span, yield) || !yieldOverlapping(c.trailing, span, yield) {
				return false
			}
		case *Node:
			if !c.descendTrivia(span, yield) {
				return false
			}
		}
	}
	return true
}

func yieldOverlapping(trivia []Trivia, span TextSpan, yield func(Trivia) bool) bool {
	for _, tr := range trivia {
		if tr.Span.OverlapsWith(span) && !yield(tr) {
			return false
		}
	}
	return true
}

// Text returns the source text of the node without exterior trivia.
func (n *Node) Text() string {
	if n.tree == nil {
		return ""
	}
	return n.tree.Text.Slice(n.span)
}

// IsKind reports whether the node has one of the given kinds.
func (n *Node) IsKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

func (n *Node) element() {}
