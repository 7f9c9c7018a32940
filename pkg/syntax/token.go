package syntax

// Trivia is a piece of source text that carries no syntactic meaning:
// whitespace, line endings, comments and preprocessor directives.
// Trivia is owned by the token it is attached to.
type Trivia struct {
	Kind Kind
	Span TextSpan

	token *Token
}

// Token returns the token the trivia is attached to.
func (t Trivia) Token() *Token {
	return t.token
}

// Text returns the source text of the trivia.
func (t Trivia) Text() string {
	if t.token == nil || t.token.tree == nil {
		return ""
	}
	return t.token.tree.Text.Slice(t.Span)
}

// IsDirective reports whether the trivia is a preprocessor directive.
func (t Trivia) IsDirective() bool {
	return t.Kind.IsDirective()
}

// Token is a terminal of the syntax tree. Its span excludes trivia; its full
// span includes the leading and trailing trivia.
type Token struct {
	Kind Kind

	span     TextSpan
	leading  []Trivia
	trailing []Trivia
	missing  bool

	parent *Node
	tree   *Tree
}

// NewToken creates a token and takes ownership of the trivia slices.
func NewToken(kind Kind, span TextSpan, leading, trailing []Trivia) *Token {
	tok := &Token{
		Kind:     kind,
		span:     span,
		leading:  leading,
		trailing: trailing,
	}
	for i := range tok.leading {
		tok.leading[i].token = tok
	}
	for i := range tok.trailing {
		tok.trailing[i].token = tok
	}
	return tok
}

// NewMissingToken creates a zero-width token inserted by error recovery.
func NewMissingToken(kind Kind, position int) *Token {
	return &Token{
		Kind:    kind,
		span:    TextSpan{Start: position, End: position},
		missing: true,
	}
}

// Span returns the token's span without trivia.
func (t *Token) Span() TextSpan {
	return t.span
}

// FullSpan returns the token's span including leading and trailing trivia.
func (t *Token) FullSpan() TextSpan {
	full := t.span
	if len(t.leading) > 0 {
		full.Start = t.leading[0].Span.Start
	}
	if len(t.trailing) > 0 {
		full.End = t.trailing[len(t.trailing)-1].Span.End
	}
	return full
}

// LeadingTrivia returns the trivia preceding the token.
func (t *Token) LeadingTrivia() []Trivia {
	return t.leading
}

// TrailingTrivia returns the trivia following the token on the same line.
func (t *Token) TrailingTrivia() []Trivia {
	return t.trailing
}

// IsMissing reports whether the token was synthesized by error recovery.
func (t *Token) IsMissing() bool {
	return t.missing
}

// Parent returns the node that owns the token.
func (t *Token) Parent() *Node {
	return t.parent
}

// Tree returns the tree the token belongs to, or nil for a detached token.
func (t *Token) Tree() *Tree {
	return t.tree
}

// Text returns the source text of the token without trivia.
func (t *Token) Text() string {
	if t.missing || t.tree == nil {
		return ""
	}
	return t.tree.Text.Slice(t.span)
}

func (t *Token) element() {}
