package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/classify"
	"github.com/yaklabco/sharplint/pkg/parser/csharp"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// spanBetween returns the span strictly between the first occurrence of
// open and the following occurrence of closing.
func spanBetween(t *testing.T, src, open, closing string) syntax.TextSpan {
	t.Helper()

	start := strings.Index(src, open)
	require.GreaterOrEqual(t, start, 0)
	start += len(open)
	end := strings.Index(src[start:], closing)
	require.GreaterOrEqual(t, end, 0)
	return syntax.NewSpan(start, start+end)
}

func TestAllTriviaInSpanAreWhitespaceOrEndOfLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{name: "block comment", src: "if (a) { /* x */ }", want: false},
		{name: "whitespace and newline", src: "if (a) {   \n  }", want: true},
		{name: "line comment", src: "if (a) { // note\n}", want: false},
		{name: "doc comment", src: "if (a) {\n/// doc\n}", want: false},
		{name: "directive", src: "if (a) {\n#region r\n}", want: false},
		{name: "token", src: "if (a) { b(); }", want: false},
		{name: "empty span", src: "if (a) {}", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := csharp.ParseText("a.cs", tt.src)
			span := spanBetween(t, tt.src, "{", "}")
			assert.Equal(t, tt.want, classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(tree.Root, span))
		})
	}
}

func TestAllTriviaInSpanAreWhitespaceOrEndOfLine_MissingTokens(t *testing.T) {
	t.Parallel()

	// The missing statement and semicolon are zero-width and do not count as tokens.
	tree := csharp.ParseText("a.cs", "if (a)\n  ")
	assert.True(t, classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(tree.Root, syntax.NewSpan(6, 9)))
	assert.False(t, classify.AllTriviaInSpanAreWhitespaceOrEndOfLine(nil, syntax.NewSpan(0, 1)))
}

func TestTriviaKindHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, classify.IsWhitespaceOrEndOfLineKind(syntax.WhitespaceTrivia))
	assert.True(t, classify.IsWhitespaceOrEndOfLineKind(syntax.EndOfLineTrivia))
	assert.False(t, classify.IsWhitespaceOrEndOfLineKind(syntax.SingleLineCommentTrivia))
	assert.False(t, classify.IsWhitespaceOrEndOfLineKind(syntax.RegionDirectiveTrivia))

	assert.True(t, classify.AllTriviaAreWhitespaceOrEndOfLine(nil))
	tree := csharp.ParseText("a.cs", "  // c\nx;")
	leading := tree.Root.FirstToken().LeadingTrivia()
	assert.False(t, classify.AllTriviaAreWhitespaceOrEndOfLine(leading))
	assert.True(t, classify.AllTriviaAreWhitespaceOrEndOfLine(leading[:1]))
	assert.True(t, classify.IsWhitespaceOrEndOfLineTrivia(leading[0]))
}

func TestSpanContainsDirectives(t *testing.T) {
	t.Parallel()

	src := "x = 0;\n#region Body\ny = 1;\nz = 2;\n#endregion\nw = 3;\n"
	tree := csharp.ParseText("a.cs", src)
	root := tree.Root

	regionStart := strings.Index(src, "#region")
	regionEnd := strings.Index(src, "#endregion") + len("#endregion")
	assert.True(t, classify.SpanContainsDirectives(root, syntax.NewSpan(regionStart, regionEnd)))

	bodyStart := strings.Index(src, "y = 1;")
	bodyEnd := strings.Index(src, "#endregion")
	assert.False(t, classify.SpanContainsDirectives(root, syntax.NewSpan(bodyStart, bodyEnd)))

	assert.False(t, classify.SpanContainsDirectives(root, syntax.NewSpan(regionStart, regionStart)))
	assert.True(t, classify.ContainsDirectives(root))
	assert.False(t, classify.ContainsDirectives(csharp.ParseText("b.cs", "x = 1; // #region\n").Root))
	assert.False(t, classify.ContainsDirectives(nil))

	stmts := root.Statements()
	assert.True(t, classify.TokenContainsDirectives(stmts[1].FirstToken()))
	assert.False(t, classify.TokenContainsDirectives(stmts[0].FirstToken()))
	assert.True(t, classify.TokenContainsDirectives(stmts[3].FirstToken()))
}

func TestSingleMultiLineSymmetry(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"if (a) { b(); }",
		"if (a)\n{\n  b();\n}\r\nelse\r c();\n",
		"x = \"one\" +\n  \"two\";",
		"",
	}

	for _, src := range srcs {
		tree := csharp.ParseText("a.cs", src)
		n := len(src)
		for start := 0; start <= n; start++ {
			for end := start; end <= n; end++ {
				span := syntax.NewSpan(start, end)
				single := classify.IsSingleLineSpan(tree, span)
				multi := classify.IsMultiLineSpan(tree, span)
				require.NotEqual(t, single, multi, "span %s of %q", span, src)
			}
		}
	}

	assert.False(t, classify.IsSingleLineSpan(nil, syntax.NewSpan(0, 0)))
	assert.False(t, classify.IsMultiLineSpan(nil, syntax.NewSpan(0, 0)))
}

func TestIsSingleLine_ExteriorTrivia(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		src          string
		kind         syntax.Kind
		wantNode     bool
		wantExterior bool
	}{
		{name: "single line", src: "x = 1;\n", kind: syntax.ExpressionStatement, wantNode: true, wantExterior: true},
		{name: "comment above", src: "// note\nx = 1;\n", kind: syntax.ExpressionStatement, wantNode: true, wantExterior: false},
		{name: "trailing comment", src: "x = 1; // note\n", kind: syntax.ExpressionStatement, wantNode: true, wantExterior: true},
		{name: "blank lines around", src: "\n\n  x = 1;\n\n", kind: syntax.ExpressionStatement, wantNode: true, wantExterior: true},
		{name: "multi line block", src: "{\n  x = 1;\n}", kind: syntax.Block, wantNode: false, wantExterior: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := csharp.ParseText("a.cs", tt.src)
			node := syntax.FindByKind(tree.Root, tt.kind)[0]

			assert.Equal(t, tt.wantNode, classify.IsSingleLine(node, false))
			assert.Equal(t, !tt.wantNode, classify.IsMultiLine(node, false))
			assert.Equal(t, tt.wantExterior, classify.IsSingleLine(node, true))
			assert.Equal(t, !tt.wantExterior, classify.IsMultiLine(node, true))
		})
	}

	assert.False(t, classify.IsSingleLine(nil, false))
	assert.False(t, classify.IsMultiLine(nil, true))
}

func TestLineHelpers(t *testing.T) {
	t.Parallel()

	src := "// lead\nif (a)\n  b();\nc = @\"x\ny\";\n"
	tree := csharp.ParseText("a.cs", src)

	ifStmt := syntax.FindByKind(tree.Root, syntax.IfStatement)[0]
	ifKeyword := ifStmt.FirstToken()
	closeParen := ifStmt.ChildToken(syntax.CloseParenToken)
	bCall := ifStmt.Statement().FirstToken()

	assert.Equal(t, 2, classify.GetSpanStartLine(ifKeyword))
	assert.Equal(t, 2, classify.GetSpanEndLine(ifKeyword))
	assert.Equal(t, 1, classify.GetFullSpanStartLine(ifKeyword))
	assert.Equal(t, 3, classify.GetSpanStartLine(bCall))
	assert.True(t, classify.TokensOnSameLine(ifKeyword, closeParen))
	assert.False(t, classify.TokensOnSameLine(closeParen, bCall))

	// closeParen's trailing trivia ends with the line ending, so the full span ends on line 3.
	assert.Equal(t, 3, classify.GetFullSpanEndLine(closeParen))

	var verbatim *syntax.Token
	for tok := range tree.Root.DescendantTokens() {
		if tok.Kind == syntax.StringLiteralToken {
			verbatim = tok
		}
	}
	require.NotNil(t, verbatim)
	assert.Equal(t, 4, classify.GetSpanStartLine(verbatim))
	assert.Equal(t, 5, classify.GetSpanEndLine(verbatim))

	missing := syntax.NewMissingToken(syntax.SemicolonToken, 0)
	assert.Zero(t, classify.GetSpanStartLine(missing))
	assert.Zero(t, classify.GetSpanEndLine(missing))
	assert.Zero(t, classify.GetFullSpanStartLine(nil))
	assert.Zero(t, classify.GetFullSpanEndLine(nil))
	assert.False(t, classify.TokensOnSameLine(missing, ifKeyword))
}

func TestNodeLineSpan(t *testing.T) {
	t.Parallel()

	tree := csharp.ParseText("a.cs", "x = 1;\nif (a) {\n}\n")
	other := csharp.ParseText("b.cs", "if (a) {\n}\n")

	node := syntax.FindByKind(tree.Root, syntax.IfStatement)[0]
	pos, err := classify.NodeLineSpan(tree, node)
	require.NoError(t, err)
	assert.Equal(t, 2, pos.Start.Line)
	assert.Equal(t, 3, pos.End.Line)

	_, err = classify.NodeLineSpan(other, node)
	require.ErrorIs(t, err, classify.ErrForeignNode)

	_, err = classify.NodeLineSpan(nil, node)
	require.ErrorIs(t, err, classify.ErrForeignNode)
}
