// Package csharp parses a statement-level subset of C# into lossless syntax trees.
package csharp

import (
	"context"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Parser implements lint.Parser for C# source files.
type Parser struct{}

// New creates a new C# parser.
func New() *Parser {
	return &Parser{}
}

// Parse parses content into a syntax tree. Malformed input never fails; the
// parser inserts missing tokens and skips unexpected ones instead. The only
// error is context cancellation.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ParseBytes(path, content), nil
}

// ParseBytes parses content into a syntax tree.
func ParseBytes(path string, content []byte) *syntax.Tree {
	text := syntax.NewSourceText(content)
	state := &parser{tokens: newLexer(content).tokenize()}
	root := state.parseCompilationUnit()
	return syntax.NewTree(path, text, root)
}

// ParseText is a convenience wrapper around ParseBytes.
func ParseText(path, source string) *syntax.Tree {
	return ParseBytes(path, []byte(source))
}

type parser struct {
	tokens []*syntax.Token
	pos    int
}

func (p *parser) current() *syntax.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekKind(offset int) syntax.Kind {
	idx := min(p.pos+offset, len(p.tokens)-1)
	return p.tokens[idx].Kind
}

func (p *parser) at(kind syntax.Kind) bool {
	return p.current().Kind == kind
}

func (p *parser) advance() *syntax.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != syntax.EndOfFileToken {
		p.pos++
	}
	return tok
}

// expect consumes a token of kind, or returns a missing token positioned
// where the expected token would have started.
func (p *parser) expect(kind syntax.Kind) *syntax.Token {
	if p.at(kind) {
		return p.advance()
	}
	return syntax.NewMissingToken(kind, p.current().FullSpan().Start)
}

func (p *parser) parseCompilationUnit() *syntax.Node {
	children := p.parseStatementList(syntax.EndOfFileToken)
	children = append(children, p.advance())
	return syntax.NewNode(syntax.CompilationUnit, children...)
}

// parseStatementList parses statements until terminator or end of file.
// Every iteration consumes at least one token.
func (p *parser) parseStatementList(terminator syntax.Kind) []syntax.Element {
	var children []syntax.Element
	for !p.at(terminator) && !p.at(syntax.EndOfFileToken) {
		start := p.pos
		stmt := p.parseStatement()
		if p.pos == start {
			stmt = syntax.NewNode(syntax.IncompleteStatement, p.advance())
		}
		children = append(children, stmt)
	}
	return children
}

func (p *parser) parseStatement() *syntax.Node {
	switch p.current().Kind {
	case syntax.OpenBraceToken:
		return p.parseBlock()
	case syntax.IfKeyword:
		return p.parseIf()
	case syntax.WhileKeyword:
		return p.parseWhile()
	case syntax.ReturnKeyword:
		return p.parseReturn()
	case syntax.SemicolonToken:
		return syntax.NewNode(syntax.EmptyStatement, p.advance())
	case syntax.VarKeyword:
		return p.parseLocalDeclaration()
	case syntax.ElseKeyword, syntax.CloseBraceToken, syntax.CloseParenToken,
		syntax.CommaToken, syntax.BadToken:
		return syntax.NewNode(syntax.IncompleteStatement, p.advance())
	default:
		expr := p.parseExpression()
		return syntax.NewNode(syntax.ExpressionStatement, expr, p.expect(syntax.SemicolonToken))
	}
}

func (p *parser) parseBlock() *syntax.Node {
	children := []syntax.Element{p.expect(syntax.OpenBraceToken)}
	children = append(children, p.parseStatementList(syntax.CloseBraceToken)...)
	children = append(children, p.expect(syntax.CloseBraceToken))
	return syntax.NewNode(syntax.Block, children...)
}

// parseEmbedded parses the statement nested in if/else/while. A missing
// statement is represented by an expression statement over missing tokens.
func (p *parser) parseEmbedded() *syntax.Node {
	if p.at(syntax.EndOfFileToken) || p.at(syntax.CloseBraceToken) {
		pos := p.current().FullSpan().Start
		return syntax.NewNode(syntax.ExpressionStatement,
			syntax.NewNode(syntax.IdentifierName, syntax.NewMissingToken(syntax.IdentifierToken, pos)),
			syntax.NewMissingToken(syntax.SemicolonToken, pos))
	}
	return p.parseStatement()
}

func (p *parser) parseIf() *syntax.Node {
	ifKeyword := p.advance()
	openParen := p.expect(syntax.OpenParenToken)
	condition := p.parseExpression()
	closeParen := p.expect(syntax.CloseParenToken)
	statement := p.parseEmbedded()

	var elseClause *syntax.Node
	if p.at(syntax.ElseKeyword) {
		elseKeyword := p.advance()
		elseClause = syntax.NewNode(syntax.ElseClause, elseKeyword, p.parseEmbedded())
	}

	return syntax.NewNode(syntax.IfStatement, ifKeyword, openParen, condition, closeParen, statement, elseClause)
}

func (p *parser) parseWhile() *syntax.Node {
	whileKeyword := p.advance()
	openParen := p.expect(syntax.OpenParenToken)
	condition := p.parseExpression()
	closeParen := p.expect(syntax.CloseParenToken)
	return syntax.NewNode(syntax.WhileStatement, whileKeyword, openParen, condition, closeParen, p.parseEmbedded())
}

func (p *parser) parseReturn() *syntax.Node {
	returnKeyword := p.advance()
	var expr *syntax.Node
	if !p.at(syntax.SemicolonToken) && canStartExpression(p.current().Kind) {
		expr = p.parseExpression()
	}
	return syntax.NewNode(syntax.ReturnStatement, returnKeyword, expr, p.expect(syntax.SemicolonToken))
}

func (p *parser) parseLocalDeclaration() *syntax.Node {
	varKeyword := p.advance()
	name := p.expect(syntax.IdentifierToken)

	var equals *syntax.Token
	var initializer *syntax.Node
	if p.at(syntax.EqualsToken) {
		equals = p.advance()
		initializer = p.parseExpression()
	}

	return syntax.NewNode(syntax.LocalDeclarationStatement,
		varKeyword, name, equals, initializer, p.expect(syntax.SemicolonToken))
}
