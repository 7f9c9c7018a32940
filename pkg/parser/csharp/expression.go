package csharp

import "github.com/yaklabco/sharplint/pkg/syntax"

type binaryOperator struct {
	precedence int
	kind       syntax.Kind
}

//nolint:gochecknoglobals // Read-only lookup table.
var binaryOperators = map[syntax.Kind]binaryOperator{
	syntax.BarBarToken:             {1, syntax.LogicalOrExpression},
	syntax.AmpersandAmpersandToken: {2, syntax.LogicalAndExpression},
	syntax.EqualsEqualsToken:       {3, syntax.EqualsExpression},
	syntax.ExclamationEqualsToken:  {3, syntax.NotEqualsExpression},
	syntax.LessThanToken:           {4, syntax.LessThanExpression},
	syntax.LessThanEqualsToken:     {4, syntax.LessThanOrEqualExpression},
	syntax.GreaterThanToken:        {4, syntax.GreaterThanExpression},
	syntax.GreaterThanEqualsToken:  {4, syntax.GreaterThanOrEqualExpression},
	syntax.PlusToken:               {5, syntax.AddExpression},
	syntax.MinusToken:              {5, syntax.SubtractExpression},
	syntax.AsteriskToken:           {6, syntax.MultiplyExpression},
	syntax.SlashToken:              {6, syntax.DivideExpression},
	syntax.PercentToken:            {6, syntax.ModuloExpression},
}

//nolint:gochecknoglobals // Read-only lookup table.
var assignmentOperators = map[syntax.Kind]syntax.Kind{
	syntax.EqualsToken:      syntax.SimpleAssignmentExpression,
	syntax.PlusEqualsToken:  syntax.AddAssignmentExpression,
	syntax.MinusEqualsToken: syntax.SubtractAssignmentExpression,
}

func canStartExpression(kind syntax.Kind) bool {
	switch kind {
	case syntax.IdentifierToken, syntax.NumericLiteralToken, syntax.StringLiteralToken,
		syntax.TrueKeyword, syntax.FalseKeyword, syntax.NullKeyword,
		syntax.OpenParenToken, syntax.ExclamationToken, syntax.MinusToken:
		return true
	default:
		return false
	}
}

// parseExpression parses an assignment expression; assignment is right-associative.
func (p *parser) parseExpression() *syntax.Node {
	left := p.parseBinary(1)

	if kind, ok := assignmentOperators[p.current().Kind]; ok {
		operator := p.advance()
		right := p.parseExpression()
		return syntax.NewNode(kind, left, operator, right)
	}

	return left
}

// parseBinary parses left-associative binary operators by precedence climbing.
func (p *parser) parseBinary(minPrecedence int) *syntax.Node {
	left := p.parseUnary()

	for {
		op, ok := binaryOperators[p.current().Kind]
		if !ok || op.precedence < minPrecedence {
			return left
		}
		operator := p.advance()
		right := p.parseBinary(op.precedence + 1)
		left = syntax.NewNode(op.kind, left, operator, right)
	}
}

func (p *parser) parseUnary() *syntax.Node {
	switch p.current().Kind {
	case syntax.ExclamationToken:
		operator := p.advance()
		return syntax.NewNode(syntax.LogicalNotExpression, operator, p.parseUnary())
	case syntax.MinusToken:
		operator := p.advance()
		return syntax.NewNode(syntax.UnaryMinusExpression, operator, p.parseUnary())
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *parser) parsePostfix(expr *syntax.Node) *syntax.Node {
	for {
		switch p.current().Kind {
		case syntax.DotToken:
			dot := p.advance()
			name := syntax.NewNode(syntax.IdentifierName, p.expect(syntax.IdentifierToken))
			expr = syntax.NewNode(syntax.SimpleMemberAccessExpression, expr, dot, name)
		case syntax.OpenParenToken:
			expr = syntax.NewNode(syntax.InvocationExpression, expr, p.parseArgumentList())
		default:
			return expr
		}
	}
}

func (p *parser) parseArgumentList() *syntax.Node {
	children := []syntax.Element{p.advance()}

	if !p.at(syntax.CloseParenToken) {
		for {
			if !canStartExpression(p.current().Kind) {
				break
			}
			children = append(children, syntax.NewNode(syntax.Argument, p.parseExpression()))
			if !p.at(syntax.CommaToken) {
				break
			}
			children = append(children, p.advance())
		}
	}

	children = append(children, p.expect(syntax.CloseParenToken))
	return syntax.NewNode(syntax.ArgumentList, children...)
}

func (p *parser) parsePrimary() *syntax.Node {
	switch p.current().Kind {
	case syntax.IdentifierToken:
		return syntax.NewNode(syntax.IdentifierName, p.advance())
	case syntax.NumericLiteralToken:
		return syntax.NewNode(syntax.NumericLiteralExpression, p.advance())
	case syntax.StringLiteralToken:
		return syntax.NewNode(syntax.StringLiteralExpression, p.advance())
	case syntax.TrueKeyword:
		return syntax.NewNode(syntax.TrueLiteralExpression, p.advance())
	case syntax.FalseKeyword:
		return syntax.NewNode(syntax.FalseLiteralExpression, p.advance())
	case syntax.NullKeyword:
		return syntax.NewNode(syntax.NullLiteralExpression, p.advance())
	case syntax.OpenParenToken:
		openParen := p.advance()
		inner := p.parseExpression()
		return syntax.NewNode(syntax.ParenthesizedExpression, openParen, inner, p.expect(syntax.CloseParenToken))
	default:
		return syntax.NewNode(syntax.IdentifierName,
			syntax.NewMissingToken(syntax.IdentifierToken, p.current().FullSpan().Start))
	}
}
