package csharp

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]syntax.Kind{
	"if":     syntax.IfKeyword,
	"else":   syntax.ElseKeyword,
	"while":  syntax.WhileKeyword,
	"return": syntax.ReturnKeyword,
	"var":    syntax.VarKeyword,
	"true":   syntax.TrueKeyword,
	"false":  syntax.FalseKeyword,
	"null":   syntax.NullKeyword,
}

//nolint:gochecknoglobals // Read-only lookup table.
var directives = map[string]syntax.Kind{
	"if":        syntax.IfDirectiveTrivia,
	"elif":      syntax.ElifDirectiveTrivia,
	"else":      syntax.ElseDirectiveTrivia,
	"endif":     syntax.EndIfDirectiveTrivia,
	"region":    syntax.RegionDirectiveTrivia,
	"endregion": syntax.EndRegionDirectiveTrivia,
	"define":    syntax.DefineDirectiveTrivia,
	"undef":     syntax.UndefDirectiveTrivia,
	"pragma":    syntax.PragmaDirectiveTrivia,
}

// lexer splits source into tokens with attached trivia.
//
// Leading trivia is everything between the previous token's trailing trivia
// and the token. Trailing trivia is same-line whitespace and comments up to and
// including the first line ending. Directive lines are only recognized as
// leading trivia, where the '#' is the first non-whitespace on its line.
type lexer struct {
	src []byte
	pos int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src}
}

// tokenize lexes the whole input. The last token is always EndOfFileToken.
func (l *lexer) tokenize() []*syntax.Token {
	tokens := make([]*syntax.Token, 0, len(l.src)/4+1)
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == syntax.EndOfFileToken {
			return tokens
		}
	}
}

func (l *lexer) next() *syntax.Token {
	leading := l.scanTrivia(false)
	start := l.pos
	kind := l.scanToken()
	span := syntax.NewSpan(start, l.pos)

	var trailing []syntax.Trivia
	if kind != syntax.EndOfFileToken {
		trailing = l.scanTrivia(true)
	}

	return syntax.NewToken(kind, span, leading, trailing)
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) scanTrivia(trailing bool) []syntax.Trivia {
	var trivia []syntax.Trivia

	for l.pos < len(l.src) {
		start := l.pos
		var kind syntax.Kind

		switch ch := l.src[l.pos]; {
		case isHorizontalSpace(ch):
			for l.pos < len(l.src) && isHorizontalSpace(l.src[l.pos]) {
				l.pos++
			}
			kind = syntax.WhitespaceTrivia
		case ch == '\n' || ch == '\r':
			l.pos++
			if ch == '\r' && l.peekAt(0) == '\n' {
				l.pos++
			}
			trivia = append(trivia, syntax.Trivia{Kind: syntax.EndOfLineTrivia, Span: syntax.NewSpan(start, l.pos)})
			if trailing {
				return trivia
			}
			continue
		case ch == '/' && l.peekAt(1) == '/':
			kind = syntax.SingleLineCommentTrivia
			if l.peekAt(2) == '/' && l.peekAt(3) != '/' {
				kind = syntax.SingleLineDocumentationCommentTrivia
			}
			l.skipToLineEnd()
		case ch == '/' && l.peekAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && (l.src[l.pos] != '*' || l.peekAt(1) != '/') {
				l.pos++
			}
			l.pos = min(l.pos+2, len(l.src))
			kind = syntax.MultiLineCommentTrivia
		case ch == '#' && !trailing && l.atLineStart(start):
			kind = l.scanDirective()
		default:
			return trivia
		}

		trivia = append(trivia, syntax.Trivia{Kind: kind, Span: syntax.NewSpan(start, l.pos)})
	}

	return trivia
}

// scanDirective consumes a directive line up to, but excluding, its line ending.
func (l *lexer) scanDirective() syntax.Kind {
	l.pos++ // '#'
	for l.pos < len(l.src) && isHorizontalSpace(l.src[l.pos]) {
		l.pos++
	}
	nameStart := l.pos
	for l.pos < len(l.src) && isASCIILetter(l.src[l.pos]) {
		l.pos++
	}
	name := string(l.src[nameStart:l.pos])
	l.skipToLineEnd()

	if kind, ok := directives[name]; ok {
		return kind
	}
	return syntax.BadDirectiveTrivia
}

func (l *lexer) skipToLineEnd() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.pos++
	}
}

func (l *lexer) atLineStart(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch l.src[i] {
		case '\n', '\r':
			return true
		case ' ', '\t', '\v', '\f':
			continue
		default:
			return false
		}
	}
	return true
}

func (l *lexer) scanToken() syntax.Kind {
	if l.pos >= len(l.src) {
		return syntax.EndOfFileToken
	}

	ch := l.src[l.pos]
	switch {
	case isIdentStart(ch):
		return l.scanIdentifier()
	case isDigit(ch):
		return l.scanNumber()
	case ch == '"':
		return l.scanString('"')
	case ch == '\'':
		return l.scanString('\'')
	case ch == '@' && l.peekAt(1) == '"':
		l.pos++
		return l.scanVerbatimString()
	case ch == '@' && isIdentStart(l.peekAt(1)):
		l.pos++
		l.scanIdentifier()
		return syntax.IdentifierToken
	case ch >= utf8.RuneSelf:
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if unicode.IsLetter(r) {
			return l.scanIdentifier()
		}
		l.pos += size
		return syntax.BadToken
	}

	return l.scanPunctuation(ch)
}

func (l *lexer) scanPunctuation(ch byte) syntax.Kind {
	next := l.peekAt(1)
	l.pos++

	two := func(kind syntax.Kind) syntax.Kind {
		l.pos++
		return kind
	}

	switch ch {
	case '{':
		return syntax.OpenBraceToken
	case '}':
		return syntax.CloseBraceToken
	case '(':
		return syntax.OpenParenToken
	case ')':
		return syntax.CloseParenToken
	case ';':
		return syntax.SemicolonToken
	case ',':
		return syntax.CommaToken
	case '.':
		return syntax.DotToken
	case '*':
		return syntax.AsteriskToken
	case '/':
		return syntax.SlashToken
	case '%':
		return syntax.PercentToken
	case '=':
		if next == '=' {
			return two(syntax.EqualsEqualsToken)
		}
		return syntax.EqualsToken
	case '!':
		if next == '=' {
			return two(syntax.ExclamationEqualsToken)
		}
		return syntax.ExclamationToken
	case '+':
		if next == '=' {
			return two(syntax.PlusEqualsToken)
		}
		return syntax.PlusToken
	case '-':
		if next == '=' {
			return two(syntax.MinusEqualsToken)
		}
		return syntax.MinusToken
	case '<':
		if next == '=' {
			return two(syntax.LessThanEqualsToken)
		}
		return syntax.LessThanToken
	case '>':
		if next == '=' {
			return two(syntax.GreaterThanEqualsToken)
		}
		return syntax.GreaterThanToken
	case '&':
		if next == '&' {
			return two(syntax.AmpersandAmpersandToken)
		}
	case '|':
		if next == '|' {
			return two(syntax.BarBarToken)
		}
	}

	return syntax.BadToken
}

func (l *lexer) scanIdentifier() syntax.Kind {
	start := l.pos
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch < utf8.RuneSelf {
			if !isIdentPart(ch) {
				break
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}

	if kind, ok := keywords[string(l.src[start:l.pos])]; ok {
		return kind
	}
	return syntax.IdentifierToken
}

func (l *lexer) scanNumber() syntax.Kind {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	if l.peekAt(0) == '.' && isDigit(l.peekAt(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	// Type suffixes such as 1L, 2.0f, 3m.
	for l.pos < len(l.src) && isASCIILetter(l.src[l.pos]) {
		l.pos++
	}
	return syntax.NumericLiteralToken
}

// scanString consumes a quoted literal. Unterminated literals end at the line end.
func (l *lexer) scanString(quote byte) syntax.Kind {
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos = min(l.pos+2, len(l.src))
			continue
		case quote:
			l.pos++
			return syntax.StringLiteralToken
		case '\n', '\r':
			return syntax.StringLiteralToken
		}
		l.pos++
	}
	return syntax.StringLiteralToken
}

// scanVerbatimString consumes @"..." where "" escapes a quote and newlines are allowed.
func (l *lexer) scanVerbatimString() syntax.Kind {
	l.pos++
	for l.pos < len(l.src) {
		if l.src[l.pos] == '"' {
			if l.peekAt(1) == '"' {
				l.pos += 2
				continue
			}
			l.pos++
			return syntax.StringLiteralToken
		}
		l.pos++
	}
	return syntax.StringLiteralToken
}

func isHorizontalSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool {
	return isASCIILetter(ch) || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
