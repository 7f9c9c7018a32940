package syntax

import "strconv"

// Kind classifies trivia, tokens and nodes in a single enumeration.
// Dispatch tables are indexed by Kind, so values stay small and dense.
type Kind uint16

// Trivia kinds.
const (
	None Kind = iota

	WhitespaceTrivia
	EndOfLineTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia
	SingleLineDocumentationCommentTrivia

	// Preprocessor directives. Keep these contiguous, IsDirective depends on it.
	IfDirectiveTrivia
	ElifDirectiveTrivia
	ElseDirectiveTrivia
	EndIfDirectiveTrivia
	RegionDirectiveTrivia
	EndRegionDirectiveTrivia
	DefineDirectiveTrivia
	UndefDirectiveTrivia
	PragmaDirectiveTrivia
	BadDirectiveTrivia
)

// Token kinds.
const (
	EndOfFileToken Kind = iota + BadDirectiveTrivia + 1
	BadToken
	IdentifierToken
	NumericLiteralToken
	StringLiteralToken

	OpenBraceToken
	CloseBraceToken
	OpenParenToken
	CloseParenToken
	SemicolonToken
	CommaToken
	DotToken
	EqualsToken
	EqualsEqualsToken
	ExclamationEqualsToken
	ExclamationToken
	PlusToken
	MinusToken
	AsteriskToken
	SlashToken
	PercentToken
	LessThanToken
	LessThanEqualsToken
	GreaterThanToken
	GreaterThanEqualsToken
	AmpersandAmpersandToken
	BarBarToken
	PlusEqualsToken
	MinusEqualsToken

	// Keywords.
	IfKeyword
	ElseKeyword
	WhileKeyword
	ReturnKeyword
	VarKeyword
	TrueKeyword
	FalseKeyword
	NullKeyword
)

// Node kinds.
const (
	CompilationUnit Kind = iota + NullKeyword + 1

	// Statements.
	Block
	IfStatement
	ElseClause
	WhileStatement
	ReturnStatement
	ExpressionStatement
	EmptyStatement
	LocalDeclarationStatement
	IncompleteStatement

	// Assignments.
	SimpleAssignmentExpression
	AddAssignmentExpression
	SubtractAssignmentExpression

	// Binary expressions.
	LogicalOrExpression
	LogicalAndExpression
	EqualsExpression
	NotEqualsExpression
	LessThanExpression
	LessThanOrEqualExpression
	GreaterThanExpression
	GreaterThanOrEqualExpression
	AddExpression
	SubtractExpression
	MultiplyExpression
	DivideExpression
	ModuloExpression

	// Unary expressions.
	LogicalNotExpression
	UnaryMinusExpression

	// Primary expressions.
	ParenthesizedExpression
	InvocationExpression
	ArgumentList
	Argument
	SimpleMemberAccessExpression
	IdentifierName
	TrueLiteralExpression
	FalseLiteralExpression
	NumericLiteralExpression
	StringLiteralExpression
	NullLiteralExpression

	kindCount
)

// KindCount is the number of defined kinds; valid kinds are in [0, KindCount).
const KindCount = int(kindCount)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	None:                                 "None",
	WhitespaceTrivia:                     "WhitespaceTrivia",
	EndOfLineTrivia:                      "EndOfLineTrivia",
	SingleLineCommentTrivia:              "SingleLineCommentTrivia",
	MultiLineCommentTrivia:               "MultiLineCommentTrivia",
	SingleLineDocumentationCommentTrivia: "SingleLineDocumentationCommentTrivia",
	IfDirectiveTrivia:                    "IfDirectiveTrivia",
	ElifDirectiveTrivia:                  "ElifDirectiveTrivia",
	ElseDirectiveTrivia:                  "ElseDirectiveTrivia",
	EndIfDirectiveTrivia:                 "EndIfDirectiveTrivia",
	RegionDirectiveTrivia:                "RegionDirectiveTrivia",
	EndRegionDirectiveTrivia:             "EndRegionDirectiveTrivia",
	DefineDirectiveTrivia:                "DefineDirectiveTrivia",
	UndefDirectiveTrivia:                 "UndefDirectiveTrivia",
	PragmaDirectiveTrivia:                "PragmaDirectiveTrivia",
	BadDirectiveTrivia:                   "BadDirectiveTrivia",
	EndOfFileToken:                       "EndOfFileToken",
	BadToken:                             "BadToken",
	IdentifierToken:                      "IdentifierToken",
	NumericLiteralToken:                  "NumericLiteralToken",
	StringLiteralToken:                   "StringLiteralToken",
	OpenBraceToken:                       "OpenBraceToken",
	CloseBraceToken:                      "CloseBraceToken",
	OpenParenToken:                       "OpenParenToken",
	CloseParenToken:                      "CloseParenToken",
	SemicolonToken:                       "SemicolonToken",
	CommaToken:                           "CommaToken",
	DotToken:                             "DotToken",
	EqualsToken:                          "EqualsToken",
	EqualsEqualsToken:                    "EqualsEqualsToken",
	ExclamationEqualsToken:               "ExclamationEqualsToken",
	ExclamationToken:                     "ExclamationToken",
	PlusToken:                            "PlusToken",
	MinusToken:                           "MinusToken",
	AsteriskToken:                        "AsteriskToken",
	SlashToken:                           "SlashToken",
	PercentToken:                         "PercentToken",
	LessThanToken:                        "LessThanToken",
	LessThanEqualsToken:                  "LessThanEqualsToken",
	GreaterThanToken:                     "GreaterThanToken",
	GreaterThanEqualsToken:               "GreaterThanEqualsToken",
	AmpersandAmpersandToken:              "AmpersandAmpersandToken",
	BarBarToken:                          "BarBarToken",
	PlusEqualsToken:                      "PlusEqualsToken",
	MinusEqualsToken:                     "MinusEqualsToken",
	IfKeyword:                            "IfKeyword",
	ElseKeyword:                          "ElseKeyword",
	WhileKeyword:                         "WhileKeyword",
	ReturnKeyword:                        "ReturnKeyword",
	VarKeyword:                           "VarKeyword",
	TrueKeyword:                          "TrueKeyword",
	FalseKeyword:                         "FalseKeyword",
	NullKeyword:                          "NullKeyword",
	CompilationUnit:                      "CompilationUnit",
	Block:                                "Block",
	IfStatement:                          "IfStatement",
	ElseClause:                           "ElseClause",
	WhileStatement:                       "WhileStatement",
	ReturnStatement:                      "ReturnStatement",
	ExpressionStatement:                  "ExpressionStatement",
	EmptyStatement:                       "EmptyStatement",
	LocalDeclarationStatement:            "LocalDeclarationStatement",
	IncompleteStatement:                  "IncompleteStatement",
	SimpleAssignmentExpression:           "SimpleAssignmentExpression",
	AddAssignmentExpression:              "AddAssignmentExpression",
	SubtractAssignmentExpression:         "SubtractAssignmentExpression",
	LogicalOrExpression:                  "LogicalOrExpression",
	LogicalAndExpression:                 "LogicalAndExpression",
	EqualsExpression:                     "EqualsExpression",
	NotEqualsExpression:                  "NotEqualsExpression",
	LessThanExpression:                   "LessThanExpression",
	LessThanOrEqualExpression:            "LessThanOrEqualExpression",
	GreaterThanExpression:                "GreaterThanExpression",
	GreaterThanOrEqualExpression:         "GreaterThanOrEqualExpression",
	AddExpression:                        "AddExpression",
	SubtractExpression:                   "SubtractExpression",
	MultiplyExpression:                   "MultiplyExpression",
	DivideExpression:                     "DivideExpression",
	ModuloExpression:                     "ModuloExpression",
	LogicalNotExpression:                 "LogicalNotExpression",
	UnaryMinusExpression:                 "UnaryMinusExpression",
	ParenthesizedExpression:              "ParenthesizedExpression",
	InvocationExpression:                 "InvocationExpression",
	ArgumentList:                         "ArgumentList",
	Argument:                             "Argument",
	SimpleMemberAccessExpression:         "SimpleMemberAccessExpression",
	IdentifierName:                       "IdentifierName",
	TrueLiteralExpression:                "TrueLiteralExpression",
	FalseLiteralExpression:               "FalseLiteralExpression",
	NumericLiteralExpression:             "NumericLiteralExpression",
	StringLiteralExpression:              "StringLiteralExpression",
	NullLiteralExpression:                "NullLiteralExpression",
}

// String returns the name of the kind, e.g. "IfStatement".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsValid reports whether k is a defined kind.
func (k Kind) IsValid() bool {
	return int(k) < KindCount
}

// IsTrivia reports whether k is a trivia kind.
func (k Kind) IsTrivia() bool {
	return k >= WhitespaceTrivia && k <= BadDirectiveTrivia
}

// IsToken reports whether k is a token kind (including keywords).
func (k Kind) IsToken() bool {
	return k >= EndOfFileToken && k <= NullKeyword
}

// IsKeyword reports whether k is a keyword token kind.
func (k Kind) IsKeyword() bool {
	return k >= IfKeyword && k <= NullKeyword
}

// IsNode reports whether k is a node kind.
func (k Kind) IsNode() bool {
	return k >= CompilationUnit && k < kindCount
}

// IsDirective reports whether k is a preprocessor directive trivia kind.
func (k Kind) IsDirective() bool {
	return k >= IfDirectiveTrivia && k <= BadDirectiveTrivia
}

// IsComment reports whether k is a comment trivia kind.
func (k Kind) IsComment() bool {
	switch k {
	case SingleLineCommentTrivia, MultiLineCommentTrivia, SingleLineDocumentationCommentTrivia:
		return true
	default:
		return false
	}
}

// IsStatement reports whether k is a statement node kind.
func (k Kind) IsStatement() bool {
	switch k {
	case Block, IfStatement, WhileStatement, ReturnStatement, ExpressionStatement,
		EmptyStatement, LocalDeclarationStatement, IncompleteStatement:
		return true
	default:
		return false
	}
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return None, false
}
