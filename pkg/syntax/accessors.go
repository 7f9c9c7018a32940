package syntax

// Typed accessors over the fixed child layouts produced by the parser.
// Each returns nil when the node has a different kind.

// Condition returns the condition of an if or while statement.
func (n *Node) Condition() *Node {
	if n.Kind != IfStatement && n.Kind != WhileStatement {
		return nil
	}
	return n.ChildNode(0)
}

// Statement returns the embedded statement of an if, while or else.
func (n *Node) Statement() *Node {
	switch n.Kind {
	case IfStatement, WhileStatement:
		return n.ChildNode(1)
	case ElseClause:
		return n.ChildNode(0)
	default:
		return nil
	}
}

// Else returns the else clause of an if statement.
func (n *Node) Else() *Node {
	if n.Kind != IfStatement {
		return nil
	}
	if node := n.ChildNode(2); node != nil && node.Kind == ElseClause {
		return node
	}
	return nil
}

// Expression returns the inner expression of a parenthesized expression,
// expression statement, return statement, argument, invocation, member access
// or local declaration initializer.
func (n *Node) Expression() *Node {
	switch n.Kind {
	case ParenthesizedExpression, ExpressionStatement, ReturnStatement, Argument,
		InvocationExpression, SimpleMemberAccessExpression, LocalDeclarationStatement:
		return n.ChildNode(0)
	default:
		return nil
	}
}

// Left returns the left operand of a binary or assignment expression.
func (n *Node) Left() *Node {
	if !n.Kind.IsBinary() && !n.Kind.IsAssignment() {
		return nil
	}
	return n.ChildNode(0)
}

// Right returns the right operand of a binary or assignment expression.
func (n *Node) Right() *Node {
	if !n.Kind.IsBinary() && !n.Kind.IsAssignment() {
		return nil
	}
	return n.ChildNode(1)
}

// Operand returns the operand of a unary expression.
func (n *Node) Operand() *Node {
	if n.Kind != LogicalNotExpression && n.Kind != UnaryMinusExpression {
		return nil
	}
	return n.ChildNode(0)
}

// OperatorToken returns the operator of a binary, assignment or unary expression.
func (n *Node) OperatorToken() *Token {
	if !n.Kind.IsBinary() && !n.Kind.IsAssignment() &&
		n.Kind != LogicalNotExpression && n.Kind != UnaryMinusExpression {
		return nil
	}
	tokens := n.ChildTokens()
	if len(tokens) == 0 {
		return nil
	}
	return tokens[0]
}

// Statements returns the statements of a block or compilation unit.
func (n *Node) Statements() []*Node {
	if n.Kind != Block && n.Kind != CompilationUnit {
		return nil
	}
	return n.ChildNodes()
}

// IsBinary reports whether k is a binary expression kind.
func (k Kind) IsBinary() bool {
	return k >= LogicalOrExpression && k <= ModuloExpression
}

// IsAssignment reports whether k is an assignment expression kind.
func (k Kind) IsAssignment() bool {
	return k >= SimpleAssignmentExpression && k <= SubtractAssignmentExpression
}

// IsLiteral reports whether k is a literal expression kind.
func (k Kind) IsLiteral() bool {
	return k >= TrueLiteralExpression && k <= NullLiteralExpression
}
