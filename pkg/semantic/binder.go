package semantic

import (
	"strings"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Build binds tree and returns its semantic model. A nil tree yields an
// empty model.
func Build(tree *syntax.Tree) *Model {
	b := &binder{
		model: &Model{
			declared:   make(map[*syntax.Node]*Symbol),
			references: make(map[*syntax.Node]*Symbol),
			types:      make(map[*syntax.Node]*Type),
		},
		scope: make(map[string]*Symbol),
	}

	if tree == nil || tree.Root == nil {
		return b.model
	}

	_ = syntax.WalkWithContext(tree.Root, nil, b.leave) //nolint:errcheck // visitor never returns error

	return b.model
}

// binder walks the tree in post-order so that children are typed before
// their parent and an initializer is bound before its own declaration.
type binder struct {
	model *Model
	scope map[string]*Symbol
}

func (b *binder) leave(node *syntax.Node) error {
	switch {
	case node.Kind == syntax.LocalDeclarationStatement:
		b.declare(node)
	case node.Kind == syntax.IdentifierName:
		b.bindIdentifier(node)
	case node.Kind.IsLiteral():
		b.setType(node, literalType(node))
	case node.Kind == syntax.ParenthesizedExpression:
		b.setType(node, b.typeOf(node.Expression()))
	case node.Kind.IsAssignment():
		b.setType(node, b.typeOf(node.Left()))
	case node.Kind.IsBinary():
		b.setType(node, b.binaryType(node))
	case node.Kind == syntax.LogicalNotExpression:
		b.setType(node, Bool)
	case node.Kind == syntax.UnaryMinusExpression:
		if operand := b.typeOf(node.Operand()); operand == Int || operand == Double {
			b.setType(node, operand)
		}
	}
	return nil
}

func (b *binder) declare(node *syntax.Node) {
	name := node.ChildToken(syntax.IdentifierToken)
	if name == nil || name.IsMissing() {
		return
	}

	sym := &Symbol{
		name:        name.Text(),
		Declaration: node,
	}
	if init := node.Expression(); init != nil {
		// `var x = null;` does not compile in C#; leave the type unknown.
		if typ := b.typeOf(init); typ != Null {
			sym.Type = typ
		}
	}

	b.scope[sym.name] = sym
	b.model.declared[node] = sym
	b.model.symbols = append(b.model.symbols, sym)
}

func (b *binder) bindIdentifier(node *syntax.Node) {
	// The member name in a.b is not a local.
	if parent := node.Parent(); parent != nil && parent.Kind == syntax.SimpleMemberAccessExpression && parent.ChildNode(1) == node {
		return
	}

	tok := node.FirstToken()
	if tok == nil || tok.IsMissing() {
		return
	}

	sym, ok := b.scope[strings.TrimPrefix(tok.Text(), "@")]
	if !ok {
		return
	}
	b.model.references[node] = sym
	b.setType(node, sym.Type)
}

func (b *binder) setType(node *syntax.Node, typ *Type) {
	if typ != nil {
		b.model.types[node] = typ
	}
}

func (b *binder) typeOf(node *syntax.Node) *Type {
	if node == nil {
		return nil
	}
	return b.model.types[node]
}

func (b *binder) binaryType(node *syntax.Node) *Type {
	switch node.Kind {
	case syntax.LogicalOrExpression, syntax.LogicalAndExpression,
		syntax.EqualsExpression, syntax.NotEqualsExpression,
		syntax.LessThanExpression, syntax.LessThanOrEqualExpression,
		syntax.GreaterThanExpression, syntax.GreaterThanOrEqualExpression:
		return Bool
	}

	left, right := b.typeOf(node.Left()), b.typeOf(node.Right())
	switch {
	case node.Kind == syntax.AddExpression && (left == String || right == String):
		return String
	case left == Int && right == Int:
		return Int
	case (left == Int || left == Double) && (right == Int || right == Double):
		return Double
	default:
		return nil
	}
}

func literalType(node *syntax.Node) *Type {
	switch node.Kind {
	case syntax.TrueLiteralExpression, syntax.FalseLiteralExpression:
		return Bool
	case syntax.StringLiteralExpression:
		tok := node.FirstToken()
		if tok != nil && strings.HasPrefix(tok.Text(), "'") {
			return nil // char
		}
		return String
	case syntax.NullLiteralExpression:
		return Null
	case syntax.NumericLiteralExpression:
		return numericType(node.Text())
	default:
		return nil
	}
}

// numericType classifies a numeric literal. Only unsuffixed integers are int
// and unsuffixed reals or d/D-suffixed literals are double; other suffixes
// (L, u, f, m) name types the binder does not model.
func numericType(text string) *Type {
	text = strings.ReplaceAll(text, "_", "")
	if text == "" {
		return nil
	}

	switch last := text[len(text)-1]; {
	case last == 'd' || last == 'D':
		return Double
	case last >= '0' && last <= '9':
		if strings.Contains(text, ".") {
			return Double
		}
		return Int
	default:
		return nil
	}
}
