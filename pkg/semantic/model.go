// Package semantic provides a minimal semantic model for sharplint trees.
//
// The model is flat: every `var` declaration in a file introduces a local
// symbol, and an identifier refers to the nearest preceding declaration with
// the same name. Types come from literals and flow through declarations,
// parentheses and operators. Anything the binder cannot decide is reported as
// unknown (nil) so analyzers stay conservative.
package semantic

import (
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Type is a named built-in type.
type Type struct {
	name string
}

// Name returns the type's C# keyword name.
func (t *Type) Name() string {
	return t.name
}

// Built-in types known to the binder.
//
//nolint:gochecknoglobals // Shared immutable type handles.
var (
	Bool   = &Type{name: "bool"}
	Int    = &Type{name: "int"}
	Double = &Type{name: "double"}
	String = &Type{name: "string"}
	Null   = &Type{name: "null"}
)

// Symbol is a local variable introduced by a `var` declaration.
type Symbol struct {
	name string

	// Declaration is the LocalDeclarationStatement that introduced the symbol.
	Declaration *syntax.Node

	// Type is the type inferred from the initializer, or nil.
	Type *Type
}

// Name returns the variable name.
func (s *Symbol) Name() string {
	return s.name
}

// Model implements lint.SemanticModel over one tree. It is immutable after
// Build and safe for concurrent reads.
type Model struct {
	declared   map[*syntax.Node]*Symbol
	references map[*syntax.Node]*Symbol
	types      map[*syntax.Node]*Type
	symbols    []*Symbol
}

var _ lint.SemanticModel = (*Model)(nil)

// Symbol returns the symbol an identifier refers to, or nil.
// Parenthesized identifiers resolve to the inner identifier's symbol.
func (m *Model) Symbol(expr *syntax.Node) lint.Symbol {
	expr = unwrapParentheses(expr)
	if sym, ok := m.references[expr]; ok {
		return sym
	}
	return nil
}

// TypeOf returns the inferred type of an expression, or nil when unknown.
func (m *Model) TypeOf(expr *syntax.Node) lint.Type {
	if typ, ok := m.types[expr]; ok && typ != nil {
		return typ
	}
	return nil
}

// DeclaredSymbol returns the symbol declared by a LocalDeclarationStatement, or nil.
func (m *Model) DeclaredSymbol(node *syntax.Node) lint.Symbol {
	if sym, ok := m.declared[node]; ok {
		return sym
	}
	return nil
}

// Symbols returns every declared symbol in source order.
func (m *Model) Symbols() []*Symbol {
	return m.symbols
}

// Factory builds a Model for each tree. It satisfies lint.SemanticModelFactory.
func Factory(tree *syntax.Tree) lint.SemanticModel {
	return Build(tree)
}

func unwrapParentheses(expr *syntax.Node) *syntax.Node {
	for expr != nil && expr.Kind == syntax.ParenthesizedExpression {
		inner := expr.Expression()
		if inner == nil {
			return expr
		}
		expr = inner
	}
	return expr
}
