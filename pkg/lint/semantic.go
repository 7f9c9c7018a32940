package lint

import "github.com/yaklabco/sharplint/pkg/syntax"

// Symbol is an opaque handle to a declared entity. The engine never
// interprets symbols; it only passes them from the semantic model to actions.
type Symbol interface {
	Name() string
}

// Type is an opaque handle to a type.
type Type interface {
	Name() string
}

// SemanticModel answers symbol and type questions about one syntax tree.
// Implementations must be safe for concurrent reads.
type SemanticModel interface {
	// Symbol returns the symbol an expression refers to, or nil.
	Symbol(expr *syntax.Node) Symbol

	// TypeOf returns the type of an expression, or nil when unknown.
	TypeOf(expr *syntax.Node) Type

	// DeclaredSymbol returns the symbol declared by node, or nil.
	DeclaredSymbol(node *syntax.Node) Symbol
}

// SemanticModelFactory builds a semantic model for a tree.
type SemanticModelFactory func(tree *syntax.Tree) SemanticModel

// EmptySemanticModel knows nothing; every query returns nil.
type EmptySemanticModel struct{}

// Symbol returns nil.
func (EmptySemanticModel) Symbol(*syntax.Node) Symbol { return nil }

// TypeOf returns nil.
func (EmptySemanticModel) TypeOf(*syntax.Node) Type { return nil }

// DeclaredSymbol returns nil.
func (EmptySemanticModel) DeclaredSymbol(*syntax.Node) Symbol { return nil }
