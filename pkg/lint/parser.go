package lint

import (
	"context"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Parser parses source content into a syntax tree.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/csharp) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw bytes into a syntax tree.
	//
	// Malformed input is not an error: the tree carries missing tokens
	// instead. Errors are reserved for cancellation and internal failures.
	//
	// The returned tree must satisfy:
	//   - tree.Path == path
	//   - bytes.Equal(tree.Text.Content, content)
	//   - tree.Root.Kind == syntax.CompilationUnit
	Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error)
}
