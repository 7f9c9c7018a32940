package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Registration and run errors. These indicate caller bugs and are returned
// synchronously from the API that detected them.
var (
	ErrNilContext  = errors.New("context is nil")
	ErrNilTree     = errors.New("syntax tree is nil")
	ErrNoKinds     = errors.New("registration has no node kinds")
	ErrInvalidKind = errors.New("registration kind is not a node kind")
	ErrNilAction   = errors.New("registration action is nil")
	ErrFrozen      = errors.New("dispatcher is frozen after the first run")
	ErrNilAnalyzer = errors.New("analyzer is nil")
)

// PreconditionError reports a misuse of the reporting API from inside an
// action. It is raised with panic and contained by the dispatcher's
// per-callback boundary, so only the offending action loses its diagnostics.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Op + ": " + e.Msg
}

func precondition(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// Fault records an action that panicked.
type Fault struct {
	// Analyzer is the name of the analyzer owning the registration.
	Analyzer string

	// Kind is the kind of the node being visited.
	Kind syntax.Kind

	// Span is the span of the node being visited.
	Span syntax.TextSpan

	// Path is the tree's file path.
	Path string

	// Value is the recovered panic value.
	Value any
}

func (f Fault) Error() string {
	return fmt.Sprintf("analyzer %q faulted on %s at %s in %q: %v", f.Analyzer, f.Kind, f.Span, f.Path, f.Value)
}

// Unwrap exposes a recovered error value.
func (f Fault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}
