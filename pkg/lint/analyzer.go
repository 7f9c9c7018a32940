package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Analyzer is one entry of the rule catalog: a set of descriptors and the
// node actions that report them.
type Analyzer interface {
	// Name returns the unique analyzer name (e.g., "remove-braces").
	Name() string

	// SupportedDiagnostics returns the primary descriptors the analyzer reports.
	// Fade-out descriptors are derived and need not be listed.
	SupportedDiagnostics() []*Descriptor

	// Initialize registers node actions. It is called once per session.
	Initialize(r *Registrar)
}

// BaseAnalyzer provides Name and SupportedDiagnostics.
// Embed this in analyzer implementations and implement Initialize.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseAnalyzer struct {
	name        string
	descriptors []*Descriptor
}

// NewBaseAnalyzer creates a BaseAnalyzer with the given properties.
func NewBaseAnalyzer(name string, descriptors ...*Descriptor) BaseAnalyzer {
	return BaseAnalyzer{name: name, descriptors: descriptors}
}

// Name returns the analyzer name.
func (a *BaseAnalyzer) Name() string {
	return a.name
}

// SupportedDiagnostics returns the analyzer's descriptors.
func (a *BaseAnalyzer) SupportedDiagnostics() []*Descriptor {
	return a.descriptors
}

// Registrar collects an analyzer's registrations during Initialize.
// Execution flags apply to every registration of the analyzer, regardless of
// the order in which they are called.
type Registrar struct {
	analyzer   string
	options    map[string]any
	concurrent bool
	generated  bool
	pending    []pendingAction
	errs       []error
}

type pendingAction struct {
	kinds  []syntax.Kind
	action Action
}

// NewRegistrar creates a registrar for the named analyzer with its rule options.
func NewRegistrar(analyzer string, options map[string]any) *Registrar {
	return &Registrar{analyzer: analyzer, options: options}
}

// RegisterNodeAction registers action for every node of the given kinds.
func (r *Registrar) RegisterNodeAction(action Action, kinds ...syntax.Kind) {
	if action == nil {
		r.errs = append(r.errs, ErrNilAction)
		return
	}
	if len(kinds) == 0 {
		r.errs = append(r.errs, ErrNoKinds)
		return
	}
	r.pending = append(r.pending, pendingAction{kinds: kinds, action: action})
}

// EnableConcurrentExecution declares every action of the analyzer stateless.
func (r *Registrar) EnableConcurrentExecution() {
	r.concurrent = true
}

// AnalyzeGeneratedCode opts the analyzer into running on generated code.
func (r *Registrar) AnalyzeGeneratedCode() {
	r.generated = true
}

// Options returns the analyzer's configured rule options.
func (r *Registrar) Options() map[string]any {
	return r.options
}

// Apply adds the collected registrations to d. Errors recorded during
// Initialize are returned together with any registration errors.
func (r *Registrar) Apply(d *Dispatcher) error {
	errs := append([]error(nil), r.errs...)

	opts := []RegistrationOption{ForAnalyzer(r.analyzer), WithOptions(r.options)}
	if r.concurrent {
		opts = append(opts, Stateless())
	}
	if r.generated {
		opts = append(opts, IncludeGenerated())
	}

	for _, p := range r.pending {
		if err := d.Register(p.kinds, p.action, opts...); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("initialize analyzer %q: %w", r.analyzer, err)
	}
	return nil
}

// InitializeAnalyzer runs a.Initialize and applies its registrations to d.
// A panicking Initialize is reported as an error.
func InitializeAnalyzer(d *Dispatcher, a Analyzer, options map[string]any) (err error) {
	if a == nil {
		return ErrNilAnalyzer
	}

	registrar := NewRegistrar(a.Name(), options)

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("initialize analyzer %q: %w", a.Name(), Fault{Analyzer: a.Name(), Value: recovered})
		}
	}()

	a.Initialize(registrar)
	return registrar.Apply(d)
}
