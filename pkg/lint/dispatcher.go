package lint

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Action is the callback an analyzer registers for node kinds.
// Actions report through the context and must not retain it.
type Action func(nc *NodeContext)

// SeverityResolver returns the effective severity of a descriptor and whether
// diagnostics for it should be kept at all.
type SeverityResolver func(d *Descriptor) (config.Severity, bool)

// DefaultSeverity keeps every descriptor at its default severity.
func DefaultSeverity(d *Descriptor) (config.Severity, bool) {
	return d.DefaultSeverity, true
}

type registration struct {
	analyzer   string
	action     Action
	options    map[string]any
	concurrent bool
	generated  bool
}

// RegistrationOption configures a single registration.
type RegistrationOption func(*registration)

// ForAnalyzer names the analyzer that owns the registration. The name appears
// in faults and logs.
func ForAnalyzer(name string) RegistrationOption {
	return func(r *registration) { r.analyzer = name }
}

// WithOptions attaches rule options readable through NodeContext.Option.
func WithOptions(options map[string]any) RegistrationOption {
	return func(r *registration) { r.options = options }
}

// Stateless declares the action concurrency-safe: it reads only its
// NodeContext and immutable data, so trees may be walked in parallel.
func Stateless() RegistrationOption {
	return func(r *registration) { r.concurrent = true }
}

// IncludeGenerated runs the action on generated code too.
func IncludeGenerated() RegistrationOption {
	return func(r *registration) { r.generated = true }
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithGeneratedCodeFilter sets the filter consulted before each action.
func WithGeneratedCodeFilter(filter GeneratedCodeFilter) DispatcherOption {
	return func(d *Dispatcher) { d.filter = filter }
}

// WithSeverityResolver sets how descriptor severities are resolved.
func WithSeverityResolver(resolver SeverityResolver) DispatcherOption {
	return func(d *Dispatcher) { d.severity = resolver }
}

// WithFaultDiagnostics reports every fault as an InternalErrorDescriptor diagnostic.
func WithFaultDiagnostics(enabled bool) DispatcherOption {
	return func(d *Dispatcher) { d.reportFaults = enabled }
}

// Dispatcher walks a syntax tree once and fans each node out to the actions
// registered for its kind.
//
// Registrations are stored in a table indexed by syntax.Kind, so a run costs
// O(nodes + invocations) however many analyzers are registered. The
// dispatcher freezes on its first Run; after that it is read-only and Run may
// be called from multiple goroutines with different trees.
type Dispatcher struct {
	mu     sync.Mutex
	frozen bool
	table  [][]*registration
	count  int

	filter       GeneratedCodeFilter
	severity     SeverityResolver
	reportFaults bool
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		table:    make([][]*registration, syntax.KindCount),
		filter:   NeverGenerated{},
		severity: DefaultSeverity,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register records that action runs once for every node whose kind is in
// kinds. Duplicate kinds are collapsed. Actions registered for the same kind
// run in registration order.
func (d *Dispatcher) Register(kinds []syntax.Kind, action Action, opts ...RegistrationOption) error {
	if action == nil {
		return ErrNilAction
	}
	if len(kinds) == 0 {
		return ErrNoKinds
	}
	for _, kind := range kinds {
		if !kind.IsNode() {
			return fmt.Errorf("%w: %s", ErrInvalidKind, kind)
		}
	}

	reg := &registration{action: action}
	for _, opt := range opts {
		opt(reg)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen {
		return ErrFrozen
	}

	seen := make([]syntax.Kind, 0, len(kinds))
	for _, kind := range kinds {
		if slices.Contains(seen, kind) {
			continue
		}
		seen = append(seen, kind)
		d.table[kind] = append(d.table[kind], reg)
	}
	d.count++

	return nil
}

// Registrations returns the number of successful Register calls.
func (d *Dispatcher) Registrations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// ConcurrentSafe reports whether every registration declared itself
// concurrency-safe. An empty dispatcher is trivially safe.
//
// Statelessness is a documented precondition of Stateless registrations;
// the dispatcher cannot verify it.
func (d *Dispatcher) ConcurrentSafe() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, regs := range d.table {
		for _, reg := range regs {
			if !reg.concurrent {
				return false
			}
		}
	}
	return true
}

// TreeResult is the outcome of one Run.
type TreeResult struct {
	// Path is the walked tree's path.
	Path string

	// Diagnostics are collected in visitation order.
	Diagnostics *DiagnosticSet

	// Faults lists actions that panicked. Their diagnostics were discarded.
	Faults []Fault

	// NodesVisited counts nodes visited before completion or cancellation.
	NodesVisited int

	// Cancelled is true when the walk stopped early because ctx was done.
	Cancelled bool
}

// Run walks tree in pre-order, invoking matching actions for every node.
//
// ctx is checked between node visits; when it is done the walk stops and the
// diagnostics collected so far are returned with Cancelled set. Cancellation
// is not an error. Panics raised by actions are contained per invocation and
// never escape Run.
func (d *Dispatcher) Run(ctx context.Context, tree *syntax.Tree, model SemanticModel) (*TreeResult, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if tree == nil || tree.Root == nil {
		return nil, ErrNilTree
	}
	if model == nil {
		model = EmptySemanticModel{}
	}

	d.mu.Lock()
	d.frozen = true
	d.mu.Unlock()

	result := &TreeResult{
		Path:        tree.Path,
		Diagnostics: NewDiagnosticSet(),
	}

	var generated, generatedKnown bool
	isGenerated := func() bool {
		if !generatedKnown {
			generated = d.filter.IsGeneratedCode(tree)
			generatedKnown = true
		}
		return generated
	}

	stack := []*syntax.Node{tree.Root}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result.NodesVisited++

		for _, reg := range d.table[node.Kind] {
			if !reg.generated && isGenerated() {
				continue
			}
			d.invoke(ctx, reg, node, tree, model, result)
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if child, ok := children[i].(*syntax.Node); ok {
				stack = append(stack, child)
			}
		}
	}

	return result, nil
}

// invoke runs one action inside its own fault boundary. Diagnostics are
// buffered and only committed when the action returns normally.
func (d *Dispatcher) invoke(
	ctx context.Context,
	reg *registration,
	node *syntax.Node,
	tree *syntax.Tree,
	model SemanticModel,
	result *TreeResult,
) {
	nc := &NodeContext{
		Reporter: Reporter{tree: tree, trigger: node, severity: d.severity},
		Ctx:      ctx,
		Node:     node,
		Tree:     tree,
		Semantic: model,
		Analyzer: reg.analyzer,
		options:  reg.options,
		filter:   d.filter,
	}

	defer func() {
		recovered := recover()
		if recovered == nil {
			result.Diagnostics.Append(nc.diagnostics...)
			return
		}

		fault := Fault{
			Analyzer: reg.analyzer,
			Kind:     node.Kind,
			Span:     node.Span(),
			Path:     tree.Path,
			Value:    recovered,
		}
		result.Faults = append(result.Faults, fault)

		logging.FromContext(ctx).Warn("analyzer faulted",
			logging.FieldAnalyzer, reg.analyzer,
			logging.FieldKind, node.Kind.String(),
			logging.FieldPath, tree.Path,
			logging.FieldSpan, node.Span().String(),
			logging.FieldPanic, recovered,
		)

		if d.reportFaults {
			severity, keep := d.severity(InternalErrorDescriptor)
			if keep {
				result.Diagnostics.Append(Diagnostic{
					Descriptor: InternalErrorDescriptor,
					Location:   Location{Tree: tree, Span: node.Span()},
					Args:       []any{reg.analyzer, node.Kind, recovered},
					Severity:   severity,
				})
			}
		}
	}()

	reg.action(nc)
}
