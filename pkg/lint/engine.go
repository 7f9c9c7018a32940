package lint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Engine coordinates parsing and analysis.
type Engine struct {
	// Parser parses source files into syntax trees.
	Parser Parser

	// Registry holds all available analyzers.
	Registry *Registry

	// Semantic builds the semantic model for each tree. Nil means EmptySemanticModel.
	Semantic SemanticModelFactory
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry, semantic SemanticModelFactory) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
		Semantic: semantic,
	}
}

// Session is one configured analysis run: a frozen dispatcher holding every
// enabled analyzer's registrations, resolved severities, and a generated-code
// filter that caches a tree's answer while the tree is being analyzed.
type Session struct {
	dispatcher *Dispatcher
	filter     GeneratedCodeFilter
	resolved   map[string]ResolvedDescriptor
	analyzers  []string
	semantic   SemanticModelFactory
	concurrent bool
	jobs       int
	signature  string
}

// NewSession builds a session for cfg. Analyzers whose descriptors are all
// disabled are not initialized.
func (e *Engine) NewSession(cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	resolved := make(map[string]ResolvedDescriptor)
	for _, rd := range ResolveDescriptors(e.Registry, cfg) {
		resolved[rd.Descriptor.ID] = rd
	}
	internal := ResolveDescriptor(InternalErrorDescriptor, cfg)
	resolved[InternalErrorDescriptor.ID] = internal

	filter := GeneratedCodeFilter(NewGeneratedFilter(cfg.GeneratedCode.Patterns...))
	if cfg.GeneratedCode.Analyze {
		filter = NeverGenerated{}
	}

	session := &Session{
		filter:     filter,
		resolved:   resolved,
		semantic:   e.Semantic,
		concurrent: cfg.Concurrent,
		jobs:       cfg.Jobs,
	}

	session.dispatcher = NewDispatcher(
		WithGeneratedCodeFilter(filter),
		WithSeverityResolver(session.severityOf),
		WithFaultDiagnostics(cfg.ReportFaults && internal.Enabled),
	)

	var errs []error
	for _, analyzer := range e.Registry.Analyzers() {
		if !session.anyEnabled(analyzer) {
			continue
		}
		if err := InitializeAnalyzer(session.dispatcher, analyzer, AnalyzerOptions(analyzer, cfg)); err != nil {
			errs = append(errs, err)
			continue
		}
		session.analyzers = append(session.analyzers, analyzer.Name())
	}

	session.signature = session.computeSignature(cfg)

	if err := errors.Join(errs...); err != nil {
		return session, fmt.Errorf("build session: %w", err)
	}
	return session, nil
}

func (s *Session) anyEnabled(a Analyzer) bool {
	for _, d := range a.SupportedDiagnostics() {
		if rd, ok := s.resolved[d.ID]; ok && rd.Enabled {
			return true
		}
	}
	return false
}

// severityOf resolves descriptors that are not in the registry (e.g., an
// analyzer reporting a descriptor it forgot to list) to their defaults.
func (s *Session) severityOf(d *Descriptor) (config.Severity, bool) {
	if rd, ok := s.resolved[d.ID]; ok {
		return rd.Severity, rd.Enabled
	}
	return d.DefaultSeverity, d.EnabledByDefault
}

// Analyzers returns the names of the initialized analyzers.
func (s *Session) Analyzers() []string {
	return s.analyzers
}

// Dispatcher exposes the session's dispatcher.
func (s *Session) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// GeneratedFilter exposes the session's generated-code filter.
func (s *Session) GeneratedFilter() GeneratedCodeFilter {
	return s.filter
}

// Signature identifies the session's analyzers and their resolved
// configuration. Equal signatures produce equal diagnostics for equal input.
func (s *Session) Signature() string {
	return s.signature
}

func (s *Session) computeSignature(cfg *config.Config) string {
	ids := make([]string, 0, len(s.resolved))
	for id := range s.resolved {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var b strings.Builder
	for _, name := range s.analyzers {
		b.WriteString(name)
		b.WriteByte(';')
	}
	for _, id := range ids {
		rd := s.resolved[id]
		fmt.Fprintf(&b, "%s=%t/%s", id, rd.Enabled, rd.Severity)
		if rd.Config != nil {
			fmt.Fprintf(&b, "%v", rd.Config.Options)
		}
		b.WriteByte(';')
	}
	fmt.Fprintf(&b, "generated=%t%v;faults=%t", cfg.GeneratedCode.Analyze, cfg.GeneratedCode.Patterns, cfg.ReportFaults)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (s *Session) model(tree *syntax.Tree) SemanticModel {
	if s.semantic == nil {
		return EmptySemanticModel{}
	}
	if model := s.semantic(tree); model != nil {
		return model
	}
	return EmptySemanticModel{}
}

// Run analyzes one tree.
func (s *Session) Run(ctx context.Context, tree *syntax.Tree) (*TreeResult, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if f, ok := s.filter.(treeForgetter); ok {
		defer f.Forget(tree)
	}
	return s.dispatcher.Run(ctx, tree, s.model(tree))
}

// treeForgetter is a filter that can release a tree after its run.
type treeForgetter interface {
	Forget(tree *syntax.Tree)
}

// Concurrent reports whether RunAll will walk trees in parallel: the
// configuration asks for it and every registration is stateless.
func (s *Session) Concurrent() bool {
	return s.concurrent && s.dispatcher.ConcurrentSafe()
}

// RunAll analyzes trees and returns one result per tree, in input order.
// Trees are walked in parallel on a bounded worker pool when Concurrent
// reports true, otherwise one after another.
func (s *Session) RunAll(ctx context.Context, trees []*syntax.Tree) ([]*TreeResult, error) {
	results := make([]*TreeResult, len(trees))

	if !s.Concurrent() || len(trees) < 2 {
		for i, tree := range trees {
			result, err := s.Run(ctx, tree)
			if err != nil {
				return results, fmt.Errorf("analyze tree %d: %w", i, err)
			}
			results[i] = result
		}
		return results, nil
	}

	jobs := s.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logging.FromContext(ctx).Debug("analyzing trees concurrently",
		logging.FieldFiles, len(trees),
		logging.FieldJobs, jobs,
	)

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, tree := range trees {
		group.Go(func() error {
			result, err := s.Run(ctx, tree)
			if err != nil {
				return fmt.Errorf("analyze tree %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// AnalyzeFile parses content and analyzes the resulting tree.
func (e *Engine) AnalyzeFile(
	ctx context.Context,
	session *Session,
	path string,
	content []byte,
) (*syntax.Tree, *TreeResult, error) {
	tree, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse error: %w", err)
	}

	result, err := session.Run(ctx, tree)
	if err != nil {
		return tree, nil, err
	}
	return tree, result, nil
}
