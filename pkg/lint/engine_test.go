package lint_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/parser/csharp"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// trueConditionAnalyzer reports if statements whose condition is the literal true.
type trueConditionAnalyzer struct {
	lint.BaseAnalyzer

	stateless bool
}

func newTrueConditionAnalyzer(stateless bool) *trueConditionAnalyzer {
	return &trueConditionAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer("true-condition", testDescriptor),
		stateless:    stateless,
	}
}

func (a *trueConditionAnalyzer) Initialize(r *lint.Registrar) {
	if a.stateless {
		r.EnableConcurrentExecution()
	}
	r.RegisterNodeAction(func(nc *lint.NodeContext) {
		if cond := nc.Node.Condition(); cond != nil && cond.Kind == syntax.TrueLiteralExpression {
			nc.ReportNode(testDescriptor, cond, "true")
		}
	}, syntax.IfStatement)
}

func newTestEngine(analyzers ...lint.Analyzer) *lint.Engine {
	reg := lint.NewRegistry()
	for _, a := range analyzers {
		reg.Register(a)
	}
	return lint.NewEngine(csharp.New(), reg, nil)
}

func singleLineIfTrees(n int) []*syntax.Tree {
	trees := make([]*syntax.Tree, n)
	for i := range n {
		trees[i] = csharp.ParseText(fmt.Sprintf("file%03d.cs", i), fmt.Sprintf("if (true) { x = %d; }", i))
	}
	return trees
}

func totalDiagnostics(results []*lint.TreeResult) int {
	total := 0
	for _, r := range results {
		total += r.Diagnostics.Len()
	}
	return total
}

func TestSession_RunAll_ConcurrentMatchesSequential(t *testing.T) {
	t.Parallel()

	trees := singleLineIfTrees(100)

	sequentialCfg := config.NewConfig()
	sequentialCfg.Concurrent = false
	sequential, err := newTestEngine(newTrueConditionAnalyzer(true)).NewSession(sequentialCfg)
	require.NoError(t, err)
	require.False(t, sequential.Concurrent())

	concurrentCfg := config.NewConfig()
	concurrentCfg.Jobs = 8
	concurrent, err := newTestEngine(newTrueConditionAnalyzer(true)).NewSession(concurrentCfg)
	require.NoError(t, err)
	require.True(t, concurrent.Concurrent())

	seqResults, err := sequential.RunAll(context.Background(), trees)
	require.NoError(t, err)
	conResults, err := concurrent.RunAll(context.Background(), trees)
	require.NoError(t, err)

	assert.Equal(t, 100, totalDiagnostics(seqResults))
	assert.Equal(t, 100, totalDiagnostics(conResults))

	for i := range trees {
		assert.Equal(t, trees[i].Path, conResults[i].Path, "results stay in input order")
		assert.Equal(t, seqResults[i].Diagnostics.Records(), conResults[i].Diagnostics.Records())
	}
}

func TestSession_StatefulAnalyzerRunsSequentially(t *testing.T) {
	t.Parallel()

	session, err := newTestEngine(newTrueConditionAnalyzer(false)).NewSession(config.NewConfig())
	require.NoError(t, err)
	assert.False(t, session.Concurrent())

	results, err := session.RunAll(context.Background(), singleLineIfTrees(10))
	require.NoError(t, err)
	assert.Equal(t, 10, totalDiagnostics(results))
}

func TestSession_RunAll_NilTree(t *testing.T) {
	t.Parallel()

	session, err := newTestEngine(newTrueConditionAnalyzer(true)).NewSession(config.NewConfig())
	require.NoError(t, err)

	trees := singleLineIfTrees(3)
	trees[1] = nil

	_, err = session.RunAll(context.Background(), trees)
	require.ErrorIs(t, err, lint.ErrNilTree)
}

func TestSession_DisabledAnalyzerNotInitialized(t *testing.T) {
	t.Parallel()

	initialized := false
	a := newMockAnalyzer("disabled", nil, newDescriptor("SL9001", "off", false))
	a.initialize = func(*lint.Registrar) { initialized = true }

	session, err := newTestEngine(a).NewSession(config.NewConfig())
	require.NoError(t, err)
	assert.False(t, initialized)
	assert.Empty(t, session.Analyzers())
	assert.Zero(t, session.Dispatcher().Registrations())
}

func TestSession_InitializeErrors(t *testing.T) {
	t.Parallel()

	broken := newMockAnalyzer("broken", nil, newDescriptor("SL9001", "broken", true))
	broken.initialize = func(*lint.Registrar) { panic("nope") }

	session, err := newTestEngine(broken, newTrueConditionAnalyzer(true)).NewSession(config.NewConfig())
	require.Error(t, err)
	require.NotNil(t, session)
	assert.Equal(t, []string{"true-condition"}, session.Analyzers())
}

func TestSession_SeverityOverride(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules[testDescriptor.Name] = config.RuleConfig{Severity: sevPtr(config.SeverityError)}

	session, err := newTestEngine(newTrueConditionAnalyzer(true)).NewSession(cfg)
	require.NoError(t, err)

	result, err := session.Run(context.Background(), csharp.ParseText("a.cs", "if (true) { }"))
	require.NoError(t, err)
	require.Equal(t, 1, result.Diagnostics.Len())
	assert.Equal(t, config.SeverityError, result.Diagnostics.All()[0].Severity)
}

func TestSession_GeneratedCode(t *testing.T) {
	t.Parallel()

	tree := csharp.ParseText("Form1.Designer.cs", "if (true) { }")

	skipping, err := newTestEngine(newTrueConditionAnalyzer(true)).NewSession(config.NewConfig())
	require.NoError(t, err)
	result, err := skipping.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Zero(t, result.Diagnostics.Len())

	cfg := config.NewConfig()
	cfg.GeneratedCode.Analyze = true
	analyzing, err := newTestEngine(newTrueConditionAnalyzer(true)).NewSession(cfg)
	require.NoError(t, err)
	result, err = analyzing.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Diagnostics.Len())
}

func TestSession_ReportFaults(t *testing.T) {
	t.Parallel()

	a := newMockAnalyzer("thrower", nil, newDescriptor("SL9001", "thrower", true))
	a.initialize = func(r *lint.Registrar) {
		r.RegisterNodeAction(func(*lint.NodeContext) { panic("boom") }, syntax.Block)
	}

	tree := csharp.ParseText("a.cs", "{ }")

	quiet, err := newTestEngine(a).NewSession(config.NewConfig())
	require.NoError(t, err)
	result, err := quiet.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Len(t, result.Faults, 1)
	assert.Zero(t, result.Diagnostics.Len())

	cfg := config.NewConfig()
	cfg.ReportFaults = true
	loud, err := newTestEngine(a).NewSession(cfg)
	require.NoError(t, err)
	result, err = loud.Run(context.Background(), tree)
	require.NoError(t, err)
	require.Equal(t, 1, result.Diagnostics.Len())
	assert.Equal(t, lint.InternalErrorDescriptor.ID, result.Diagnostics.All()[0].ID())
}

func TestSession_Signature(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(newTrueConditionAnalyzer(true))

	a, err := engine.NewSession(config.NewConfig())
	require.NoError(t, err)
	b, err := engine.NewSession(config.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, a.Signature(), b.Signature())
	assert.Len(t, a.Signature(), 64)

	cfg := config.NewConfig()
	cfg.DisableRules = []string{testDescriptor.ID}
	c, err := engine.NewSession(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Signature(), c.Signature())
}

func TestEngine_AnalyzeFile(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(newTrueConditionAnalyzer(true))
	session, err := engine.NewSession(config.NewConfig())
	require.NoError(t, err)

	tree, result, err := engine.AnalyzeFile(context.Background(), session, "a.cs", []byte("if (true) { x = 1; }"))
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "a.cs", tree.Path)
	assert.Equal(t, 1, result.Diagnostics.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = engine.AnalyzeFile(ctx, session, "a.cs", []byte("x;"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSession_ReleasesTreesAfterRun(t *testing.T) {
	t.Parallel()

	const edits = 500

	cfg := config.NewConfig()
	cfg.Jobs = 4
	engine := newTestEngine(newTrueConditionAnalyzer(true))
	session, err := engine.NewSession(cfg)
	require.NoError(t, err)

	filter, ok := session.GeneratedFilter().(*lint.GeneratedFilter)
	require.True(t, ok)

	for i := range edits {
		src := fmt.Sprintf("if (true) { x = %d; }", i)
		_, result, err := engine.AnalyzeFile(context.Background(), session, "Program.cs", []byte(src))
		require.NoError(t, err)
		require.Equal(t, 1, result.Diagnostics.Len())
	}
	assert.Zero(t, filter.Cached())

	results, err := session.RunAll(context.Background(), singleLineIfTrees(100))
	require.NoError(t, err)
	assert.Equal(t, 100, totalDiagnostics(results))
	assert.Zero(t, filter.Cached())
	assert.Equal(t, int64(edits+100), filter.Computations())
}
