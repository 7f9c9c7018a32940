package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// mockAnalyzer reports every node of its kinds with its first descriptor.
type mockAnalyzer struct {
	lint.BaseAnalyzer

	kinds      []syntax.Kind
	concurrent bool
	generated  bool
	initialize func(r *lint.Registrar)
}

func newMockAnalyzer(name string, kinds []syntax.Kind, descriptors ...*lint.Descriptor) *mockAnalyzer {
	return &mockAnalyzer{
		BaseAnalyzer: lint.NewBaseAnalyzer(name, descriptors...),
		kinds:        kinds,
	}
}

func (m *mockAnalyzer) Initialize(r *lint.Registrar) {
	if m.initialize != nil {
		m.initialize(r)
		return
	}
	if m.concurrent {
		r.EnableConcurrentExecution()
	}
	if m.generated {
		r.AnalyzeGeneratedCode()
	}
	desc := m.SupportedDiagnostics()[0]
	r.RegisterNodeAction(func(nc *lint.NodeContext) {
		nc.ReportNode(desc, nc.Node, nc.Node.Kind.String())
	}, m.kinds...)
}

func newDescriptor(id, name string, enabled bool) *lint.Descriptor {
	return &lint.Descriptor{
		ID:               id,
		Name:             name,
		MessageFormat:    "%s",
		Category:         lint.CategoryStyle,
		DefaultSeverity:  config.SeverityWarning,
		EnabledByDefault: enabled,
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	desc := newDescriptor("SL9001", "no-trailing-braces", true)
	reg.Register(newMockAnalyzer("braces", []syntax.Kind{syntax.Block}, desc))

	tests := []struct {
		key    string
		wantOK bool
	}{
		{key: "SL9001", wantOK: true},
		{key: "no-trailing-braces", wantOK: true},
		{key: "SL9999", wantOK: false},
		{key: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			got, ok := reg.Get(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Same(t, desc, got)
			}
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	desc := newDescriptor("SL9001", "no-trailing-braces", true)
	analyzer := newMockAnalyzer("braces", []syntax.Kind{syntax.Block}, desc)
	reg.Register(analyzer)

	id, got, owner, ok := reg.Resolve("no-trailing-braces")
	require.True(t, ok)
	assert.Equal(t, "SL9001", id)
	assert.Same(t, desc, got)
	assert.Same(t, analyzer, owner)

	_, _, _, ok = reg.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistry_SortedListings(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newMockAnalyzer("zeta", []syntax.Kind{syntax.Block},
		newDescriptor("SL9003", "c", true)))
	reg.Register(newMockAnalyzer("alpha", []syntax.Kind{syntax.Block},
		newDescriptor("SL9002", "b", true), newDescriptor("SL9001", "a", true)))

	names := make([]string, 0, 2)
	for _, a := range reg.Analyzers() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)
	assert.Equal(t, []string{"SL9001", "SL9002", "SL9003"}, reg.IDs())

	descs := reg.Descriptors()
	require.Len(t, descs, 3)
	assert.Equal(t, "SL9001", descs[0].ID)

	a, ok := reg.Analyzer("zeta")
	require.True(t, ok)
	assert.Equal(t, "zeta", a.Name())
}

func TestRegistry_ReplaceByName(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newMockAnalyzer("same", []syntax.Kind{syntax.Block}, newDescriptor("SL9001", "a", true)))
	reg.Register(newMockAnalyzer("same", []syntax.Kind{syntax.Block}, newDescriptor("SL9001", "a", false)))

	assert.Len(t, reg.Analyzers(), 1)
	d, ok := reg.Get("SL9001")
	require.True(t, ok)
	assert.False(t, d.EnabledByDefault)
}

func TestInitializeAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("flags apply to every registration", func(t *testing.T) {
		t.Parallel()

		a := newMockAnalyzer("m", nil, newDescriptor("SL9001", "a", true))
		a.initialize = func(r *lint.Registrar) {
			r.RegisterNodeAction(func(*lint.NodeContext) {}, syntax.Block)
			r.EnableConcurrentExecution()
			assert.Equal(t, "v", r.Options()["k"])
		}

		d := lint.NewDispatcher()
		require.NoError(t, lint.InitializeAnalyzer(d, a, map[string]any{"k": "v"}))
		assert.Equal(t, 1, d.Registrations())
		assert.True(t, d.ConcurrentSafe())
	})

	t.Run("registration errors are joined", func(t *testing.T) {
		t.Parallel()

		a := newMockAnalyzer("m", nil, newDescriptor("SL9001", "a", true))
		a.initialize = func(r *lint.Registrar) {
			r.RegisterNodeAction(nil, syntax.Block)
			r.RegisterNodeAction(func(*lint.NodeContext) {})
			r.RegisterNodeAction(func(*lint.NodeContext) {}, syntax.IfKeyword)
		}

		err := lint.InitializeAnalyzer(lint.NewDispatcher(), a, nil)
		require.ErrorIs(t, err, lint.ErrNilAction)
		require.ErrorIs(t, err, lint.ErrNoKinds)
		require.ErrorIs(t, err, lint.ErrInvalidKind)
		assert.Contains(t, err.Error(), `"m"`)
	})

	t.Run("panicking initialize", func(t *testing.T) {
		t.Parallel()

		a := newMockAnalyzer("m", nil, newDescriptor("SL9001", "a", true))
		a.initialize = func(*lint.Registrar) { panic("init failed") }

		err := lint.InitializeAnalyzer(lint.NewDispatcher(), a, nil)
		require.Error(t, err)

		var fault lint.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, "init failed", fault.Value)
	})

	t.Run("nil analyzer", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, lint.InitializeAnalyzer(lint.NewDispatcher(), nil, nil), lint.ErrNilAnalyzer)
	})
}
