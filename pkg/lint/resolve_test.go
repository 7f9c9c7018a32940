package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func sevPtr(s config.Severity) *string { return strPtr(string(s)) }

func resolveRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	reg.Register(newMockAnalyzer("first", []syntax.Kind{syntax.Block},
		newDescriptor("SL9001", "first-rule", true)))
	reg.Register(newMockAnalyzer("second", []syntax.Kind{syntax.Block},
		newDescriptor("SL9002", "second-rule", false)))
	return reg
}

func resolvedByID(t *testing.T, reg *lint.Registry, cfg *config.Config) map[string]lint.ResolvedDescriptor {
	t.Helper()

	out := make(map[string]lint.ResolvedDescriptor)
	for _, rd := range lint.ResolveDescriptors(reg, cfg) {
		out[rd.Descriptor.ID] = rd
	}
	return out
}

func TestResolveDescriptors_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lint.ResolveDescriptors(lint.NewRegistry(), config.NewConfig()))
}

func TestResolveDescriptors_Defaults(t *testing.T) {
	t.Parallel()

	got := resolvedByID(t, resolveRegistry(), config.NewConfig())

	require.Len(t, got, 2)
	assert.True(t, got["SL9001"].Enabled)
	assert.False(t, got["SL9002"].Enabled)
	assert.Equal(t, config.SeverityWarning, got["SL9001"].Severity)
	assert.Nil(t, got["SL9001"].Config)
}

func TestResolveDescriptors_NilConfig(t *testing.T) {
	t.Parallel()

	got := resolvedByID(t, resolveRegistry(), nil)
	assert.True(t, got["SL9001"].Enabled)
	assert.False(t, got["SL9002"].Enabled)
}

func TestResolveDescriptors_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(cfg *config.Config)
		id          string
		wantEnabled bool
		wantSev     config.Severity
	}{
		{
			name:        "config disables by id",
			mutate:      func(cfg *config.Config) { cfg.Rules["SL9001"] = config.RuleConfig{Enabled: boolPtr(false)} },
			id:          "SL9001",
			wantEnabled: false,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "config enables by name",
			mutate:      func(cfg *config.Config) { cfg.Rules["second-rule"] = config.RuleConfig{Enabled: boolPtr(true)} },
			id:          "SL9002",
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "severity default",
			mutate:      func(cfg *config.Config) { cfg.SeverityDefault = "error" },
			id:          "SL9001",
			wantEnabled: true,
			wantSev:     config.SeverityError,
		},
		{
			name: "rule severity beats severity default",
			mutate: func(cfg *config.Config) {
				cfg.SeverityDefault = "error"
				cfg.Rules["SL9001"] = config.RuleConfig{Severity: sevPtr(config.SeverityInfo)}
			},
			id:          "SL9001",
			wantEnabled: true,
			wantSev:     config.SeverityInfo,
		},
		{
			name:        "invalid rule severity ignored",
			mutate:      func(cfg *config.Config) { cfg.Rules["SL9001"] = config.RuleConfig{Severity: strPtr("fatal")} },
			id:          "SL9001",
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name: "cli enable beats config",
			mutate: func(cfg *config.Config) {
				cfg.Rules["SL9002"] = config.RuleConfig{Enabled: boolPtr(false)}
				cfg.EnableRules = []string{"second-rule"}
			},
			id:          "SL9002",
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name: "cli disable beats enable",
			mutate: func(cfg *config.Config) {
				cfg.EnableRules = []string{"SL9001"}
				cfg.DisableRules = []string{"first-rule"}
			},
			id:          "SL9001",
			wantEnabled: false,
			wantSev:     config.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			got := resolvedByID(t, resolveRegistry(), cfg)[tt.id]
			assert.Equal(t, tt.wantEnabled, got.Enabled)
			assert.Equal(t, tt.wantSev, got.Severity)
		})
	}
}

func TestResolveDescriptor_InternalIgnoresSeverityDefault(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SeverityDefault = "info"

	rd := lint.ResolveDescriptor(lint.InternalErrorDescriptor, cfg)
	assert.Equal(t, config.SeverityWarning, rd.Severity)
}

func TestAnalyzerOptions(t *testing.T) {
	t.Parallel()

	a := newMockAnalyzer("multi", []syntax.Kind{syntax.Block},
		newDescriptor("SL9001", "one", true),
		newDescriptor("SL9002", "two", true),
	)

	cfg := config.NewConfig()
	assert.Nil(t, lint.AnalyzerOptions(a, cfg))

	cfg.Rules["SL9001"] = config.RuleConfig{Options: map[string]any{"a": 1, "shared": "first"}}
	cfg.Rules["two"] = config.RuleConfig{Options: map[string]any{"b": 2, "shared": "second"}}

	assert.Equal(t, map[string]any{"a": 1, "b": 2, "shared": "second"}, lint.AnalyzerOptions(a, cfg))
}
