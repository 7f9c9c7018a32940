package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/lint/rules"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return registry
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		Registry:           testRegistry(),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".sharplint.yml"), `
concurrent: false
report_faults: true
ignore: ["obj/**"]
rules:
  remove-braces:
    enabled: true
`)
	sub := filepath.Join(root, "src", "App")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, ".sharplint.yml")}, result.LoadedFrom)
	assert.False(t, result.Config.Concurrent, "explicit false in a file is honored")
	assert.True(t, result.Config.ReportFaults)
	assert.Equal(t, []string{"obj/**"}, result.Config.Ignore)
	assert.Equal(t, []string{config.DefaultInclude}, result.Config.Include)

	require.Contains(t, result.Config.Rules, "SL1002", "rule names are normalized to IDs")
	assert.True(t, *result.Config.Rules["SL1002"].Enabled)
}

func TestLoad_TOMLConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".sharplint.toml"), `
severity_default = "error"

[rules.SL1001.options]
loops = true
`)

	result, err := Load(context.Background(), isolated(root))
	require.NoError(t, err)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, true, result.Config.Rules["SL1001"].Options["loops"])
}

func TestLoad_ExplicitConfigSkipsProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".sharplint.yml"), "severity_default: info\n")
	explicit := filepath.Join(root, "ci", "lint.yaml")
	writeFile(t, explicit, "severity_default: error\n")

	opts := isolated(root)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".sharplint.yml"), `
severity_default: info
rules:
  SL1003:
    severity: warning
    options:
      keep: true
`)

	severity := "error"
	opts := isolated(root)
	opts.CLIConfig = &config.Config{
		Format: config.FormatJSON,
		Jobs:   4,
		Rules: map[string]config.RuleConfig{
			"SL1003": {Severity: &severity},
		},
		DisableRules: []string{"SL1001"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "info", cfg.SeverityDefault)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"SL1001"}, cfg.DisableRules)
	assert.Equal(t, "error", *cfg.Rules["SL1003"].Severity)
	assert.Equal(t, true, cfg.Rules["SL1003"].Options["keep"], "options survive a deep merge")
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad severity", ".sharplint.yml", "severity_default: fatal\n", "severity_default"},
		{"bad rule severity", ".sharplint.yml", "rules:\n  SL1001:\n    severity: loud\n", "rules.SL1001.severity"},
		{"bad glob", ".sharplint.yml", "ignore: [\"[\"]\n", "invalid glob"},
		{"malformed yaml", ".sharplint.yml", "rules: [\n", "parse yaml"},
		{"unknown toml key", ".sharplint.toml", "severty_default = \"error\"\n", "unknown key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
			writeFile(t, filepath.Join(root, tt.file), tt.content)

			_, err := Load(context.Background(), isolated(root))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".sharplint.yml"), "rules:\n  no-such-rule:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(root))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no-such-rule")
}

func TestLoad_DuplicateRuleKeysMerge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".sharplint.yml"), `
rules:
  SL1002:
    enabled: true
  remove-braces:
    severity: warning
`)

	result, err := Load(context.Background(), isolated(root))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.Contains(result.Warnings[0], "both configure SL1002"))

	rc := result.Config.Rules["SL1002"]
	require.NotNil(t, rc.Enabled)
	require.NotNil(t, rc.Severity)
	assert.True(t, *rc.Enabled)
	assert.Equal(t, "warning", *rc.Severity)
	assert.NotContains(t, result.Config.Rules, "remove-braces")
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".sharplint.yml"), "concurrent: true\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sharplint.toml"), "")
	writeFile(t, filepath.Join(dir, ".sharplint.yaml"), "")

	path, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".sharplint.yaml"), path)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SHARPLINT_FORMAT", "sarif")
	t.Setenv("SHARPLINT_JOBS", "3")
	t.Setenv("SHARPLINT_CONCURRENT", "false")
	t.Setenv("SHARPLINT_IGNORE", " obj/** , bin/** ,")
	t.Setenv("SHARPLINT_CACHE_ENABLED", "1")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, config.FormatSARIF, cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.False(t, cfg.Concurrent)
	assert.Equal(t, []string{"obj/**", "bin/**"}, cfg.Ignore)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("SHARPLINT_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	require.ErrorContains(t, err, "SHARPLINT_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "SHARPLINT_REPORT_FAULTS")
	assert.Equal(t, "SHARPLINT_CACHE_DIR", GetEnvVarName("cache.dir"))
	assert.Empty(t, GetEnvVarName("nope"))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	enabled := true
	a := config.NewConfig()
	b := &config.Config{Ignore: []string{"gen/**"}, ReportFaults: true}
	c := &config.Config{Rules: map[string]config.RuleConfig{"SL1002": {Enabled: &enabled}}}

	merged := MergeAll(a, b, c)
	assert.Equal(t, []string{"gen/**"}, merged.Ignore)
	assert.True(t, merged.ReportFaults)
	assert.True(t, merged.Concurrent)
	assert.True(t, *merged.Rules["SL1002"].Enabled)
	assert.Empty(t, a.Ignore, "inputs are not modified")
	assert.Nil(t, MergeAll())
}

func TestValidate_NilRegistrySkipsUnknownRules(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["whatever"] = config.RuleConfig{}
	result := Validate(cfg, nil)
	assert.True(t, result.Valid())
	assert.False(t, result.HasWarnings())

	cfg.Jobs = -1
	cfg.Format = "xml"
	result = ValidateWithFile(cfg, nil, ".sharplint.yml")
	assert.Len(t, result.Errors, 2)
	for _, msg := range result.AllMessages() {
		assert.Contains(t, msg, ".sharplint.yml")
	}
}
