package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/internal/cli"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/reporter"
)

// alwaysTrueSource triggers condition-always-true (SL1001, warning) at 1:5.
const alwaysTrueSource = "if (true) { x(); }\n"

// emptyRegionSource triggers remove-empty-region (SL1007, info) and its fade-out.
const emptyRegionSource = "#region Empty\n#endregion\nx();\n"

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T, configContent string, files map[string]string) fixture {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgFile := filepath.Join(t.TempDir(), ".sharplint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(configContent), 0o644))

	return fixture{dir: dir, config: cfgFile}
}

func (f fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "concurrent: true\n", map[string]string{"Program.cs": alwaysTrueSource})

	tests := []struct {
		ruleFormat     string
		wantContains   string
		wantNotContain string
	}{
		{"name", "condition-always-true", "SL1001"},
		{"id", "SL1001", "condition-always-true"},
		{"combined", "SL1001/condition-always-true", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, "lint", "--config", fx.config, "--color", "never",
				"--rule-format", tt.ruleFormat, fx.path("Program.cs"))
			require.NoError(t, err, "warnings do not fail without --strict")

			assert.Contains(t, stdout, tt.wantContains)
			if tt.wantNotContain != "" {
				assert.NotContains(t, stdout, tt.wantNotContain)
			}
		})
	}
}

func TestIntegration_StrictFailsOnWarnings(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{"Program.cs": alwaysTrueSource})

	_, _, err := runCLI(t, "lint", "--config", fx.config, "--strict", fx.path("Program.cs"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintWarnings, cli.ExitCode(err))
}

func TestIntegration_ConfigSeverityFailsRun(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "rules:\n  condition-always-true:\n    severity: error\n",
		map[string]string{"Program.cs": alwaysTrueSource})

	_, _, err := runCLI(t, "lint", "--config", fx.config, "--format", "json", fx.path("Program.cs"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(err))
}

func TestIntegration_DisableRule(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{"Program.cs": alwaysTrueSource})

	stdout, _, err := runCLI(t, "lint", "--config", fx.config, "--format", "json",
		"--disable", "SL1001", "--strict", fx.path("Program.cs"))
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 0, out.Summary.Issues)
}

func TestIntegration_JSONFadeOuts(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{"Regions.cs": emptyRegionSource})

	decode := func(args ...string) reporter.JSONOutput {
		t.Helper()
		stdout, _, err := runCLI(t, append([]string{"lint", "--config", fx.config, "--format", "json"}, args...)...)
		require.NoError(t, err)
		var out reporter.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		return out
	}

	hidden := decode(fx.path("Regions.cs"))
	require.Len(t, hidden.Files, 1)
	require.Len(t, hidden.Files[0].Diagnostics, 1)
	assert.Equal(t, "SL1007", hidden.Files[0].Diagnostics[0].RuleID)
	assert.Equal(t, 1, hidden.Summary.Issues)
	assert.Equal(t, 1, hidden.Summary.FadeOuts)

	shown := decode("--show-fade-out", fx.path("Regions.cs"))
	require.Len(t, shown.Files[0].Diagnostics, 2)
	fadeOuts := 0
	for _, diag := range shown.Files[0].Diagnostics {
		if diag.FadeOut {
			fadeOuts++
			assert.Equal(t, "SL1007FadeOut", diag.RuleID)
		}
	}
	assert.Equal(t, 1, fadeOuts)
	assert.Equal(t, 1, shown.Summary.Issues, "fade-outs never count as issues")
}

func TestIntegration_SARIF(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{"Regions.cs": emptyRegionSource})

	stdout, _, err := runCLI(t, "lint", "--config", fx.config, "--format", "sarif", fx.path("Regions.cs"))
	require.NoError(t, err)

	var sarif reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &sarif))
	require.Len(t, sarif.Runs, 1)
	assert.Equal(t, "sharplint", sarif.Runs[0].Tool.Driver.Name)
	assert.Equal(t, "test-version", sarif.Runs[0].Tool.Driver.Version)
	assert.Len(t, sarif.Runs[0].Results, 2, "SARIF carries the fade-out span")
}

func TestIntegration_DirectoryWalkSkipsIgnored(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{
		"src/Program.cs":       alwaysTrueSource,
		"obj/Debug/Temp.cs":    alwaysTrueSource,
		"src/Form.Designer.cs": alwaysTrueSource,
		"README.md":            "# not C#\n",
	})

	stdout, _, err := runCLI(t, "lint", "--config", fx.config, "--format", "json",
		"--ignore", "**/obj", fx.dir)
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	var paths []string
	for _, f := range out.Files {
		if len(f.Diagnostics) > 0 {
			paths = append(paths, filepath.Base(f.Path))
		}
	}
	assert.Equal(t, []string{"Program.cs"}, paths, "generated and ignored files report nothing")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{"Program.cs": alwaysTrueSource})

	_, _, err := runCLI(t, "lint", "--config", fx.config, "--format", "diff", fx.path("Program.cs"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "severity_default: loud\n", map[string]string{"Program.cs": alwaysTrueSource})

	_, _, err := runCLI(t, "lint", "--config", fx.config, fx.path("Program.cs"))
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Cache(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", map[string]string{"Program.cs": alwaysTrueSource})
	cacheDir := t.TempDir()

	run := func() reporter.JSONOutput {
		t.Helper()
		stdout, _, err := runCLI(t, "lint", "--config", fx.config, "--format", "json",
			"--cache", "--cache-dir", cacheDir, fx.path("Program.cs"))
		require.NoError(t, err)
		var out reporter.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		return out
	}

	first := run()
	second := run()

	assert.Equal(t, 0, first.Summary.FilesCached)
	assert.Equal(t, 1, second.Summary.FilesCached)
	assert.Equal(t, first.Files[0].Diagnostics, second.Files[0].Diagnostics)

	stdout, _, err := runCLI(t, "cache", "dir", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Equal(t, cacheDir, strings.TrimSpace(stdout))

	_, _, err = runCLI(t, "cache", "clear", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Equal(t, 0, run().Summary.FilesCached)
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "rules", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"id": "SL1002"`)

	stdout, _, err = runCLI(t, "rules", "remove-braces", "--format", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# SL1002: Remove braces"))

	stdout, _, err = runCLI(t, "rules", "SL1003", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<table>")

	_, _, err = runCLI(t, "rules", "--format", "yaml")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_RulesDocsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := runCLI(t, "rules", "--docs-dir", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "SL1001.md"))
	assert.FileExists(t, filepath.Join(dir, "index.md"))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, ".sharplint.toml")

	_, _, err := runCLI(t, "init", "--format", "toml", "--pack", "strict", "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	cfg, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Rules)

	_, _, err = runCLI(t, "init", "--format", "toml", "--output", output)
	require.Error(t, err, "existing files are kept without --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = runCLI(t, "init", "--format", "toml", "--full", "--force", "--output", output)
	require.NoError(t, err)

	_, _, err = runCLI(t, "init", "--pack", "nope", "--output", filepath.Join(dir, "x.yml"))
	require.ErrorIs(t, err, cli.ErrUsage)
}
