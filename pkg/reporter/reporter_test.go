package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/reporter"
	"github.com/yaklabco/sharplint/pkg/runner"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

const programSource = "if (true) { x(); }\n#region Empty\n#endregion\n"

// createTestResult creates a runner.Result with one finding, one fade-out and
// one fault in Program.cs, a clean cached file and an unreadable file.
func createTestResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:   "src/Program.cs",
				Source: []byte(programSource),
				Records: []lint.Record{
					{
						ID:          "SL1001",
						Name:        "condition-always-true",
						Severity:    config.SeverityWarning,
						Path:        "src/Program.cs",
						SpanStart:   4,
						SpanEnd:     8,
						StartLine:   1,
						StartColumn: 5,
						EndLine:     1,
						EndColumn:   9,
						Message:     "Condition of 'if' statement is always 'true'",
						HelpURI:     "https://example.test/SL1001",
					},
					{
						ID:          "SL1007",
						Name:        "remove-empty-region",
						Severity:    config.SeverityInfo,
						Path:        "src/Program.cs",
						SpanStart:   19,
						SpanEnd:     33,
						StartLine:   2,
						StartColumn: 1,
						EndLine:     2,
						EndColumn:   15,
						Message:     "Remove empty region 'Empty'",
					},
					{
						ID:          "SL1007" + lint.FadeOutSuffix,
						Name:        "remove-empty-region",
						Severity:    config.SeverityHidden,
						Path:        "src/Program.cs",
						SpanStart:   19,
						SpanEnd:     45,
						StartLine:   2,
						StartColumn: 1,
						EndLine:     3,
						EndColumn:   11,
						FadeOut:     true,
					},
				},
				Faults: []lint.Fault{{
					Analyzer: "exploding",
					Kind:     syntax.IfStatement,
					Span:     syntax.NewSpan(0, 18),
					Path:     "src/Program.cs",
					Value:    "boom",
				}},
			},
			{Path: "src/Clean.cs", Source: []byte("x();\n"), Cached: true},
			{Path: "src/Locked.cs", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered:       3,
			FilesProcessed:        2,
			FilesCached:           1,
			FilesErrored:          1,
			FilesWithIssues:       1,
			DiagnosticsTotal:      2,
			FadeOutsTotal:         1,
			Faults:                1,
			DiagnosticsBySeverity: map[string]int{"warning": 1, "info": 1},
		},
	}
}

func plainOptions(buf *bytes.Buffer, format reporter.Format) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	return opts
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "diff is not supported", input: "diff", wantErr: true},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats_AllValid(t *testing.T) {
	t.Parallel()

	for _, f := range reporter.Formats() {
		assert.True(t, f.IsValid(), string(f))
	}
	assert.False(t, reporter.Format("xml").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range reporter.Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(plainOptions(&buf, format))
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
	assert.False(t, opts.ShowFadeOut)
	assert.Equal(t, reporter.SummaryOrderRules, opts.SummaryOrder)
}

func TestReporters_IssueCountExcludesFadeOuts(t *testing.T) {
	t.Parallel()

	for _, format := range reporter.Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			opts := plainOptions(&buf, format)
			opts.ShowFadeOut = true

			rep, err := reporter.New(opts)
			require.NoError(t, err)

			count, err := rep.Report(context.Background(), createTestResult())
			require.NoError(t, err)
			assert.Equal(t, 2, count)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(plainOptions(&buf, reporter.FormatText))

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to check.")
}

func TestTextReporter_WithDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(plainOptions(&buf, reporter.FormatText))

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "src/Program.cs (2 issues)")
	assert.Contains(t, output, "src/Program.cs:1:5")
	assert.Contains(t, output, "Condition of 'if' statement is always 'true'")
	assert.Contains(t, output, "(condition-always-true)")
	assert.Contains(t, output, "if (true) { x(); }")
	assert.Contains(t, output, "^~~~")
	assert.Contains(t, output, "analyzer exploding crashed")
	assert.Contains(t, output, "src/Locked.cs: error: permission denied")
	assert.NotContains(t, output, "unnecessary code", "fade-outs are hidden by default")
	assert.NotContains(t, output, "src/Clean.cs")
}

func TestTextReporter_ShowFadeOut(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatText)
	opts.ShowFadeOut = true
	opts.ShowSummary = false

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "unnecessary code")
	assert.Contains(t, output, "src/Program.cs (2 issues)", "fade-outs do not count as issues")
}

func TestTextReporter_RuleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  config.RuleFormat
		want    string
		notWant string
	}{
		{format: config.RuleFormatName, want: "(condition-always-true)", notWant: "SL1001"},
		{format: config.RuleFormatID, want: "(SL1001)", notWant: "condition-always-true"},
		{format: config.RuleFormatCombined, want: "SL1001/condition-always-true"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			opts := plainOptions(&buf, reporter.FormatText)
			opts.RuleFormat = tt.format
			opts.ShowContext = false
			opts.ShowSummary = false

			result := createTestResult()
			result.Files = result.Files[:1]
			result.Files[0].Records = result.Files[0].Records[:1]
			result.Files[0].Faults = nil

			_, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, buf.String(), tt.notWant)
			}
		})
	}
}

func TestTextReporter_RelativePaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	result := createTestResult()
	for i := range result.Files {
		result.Files[i].Path = filepath.Join(root, result.Files[i].Path)
	}

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatText)
	opts.WorkingDir = root

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "src/Program.cs:1:5")
	assert.NotContains(t, buf.String(), root)
}

func TestTextReporter_Cancelled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	result := createTestResult()
	result.Cancelled = true

	_, err := reporter.NewTextReporter(plainOptions(&buf, reporter.FormatText)).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "results are partial")
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(plainOptions(&buf, reporter.FormatJSON))

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.1.0", output.Version)
	assert.Empty(t, output.Files)
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(plainOptions(&buf, reporter.FormatJSON))

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Files, 3)

	program := output.Files[0]
	assert.Equal(t, "src/Program.cs", program.Path)
	require.Len(t, program.Diagnostics, 2, "fade-outs are omitted by default")
	assert.Equal(t, "SL1001", program.Diagnostics[0].RuleID)
	assert.Equal(t, "condition-always-true", program.Diagnostics[0].RuleName)
	assert.Equal(t, 4, program.Diagnostics[0].SpanStart)
	assert.Equal(t, 8, program.Diagnostics[0].SpanEnd)
	assert.Equal(t, "https://example.test/SL1001", program.Diagnostics[0].HelpURI)
	require.Len(t, program.Faults, 1)
	assert.Equal(t, "exploding", program.Faults[0].Analyzer)
	assert.Equal(t, "boom", program.Faults[0].Message)

	assert.True(t, output.Files[1].Cached)
	assert.Equal(t, "permission denied", output.Files[2].Error)

	assert.Equal(t, 3, output.Summary.Files)
	assert.Equal(t, 1, output.Summary.FilesWithIssues)
	assert.Equal(t, 1, output.Summary.FilesCached)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, 2, output.Summary.Issues)
	assert.Equal(t, 1, output.Summary.FadeOuts)
	assert.Equal(t, 1, output.Summary.Faults)
	assert.Equal(t, map[string]int{"warning": 1, "info": 1}, output.Summary.BySeverity)
}

func TestJSONReporter_RuleAndCategoryViews(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatJSON)
	opts.Descriptors = []*lint.Descriptor{
		{ID: "SL1001", Name: "condition-always-true", Category: lint.CategoryCorrectness},
		{ID: "SL1007", Name: "remove-empty-region", Category: lint.CategoryRedundancy},
	}

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.ByRule, 2)
	assert.Equal(t, "SL1001", output.ByRule[0].RuleID)
	assert.Equal(t, []string{"src/Program.cs"}, output.ByRule[0].Files)

	var categories []string
	for _, c := range output.ByCategory {
		categories = append(categories, c.Category)
	}
	assert.ElementsMatch(t, []string{lint.CategoryCorrectness, lint.CategoryRedundancy}, categories)
}

func TestJSONReporter_ShowFadeOut(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatJSON)
	opts.ShowFadeOut = true

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Files[0].Diagnostics, 3)
	assert.True(t, output.Files[0].Diagnostics[2].FadeOut)
	assert.Equal(t, 2, output.Summary.Issues)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatJSON)
	opts.Compact = true

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestSARIFReporter_Output(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatSARIF)
	opts.ToolVersion = "1.2.3"

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)

	run := output.Runs[0]
	assert.Equal(t, "sharplint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Results, 3, "SARIF always carries fade-outs")

	first := run.Results[0]
	assert.Equal(t, "SL1001", first.RuleID)
	assert.Equal(t, "warning", first.Level)
	assert.Nil(t, first.Properties)
	region := first.Locations[0].PhysicalLocation.Region
	assert.Equal(t, 1, region.StartLine)
	assert.Equal(t, 5, region.StartColumn)
	assert.Equal(t, 4, region.ByteOffset)
	assert.Equal(t, 4, region.ByteLength)

	assert.Equal(t, "note", run.Results[1].Level)

	fade := run.Results[2]
	assert.Equal(t, "SL1007FadeOut", fade.RuleID)
	assert.Equal(t, "none", fade.Level)
	require.NotNil(t, fade.Properties)
	assert.Equal(t, []string{"unnecessary"}, fade.Properties.Tags)

	require.Len(t, run.Invocations, 1)
	invocation := run.Invocations[0]
	assert.True(t, invocation.ExecutionSuccessful)
	require.Len(t, invocation.Notifications, 2)
	assert.Equal(t, "warning", invocation.Notifications[0].Level)
	assert.Contains(t, invocation.Notifications[0].Message.Text, "exploding")
	assert.Equal(t, "error", invocation.Notifications[1].Level)
	assert.Equal(t, "src/Locked.cs", invocation.Notifications[1].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestSARIFReporter_RulesFromDescriptors(t *testing.T) {
	t.Parallel()

	desc := &lint.Descriptor{
		ID:              "SL1001",
		Name:            "condition-always-true",
		Title:           "Condition is always true",
		Description:     "Reports conditions that are the literal true.",
		Category:        "Redundancy",
		DefaultSeverity: config.SeverityWarning,
		HelpURI:         "https://example.test/SL1001",
	}

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatSARIF)
	opts.Descriptors = []*lint.Descriptor{desc, desc}

	_, err := reporter.NewSARIFReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	rules := output.Runs[0].Tool.Driver.Rules
	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID)
	}
	assert.Equal(t, []string{"SL1001", "SL1007", "SL1007FadeOut"}, ids)

	assert.Equal(t, "Condition is always true", rules[0].ShortDescription.Text)
	require.NotNil(t, rules[0].FullDescription)
	assert.Equal(t, "Reports conditions that are the literal true.", rules[0].FullDescription.Text)
	assert.Equal(t, "https://example.test/SL1001", rules[0].HelpURI)
	assert.Equal(t, "Redundancy", rules[0].Properties["category"])
}

func TestTableReporter_Output(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewTableReporter(plainOptions(&buf, reporter.FormatTable)).
		Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "src/Program.cs")
	assert.Contains(t, output, "SL1001")
	assert.Contains(t, output, "src/Locked.cs: error: permission denied")
	assert.Contains(t, output, "analyzer exploding crashed")
}

func TestTableReporter_AllPassed(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "a.cs"}},
		Stats: runner.Stats{FilesProcessed: 1},
	}

	var buf bytes.Buffer
	count, err := reporter.NewTableReporter(plainOptions(&buf, reporter.FormatTable)).
		Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "All files passed!")
}

func TestTableReporter_PerFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatTable)
	opts.PerFile = true

	_, err := reporter.NewTableReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Overall Summary")
}

func TestSummaryReporter_FromResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(plainOptions(&buf, reporter.FormatSummary))
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "Rules Summary")
	assert.Contains(t, output, "condition-always-true")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "src/Program.cs")
}
