package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/runner"
)

func rec(id, name string, severity config.Severity) lint.Record {
	return lint.Record{ID: id, Name: name, Severity: severity, StartLine: 1, StartColumn: 1}
}

func fadeOut(id string) lint.Record {
	return lint.Record{ID: id + lint.FadeOutSuffix, Severity: config.SeverityHidden, FadeOut: true}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/repo/src/A.cs",
				Records: []lint.Record{
					rec("SL1001", "condition-always-true", config.SeverityError),
					rec("SL1001", "condition-always-true", config.SeverityError),
					rec("SL1003", "remove-redundant-parentheses", config.SeverityWarning),
					fadeOut("SL1003"),
				},
			},
			{
				Path:   "/repo/src/B.cs",
				Cached: true,
				Records: []lint.Record{
					rec("SL1003", "remove-redundant-parentheses", config.SeverityWarning),
					fadeOut("SL1003"),
				},
			},
			{Path: "/repo/src/C.cs"},
			{Path: "/repo/src/D.cs", Error: errors.New("permission denied")},
			{
				Path:   "/repo/src/E.cs",
				Faults: []lint.Fault{{Analyzer: "remove-braces"}},
			},
		},
	}
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Zero(t, report.Totals.Issues)
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:           5,
		FilesWithIssues: 2,
		FilesCached:     1,
		FilesErrored:    1,
		Issues:          4,
		Errors:          2,
		Warnings:        2,
		FadeOuts:        2,
		Faults:          1,
	}, report.Totals)
	assert.Positive(t, report.Totals.Errors)
}

func TestAnalyze_FadeOutsExcludedFromDiagnostics(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())
	require.Len(t, report.Diagnostics, 4)
	for _, d := range report.Diagnostics {
		assert.False(t, d.FadeOut)
	}

	opts := DefaultOptions()
	opts.IncludeFadeOuts = true
	report = Analyze(sampleResult(), opts)
	assert.Len(t, report.Diagnostics, 6)
	assert.Equal(t, 4, report.Totals.Issues)
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.Len(t, report.ByRule, 2)

	// Equal counts fall back to ID order.
	assert.Equal(t, "SL1001", report.ByRule[0].RuleID)
	assert.Equal(t, "condition-always-true", report.ByRule[0].RuleName)
	assert.Equal(t, 2, report.ByRule[0].Issues)
	assert.Equal(t, 2, report.ByRule[0].Errors)
	assert.Equal(t, []string{"/repo/src/A.cs"}, report.ByRule[0].Files)

	assert.Equal(t, "SL1003", report.ByRule[1].RuleID)
	assert.Equal(t, []string{"/repo/src/A.cs", "/repo/src/B.cs"}, report.ByRule[1].Files)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/repo"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByFile, 2, "files without issues are omitted")
	assert.Equal(t, "src/A.cs", report.ByFile[0].Path)
	assert.Equal(t, 3, report.ByFile[0].Issues)
	assert.Equal(t, []string{"SL1001", "SL1003"}, report.ByFile[0].Rules)
	assert.Equal(t, "src/B.cs", report.ByFile[1].Path)
}

func TestAnalyze_SortOrders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sortBy    SortField
		desc      bool
		wantRules []string
		wantFiles []string
	}{
		{"count desc", SortByCount, true, []string{"SL1001", "SL1003"}, []string{"A.cs", "B.cs"}},
		{"count asc", SortByCount, false, []string{"SL1001", "SL1003"}, []string{"B.cs", "A.cs"}},
		{"alpha", SortByAlpha, false, []string{"SL1001", "SL1003"}, []string{"A.cs", "B.cs"}},
		{"severity", SortBySeverity, false, []string{"SL1001", "SL1003"}, []string{"A.cs", "B.cs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc
			opts.WorkingDir = "/repo/src"
			report := Analyze(sampleResult(), opts)

			var rules, files []string
			for _, r := range report.ByRule {
				rules = append(rules, r.RuleID)
			}
			for _, f := range report.ByFile {
				files = append(files, f.Path)
			}
			assert.Equal(t, tt.wantRules, rules)
			assert.Equal(t, tt.wantFiles, files)
		})
	}
}

func TestAnalyze_OptionalViews(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{})

	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
	assert.Equal(t, 4, report.Totals.Issues)
}

func TestAnalyze_DefaultsMissingSeverityToWarning(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path:    "A.cs",
		Records: []lint.Record{{ID: "SL1005"}},
	}}}

	report := Analyze(result, DefaultOptions())

	assert.Equal(t, 1, report.Totals.Warnings)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "warning", report.Diagnostics[0].Severity)
}

func TestAnalyze_GroupsByCategory(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Categories = map[string]string{
		"SL1001": lint.CategoryCorrectness,
		"SL1003": lint.CategoryRedundancy,
	}
	result := sampleResult()
	result.Files = append(result.Files, runner.FileOutcome{
		Path:    "/repo/src/F.cs",
		Records: []lint.Record{rec("SL9999", "custom", config.SeverityInfo)},
	})

	report := Analyze(result, opts)

	require.Len(t, report.ByCategory, 3)
	assert.Equal(t, "correctness", report.ByCategory[0].Category)
	assert.Equal(t, 2, report.ByCategory[0].Errors)
	assert.Equal(t, "redundancy", report.ByCategory[1].Category)
	assert.Equal(t, []string{"SL1003"}, report.ByCategory[1].Rules)
	assert.Equal(t, uncategorized, report.ByCategory[2].Category)
	assert.Equal(t, 1, report.ByCategory[2].Infos)

	for _, rule := range report.ByRule {
		if rule.RuleID == "SL1003" {
			assert.Equal(t, lint.CategoryRedundancy, rule.Category)
		}
	}
}

func TestAnalyze_HiddenCountsAsIssueOnly(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path:    "A.cs",
		Records: []lint.Record{rec("SL1002", "remove-braces", config.SeverityHidden)},
	}}}

	report := Analyze(result, DefaultOptions())

	assert.Equal(t, 1, report.Totals.Issues)
	assert.Equal(t, 1, report.Totals.Hidden)
	assert.Zero(t, report.Totals.Errors+report.Totals.Warnings+report.Totals.Infos)
	require.Len(t, report.ByFile, 1)
	assert.Equal(t, 1, report.ByFile[0].Issues)
}
