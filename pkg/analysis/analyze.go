package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.1.0"

// uncategorized groups rules that have no descriptor category.
const uncategorized = "uncategorized"

// Analyze folds a runner.Result into a Report in one pass over the records.
// Fade-outs are tallied in Totals.FadeOuts and never reach any issue count.
func Analyze(result *runner.Result, opts Options) *Report {
	agg := newAggregator(opts)
	if result != nil {
		for i := range result.Files {
			agg.addFile(&result.Files[i])
		}
	}
	return agg.finish()
}

// pair is one (rule, file) occurrence.
type pair struct {
	rule string
	file string
}

type aggregator struct {
	opts       Options
	report     *Report
	rules      map[string]*RuleAnalysis
	files      map[string]*FileAnalysis
	categories map[string]*CategoryAnalysis
	seen       map[pair]struct{}
}

func newAggregator(opts Options) *aggregator {
	return &aggregator{
		opts: opts,
		report: &Report{
			Version:   ReportVersion,
			Timestamp: time.Now(),
		},
		rules:      make(map[string]*RuleAnalysis),
		files:      make(map[string]*FileAnalysis),
		categories: make(map[string]*CategoryAnalysis),
		seen:       make(map[pair]struct{}),
	}
}

func (a *aggregator) addFile(file *runner.FileOutcome) {
	totals := &a.report.Totals
	totals.Files++
	totals.Faults += len(file.Faults)
	if file.Cached {
		totals.FilesCached++
	}
	if file.Error != nil {
		totals.FilesErrored++
		return
	}

	path := a.displayPath(file.Path)
	issuesBefore := totals.Issues
	for j := range file.Records {
		a.addRecord(path, &file.Records[j])
	}
	if totals.Issues > issuesBefore {
		totals.FilesWithIssues++
	}
}

func (a *aggregator) addRecord(path string, rec *lint.Record) {
	severity := rec.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	if rec.FadeOut {
		a.report.Totals.FadeOuts++
		if a.opts.IncludeFadeOuts {
			a.addEntry(path, severity, rec)
		}
		return
	}

	totals := &a.report.Totals
	totals.Issues++
	switch severity {
	case config.SeverityError:
		totals.Errors++
	case config.SeverityWarning:
		totals.Warnings++
	case config.SeverityInfo:
		totals.Infos++
	case config.SeverityHidden:
		totals.Hidden++
	}

	file := a.files[path]
	if file == nil {
		file = &FileAnalysis{Path: path}
		a.files[path] = file
	}
	file.add(severity)

	rule := a.rules[rec.ID]
	if rule == nil {
		rule = &RuleAnalysis{RuleID: rec.ID, RuleName: rec.Name, Category: a.categoryOf(rec.ID)}
		a.rules[rec.ID] = rule
	}
	rule.add(severity)

	category := a.categories[rule.Category]
	if category == nil {
		category = &CategoryAnalysis{Category: rule.Category}
		a.categories[rule.Category] = category
	}
	category.add(severity)

	a.seen[pair{rule: rec.ID, file: path}] = struct{}{}
	a.addEntry(path, severity, rec)
}

func (a *aggregator) addEntry(path string, severity config.Severity, rec *lint.Record) {
	if !a.opts.IncludeDiagnostics {
		return
	}
	a.report.Diagnostics = append(a.report.Diagnostics, DiagnosticEntry{
		FilePath:    path,
		RuleID:      rec.ID,
		RuleName:    rec.Name,
		Severity:    string(severity),
		Message:     rec.Message,
		SpanStart:   rec.SpanStart,
		SpanEnd:     rec.SpanEnd,
		StartLine:   rec.StartLine,
		StartColumn: rec.StartColumn,
		EndLine:     rec.EndLine,
		EndColumn:   rec.EndColumn,
		FadeOut:     rec.FadeOut,
		HelpURI:     rec.HelpURI,
	})
}

func (a *aggregator) categoryOf(id string) string {
	if category := a.opts.Categories[id]; category != "" {
		return category
	}
	return uncategorized
}

func (a *aggregator) displayPath(path string) string {
	if a.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(a.opts.WorkingDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (a *aggregator) finish() *Report {
	for p := range a.seen {
		a.rules[p.rule].Files = append(a.rules[p.rule].Files, p.file)
		a.files[p.file].Rules = append(a.files[p.file].Rules, p.rule)
	}

	ruleIDsByCategory := make(map[string][]string)
	for id, rule := range a.rules {
		slices.Sort(rule.Files)
		ruleIDsByCategory[rule.Category] = append(ruleIDsByCategory[rule.Category], id)
	}
	for _, file := range a.files {
		slices.Sort(file.Rules)
	}

	if a.opts.IncludeByRule {
		a.report.ByRule = collect(a.rules)
		sortView(a.report.ByRule, a.opts, func(r RuleAnalysis) (string, Counts) {
			return r.RuleID, r.Counts
		})
	}
	if a.opts.IncludeByFile {
		a.report.ByFile = collect(a.files)
		sortView(a.report.ByFile, a.opts, func(f FileAnalysis) (string, Counts) {
			return f.Path, f.Counts
		})
	}
	if a.opts.IncludeByCategory {
		for name, category := range a.categories {
			category.Rules = ruleIDsByCategory[name]
			slices.Sort(category.Rules)
		}
		a.report.ByCategory = collect(a.categories)
		sortView(a.report.ByCategory, a.opts, func(c CategoryAnalysis) (string, Counts) {
			return c.Category, c.Counts
		})
	}
	return a.report
}

func collect[T any](m map[string]*T) []T {
	out := make([]T, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		out = append(out, *m[key])
	}
	return out
}

// sortView orders one grouped view. key returns an element's name and
// counts; ties always fall back to the name.
func sortView[T any](items []T, opts Options, key func(T) (string, Counts)) {
	slices.SortStableFunc(items, func(left, right T) int {
		leftName, l := key(left)
		rightName, r := key(right)

		var order int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			order = cmp.Or(
				cmp.Compare(r.Errors, l.Errors),
				cmp.Compare(r.Warnings, l.Warnings),
				cmp.Compare(r.Issues, l.Issues),
			)
		default:
			order = cmp.Compare(l.Issues, r.Issues)
			if opts.SortDesc {
				order = -order
			}
		}
		return cmp.Or(order, cmp.Compare(leftName, rightName))
	})
}
