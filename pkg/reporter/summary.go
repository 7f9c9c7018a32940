package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/sharplint/internal/ui/pretty"
	"github.com/yaklabco/sharplint/pkg/analysis"
	"github.com/yaklabco/sharplint/pkg/config"
)

// Summary table layout. Every table shares one width.
const (
	tableWidth    = 92
	labelWidth    = 60
	countWidth    = 7
	warningsWidth = 8
)

// summaryRow is one line of a summary table.
type summaryRow struct {
	label    string
	issues   int
	errors   int
	warnings int
	infos    int
}

// summaryTable is a titled group of rows sharing a label column.
type summaryTable struct {
	title      string
	labelTitle string
	rows       []summaryRow
	// keepTail truncates long labels from the front, keeping file names.
	keepTail bool
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		if report.Totals.Faults > 0 {
			fmt.Fprintln(r.out, r.styles.Fault.Render(fmt.Sprintf("%d analyzer faults", report.Totals.Faults)))
		}
		return nil
	}

	for _, table := range r.tables(report) {
		if len(table.rows) == 0 {
			continue
		}
		r.renderTable(table)
		fmt.Fprintln(r.out)
	}
	r.renderTotals(report.Totals)

	return nil
}

// tables returns the summary tables in the configured order.
func (r *SummaryRenderer) tables(report *analysis.Report) []summaryTable {
	rules := summaryTable{title: "Rules Summary", labelTitle: "Rule"}
	for _, rule := range report.ByRule {
		rules.rows = append(rules.rows, summaryRow{
			label:    config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName),
			issues:   rule.Issues,
			errors:   rule.Errors,
			warnings: rule.Warnings,
			infos:    rule.Infos,
		})
	}

	files := summaryTable{title: "Files Summary", labelTitle: "File", keepTail: true}
	for _, file := range report.ByFile {
		files.rows = append(files.rows, summaryRow{
			label:    file.Path,
			issues:   file.Issues,
			errors:   file.Errors,
			warnings: file.Warnings,
			infos:    file.Infos,
		})
	}

	categories := summaryTable{title: "Categories Summary", labelTitle: "Category"}
	for _, category := range report.ByCategory {
		categories.rows = append(categories.rows, summaryRow{
			label:    category.Category,
			issues:   category.Issues,
			errors:   category.Errors,
			warnings: category.Warnings,
			infos:    category.Infos,
		})
	}

	switch r.opts.SummaryOrder {
	case SummaryOrderFiles:
		return []summaryTable{files, rules, categories}
	case SummaryOrderCategories:
		return []summaryTable{categories, rules, files}
	default:
		return []summaryTable{rules, files, categories}
	}
}

func (r *SummaryRenderer) renderTable(table summaryTable) {
	separator := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))

	fmt.Fprintln(r.out, r.styles.Bold.Render(table.title))
	fmt.Fprintln(r.out, separator)

	// Cells are padded before styling so ANSI codes never skew the layout.
	header := []string{
		padRight(table.labelTitle, labelWidth),
		padLeft("Count", countWidth),
		padLeft("Errors", countWidth),
		padLeft("Warnings", warningsWidth),
		padLeft("Infos", countWidth),
	}
	for i, cell := range header {
		header[i] = r.styles.TableHeader.Render(cell)
	}
	fmt.Fprintln(r.out, strings.Join(header, " "))
	fmt.Fprintln(r.out, separator)

	for _, row := range table.rows {
		label := padRight(truncateLabel(row.label, labelWidth-2, table.keepTail), labelWidth)
		switch {
		case row.errors > 0:
			label = r.styles.TableErrorRow.Render(label)
		case row.warnings > 0:
			label = r.styles.TableWarnRow.Render(label)
		case row.infos > 0:
			label = r.styles.TableInfoRow.Render(label)
		}

		fmt.Fprintln(r.out, strings.Join([]string{
			label,
			padLeft(strconv.Itoa(row.issues), countWidth),
			padLeft(strconv.Itoa(row.errors), countWidth),
			padLeft(strconv.Itoa(row.warnings), warningsWidth),
			padLeft(strconv.Itoa(row.infos), countWidth),
		}, " "))
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issues := fmt.Sprintf("%d %s", totals.Issues, pluralize(totals.Issues, "issue", "issues"))

	var bySeverity []string
	if totals.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(bySeverity) > 0 {
		issues += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	parts := []string{
		issues,
		fmt.Sprintf("in %d %s", totals.FilesWithIssues, pluralize(totals.FilesWithIssues, "file", "files")),
	}
	if totals.FadeOuts > 0 {
		parts = append(parts, r.styles.Dim.Render(fmt.Sprintf("(+%d fade-out spans)", totals.FadeOuts)))
	}
	if totals.Faults > 0 {
		parts = append(parts, r.styles.Fault.Render(fmt.Sprintf("%d analyzer faults", totals.Faults)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, " "))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// truncateLabel shortens s to limit bytes, marking the cut with an ellipsis
// at the end or, with keepTail, at the front.
func truncateLabel(s string, limit int, keepTail bool) string {
	if len(s) <= limit {
		return s
	}
	if keepTail {
		return "…" + s[len(s)-(limit-1):]
	}
	return s[:limit-1] + "…"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
