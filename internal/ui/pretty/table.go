package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/runner"
)

const (
	defaultTermWidth = 100
	columnGap        = 2
	ellipsis         = "..."
	severityTitle    = "SEV"
)

// TableRow is one diagnostic as shown in the table.
type TableRow struct {
	File     string
	Location string
	Message  string
	RuleID   string
	Severity config.Severity
}

// RecordToTableRow converts a diagnostic record to a table row. Fade-outs
// carry no message of their own.
func RecordToTableRow(path string, rec *lint.Record) TableRow {
	row := TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", rec.StartLine, rec.StartColumn),
		Message:  rec.Message,
		RuleID:   rec.ID,
		Severity: rec.Severity,
	}
	if rec.FadeOut {
		row.Message = "unnecessary code"
	}
	return row
}

// CollectRows returns one row group per file with diagnostics. display maps
// a file path to the path shown; nil keeps paths as-is.
func CollectRows(result *runner.Result, display func(string) string, includeFadeOuts bool) [][]TableRow {
	if result == nil {
		return nil
	}
	if display == nil {
		display = func(path string) string { return path }
	}

	var groups [][]TableRow
	for i := range result.Files {
		file := &result.Files[i]
		path := display(file.Path)
		var rows []TableRow
		for j := range file.Records {
			if rec := &file.Records[j]; includeFadeOuts || !rec.FadeOut {
				rows = append(rows, RecordToTableRow(path, rec))
			}
		}
		if rows != nil {
			groups = append(groups, rows)
		}
	}
	return groups
}

// column describes one padded table column. Columns with a non-zero shrink
// give up width when the table is wider than the terminal, lowest first.
type column struct {
	title  string
	min    int
	shrink int
	value  func(TableRow) string
	clip   func(string, int) string
}

//nolint:gochecknoglobals // Read-only column definitions.
var (
	fileColumn = column{title: "FILE", min: 20, shrink: 2, clip: clipStart,
		value: func(r TableRow) string { return r.File }}
	bodyColumns = []column{
		{title: "LOC", min: 10, clip: clipEnd, value: func(r TableRow) string { return r.Location }},
		{title: "MESSAGE", min: 35, shrink: 1, clip: clipEnd, value: func(r TableRow) string { return r.Message }},
		{title: "RULE", min: 8, clip: clipEnd, value: func(r TableRow) string { return r.RuleID }},
	}
)

type layout struct {
	columns []column
	widths  []int
}

func newLayout(rows []TableRow, withFile bool, termWidth int) *layout {
	l := &layout{columns: bodyColumns}
	if withFile {
		l.columns = append([]column{fileColumn}, bodyColumns...)
	}
	l.widths = make([]int, len(l.columns))
	for i, col := range l.columns {
		l.widths[i] = col.min
		for _, row := range rows {
			l.widths[i] = max(l.widths[i], len(col.value(row)))
		}
	}

	for pass := 1; pass <= 2; pass++ {
		excess := l.width() - termWidth
		if excess <= 0 {
			break
		}
		for i, col := range l.columns {
			if col.shrink == pass {
				l.widths[i] = max(col.min, l.widths[i]-excess)
			}
		}
	}
	return l
}

// width is the printed width of a row, including the leading space and the
// severity column.
func (l *layout) width() int {
	total := 1 + len(severityTitle)
	for _, w := range l.widths {
		total += w + columnGap
	}
	return total
}

func (l *layout) line(cell func(int, column) string, last string) string {
	var b strings.Builder
	b.WriteByte(' ')
	for i, col := range l.columns {
		fmt.Fprintf(&b, "%-*s%s", l.widths[i], cell(i, col), strings.Repeat(" ", columnGap))
	}
	b.WriteString(last)
	return b.String()
}

func (l *layout) header() string {
	return l.line(func(_ int, col column) string { return col.title }, severityTitle)
}

func (l *layout) row(row TableRow) string {
	return l.line(func(i int, col column) string {
		return col.clip(col.value(row), l.widths[i])
	}, severityLetter(row.Severity))
}

// TableFormatter renders diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a table formatter. A non-positive termWidth
// falls back to 100 columns.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, colorEnabled: colorEnabled, termWidth: termWidth}
}

// FormatTable renders every group in one table with a FILE column, a light
// rule between files and the severity legend underneath.
func (t *TableFormatter) FormatTable(groups [][]TableRow) string {
	if len(groups) == 0 {
		return ""
	}
	l := newLayout(flatten(groups), true, t.termWidth)

	var b strings.Builder
	t.writeHeader(&b, l)
	for i, group := range groups {
		if i > 0 {
			t.writeRule(&b, l, "-")
		}
		t.writeRows(&b, l, group)
	}
	t.writeRule(&b, l, "=")
	b.WriteString(t.legend())
	b.WriteByte('\n')
	return b.String()
}

// FormatFileTable renders one file's rows without a FILE column, followed
// by the file's issue counts.
func (t *TableFormatter) FormatFileTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}
	l := newLayout(rows, false, t.termWidth)

	var b strings.Builder
	t.writeHeader(&b, l)
	t.writeRows(&b, l, rows)
	t.writeRule(&b, l, "-")
	b.WriteString(t.fileSummary(rows))
	b.WriteByte('\n')
	return b.String()
}

// FormatTableSummary renders the run totals line shown under a table.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))}
	parts = append(parts, t.styles.SeverityBreakdown(stats.DiagnosticsBySeverity)...)
	if stats.FilesCached > 0 {
		parts = append(parts, t.styles.Dim.Render(fmt.Sprintf("%d cached", stats.FilesCached)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) writeHeader(b *strings.Builder, l *layout) {
	b.WriteString(t.styles.TableHeader.Render(l.header()))
	b.WriteByte('\n')
	t.writeRule(b, l, "=")
}

func (t *TableFormatter) writeRule(b *strings.Builder, l *layout, char string) {
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(char, l.width())))
	b.WriteByte('\n')
}

func (t *TableFormatter) writeRows(b *strings.Builder, l *layout, rows []TableRow) {
	for _, row := range rows {
		b.WriteString(t.styles.RowForSeverity(row.Severity).Render(l.row(row)))
		b.WriteByte('\n')
	}
}

func (t *TableFormatter) fileSummary(rows []TableRow) string {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[string(row.Severity)]++
	}
	parts := append([]string{fmt.Sprintf("%d %s", len(rows), plural(len(rows), "issue", "issues"))},
		t.styles.SeverityBreakdown(counts)...)
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: E = error | W = warning | I = info | H = hidden")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info",
		t.styles.TableErrorRow.Render(" E "),
		t.styles.TableWarnRow.Render(" W "),
		t.styles.TableInfoRow.Render(" I "),
	))
}

func severityLetter(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "E"
	case config.SeverityWarning:
		return "W"
	case config.SeverityInfo:
		return "I"
	default:
		return "H"
	}
}

func flatten(groups [][]TableRow) []TableRow {
	var rows []TableRow
	for _, group := range groups {
		rows = append(rows, group...)
	}
	return rows
}

// clipEnd keeps the start of s.
func clipEnd(s string, width int) string {
	switch {
	case len(s) <= width:
		return s
	case width <= len(ellipsis):
		return s[:width]
	default:
		return s[:width-len(ellipsis)] + ellipsis
	}
}

// clipStart keeps the end of s, so paths keep their file name.
func clipStart(s string, width int) string {
	switch {
	case len(s) <= width:
		return s
	case width <= len(ellipsis):
		return s[len(s)-width:]
	default:
		return ellipsis + s[len(s)-width+len(ellipsis):]
	}
}
