package reporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/sharplint/internal/ui/pretty"
	"github.com/yaklabco/sharplint/pkg/runner"
)

// TableReporter renders diagnostics as a column-aligned table, either one
// table for the whole run or one per file.
type TableReporter struct {
	terminal

	table *pretty.TableFormatter
}

// NewTableReporter creates a table reporter sized to the output terminal.
func NewTableReporter(opts Options) *TableReporter {
	r := &TableReporter{terminal: newTerminal(opts)}
	r.table = pretty.NewTableFormatter(r.styles, r.color, termWidth(opts.Writer))
	return r
}

// Report implements Reporter. Unreadable files and analyzer faults are
// listed above the table.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (issues int, err error) {
	defer r.flush(&err)

	if r.nothingToCheck(result) {
		return 0, nil
	}

	for i := range result.Files {
		file := &result.Files[i]
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			r.fileError(path, file.Error)
		}
		r.faults(path, file)
		issues += len(file.Primary())
	}

	groups := pretty.CollectRows(result, r.opts.displayPath, r.opts.ShowFadeOut)
	switch {
	case len(groups) == 0:
		r.allPassed(result.Stats)
	case r.opts.PerFile:
		r.perFile(groups, result.Stats)
	default:
		fmt.Fprint(r.bw, r.table.FormatTable(groups))
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.table.FormatTableSummary(result.Stats, ""))
			fmt.Fprintln(r.bw)
		}
	}
	r.cancelled(result)
	return issues, nil
}

func (r *TableReporter) allPassed(stats runner.Stats) {
	if !r.opts.ShowSummary {
		return
	}
	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
	fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", stats.FilesProcessed)))
}

func (r *TableReporter) perFile(groups [][]pretty.TableRow, stats runner.Stats) {
	for _, rows := range groups {
		fmt.Fprintf(r.bw, "\n%s\n", r.styles.Bold.Render(rows[0].File))
		fmt.Fprint(r.bw, r.table.FormatFileTable(rows))
	}
	if r.opts.ShowSummary {
		fmt.Fprintf(r.bw, "\n%s\n%s\n%s\n",
			r.styles.TableSeparator.Render(strings.Repeat("═", fallbackTermWidth)),
			r.styles.Bold.Render("Overall Summary"),
			r.table.FormatTableSummary(stats, ""),
		)
	}
}
