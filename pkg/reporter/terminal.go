package reporter

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/sharplint/internal/ui/pretty"
	"github.com/yaklabco/sharplint/pkg/runner"
)

// fallbackTermWidth is used when the writer is not a terminal.
const fallbackTermWidth = 100

// terminal is the buffered, styled writer behind the text and table
// reporters.
type terminal struct {
	opts   Options
	color  bool
	styles *pretty.Styles
	bw     *bufio.Writer
}

func newTerminal(opts Options) terminal {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return terminal{
		opts:   opts,
		color:  color,
		styles: pretty.NewStyles(color),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// flush writes buffered output, keeping the first error in *err.
func (t *terminal) flush(err *error) {
	if flushErr := t.bw.Flush(); *err == nil {
		*err = flushErr
	}
}

// nothingToCheck reports whether result has no files, saying so when a
// summary was requested.
func (t *terminal) nothingToCheck(result *runner.Result) bool {
	if result != nil && len(result.Files) > 0 {
		return false
	}
	if t.opts.ShowSummary {
		fmt.Fprintln(t.bw, t.styles.Success.Render("No files to check."))
	}
	return true
}

func (t *terminal) fileError(path string, err error) {
	fmt.Fprintf(t.bw, "%s: %s\n",
		t.styles.FilePath.Render(path),
		t.styles.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

func (t *terminal) faults(path string, file *runner.FileOutcome) {
	for i := range file.Faults {
		fmt.Fprint(t.bw, t.styles.FormatFault(path, &file.Faults[i]))
	}
}

func (t *terminal) cancelled(result *runner.Result) {
	if result.Cancelled {
		fmt.Fprintln(t.bw, t.styles.Warning.Render("Run cancelled; results are partial."))
	}
}

// termWidth returns the terminal width of w, or fallbackTermWidth.
func termWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return fallbackTermWidth
}
