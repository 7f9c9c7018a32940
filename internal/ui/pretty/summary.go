package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line, for example
// "12 issues (8 errors, 4 warnings) in 3 files, 2 cached".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	extras := s.runExtras(stats)

	if stats.DiagnosticsTotal == 0 {
		line := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		return strings.Join(append([]string{line}, extras...), ", ") + "\n"
	}

	breakdown := s.SeverityBreakdown(stats.DiagnosticsBySeverity)
	if hidden := stats.DiagnosticsBySeverity[string(config.SeverityHidden)]; hidden > 0 {
		breakdown = append(breakdown, s.Hidden.Render(fmt.Sprintf("%d hidden", hidden)))
	}

	line := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(breakdown) > 0 {
		line += " (" + strings.Join(breakdown, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	return strings.Join(append([]string{line}, extras...), ", ") + "\n"
}

// runExtras lists the cache, fault and read-error notes of a run.
func (s *Styles) runExtras(stats runner.Stats) []string {
	var extras []string
	if stats.FilesCached > 0 {
		extras = append(extras, s.Dim.Render(fmt.Sprintf("%d cached", stats.FilesCached)))
	}
	if stats.Faults > 0 {
		extras = append(extras, s.Fault.Render(fmt.Sprintf("%d analyzer %s", stats.Faults, plural(stats.Faults, "fault", "faults"))))
	}
	if stats.FilesErrored > 0 {
		extras = append(extras, s.Failure.Render(fmt.Sprintf("%d unreadable %s", stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}
	return extras
}
