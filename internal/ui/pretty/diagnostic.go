package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// FormatRecord formats a single diagnostic record for terminal output.
// path replaces rec.Path in the location when non-empty.
func (s *Styles) FormatRecord(rec *lint.Record, path string, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	if path == "" {
		path = rec.Path
	}

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		rec.StartLine,
		rec.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, rec.ID, rec.Name)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	message := s.Message.Render(rec.Message)
	if rec.FadeOut {
		message = s.FadeOut.Render("unnecessary code")
	}

	// Main line: location  severity  message  (rule-id)
	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(rec.Severity),
		message,
		ruleDisplay,
	)

	if showContext && sourceLine != "" {
		width := 1
		if rec.EndLine == rec.StartLine && rec.EndColumn > rec.StartColumn {
			width = rec.EndColumn - rec.StartColumn
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, rec.StartColumn, width))
	}

	return builder.String()
}

// FormatSeverity returns the styled severity label.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	return s.ForSeverity(sev).Render(string(sev))
}

// FormatSourceContext formats the source line with a marker under width
// bytes starting at the 1-based column.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	line = strings.ReplaceAll(line, "\t", " ")
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		width = max(1, min(width, len(line)-column+1))
		marker := "^" + strings.Repeat("~", width-1)
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render(marker) + "\n")
	}

	return builder.String()
}

// FormatFault formats an analyzer fault notice.
func (s *Styles) FormatFault(path string, fault *lint.Fault) string {
	return fmt.Sprintf("  %s  %s  analyzer %s crashed on %s: %v\n",
		s.FilePath.Render(path),
		s.Fault.Render("fault"),
		s.RuleID.Render(fault.Analyzer),
		fault.Kind,
		fault.Value,
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
