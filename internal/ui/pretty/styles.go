// Package pretty renders diagnostics, tables and run summaries for the
// terminal with lipgloss.
package pretty

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/sharplint/pkg/config"
)

// ANSI palette indices.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorGrey    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
)

// Styles holds every style used for CLI output. With color disabled each
// field is a plain style that renders text unchanged.
type Styles struct {
	// One per severity.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hidden  lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// FadeOut renders text an editor would dim.
	FadeOut lipgloss.Style
	// Fault renders analyzer crash notices.
	Fault lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates the style set, colored or plain.
func NewStyles(colorEnabled bool) *Styles {
	styles := &Styles{}
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		for _, field := range styles.fields() {
			*field = plain
		}
		return styles
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	styles.Error = fg(colorRed).Bold(true)
	styles.Warning = fg(colorYellow).Bold(true)
	styles.Info = fg(colorBlue).Bold(true)
	styles.Hidden = fg(colorGrey)

	styles.FilePath = lipgloss.NewStyle().Bold(true)
	styles.Location = fg(colorGrey)
	styles.RuleID = fg(colorGrey)
	styles.Message = lipgloss.NewStyle()
	styles.SourceLine = fg(colorSilver)
	styles.Caret = fg(colorRed)
	styles.FadeOut = fg(colorGrey).Faint(true)
	styles.Fault = fg(colorMagenta).Bold(true)

	styles.SummaryTitle = lipgloss.NewStyle().Bold(true)
	styles.SummaryValue = lipgloss.NewStyle()
	styles.Success = fg(colorGreen).Bold(true)
	styles.Failure = fg(colorRed).Bold(true)

	styles.TableHeader = fg(colorSilver).Bold(true)
	styles.TableBorder = fg(colorGrey)
	styles.TableErrorRow = fg(colorRed)
	styles.TableWarnRow = fg(colorYellow)
	styles.TableInfoRow = fg(colorBlue)
	styles.TableLegend = fg(colorGrey).Italic(true)
	styles.TableSeparator = fg(colorGrey)

	styles.Dim = fg(colorGrey)
	styles.Bold = lipgloss.NewStyle().Bold(true)

	return styles
}

func (s *Styles) fields() []*lipgloss.Style {
	return []*lipgloss.Style{
		&s.Error, &s.Warning, &s.Info, &s.Hidden,
		&s.FilePath, &s.Location, &s.RuleID, &s.Message, &s.SourceLine, &s.Caret,
		&s.FadeOut, &s.Fault,
		&s.SummaryTitle, &s.SummaryValue, &s.Success, &s.Failure,
		&s.TableHeader, &s.TableBorder, &s.TableErrorRow, &s.TableWarnRow,
		&s.TableInfoRow, &s.TableLegend, &s.TableSeparator,
		&s.Dim, &s.Bold,
	}
}

// ForSeverity returns the label style for sev. Unknown severities render plain.
func (s *Styles) ForSeverity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	case config.SeverityHidden:
		return s.Hidden
	default:
		return lipgloss.NewStyle()
	}
}

// RowForSeverity returns the table row style for sev. Hidden and unknown
// severities are dimmed.
func (s *Styles) RowForSeverity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.TableErrorRow
	case config.SeverityWarning:
		return s.TableWarnRow
	case config.SeverityInfo:
		return s.TableInfoRow
	default:
		return s.Dim
	}
}

// SeverityBreakdown renders the non-zero error, warning and info counts,
// such as "3 errors" and "1 warning", each in its severity style.
func (s *Styles) SeverityBreakdown(counts map[string]int) []string {
	var parts []string
	if n := counts[string(config.SeverityError)]; n > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := counts[string(config.SeverityWarning)]; n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := counts[string(config.SeverityInfo)]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return parts
}

// IsColorEnabled reports whether output to writer should be colored for
// mode "always", "never" or "auto". Auto, also used for unknown modes,
// colors only terminals and honors NO_COLOR (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
