package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// source is the diagnostic source shown by clients.
const source = "sharplint"

// Position converts a 1-based line and 1-based byte column to a 0-based LSP
// position counted in UTF-16 code units.
func Position(text *syntax.SourceText, line, column int) protocol.Position {
	if line < 1 {
		return protocol.Position{}
	}
	lineText := text.Line(line)

	limit := min(max(column-1, 0), len(lineText))
	units := 0
	for rest := lineText[:limit]; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
		rest = rest[size:]
	}

	return protocol.Position{Line: toUint32(line - 1), Character: toUint32(units)}
}

// toUint32 clamps negative or oversized values instead of wrapping.
func toUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		if n < 0 {
			return 0
		}
		return ^uint32(0)
	}
	return v
}

// Severity maps a configured severity to an LSP severity. Fade-outs are
// always hints.
func Severity(rec *lint.Record) protocol.DiagnosticSeverity {
	if rec.FadeOut {
		return protocol.DiagnosticSeverityHint
	}
	switch rec.Severity {
	case config.SeverityError:
		return protocol.DiagnosticSeverityError
	case config.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case config.SeverityHidden:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

// ToProtocol converts records for one document to LSP diagnostics. Fade-outs
// carry the Unnecessary tag so clients render them dimmed.
func ToProtocol(text *syntax.SourceText, records []lint.Record) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(records))
	for i := range records {
		rec := &records[i]

		severity := Severity(rec)
		code := protocol.IntegerOrString{Value: rec.ID}
		src := source

		diag := protocol.Diagnostic{
			Range: protocol.Range{
				Start: Position(text, rec.StartLine, rec.StartColumn),
				End:   Position(text, rec.EndLine, rec.EndColumn),
			},
			Severity: &severity,
			Code:     &code,
			Source:   &src,
			Message:  rec.Message,
		}
		if rec.FadeOut {
			diag.Tags = []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}
			if diag.Message == "" {
				diag.Message = "Unnecessary code"
			}
		}
		if rec.HelpURI != "" {
			diag.CodeDescription = &protocol.CodeDescription{HRef: protocol.URI(rec.HelpURI)}
		}
		out = append(out, diag)
	}
	return out
}
