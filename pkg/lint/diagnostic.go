package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Location is a span inside a specific syntax tree.
type Location struct {
	Tree *syntax.Tree
	Span syntax.TextSpan
}

// NodeLocation returns the location of node's span.
func NodeLocation(node *syntax.Node) Location {
	return Location{Tree: node.Tree(), Span: node.Span()}
}

// TokenLocation returns the location of token's span.
func TokenLocation(token *syntax.Token) Location {
	return Location{Tree: token.Tree(), Span: token.Span()}
}

// Path returns the file path of the location's tree.
func (l Location) Path() string {
	if l.Tree == nil {
		return ""
	}
	return l.Tree.Path
}

// LineSpan resolves the location to 1-based lines and columns.
func (l Location) LineSpan() syntax.LinePositionSpan {
	if l.Tree == nil || l.Tree.Text == nil {
		return syntax.LinePositionSpan{}
	}
	return l.Tree.LineSpan(l.Span)
}

// Diagnostic is one reported finding. Diagnostics are immutable once emitted.
type Diagnostic struct {
	// Descriptor identifies the rule and holds the message template.
	Descriptor *Descriptor

	// Location is where the finding applies.
	Location Location

	// Args are substituted into the message template when Message is called.
	Args []any

	// Severity is the resolved severity.
	Severity config.Severity
}

// ID returns the descriptor ID.
func (d *Diagnostic) ID() string {
	return d.Descriptor.ID
}

// IsFadeOut reports whether the diagnostic marks an auxiliary span for dimming.
func (d *Diagnostic) IsFadeOut() bool {
	return d.Descriptor.IsFadeOut()
}

// Message formats the descriptor's message template with the report arguments.
func (d *Diagnostic) Message() string {
	return d.Descriptor.Format(d.Args...)
}

// Record converts the diagnostic to its sink form, formatting the message.
func (d *Diagnostic) Record() Record {
	pos := d.Location.LineSpan()
	return Record{
		ID:          d.Descriptor.ID,
		Name:        d.Descriptor.Name,
		Severity:    d.Severity,
		Path:        d.Location.Path(),
		SpanStart:   d.Location.Span.Start,
		SpanEnd:     d.Location.Span.End,
		StartLine:   pos.Start.Line,
		StartColumn: pos.Start.Column,
		EndLine:     pos.End.Line,
		EndColumn:   pos.End.Column,
		Message:     d.Message(),
		FadeOut:     d.IsFadeOut(),
		HelpURI:     d.Descriptor.HelpURI,
	}
}

// Record is the externally consumed form of a diagnostic.
type Record struct {
	ID          string          `json:"id" msgpack:"id"`
	Name        string          `json:"name" msgpack:"name"`
	Severity    config.Severity `json:"severity" msgpack:"severity"`
	Path        string          `json:"path" msgpack:"path"`
	SpanStart   int             `json:"span_start" msgpack:"span_start"`
	SpanEnd     int             `json:"span_end" msgpack:"span_end"`
	StartLine   int             `json:"start_line" msgpack:"start_line"`
	StartColumn int             `json:"start_column" msgpack:"start_column"`
	EndLine     int             `json:"end_line" msgpack:"end_line"`
	EndColumn   int             `json:"end_column" msgpack:"end_column"`
	Message     string          `json:"message" msgpack:"message"`
	FadeOut     bool            `json:"fade_out" msgpack:"fade_out"`
	HelpURI     string          `json:"help_uri,omitempty" msgpack:"help_uri,omitempty"`
}

// CompareRecords orders records by path, position, then ID.
func CompareRecords(a, b Record) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.SpanStart, b.SpanStart),
		cmp.Compare(a.SpanEnd, b.SpanEnd),
		cmp.Compare(a.ID, b.ID),
	)
}

// DiagnosticSet is an ordered-by-emission collection of diagnostics.
// It performs no deduplication and has no capacity limit.
type DiagnosticSet struct {
	items []Diagnostic
}

// NewDiagnosticSet returns a set holding diags.
func NewDiagnosticSet(diags ...Diagnostic) *DiagnosticSet {
	return &DiagnosticSet{items: diags}
}

// Append adds diagnostics in order.
func (s *DiagnosticSet) Append(diags ...Diagnostic) {
	s.items = append(s.items, diags...)
}

// Merge appends every diagnostic of other.
func (s *DiagnosticSet) Merge(other *DiagnosticSet) {
	if other == nil {
		return
	}
	s.items = append(s.items, other.items...)
}

// Len returns the number of diagnostics, fade-outs included.
func (s *DiagnosticSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// All returns every diagnostic in emission order.
func (s *DiagnosticSet) All() []Diagnostic {
	if s == nil {
		return nil
	}
	return s.items
}

// Primary returns the diagnostics that are not fade-outs.
func (s *DiagnosticSet) Primary() []Diagnostic {
	return s.filter(false)
}

// FadeOuts returns only the fade-out diagnostics.
func (s *DiagnosticSet) FadeOuts() []Diagnostic {
	return s.filter(true)
}

func (s *DiagnosticSet) filter(fadeOut bool) []Diagnostic {
	if s == nil {
		return nil
	}
	var out []Diagnostic
	for i := range s.items {
		if s.items[i].IsFadeOut() == fadeOut {
			out = append(out, s.items[i])
		}
	}
	return out
}

// WithID returns the diagnostics whose descriptor ID is id.
func (s *DiagnosticSet) WithID(id string) []Diagnostic {
	if s == nil {
		return nil
	}
	var out []Diagnostic
	for i := range s.items {
		if s.items[i].ID() == id {
			out = append(out, s.items[i])
		}
	}
	return out
}

// Sort orders the set by path, span and ID. Emission order breaks ties.
func (s *DiagnosticSet) Sort() {
	if s == nil {
		return
	}
	slices.SortStableFunc(s.items, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Location.Path(), b.Location.Path()),
			cmp.Compare(a.Location.Span.Start, b.Location.Span.Start),
			cmp.Compare(a.Location.Span.End, b.Location.Span.End),
			cmp.Compare(a.Descriptor.ID, b.Descriptor.ID),
		)
	})
}

// Records converts every diagnostic to its sink form in set order.
func (s *DiagnosticSet) Records() []Record {
	if s == nil {
		return nil
	}
	records := make([]Record, 0, len(s.items))
	for i := range s.items {
		records = append(records, s.items[i].Record())
	}
	return records
}
