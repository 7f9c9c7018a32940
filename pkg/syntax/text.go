package syntax

import "sort"

// LineInfo describes a single line of source text.
type LineInfo struct {
	// StartOffset is the byte offset of the first character of the line.
	StartOffset int

	// NewlineStart is the byte offset where the line ending begins (\n or \r\n).
	// Equals EndOffset for the last line when it has no trailing newline.
	NewlineStart int

	// EndOffset is the byte offset just past the line ending.
	EndOffset int
}

// SourceText is the immutable content of one file plus its line index.
type SourceText struct {
	Content []byte
	Lines   []LineInfo
}

// NewSourceText builds the line index for content.
func NewSourceText(content []byte) *SourceText {
	return &SourceText{
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from file content.
// LF, CRLF and lone CR are all recognized as line endings.
// Empty content still yields one empty line so every offset maps to a line.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, 16)
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\n':
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: idx + 1})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: end})
			lineStart = end
			idx = end - 1
		}
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Len returns the content length in bytes.
func (t *SourceText) Len() int {
	return len(t.Content)
}

// LineCount returns the number of lines in the text.
func (t *SourceText) LineCount() int {
	return len(t.Lines)
}

// LineIndex returns the 0-based index of the line containing offset.
// Offsets past the end map to the last line; negative offsets map to line 0.
func (t *SourceText) LineIndex(offset int) int {
	if offset <= 0 || len(t.Lines) <= 1 {
		return 0
	}

	idx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})
	if idx >= len(t.Lines) {
		idx = len(t.Lines) - 1
	}

	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (t *SourceText) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(t.Content) {
		return 0, 0
	}

	idx := t.LineIndex(offset)
	return idx + 1, offset - t.Lines[idx].StartOffset + 1
}

// Line returns the content of a 1-based line number, excluding the line ending.
// Returns nil if the line number is out of range.
func (t *SourceText) Line(line int) []byte {
	if line < 1 || line > len(t.Lines) {
		return nil
	}

	info := t.Lines[line-1]
	return t.Content[info.StartOffset:info.NewlineStart]
}

// Slice returns the text covered by span, clamped to the content bounds.
func (t *SourceText) Slice(span TextSpan) string {
	start := max(0, span.Start)
	end := min(len(t.Content), span.End)
	if start >= end {
		return ""
	}
	return string(t.Content[start:end])
}
