// Package ruledoc renders rule documentation from descriptors as Markdown or
// HTML.
package ruledoc

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/sharplint/pkg/fsutil"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// Format selects the documentation output format.
type Format string

// Documentation formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// IndexName is the base name of the index page.
const IndexName = "index"

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// ParseFormat parses a format name. Empty selects Markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown documentation format %q; valid formats: markdown, html", s)
	}
}

// Page returns the Markdown page for one descriptor.
func Page(desc *lint.Descriptor) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s: %s\n\n", desc.ID, desc.Title)

	buf.WriteString("| Property | Value |\n|----------|-------|\n")
	fmt.Fprintf(&buf, "| ID | `%s` |\n", desc.ID)
	fmt.Fprintf(&buf, "| Name | `%s` |\n", desc.Name)
	fmt.Fprintf(&buf, "| Category | %s |\n", desc.Category)
	fmt.Fprintf(&buf, "| Default severity | %s |\n", desc.DefaultSeverity)
	fmt.Fprintf(&buf, "| Enabled by default | %s |\n", yesNo(desc.EnabledByDefault))
	if len(desc.Tags) > 0 {
		fmt.Fprintf(&buf, "| Tags | %s |\n", strings.Join(desc.Tags, ", "))
	}
	buf.WriteString("\n")

	if desc.Description != "" {
		buf.WriteString("## Description\n\n")
		buf.WriteString(desc.Description)
		buf.WriteString("\n\n")
	}

	if desc.MessageFormat != "" {
		buf.WriteString("## Message\n\n")
		fmt.Fprintf(&buf, "```text\n%s\n```\n\n", desc.MessageFormat)
	}

	buf.WriteString("## Configuration\n\n")
	fmt.Fprintf(&buf, "```yaml\nrules:\n  %s:\n    enabled: %t\n    severity: %s\n```\n",
		desc.Name, desc.EnabledByDefault, desc.DefaultSeverity)

	if desc.HelpURI != "" {
		fmt.Fprintf(&buf, "\nMore information: <%s>\n", desc.HelpURI)
	}

	return buf.Bytes()
}

// Index returns a Markdown table linking every descriptor's page. ext is the
// extension used in links.
func Index(descs []*lint.Descriptor, ext string) []byte {
	var buf bytes.Buffer

	buf.WriteString("# sharplint rules\n\n")
	buf.WriteString("| ID | Name | Title | Category | Severity | Enabled |\n")
	buf.WriteString("|----|------|-------|----------|----------|---------|\n")
	for _, d := range descs {
		fmt.Fprintf(&buf, "| [%s](%s%s) | `%s` | %s | %s | %s | %s |\n",
			d.ID, d.ID, ext, d.Name, escapeCell(d.Title), d.Category, d.DefaultSeverity, yesNo(d.EnabledByDefault))
	}
	return buf.Bytes()
}

// Renderer converts Markdown pages to standalone HTML documents.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GitHub Flavored Markdown enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
	}
}

// HTML renders src as a complete HTML document titled title.
func (r *Renderer) HTML(title string, src []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// Render returns the page for desc in the given format.
func (r *Renderer) Render(desc *lint.Descriptor, format Format) ([]byte, error) {
	page := Page(desc)
	if format != FormatHTML {
		return page, nil
	}
	return r.HTML(desc.ID+": "+desc.Title, page)
}

// WriteAll writes one page per descriptor plus an index into dir and returns
// the number of files whose content changed.
func (r *Renderer) WriteAll(ctx context.Context, dir string, descs []*lint.Descriptor, format Format) (int, error) {
	ext := format.Ext()
	written := 0

	write := func(name string, content []byte) error {
		changed, err := fsutil.WriteAtomicIfChanged(ctx, filepath.Join(dir, name+ext), content, 0)
		if err != nil {
			return fmt.Errorf("write %s: %w", name+ext, err)
		}
		if changed {
			written++
		}
		return nil
	}

	for _, desc := range descs {
		content, err := r.Render(desc, format)
		if err != nil {
			return written, err
		}
		if err := write(desc.ID, content); err != nil {
			return written, err
		}
	}

	index := Index(descs, ext)
	if format == FormatHTML {
		var err error
		if index, err = r.HTML("sharplint rules", index); err != nil {
			return written, err
		}
	}
	if err := write(IndexName, index); err != nil {
		return written, err
	}

	return written, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
