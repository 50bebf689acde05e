package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/saiganesh-d/doccompare/internal/pagedoc"
)

// MarkdownParser handles Markdown files using goldmark. Headings come
// out both as text lines and as explicit heading hints so the section
// extractor can trust the markup's levels over its own heuristics.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*pagedoc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &pagedoc.Document{Title: baseTitle(filename)}
	var lines []string

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title == "" {
				continue
			}
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, title, "")
			doc.Hints = append(doc.Hints, pagedoc.HeadingHint{
				Title: title,
				Level: node.Level,
			})
		default:
			t := extractText(n, src)
			if t == "" {
				continue
			}
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, strings.Split(t, "\n")...)
		}
	}

	doc.Pages = []pagedoc.Page{{Number: 1, Lines: lines}}
	return doc, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
