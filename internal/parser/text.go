package parser

import (
	"bufio"
	"io"

	"github.com/saiganesh-d/doccompare/internal/pagedoc"
)

// TextParser handles plain text files. Plain text has no native page
// boundaries, so the whole file becomes page 1.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*pagedoc.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &pagedoc.Document{
		Title: baseTitle(filename),
		Pages: []pagedoc.Page{{Number: 1, Lines: lines}},
	}, nil
}
