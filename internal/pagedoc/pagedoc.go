package pagedoc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedPages indicates the caller handed us a page map that violates
// the extraction contract (non-positive or duplicate page numbers). This is
// the only input condition that surfaces as an error; everything else
// degrades to a smaller document.
var ErrMalformedPages = errors.New("malformed page map")

// Page is one page of extracted text, lines in reading order.
type Page struct {
	Number int
	Lines  []string
}

// HeadingHint is an externally supplied heading candidate, e.g. from a
// table of contents or from native markup in DOCX/Markdown/HTML sources.
// Hints are advisory: section extraction merges them with classified
// headings and ignores hints that never appear in the text.
type HeadingHint struct {
	Title string
	Level int
}

// Document is a parsed document as an ordered sequence of pages plus
// optional heading hints. It is the input shape the comparison engine
// consumes; producers live in internal/parser.
type Document struct {
	Title string
	Pages []Page
	Hints []HeadingHint
}

// FromMap builds a Document from a page-number → lines mapping (1-indexed).
// Page numbers must be positive; uniqueness is inherent to the map form,
// and duplicates in a hand-built Document are caught by Validate. Gaps are
// allowed (a missing page is an extraction gap, not an error). Returns
// ErrMalformedPages on contract violations.
func FromMap(pages map[int][]string) (*Document, error) {
	doc := &Document{Pages: make([]Page, 0, len(pages))}
	for num, lines := range pages {
		if num <= 0 {
			return nil, fmt.Errorf("%w: page number %d", ErrMalformedPages, num)
		}
		doc.Pages = append(doc.Pages, Page{Number: num, Lines: append([]string(nil), lines...)})
	}
	sort.Slice(doc.Pages, func(i, j int) bool { return doc.Pages[i].Number < doc.Pages[j].Number })
	return doc, nil
}

// Validate checks the page sequence of an already constructed Document.
func (d *Document) Validate() error {
	prev := 0
	for _, p := range d.Pages {
		if p.Number <= 0 {
			return fmt.Errorf("%w: page number %d", ErrMalformedPages, p.Number)
		}
		if p.Number <= prev {
			return fmt.Errorf("%w: page %d after page %d", ErrMalformedPages, p.Number, prev)
		}
		prev = p.Number
	}
	return nil
}

// PageRange returns the pages with numbers in [start, end], in order.
// Pages missing from the document are simply absent from the result.
func (d *Document) PageRange(start, end int) []Page {
	var out []Page
	for _, p := range d.Pages {
		if p.Number < start {
			continue
		}
		if p.Number > end {
			break
		}
		out = append(out, p)
	}
	return out
}

// Page returns the page with the given number, or nil.
func (d *Document) Page(num int) *Page {
	for i := range d.Pages {
		if d.Pages[i].Number == num {
			return &d.Pages[i]
		}
	}
	return nil
}

// LastPage returns the highest page number, or 0 for an empty document.
func (d *Document) LastPage() int {
	if len(d.Pages) == 0 {
		return 0
	}
	return d.Pages[len(d.Pages)-1].Number
}

// LineCount returns the total number of lines across all pages.
func (d *Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Text flattens the document into a single newline-joined string.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		for _, line := range p.Lines {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(line)
		}
	}
	return sb.String()
}
