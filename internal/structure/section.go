package structure

import (
	"regexp"
	"strings"

	"github.com/saiganesh-d/doccompare/internal/pagedoc"
)

// HeadingInfo is a structural heading located in the document. Level is a
// hierarchy hint (1 = chapter); Line is the line index on its page. A
// synthetic whole-document heading has Line = -1.
type HeadingInfo struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Page  int    `json:"page"`
	Line  int    `json:"line"`
}

// Synthetic reports whether this heading was fabricated for a document
// with no detectable structure.
func (h HeadingInfo) Synthetic() bool { return h.Line < 0 }

// SectionContent is the materialized body of one section: every line from
// the heading (exclusive) to the next heading (exclusive), across all pages
// in between. CleanLines has repeated headers/footers removed; RawLines
// does not. Interior blank lines survive in both so paragraph boundaries
// are recoverable downstream.
type SectionContent struct {
	Heading    HeadingInfo
	Next       *HeadingInfo
	RawLines   []string
	CleanLines []string
	PageStart  int
	PageEnd    int
}

// Text returns the cleaned content joined with newlines.
func (s SectionContent) Text() string { return strings.Join(s.CleanLines, "\n") }

// tocScanPages limits how many leading pages are searched for a dotted
// table of contents.
const tocScanPages = 5

var tocEntryRes = []*regexp.Regexp{
	// "1.2.3 Some Title .... 45"
	regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(\S[^.]*?)\s*\.{2,}\s*\d+$`),
	// "SOME TITLE .... 45"
	regexp.MustCompile(`^([A-Z][A-Z\s]{2,50}?)\s*\.{2,}\s*\d+$`),
}

// Extractor walks a document once to find its headings, then materializes
// section content on demand. It is stateless across documents.
type Extractor struct {
	Classifier Classifier
	Collate    CollateConfig
}

// NewExtractor returns an Extractor with default collation heuristics.
func NewExtractor() *Extractor {
	return &Extractor{Collate: DefaultCollateConfig()}
}

// ExtractSections scans all pages and returns the ordered heading list.
// Heading hints carried by the document (native markup or a recognized
// table of contents) take precedence over classified levels when a line
// matches a hint. A document with no detectable headings yields a single
// synthetic whole-document heading so callers always get a report shape.
func (e *Extractor) ExtractSections(doc *pagedoc.Document) []HeadingInfo {
	hints := hintIndex(doc.Hints)
	for title, level := range e.scanTOC(doc) {
		if _, ok := hints[title]; !ok {
			hints[title] = level
		}
	}

	running := runningLines(doc.Pages, e.collateCfg())

	var headings []HeadingInfo
	for _, page := range doc.Pages {
		for lineIdx, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			// A dotted ToC entry is a pointer to a section, not the
			// section itself.
			if isTOCEntry(line) {
				continue
			}
			// A line repeating verbatim across pages is a running
			// header, not another occurrence of the section it names.
			// Genuine duplicate titles ("Definitions" per chapter)
			// stay below the threshold and each get their own section.
			if _, drop := running[line]; drop {
				continue
			}

			level, title, ok := e.Classifier.Classify(line)
			if hintLevel, hinted := hints[normalizeTitle(line)]; hinted {
				level, title, ok = hintLevel, line, true
			} else if ok {
				if hintLevel, hinted := hints[normalizeTitle(title)]; hinted {
					level = hintLevel
				}
			}
			if !ok {
				continue
			}
			headings = append(headings, HeadingInfo{
				Title: title,
				Level: level,
				Page:  page.Number,
				Line:  lineIdx,
			})
		}
	}

	if len(headings) == 0 && doc.LineCount() > 0 {
		title := doc.Title
		if title == "" {
			title = "Document"
		}
		headings = append(headings, HeadingInfo{
			Title: title,
			Level: 1,
			Page:  firstPage(doc),
			Line:  -1,
		})
	}
	return headings
}

// ExtractContent materializes the section between heading and next. The
// content spans every page in [heading.Page, next.Page], not just the
// heading's own page, with the heading line and the next heading's line
// both excluded. Collation runs over exactly that page range so one
// section's header layout cannot bleed into another's.
func (e *Extractor) ExtractContent(doc *pagedoc.Document, heading HeadingInfo, next *HeadingInfo) SectionContent {
	endPage := doc.LastPage()
	if next != nil {
		endPage = next.Page
	}
	pages := doc.PageRange(heading.Page, endPage)

	_, removed := Collate(pages, e.collateCfg())

	sc := SectionContent{
		Heading:   heading,
		Next:      next,
		PageStart: heading.Page,
		PageEnd:   endPage,
	}

	for _, page := range pages {
		for lineIdx, raw := range page.Lines {
			if page.Number == heading.Page && lineIdx <= heading.Line {
				continue
			}
			if next != nil && page.Number == next.Page && lineIdx >= next.Line {
				break
			}
			line := strings.TrimSpace(raw)
			if line == "" {
				// Blank lines are paragraph boundaries; keep one
				// between content lines so segmentation sees them.
				sc.RawLines = appendBlank(sc.RawLines)
				sc.CleanLines = appendBlank(sc.CleanLines)
				continue
			}
			sc.RawLines = append(sc.RawLines, line)
			if _, drop := removed[maskDigits(line)]; drop {
				continue
			}
			if isPageNumber(line) {
				continue
			}
			sc.CleanLines = append(sc.CleanLines, line)
		}
	}
	sc.RawLines = trimTrailingBlank(sc.RawLines)
	sc.CleanLines = trimTrailingBlank(sc.CleanLines)
	return sc
}

// collateCfg falls back to the default heuristics when the Extractor was
// built with a zero config.
func (e *Extractor) collateCfg() CollateConfig {
	if e.Collate.Window <= 0 {
		return DefaultCollateConfig()
	}
	return e.Collate
}

// appendBlank adds a single empty line, never leading and never doubled.
func appendBlank(lines []string) []string {
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		return lines
	}
	return append(lines, "")
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// scanTOC looks for dotted-leader table of contents entries in the first
// pages and returns them as title → level hints.
func (e *Extractor) scanTOC(doc *pagedoc.Document) map[string]int {
	hints := make(map[string]int)
	scanned := 0
	for _, page := range doc.Pages {
		if scanned >= tocScanPages {
			break
		}
		scanned++
		for _, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			m := tocEntryRes[0].FindStringSubmatch(line)
			if m != nil {
				title := strings.TrimSpace(m[2])
				if len(title) >= MinTitleLen {
					hints[normalizeTitle(title)] = strings.Count(m[1], ".") + 1
				}
				continue
			}
			if m := tocEntryRes[1].FindStringSubmatch(line); m != nil {
				title := strings.TrimSpace(m[1])
				if len(title) >= MinTitleLen {
					hints[normalizeTitle(title)] = 1
				}
			}
		}
	}
	return hints
}

func isTOCEntry(line string) bool {
	for _, re := range tocEntryRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func hintIndex(hints []pagedoc.HeadingHint) map[string]int {
	idx := make(map[string]int, len(hints))
	for _, h := range hints {
		level := h.Level
		if level <= 0 {
			level = 1
		}
		idx[normalizeTitle(h.Title)] = level
	}
	return idx
}

func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func firstPage(doc *pagedoc.Document) int {
	if len(doc.Pages) == 0 {
		return 1
	}
	return doc.Pages[0].Number
}
