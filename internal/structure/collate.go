package structure

import (
	"math"
	"regexp"
	"strings"

	"github.com/saiganesh-d/doccompare/internal/pagedoc"
)

// CollateConfig controls repeated header/footer detection.
type CollateConfig struct {
	// Window is how many lines at the top and bottom of each page are
	// header/footer candidates.
	Window int
	// Ratio is the fraction of pages a candidate must appear on.
	Ratio float64
	// MinPages is the absolute occurrence floor, so two-page documents
	// still need a repeat before a line is suppressed.
	MinPages int
}

// DefaultCollateConfig returns the heuristics observed to work on typical
// paginated documents. They are tunables, not proven constants.
func DefaultCollateConfig() CollateConfig {
	return CollateConfig{Window: 3, Ratio: 0.5, MinPages: 2}
}

// minHeaderLen: very short repeated lines (e.g. "1") are handled by the
// page-number check instead of the frequency table.
const minHeaderLen = 3

var digitRunRe = regexp.MustCompile(`\d+`)

// maskDigits collapses digit runs so "CONFIDENTIAL - Page 7" and
// "CONFIDENTIAL - Page 8" count as the same repeated footer.
func maskDigits(line string) string {
	return digitRunRe.ReplaceAllString(line, "#")
}

var pageNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`),
	regexp.MustCompile(`^\d+\s*/\s*\d+$`),
}

// Collate merges a page range into a single ordered line stream, dropping
// repeated headers/footers and bare page numbers. Keys in the removed set
// are digit-masked (see maskDigits), so "Rev 2 - Page 4" and
// "Rev 2 - Page 5" are one entry.
//
// Two passes: headers and footers are only detectable by cross-page
// frequency, so the whole range must be seen before any line can be
// classified. Pass one builds a frequency table of the first and last
// Window lines of every page; any line appearing on at least
// max(MinPages, ceil(Ratio × pageCount)) pages is a repeat. Pass two
// re-walks all lines in page order and drops the repeats, preserving
// relative order. Pages with no extractable text contribute nothing and
// never abort the collation.
func Collate(pages []pagedoc.Page, cfg CollateConfig) (clean []string, removed map[string]struct{}) {
	if cfg.Window <= 0 {
		cfg.Window = 3
	}
	if cfg.Ratio <= 0 {
		cfg.Ratio = 0.5
	}
	if cfg.MinPages <= 0 {
		cfg.MinPages = 2
	}

	freq := make(map[string]int)
	pageCount := 0
	for _, page := range pages {
		if len(page.Lines) == 0 {
			continue
		}
		pageCount++
		for _, line := range edgeLines(page.Lines, cfg.Window) {
			line = strings.TrimSpace(line)
			if len(line) > minHeaderLen {
				freq[maskDigits(line)]++
			}
		}
	}

	threshold := int(math.Ceil(cfg.Ratio * float64(pageCount)))
	if threshold < cfg.MinPages {
		threshold = cfg.MinPages
	}

	removed = make(map[string]struct{})
	for line, count := range freq {
		if count >= threshold {
			removed[line] = struct{}{}
		}
	}

	for _, page := range pages {
		for _, line := range page.Lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if _, drop := removed[maskDigits(trimmed)]; drop {
				continue
			}
			if isPageNumber(trimmed) {
				continue
			}
			clean = append(clean, trimmed)
		}
	}
	return clean, removed
}

// runningLines finds lines that repeat verbatim in the header/footer
// window across pages, using the same threshold rule as Collate. Unlike
// Collate it does not mask digits: a numbered heading recurring with
// different numbers ("1. Definitions", "3. Definitions") is two sections,
// not one running header.
func runningLines(pages []pagedoc.Page, cfg CollateConfig) map[string]struct{} {
	if cfg.Window <= 0 {
		cfg.Window = 3
	}
	if cfg.Ratio <= 0 {
		cfg.Ratio = 0.5
	}
	if cfg.MinPages <= 0 {
		cfg.MinPages = 2
	}

	freq := make(map[string]int)
	pageCount := 0
	for _, page := range pages {
		if len(page.Lines) == 0 {
			continue
		}
		pageCount++
		for _, line := range edgeLines(page.Lines, cfg.Window) {
			line = strings.TrimSpace(line)
			if len(line) > minHeaderLen {
				freq[line]++
			}
		}
	}

	threshold := int(math.Ceil(cfg.Ratio * float64(pageCount)))
	if threshold < cfg.MinPages {
		threshold = cfg.MinPages
	}

	out := make(map[string]struct{})
	for line, count := range freq {
		if count >= threshold {
			out[line] = struct{}{}
		}
	}
	return out
}

// edgeLines returns the first and last n non-blank lines of a page,
// deduplicated so a short page does not double-count its lines.
func edgeLines(lines []string, n int) []string {
	var nonBlank []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonBlank = append(nonBlank, l)
		}
	}
	if len(nonBlank) <= 2*n {
		return nonBlank
	}
	out := make([]string, 0, 2*n)
	out = append(out, nonBlank[:n]...)
	out = append(out, nonBlank[len(nonBlank)-n:]...)
	return out
}

// isPageNumber matches common bare page-number footers: "12", "Page 12",
// "Page 12 of 30", "5 / 250".
func isPageNumber(line string) bool {
	for _, re := range pageNumberRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
