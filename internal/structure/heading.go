package structure

import (
	"regexp"
	"strings"
	"unicode"
)

// Heading classification thresholds. Tunable heuristics: they trade false
// positives (numbered list items, shouty body text) against missed headings.
const (
	// MaxHeadingLen is the ceiling above which a line is always body text,
	// even when it matches a numbering pattern. Long numbered lines are
	// almost always list items inside a paragraph.
	MaxHeadingLen = 120

	// MinTitleLen rejects fragments like "1. a" as headings.
	MinTitleLen = 3

	// maxCapsHeadingLen bounds ALL-CAPS heading detection.
	maxCapsHeadingLen = 50

	// maxTitleCaseWords bounds Title-Case heading detection.
	maxTitleCaseWords = 10

	// capsChapterLen: ALL-CAPS lines shorter than this rank as level 1.
	capsChapterLen = 30

	// commonWordLimit: lines with many function words are body text.
	commonWordLimit = 3
	wordCountLimit  = 10
)

var (
	numberedRe      = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?\s+(\S.*)$`)
	letteredUpperRe = regexp.MustCompile(`^([A-Z])[.)]\s+(.+)$`)
	letteredLowerRe = regexp.MustCompile(`^([a-z])[.)]\s+(.+)$`)
	romanUpperRe    = regexp.MustCompile(`^([IVXLC]{2,})[.)]\s+(.+)$`)
	romanLowerRe    = regexp.MustCompile(`^([ivxlc]{2,})[.)]\s+(.+)$`)
	colonHeadingRe  = regexp.MustCompile(`^([A-Z][^:\n]{4,59}):$`)

	commonWords = map[string]bool{
		"the": true, "and": true, "or": true, "is": true, "are": true,
		"was": true, "were": true, "in": true, "on": true, "at": true,
	}
)

// Classifier decides whether a text line is a structural heading and at
// what depth. It holds no per-document state and is safe for concurrent use.
type Classifier struct {
	// MaxLen overrides MaxHeadingLen when positive.
	MaxLen int
}

// Classify reports whether line is a heading. On success it returns the
// hierarchy level (1 = chapter) and the normalized title. Levels are hints,
// not a strict tree: siblings may repeat levels. Unrecognized formatting
// returns ok=false, never an error.
func (c *Classifier) Classify(line string) (level int, title string, ok bool) {
	line = strings.TrimSpace(line)
	maxLen := c.MaxLen
	if maxLen <= 0 {
		maxLen = MaxHeadingLen
	}
	if len(line) < MinTitleLen || len(line) > maxLen {
		return 0, "", false
	}

	// Lines dominated by function words are body text regardless of shape.
	words := strings.Fields(line)
	if len(words) > wordCountLimit {
		common := 0
		for _, w := range words {
			if commonWords[strings.ToLower(w)] {
				common++
			}
		}
		if common > commonWordLimit {
			return 0, "", false
		}
	}

	if m := numberedRe.FindStringSubmatch(line); m != nil {
		title := strings.TrimSpace(m[2])
		if validTitle(title) {
			return strings.Count(m[1], ".") + 1, title, true
		}
	}
	if m := letteredUpperRe.FindStringSubmatch(line); m != nil {
		if title := strings.TrimSpace(m[2]); validTitle(title) {
			return 2, title, true
		}
	}
	if m := letteredLowerRe.FindStringSubmatch(line); m != nil {
		if title := strings.TrimSpace(m[2]); validTitle(title) {
			return 3, title, true
		}
	}
	if m := romanUpperRe.FindStringSubmatch(line); m != nil {
		if title := strings.TrimSpace(m[2]); validTitle(title) {
			return 2, title, true
		}
	}
	if m := romanLowerRe.FindStringSubmatch(line); m != nil {
		if title := strings.TrimSpace(m[2]); validTitle(title) {
			return 3, title, true
		}
	}

	if isAllCaps(line) && len(line) <= maxCapsHeadingLen {
		if len(line) < capsChapterLen {
			return 1, line, true
		}
		return 2, line, true
	}

	if m := colonHeadingRe.FindStringSubmatch(line); m != nil {
		return 2, strings.TrimSpace(m[1]), true
	}

	if isTitleCase(words) && len(words) <= maxTitleCaseWords {
		return 2, line, true
	}

	return 0, "", false
}

func validTitle(title string) bool {
	return len(title) >= MinTitleLen && len(title) <= MaxHeadingLen
}

// isAllCaps reports whether the line consists of uppercase letters (plus
// spaces and digits) with at least two letters.
func isAllCaps(line string) bool {
	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			letters++
		case unicode.IsLower(r):
			return false
		case unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '&':
			// allowed
		default:
			return false
		}
	}
	return letters >= 2
}

// isTitleCase reports whether every word starts with an uppercase letter
// and continues lowercase (e.g. "Terms Of Payment"). Requires at least two
// words so single capitalized words in flowing text do not qualify.
func isTitleCase(words []string) bool {
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes[1:] {
			if !unicode.IsLower(r) {
				return false
			}
		}
	}
	return true
}
