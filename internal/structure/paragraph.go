package structure

import (
	"regexp"
	"strings"
)

// ParagraphKind labels how a paragraph is introduced.
type ParagraphKind string

const (
	ParagraphNormal   ParagraphKind = "normal"
	ParagraphNumbered ParagraphKind = "numbered"
	ParagraphLettered ParagraphKind = "lettered"
)

// Paragraph is one comparison unit inside a section. Ephemeral: produced
// for a single comparison and discarded with it.
type Paragraph struct {
	Text    string        `json:"text"`
	Ordinal int           `json:"ordinal"`
	Kind    ParagraphKind `json:"kind"`
}

// minParagraphLen filters fragments (stray numbers, single words) that
// would pollute paragraph matching.
const minParagraphLen = 10

var (
	numberedParaRe = regexp.MustCompile(`^\d+\.(\d+\.)*\s+`)
	letteredParaRe = regexp.MustCompile(`^[a-zA-Z][.)]\s+`)
	romanParaRe    = regexp.MustCompile(`(?i)^[ivx]{2,4}[.)]\s+`)
	bulletParaRe   = regexp.MustCompile(`^[•\-\*]\s+`)
)

// SplitParagraphs groups content lines into paragraphs. A new paragraph
// starts at a blank line or where a line opens with a numbered, lettered,
// Roman, or bullet marker, so list items stay separate units even when
// the source had no blank lines between them. Continuation lines are
// joined with single spaces.
func SplitParagraphs(lines []string) []Paragraph {
	var paragraphs []Paragraph
	var current []string
	currentKind := ParagraphNormal

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.Join(current, " ")
		if len(text) >= minParagraphLen {
			paragraphs = append(paragraphs, Paragraph{
				Text:    text,
				Ordinal: len(paragraphs),
				Kind:    currentKind,
			})
		}
		current = nil
		currentKind = ParagraphNormal
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		if kind, starts := paragraphStart(line); starts {
			flush()
			currentKind = kind
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

// paragraphStart reports whether a line opens a new paragraph unit and of
// what kind. Plain lines only start a paragraph after a blank-line break,
// handled by the caller.
func paragraphStart(line string) (ParagraphKind, bool) {
	switch {
	case numberedParaRe.MatchString(line):
		return ParagraphNumbered, true
	case letteredParaRe.MatchString(line):
		return ParagraphLettered, true
	case romanParaRe.MatchString(line):
		return ParagraphLettered, true
	case bulletParaRe.MatchString(line):
		return ParagraphNormal, true
	}
	return ParagraphNormal, false
}
