package match

import (
	"strings"

	"github.com/saiganesh-d/doccompare/internal/structure"
)

// Score weights. Title identity dominates because section titles are the
// most stable signal across revisions; the level component only breaks
// ties between same-titled candidates at different depths.
const (
	TitleWeight   = 0.6
	ContentWeight = 0.3
	LevelWeight   = 0.1

	// ContentPrefixLen caps how much section body feeds the content
	// component. Revisions concentrate near the top of a section, and
	// full-body LCS on large sections is quadratic.
	ContentPrefixLen = 500
)

// Section pairs a heading with its materialized content for scoring.
// Index is the position in the source document's heading order.
type Section struct {
	Heading structure.HeadingInfo
	Content string
	Index   int
}

// Normalize lowercases and collapses runs of whitespace to single spaces.
// All similarity comparison happens on normalized text.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Ratio is the character-level similarity of two strings in [0, 1]:
// twice the longest common subsequence length over the total length.
// Identical strings score 1, disjoint strings 0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	m := lcsRunes(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

// TokenRatio is Ratio over whitespace-separated words instead of runes.
// Paragraph bodies compare by token so a reflowed line break or doubled
// space does not register as change.
func TokenRatio(a, b string) float64 {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	m := lcsTokens(ta, tb)
	return 2 * float64(m) / float64(len(ta)+len(tb))
}

// ScoreSections computes the weighted similarity of two sections.
// prefixLen bounds the content component; non-positive means
// ContentPrefixLen.
func ScoreSections(a, b Section, prefixLen int) float64 {
	if prefixLen <= 0 {
		prefixLen = ContentPrefixLen
	}
	title := Ratio(Normalize(a.Heading.Title), Normalize(b.Heading.Title))
	content := Ratio(prefix(Normalize(a.Content), prefixLen), prefix(Normalize(b.Content), prefixLen))
	level := 0.0
	if a.Heading.Level == b.Heading.Level {
		level = 1.0
	}
	return TitleWeight*title + ContentWeight*content + LevelWeight*level
}

// ScoreParagraphs is the token-level similarity of two paragraphs.
func ScoreParagraphs(a, b structure.Paragraph) float64 {
	return TokenRatio(Normalize(a.Text), Normalize(b.Text))
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// lcsRunes returns the longest common subsequence length using two
// rolling rows, O(len(a)*len(b)) time and O(len(b)) space.
func lcsRunes(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func lcsTokens(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
