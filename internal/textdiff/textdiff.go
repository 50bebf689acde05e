// Package textdiff computes line-level diffs between two text blocks,
// refining changed regions down to word granularity when they are small
// enough to make a readable word diff.
package textdiff

import "strings"

// Tag labels a diff region.
type Tag string

const (
	TagEqual   Tag = "equal"
	TagInsert  Tag = "insert"
	TagDelete  Tag = "delete"
	TagReplace Tag = "replace"
)

// MaxRefineLen is the default ceiling, in characters per side, above
// which a replaced region is reported as a block instead of being
// refined word by word. Word diffs of large regions are noise.
const MaxRefineLen = 500

// Opcode describes one aligned region: a[A1:A2] versus b[B1:B2].
type Opcode struct {
	Tag            Tag
	A1, A2, B1, B2 int
}

// Span is one rendered diff region. AText is empty for inserts, BText
// for deletes; equal regions carry the same text on both sides.
type Span struct {
	Tag   Tag    `json:"tag"`
	AText string `json:"a_text,omitempty"`
	BText string `json:"b_text,omitempty"`
}

// Opcodes aligns two string slices by longest common subsequence and
// returns the merged edit regions in order. Adjacent delete and insert
// runs merge into a single replace.
func Opcodes(a, b []string) []Opcode {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Walk back from the corner, then reverse into forward order.
	type step struct {
		tag  Tag
		i, j int
	}
	var steps []step
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			steps = append(steps, step{TagEqual, i - 1, j - 1})
			i--
			j--
		case i > 0 && (j == 0 || dp[i-1][j] >= dp[i][j-1]):
			steps = append(steps, step{TagDelete, i - 1, j})
			i--
		default:
			steps = append(steps, step{TagInsert, i, j - 1})
			j--
		}
	}
	for x, y := 0, len(steps)-1; x < y; x, y = x+1, y-1 {
		steps[x], steps[y] = steps[y], steps[x]
	}

	var ops []Opcode
	for _, s := range steps {
		var op Opcode
		switch s.tag {
		case TagEqual:
			op = Opcode{TagEqual, s.i, s.i + 1, s.j, s.j + 1}
		case TagDelete:
			op = Opcode{TagDelete, s.i, s.i + 1, s.j, s.j}
		case TagInsert:
			op = Opcode{TagInsert, s.i, s.i, s.j, s.j + 1}
		}
		if len(ops) > 0 && mergeable(ops[len(ops)-1].Tag, op.Tag) {
			last := &ops[len(ops)-1]
			last.A2, last.B2 = op.A2, op.B2
			if last.Tag != op.Tag {
				last.Tag = TagReplace
			}
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// mergeable reports whether two adjacent region tags combine: same-tag
// runs always extend, and delete and insert fold into replace.
func mergeable(prev, next Tag) bool {
	if prev == next {
		return true
	}
	if prev == TagEqual || next == TagEqual {
		return false
	}
	return true
}

// Diff compares two text blocks line by line. Replaced regions up to
// maxRefineLen characters per side are re-diffed at word level; when the
// two sides have the same number of lines the refinement runs pairwise
// so unrelated lines do not smear together. Non-positive maxRefineLen
// means MaxRefineLen.
func Diff(textA, textB string, maxRefineLen int) []Span {
	if maxRefineLen <= 0 {
		maxRefineLen = MaxRefineLen
	}
	linesA := splitLines(textA)
	linesB := splitLines(textB)

	var spans []Span
	for _, op := range Opcodes(linesA, linesB) {
		aBlock := strings.Join(linesA[op.A1:op.A2], "\n")
		bBlock := strings.Join(linesB[op.B1:op.B2], "\n")
		switch op.Tag {
		case TagEqual:
			spans = append(spans, Span{Tag: TagEqual, AText: aBlock, BText: bBlock})
		case TagDelete:
			spans = append(spans, Span{Tag: TagDelete, AText: aBlock})
		case TagInsert:
			spans = append(spans, Span{Tag: TagInsert, BText: bBlock})
		case TagReplace:
			spans = append(spans, refineReplace(linesA[op.A1:op.A2], linesB[op.B1:op.B2], maxRefineLen)...)
		}
	}
	return spans
}

func refineReplace(aLines, bLines []string, maxRefineLen int) []Span {
	if blockLen(aLines) > maxRefineLen || blockLen(bLines) > maxRefineLen {
		return []Span{{
			Tag:   TagReplace,
			AText: strings.Join(aLines, "\n"),
			BText: strings.Join(bLines, "\n"),
		}}
	}
	if len(aLines) == len(bLines) {
		var spans []Span
		for i := range aLines {
			if aLines[i] == bLines[i] {
				spans = append(spans, Span{Tag: TagEqual, AText: aLines[i], BText: aLines[i]})
				continue
			}
			spans = append(spans, wordDiff(aLines[i], bLines[i])...)
		}
		return spans
	}
	return wordDiff(strings.Join(aLines, " "), strings.Join(bLines, " "))
}

// wordDiff aligns two strings word by word. Each returned span joins
// its run of words with single spaces.
func wordDiff(a, b string) []Span {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	var spans []Span
	for _, op := range Opcodes(wordsA, wordsB) {
		aRun := strings.Join(wordsA[op.A1:op.A2], " ")
		bRun := strings.Join(wordsB[op.B1:op.B2], " ")
		switch op.Tag {
		case TagEqual:
			spans = append(spans, Span{Tag: TagEqual, AText: aRun, BText: bRun})
		case TagDelete:
			spans = append(spans, Span{Tag: TagDelete, AText: aRun})
		case TagInsert:
			spans = append(spans, Span{Tag: TagInsert, BText: bRun})
		case TagReplace:
			spans = append(spans, Span{Tag: TagReplace, AText: aRun, BText: bRun})
		}
	}
	return spans
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	lines := raw[:0]
	for _, line := range raw {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

func blockLen(lines []string) int {
	total := 0
	for _, line := range lines {
		total += len(line) + 1
	}
	return total
}
