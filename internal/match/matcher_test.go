package match

import (
	"testing"

	"github.com/saiganesh-d/doccompare/internal/structure"
)

func sections(titles ...string) []Section {
	out := make([]Section, len(titles))
	for i, title := range titles {
		out[i] = Section{
			Heading: structure.HeadingInfo{Title: title, Level: 1},
			Content: "body for " + title,
			Index:   i,
		}
	}
	return out
}

func TestMatchSections_IdenticalDocuments(t *testing.T) {
	a := sections("Introduction", "Scope", "Payment Terms")
	matches := MatchSections(a, a, DefaultConfig())
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Status != StatusUnchanged {
			t.Errorf("match %d: expected unchanged, got %s (score %v)", i, m.Status, m.Score)
		}
		if m.AIndex != i || m.BIndex != i {
			t.Errorf("match %d: expected aligned indices, got a=%d b=%d", i, m.AIndex, m.BIndex)
		}
		if m.Reordered {
			t.Errorf("match %d flagged reordered in identical documents", i)
		}
	}
}

func TestMatchSections_AddedAndRemoved(t *testing.T) {
	a := sections("Introduction", "Warranty", "Payment Terms")
	b := sections("Introduction", "Payment Terms", "Data Protection")
	matches := MatchSections(a, b, DefaultConfig())

	var added, removed int
	for _, m := range matches {
		switch m.Status {
		case StatusAdded:
			added++
			if m.AIndex != -1 {
				t.Errorf("added match carries an A index: %+v", m)
			}
		case StatusRemoved:
			removed++
			if m.BIndex != -1 {
				t.Errorf("removed match carries a B index: %+v", m)
			}
		}
	}
	if added != 1 || removed != 1 {
		t.Errorf("expected 1 added and 1 removed, got %d/%d", added, removed)
	}
}

func TestMatchSections_EveryIndexExactlyOnce(t *testing.T) {
	a := sections("Alpha", "Beta", "Gamma", "Delta")
	b := sections("Gamma", "Epsilon", "Alpha")
	matches := MatchSections(a, b, DefaultConfig())

	seenA := make(map[int]int)
	seenB := make(map[int]int)
	for _, m := range matches {
		if m.AIndex >= 0 {
			seenA[m.AIndex]++
		}
		if m.BIndex >= 0 {
			seenB[m.BIndex]++
		}
	}
	for i := 0; i < len(a); i++ {
		if seenA[i] != 1 {
			t.Errorf("A index %d appears %d times", i, seenA[i])
		}
	}
	for j := 0; j < len(b); j++ {
		if seenB[j] != 1 {
			t.Errorf("B index %d appears %d times", j, seenB[j])
		}
	}
}

func TestMatchSections_ReversedOrderFlagsReorder(t *testing.T) {
	a := sections("One Section", "Two Section", "Three Section", "Four Section", "Five Section")
	b := make([]Section, len(a))
	for i := range a {
		b[len(a)-1-i] = a[i]
		b[len(a)-1-i].Index = len(a) - 1 - i
	}
	matches := MatchSections(a, b, DefaultConfig())

	reordered := 0
	for _, m := range matches {
		if m.Status != StatusUnchanged {
			t.Errorf("reversal changed content status: %+v", m)
		}
		if m.Reordered {
			reordered++
		}
	}
	// Rank divergence under the default tolerance of 2: the two end
	// sections move by 4, the middle three by 2 or less.
	if reordered != 2 {
		t.Errorf("expected 2 reordered matches, got %d", reordered)
	}
}

func TestAssign_TieBreakPrefersEarlierPair(t *testing.T) {
	// Two identical candidates in A compete for one B slot.
	a := sections("Definitions", "Definitions Again")
	a[1].Heading.Title = "Definitions"
	a[1].Content = a[0].Content
	b := sections("Definitions")

	matches := MatchSections(a, b, DefaultConfig())
	for _, m := range matches {
		if m.BIndex == 0 && m.AIndex != 0 {
			t.Errorf("tie should pair the earlier A section, got a=%d", m.AIndex)
		}
	}
}

func TestMatchSections_BelowThresholdSplits(t *testing.T) {
	a := sections("Governing Law")
	b := sections("Annex Tables")
	matches := MatchSections(a, b, DefaultConfig())
	if len(matches) != 2 {
		t.Fatalf("expected unrelated sections to split into removed+added, got %+v", matches)
	}
	if matches[0].Status != StatusRemoved || matches[1].Status != StatusAdded {
		t.Errorf("expected [removed added], got [%s %s]", matches[0].Status, matches[1].Status)
	}
}

func TestBand(t *testing.T) {
	cases := []struct {
		score float64
		want  Status
	}{
		{1.0, StatusUnchanged},
		{0.95, StatusUnchanged},
		{0.9, StatusSimilar},
		{0.75, StatusSimilar},
		{0.7, StatusModified},
		{0.6, StatusModified},
	}
	for _, c := range cases {
		if got := band(c.score); got != c.want {
			t.Errorf("band(%v) = %s, expected %s", c.score, got, c.want)
		}
	}
}

func TestBuildMatrix_Shape(t *testing.T) {
	a := sections("One Part", "Two Part")
	b := sections("One Part", "Two Part", "Three Part")
	matrix := BuildMatrix(a, b, Config{Workers: 2})
	if len(matrix) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(matrix))
	}
	for i, row := range matrix {
		if len(row) != 3 {
			t.Fatalf("row %d: expected 3 columns, got %d", i, len(row))
		}
		for j, score := range row {
			if score < 0 || score > 1 {
				t.Errorf("matrix[%d][%d] = %v out of [0,1]", i, j, score)
			}
		}
	}
	if matrix[0][0] < 0.999 || matrix[1][1] < 0.999 {
		t.Errorf("diagonal of identical sections should be 1: %v", matrix)
	}
}
