package compare

import (
	"errors"
	"testing"

	"github.com/saiganesh-d/doccompare/internal/match"
	"github.com/saiganesh-d/doccompare/internal/pagedoc"
	"github.com/saiganesh-d/doccompare/internal/requirement"
)

func TestCompareSections_EndToEnd(t *testing.T) {
	// Document A has three sections. In B the warranty section is gone,
	// payment terms move down a level with rewritten content, and a new
	// data protection section appears.
	pagesA := map[int][]string{
		1: {
			"1. Introduction",
			"this agreement describes the relationship between the parties",
			"2. Warranty",
			"the seller must repair defects reported during the coverage window",
			"3. Payment Terms",
			"net thirty",
		},
	}
	pagesB := map[int][]string{
		1: {
			"1. Introduction",
			"this agreement describes the relationship between the parties",
			"3.1 Payment Terms",
			"the buyer remits payment according to the quarterly settlement schedule agreed in writing",
			"4. Data Protection",
			"personal data processing follows the annexed instructions",
		},
	}

	report, err := New(DefaultConfig(), nil).CompareSections(pagesA, pagesB)
	if err != nil {
		t.Fatalf("CompareSections: %v", err)
	}
	if len(report.Sections) != 4 {
		t.Fatalf("expected 4 section matches, got %d: %+v", len(report.Sections), report.Sections)
	}

	want := []match.Status{
		match.StatusUnchanged,
		match.StatusRemoved,
		match.StatusModified,
		match.StatusAdded,
	}
	for i, w := range want {
		if report.Sections[i].Status != w {
			t.Errorf("section %d: expected %s, got %s (score %v)",
				i, w, report.Sections[i].Status, report.Sections[i].Score)
		}
	}

	if report.Summary.Unchanged != 1 || report.Summary.Removed != 1 ||
		report.Summary.Modified != 1 || report.Summary.Added != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}

	// The removed warranty section carried a "must" obligation.
	removed := report.Sections[1]
	if removed.Requirement == nil {
		t.Fatal("expected a requirement flag on the removed section")
	}
	if removed.Requirement.LevelA != requirement.LevelMandatory ||
		removed.Requirement.Severity != requirement.SeverityCritical {
		t.Errorf("unexpected flag: %+v", removed.Requirement)
	}
	if report.Summary.Critical < 1 {
		t.Errorf("critical count missing from summary: %+v", report.Summary)
	}
}

func TestCompareSections_MalformedPages(t *testing.T) {
	_, err := New(DefaultConfig(), nil).CompareSections(
		map[int][]string{0: {"zero is not a page"}},
		map[int][]string{1: {"fine"}},
	)
	if !errors.Is(err, pagedoc.ErrMalformedPages) {
		t.Fatalf("expected ErrMalformedPages, got %v", err)
	}
}

func TestCompareSections_EmptyDocuments(t *testing.T) {
	report, err := New(DefaultConfig(), nil).CompareSections(
		map[int][]string{},
		map[int][]string{},
	)
	if err != nil {
		t.Fatalf("empty documents should not error: %v", err)
	}
	if len(report.Sections) != 0 {
		t.Errorf("expected no sections, got %+v", report.Sections)
	}
}

func TestCompareParagraphs_DiffAndFlag(t *testing.T) {
	c := New(DefaultConfig(), nil)
	a := "the system must authenticate users before granting access\n\nsessions expire after one hour of inactivity"
	b := "the system should authenticate users before granting access\n\nsessions expire after one hour of inactivity"

	matches := c.CompareParagraphs(a, b)
	if len(matches) != 2 {
		t.Fatalf("expected 2 paragraph matches, got %d", len(matches))
	}

	var flagged *ParagraphMatch
	for i := range matches {
		if matches[i].Requirement != nil {
			flagged = &matches[i]
		}
	}
	if flagged == nil {
		t.Fatal("expected a requirement flag on the must/should paragraph")
	}
	if flagged.Requirement.Severity != requirement.SeverityHigh {
		t.Errorf("expected high severity, got %q", flagged.Requirement.Severity)
	}
	if len(flagged.Diff) == 0 {
		t.Error("expected diff spans on the modified paragraph")
	}
}

func TestChangeSummary_Bands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.97, "No meaningful changes"},
		{0.85, "Minor text updates"},
		{0.65, "Moderate revisions"},
	}
	for _, c := range cases {
		if got := changeSummary(c.score, "some base text", "some target text"); got != c.want {
			t.Errorf("changeSummary(%v) = %q, expected %q", c.score, got, c.want)
		}
	}
	if got := changeSummary(0.2, "short", "text that more than doubled in overall word count here"); got != "Significantly expanded" {
		t.Errorf("expected expansion summary, got %q", got)
	}
}

func TestEngineStats_Snapshot(t *testing.T) {
	s := NewEngineStats(0)
	for _, ms := range []int64{10, 20, 30, 40} {
		s.Record(ms)
	}
	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Fatalf("expected 4 samples, got %d", snap.Count)
	}
	if snap.MinMs != 10 || snap.MaxMs != 40 {
		t.Errorf("unexpected min/max: %d/%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 25 {
		t.Errorf("expected avg 25, got %v", snap.AvgMs)
	}
}

func TestCompareSections_ParagraphBoundariesSurvive(t *testing.T) {
	// Two blank-separated paragraphs; only the second changes a word.
	// The section content must keep the blank break so the change is
	// attributed to its own paragraph instead of diluting into one
	// merged unit that scores as unchanged.
	pagesA := map[int][]string{
		1: {
			"1. Governing Law",
			"this agreement is governed by the laws of the state",
			"",
			"any dispute is resolved in the jurisdiction of the courts",
		},
	}
	pagesB := map[int][]string{
		1: {
			"1. Governing Law",
			"this agreement is governed by the laws of the state",
			"",
			"any dispute is resolved in the venue of the courts",
		},
	}

	report, err := New(DefaultConfig(), nil).CompareSections(pagesA, pagesB)
	if err != nil {
		t.Fatalf("CompareSections: %v", err)
	}
	if len(report.Sections) != 1 {
		t.Fatalf("expected 1 section match, got %d", len(report.Sections))
	}

	paras := report.Sections[0].Paragraphs
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraph matches, got %d: %+v", len(paras), paras)
	}

	var changed *ParagraphMatch
	for i := range paras {
		if paras[i].Status != match.StatusUnchanged {
			changed = &paras[i]
		}
	}
	if changed == nil {
		t.Fatal("word change swallowed: every paragraph reported unchanged")
	}
	if changed.Status != match.StatusSimilar {
		t.Errorf("expected similar paragraph, got %s (score %v)", changed.Status, changed.Score)
	}
	if len(changed.Diff) == 0 {
		t.Error("expected a diff on the changed paragraph")
	}
}
