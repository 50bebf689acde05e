package structure

import (
	"testing"

	"github.com/saiganesh-d/doccompare/internal/pagedoc"
)

func docFromPages(t *testing.T, pages map[int][]string) *pagedoc.Document {
	t.Helper()
	doc, err := pagedoc.FromMap(pages)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	return doc
}

func TestExtractSections_NumberedAcrossPages(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"1. Introduction", "the opening words of the agreement"},
		2: {"more body text continues here", "2. Scope", "what the scope covers"},
		3: {"2.1 Exclusions", "items outside the scope"},
	})

	headings := NewExtractor().ExtractSections(doc)
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d: %+v", len(headings), headings)
	}
	want := []HeadingInfo{
		{Title: "Introduction", Level: 1, Page: 1, Line: 0},
		{Title: "Scope", Level: 1, Page: 2, Line: 1},
		{Title: "Exclusions", Level: 2, Page: 3, Line: 0},
	}
	for i, w := range want {
		if headings[i] != w {
			t.Errorf("heading %d: expected %+v, got %+v", i, w, headings[i])
		}
	}
}

func TestExtractSections_SyntheticWhenUnstructured(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"just flowing body text with no structure at all"},
		2: {"and it keeps going on the next page"},
	})
	doc.Title = "plain.txt"

	headings := NewExtractor().ExtractSections(doc)
	if len(headings) != 1 {
		t.Fatalf("expected 1 synthetic heading, got %d", len(headings))
	}
	h := headings[0]
	if !h.Synthetic() {
		t.Errorf("expected synthetic heading, got Line=%d", h.Line)
	}
	if h.Title != "plain.txt" || h.Level != 1 || h.Page != 1 {
		t.Errorf("unexpected synthetic heading: %+v", h)
	}
}

func TestExtractSections_HintOverridesClassifiedLevel(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"Payment Terms", "invoices are due in thirty days"},
	})
	// Title-case alone would classify as level 2; native markup says 1.
	doc.Hints = []pagedoc.HeadingHint{{Title: "Payment Terms", Level: 1}}

	headings := NewExtractor().ExtractSections(doc)
	if len(headings) != 1 {
		t.Fatalf("expected 1 heading, got %d", len(headings))
	}
	if headings[0].Level != 1 {
		t.Errorf("expected hinted level 1, got %d", headings[0].Level)
	}
}

func TestExtractSections_TOCEntriesSkippedButHint(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {
			"Contents",
			"1 Payment Terms ........ 2",
			"2 Delivery ........ 3",
		},
		2: {"Payment Terms", "invoices are due in thirty days"},
	})

	headings := NewExtractor().ExtractSections(doc)
	for _, h := range headings {
		if h.Page == 1 && h.Title == "Payment Terms" {
			t.Error("dotted ToC entry extracted as a heading")
		}
	}
	var found *HeadingInfo
	for i := range headings {
		if headings[i].Title == "Payment Terms" {
			found = &headings[i]
		}
	}
	if found == nil {
		t.Fatal("expected Payment Terms heading on page 2")
	}
	if found.Page != 2 || found.Level != 1 {
		t.Errorf("expected page 2 level 1 from ToC hint, got %+v", *found)
	}
}

func TestExtractContent_SpansPages(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"1. Introduction", "the first body line", "the second body line"},
		2: {"the third body line carries over", "2. Scope", "scope body not ours"},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(headings))
	}

	sc := e.ExtractContent(doc, headings[0], &headings[1])
	want := []string{
		"the first body line",
		"the second body line",
		"the third body line carries over",
	}
	if len(sc.CleanLines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), sc.CleanLines)
	}
	for i, w := range want {
		if sc.CleanLines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, sc.CleanLines[i])
		}
	}
	if sc.PageStart != 1 || sc.PageEnd != 2 {
		t.Errorf("expected pages [1,2], got [%d,%d]", sc.PageStart, sc.PageEnd)
	}
}

func TestExtractContent_LastSectionRunsToEnd(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"1. Only Section", "body on the first page"},
		2: {"body on the last page"},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)

	sc := e.ExtractContent(doc, headings[0], nil)
	if sc.PageEnd != 2 {
		t.Errorf("expected section to run to page 2, got %d", sc.PageEnd)
	}
	if len(sc.CleanLines) != 2 {
		t.Fatalf("expected 2 content lines, got %v", sc.CleanLines)
	}
	if sc.CleanLines[1] != "body on the last page" {
		t.Errorf("missing trailing page content: %v", sc.CleanLines)
	}
}

func TestExtractContent_DropsPageNumberLines(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"1. Terms", "the substantive wording", "Page 1 of 2"},
		2: {"more substantive wording", "Page 2 of 2"},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)

	sc := e.ExtractContent(doc, headings[0], nil)
	for _, line := range sc.CleanLines {
		if line == "Page 1 of 2" || line == "Page 2 of 2" {
			t.Errorf("page number kept in clean content: %q", line)
		}
	}
	// RawLines keeps everything between the headings.
	if len(sc.RawLines) != 4 {
		t.Errorf("expected 4 raw lines, got %v", sc.RawLines)
	}
	if len(sc.CleanLines) != 2 {
		t.Errorf("expected 2 clean lines, got %v", sc.CleanLines)
	}
}

func TestExtractContent_MiddlePagesIncluded(t *testing.T) {
	// A section spanning four pages must carry the pages between its
	// heading and the next one, not just the two boundary pages.
	doc := docFromPages(t, map[int][]string{
		5: {"5. Delivery", "echo marker page five"},
		6: {"foxtrot marker page six"},
		7: {"golf marker page seven"},
		8: {"hotel marker page eight", "6. Acceptance", "acceptance body"},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d: %+v", len(headings), headings)
	}

	sc := e.ExtractContent(doc, headings[0], &headings[1])
	want := []string{
		"echo marker page five",
		"foxtrot marker page six",
		"golf marker page seven",
		"hotel marker page eight",
	}
	if len(sc.CleanLines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), sc.CleanLines)
	}
	for i, w := range want {
		if sc.CleanLines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, sc.CleanLines[i])
		}
	}
	if sc.PageStart != 5 || sc.PageEnd != 8 {
		t.Errorf("expected pages [5,8], got [%d,%d]", sc.PageStart, sc.PageEnd)
	}
}

func TestExtractContent_KeepsBlankLineBoundaries(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {
			"1. Terms",
			"the first paragraph of the section body",
			"",
			"the second paragraph after a blank break",
		},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)

	sc := e.ExtractContent(doc, headings[0], nil)
	want := []string{
		"the first paragraph of the section body",
		"",
		"the second paragraph after a blank break",
	}
	if len(sc.CleanLines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), sc.CleanLines)
	}
	for i, w := range want {
		if sc.CleanLines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, sc.CleanLines[i])
		}
	}

	paras := SplitParagraphs(sc.CleanLines)
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs from section content, got %d: %+v", len(paras), paras)
	}
}

func TestExtractContent_NoLeadingOrTrailingBlanks(t *testing.T) {
	doc := docFromPages(t, map[int][]string{
		1: {"1. Terms", "", "the only body line", "", ""},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)

	sc := e.ExtractContent(doc, headings[0], nil)
	if len(sc.CleanLines) != 1 || sc.CleanLines[0] != "the only body line" {
		t.Errorf("expected single trimmed line, got %v", sc.CleanLines)
	}
}

func TestExtractSections_DuplicateTitlesKept(t *testing.T) {
	// Contracts repeat titles like Definitions per chapter; each
	// occurrence is its own section.
	doc := docFromPages(t, map[int][]string{
		1: {"1. Definitions", "terms used in the first chapter"},
		2: {"2. Scope", "what the scope of work covers"},
		3: {"3. Definitions", "terms used in the closing chapter"},
	})
	e := NewExtractor()
	headings := e.ExtractSections(doc)
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d: %+v", len(headings), headings)
	}
	if headings[0].Title != "Definitions" || headings[2].Title != "Definitions" {
		t.Errorf("expected Definitions at both ends, got %+v", headings)
	}
	if headings[2].Page != 3 {
		t.Errorf("expected second Definitions on page 3, got %d", headings[2].Page)
	}

	sc := e.ExtractContent(doc, headings[2], nil)
	if len(sc.CleanLines) != 1 || sc.CleanLines[0] != "terms used in the closing chapter" {
		t.Errorf("second Definitions lost its own body: %v", sc.CleanLines)
	}
}

func TestExtractSections_RunningHeaderNotAHeading(t *testing.T) {
	// A title-case line repeated at the top of every page is a running
	// header, not one section per page.
	doc := docFromPages(t, map[int][]string{
		1: {"Master Services Agreement", "1. Introduction", "the opening body"},
		2: {"Master Services Agreement", "body continues on page two"},
		3: {"Master Services Agreement", "2. Scope", "the scope body"},
	})
	headings := NewExtractor().ExtractSections(doc)
	for _, h := range headings {
		if h.Title == "Master Services Agreement" {
			t.Errorf("running header extracted as heading: %+v", h)
		}
	}
	if len(headings) != 2 {
		t.Errorf("expected 2 headings, got %d: %+v", len(headings), headings)
	}
}
