// Package compare wires section extraction, structural matching, text
// diffing, and requirement analysis into one document comparison
// pipeline producing a ComparisonReport.
package compare

import (
	"log/slog"
	"strings"
	"time"

	"github.com/saiganesh-d/doccompare/internal/match"
	"github.com/saiganesh-d/doccompare/internal/pagedoc"
	"github.com/saiganesh-d/doccompare/internal/requirement"
	"github.com/saiganesh-d/doccompare/internal/structure"
	"github.com/saiganesh-d/doccompare/internal/textdiff"
)

// Config tunes one Comparator. Zero values fall back to defaults.
type Config struct {
	Match        match.Config
	Collate      structure.CollateConfig
	MaxRefineLen int
}

// DefaultConfig returns the standard comparison tuning.
func DefaultConfig() Config {
	return Config{
		Match:        match.DefaultConfig(),
		Collate:      structure.DefaultCollateConfig(),
		MaxRefineLen: textdiff.MaxRefineLen,
	}
}

// ParagraphMatch is one paragraph-level row of a section comparison.
type ParagraphMatch struct {
	AIndex      int               `json:"a_index"`
	BIndex      int               `json:"b_index"`
	Score       float64           `json:"score"`
	Status      match.Status      `json:"status"`
	Reordered   bool              `json:"reordered,omitempty"`
	AText       string            `json:"a_text,omitempty"`
	BText       string            `json:"b_text,omitempty"`
	Diff        []textdiff.Span   `json:"diff,omitempty"`
	Requirement *requirement.Flag `json:"requirement,omitempty"`
}

// SectionMatch is one section-level row of a ComparisonReport.
type SectionMatch struct {
	AIndex      int               `json:"a_index"`
	BIndex      int               `json:"b_index"`
	Score       float64           `json:"score"`
	Status      match.Status      `json:"status"`
	Reordered   bool              `json:"reordered,omitempty"`
	ATitle      string            `json:"a_title,omitempty"`
	BTitle      string            `json:"b_title,omitempty"`
	ALevel      int               `json:"a_level,omitempty"`
	BLevel      int               `json:"b_level,omitempty"`
	Summary     string            `json:"summary"`
	Paragraphs  []ParagraphMatch  `json:"paragraphs,omitempty"`
	Requirement *requirement.Flag `json:"requirement,omitempty"`
}

// Summary aggregates a report's section statuses.
type Summary struct {
	Sections  int `json:"sections"`
	Unchanged int `json:"unchanged"`
	Similar   int `json:"similar"`
	Modified  int `json:"modified"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Reordered int `json:"reordered"`
	Critical  int `json:"critical"`
}

// Report is the complete outcome of comparing two documents.
type Report struct {
	TitleA      string                   `json:"title_a,omitempty"`
	TitleB      string                   `json:"title_b,omitempty"`
	OutlineA    []*structure.OutlineNode `json:"outline_a,omitempty"`
	OutlineB    []*structure.OutlineNode `json:"outline_b,omitempty"`
	Sections    []SectionMatch           `json:"sections"`
	Summary     Summary                  `json:"summary"`
	GeneratedAt time.Time                `json:"generated_at"`
	DurationMs  int64                    `json:"duration_ms"`
}

// Comparator runs document comparisons. One instance serves concurrent
// comparisons: it holds only immutable configuration and aggregate stats.
type Comparator struct {
	cfg       Config
	log       *slog.Logger
	extractor *structure.Extractor
	table     *requirement.Table
	stats     *EngineStats
}

// New builds a Comparator with the given tuning.
func New(cfg Config, log *slog.Logger) *Comparator {
	if cfg.MaxRefineLen <= 0 {
		cfg.MaxRefineLen = textdiff.MaxRefineLen
	}
	if cfg.Collate.Window <= 0 {
		cfg.Collate = structure.DefaultCollateConfig()
	}
	return &Comparator{
		cfg:       cfg,
		log:       log,
		extractor: &structure.Extractor{Collate: cfg.Collate},
		table:     requirement.DefaultTable(),
		stats:     NewEngineStats(time.Hour),
	}
}

// Stats exposes the rolling comparison latency aggregate.
func (c *Comparator) Stats() *EngineStats { return c.stats }

// CompareSections is the map-shaped entry point for callers holding raw
// per-page extraction output. Malformed page maps surface as
// pagedoc.ErrMalformedPages.
func (c *Comparator) CompareSections(pagesA, pagesB map[int][]string) (*Report, error) {
	docA, err := pagedoc.FromMap(pagesA)
	if err != nil {
		return nil, err
	}
	docB, err := pagedoc.FromMap(pagesB)
	if err != nil {
		return nil, err
	}
	return c.CompareDocuments(docA, docB)
}

// CompareDocuments compares two parsed documents section by section,
// then drills into each matched pair at paragraph level.
func (c *Comparator) CompareDocuments(docA, docB *pagedoc.Document) (*Report, error) {
	start := time.Now()

	secsA := c.materialize(docA)
	secsB := c.materialize(docB)

	matches := match.MatchSections(secsA, secsB, c.cfg.Match)

	report := &Report{
		TitleA:      docA.Title,
		TitleB:      docB.Title,
		OutlineA:    structure.BuildOutline(headingsOf(secsA)),
		OutlineB:    structure.BuildOutline(headingsOf(secsB)),
		GeneratedAt: start.UTC(),
	}
	for _, m := range matches {
		sm := SectionMatch{
			AIndex:    m.AIndex,
			BIndex:    m.BIndex,
			Score:     m.Score,
			Status:    m.Status,
			Reordered: m.Reordered,
		}
		switch m.Status {
		case match.StatusAdded:
			sec := secsB[m.BIndex]
			sm.BTitle, sm.BLevel = sec.Heading.Title, sec.Heading.Level
			sm.Summary = "Section added"
			sm.Requirement = c.table.Analyze("", sec.Content)
		case match.StatusRemoved:
			sec := secsA[m.AIndex]
			sm.ATitle, sm.ALevel = sec.Heading.Title, sec.Heading.Level
			sm.Summary = "Section removed"
			sm.Requirement = c.table.Analyze(sec.Content, "")
		default:
			a, b := secsA[m.AIndex], secsB[m.BIndex]
			sm.ATitle, sm.ALevel = a.Heading.Title, a.Heading.Level
			sm.BTitle, sm.BLevel = b.Heading.Title, b.Heading.Level
			sm.Summary = changeSummary(m.Score, a.Content, b.Content)
			if m.Score < 1 {
				sm.Paragraphs = c.CompareParagraphs(a.Content, b.Content)
			}
		}
		report.Sections = append(report.Sections, sm)
	}

	report.Summary = summarize(report.Sections)
	report.DurationMs = time.Since(start).Milliseconds()
	c.stats.Record(report.DurationMs)

	if c.log != nil {
		c.log.Info("comparison complete",
			"sections_a", len(secsA),
			"sections_b", len(secsB),
			"unchanged", report.Summary.Unchanged,
			"modified", report.Summary.Modified,
			"added", report.Summary.Added,
			"removed", report.Summary.Removed,
			"critical", report.Summary.Critical,
			"duration_ms", report.DurationMs)
	}
	return report, nil
}

// CompareParagraphs matches paragraphs of two section bodies, attaching
// word-level diffs and requirement flags to each matched pair.
func (c *Comparator) CompareParagraphs(contentA, contentB string) []ParagraphMatch {
	parasA := structure.SplitParagraphs(strings.Split(contentA, "\n"))
	parasB := structure.SplitParagraphs(strings.Split(contentB, "\n"))

	var out []ParagraphMatch
	for _, m := range match.MatchParagraphs(parasA, parasB, c.cfg.Match) {
		pm := ParagraphMatch{
			AIndex:    m.AIndex,
			BIndex:    m.BIndex,
			Score:     m.Score,
			Status:    m.Status,
			Reordered: m.Reordered,
		}
		switch m.Status {
		case match.StatusAdded:
			pm.BText = parasB[m.BIndex].Text
			pm.Requirement = c.table.Analyze("", pm.BText)
		case match.StatusRemoved:
			pm.AText = parasA[m.AIndex].Text
			pm.Requirement = c.table.Analyze(pm.AText, "")
		default:
			pm.AText = parasA[m.AIndex].Text
			pm.BText = parasB[m.BIndex].Text
			if m.Score < 1 {
				pm.Diff = textdiff.Diff(pm.AText, pm.BText, c.cfg.MaxRefineLen)
			}
			pm.Requirement = c.table.Analyze(pm.AText, pm.BText)
		}
		out = append(out, pm)
	}
	return out
}

// materialize extracts headings and section bodies in one pass so the
// matcher scores against stable, already-collated content.
func (c *Comparator) materialize(doc *pagedoc.Document) []match.Section {
	headings := c.extractor.ExtractSections(doc)
	sections := make([]match.Section, len(headings))
	for i, h := range headings {
		var next *structure.HeadingInfo
		if i+1 < len(headings) {
			next = &headings[i+1]
		}
		sc := c.extractor.ExtractContent(doc, h, next)
		sections[i] = match.Section{Heading: h, Content: sc.Text(), Index: i}
	}
	return sections
}

func headingsOf(secs []match.Section) []structure.HeadingInfo {
	out := make([]structure.HeadingInfo, len(secs))
	for i, s := range secs {
		out[i] = s.Heading
	}
	return out
}

// changeSummary is a one-line human description of how much a matched
// section moved.
func changeSummary(score float64, contentA, contentB string) string {
	lenA := len(strings.Fields(contentA))
	lenB := len(strings.Fields(contentB))
	switch {
	case score >= 0.95:
		return "No meaningful changes"
	case score >= 0.8:
		return "Minor text updates"
	case score >= 0.6:
		return "Moderate revisions"
	case lenB > lenA*2:
		return "Significantly expanded"
	case lenA > lenB*2:
		return "Significantly condensed"
	default:
		return "Major rewrite"
	}
}

func summarize(sections []SectionMatch) Summary {
	s := Summary{Sections: len(sections)}
	for _, sm := range sections {
		switch sm.Status {
		case match.StatusUnchanged:
			s.Unchanged++
		case match.StatusSimilar:
			s.Similar++
		case match.StatusModified:
			s.Modified++
		case match.StatusAdded:
			s.Added++
		case match.StatusRemoved:
			s.Removed++
		}
		if sm.Reordered {
			s.Reordered++
		}
		if sm.Requirement != nil && sm.Requirement.Severity == requirement.SeverityCritical {
			s.Critical++
		}
		for _, pm := range sm.Paragraphs {
			if pm.Requirement != nil && pm.Requirement.Severity == requirement.SeverityCritical {
				s.Critical++
			}
		}
	}
	return s
}
