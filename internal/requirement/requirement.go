// Package requirement detects obligation-strength keywords in contract
// or specification text and grades the severity of level transitions
// between two revisions of the same clause.
package requirement

import (
	"regexp"
	"strings"
)

// Level is the binding strength signaled by a clause's strongest keyword.
// The empty level means no obligation keyword was found.
type Level string

const (
	LevelNone        Level = ""
	LevelMandatory   Level = "MANDATORY"
	LevelRecommended Level = "RECOMMENDED"
	LevelOptional    Level = "OPTIONAL"
	LevelProhibited  Level = "PROHIBITED"
)

// Severity grades how consequential a level transition is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Flag records an obligation-level transition between two texts.
type Flag struct {
	LevelA   Level    `json:"level_a"`
	LevelB   Level    `json:"level_b"`
	KeywordA string   `json:"keyword_a,omitempty"`
	KeywordB string   `json:"keyword_b,omitempty"`
	Severity Severity `json:"severity"`
}

type keywordSet struct {
	level Level
	re    *regexp.Regexp
}

// Table is an immutable keyword and severity configuration. Build one
// with DefaultTable; it is safe for concurrent use.
type Table struct {
	// sets in descending binding weight. Negated forms come first so
	// "must not" never registers as a bare "must".
	sets     []keywordSet
	severity map[[2]Level]Severity
}

// DefaultTable returns the standard obligation keyword table.
func DefaultTable() *Table {
	return &Table{
		sets: []keywordSet{
			{LevelProhibited, regexp.MustCompile(`(?i)\b(?:must\s+not|shall\s+not|may\s+not|prohibited|forbidden)\b`)},
			{LevelMandatory, regexp.MustCompile(`(?i)\b(?:must|shall|required|will)\b`)},
			{LevelRecommended, regexp.MustCompile(`(?i)\b(?:should|recommended)\b`)},
			{LevelOptional, regexp.MustCompile(`(?i)\b(?:may|can|optional)\b`)},
		},
		severity: defaultSeverity(),
	}
}

// defaultSeverity is total over every ordered pair of distinct levels,
// LevelNone included. Weakening or dropping a hard obligation, and any
// transition touching a prohibition, is critical.
func defaultSeverity() map[[2]Level]Severity {
	return map[[2]Level]Severity{
		{LevelMandatory, LevelRecommended}: SeverityHigh,
		{LevelMandatory, LevelOptional}:    SeverityCritical,
		{LevelMandatory, LevelProhibited}:  SeverityCritical,
		{LevelMandatory, LevelNone}:        SeverityCritical,

		{LevelRecommended, LevelMandatory}:  SeverityHigh,
		{LevelRecommended, LevelOptional}:   SeverityHigh,
		{LevelRecommended, LevelProhibited}: SeverityCritical,
		{LevelRecommended, LevelNone}:       SeverityMedium,

		{LevelOptional, LevelMandatory}:   SeverityHigh,
		{LevelOptional, LevelRecommended}: SeverityMedium,
		{LevelOptional, LevelProhibited}:  SeverityCritical,
		{LevelOptional, LevelNone}:        SeverityLow,

		{LevelProhibited, LevelMandatory}:   SeverityCritical,
		{LevelProhibited, LevelRecommended}: SeverityCritical,
		{LevelProhibited, LevelOptional}:    SeverityCritical,
		{LevelProhibited, LevelNone}:        SeverityCritical,

		{LevelNone, LevelMandatory}:   SeverityHigh,
		{LevelNone, LevelRecommended}: SeverityMedium,
		{LevelNone, LevelOptional}:    SeverityLow,
		{LevelNone, LevelProhibited}:  SeverityCritical,
	}
}

// Detect returns the highest-weight obligation level present in text and
// the keyword that triggered it. Matching is whole-word.
func (t *Table) Detect(text string) (Level, string) {
	for _, set := range t.sets {
		if kw := set.re.FindString(text); kw != "" {
			return set.level, strings.Join(strings.Fields(strings.ToLower(kw)), " ")
		}
	}
	return LevelNone, ""
}

// Analyze compares the obligation levels of two texts. It returns nil
// when the levels are equal, including when neither side carries a
// keyword; otherwise the flag's severity comes from the transition table.
func (t *Table) Analyze(textA, textB string) *Flag {
	levelA, kwA := t.Detect(textA)
	levelB, kwB := t.Detect(textB)
	if levelA == levelB {
		return nil
	}
	return &Flag{
		LevelA:   levelA,
		LevelB:   levelB,
		KeywordA: kwA,
		KeywordB: kwB,
		Severity: t.severity[[2]Level{levelA, levelB}],
	}
}
