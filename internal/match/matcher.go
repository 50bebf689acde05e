package match

import (
	"sort"
	"sync"

	"github.com/saiganesh-d/doccompare/internal/structure"
)

// Status bands a match by its similarity score.
type Status string

const (
	StatusUnchanged Status = "unchanged" // score >= 0.95
	StatusSimilar   Status = "similar"   // score >= 0.75
	StatusModified  Status = "modified"  // score >= threshold
	StatusAdded     Status = "added"     // present only in B
	StatusRemoved   Status = "removed"   // present only in A

	unchangedFloor = 0.95
	similarFloor   = 0.75
)

// Match is one row of a matching result. Added entries have AIndex = -1,
// removed entries BIndex = -1. Reordered is independent of Status: a
// section can be unchanged in content yet moved in the document.
type Match struct {
	AIndex    int     `json:"a_index"`
	BIndex    int     `json:"b_index"`
	Score     float64 `json:"score"`
	Status    Status  `json:"status"`
	Reordered bool    `json:"reordered,omitempty"`
}

// Config tunes the matcher. Zero values fall back to defaults.
type Config struct {
	// Threshold is the minimum score for two sections to pair at all.
	Threshold float64
	// ReorderTolerance is how far a matched pair's positions may diverge
	// before the pair counts as reordered.
	ReorderTolerance int
	// Workers bounds concurrent score computations in BuildMatrix.
	Workers int
	// PrefixLen is passed through to ScoreSections.
	PrefixLen int
}

// DefaultConfig returns the standard matcher tuning.
func DefaultConfig() Config {
	return Config{
		Threshold:        0.6,
		ReorderTolerance: 2,
		Workers:          4,
		PrefixLen:        ContentPrefixLen,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.ReorderTolerance <= 0 {
		c.ReorderTolerance = d.ReorderTolerance
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.PrefixLen <= 0 {
		c.PrefixLen = d.PrefixLen
	}
	return c
}

// BuildMatrix computes the full pairwise score matrix for two section
// lists. Rows index A, columns index B. Scoring is embarrassingly
// parallel, so rows are fanned out under a worker bound.
func BuildMatrix(a, b []Section, cfg Config) [][]float64 {
	cfg = cfg.withDefaults()
	matrix := make([][]float64, len(a))
	for i := range matrix {
		matrix[i] = make([]float64, len(b))
	}

	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	for i := range a {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			for j := range b {
				matrix[i][j] = ScoreSections(a[i], b[j], cfg.PrefixLen)
			}
		}(i)
	}
	wg.Wait()
	return matrix
}

type candidate struct {
	i, j  int
	score float64
}

// Assign pairs sections greedily: the highest-scoring eligible pair wins
// first, ties broken by the lowest combined index (then lowest A index)
// so earlier sections pair before later duplicates. Every A section and
// every B section appears in exactly one result; unmatched sections come
// back as removed or added. Results are ordered by position in A; added
// sections follow, in B order.
func Assign(matrix [][]float64, lenA, lenB int, cfg Config) []Match {
	cfg = cfg.withDefaults()

	var cands []candidate
	for i := 0; i < lenA; i++ {
		for j := 0; j < lenB; j++ {
			if matrix[i][j] >= cfg.Threshold {
				cands = append(cands, candidate{i, j, matrix[i][j]})
			}
		}
	}
	sort.Slice(cands, func(x, y int) bool {
		if cands[x].score != cands[y].score {
			return cands[x].score > cands[y].score
		}
		if cands[x].i+cands[x].j != cands[y].i+cands[y].j {
			return cands[x].i+cands[x].j < cands[y].i+cands[y].j
		}
		return cands[x].i < cands[y].i
	})

	usedA := make([]bool, lenA)
	usedB := make([]bool, lenB)
	var matches []Match
	for _, c := range cands {
		if usedA[c.i] || usedB[c.j] {
			continue
		}
		usedA[c.i] = true
		usedB[c.j] = true
		matches = append(matches, Match{
			AIndex: c.i,
			BIndex: c.j,
			Score:  c.score,
			Status: band(c.score),
		})
	}

	markReordered(matches, cfg.ReorderTolerance)

	for i := 0; i < lenA; i++ {
		if !usedA[i] {
			matches = append(matches, Match{AIndex: i, BIndex: -1, Status: StatusRemoved})
		}
	}
	for j := 0; j < lenB; j++ {
		if !usedB[j] {
			matches = append(matches, Match{AIndex: -1, BIndex: j, Status: StatusAdded})
		}
	}

	sort.Slice(matches, func(x, y int) bool {
		kx, ky := sortKey(matches[x]), sortKey(matches[y])
		if kx != ky {
			return kx < ky
		}
		return matches[x].BIndex < matches[y].BIndex
	})
	return matches
}

func band(score float64) Status {
	switch {
	case score >= unchangedFloor:
		return StatusUnchanged
	case score >= similarFloor:
		return StatusSimilar
	default:
		return StatusModified
	}
}

// markReordered flags matched pairs whose positions in the two documents
// diverge by more than the tolerance. Insertions and deletions shift all
// later indices, so divergence is measured between ranks among the
// matched pairs, not raw indices.
func markReordered(matches []Match, tolerance int) {
	if len(matches) == 0 {
		return
	}
	byA := make([]int, len(matches))
	for i := range byA {
		byA[i] = i
	}
	sort.Slice(byA, func(x, y int) bool {
		return matches[byA[x]].AIndex < matches[byA[y]].AIndex
	})
	byB := make([]int, len(matches))
	copy(byB, byA)
	sort.Slice(byB, func(x, y int) bool {
		return matches[byB[x]].BIndex < matches[byB[y]].BIndex
	})
	rankB := make(map[int]int, len(byB))
	for rank, idx := range byB {
		rankB[idx] = rank
	}
	for rankA, idx := range byA {
		if delta := rankA - rankB[idx]; delta > tolerance || delta < -tolerance {
			matches[idx].Reordered = true
		}
	}
}

func sortKey(m Match) int {
	if m.AIndex >= 0 {
		return m.AIndex
	}
	return 1 << 30
}

// MatchSections is the one-call form: build the matrix, then assign.
func MatchSections(a, b []Section, cfg Config) []Match {
	matrix := BuildMatrix(a, b, cfg)
	return Assign(matrix, len(a), len(b), cfg)
}

// MatchParagraphs matches two paragraph lists with token-level scoring.
// Paragraph lists are short enough that the matrix fills inline.
func MatchParagraphs(a, b []structure.Paragraph, cfg Config) []Match {
	cfg = cfg.withDefaults()
	matrix := make([][]float64, len(a))
	for i := range a {
		matrix[i] = make([]float64, len(b))
		for j := range b {
			matrix[i][j] = ScoreParagraphs(a[i], b[j])
		}
	}
	return Assign(matrix, len(a), len(b), cfg)
}
