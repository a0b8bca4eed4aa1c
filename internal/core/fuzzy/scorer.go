// Package fuzzy implements the token-set similarity scorer and the
// significant-token guard used to accept or reject fuzzy matches between
// normalized organization-name keys.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/baditaflorin/go_entity_resolution/internal/pool"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// Scorer computes a token-set similarity in [0,100]. The metric is symmetric,
// insensitive to word order, and scores 100 whenever one key's token set is a
// subset of the other's, regardless of length difference.
type Scorer struct {
	rows *pool.IntRowPool
}

// NewScorer creates a new token-set scorer.
func NewScorer() *Scorer {
	return &Scorer{
		rows: pool.NewIntRowPool(128),
	}
}

// Score computes the token-set similarity between two normalized keys.
func (s *Scorer) Score(a, b string) float64 {
	ta := uniqueSorted(strings.Fields(a))
	tb := uniqueSorted(strings.Fields(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inter, diffA, diffB := partition(ta, tb)
	if len(inter) > 0 && (len(diffA) == 0 || len(diffB) == 0) {
		// One token set contains the other.
		return 100
	}

	s1 := strings.Join(inter, " ")
	s2 := joinWithBase(s1, diffA)
	s3 := joinWithBase(s1, diffB)

	best := s.ratio(s1, s2)
	if r := s.ratio(s1, s3); r > best {
		best = r
	}
	if r := s.ratio(s2, s3); r > best {
		best = r
	}
	return best
}

// BestMatch scans the candidates in order and returns the highest-scoring
// one. Ties keep the earliest candidate so results are deterministic for a
// fixed candidate order. An empty candidate list yields ("", 0).
func (s *Scorer) BestMatch(query string, candidates []string) (string, float64) {
	if query == "" || len(candidates) == 0 {
		return "", 0
	}
	bestKey := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := s.Score(query, c)
		if score > bestScore {
			bestKey = c
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", 0
	}
	return bestKey, bestScore
}

// ratio is the normalized indel similarity between two strings, in [0,100].
func (s *Scorer) ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	lcs := s.lcsLength(ra, rb)
	return 100 * float64(2*lcs) / float64(total)
}

// lcsLength computes the longest-common-subsequence length with a two-row DP.
func (s *Scorer) lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}

	prevPtr := s.rows.Get()
	currPtr := s.rows.Get()
	defer s.rows.Put(prevPtr)
	defer s.rows.Put(currPtr)

	prev := grow(*prevPtr, len(b)+1)
	curr := grow(*currPtr, len(b)+1)
	for i := range prev {
		prev[i] = 0
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = 0
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	length := prev[len(b)]
	*prevPtr = prev
	*currPtr = curr
	return length
}

func grow(row []int, n int) []int {
	if cap(row) < n {
		return make([]int, n)
	}
	return row[:n]
}

func uniqueSorted(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// partition splits two sorted unique token slices into intersection and the
// two set differences, all sorted.
func partition(a, b []string) (inter, diffA, diffB []string) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			inter = append(inter, a[i])
			i++
			j++
		case a[i] < b[j]:
			diffA = append(diffA, a[i])
			i++
		default:
			diffB = append(diffB, b[j])
			j++
		}
	}
	diffA = append(diffA, a[i:]...)
	diffB = append(diffB, b[j:]...)
	return inter, diffA, diffB
}

func joinWithBase(base string, diff []string) string {
	if len(diff) == 0 {
		return base
	}
	joined := strings.Join(diff, " ")
	if base == "" {
		return joined
	}
	return base + " " + joined
}

// Disabled is the scorer used when fuzzy matching is unavailable: every score
// is 0, so fuzzy matching degrades to "no match" while exact matching keeps
// working.
type Disabled struct{}

// Score always returns 0.
func (Disabled) Score(a, b string) float64 { return 0 }

// BestMatch always returns a null result.
func (Disabled) BestMatch(query string, candidates []string) (string, float64) { return "", 0 }

var _ ports.Scorer = (*Scorer)(nil)
var _ ports.Scorer = Disabled{}
