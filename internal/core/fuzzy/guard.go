package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
)

// GuardConfig holds the thresholds of the significant-token guard.
type GuardConfig struct {
	// SingleTokenScore is the score at or above which a single shared
	// significant token is enough; below it two are required.
	SingleTokenScore float64
}

// DefaultGuardConfig returns the default guard thresholds.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		SingleTokenScore: 97,
	}
}

// Verdict is the outcome of one guard evaluation, including the token sets
// that produced it so rejected near-misses stay explainable.
type Verdict struct {
	Pass            bool
	QueryTokens     []string
	CandidateTokens []string
	SharedTokens    []string
}

// Guard rejects fuzzy matches whose similarity rests only on generic
// administrative vocabulary. Token-set similarity alone is fooled by names
// that differ only in words like "state" or "university"; the guard requires
// shared distinctive vocabulary, and anchor tokens keep an abbreviation owned
// by one institution from being attributed to another.
type Guard struct {
	config GuardConfig
	rules  rules.Set
}

// NewGuard creates a guard over the given rule set.
func NewGuard(config GuardConfig, rs rules.Set) *Guard {
	return &Guard{config: config, rules: rs}
}

// SignificantTokens returns the tokens of a key that survive the generic-word
// stoplist and the minimum-length cutoff, sorted.
func (g *Guard) SignificantTokens(key string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(key) {
		if utf8.RuneCountInString(tok) < g.rules.MinSignificantTokenLength {
			continue
		}
		if _, generic := g.rules.GenericTokens[tok]; generic {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// Evaluate decides whether a fuzzy match between two keys at the given score
// may be accepted.
func (g *Guard) Evaluate(queryKey, candidateKey string, score float64) Verdict {
	qs := g.SignificantTokens(queryKey)
	cs := g.SignificantTokens(candidateKey)

	qset := make(map[string]struct{}, len(qs))
	for _, t := range qs {
		qset[t] = struct{}{}
	}

	var shared []string
	for _, t := range cs {
		if _, ok := qset[t]; ok {
			shared = append(shared, t)
		}
	}

	v := Verdict{
		QueryTokens:     qs,
		CandidateTokens: cs,
		SharedTokens:    shared,
	}

	// An anchor carried by the candidate must be carried by the query too.
	for _, t := range cs {
		if _, anchor := g.rules.AnchorTokens[t]; !anchor {
			continue
		}
		if _, ok := qset[t]; !ok {
			return v
		}
	}

	required := 2
	if score >= g.config.SingleTokenScore {
		required = 1
	}
	v.Pass = len(shared) >= required
	return v
}
