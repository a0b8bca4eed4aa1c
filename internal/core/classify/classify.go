// Package classify flags names that denote structural subdivisions
// (faculties, schools, institutes within a university) or branches and
// representative offices rather than independent institutions.
package classify

import (
	"strings"

	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// Classifier applies the subunit and branch rule tables to a name. A subunit
// is always also a branch: a faculty never counts as a freestanding
// institution downstream.
type Classifier struct {
	rules       rules.Set
	norm        ports.Normalizer
	independent map[string]struct{}
}

// New creates a classifier over the given rule set. The normalizer must be
// the character-level one; stop-phrase stripping would erase the very words
// the classifier looks for.
func New(rs rules.Set, norm ports.Normalizer) *Classifier {
	independent := make(map[string]struct{}, len(rs.IndependentInstitutes))
	for _, name := range rs.IndependentInstitutes {
		independent[norm.Normalize(name)] = struct{}{}
	}
	return &Classifier{
		rules:       rs,
		norm:        norm,
		independent: independent,
	}
}

// Classify decides whether a name denotes a subunit and/or a branch.
func (c *Classifier) Classify(name string) domain.Classification {
	key := c.norm.Normalize(name)
	if key == "" {
		return domain.Classification{}
	}

	out := domain.Classification{
		IsBranch: c.isBranch(key),
	}

	if _, ok := c.independent[key]; ok {
		return out
	}

	if c.isSubunit(key) {
		out.IsSubunit = true
		out.IsBranch = true
	}
	return out
}

func (c *Classifier) isBranch(key string) bool {
	for _, tok := range strings.Fields(key) {
		for _, p := range c.rules.BranchPrefixes {
			if strings.HasPrefix(tok, p) {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) isSubunit(key string) bool {
	if c.startsWithSubunitWord(key) && c.hasBelongingMarker(key) {
		return true
	}

	// "Московский ... институт" without a genitive marker is an independent
	// institution; many freestanding Moscow institutes are named that way.
	if c.rules.IndependentCityPrefix != "" &&
		strings.HasPrefix(key, c.rules.IndependentCityPrefix+" ") &&
		!c.hasGenitiveMarker(key) {
		return false
	}

	if c.rules.InstituteToken != "" &&
		containsToken(key, c.rules.InstituteToken) &&
		c.hasBelongingMarker(key) {
		return true
	}
	return false
}

func (c *Classifier) startsWithSubunitWord(key string) bool {
	for _, p := range c.rules.SubunitPrefixes {
		if key == p || strings.HasPrefix(key, p+" ") {
			return true
		}
	}
	return false
}

// hasBelongingMarker reports whether the name references a parent
// institution, either through a genitive form or a known abbreviation.
func (c *Classifier) hasBelongingMarker(key string) bool {
	for _, tok := range strings.Fields(key) {
		if _, ok := c.rules.BelongingTokens[tok]; ok {
			return true
		}
		if _, ok := c.rules.ParentAbbreviations[tok]; ok {
			return true
		}
	}
	return false
}

func (c *Classifier) hasGenitiveMarker(key string) bool {
	for _, tok := range strings.Fields(key) {
		if _, ok := c.rules.BelongingTokens[tok]; ok {
			return true
		}
	}
	return false
}

func containsToken(key, want string) bool {
	for _, tok := range strings.Fields(key) {
		if tok == want {
			return true
		}
	}
	return false
}
