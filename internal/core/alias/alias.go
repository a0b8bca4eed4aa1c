// Package alias expands one canonical registry name into a bounded set of
// plausible alternate surface forms a third-party source might use. Aliases
// widen exact-match recall for abbreviation-style references; the filter at
// the end keeps over-generic forms from matching half the registry.
package alias

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

var (
	imeniRe  = regexp.MustCompile(`(?i)\s+им(?:ени|\.)\s+.+$`)
	rfFullRe = regexp.MustCompile(`(?i)\s+российской\s+федерации(\s|$)`)
	rfAbbrRe = regexp.MustCompile(`(?i)\s+рф(\s|$)`)
	spaceRe  = regexp.MustCompile(`\s+`)

	quotedRe = []*regexp.Regexp{
		regexp.MustCompile(`«([^«»]+)»`),
		regexp.MustCompile(`"([^"]+)"`),
		regexp.MustCompile(`“([^“”]+)”`),
	}
	parenRe = regexp.MustCompile(`\(([^()]+)\)`)

	glyphReplacer = strings.NewReplacer(`«`, "", `»`, "", `"`, "", `“`, "", `”`, "", `(`, "", `)`, "")
)

// Generator derives aliases from canonical names. Generation is
// deterministic: the output is deduplicated case-insensitively and sorted by
// (length, lexical order).
type Generator struct {
	rules    rules.Set
	keys     ports.Normalizer
	prefixes []*regexp.Regexp
}

// NewGenerator creates a generator over the given rule set. The keys
// normalizer must be the registry normalizer so alias keys stay comparable
// with registry keys.
func NewGenerator(rs rules.Set, keys ports.Normalizer) *Generator {
	prefixes := make([]*regexp.Regexp, 0, len(rs.AliasPrefixPatterns))
	for _, p := range rs.AliasPrefixPatterns {
		prefixes = append(prefixes, regexp.MustCompile(`(?i)`+p))
	}
	return &Generator{
		rules:    rs,
		keys:     keys,
		prefixes: prefixes,
	}
}

// Generate produces the filtered alias set for one canonical name.
func (g *Generator) Generate(name string) []domain.Alias {
	name = collapse(name)
	if name == "" {
		return nil
	}

	candidates := []string{name}

	dePrefixed := g.stripLegalPrefix(name)
	if dePrefixed != name {
		candidates = append(candidates, dePrefixed)
	}

	core := dePrefixed
	imeniClause := ""
	if loc := imeniRe.FindStringIndex(dePrefixed); loc != nil {
		imeniClause = collapse(dePrefixed[loc[0]:loc[1]])
		core = collapse(dePrefixed[:loc[0]])
		if core != "" {
			candidates = append(candidates, core)
		}
	}

	if flat := collapse(glyphReplacer.Replace(name)); flat != name {
		candidates = append(candidates, flat)
	}

	coreFlat := collapse(glyphReplacer.Replace(core))
	coreKey := g.keys.Normalize(coreFlat)

	for _, sub := range extractSubstrings(name) {
		candidates = append(candidates, sub)
		subKey := g.keys.Normalize(sub)
		if coreKey != "" && subKey != "" && !strings.Contains(coreKey, subKey) {
			candidates = append(candidates, coreFlat+" "+sub)
		}
	}

	// Abbreviation-style references: initial-letter acronyms of the core
	// phrase and of each quoted part, with the "имени ..." clause reattached
	// when one was present.
	acronymBases := append([]string{coreFlat}, extractSubstrings(name)...)
	for _, base := range acronymBases {
		acr := acronym(base)
		if acr == "" {
			continue
		}
		candidates = append(candidates, acr)
		if imeniClause != "" {
			candidates = append(candidates, acr+" "+imeniClause)
		}
	}

	// Every candidate also appears without the "Russian Federation" tail.
	for _, c := range append([]string(nil), candidates...) {
		stripped := collapse(rfAbbrRe.ReplaceAllString(rfFullRe.ReplaceAllString(c, "$1"), "$1"))
		if stripped != c {
			candidates = append(candidates, stripped)
		}
	}

	return g.filter(candidates)
}

// stripLegalPrefix removes the first matching legal-entity-type prefix.
func (g *Generator) stripLegalPrefix(name string) string {
	for _, re := range g.prefixes {
		if loc := re.FindStringIndex(name); loc != nil && loc[0] == 0 && loc[1] > 0 {
			return collapse(name[loc[1]:])
		}
	}
	return name
}

// filter applies the precision safeguards and orders the surviving aliases.
func (g *Generator) filter(candidates []string) []domain.Alias {
	seen := make(map[string]struct{}, len(candidates))
	var out []domain.Alias
	for _, c := range candidates {
		c = collapse(c)
		if utf8.RuneCountInString(c) < g.rules.MinAliasLength {
			continue
		}
		lower := strings.ToLower(c)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		key := g.keys.Normalize(c)
		if key == "" {
			continue
		}
		if _, generic := g.rules.GenericTypeWords[key]; generic {
			continue
		}
		if _, black := g.rules.AliasBlacklist[key]; black {
			continue
		}
		tokens := strings.Fields(key)
		if len(tokens) <= 2 {
			if _, generic := g.rules.GenericTypeWords[tokens[len(tokens)-1]]; generic {
				continue
			}
		}

		out = append(out, domain.Alias{Name: c, Key: key})
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Name) != len(out[j].Name) {
			return len(out[i].Name) < len(out[j].Name)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// extractSubstrings returns all quoted and parenthesized substrings, in
// order of appearance.
func extractSubstrings(name string) []string {
	var out []string
	for _, re := range quotedRe {
		for _, m := range re.FindAllStringSubmatch(name, -1) {
			if s := collapse(m[1]); s != "" {
				out = append(out, s)
			}
		}
	}
	for _, m := range parenRe.FindAllStringSubmatch(name, -1) {
		if s := collapse(m[1]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// acronym builds the uppercase initial-letter abbreviation of a multi-word
// phrase ("Московский государственный университет" -> "МГУ").
func acronym(phrase string) string {
	words := strings.Fields(phrase)
	if len(words) < 2 {
		return ""
	}
	var sb strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsLetter(r) {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	if utf8.RuneCountInString(sb.String()) < 2 {
		return ""
	}
	return sb.String()
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
