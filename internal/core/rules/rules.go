// Package rules holds the heuristic rule tables used by the normalizers,
// the alias generator, the fuzzy guard and the classifier. Every table is
// plain data so individual rules can be unit-tested and the whole set can be
// swapped for a different naming domain without touching control flow.
package rules

// Set is one complete, self-consistent collection of rule tables. Components
// receive a Set explicitly; there is no package-level mutable state.
type Set struct {
	// StopWords are single tokens removed when deriving a comparison key.
	StopWords map[string]struct{}
	// StopPrefixes remove any token that starts with one of them. They cover
	// inflected legal vocabulary (образовательное/образовательная/...).
	StopPrefixes []string
	// StopPhrases are multi-token sequences removed as a whole.
	StopPhrases [][]string
	// MinistryPrefix and MinistryTail delimit the "министерства ...
	// российской федерации" boilerplate span removed from registry keys.
	MinistryPrefix string
	MinistryTail   []string

	// GenericTypeWords are bare institution-type words. An alias whose key
	// collapses to one of these is rejected.
	GenericTypeWords map[string]struct{}
	// AliasBlacklist lists maximally generic name combinations that would
	// match half the registry if kept as aliases.
	AliasBlacklist map[string]struct{}
	// AliasPrefixPatterns are regular expressions (applied case-insensitively
	// to the raw name) matching legal-entity-type prefixes.
	AliasPrefixPatterns []string
	// MinAliasLength is the minimum rune length of an alias surface form.
	MinAliasLength int

	// GenericTokens never count as significant for the fuzzy guard.
	GenericTokens map[string]struct{}
	// AnchorTokens are abbreviations unique to one specific institution. A
	// candidate carrying an anchor only matches a query carrying the same one.
	AnchorTokens map[string]struct{}
	// MinSignificantTokenLength excludes short tokens from guard comparisons.
	MinSignificantTokenLength int

	// SubunitPrefixes mark names of structural subdivisions when the name
	// starts with one of them.
	SubunitPrefixes []string
	// InstituteToken is the generic word whose presence, combined with a
	// belonging marker, also indicates a subdivision.
	InstituteToken string
	// BelongingTokens are genitive forms indicating "... of the university".
	BelongingTokens map[string]struct{}
	// ParentAbbreviations are well-known parent-institution abbreviations
	// that serve as belonging markers too.
	ParentAbbreviations map[string]struct{}
	// IndependentInstitutes are freestanding institutions whose names happen
	// to start with a subunit word. Stored raw; classifiers normalize them.
	IndependentInstitutes []string
	// IndependentCityPrefix guards the "московский ... институт" pattern:
	// such names are independent institutions unless a genitive marker says
	// otherwise.
	IndependentCityPrefix string
	// BranchPrefixes mark branches and representative offices; matched
	// against token prefixes so inflected forms are covered.
	BranchPrefixes []string
}

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Default returns the rule set tuned for Russian higher-education naming.
func Default() Set {
	return Set{
		StopWords: wordSet(
			"федеральное", "государственное", "бюджетное", "автономное",
			"казенное", "частное",
			"во", "фгбоу", "фгаоу", "аоу", "оу", "ано",
		),
		StopPrefixes: []string{
			"некоммерческ", "образовательн", "учреждени", "организаци",
		},
		StopPhrases: [][]string{
			{"высшего", "образования"},
			{"профессионального", "образования"},
		},
		MinistryPrefix: "министерств",
		MinistryTail:   []string{"российск", "федераци"},

		GenericTypeWords: wordSet(
			"университет", "институт", "академия", "школа",
			"колледж", "консерватория",
		),
		AliasBlacklist: wordSet(
			"московский университет", "российский университет",
			"московский институт", "российский институт",
			"государственный университет", "государственный институт",
		),
		AliasPrefixPatterns: []string{
			`^\s*(?:федеральное\s+)?государственное\s+(?:автономное\s+|бюджетное\s+|казенное\s+)?образовательное\s+учреждение(?:\s+высшего\s+образования)?\s*`,
			`^\s*автономная\s+некоммерческая\s+(?:образовательная\s+)?организация(?:\s+высшего\s+образования)?\s*`,
			`^\s*частное\s+(?:образовательное\s+)?учреждение(?:\s+высшего\s+образования)?\s*`,
			`^\s*фг[аб]оу\s+во\s*`,
		},
		MinAliasLength: 8,

		GenericTokens: wordSet(
			"московский", "московская", "московского", "москва", "москвы",
			"государственный", "государственная", "государственного",
			"федеральный", "федеральная", "федерального",
			"российский", "российская", "российской", "россии",
			"национальный", "национального", "исследовательский",
			"университет", "университета", "институт", "института",
			"академия", "академии", "школа", "высшая", "высшего",
			"образования", "имени", "область", "области", "областной",
			"центр", "колледж", "города",
		),
		AnchorTokens: wordSet(
			"мгу", "вшэ", "мфти", "мифи", "рудн", "ранхигс", "мэи",
			"мгту", "маи", "мгимо", "рггу", "мирэа", "миит", "мпгу",
			"мгюа", "станкин", "росбиотех", "рхту", "мгсу",
		),
		MinSignificantTokenLength: 3,

		SubunitPrefixes: []string{
			"факультет", "школа", "юридический институт", "институт",
		},
		InstituteToken: "институт",
		BelongingTokens: wordSet(
			"университета", "академии",
		),
		ParentAbbreviations: wordSet(
			"мгу", "вшэ", "мэи", "рудн", "ранхигс", "мифи", "мфти",
		),
		IndependentInstitutes: []string{
			"Институт международных экономических связей",
			"Международный институт экономики и права",
		},
		IndependentCityPrefix: "московский",
		BranchPrefixes: []string{
			"филиал", "представительств", "отделени",
		},
	}
}
