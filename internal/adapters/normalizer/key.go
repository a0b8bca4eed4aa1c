package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// KeyNormalizer derives a matching key: it applies the character-level stage
// and then strips the legal/organizational boilerplate listed in the rule
// set. Registry keys additionally drop the ministry ownership tail.
type KeyNormalizer struct {
	base          ports.Normalizer
	rules         rules.Set
	stripMinistry bool
}

// NewRegistryNormalizer creates the normalizer used for canonical registry
// names and alias candidates.
func NewRegistryNormalizer(rs rules.Set) ports.Normalizer {
	return &KeyNormalizer{
		base:          NewTextNormalizer(),
		rules:         rs,
		stripMinistry: true,
	}
}

// NewSourceNormalizer creates the lighter normalizer used for scraped source
// names. It shares the stop-phrase stripper with the registry normalizer so
// both sides produce comparable keys.
func NewSourceNormalizer(rs rules.Set) ports.Normalizer {
	return &KeyNormalizer{
		base:          NewTextNormalizer(),
		rules:         rs,
		stripMinistry: false,
	}
}

// Normalize derives the comparison key for a name.
func (n *KeyNormalizer) Normalize(text string) string {
	t := n.base.Normalize(text)
	if t == "" {
		return ""
	}

	tokens := strings.Fields(t)
	tokens = n.dropStopPhrases(tokens)

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := n.rules.StopWords[tok]; stop {
			continue
		}
		if hasAnyPrefix(tok, n.rules.StopPrefixes) {
			continue
		}
		kept = append(kept, tok)
	}

	if n.stripMinistry {
		kept = n.dropMinistrySpan(kept)
	}

	return strings.Join(kept, " ")
}

// dropStopPhrases removes every occurrence of the configured multi-token
// phrases, scanning left to right.
func (n *KeyNormalizer) dropStopPhrases(tokens []string) []string {
	if len(n.rules.StopPhrases) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if l := n.phraseAt(tokens, i); l > 0 {
			i += l
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func (n *KeyNormalizer) phraseAt(tokens []string, i int) int {
	for _, phrase := range n.rules.StopPhrases {
		if i+len(phrase) > len(tokens) {
			continue
		}
		match := true
		for j, w := range phrase {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return len(phrase)
		}
	}
	return 0
}

// dropMinistrySpan removes the first "министерства ... российской федерации"
// span. The span must be complete; a ministry word without the closing tail
// is left untouched.
func (n *KeyNormalizer) dropMinistrySpan(tokens []string) []string {
	if n.rules.MinistryPrefix == "" || len(n.rules.MinistryTail) != 2 {
		return tokens
	}
	start := -1
	for i, tok := range tokens {
		if strings.HasPrefix(tok, n.rules.MinistryPrefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return tokens
	}
	for j := start + 1; j+1 < len(tokens); j++ {
		if strings.HasPrefix(tokens[j], n.rules.MinistryTail[0]) &&
			strings.HasPrefix(tokens[j+1], n.rules.MinistryTail[1]) {
			out := make([]string, 0, len(tokens))
			out = append(out, tokens[:start]...)
			out = append(out, tokens[j+2:]...)
			return out
		}
	}
	return tokens
}

func hasAnyPrefix(tok string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}

// Kind selects which normalization strategy a factory produces.
type Kind int

const (
	// TextKind is the character-level stage only.
	TextKind Kind = iota
	// RegistryKind derives registry matching keys.
	RegistryKind
	// SourceKind derives source-name matching keys.
	SourceKind
)

// Factory creates normalizers of the requested kind.
type Factory struct{}

// NewFactory creates a new normalizer factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds a normalizer of the specified kind over the given rule set.
func (f *Factory) Create(kind Kind, rs rules.Set) ports.Normalizer {
	switch kind {
	case RegistryKind:
		return NewRegistryNormalizer(rs)
	case SourceKind:
		return NewSourceNormalizer(rs)
	default:
		return NewTextNormalizer()
	}
}
