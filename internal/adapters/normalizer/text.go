package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_entity_resolution/internal/pool"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// TextNormalizer implements the character-level normalization stage: NBSP and
// whitespace unification, dash unification, punctuation removal, case and
// ё/е folding, whitespace collapsing. The output alphabet is limited to
// lowercase latin/cyrillic letters, digits, single spaces and dashes, which
// makes the function idempotent.
type TextNormalizer struct {
	builders *pool.StringBuilderPool
}

// NewTextNormalizer creates a new character-level normalizer.
func NewTextNormalizer() ports.Normalizer {
	return &TextNormalizer{
		builders: pool.NewStringBuilderPool(),
	}
}

// Normalize canonicalizes a raw string into a comparison-safe form. It is a
// total function: empty or garbage input yields an empty string, never an error.
func (n *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	sb := n.builders.Get()
	defer n.builders.Put(sb)

	lastWasSpace := true // also trims leading spaces
	for _, r := range text {
		switch r {
		case ' ':
			r = ' '
		case '–', '—', '−':
			r = '-'
		}
		if unicode.IsSpace(r) {
			r = ' '
		}
		r = unicode.ToLower(r)
		if r == 'ё' {
			r = 'е'
		}

		switch {
		case r == '-', r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'а' && r <= 'я':
			sb.WriteRune(r)
			lastWasSpace = false
		default:
			// Spaces, punctuation and any character outside the key alphabet
			// collapse into a single separating space.
			if !lastWasSpace {
				sb.WriteRune(' ')
				lastWasSpace = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), " ")
}
