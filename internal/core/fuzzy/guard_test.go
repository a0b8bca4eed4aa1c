package fuzzy

import (
	"reflect"
	"testing"

	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
)

func TestSignificantTokens(t *testing.T) {
	g := NewGuard(DefaultGuardConfig(), rules.Default())

	tests := []struct {
		name     string
		key      string
		expected []string
	}{
		{
			name:     "Generic tokens dropped",
			key:      "московский государственный университет технологий и управления",
			expected: []string{"технологий", "управления"},
		},
		{
			name:     "Short tokens dropped",
			key:      "мгу им м в ломоносова",
			expected: []string{"ломоносова", "мгу"},
		},
		{
			name:     "Duplicates collapse and output is sorted",
			key:      "ломоносова мгу ломоносова",
			expected: []string{"ломоносова", "мгу"},
		},
		{
			name:     "All generic",
			key:      "московский государственный университет",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.SignificantTokens(tc.key)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestGuardEvaluate(t *testing.T) {
	g := NewGuard(DefaultGuardConfig(), rules.Default())

	tests := []struct {
		name      string
		queryKey  string
		candidate string
		score     float64
		pass      bool
	}{
		{
			name:      "Generic-vocabulary overlap alone is rejected",
			queryKey:  "московский государственный университет технологий и управления",
			candidate: "московский государственный университет",
			score:     100,
			pass:      false,
		},
		{
			name:      "One shared token at high score passes",
			queryKey:  "российский государственный гуманитарный университет",
			candidate: "государственный гуманитарный университет",
			score:     97,
			pass:      true,
		},
		{
			name:      "One shared token below the high-score bar fails",
			queryKey:  "российский государственный гуманитарный университет",
			candidate: "государственный гуманитарный университет",
			score:     96,
			pass:      false,
		},
		{
			name:      "Two shared tokens pass at the acceptance floor",
			queryKey:  "университет технологий и управления разумовского",
			candidate: "университет технологий управления",
			score:     90,
			pass:      true,
		},
		{
			name:      "Candidate anchor missing from the query fails",
			queryKey:  "московский гуманитарный университет имени ломоносова",
			candidate: "мгу имени ломоносова",
			score:     98,
			pass:      false,
		},
		{
			name:      "Shared anchor passes",
			queryKey:  "мгу имени ломоносова",
			candidate: "мгу имени м в ломоносова",
			score:     100,
			pass:      true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := g.Evaluate(tc.queryKey, tc.candidate, tc.score)
			if v.Pass != tc.pass {
				t.Errorf("expected pass=%v, got %v (shared=%v)", tc.pass, v.Pass, v.SharedTokens)
			}
		})
	}
}

func TestGuardVerdictCarriesTokenSets(t *testing.T) {
	g := NewGuard(DefaultGuardConfig(), rules.Default())

	v := g.Evaluate(
		"московский государственный университет технологий и управления",
		"московский государственный университет",
		100,
	)
	if len(v.QueryTokens) != 2 {
		t.Errorf("expected 2 query tokens, got %v", v.QueryTokens)
	}
	if len(v.CandidateTokens) != 0 {
		t.Errorf("expected no candidate tokens, got %v", v.CandidateTokens)
	}
	if len(v.SharedTokens) != 0 {
		t.Errorf("expected no shared tokens, got %v", v.SharedTokens)
	}
}
