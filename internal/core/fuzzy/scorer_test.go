package fuzzy

import (
	"testing"
)

func TestScore(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
		exact    bool // compare exactly, otherwise expected is a lower bound
	}{
		{
			name:     "Identical keys",
			a:        "московский государственный университет",
			b:        "московский государственный университет",
			expected: 100,
			exact:    true,
		},
		{
			name:     "Word order is irrelevant",
			a:        "университет московский государственный",
			b:        "московский государственный университет",
			expected: 100,
			exact:    true,
		},
		{
			name:     "Token subset scores 100",
			a:        "мгу",
			b:        "мгу имени м в ломоносова",
			expected: 100,
			exact:    true,
		},
		{
			name:     "Duplicate tokens collapse",
			a:        "университет университет дружбы народов",
			b:        "университет дружбы народов",
			expected: 100,
			exact:    true,
		},
		{
			name:     "Empty query",
			a:        "",
			b:        "московский университет",
			expected: 0,
			exact:    true,
		},
		{
			name:     "Both empty",
			a:        "",
			b:        "",
			expected: 0,
			exact:    true,
		},
		{
			name:     "One differing token stays high",
			a:        "российский государственный гуманитарный университет",
			b:        "российский государственный социальный университет",
			expected: 75,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Score(tc.a, tc.b)
			if tc.exact && got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
			if !tc.exact && got < tc.expected {
				t.Errorf("expected at least %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestScoreSymmetry(t *testing.T) {
	s := NewScorer()

	pairs := [][2]string{
		{"московский политехнический университет", "московский педагогический университет"},
		{"мгу имени м в ломоносова", "московский государственный университет"},
		{"академия", "университет"},
	}

	for _, p := range pairs {
		ab := s.Score(p[0], p[1])
		ba := s.Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q)=%v but reversed=%v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Errorf("Score(%q, %q)=%v out of range", p[0], p[1], ab)
		}
	}
}

func TestScoreDissimilarKeysStayLow(t *testing.T) {
	s := NewScorer()

	got := s.Score(
		"тихоокеанский технологический колледж",
		"академия балета",
	)
	if got >= 90 {
		t.Errorf("dissimilar keys scored %v, want below the acceptance range", got)
	}
}

func TestBestMatch(t *testing.T) {
	s := NewScorer()

	candidates := []string{
		"российский новый университет",
		"московский государственный университет",
		"мгу имени м в ломоносова",
	}

	t.Run("Highest-scoring candidate wins", func(t *testing.T) {
		key, score := s.BestMatch("московский государственный университет", candidates)
		if key != "московский государственный университет" || score != 100 {
			t.Errorf("got (%q, %v)", key, score)
		}
	})

	t.Run("Ties keep the earliest candidate", func(t *testing.T) {
		dup := []string{"университет дружбы", "дружбы университет"}
		key, score := s.BestMatch("университет дружбы", dup)
		if key != "университет дружбы" || score != 100 {
			t.Errorf("got (%q, %v)", key, score)
		}
	})

	t.Run("Empty query", func(t *testing.T) {
		key, score := s.BestMatch("", candidates)
		if key != "" || score != 0 {
			t.Errorf("got (%q, %v)", key, score)
		}
	})

	t.Run("No candidates", func(t *testing.T) {
		key, score := s.BestMatch("московский университет", nil)
		if key != "" || score != 0 {
			t.Errorf("got (%q, %v)", key, score)
		}
	})
}

func TestDisabledScorer(t *testing.T) {
	var s Disabled

	if got := s.Score("а б", "а б"); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if key, score := s.BestMatch("а б", []string{"а б"}); key != "" || score != 0 {
		t.Errorf("got (%q, %v)", key, score)
	}
}
