package ports

// Scorer computes a similarity score in [0,100] between two normalized keys
// and searches a candidate list for the best-scoring key.
type Scorer interface {
	Score(a, b string) float64
	// BestMatch returns the highest-scoring candidate and its score. Ties are
	// broken by candidate order; an empty candidate list yields ("", 0).
	BestMatch(query string, candidates []string) (string, float64)
}
