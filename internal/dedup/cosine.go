package dedup

import "math"

// Threshold is the cosine similarity at or above which two questions are
// considered semantic duplicates.
const Threshold = 0.9

// Window is how many of the most recently recorded embeddings a candidate
// is compared against. Newest-N rather than all-time: recall is traded for
// relevance and a bounded scan.
const Window = 25

// Cosine returns dot(a,b) / (norm(a) * norm(b)).
// Mismatched lengths and zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
