package services

// Fusion weights for hybrid scoring. The rerank score dominates because it
// conditions on the full preference text rather than a single vector.
const (
	embeddingWeight = 0.3
	llmWeight       = 0.7
)

// FuseScores combines the retrieval similarity with the rerank score into one
// confidence value. Both inputs are expected in [0,1]; the result is clamped
// anyway so a stored confidence can never leave that range.
func FuseScores(embeddingScore, llmScore float64) float64 {
	return clamp01(embeddingWeight*embeddingScore + llmWeight*llmScore)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
