package port

import (
	"context"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
)

// Embedder turns text into dense vectors. Corpus and queries must go through
// the same Embedder so that they share one embedding space.
type Embedder interface {
	// EmbedModel returns the identifier of the embedding model.
	EmbedModel() string

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMGateway sends a single-message prompt to the language model.
// The returned error, when non-nil, is always a *LLMError.
type LLMGateway interface {
	// Complete returns the trimmed reply text. When structured is true the
	// provider is asked to constrain its output to valid JSON.
	Complete(ctx context.Context, prompt, model string, structured bool) (string, error)
}

// VectorIndex ranks embedded candidates against a query vector.
// Implementations may be exhaustive or approximate; results must be sorted by
// similarity descending with ties in insertion order.
type VectorIndex interface {
	// Len returns the number of indexed candidates.
	Len() int

	// Search returns at most limit candidates whose similarity is >= threshold.
	Search(ctx context.Context, vector []float32, limit int, threshold float64) ([]domain.ScoredCandidate, error)
}
