package store

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

// MemoryIndex is an exhaustive cosine-similarity index over an immutable
// candidate set. It is safe for concurrent readers since nothing mutates it
// after construction.
type MemoryIndex struct {
	entries   []domain.EmbeddedCandidate
	dimension int
}

// NewMemoryIndex validates that every vector shares one dimension and copies the entries.
func NewMemoryIndex(entries []domain.EmbeddedCandidate) (*MemoryIndex, error) {
	idx := &MemoryIndex{entries: make([]domain.EmbeddedCandidate, len(entries))}
	for i, e := range entries {
		if len(e.Vector) == 0 {
			return nil, fmt.Errorf("candidate %s: %w", e.ID, port.ErrEmptyEmbedding)
		}
		if i == 0 {
			idx.dimension = len(e.Vector)
		} else if len(e.Vector) != idx.dimension {
			return nil, fmt.Errorf("candidate %s has %d dims, want %d: %w", e.ID, len(e.Vector), idx.dimension, port.ErrDimensionMismatch)
		}
		idx.entries[i] = e
	}
	return idx, nil
}

// Len returns the number of indexed candidates.
func (m *MemoryIndex) Len() int { return len(m.entries) }

// Dimension returns the vector dimension, 0 for an empty index.
func (m *MemoryIndex) Dimension() int { return m.dimension }

// Search performs a full linear scan. Ties keep insertion order.
func (m *MemoryIndex) Search(ctx context.Context, vector []float32, limit int, threshold float64) ([]domain.ScoredCandidate, error) {
	if len(m.entries) == 0 || limit <= 0 {
		return nil, nil
	}
	if len(vector) != m.dimension {
		return nil, fmt.Errorf("query has %d dims, index has %d: %w", len(vector), m.dimension, port.ErrDimensionMismatch)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores := make([]float64, len(m.entries))
	order := make([]int, len(m.entries))
	for i, e := range m.entries {
		scores[i] = CosineSimilarity(vector, e.Vector)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var results []domain.ScoredCandidate
	for _, i := range order {
		if len(results) >= limit || !(scores[i] >= threshold) {
			break
		}
		results = append(results, domain.ScoredCandidate{
			Candidate:  m.entries[i].Candidate,
			Similarity: scores[i],
		})
	}
	return results, nil
}

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero vector has similarity 0 with everything. Non-finite input scores -1.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return -1
	}
	return sim
}
