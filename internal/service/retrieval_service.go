package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

const (
	DefaultTopN                = 3
	DefaultSimilarityThreshold = 0.35
)

// RetrievalOptions bounds what Retrieve returns.
type RetrievalOptions struct {
	TopN                int
	SimilarityThreshold float64
}

// DefaultRetrievalOptions returns TopN=3, threshold=0.35.
func DefaultRetrievalOptions() RetrievalOptions {
	return RetrievalOptions{TopN: DefaultTopN, SimilarityThreshold: DefaultSimilarityThreshold}
}

// RetrievalService owns the embedding model handle and the embedded corpus.
// It is built once and shared read-only between requests.
type RetrievalService struct {
	embedder  port.Embedder
	index     port.VectorIndex
	topN      int
	threshold float64
}

// NewRetrievalService wraps an already built index. A nil index behaves as an empty corpus.
func NewRetrievalService(embedder port.Embedder, index port.VectorIndex, opts RetrievalOptions) *RetrievalService {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &RetrievalService{
		embedder:  embedder,
		index:     index,
		topN:      opts.TopN,
		threshold: opts.SimilarityThreshold,
	}
}

// BuildRetrievalService embeds candidates and returns a ready service.
// A failure to embed the corpus is logged and leaves the service empty, so
// every later query takes the no-context path instead of failing.
func BuildRetrievalService(ctx context.Context, embedder port.Embedder, candidates []domain.Candidate, opts RetrievalOptions) *RetrievalService {
	idx, err := BuildIndex(ctx, embedder, candidates)
	if err != nil {
		slog.Error("FATAL: could not build candidate embeddings, retrieval disabled", "error", err)
		return NewRetrievalService(embedder, nil, opts)
	}
	return NewRetrievalService(embedder, idx, opts)
}

// CorpusSize returns the number of searchable candidates.
func (s *RetrievalService) CorpusSize() int {
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}

// Retrieve returns up to TopN candidates at or above the similarity threshold,
// most similar first. It never fails: any error yields an empty result.
//
// analysis is logged only. It does not narrow the candidate set yet because
// how criteria such as experience_years_min should combine with the semantic
// score is undecided.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, analysis *domain.AnalyzedQuery) []domain.ScoredCandidate {
	if analysis != nil {
		slog.Debug("retrieve called", "query", query, "intent", analysis.Intent)
	}

	if s.CorpusSize() == 0 || s.embedder == nil {
		slog.Warn("embeddings or candidate data not available, returning empty context")
		return nil
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		slog.Error("query embedding failed", "error", err)
		return nil
	}

	matches, err := s.index.Search(ctx, vector, s.topN, s.threshold)
	if err != nil {
		slog.Error("semantic retrieval failed", "error", err)
		return nil
	}

	for _, m := range matches {
		slog.Info("match found", "candidate", m.Name, "score", m.Similarity)
	}
	if len(matches) == 0 {
		slog.Info("no candidates met the similarity threshold", "threshold", s.threshold)
	}
	return matches
}
