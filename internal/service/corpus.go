package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arturoeanton/resume-insight-assistant/internal/adapter/store"
	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

// ProfileText is the canonical text embedded for a candidate.
// The skills segment is left out when the candidate lists none.
func ProfileText(c domain.Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s. ", c.Name)
	if len(c.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s. ", strings.Join(c.Skills, ", "))
	}
	fmt.Fprintf(&sb, "Experience: %d years. ", c.ExperienceYears)
	fmt.Fprintf(&sb, "Summary: %s", c.Summary)
	return strings.TrimSpace(sb.String())
}

// BuildIndex embeds every candidate profile in a single batch and indexes the result.
func BuildIndex(ctx context.Context, embedder port.Embedder, candidates []domain.Candidate) (*store.MemoryIndex, error) {
	if len(candidates) == 0 {
		return nil, port.ErrEmptyCorpus
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = ProfileText(c)
	}

	slog.Info("generating candidate embeddings", "count", len(texts), "model", embedder.EmbedModel())
	start := time.Now()
	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(candidates) {
		return nil, fmt.Errorf("embed corpus: got %d vectors for %d candidates: %w", len(vectors), len(candidates), port.ErrEmptyEmbedding)
	}

	entries := make([]domain.EmbeddedCandidate, len(candidates))
	for i, c := range candidates {
		entries[i] = domain.EmbeddedCandidate{Candidate: c, Vector: vectors[i]}
	}

	idx, err := store.NewMemoryIndex(entries)
	if err != nil {
		return nil, fmt.Errorf("index corpus: %w", err)
	}
	slog.Info("candidate embeddings stored",
		"count", idx.Len(),
		"dimension", idx.Dimension(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return idx, nil
}
