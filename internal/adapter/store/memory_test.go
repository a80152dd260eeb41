package store

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

func entry(id string, v ...float32) domain.EmbeddedCandidate {
	return domain.EmbeddedCandidate{Candidate: domain.Candidate{ID: id, Name: id}, Vector: v}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 1}, 0},
		{"nan component", []float32{float32(math.NaN()), 1}, []float32{1, 1}, -1},
		{"inf component", []float32{float32(math.Inf(1)), 1}, []float32{1, 1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNewMemoryIndex_DimensionMismatch(t *testing.T) {
	_, err := NewMemoryIndex([]domain.EmbeddedCandidate{entry("a", 1, 0), entry("b", 1, 0, 0)})
	if !errors.Is(err, port.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNewMemoryIndex_EmptyVector(t *testing.T) {
	_, err := NewMemoryIndex([]domain.EmbeddedCandidate{entry("a")})
	if !errors.Is(err, port.ErrEmptyEmbedding) {
		t.Errorf("expected ErrEmptyEmbedding, got %v", err)
	}
}

func TestSearch_ThresholdAndLimit(t *testing.T) {
	idx, err := NewMemoryIndex([]domain.EmbeddedCandidate{
		entry("low", 0, 1),
		entry("high", 1, 0),
		entry("mid", 1, 1),
		entry("high2", 2, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	results, err := idx.Search(context.Background(), []float32{1, 0}, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// high and high2 tie at 1.0; insertion order decides.
	if results[0].ID != "high" || results[1].ID != "high2" {
		t.Errorf("unexpected order: %s, %s", results[0].ID, results[1].ID)
	}

	results, _ = idx.Search(context.Background(), []float32{1, 0}, 10, 0.5)
	if len(results) != 3 {
		t.Fatalf("expected 3 results above 0.5, got %d", len(results))
	}
	for _, r := range results {
		if r.Similarity < 0.5 {
			t.Errorf("%s below threshold: %f", r.ID, r.Similarity)
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	idx, _ := NewMemoryIndex([]domain.EmbeddedCandidate{
		entry("a", 1, 1), entry("b", 1, 1), entry("c", 1, 1),
	})
	first, _ := idx.Search(context.Background(), []float32{1, 1}, 3, 0)
	for i := 0; i < 20; i++ {
		again, _ := idx.Search(context.Background(), []float32{1, 1}, 3, 0)
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d: order changed at %d", i, j)
			}
		}
	}
	if first[0].ID != "a" || first[1].ID != "b" || first[2].ID != "c" {
		t.Errorf("ties should keep insertion order, got %s %s %s", first[0].ID, first[1].ID, first[2].ID)
	}
}

func TestSearch_EmptyIndexAndBadQuery(t *testing.T) {
	empty, _ := NewMemoryIndex(nil)
	if res, err := empty.Search(context.Background(), []float32{1}, 3, 0); err != nil || len(res) != 0 {
		t.Errorf("empty index should return nothing, got %v %v", res, err)
	}

	idx, _ := NewMemoryIndex([]domain.EmbeddedCandidate{entry("a", 1, 0)})
	if _, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3, 0); !errors.Is(err, port.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSearch_NonFiniteVectorNeverMatches(t *testing.T) {
	idx, err := NewMemoryIndex([]domain.EmbeddedCandidate{
		entry("broken", float32(math.NaN()), 1),
		entry("good", 1, 1),
		entry("also-broken", float32(math.Inf(1)), 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := idx.Search(context.Background(), []float32{1, 1}, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("got %+v, want only good", got)
	}
	for _, r := range got {
		if math.IsNaN(r.Similarity) {
			t.Errorf("%s has NaN similarity", r.ID)
		}
	}
}
