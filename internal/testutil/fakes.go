// Package testutil provides deterministic stand-ins for the embedding model and
// the LLM so that pipeline behavior can be asserted exactly.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"
)

// SkillVocabulary is the default vocabulary of KeywordEmbedder.
var SkillVocabulary = []string{
	"python", "java", "sql", "aws", "spring", "docker",
	"flask", "react", "terraform", "cobol", "backend", "cloud",
}

// KeywordEmbedder embeds text as term counts over a fixed vocabulary.
type KeywordEmbedder struct {
	Vocabulary []string
	Err        error // returned by every call when set

	mu    sync.Mutex
	calls int
}

// NewKeywordEmbedder returns an embedder over SkillVocabulary.
func NewKeywordEmbedder() *KeywordEmbedder {
	return &KeywordEmbedder{Vocabulary: SkillVocabulary}
}

func (e *KeywordEmbedder) EmbedModel() string { return "keyword-test" }

func (e *KeywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.Err != nil {
		return nil, e.Err
	}
	vec := make([]float32, len(e.Vocabulary))
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		for i, term := range e.Vocabulary {
			if w == term {
				vec[i]++
			}
		}
	}
	return vec, nil
}

func (e *KeywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Calls returns how many texts have been embedded.
func (e *KeywordEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// Call records a single gateway invocation.
type Call struct {
	Prompt     string
	Model      string
	Structured bool
}

// ScriptedLLM answers structured and freeform calls with fixed replies.
type ScriptedLLM struct {
	StructuredReply string
	StructuredErr   error
	FreeformReply   string
	FreeformErr     error

	mu    sync.Mutex
	calls []Call
}

func (l *ScriptedLLM) Complete(ctx context.Context, prompt, model string, structured bool) (string, error) {
	l.mu.Lock()
	l.calls = append(l.calls, Call{Prompt: prompt, Model: model, Structured: structured})
	l.mu.Unlock()
	if structured {
		return l.StructuredReply, l.StructuredErr
	}
	return l.FreeformReply, l.FreeformErr
}

// Calls returns a copy of all recorded invocations.
func (l *ScriptedLLM) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.calls...)
}

// FreeformCalls returns the answer-generation invocations only.
func (l *ScriptedLLM) FreeformCalls() []Call {
	var out []Call
	for _, c := range l.Calls() {
		if !c.Structured {
			out = append(out, c)
		}
	}
	return out
}

// ErrModelUnavailable simulates an embedding model that cannot be loaded.
var ErrModelUnavailable = errors.New("embedding model unavailable")
