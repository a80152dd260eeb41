package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

// OllamaEndpointConfig holds the configuration for a single Ollama endpoint.
type OllamaEndpointConfig struct {
	BaseURL string // e.g. http://localhost:11434
	Model   string // e.g. all-minilm, llama3.2:3b
	Token   string // Bearer token (empty = no auth)
}

// OllamaProvider implements port.Embedder and port.LLMGateway using the Ollama REST API.
type OllamaProvider struct {
	embed      OllamaEndpointConfig
	chat       OllamaEndpointConfig
	httpClient *http.Client
}

// NewOllamaProvider creates a new Ollama-backed provider with separate embed/chat configs.
// A zero timeout leaves the client without a deadline.
func NewOllamaProvider(embed, chat OllamaEndpointConfig, timeout time.Duration) *OllamaProvider {
	return &OllamaProvider{
		embed:      embed,
		chat:       chat,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ModelName returns the default chat model identifier.
func (o *OllamaProvider) ModelName() string {
	return o.chat.Model
}

// EmbedModel returns the embedding model identifier.
func (o *OllamaProvider) EmbedModel() string {
	return o.embed.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the /api/chat payload. Format is omitted entirely in freeform mode.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type chatResponse struct {
	Message *struct {
		Content *string `json:"content"`
	} `json:"message"`
}

// Complete sends prompt as a single user message and returns the trimmed reply.
func (o *OllamaProvider) Complete(ctx context.Context, prompt, model string, structured bool) (string, error) {
	if model == "" {
		model = o.chat.Model
	}
	payload := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	if structured {
		payload.Format = "json"
	}
	slog.Info("sending request to ollama", "model", model, "structured", structured)

	body, err := o.post(ctx, o.chat, "/api/chat", payload)
	if err != nil {
		slog.Error("ollama chat failed", "error", err, "kind", kindOf(err))
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		slog.Error("ollama chat decode failed", "error", err, "body", string(body))
		return "", &port.LLMError{Kind: port.LLMErrDecode, Endpoint: o.chat.BaseURL + "/api/chat", Err: err}
	}

	if resp.Message == nil || resp.Message.Content == nil || strings.TrimSpace(*resp.Message.Content) == "" {
		slog.Warn("ollama response missing content", "body", string(body))
		return "", &port.LLMError{Kind: port.LLMErrEmptyContent, Endpoint: o.chat.BaseURL + "/api/chat"}
	}

	return strings.TrimSpace(*resp.Message.Content), nil
}

// Embed generates a vector embedding for the given text.
func (o *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := o.embedInput(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("ollama embed: %w", port.ErrEmptyEmbedding)
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (o *OllamaProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := o.embedInput(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("ollama embed batch: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("ollama embed batch: got %d vectors for %d texts: %w", len(vectors), len(texts), port.ErrEmptyEmbedding)
	}
	return vectors, nil
}

func (o *OllamaProvider) embedInput(ctx context.Context, input interface{}) ([][]float32, error) {
	payload := map[string]interface{}{
		"model": o.embed.Model,
		"input": input,
	}

	body, err := o.post(ctx, o.embed, "/api/embed", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return resp.Embeddings, nil
}

// post is a helper for POST requests to an Ollama endpoint (with optional bearer token).
// Transport and status failures come back as *port.LLMError.
func (o *OllamaProvider) post(ctx context.Context, cfg OllamaEndpointConfig, path string, payload interface{}) ([]byte, error) {
	url := cfg.BaseURL + path

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, &port.LLMError{Kind: port.LLMErrUnexpected, Endpoint: url, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, &port.LLMError{Kind: port.LLMErrUnexpected, Endpoint: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, &port.LLMError{Kind: port.LLMErrConnection, Endpoint: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &port.LLMError{
			Kind:       port.LLMErrStatus,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err != nil {
		return nil, &port.LLMError{Kind: port.LLMErrUnexpected, Endpoint: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func kindOf(err error) string {
	if e, ok := err.(*port.LLMError); ok {
		return e.Kind.String()
	}
	return port.LLMErrUnexpected.String()
}
