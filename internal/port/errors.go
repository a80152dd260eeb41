package port

import (
	"errors"
	"fmt"
)

// Sentinel errors used across ports.
var (
	ErrEmptyCorpus       = errors.New("candidate corpus is empty")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrEmptyEmbedding    = errors.New("embedding model returned no vectors")
)

// LLMErrorKind categorizes gateway failures.
type LLMErrorKind int

const (
	LLMErrUnexpected LLMErrorKind = iota
	LLMErrConnection
	LLMErrStatus
	LLMErrDecode
	LLMErrEmptyContent
)

func (k LLMErrorKind) String() string {
	switch k {
	case LLMErrConnection:
		return "connection"
	case LLMErrStatus:
		return "status"
	case LLMErrDecode:
		return "decode"
	case LLMErrEmptyContent:
		return "empty_content"
	default:
		return "unexpected"
	}
}

// LLMError is a categorized gateway failure. Error() is the text shown to the end user.
type LLMError struct {
	Kind       LLMErrorKind
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *LLMError) Error() string {
	switch e.Kind {
	case LLMErrConnection:
		return fmt.Sprintf("Error: Could not connect to Ollama service at %s. Is Ollama running?", e.Endpoint)
	case LLMErrStatus:
		msg := fmt.Sprintf("Error: Failed to get response from Ollama. HTTP %d", e.StatusCode)
		if e.Body != "" {
			msg += " | Response: " + e.Body
		}
		return msg
	case LLMErrDecode:
		return "Error: Could not understand the response format from Ollama."
	case LLMErrEmptyContent:
		return "Error: Received an empty response from the language model."
	default:
		return "Error: An unexpected error occurred while processing the LLM request."
	}
}

func (e *LLMError) Unwrap() error { return e.Err }

// ReplyText collapses a gateway result into the single string handed to callers.
func ReplyText(text string, err error) string {
	if err == nil {
		return text
	}
	var llmErr *LLMError
	if errors.As(err, &llmErr) {
		return llmErr.Error()
	}
	return "Error: " + err.Error()
}
