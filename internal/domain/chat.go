package domain

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// Outcome is the terminal state reached by the answer pipeline.
type Outcome string

const (
	OutcomeRefusal Outcome = "refusal"
	OutcomeAnswer  Outcome = "answer"
	OutcomeError   Outcome = "error"
)

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Reply   string  `json:"reply"`
	Outcome Outcome `json:"-"`
}
