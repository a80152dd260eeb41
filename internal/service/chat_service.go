package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

// ChatService runs the grounded answer pipeline: analyze, retrieve, then
// either refuse without calling the LLM or answer from the retrieved context.
type ChatService struct {
	analyzer  *IntentAnalyzer
	retriever *RetrievalService
	llm       port.LLMGateway
	model     string
}

// NewChatService wires the pipeline stages together.
func NewChatService(analyzer *IntentAnalyzer, retriever *RetrievalService, llm port.LLMGateway, model string) *ChatService {
	return &ChatService{analyzer: analyzer, retriever: retriever, llm: llm, model: model}
}

// Answer never fails; the reply text carries success, refusal or an "Error: " message.
func (s *ChatService) Answer(ctx context.Context, message string) domain.ChatResponse {
	analysis := s.analyzer.Analyze(ctx, message)
	slog.Info("analyzed query",
		"intent", analysis.Intent,
		"skills", analysis.Criteria.Skills,
		"experience_years_min", analysis.Criteria.ExperienceYearsMin,
		"candidate_names", analysis.Criteria.CandidateNames,
	)

	candidates := s.retriever.Retrieve(ctx, message, &analysis)
	if len(candidates) == 0 {
		slog.Info("no relevant context found, bypassing LLM")
		return domain.ChatResponse{Reply: NoContextReply, Outcome: domain.OutcomeRefusal}
	}
	slog.Info("found relevant candidates, proceeding with LLM", "count", len(candidates))

	contextBlock := FormatContext(candidates)
	slog.Debug("formatted context", "context", contextBlock)

	text, err := s.llm.Complete(ctx, BuildGroundedPrompt(contextBlock, message), s.model, false)
	if err != nil {
		var llmErr *port.LLMError
		if errors.As(err, &llmErr) {
			slog.Error("answer generation failed", "kind", llmErr.Kind, "error", err)
		}
		return domain.ChatResponse{Reply: port.ReplyText(text, err), Outcome: domain.OutcomeError}
	}

	if IsGroundingRefusal(text) {
		slog.Info("model declined: context insufficient")
	}
	return domain.ChatResponse{Reply: text, Outcome: domain.OutcomeAnswer}
}

// Search runs retrieval and formatting only, without any LLM call.
func (s *ChatService) Search(ctx context.Context, query string) (string, []domain.ScoredCandidate) {
	candidates := s.retriever.Retrieve(ctx, query, nil)
	return FormatContext(candidates), candidates
}

// Analyze exposes the intent analysis step.
func (s *ChatService) Analyze(ctx context.Context, query string) domain.AnalyzedQuery {
	return s.analyzer.Analyze(ctx, query)
}
