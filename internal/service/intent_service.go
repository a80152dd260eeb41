package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/port"
)

var (
	errNotObject    = errors.New("analysis response is not a JSON object")
	errTrailingData = errors.New("analysis response has data after the JSON value")
)

// IntentAnalyzer asks the LLM for a structured reading of a user query.
type IntentAnalyzer struct {
	llm   port.LLMGateway
	model string
}

// NewIntentAnalyzer creates an analyzer that calls llm with the given model.
func NewIntentAnalyzer(llm port.LLMGateway, model string) *IntentAnalyzer {
	return &IntentAnalyzer{llm: llm, model: model}
}

// Analyze never fails: any gateway or parse problem yields domain.DefaultAnalysis.
func (a *IntentAnalyzer) Analyze(ctx context.Context, query string) domain.AnalyzedQuery {
	raw, err := a.llm.Complete(ctx, BuildAnalysisPrompt(query), a.model, true)
	if err != nil {
		slog.Warn("analysis call failed, using default analysis", "error", err)
		return domain.DefaultAnalysis(query)
	}

	analysis, err := parseAnalysis(raw, query)
	if err != nil {
		slog.Warn("could not parse analysis response, using default analysis", "error", err, "raw", raw)
		return domain.DefaultAnalysis(query)
	}
	return analysis
}

// parseAnalysis decodes the LLM's JSON reply into an AnalyzedQuery.
func parseAnalysis(raw, query string) (domain.AnalyzedQuery, error) {
	dec := json.NewDecoder(strings.NewReader(cleanJSON(raw)))
	dec.UseNumber()

	var parsed interface{}
	if err := dec.Decode(&parsed); err != nil {
		return domain.AnalyzedQuery{}, fmt.Errorf("decode analysis: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.AnalyzedQuery{}, errTrailingData
	}
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return domain.AnalyzedQuery{}, errNotObject
	}

	analysis := domain.DefaultAnalysis(query)
	if label, ok := obj["intent"].(string); ok {
		analysis.Intent = domain.ParseIntent(label)
	}

	criteria, ok := obj["criteria"].(map[string]interface{})
	if !ok {
		if _, present := obj["criteria"]; present {
			slog.Warn("'criteria' field in analysis response was not an object")
		}
		return analysis, nil
	}
	analysis.Criteria.Skills = stringList(criteria["skills"])
	analysis.Criteria.CandidateNames = stringList(criteria["candidate_names"])
	analysis.Criteria.ExperienceYearsMin = wholeYears(criteria["experience_years_min"])
	return analysis, nil
}

// cleanJSON strips a ```json or bare ``` fence around the payload.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

func stringList(v interface{}) []string {
	out := []string{}
	items, ok := v.([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// wholeYears accepts a JSON integer or a string of decimal digits. Anything else is nil.
func wholeYears(v interface{}) *int {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = t
	default:
		return nil
	}
	if s == "" || !isDigits(s) {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func isDigits(s string) bool {
	return len(bytes.TrimLeft([]byte(s), "0123456789")) == 0
}
