package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
)

// NoContextSentinel is the context block used when nothing was retrieved.
const NoContextSentinel = "No relevant candidate information was found for the query."

const contextHeader = "Relevant Candidate Information Found (Ranked by relevance):"

// FormatContext renders candidates as the context block of the answer prompt.
// Scores and embeddings are never written out. The input slice is not modified.
func FormatContext(candidates []domain.ScoredCandidate) string {
	if len(candidates) == 0 {
		return NoContextSentinel
	}

	ranked := make([]domain.ScoredCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	var sb strings.Builder
	sb.WriteString(contextHeader)
	sb.WriteString("\n")
	for _, c := range ranked {
		fmt.Fprintf(&sb, "- Name: %s\n", c.Name)
		if len(c.Skills) > 0 {
			fmt.Fprintf(&sb, "  Skills: %s\n", strings.Join(c.Skills, ", "))
		}
		fmt.Fprintf(&sb, "  Experience: %d years\n", c.ExperienceYears)
		fmt.Fprintf(&sb, "  Summary: %s\n\n", c.Summary)
	}
	return strings.TrimSpace(sb.String())
}
