package domain

// Intent is the closed set of query intents the analyzer may report.
type Intent string

const (
	IntentFindCandidates     Intent = "find_candidates"
	IntentCompareCandidates  Intent = "compare_candidates"
	IntentSummarizeCandidate Intent = "summarize_candidate"
	IntentGeneralQuery       Intent = "general_query"
	IntentUnknown            Intent = "unknown"
)

// ParseIntent maps a raw label onto the closed set. Anything else is IntentUnknown.
func ParseIntent(label string) Intent {
	switch i := Intent(label); i {
	case IntentFindCandidates, IntentCompareCandidates, IntentSummarizeCandidate, IntentGeneralQuery:
		return i
	default:
		return IntentUnknown
	}
}

// Criteria holds the search criteria extracted from a query.
type Criteria struct {
	Skills             []string `json:"skills"`
	ExperienceYearsMin *int     `json:"experience_years_min"`
	CandidateNames     []string `json:"candidate_names"`
}

// AnalyzedQuery is the structured reading of a user query.
type AnalyzedQuery struct {
	Intent        Intent   `json:"intent"`
	Criteria      Criteria `json:"criteria"`
	OriginalQuery string   `json:"original_query"`
}

// DefaultAnalysis is returned whenever analysis fails.
func DefaultAnalysis(query string) AnalyzedQuery {
	return AnalyzedQuery{
		Intent: IntentUnknown,
		Criteria: Criteria{
			Skills:         []string{},
			CandidateNames: []string{},
		},
		OriginalQuery: query,
	}
}
