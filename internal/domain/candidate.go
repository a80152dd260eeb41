package domain

// Candidate is a single résumé record of the corpus. Immutable after corpus construction.
type Candidate struct {
	ID              string   `json:"candidate_id"    yaml:"candidate_id"`
	Name            string   `json:"candidate_name"  yaml:"candidate_name"`
	Skills          []string `json:"skills"          yaml:"skills"`
	ExperienceYears int      `json:"experience_years" yaml:"experience_years"`
	Summary         string   `json:"summary"         yaml:"summary"`
}

// EmbeddedCandidate pairs a candidate with the embedding of its profile text.
type EmbeddedCandidate struct {
	Candidate
	Vector []float32 `json:"-"`
}

// ScoredCandidate is a retrieval hit. The embedding is not carried.
type ScoredCandidate struct {
	Candidate
	Similarity float64 `json:"similarity"`
}
