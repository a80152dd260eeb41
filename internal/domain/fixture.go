package domain

// SampleCandidates returns the built-in candidate corpus.
func SampleCandidates() []Candidate {
	return []Candidate{
		{ID: "c1", Name: "Alice", Skills: []string{"Python", "SQL", "AWS"}, ExperienceYears: 5, Summary: "Dev focused on backend systems."},
		{ID: "c2", Name: "Bob", Skills: []string{"Java", "Spring", "Docker"}, ExperienceYears: 7, Summary: "Java dev with cloud experience."},
		{ID: "c3", Name: "Charlie", Skills: []string{"Python", "Flask", "React"}, ExperienceYears: 3, Summary: "Full-stack dev, strong in Python."},
		{ID: "c4", Name: "Diana", Skills: []string{"Python", "AWS", "Terraform"}, ExperienceYears: 6, Summary: "Cloud engineer with Python scripting."},
	}
}
