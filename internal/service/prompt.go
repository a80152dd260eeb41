package service

import (
	"fmt"
	"strings"
)

// NoContextReply is returned without calling the LLM when retrieval finds nothing.
const NoContextReply = "I couldn't find any candidate information relevant to your query in the current dataset. Could you please try rephrasing?"

// GroundingRefusalPhrase is what the LLM is told to say when the context is insufficient.
const GroundingRefusalPhrase = "I cannot answer the question based on the provided candidate information."

// IsGroundingRefusal reports whether reply contains the instructed refusal phrase.
// The orchestrator only logs this; callers decide whether to act on it.
func IsGroundingRefusal(reply string) bool {
	return strings.Contains(strings.ToLower(reply), strings.ToLower(GroundingRefusalPhrase))
}

const analysisPromptTemplate = `Analyze the following user query to understand the primary intent and extract relevant criteria mentioned for searching candidate data.

User Query: %q

Possible Intents (Choose one that best fits):
- find_candidates: User wants a list/information about candidates matching criteria.
- compare_candidates: User wants to compare two or more specific candidates.
- summarize_candidate: User wants details/summary about one specific named candidate.
- general_query: User is asking a general question not specific to filtering/comparing candidates based on the provided criteria types.
- unknown: The intent is unclear or doesn't fit other categories.

Criteria to Extract (Extract only if explicitly mentioned or clearly implied):
- skills: List of required technical or soft skills mentioned (e.g., ["Python", "AWS", "leadership"]). If none, use empty list [].
- experience_years_min: Minimum years of experience required (as an integer). If none mentioned or unclear, use null.
- candidate_names: List of specific candidate names mentioned (e.g., ["Alice", "Bob"]). If none, use empty list [].

Instructions:
1. Carefully read the 'User Query'.
2. Determine the most likely 'intent' from the 'Possible Intents' list.
3. Extract any mentioned 'criteria' according to the definitions above. Be precise.
4. Format your response *only* as a single, valid JSON object.
5. The JSON object MUST contain the keys 'intent' (string) and 'criteria' (object).
6. The 'criteria' object should contain the keys 'skills', 'experience_years_min' and 'candidate_names'.
7. Do NOT include any explanations, apologies, or conversational text before or after the JSON object.

Example JSON Output format:
{
  "intent": "find_candidates",
  "criteria": {
    "skills": ["Python", "React"],
    "experience_years_min": 3,
    "candidate_names": []
  }
}

JSON Response:
`

// BuildAnalysisPrompt returns the structured-extraction prompt for query.
func BuildAnalysisPrompt(query string) string {
	return fmt.Sprintf(analysisPromptTemplate, query)
}

const groundedPromptTemplate = `You are an HR assistant chatbot. Your task is to answer the user's question based *strictly* and *only* on the provided context about candidates.

**Context:**
---
%s
---

**User Question:** %s

**Instructions:**
1. Examine the provided 'Context' carefully.
2. Answer the 'User Question' using *only* information found within the 'Context'. **List *all* relevant candidates or details found.**
3. Do not add any information that is not explicitly stated in the 'Context'. Do not make assumptions or use external knowledge.
4. If the 'Context' does not contain the information needed to answer the question, you MUST respond with "%s" or a very similar phrase. Do not attempt to answer anyway.

**Example Interaction:**
--- Example Start ---
Context:
- Name: Frank
  Skills: Java, Spring
- Name: Grace
  Skills: Java, Kubernetes

User Question: Which candidates know Java?

Answer: Based on the provided context, the candidates who know Java are Frank and Grace.
--- Example End ---

**Answer:**`

// BuildGroundedPrompt embeds the context block and question into the strict-grounding template.
func BuildGroundedPrompt(contextBlock, question string) string {
	return fmt.Sprintf(groundedPromptTemplate, contextBlock, question, GroundingRefusalPhrase)
}
