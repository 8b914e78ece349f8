package feedbacksrv

import (
	"strings"

	"github.com/interview-ace/ace/practice/feedback"
)

// cannedResult builds an offline heuristic assessment when the evaluator is
// unavailable. It scores on answer length and keyword overlap with the
// question, which is crude but always available.
func cannedResult(req feedback.EvaluateRequest) *feedback.Result {
	words := strings.Fields(req.Answer)

	lengthScore := 0
	switch {
	case len(words) >= 100:
		lengthScore = 40
	case len(words) >= 50:
		lengthScore = 30
	case len(words) >= 20:
		lengthScore = 20
	case len(words) >= 5:
		lengthScore = 10
	}

	keywords := overlappingTerms(req.Question, req.Answer)
	overlapScore := len(keywords) * 5
	if overlapScore > 30 {
		overlapScore = 30
	}

	// Base of 20 so a non-empty answer never scores zero.
	score := feedback.ClampScore(20 + lengthScore + overlapScore)

	sentiment := feedback.SentimentNeutral
	if score >= 70 {
		sentiment = feedback.SentimentPositive
	}

	return &feedback.Result{
		Score:    score,
		Feedback: "Automated evaluation was unavailable, so this assessment is based on answer structure only. The answer was recorded and scored on length and topical overlap with the question.",
		Suggestions: []string{
			"Structure the answer with a clear situation, action, and result.",
			"Reference specific terms from the question to stay on topic.",
			"Quantify outcomes where possible.",
		},
		Keywords:  keywords,
		Sentiment: sentiment,
		Breakdown: feedback.Breakdown{
			Accuracy:     score,
			Completeness: feedback.ClampScore(20 + lengthScore*2),
			Clarity:      score,
			Relevance:    feedback.ClampScore(20 + overlapScore*2),
		},
		Categories: feedback.Categories{
			Technical:      score,
			Communication:  score,
			ProblemSolving: score,
			Confidence:     score,
		},
	}
}

// overlappingTerms returns answer words (>3 chars) that also appear in the
// question, lower-cased and deduplicated.
func overlappingTerms(questionText, answerText string) []string {
	questionWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(questionText)) {
		questionWords[strings.Trim(w, ".,!?")] = true
	}

	seen := make(map[string]bool)
	terms := []string{}
	for _, w := range strings.Fields(strings.ToLower(answerText)) {
		w = strings.Trim(w, ".,!?")
		if len(w) <= 3 || seen[w] || !questionWords[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}
