package questionsrv

import (
	"fmt"
	"strings"

	"github.com/interview-ace/ace/practice/question"
	"github.com/google/uuid"
)

// cannedTemplates are served when the generator is unavailable. The question
// text is parameterized on the job title only.
var cannedTemplates = []struct {
	text     string
	category string
	expected string
}{
	{
		text:     "What interests you about working as a %s?",
		category: question.CategoryBehavioral,
		expected: "Genuine motivation tied to the role, with specifics about the day-to-day work.",
	},
	{
		text:     "Walk me through a challenging technical problem you solved recently as a %s.",
		category: question.CategoryTechnical,
		expected: "A concrete problem, the candidate's own contribution, trade-offs considered, and the outcome.",
	},
	{
		text:     "How would you approach debugging a production issue you have never seen before?",
		category: question.CategoryProblemSolving,
		expected: "A systematic approach: reproduce, isolate, inspect logs/metrics, form and test hypotheses.",
	},
	{
		text:     "Describe a time you disagreed with a teammate about a technical decision. How was it resolved?",
		category: question.CategoryBehavioral,
		expected: "Constructive disagreement, listening, and a resolution based on evidence rather than seniority.",
	},
	{
		text:     "Which tools or technologies from your background are most relevant to a %s role, and why?",
		category: question.CategoryTechnical,
		expected: "A mapping from the candidate's actual experience to the skills the role needs.",
	},
	{
		text:     "You inherit a system with no documentation and failing tests. What do you do first?",
		category: question.CategoryProblemSolving,
		expected: "Prioritization: understand the system's behavior, stabilize tests, document as you learn.",
	},
	{
		text:     "Tell me about a project you are proud of. What was your role?",
		category: question.CategoryBehavioral,
		expected: "Clear ownership and measurable impact, not just a feature list.",
	},
	{
		text:     "How do you keep your skills current as a %s?",
		category: question.CategoryBehavioral,
		expected: "Specific habits: reading, side projects, courses, community involvement.",
	},
}

// cannedQuestions builds the fallback batch for a normalized request.
func cannedQuestions(req question.GenerateRequest) []question.Question {
	questions := make([]question.Question, 0, req.NumQuestions)
	for i := 0; i < req.NumQuestions; i++ {
		tpl := cannedTemplates[i%len(cannedTemplates)]
		text := tpl.text
		if strings.Contains(text, "%s") {
			text = fmt.Sprintf(tpl.text, req.JobTitle)
		}
		questions = append(questions, question.Question{
			ID:             uuid.NewString(),
			Question:       text,
			Category:       tpl.category,
			Difficulty:     req.Difficulty,
			ExpectedAnswer: tpl.expected,
		})
	}
	return questions
}
