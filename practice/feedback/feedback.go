package feedback

import (
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

// Sentiment labels attached to an evaluated answer.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Breakdown scores the answer along four axes, each 0-100.
type Breakdown struct {
	Accuracy     int `json:"accuracy"`
	Completeness int `json:"completeness"`
	Clarity      int `json:"clarity"`
	Relevance    int `json:"relevance"`
}

// Categories scores interview competencies, each 0-100.
type Categories struct {
	Technical      int `json:"technical"`
	Communication  int `json:"communication"`
	ProblemSolving int `json:"problem_solving"`
	Confidence     int `json:"confidence"`
}

// Evaluation is a stored answer assessment.
type Evaluation struct {
	ID kernel.FeedbackID `db:"id" json:"id"`

	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
	JobTitle string `db:"job_title" json:"job_title"`
	Category string `db:"category" json:"category"`

	Score       int        `db:"score" json:"score"`
	Feedback    string     `db:"feedback" json:"feedback"`
	Suggestions []string   `db:"suggestions" json:"suggestions"`
	Keywords    []string   `db:"keywords" json:"keywords"`
	Sentiment   string     `db:"sentiment" json:"sentiment"`
	Breakdown   Breakdown  `db:"breakdown" json:"breakdown"`
	Categories  Categories `db:"categories" json:"categories"`

	FromCanned bool      `db:"from_canned" json:"from_canned"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ValidSentiment reports whether s is a known sentiment label.
func ValidSentiment(s string) bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// ClampScore limits a score to the 0-100 contract.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
