package question

import (
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

// Difficulty levels accepted by the generator.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question categories produced by the generator.
const (
	CategoryTechnical      = "technical"
	CategoryBehavioral     = "behavioral"
	CategoryProblemSolving = "problem-solving"
)

// Question is one generated interview question.
type Question struct {
	ID             string `json:"id"`
	Question       string `json:"question"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
	ExpectedAnswer string `json:"expected_answer"`
}

// Set is a stored batch of questions generated for one request.
type Set struct {
	ID         kernel.QuestionSetID `db:"id" json:"id"`
	JobTitle   string               `db:"job_title" json:"job_title"`
	Difficulty string               `db:"difficulty" json:"difficulty"`
	Questions  []Question           `db:"questions" json:"questions"`
	FromCanned bool                 `db:"from_canned" json:"from_canned"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
