package resume

import (
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

// ParseSource identifies which path produced a parse result.
type ParseSource string

const (
	// SourceModel means the local multi-task model's output was accepted.
	SourceModel ParseSource = "model"
	// SourceLLM means the external generative fallback produced the result.
	SourceLLM ParseSource = "llm"
)

// ParseResult is the stored outcome of parsing one resume.
type ParseResult struct {
	ID kernel.ResumeID `db:"id" json:"id"`

	// File metadata
	FileName string `db:"file_name" json:"file_name"`
	FilePath string `db:"file_path" json:"file_path"`
	FileType string `db:"file_type" json:"file_type"`

	// Structured output
	Skills            []string `db:"skills" json:"skills"`
	Score             int      `db:"score" json:"score"`
	ExperienceSummary string   `db:"experience_summary" json:"experience_summary"`
	EducationLevel    string   `db:"education_level" json:"education_level"`

	// Gate metadata
	Confidence float64     `db:"confidence" json:"confidence"`
	Source     ParseSource `db:"source" json:"source"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FromModel reports whether the local model produced this result.
func (r *ParseResult) FromModel() bool {
	return r.Source == SourceModel
}

// HasSkill checks for an exact skill match.
func (r *ParseResult) HasSkill(name string) bool {
	for _, s := range r.Skills {
		if s == name {
			return true
		}
	}
	return false
}
