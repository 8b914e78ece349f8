package question

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ResumeContext is the optional resume material the prompt is grounded on.
type ResumeContext struct {
	Skills     []string `json:"skills,omitempty"`
	Experience []string `json:"experience,omitempty"`
	Education  []string `json:"education,omitempty"`
}

// GenerateRequest asks for a batch of interview questions.
type GenerateRequest struct {
	JobTitle     string        `json:"job_title"`
	Difficulty   string        `json:"difficulty"`
	NumQuestions int           `json:"num_questions"`
	Resume       ResumeContext `json:"resume"`
}

// Normalize fills the original service's defaults and clamps the count.
func (r GenerateRequest) Normalize() GenerateRequest {
	if r.JobTitle == "" {
		r.JobTitle = "Software Engineer"
	}
	if !ValidDifficulty(r.Difficulty) {
		r.Difficulty = DifficultyMedium
	}
	if r.NumQuestions < 1 {
		r.NumQuestions = 5
	}
	if r.NumQuestions > 20 {
		r.NumQuestions = 20
	}
	return r
}

// CacheKey returns a deterministic key so identical requests share one
// cached response.
func (r GenerateRequest) CacheKey() string {
	data, _ := json.Marshal(r)
	sum := sha256.Sum256(data)
	return "questions:" + hex.EncodeToString(sum[:])
}

// GenerateResponse is the question-generation response body.
type GenerateResponse struct {
	Success    bool       `json:"success"`
	Questions  []Question `json:"questions"`
	JobTitle   string     `json:"job_title"`
	Difficulty string     `json:"difficulty"`
	Count      int        `json:"count"`
	SetID      string     `json:"set_id,omitempty"`
}

// ToResponse maps a stored set onto the response contract.
func (s *Set) ToResponse() *GenerateResponse {
	questions := s.Questions
	if questions == nil {
		questions = []Question{}
	}
	return &GenerateResponse{
		Success:    true,
		Questions:  questions,
		JobTitle:   s.JobTitle,
		Difficulty: s.Difficulty,
		Count:      len(questions),
		SetID:      s.ID.String(),
	}
}
