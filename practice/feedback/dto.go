package feedback

// EvaluateRequest asks for an assessment of one interview answer.
type EvaluateRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	JobTitle string `json:"job_title"`
	Category string `json:"category"`
}

// Normalize fills the original service's defaults.
func (r EvaluateRequest) Normalize() EvaluateRequest {
	if r.JobTitle == "" {
		r.JobTitle = "Software Engineer"
	}
	if r.Category == "" {
		r.Category = "general"
	}
	return r
}

// EvaluateResponse is the feedback response body.
type EvaluateResponse struct {
	Success      bool       `json:"success"`
	Score        int        `json:"score"`
	Feedback     string     `json:"feedback"`
	Suggestions  []string   `json:"suggestions"`
	Keywords     []string   `json:"keywords"`
	Sentiment    string     `json:"sentiment"`
	Breakdown    Breakdown  `json:"breakdown"`
	Categories   Categories `json:"categories"`
	EvaluationID string     `json:"evaluation_id,omitempty"`
}

// ToResponse maps a stored evaluation onto the response contract.
func (e *Evaluation) ToResponse() *EvaluateResponse {
	suggestions := e.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	keywords := e.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &EvaluateResponse{
		Success:      true,
		Score:        e.Score,
		Feedback:     e.Feedback,
		Suggestions:  suggestions,
		Keywords:     keywords,
		Sentiment:    e.Sentiment,
		Breakdown:    e.Breakdown,
		Categories:   e.Categories,
		EvaluationID: e.ID.String(),
	}
}
