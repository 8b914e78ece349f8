package feedback

import (
	"context"

	"github.com/interview-ace/ace/pkg/kernel"
)

// Result is an evaluator's raw assessment before normalization.
type Result struct {
	Score       int        `json:"score"`
	Feedback    string     `json:"feedback"`
	Suggestions []string   `json:"suggestions"`
	Keywords    []string   `json:"keywords"`
	Sentiment   string     `json:"sentiment"`
	Breakdown   Breakdown  `json:"breakdown"`
	Categories  Categories `json:"categories"`
}

// Evaluator assesses an interview answer.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*Result, error)
}

// Repository persists evaluations.
type Repository interface {
	Create(ctx context.Context, evaluation *Evaluation) error
	GetByID(ctx context.Context, id kernel.FeedbackID) (*Evaluation, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Evaluation], error)
}
