package question

import (
	"context"

	"github.com/interview-ace/ace/pkg/kernel"
)

// Repository persists generated question sets.
type Repository interface {
	Create(ctx context.Context, set *Set) error
	GetByID(ctx context.Context, id kernel.QuestionSetID) (*Set, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Set], error)
}

// Generator produces interview questions for a normalized request.
type Generator interface {
	GenerateQuestions(ctx context.Context, req GenerateRequest) ([]Question, error)
}
