package knowledge

import (
	"context"

	"github.com/interview-ace/ace/pkg/kernel"
)

// Repository persists documents with their embeddings and runs vector
// similarity search.
type Repository interface {
	Create(ctx context.Context, doc *Document, embedding []float32) error
	GetByID(ctx context.Context, id kernel.DocumentID) (*Document, error)
	Delete(ctx context.Context, id kernel.DocumentID) error

	// Search returns up to limit documents ordered by cosine similarity to
	// the query embedding, best first.
	Search(ctx context.Context, embedding []float32, limit int) ([]Match, error)
}
