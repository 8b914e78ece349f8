package knowledgeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/knowledge"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) knowledge.Repository {
	return &PostgresRepository{db: db}
}

// documentRow represents a row from the knowledge_documents table. Tags are
// stored as JSONB, the embedding as a pgvector column.
type documentRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Role      string    `db:"role"`
	Text      string    `db:"text"`
	Tags      []byte    `db:"tags"`
	CreatedAt time.Time `db:"created_at"`

	Similarity float64 `db:"similarity"`
}

func (r *documentRow) ToDomain() (*knowledge.Document, error) {
	doc := &knowledge.Document{
		ID:        kernel.DocumentID(r.ID),
		Title:     r.Title,
		Role:      r.Role,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}

	if len(r.Tags) > 0 {
		if err := json.Unmarshal(r.Tags, &doc.Tags); err != nil {
			return nil, knowledge.ErrRegistry.NewWithCause(knowledge.CodeStoreFailed, err).
				WithDetail("document_id", r.ID).
				WithDetail("field", "tags")
		}
	}

	return doc, nil
}

// Create persists a document with its embedding
func (r *PostgresRepository) Create(ctx context.Context, doc *knowledge.Document, embedding []float32) error {
	query := `
		INSERT INTO knowledge_documents (
			id, title, role, text, tags, embedding, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return knowledge.ErrRegistry.NewWithCause(knowledge.CodeStoreFailed, err).
			WithDetail("field", "tags")
	}

	_, err = r.db.ExecContext(ctx, query,
		doc.ID.String(), doc.Title, doc.Role, doc.Text,
		tags, pgvector.NewVector(embedding), doc.CreatedAt,
	)
	if err != nil {
		return knowledge.ErrRegistry.NewWithCause(knowledge.CodeStoreFailed, err).
			WithDetail("operation", "create")
	}

	logx.Infof("Stored knowledge document: %s", doc.ID)
	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id kernel.DocumentID) (*knowledge.Document, error) {
	query := `
		SELECT id, title, role, text, tags, created_at
		FROM knowledge_documents
		WHERE id = $1`

	row := &documentRow{}
	err := r.db.GetContext(ctx, row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, knowledge.ErrNotFound().
				WithDetail("document_id", id)
		}
		return nil, knowledge.ErrRegistry.NewWithCause(knowledge.CodeNotFound, err).
			WithDetail("document_id", id).
			WithDetail("operation", "get")
	}

	return row.ToDomain()
}

// Delete removes a document
func (r *PostgresRepository) Delete(ctx context.Context, id kernel.DocumentID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_documents WHERE id = $1`, id.String())
	if err != nil {
		return knowledge.ErrRegistry.NewWithCause(knowledge.CodeStoreFailed, err).
			WithDetail("document_id", id).
			WithDetail("operation", "delete")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return knowledge.ErrRegistry.NewWithCause(knowledge.CodeStoreFailed, err).
			WithDetail("operation", "delete_rows_affected")
	}

	if rows == 0 {
		return knowledge.ErrNotFound().
			WithDetail("document_id", id)
	}

	return nil
}

// Search returns documents ordered by cosine similarity to the query
// embedding, best first
func (r *PostgresRepository) Search(ctx context.Context, embedding []float32, limit int) ([]knowledge.Match, error) {
	query := `
		SELECT
			id, title, role, text, tags, created_at,
			1 - (embedding <=> $1) AS similarity
		FROM knowledge_documents
		ORDER BY embedding <=> $1
		LIMIT $2`

	rows := []documentRow{}
	err := r.db.SelectContext(ctx, &rows, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, knowledge.ErrRegistry.NewWithCause(knowledge.CodeStoreFailed, err).
			WithDetail("operation", "vector_search")
	}

	matches := make([]knowledge.Match, 0, len(rows))
	for _, row := range rows {
		doc, err := row.ToDomain()
		if err != nil {
			logx.Errorf("Failed to convert document %s: %v", row.ID, err)
			continue
		}
		matches = append(matches, knowledge.Match{
			Document:   *doc,
			Similarity: row.Similarity,
		})
	}

	return matches, nil
}
