package feedbackinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/feedback"
	"github.com/jmoiron/sqlx"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) feedback.Repository {
	return &PostgresRepository{db: db}
}

// evaluationRow represents a row from the evaluations table. List and struct
// fields are stored as JSONB.
type evaluationRow struct {
	ID          string    `db:"id"`
	Question    string    `db:"question"`
	Answer      string    `db:"answer"`
	JobTitle    string    `db:"job_title"`
	Category    string    `db:"category"`
	Score       int       `db:"score"`
	Feedback    string    `db:"feedback"`
	Suggestions []byte    `db:"suggestions"`
	Keywords    []byte    `db:"keywords"`
	Sentiment   string    `db:"sentiment"`
	Breakdown   []byte    `db:"breakdown"`
	Categories  []byte    `db:"categories"`
	FromCanned  bool      `db:"from_canned"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *evaluationRow) ToDomain() (*feedback.Evaluation, error) {
	evaluation := &feedback.Evaluation{
		ID:         kernel.FeedbackID(r.ID),
		Question:   r.Question,
		Answer:     r.Answer,
		JobTitle:   r.JobTitle,
		Category:   r.Category,
		Score:      r.Score,
		Feedback:   r.Feedback,
		Sentiment:  r.Sentiment,
		FromCanned: r.FromCanned,
		CreatedAt:  r.CreatedAt,
	}

	for _, field := range []struct {
		name string
		data []byte
		dst  any
	}{
		{"suggestions", r.Suggestions, &evaluation.Suggestions},
		{"keywords", r.Keywords, &evaluation.Keywords},
		{"breakdown", r.Breakdown, &evaluation.Breakdown},
		{"categories", r.Categories, &evaluation.Categories},
	} {
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return nil, feedback.ErrRegistry.NewWithCause(feedback.CodeEvaluationFailed, err).
				WithDetail("evaluation_id", r.ID).
				WithDetail("field", field.name)
		}
	}

	return evaluation, nil
}

// Create persists an evaluation
func (r *PostgresRepository) Create(ctx context.Context, evaluation *feedback.Evaluation) error {
	query := `
		INSERT INTO evaluations (
			id, question, answer, job_title, category,
			score, feedback, suggestions, keywords, sentiment,
			breakdown, categories, from_canned, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14
		)`

	suggestions, err := json.Marshal(evaluation.Suggestions)
	if err != nil {
		return feedback.ErrRegistry.NewWithCause(feedback.CodeEvaluationFailed, err).
			WithDetail("field", "suggestions")
	}
	keywords, err := json.Marshal(evaluation.Keywords)
	if err != nil {
		return feedback.ErrRegistry.NewWithCause(feedback.CodeEvaluationFailed, err).
			WithDetail("field", "keywords")
	}
	breakdown, err := json.Marshal(evaluation.Breakdown)
	if err != nil {
		return feedback.ErrRegistry.NewWithCause(feedback.CodeEvaluationFailed, err).
			WithDetail("field", "breakdown")
	}
	categories, err := json.Marshal(evaluation.Categories)
	if err != nil {
		return feedback.ErrRegistry.NewWithCause(feedback.CodeEvaluationFailed, err).
			WithDetail("field", "categories")
	}

	_, err = r.db.ExecContext(ctx, query,
		evaluation.ID.String(), evaluation.Question, evaluation.Answer,
		evaluation.JobTitle, evaluation.Category,
		evaluation.Score, evaluation.Feedback, suggestions, keywords, evaluation.Sentiment,
		breakdown, categories, evaluation.FromCanned, evaluation.CreatedAt,
	)
	if err != nil {
		return feedback.ErrRegistry.NewWithCause(feedback.CodeEvaluationFailed, err).
			WithDetail("operation", "create")
	}

	logx.Infof("Stored evaluation: %s (score=%d, canned=%v)", evaluation.ID, evaluation.Score, evaluation.FromCanned)
	return nil
}

// GetByID retrieves an evaluation by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id kernel.FeedbackID) (*feedback.Evaluation, error) {
	query := `
		SELECT
			id, question, answer, job_title, category,
			score, feedback, suggestions, keywords, sentiment,
			breakdown, categories, from_canned, created_at
		FROM evaluations
		WHERE id = $1`

	row := &evaluationRow{}
	err := r.db.GetContext(ctx, row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, feedback.ErrNotFound().
				WithDetail("evaluation_id", id)
		}
		return nil, feedback.ErrRegistry.NewWithCause(feedback.CodeNotFound, err).
			WithDetail("evaluation_id", id).
			WithDetail("operation", "get")
	}

	return row.ToDomain()
}

// List retrieves evaluations with pagination, newest first
func (r *PostgresRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[feedback.Evaluation], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM evaluations`); err != nil {
		return nil, feedback.ErrRegistry.NewWithCause(feedback.CodeNotFound, err).
			WithDetail("operation", "count_all")
	}

	query := `
		SELECT
			id, question, answer, job_title, category,
			score, feedback, suggestions, keywords, sentiment,
			breakdown, categories, from_canned, created_at
		FROM evaluations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows := []evaluationRow{}
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, feedback.ErrRegistry.NewWithCause(feedback.CodeNotFound, err).
			WithDetail("operation", "list_paginated")
	}

	evaluations := make([]feedback.Evaluation, 0, len(rows))
	for _, row := range rows {
		evaluation, err := row.ToDomain()
		if err != nil {
			logx.Errorf("Failed to convert evaluation %s: %v", row.ID, err)
			continue
		}
		evaluations = append(evaluations, *evaluation)
	}

	page := kernel.NewPaginated(evaluations, pagination.Page, pagination.PageSize, total)
	return &page, nil
}
