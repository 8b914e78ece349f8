package questioninfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/question"
	"github.com/jmoiron/sqlx"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) question.Repository {
	return &PostgresRepository{db: db}
}

// setRow represents a row from the question_sets table. Questions are stored
// as JSONB.
type setRow struct {
	ID         string    `db:"id"`
	JobTitle   string    `db:"job_title"`
	Difficulty string    `db:"difficulty"`
	Questions  []byte    `db:"questions"`
	FromCanned bool      `db:"from_canned"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *setRow) ToDomain() (*question.Set, error) {
	set := &question.Set{
		ID:         kernel.QuestionSetID(r.ID),
		JobTitle:   r.JobTitle,
		Difficulty: r.Difficulty,
		FromCanned: r.FromCanned,
		CreatedAt:  r.CreatedAt,
	}

	if err := json.Unmarshal(r.Questions, &set.Questions); err != nil {
		return nil, question.ErrInvalidResponse().
			WithDetail("set_id", r.ID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	return set, nil
}

// Create persists a question set
func (r *PostgresRepository) Create(ctx context.Context, set *question.Set) error {
	query := `
		INSERT INTO question_sets (
			id, job_title, difficulty, questions, from_canned, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)`

	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return question.ErrInvalidResponse().
			WithDetail("set_id", set.ID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	_, err = r.db.ExecContext(ctx, query,
		set.ID.String(), set.JobTitle, set.Difficulty,
		questions, set.FromCanned, set.CreatedAt,
	)
	if err != nil {
		return question.ErrRegistry.NewWithCause(question.CodeGenerationFailed, err).
			WithDetail("operation", "create_set")
	}

	logx.Infof("Stored question set: %s (%s/%s, canned=%v)", set.ID, set.JobTitle, set.Difficulty, set.FromCanned)
	return nil
}

// GetByID retrieves a question set by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id kernel.QuestionSetID) (*question.Set, error) {
	query := `
		SELECT id, job_title, difficulty, questions, from_canned, created_at
		FROM question_sets
		WHERE id = $1`

	row := &setRow{}
	err := r.db.GetContext(ctx, row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, question.ErrSetNotFound().
				WithDetail("set_id", id)
		}
		return nil, question.ErrRegistry.NewWithCause(question.CodeSetNotFound, err).
			WithDetail("set_id", id).
			WithDetail("operation", "get")
	}

	return row.ToDomain()
}

// List retrieves question sets with pagination, newest first
func (r *PostgresRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[question.Set], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM question_sets`); err != nil {
		return nil, question.ErrRegistry.NewWithCause(question.CodeSetNotFound, err).
			WithDetail("operation", "count_all")
	}

	query := `
		SELECT id, job_title, difficulty, questions, from_canned, created_at
		FROM question_sets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows := []setRow{}
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, question.ErrRegistry.NewWithCause(question.CodeSetNotFound, err).
			WithDetail("operation", "list_paginated")
	}

	sets := make([]question.Set, 0, len(rows))
	for _, row := range rows {
		set, err := row.ToDomain()
		if err != nil {
			logx.Errorf("Failed to convert question set %s: %v", row.ID, err)
			continue
		}
		sets = append(sets, *set)
	}

	page := kernel.NewPaginated(sets, pagination.Page, pagination.PageSize, total)
	return &page, nil
}
