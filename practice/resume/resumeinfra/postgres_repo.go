package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) resume.Repository {
	return &PostgresRepository{db: db}
}

// resultRow represents a row from the parse_results table. Skills are
// stored as JSONB.
type resultRow struct {
	ID                string    `db:"id"`
	FileName          string    `db:"file_name"`
	FilePath          string    `db:"file_path"`
	FileType          string    `db:"file_type"`
	Skills            []byte    `db:"skills"`
	Score             int       `db:"score"`
	ExperienceSummary string    `db:"experience_summary"`
	EducationLevel    string    `db:"education_level"`
	Confidence        float64   `db:"confidence"`
	Source            string    `db:"source"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r *resultRow) ToDomain() (*resume.ParseResult, error) {
	result := &resume.ParseResult{
		ID:                kernel.ResumeID(r.ID),
		FileName:          r.FileName,
		FilePath:          r.FilePath,
		FileType:          r.FileType,
		Score:             r.Score,
		ExperienceSummary: r.ExperienceSummary,
		EducationLevel:    r.EducationLevel,
		Confidence:        r.Confidence,
		Source:            resume.ParseSource(r.Source),
		CreatedAt:         r.CreatedAt,
	}

	if err := json.Unmarshal(r.Skills, &result.Skills); err != nil {
		return nil, resume.ErrInvalidData().
			WithDetail("field", "skills").
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	return result, nil
}

// Create persists a new parse result
func (r *PostgresRepository) Create(ctx context.Context, result *resume.ParseResult) error {
	query := `
		INSERT INTO parse_results (
			id, file_name, file_path, file_type,
			skills, score, experience_summary, education_level,
			confidence, source, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11
		)`

	skills, err := json.Marshal(result.Skills)
	if err != nil {
		return resume.ErrInvalidData().
			WithDetail("field", "skills").
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	_, err = r.db.ExecContext(ctx, query,
		result.ID.String(), result.FileName, result.FilePath, result.FileType,
		skills, result.Score, result.ExperienceSummary, result.EducationLevel,
		result.Confidence, string(result.Source), result.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return resume.ErrInvalidData().
				WithDetail("result_id", result.ID).
				WithDetail("reason", "duplicate id")
		}
		return resume.ErrRegistry.NewWithCause(resume.CodeParseFailed, err).
			WithDetail("operation", "create")
	}

	logx.Infof("Stored parse result: %s (source=%s, score=%d)", result.ID, result.Source, result.Score)
	return nil
}

// GetByID retrieves a parse result by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.ParseResult, error) {
	query := `
		SELECT
			id, file_name, file_path, file_type,
			skills, score, experience_summary, education_level,
			confidence, source, created_at
		FROM parse_results
		WHERE id = $1`

	row := &resultRow{}
	err := r.db.GetContext(ctx, row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, resume.ErrResultNotFound().
				WithDetail("result_id", id)
		}
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeResultNotFound, err).
			WithDetail("result_id", id).
			WithDetail("operation", "get")
	}

	return row.ToDomain()
}

// List retrieves parse results with pagination, newest first
func (r *PostgresRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParseResult], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM parse_results`); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeResultNotFound, err).
			WithDetail("operation", "count_all")
	}

	query := `
		SELECT
			id, file_name, file_path, file_type,
			skills, score, experience_summary, education_level,
			confidence, source, created_at
		FROM parse_results
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows := []resultRow{}
	err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeResultNotFound, err).
			WithDetail("operation", "list_paginated").
			WithDetails(map[string]any{
				"page":      pagination.Page,
				"page_size": pagination.PageSize,
			})
	}

	results := make([]resume.ParseResult, 0, len(rows))
	for _, row := range rows {
		result, err := row.ToDomain()
		if err != nil {
			logx.Errorf("Failed to convert parse result %s: %v", row.ID, err)
			continue
		}
		results = append(results, *result)
	}

	page := kernel.NewPaginated(results, pagination.Page, pagination.PageSize, total)
	return &page, nil
}

// Delete removes a parse result
func (r *PostgresRepository) Delete(ctx context.Context, id kernel.ResumeID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parse_results WHERE id = $1`, id.String())
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeParseFailed, err).
			WithDetail("result_id", id).
			WithDetail("operation", "delete")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeParseFailed, err).
			WithDetail("operation", "delete_rows_affected")
	}

	if rows == 0 {
		return resume.ErrResultNotFound().
			WithDetail("result_id", id)
	}

	logx.Infof("Deleted parse result: %s", id)
	return nil
}
