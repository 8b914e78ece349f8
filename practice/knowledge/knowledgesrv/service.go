package knowledgesrv

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/interview-ace/ace/internal/ai/embeddings"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/knowledge"
	"github.com/google/uuid"
)

// candidateMultiplier controls how many candidates the vector search
// over-fetches so the role boost can reorder them before truncation.
const candidateMultiplier = 4

type Service struct {
	repo     knowledge.Repository
	embedder embeddings.Embedder
}

func NewService(repo knowledge.Repository, embedder embeddings.Embedder) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
	}
}

// Ingest embeds and stores one document.
func (s *Service) Ingest(ctx context.Context, req knowledge.IngestRequest) (*knowledge.IngestResponse, error) {
	if req.Text == "" {
		return nil, knowledge.ErrInvalidRequest().
			WithDetail("field", "text")
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, knowledge.EmbedText(req.Text))
	if err != nil {
		return nil, knowledge.ErrRegistry.NewWithCause(knowledge.CodeEmbedFailed, err).
			WithDetail("operation", "ingest")
	}

	doc := &knowledge.Document{
		ID:        kernel.DocumentID(uuid.NewString()),
		Title:     req.Title,
		Role:      req.Role,
		Text:      req.Text,
		Tags:      req.Tags,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, doc, embedding); err != nil {
		return nil, err
	}

	logx.Infof("Ingested knowledge document: %s (%s)", doc.ID, doc.Title)
	return &knowledge.IngestResponse{
		Success:    true,
		DocumentID: doc.ID.String(),
	}, nil
}

// Search embeds the query and returns the top_k most similar documents.
// Documents whose role contains the role hint get a fixed similarity boost
// before the final ranking.
func (s *Service) Search(ctx context.Context, req knowledge.SearchRequest) (*knowledge.SearchResponse, error) {
	if req.Query == "" {
		return nil, knowledge.ErrInvalidRequest().
			WithDetail("field", "query")
	}
	req = req.Normalize()

	embedding, err := s.embedder.GenerateEmbedding(ctx, knowledge.EmbedText(req.Query))
	if err != nil {
		return nil, knowledge.ErrRegistry.NewWithCause(knowledge.CodeEmbedFailed, err).
			WithDetail("operation", "search")
	}

	limit := req.TopK * candidateMultiplier
	if limit < 20 {
		limit = 20
	}

	matches, err := s.repo.Search(ctx, embedding, limit)
	if err != nil {
		return nil, err
	}

	if req.RoleHint != "" {
		for i := range matches {
			if matches[i].Document.MatchesRole(req.RoleHint) {
				matches[i].Similarity += knowledge.RoleBoost
			}
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Similarity > matches[j].Similarity
		})
	}

	if len(matches) > req.TopK {
		matches = matches[:req.TopK]
	}

	results := make([]knowledge.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, knowledge.SearchResult{
			ID:         m.Document.ID.String(),
			Title:      m.Document.Title,
			Role:       m.Document.Role,
			Text:       m.Document.Text,
			Tags:       m.Document.Tags,
			Similarity: math.Round(m.Similarity*10000) / 10000,
		})
	}

	return &knowledge.SearchResponse{
		Success: true,
		Results: results,
		Count:   len(results),
	}, nil
}

// GetDocument retrieves a stored document.
func (s *Service) GetDocument(ctx context.Context, id kernel.DocumentID) (*knowledge.Document, error) {
	if id.IsEmpty() {
		return nil, knowledge.ErrInvalidRequest().
			WithDetail("field", "document_id")
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteDocument removes a stored document.
func (s *Service) DeleteDocument(ctx context.Context, id kernel.DocumentID) error {
	if id.IsEmpty() {
		return knowledge.ErrInvalidRequest().
			WithDetail("field", "document_id")
	}
	return s.repo.Delete(ctx, id)
}
