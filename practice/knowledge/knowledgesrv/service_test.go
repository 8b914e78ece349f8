package knowledgesrv

import (
	"context"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/interview-ace/ace/internal/ai/embeddings"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo ranks by cosine similarity over stored embeddings, the same
// ordering contract as the pgvector query.
type memRepo struct {
	mu         sync.Mutex
	docs       []knowledge.Document
	embeddings [][]float32
}

func (r *memRepo) Create(_ context.Context, doc *knowledge.Document, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *doc)
	r.embeddings = append(r.embeddings, embedding)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id kernel.DocumentID) (*knowledge.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			return &r.docs[i], nil
		}
	}
	return nil, knowledge.ErrNotFound()
}

func (r *memRepo) Delete(_ context.Context, id kernel.DocumentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			r.embeddings = append(r.embeddings[:i], r.embeddings[i+1:]...)
			return nil
		}
	}
	return knowledge.ErrNotFound()
}

func (r *memRepo) Search(_ context.Context, embedding []float32, limit int) ([]knowledge.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]knowledge.Match, 0, len(r.docs))
	for i := range r.docs {
		matches = append(matches, knowledge.Match{
			Document:   r.docs[i],
			Similarity: cosine(embedding, r.embeddings[i]),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	return NewService(repo, embeddings.NewLocalHash()), repo
}

func ingest(t *testing.T, svc *Service, title, role, text string) string {
	t.Helper()
	resp, err := svc.Ingest(context.Background(), knowledge.IngestRequest{
		Title: title,
		Role:  role,
		Text:  text,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	return resp.DocumentID
}

func TestIngestAndGet(t *testing.T) {
	svc, _ := newTestService(t)

	id := ingest(t, svc, "SQL indexing", "Data Engineer", "B-tree indexes speed up range scans.")

	doc, err := svc.GetDocument(context.Background(), kernel.DocumentID(id))
	require.NoError(t, err)
	assert.Equal(t, "SQL indexing", doc.Title)
	assert.Equal(t, "Data Engineer", doc.Role)
}

func TestIngestRejectsEmptyText(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Ingest(context.Background(), knowledge.IngestRequest{Title: "empty"})
	require.Error(t, err)
}

func TestSearchReturnsMostSimilarFirst(t *testing.T) {
	svc, _ := newTestService(t)

	ingest(t, svc, "Go concurrency", "Backend Engineer", "Goroutines, channels and the select statement for concurrent programs.")
	ingest(t, svc, "CSS layout", "Frontend Engineer", "Flexbox and grid control page layout and alignment.")

	resp, err := svc.Search(context.Background(), knowledge.SearchRequest{
		Query: "Goroutines, channels and the select statement for concurrent programs.",
		TopK:  2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Go concurrency", resp.Results[0].Title)
	assert.Greater(t, resp.Results[0].Similarity, resp.Results[1].Similarity)
	// An identical query embeds identically, so the top similarity is 1.
	assert.InDelta(t, 1.0, resp.Results[0].Similarity, 1e-9)
}

func TestSearchRoleHintBoostsMatchingRole(t *testing.T) {
	svc, repo := newTestService(t)

	// Two documents with identical text so their base similarity ties; the
	// role hint must break the tie.
	sharedText := "Explain the trade-offs of caching strategies."
	ingest(t, svc, "Caching A", "Backend Engineer", sharedText)
	ingest(t, svc, "Caching B", "Site Reliability Engineer", sharedText)
	require.Len(t, repo.docs, 2)

	resp, err := svc.Search(context.Background(), knowledge.SearchRequest{
		Query:    sharedText,
		TopK:     1,
		RoleHint: "reliability",
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Caching B", resp.Results[0].Title)
}

func TestSearchTruncatesToTopK(t *testing.T) {
	svc, _ := newTestService(t)

	ingest(t, svc, "A", "", "alpha document text one")
	ingest(t, svc, "B", "", "bravo document text two")
	ingest(t, svc, "C", "", "charlie document text three")

	resp, err := svc.Search(context.Background(), knowledge.SearchRequest{Query: "document text", TopK: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.Count)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Search(context.Background(), knowledge.SearchRequest{TopK: 3})
	require.Error(t, err)
}

func TestDeleteDocument(t *testing.T) {
	svc, _ := newTestService(t)

	id := ingest(t, svc, "temp", "", "temporary document body")
	require.NoError(t, svc.DeleteDocument(context.Background(), kernel.DocumentID(id)))

	_, err := svc.GetDocument(context.Background(), kernel.DocumentID(id))
	require.Error(t, err)
}
