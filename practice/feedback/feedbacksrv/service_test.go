package feedbacksrv

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu          sync.Mutex
	evaluations map[string]*feedback.Evaluation
}

func newMemRepo() *memRepo {
	return &memRepo{evaluations: make(map[string]*feedback.Evaluation)}
}

func (r *memRepo) Create(_ context.Context, evaluation *feedback.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluations[evaluation.ID.String()] = evaluation
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id kernel.FeedbackID) (*feedback.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evaluation, ok := r.evaluations[id.String()]
	if !ok {
		return nil, feedback.ErrNotFound()
	}
	return evaluation, nil
}

func (r *memRepo) List(_ context.Context, p kernel.PaginationOptions) (*kernel.Paginated[feedback.Evaluation], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p = p.Normalize()
	items := make([]feedback.Evaluation, 0, len(r.evaluations))
	for _, evaluation := range r.evaluations {
		items = append(items, *evaluation)
	}
	page := kernel.NewPaginated(items, p.Page, p.PageSize, len(items))
	return &page, nil
}

type stubEvaluator struct {
	calls  int
	err    error
	result *feedback.Result
}

func (e *stubEvaluator) Evaluate(_ context.Context, _ feedback.EvaluateRequest) (*feedback.Result, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

func validRequest() feedback.EvaluateRequest {
	return feedback.EvaluateRequest{
		Question: "How does Go schedule goroutines?",
		Answer:   "Go multiplexes goroutines onto OS threads with the GMP scheduler and preempts long-running goroutines.",
		JobTitle: "Backend Engineer",
		Category: "technical",
	}
}

func TestEvaluateHappyPath(t *testing.T) {
	repo := newMemRepo()
	evaluator := &stubEvaluator{result: &feedback.Result{
		Score:       85,
		Feedback:    "Solid answer with correct terminology.",
		Suggestions: []string{"Mention work stealing."},
		Keywords:    []string{"goroutines", "scheduler"},
		Sentiment:   feedback.SentimentPositive,
		Breakdown:   feedback.Breakdown{Accuracy: 90, Completeness: 80, Clarity: 85, Relevance: 95},
		Categories:  feedback.Categories{Technical: 90, Communication: 80, ProblemSolving: 75, Confidence: 85},
	}}
	svc := NewService(repo, evaluator)

	resp, err := svc.Evaluate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 85, resp.Score)
	assert.Equal(t, feedback.SentimentPositive, resp.Sentiment)
	assert.Equal(t, 90, resp.Breakdown.Accuracy)
	assert.NotEmpty(t, resp.EvaluationID)

	stored, err := repo.GetByID(context.Background(), kernel.FeedbackID(resp.EvaluationID))
	require.NoError(t, err)
	assert.False(t, stored.FromCanned)
	assert.Equal(t, "Backend Engineer", stored.JobTitle)
}

func TestEvaluateClampsAndCoerces(t *testing.T) {
	evaluator := &stubEvaluator{result: &feedback.Result{
		Score:     140,
		Sentiment: "ecstatic",
		Breakdown: feedback.Breakdown{Accuracy: -5, Completeness: 101, Clarity: 50, Relevance: 200},
	}}
	svc := NewService(newMemRepo(), evaluator)

	resp, err := svc.Evaluate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Score)
	assert.Equal(t, feedback.SentimentNeutral, resp.Sentiment)
	assert.Equal(t, 0, resp.Breakdown.Accuracy)
	assert.Equal(t, 100, resp.Breakdown.Completeness)
	assert.Equal(t, 100, resp.Breakdown.Relevance)
}

func TestEvaluateRejectsEmptyFields(t *testing.T) {
	svc := NewService(newMemRepo(), &stubEvaluator{})

	_, err := svc.Evaluate(context.Background(), feedback.EvaluateRequest{Answer: "something"})
	require.Error(t, err)

	_, err = svc.Evaluate(context.Background(), feedback.EvaluateRequest{Question: "something"})
	require.Error(t, err)
}

func TestEvaluateFallsBackOnEvaluatorError(t *testing.T) {
	repo := newMemRepo()
	evaluator := &stubEvaluator{err: errors.New("upstream unavailable")}
	svc := NewService(repo, evaluator)

	resp, err := svc.Evaluate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Greater(t, resp.Score, 0)
	assert.True(t, feedback.ValidSentiment(resp.Sentiment))
	assert.NotEmpty(t, resp.Suggestions)

	stored, err := repo.GetByID(context.Background(), kernel.FeedbackID(resp.EvaluationID))
	require.NoError(t, err)
	assert.True(t, stored.FromCanned)
}

func TestEvaluateWithoutEvaluatorUsesHeuristic(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	resp, err := svc.Evaluate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Greater(t, resp.Score, 0)
}

func TestCannedResultScoresOverlap(t *testing.T) {
	shortOffTopic := cannedResult(feedback.EvaluateRequest{
		Question: "Explain database indexing strategies.",
		Answer:   "I am not sure.",
	})
	onTopic := cannedResult(feedback.EvaluateRequest{
		Question: "Explain database indexing strategies.",
		Answer: "Database indexing strategies trade write cost for read speed. B-tree indexing suits range " +
			"queries, hash indexing suits point lookups, and covering indexing strategies avoid table reads entirely.",
	})

	assert.Greater(t, onTopic.Score, shortOffTopic.Score)
	assert.Contains(t, onTopic.Keywords, "indexing")
}
