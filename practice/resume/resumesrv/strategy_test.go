package resumesrv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interview-ace/ace/internal/ai/llmparser"
	"github.com/interview-ace/ace/internal/ml/infer"
	"github.com/interview-ace/ace/practice/resume"
)

type stubPredictor struct {
	prediction infer.Prediction
}

func (s *stubPredictor) Predict(string) infer.Prediction {
	return s.prediction
}

type stubFallback struct {
	data  *llmparser.ResumeData
	err   error
	calls int
}

func (s *stubFallback) ParseResumeText(context.Context, string) (*llmparser.ResumeData, error) {
	s.calls++
	return s.data, s.err
}

func confidentPrediction() infer.Prediction {
	return infer.Prediction{
		Skills:            []string{"Go", "Redis"},
		Score:             82,
		ExperienceSummary: "Senior Engineer at Acme",
		EducationLevel:    "Master",
		Confidence:        0.91,
	}
}

func llmData() *llmparser.ResumeData {
	return &llmparser.ResumeData{
		PersonalInfo: llmparser.PersonalInfo{Name: "Asha Patel", Email: "asha@example.com"},
		Summary:      "Backend engineer.",
		Skills:       []string{"Go", "Kafka", "Postgres"},
		Experience: []llmparser.Experience{
			{Title: "Engineer", Company: "Globex", Duration: "2 years"},
		},
		Education: []llmparser.Education{
			{Degree: "Bachelor of Science", Institution: "State University"},
		},
	}
}

func TestModelBackedAcceptsConfidentPrediction(t *testing.T) {
	fallback := &stubFallback{data: llmData()}
	strategy := SelectStrategy(&stubPredictor{prediction: confidentPrediction()}, fallback, 0.7)

	fields, confidence, source, err := strategy.Parse(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, resume.SourceModel, source)
	assert.Equal(t, []string{"Go", "Redis"}, fields.Skills)
	assert.Equal(t, 82, fields.Score)
	assert.InDelta(t, 0.91, confidence, 1e-9)
	assert.Zero(t, fallback.calls, "fallback must not be called for confident predictions")
}

func TestModelBackedFallsBackBelowThreshold(t *testing.T) {
	lowConfidence := confidentPrediction()
	lowConfidence.Confidence = 0.42
	fallback := &stubFallback{data: llmData()}
	strategy := SelectStrategy(&stubPredictor{prediction: lowConfidence}, fallback, 0.7)

	fields, confidence, source, err := strategy.Parse(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, resume.SourceLLM, source)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, []string{"Go", "Kafka", "Postgres"}, fields.Skills)
	assert.Equal(t, "Engineer at Globex", fields.ExperienceSummary)
	assert.Equal(t, "Bachelor", fields.EducationLevel)
	assert.InDelta(t, llmparser.FallbackConfidence, confidence, 1e-9)
}

func TestMissingModelBehavesLikeLowConfidence(t *testing.T) {
	fallback := &stubFallback{data: llmData()}
	strategy := SelectStrategy(nil, fallback, 0.7)

	_, _, source, err := strategy.Parse(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, resume.SourceLLM, source)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackFailurePropagates(t *testing.T) {
	fallback := &stubFallback{err: errors.New("api unavailable")}
	strategy := SelectStrategy(nil, fallback, 0.7)

	_, _, _, err := strategy.Parse(context.Background(), "some resume text")
	assert.Error(t, err)
}

func TestScoreFromLLMDataBounds(t *testing.T) {
	assert.Equal(t, 0, scoreFromLLMData(&llmparser.ResumeData{}))

	rich := llmData()
	for i := 0; i < 20; i++ {
		rich.Skills = append(rich.Skills, "skill")
		rich.Experience = append(rich.Experience, llmparser.Experience{Title: "T", Company: "C"})
	}
	rich.Projects = []llmparser.Project{{Name: "P"}}
	rich.Certifications = []string{"AWS SAA"}

	score := scoreFromLLMData(rich)
	assert.LessOrEqual(t, score, 100)
	assert.Greater(t, score, 50)
}

func TestEducationFromLLMDataPicksHighest(t *testing.T) {
	data := &llmparser.ResumeData{Education: []llmparser.Education{
		{Degree: "Diploma in Electronics"},
		{Degree: "PhD in Computer Science"},
		{Degree: "Master of Science"},
	}}

	assert.Equal(t, "PhD", educationFromLLMData(data))
}
