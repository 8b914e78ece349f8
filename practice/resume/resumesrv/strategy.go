package resumesrv

import (
	"context"
	"errors"
	"strings"

	"github.com/interview-ace/ace/internal/ai/llmparser"
	"github.com/interview-ace/ace/internal/ml/infer"
	"github.com/interview-ace/ace/practice/resume"
)

// DefaultConfidenceThreshold gates the local model's output. Preserved from
// the original tuning; override via config.
const DefaultConfidenceThreshold = 0.7

// Predictor is the local-model inference surface.
type Predictor interface {
	Predict(text string) infer.Prediction
}

// FallbackParser is the external LLM surface.
type FallbackParser interface {
	ParseResumeText(ctx context.Context, text string) (*llmparser.ResumeData, error)
}

// ParseStrategy turns raw resume text into parsed fields with a confidence
// and source. The two variants are selected once at container start.
type ParseStrategy interface {
	Parse(ctx context.Context, text string) (resume.ParsedFields, float64, resume.ParseSource, error)
}

// SelectStrategy returns the model-backed variant when a predictor is
// available, otherwise the fallback-only variant. A missing model is treated
// exactly like sub-threshold confidence: every request goes to the fallback.
func SelectStrategy(predictor Predictor, fallback FallbackParser, threshold float64) ParseStrategy {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	if predictor == nil {
		return &fallbackOnly{fallback: fallback}
	}
	return &modelBacked{
		predictor: predictor,
		fallback:  fallback,
		threshold: threshold,
	}
}

type modelBacked struct {
	predictor Predictor
	fallback  FallbackParser
	threshold float64
}

func (s *modelBacked) Parse(ctx context.Context, text string) (resume.ParsedFields, float64, resume.ParseSource, error) {
	pred := s.predictor.Predict(text)
	if pred.Confidence >= s.threshold {
		skills := pred.Skills
		if skills == nil {
			skills = []string{}
		}
		return resume.ParsedFields{
			Skills:            skills,
			Score:             pred.Score,
			ExperienceSummary: pred.ExperienceSummary,
			EducationLevel:    pred.EducationLevel,
		}, pred.Confidence, resume.SourceModel, nil
	}
	return parseWithFallback(ctx, s.fallback, text)
}

type fallbackOnly struct {
	fallback FallbackParser
}

func (s *fallbackOnly) Parse(ctx context.Context, text string) (resume.ParsedFields, float64, resume.ParseSource, error) {
	return parseWithFallback(ctx, s.fallback, text)
}

// parseWithFallback shapes the LLM output into the same contract the model
// path produces. A fallback failure propagates; silent empty success is not
// acceptable at this boundary.
func parseWithFallback(ctx context.Context, fallback FallbackParser, text string) (resume.ParsedFields, float64, resume.ParseSource, error) {
	if fallback == nil {
		return resume.ParsedFields{}, 0, resume.SourceLLM, errors.New("no fallback parser configured")
	}
	data, err := fallback.ParseResumeText(ctx, text)
	if err != nil {
		return resume.ParsedFields{}, 0, resume.SourceLLM, err
	}

	skills := data.Skills
	if skills == nil {
		skills = []string{}
	}
	return resume.ParsedFields{
		Skills:            skills,
		Score:             scoreFromLLMData(data),
		ExperienceSummary: data.ExperienceSummary(),
		EducationLevel:    educationFromLLMData(data),
	}, llmparser.FallbackConfidence, resume.SourceLLM, nil
}

// scoreFromLLMData derives a quality score for LLM parses, which carry no
// model regression output. Same capped sub-score structure as the offline
// scorer, computed over the fields the LLM returns.
func scoreFromLLMData(data *llmparser.ResumeData) int {
	score := 0

	switch n := len(data.Skills); {
	case n >= 15:
		score += 25
	case n >= 10:
		score += 20
	case n >= 7:
		score += 15
	case n >= 5:
		score += 10
	case n >= 3:
		score += 5
	}

	switch n := len(data.Experience); {
	case n >= 4:
		score += 30
	case n >= 2:
		score += 20
	case n >= 1:
		score += 10
	}

	if len(data.Projects) > 0 {
		score += 15
	}
	if data.Summary != "" {
		score += 10
	}
	if data.PersonalInfo.Email != "" {
		score += 10
	}
	if len(data.Certifications) > 0 {
		score += 5
	}
	if len(data.Education) > 0 {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

func educationFromLLMData(data *llmparser.ResumeData) string {
	best := "Unknown"
	bestRank := 0
	for _, edu := range data.Education {
		lower := strings.ToLower(edu.Degree)
		rank := 0
		label := ""
		switch {
		case strings.Contains(lower, "phd") || strings.Contains(lower, "doctor"):
			rank, label = 4, "PhD"
		case strings.Contains(lower, "master") || strings.Contains(lower, "m.s") || strings.Contains(lower, "msc"):
			rank, label = 3, "Master"
		case strings.Contains(lower, "bachelor") || strings.Contains(lower, "b.s") || strings.Contains(lower, "b.e") || strings.Contains(lower, "b.tech"):
			rank, label = 2, "Bachelor"
		case strings.Contains(lower, "diploma"):
			rank, label = 1, "Diploma"
		}
		if rank > bestRank {
			bestRank = rank
			best = label
		}
	}
	return best
}
