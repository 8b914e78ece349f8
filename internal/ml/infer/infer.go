// Package infer loads a trained checkpoint and turns raw resume text into
// structured predictions with a confidence estimate.
package infer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/interview-ace/ace/internal/ml/model"
	"github.com/interview-ace/ace/internal/ml/vocab"
)

const (
	// DefaultSkillThreshold is the decision boundary for per-skill
	// membership.
	DefaultSkillThreshold = 0.5

	// Confidence blend weights. Heuristic constants carried over from the
	// original tuning; no derivation exists, so they stay configurable.
	DefaultSkillBlendWeight = 0.6
	DefaultScoreBlendWeight = 0.4
)

// Prediction is the structured output of one inference call.
type Prediction struct {
	Skills            []string `json:"skills"`
	Score             int      `json:"score"`
	ExperienceSummary string   `json:"experience_summary"`
	EducationLevel    string   `json:"education_level"`
	Confidence        float64  `json:"confidence"`
}

// Predictor wraps a restored network with its vocabularies. It is read-only
// after construction and safe for concurrent use.
type Predictor struct {
	net    *model.MultiTask
	tokens *vocab.Vocabulary
	skills *vocab.Vocabulary

	skillThreshold   float64
	skillBlendWeight float64
	scoreBlendWeight float64
}

// Option adjusts a Predictor's tunable parameters at construction.
type Option func(*Predictor)

// WithSkillThreshold overrides the per-skill decision boundary. Values
// outside (0,1) are ignored.
func WithSkillThreshold(threshold float64) Option {
	return func(p *Predictor) {
		if threshold > 0 && threshold < 1 {
			p.skillThreshold = threshold
		}
	}
}

// WithBlendWeights overrides the skill/score confidence blend. Non-positive
// weights are ignored; callers should keep the pair summing to 1 so
// confidence stays on the [0,1] scale.
func WithBlendWeights(skillWeight, scoreWeight float64) Option {
	return func(p *Predictor) {
		if skillWeight > 0 && scoreWeight > 0 {
			p.skillBlendWeight = skillWeight
			p.scoreBlendWeight = scoreWeight
		}
	}
}

// Load reads a checkpoint file and builds a Predictor from it.
func Load(path string, opts ...Option) (*Predictor, error) {
	ck, err := model.LoadCheckpoint(path)
	if err != nil {
		return nil, err
	}
	return FromCheckpoint(ck, opts...)
}

// FromCheckpoint builds a Predictor from an in-memory checkpoint.
func FromCheckpoint(ck *model.Checkpoint, opts ...Option) (*Predictor, error) {
	if len(ck.Tokens) != ck.InputDim {
		return nil, fmt.Errorf("checkpoint token list has %d entries, input dim is %d", len(ck.Tokens), ck.InputDim)
	}
	if len(ck.Skills) != ck.SkillDim {
		return nil, fmt.Errorf("checkpoint skill list has %d entries, skill dim is %d", len(ck.Skills), ck.SkillDim)
	}
	net, err := model.Restore(ck)
	if err != nil {
		return nil, err
	}
	p := &Predictor{
		net:              net,
		tokens:           vocab.New(ck.Tokens),
		skills:           vocab.New(ck.Skills),
		skillThreshold:   DefaultSkillThreshold,
		skillBlendWeight: DefaultSkillBlendWeight,
		scoreBlendWeight: DefaultScoreBlendWeight,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Predict runs one forward pass over text. It is a pure function of its
// input and the loaded checkpoint.
func (p *Predictor) Predict(text string) Prediction {
	x := mat.NewDense(1, p.tokens.Size(), p.tokens.Vectorize(text))
	logits, scoreOut, _ := p.net.Forward(x, false, nil)
	probs := model.Sigmoid(logits)

	var skills []string
	probRow := make([]float64, p.skills.Size())
	for j := 0; j < p.skills.Size(); j++ {
		probRow[j] = probs.At(0, j)
		if probRow[j] >= p.skillThreshold {
			skills = append(skills, p.skills.Entries[j])
		}
	}

	score := clampScore(scoreOut.At(0, 0) * 100)

	return Prediction{
		Skills:            skills,
		Score:             score,
		ExperienceSummary: summaryFromText(text),
		EducationLevel:    educationFromText(text),
		Confidence:        p.confidence(probRow, score),
	}
}

// confidence blends how decisively the skill probabilities sit away from the
// 0.5 boundary with how far the score lies from the uninformative midpoint.
func (p *Predictor) confidence(probs []float64, score int) float64 {
	skillConf := 0.0
	if len(probs) > 0 {
		for _, prob := range probs {
			skillConf += math.Abs(prob-0.5) * 2
		}
		skillConf /= float64(len(probs))
	}
	scoreConf := math.Abs(float64(score)-50) / 50
	return p.skillBlendWeight*skillConf + p.scoreBlendWeight*scoreConf
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
