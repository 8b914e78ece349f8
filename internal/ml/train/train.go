// Package train runs the multi-task training loop and checkpoint selection.
package train

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/interview-ace/ace/internal/ml/dataset"
	"github.com/interview-ace/ace/internal/ml/model"
	"github.com/interview-ace/ace/internal/ml/vocab"
	"github.com/interview-ace/ace/pkg/logx"
)

const (
	// scoreScale maps stored scores in [0,100] onto the regression target
	// range [0,1].
	scoreScale = 100.0

	skillLossWeight = 0.7
	scoreLossWeight = 0.3
)

// Config controls one training run.
type Config struct {
	Epochs         int
	BatchSize      int
	ValBatchSize   int
	LearningRate   float64
	Seed           int64
	CheckpointPath string
}

// DefaultConfig returns the hyperparameters the shipped checkpoint was
// trained with.
func DefaultConfig(checkpointPath string) Config {
	return Config{
		Epochs:         10,
		BatchSize:      32,
		ValBatchSize:   64,
		LearningRate:   3e-4,
		Seed:           42,
		CheckpointPath: checkpointPath,
	}
}

// Result summarizes a finished run.
type Result struct {
	BestEpoch   int
	BestValLoss float64
	ScoreMAE    float64
	Saved       bool
}

// Run trains a fresh network on the shards and persists a checkpoint whenever
// validation loss improves on the best value seen so far. Lower validation
// loss is the sole selection criterion.
func Run(cfg Config, trainSet, valSet []dataset.Example, tokens, skills *vocab.Vocabulary) (*Result, error) {
	if len(trainSet) == 0 {
		return nil, fmt.Errorf("empty training shard")
	}
	if skills.Size() == 0 {
		return nil, fmt.Errorf("empty skill vocabulary")
	}

	net := model.New(model.Config{
		InputDim: tokens.Size(),
		SkillDim: skills.Size(),
	}, cfg.Seed)
	opt := newAdam(cfg.LearningRate)
	rng := rand.New(rand.NewSource(cfg.Seed))

	result := &Result{BestValLoss: math.Inf(1)}

	order := make([]int, len(trainSet))
	for i := range order {
		order[i] = i
	}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		trainLoss := 0.0
		batches := 0
		for start := 0; start < len(order); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(order) {
				end = len(order)
			}
			x, y, scores := materialize(trainSet, order[start:end], tokens, skills)

			logits, scoreOut, cache := net.Forward(x, true, rng)
			loss, dSkill, dScore := lossAndGrads(logits, scoreOut, y, scores)
			net.Backward(cache, dSkill, dScore)
			opt.step(net.Params())

			trainLoss += loss
			batches++
		}
		trainLoss /= float64(batches)

		valLoss, mae := evaluate(net, valSet, cfg.ValBatchSize, tokens, skills)
		logx.Infof("train: epoch %d/%d train_loss=%.4f val_loss=%.4f score_mae=%.2f",
			epoch, cfg.Epochs, trainLoss, valLoss, mae)

		if valLoss < result.BestValLoss {
			result.BestValLoss = valLoss
			result.BestEpoch = epoch
			result.ScoreMAE = mae

			ck := net.Snapshot(tokens.Entries, skills.Entries, epoch, valLoss, mae)
			if err := model.SaveCheckpoint(cfg.CheckpointPath, ck); err != nil {
				return nil, fmt.Errorf("save checkpoint: %w", err)
			}
			result.Saved = true
			logx.Infof("train: checkpoint saved at epoch %d (val_loss=%.4f)", epoch, valLoss)
		}
	}
	return result, nil
}

// materialize builds the dense input, label and score matrices for the
// examples selected by idx.
func materialize(examples []dataset.Example, idx []int, tokens, skills *vocab.Vocabulary) (x, y, scores *mat.Dense) {
	b := len(idx)
	x = mat.NewDense(b, tokens.Size(), nil)
	y = mat.NewDense(b, skills.Size(), nil)
	scores = mat.NewDense(b, 1, nil)
	for row, i := range idx {
		ex := examples[i]
		x.SetRow(row, tokens.Vectorize(ex.Text))
		y.SetRow(row, skills.Targets(ex.Skills))
		scores.Set(row, 0, float64(ex.Score)/scoreScale)
	}
	return x, y, scores
}

// lossAndGrads computes the combined loss and the gradients with respect to
// both head outputs. Skill loss is mean binary cross-entropy over every
// (example, skill) cell; score loss is mean squared error on the scaled
// score.
func lossAndGrads(logits, scoreOut, y, scores *mat.Dense) (float64, *mat.Dense, *mat.Dense) {
	b, s := logits.Dims()
	n := float64(b * s)

	bce := 0.0
	dSkill := mat.NewDense(b, s, nil)
	for i := 0; i < b; i++ {
		for j := 0; j < s; j++ {
			z := logits.At(i, j)
			t := y.At(i, j)
			// Numerically stable BCE with logits.
			bce += math.Max(z, 0) - z*t + math.Log1p(math.Exp(-math.Abs(z)))
			p := 1 / (1 + math.Exp(-z))
			dSkill.Set(i, j, skillLossWeight*(p-t)/n)
		}
	}
	bce /= n

	mse := 0.0
	dScore := mat.NewDense(b, 1, nil)
	for i := 0; i < b; i++ {
		diff := scoreOut.At(i, 0) - scores.At(i, 0)
		mse += diff * diff
		dScore.Set(i, 0, scoreLossWeight*2*diff/float64(b))
	}
	mse /= float64(b)

	return skillLossWeight*bce + scoreLossWeight*mse, dSkill, dScore
}

// evaluate computes validation loss and the score MAE on the original 0-100
// scale, iterating batches in source order without dropout.
func evaluate(net *model.MultiTask, valSet []dataset.Example, batchSize int, tokens, skills *vocab.Vocabulary) (float64, float64) {
	if len(valSet) == 0 {
		return 0, 0
	}

	idx := make([]int, len(valSet))
	for i := range idx {
		idx[i] = i
	}

	totalLoss := 0.0
	totalAbsErr := 0.0
	for start := 0; start < len(idx); start += batchSize {
		end := start + batchSize
		if end > len(idx) {
			end = len(idx)
		}
		batch := idx[start:end]
		x, y, scores := materialize(valSet, batch, tokens, skills)

		logits, scoreOut, _ := net.Forward(x, false, nil)
		loss, _, _ := lossAndGrads(logits, scoreOut, y, scores)
		totalLoss += loss * float64(len(batch))

		for i := range batch {
			pred := scoreOut.At(i, 0) * scoreScale
			actual := scores.At(i, 0) * scoreScale
			totalAbsErr += math.Abs(pred - actual)
		}
	}
	n := float64(len(valSet))
	return totalLoss / n, totalAbsErr / n
}
