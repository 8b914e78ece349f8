package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Tensor is a flattened row-major parameter with its shape.
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// Checkpoint bundles trained parameters with the exact vocabularies needed to
// reproduce training-time vectorization at inference.
type Checkpoint struct {
	InputDim int               `json:"input_dim"`
	Hidden1  int               `json:"hidden1"`
	Hidden2  int               `json:"hidden2"`
	SkillDim int               `json:"skill_dim"`
	Tokens   []string          `json:"tokens"`
	Skills   []string          `json:"skills"`
	Weights  map[string]Tensor `json:"weights"`
	Epoch    int               `json:"epoch"`
	ValLoss  float64           `json:"val_loss"`
	ScoreMAE float64           `json:"score_mae"`
	SavedAt  time.Time         `json:"saved_at"`
}

// Snapshot captures the network parameters into a checkpoint. Tokens and
// skills are the ordered vocabulary entries; order is the index assignment.
func (m *MultiTask) Snapshot(tokens, skills []string, epoch int, valLoss, scoreMAE float64) *Checkpoint {
	weights := make(map[string]Tensor, 8)
	put := func(name string, rows, cols int, data []float64) {
		weights[name] = Tensor{Shape: []int{rows, cols}, Data: append([]float64(nil), data...)}
	}

	put("enc1.w", m.cfg.InputDim, m.cfg.Hidden1, m.enc1.w.RawMatrix().Data)
	put("enc1.b", 1, m.cfg.Hidden1, m.enc1.b)
	put("enc2.w", m.cfg.Hidden1, m.cfg.Hidden2, m.enc2.w.RawMatrix().Data)
	put("enc2.b", 1, m.cfg.Hidden2, m.enc2.b)
	put("skill.w", m.cfg.Hidden2, m.cfg.SkillDim, m.skill.w.RawMatrix().Data)
	put("skill.b", 1, m.cfg.SkillDim, m.skill.b)
	put("score.w", m.cfg.Hidden2, 1, m.score.w.RawMatrix().Data)
	put("score.b", 1, 1, m.score.b)

	return &Checkpoint{
		InputDim: m.cfg.InputDim,
		Hidden1:  m.cfg.Hidden1,
		Hidden2:  m.cfg.Hidden2,
		SkillDim: m.cfg.SkillDim,
		Tokens:   tokens,
		Skills:   skills,
		Weights:  weights,
		Epoch:    epoch,
		ValLoss:  valLoss,
		ScoreMAE: scoreMAE,
		SavedAt:  time.Now().UTC(),
	}
}

// Restore rebuilds a network from checkpoint parameters.
func Restore(ck *Checkpoint) (*MultiTask, error) {
	cfg := Config{
		InputDim: ck.InputDim,
		Hidden1:  ck.Hidden1,
		Hidden2:  ck.Hidden2,
		SkillDim: ck.SkillDim,
		Dropout:  DefaultDropout,
	}
	m := New(cfg, 0)

	load := func(name string, rows, cols int, dst []float64) error {
		t, ok := ck.Weights[name]
		if !ok {
			return fmt.Errorf("checkpoint missing tensor %q", name)
		}
		if len(t.Shape) != 2 || t.Shape[0] != rows || t.Shape[1] != cols {
			return fmt.Errorf("tensor %q has shape %v, want [%d %d]", name, t.Shape, rows, cols)
		}
		if len(t.Data) != rows*cols {
			return fmt.Errorf("tensor %q has %d values, want %d", name, len(t.Data), rows*cols)
		}
		copy(dst, t.Data)
		return nil
	}

	steps := []struct {
		name       string
		rows, cols int
		dst        []float64
	}{
		{"enc1.w", cfg.InputDim, cfg.Hidden1, m.enc1.w.RawMatrix().Data},
		{"enc1.b", 1, cfg.Hidden1, m.enc1.b},
		{"enc2.w", cfg.Hidden1, cfg.Hidden2, m.enc2.w.RawMatrix().Data},
		{"enc2.b", 1, cfg.Hidden2, m.enc2.b},
		{"skill.w", cfg.Hidden2, cfg.SkillDim, m.skill.w.RawMatrix().Data},
		{"skill.b", 1, cfg.SkillDim, m.skill.b},
		{"score.w", cfg.Hidden2, 1, m.score.w.RawMatrix().Data},
		{"score.b", 1, 1, m.score.b},
	}
	for _, s := range steps {
		if err := load(s.name, s.rows, s.cols, s.dst); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SaveCheckpoint writes the checkpoint as JSON.
func SaveCheckpoint(path string, ck *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(ck); err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	return f.Close()
}

// LoadCheckpoint reads a checkpoint from disk.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	var ck Checkpoint
	if err := json.Unmarshal(data, &ck); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	if ck.InputDim <= 0 || ck.SkillDim <= 0 {
		return nil, fmt.Errorf("checkpoint has invalid dimensions %dx%d", ck.InputDim, ck.SkillDim)
	}
	return &ck, nil
}
