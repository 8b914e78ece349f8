// Package model implements the multi-task feed-forward network that predicts
// skill labels and a quality score from a bag-of-words resume vector.
package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Architecture defaults. Hidden sizes are fixed by the checkpoint format.
const (
	DefaultHidden1 = 256
	DefaultHidden2 = 128
	DefaultDropout = 0.2
)

// Config fixes the network dimensions.
type Config struct {
	InputDim int
	Hidden1  int
	Hidden2  int
	SkillDim int
	Dropout  float64
}

func (c Config) withDefaults() Config {
	if c.Hidden1 == 0 {
		c.Hidden1 = DefaultHidden1
	}
	if c.Hidden2 == 0 {
		c.Hidden2 = DefaultHidden2
	}
	if c.Dropout == 0 {
		c.Dropout = DefaultDropout
	}
	return c
}

// linear is a fully connected layer storing its weights and the gradients of
// the last backward pass.
type linear struct {
	w  *mat.Dense // in x out
	b  []float64
	dw *mat.Dense
	db []float64
}

func newLinear(in, out int, rng *rand.Rand) *linear {
	// He initialization suits the ReLU activations downstream.
	scale := math.Sqrt(2 / float64(in))
	data := make([]float64, in*out)
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}
	return &linear{
		w:  mat.NewDense(in, out, data),
		b:  make([]float64, out),
		dw: mat.NewDense(in, out, nil),
		db: make([]float64, out),
	}
}

// forward computes x*w + b for a batch of rows.
func (l *linear) forward(x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	_, out := l.w.Dims()
	y := mat.NewDense(rows, out, nil)
	y.Mul(x, l.w)
	for i := 0; i < rows; i++ {
		for j := 0; j < out; j++ {
			y.Set(i, j, y.At(i, j)+l.b[j])
		}
	}
	return y
}

// backward accumulates weight gradients and returns the gradient with
// respect to the layer input.
func (l *linear) backward(x, dout *mat.Dense) *mat.Dense {
	l.dw.Mul(x.T(), dout)

	rows, out := dout.Dims()
	for j := 0; j < out; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += dout.At(i, j)
		}
		l.db[j] = sum
	}

	in, _ := l.w.Dims()
	dx := mat.NewDense(rows, in, nil)
	dx.Mul(dout, l.w.T())
	return dx
}

// MultiTask is the shared-encoder two-head network. It is not safe for
// concurrent training; a fully trained instance is read-only at inference
// time and safe to share.
type MultiTask struct {
	cfg Config

	enc1  *linear // input -> hidden1
	enc2  *linear // hidden1 -> hidden2
	skill *linear // hidden2 -> |skills|
	score *linear // hidden2 -> 1
}

// New builds a network with seeded random initialization.
func New(cfg Config, seed int64) *MultiTask {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(seed))
	return &MultiTask{
		cfg:   cfg,
		enc1:  newLinear(cfg.InputDim, cfg.Hidden1, rng),
		enc2:  newLinear(cfg.Hidden1, cfg.Hidden2, rng),
		skill: newLinear(cfg.Hidden2, cfg.SkillDim, rng),
		score: newLinear(cfg.Hidden2, 1, rng),
	}
}

// Config returns the network dimensions.
func (m *MultiTask) Config() Config { return m.cfg }

// cache holds the intermediate activations one Forward pass produced, which
// Backward needs to chain gradients.
type cache struct {
	x    *mat.Dense
	z1   *mat.Dense
	d1   *mat.Dense // post-dropout hidden1 activations, input to enc2
	z2   *mat.Dense
	h2   *mat.Dense
	mask *mat.Dense // inverted-dropout mask, nil in eval mode
}

// Forward runs the network on a batch. In training mode it applies inverted
// dropout after the first activation using rng; in eval mode rng may be nil.
// It returns skill logits, raw score outputs and the activation cache.
func (m *MultiTask) Forward(x *mat.Dense, train bool, rng *rand.Rand) (skillLogits, scoreOut *mat.Dense, c *cache) {
	z1 := m.enc1.forward(x)
	h1 := applyReLU(z1)

	d1 := h1
	var mask *mat.Dense
	if train && m.cfg.Dropout > 0 {
		d1, mask = applyDropout(h1, m.cfg.Dropout, rng)
	}

	z2 := m.enc2.forward(d1)
	h2 := applyReLU(z2)

	skillLogits = m.skill.forward(h2)
	scoreOut = m.score.forward(h2)
	c = &cache{x: x, z1: z1, d1: d1, z2: z2, h2: h2, mask: mask}
	return skillLogits, scoreOut, c
}

// Backward propagates the head gradients through the network, storing
// parameter gradients on each layer.
func (m *MultiTask) Backward(c *cache, dSkill, dScore *mat.Dense) {
	dh2 := m.skill.backward(c.h2, dSkill)
	dh2s := m.score.backward(c.h2, dScore)
	dh2.Add(dh2, dh2s)

	dz2 := maskReLU(dh2, c.z2)
	dd1 := m.enc2.backward(c.d1, dz2)

	if c.mask != nil {
		dd1.MulElem(dd1, c.mask)
	}
	dz1 := maskReLU(dd1, c.z1)
	m.enc1.backward(c.x, dz1)
}

// Param exposes one parameter tensor and its gradient as flat slices sharing
// the layer's backing storage, so an optimizer can update in place.
type Param struct {
	Name string
	W    []float64
	G    []float64
}

// Params returns all parameters in a stable order.
func (m *MultiTask) Params() []Param {
	return []Param{
		{Name: "enc1.w", W: m.enc1.w.RawMatrix().Data, G: m.enc1.dw.RawMatrix().Data},
		{Name: "enc1.b", W: m.enc1.b, G: m.enc1.db},
		{Name: "enc2.w", W: m.enc2.w.RawMatrix().Data, G: m.enc2.dw.RawMatrix().Data},
		{Name: "enc2.b", W: m.enc2.b, G: m.enc2.db},
		{Name: "skill.w", W: m.skill.w.RawMatrix().Data, G: m.skill.dw.RawMatrix().Data},
		{Name: "skill.b", W: m.skill.b, G: m.skill.db},
		{Name: "score.w", W: m.score.w.RawMatrix().Data, G: m.score.dw.RawMatrix().Data},
		{Name: "score.b", W: m.score.b, G: m.score.db},
	}
}

func applyReLU(z *mat.Dense) *mat.Dense {
	rows, cols := z.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := z.At(i, j); v > 0 {
				out.Set(i, j, v)
			}
		}
	}
	return out
}

// maskReLU zeroes gradient components where the pre-activation was not
// positive.
func maskReLU(d, z *mat.Dense) *mat.Dense {
	rows, cols := d.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if z.At(i, j) > 0 {
				out.Set(i, j, d.At(i, j))
			}
		}
	}
	return out
}

// applyDropout implements inverted dropout: kept units are scaled by
// 1/(1-rate) so eval mode needs no rescaling.
func applyDropout(h *mat.Dense, rate float64, rng *rand.Rand) (*mat.Dense, *mat.Dense) {
	rows, cols := h.Dims()
	out := mat.NewDense(rows, cols, nil)
	mask := mat.NewDense(rows, cols, nil)
	keep := 1 / (1 - rate)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() >= rate {
				mask.Set(i, j, keep)
				out.Set(i, j, h.At(i, j)*keep)
			}
		}
	}
	return out, mask
}

// Sigmoid maps logits to probabilities element-wise.
func Sigmoid(z *mat.Dense) *mat.Dense {
	rows, cols := z.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, 1/(1+math.Exp(-z.At(i, j))))
		}
	}
	return out
}
