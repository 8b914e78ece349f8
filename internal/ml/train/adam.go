package train

import (
	"math"

	"github.com/interview-ace/ace/internal/ml/model"
)

// adam is a standard Adam optimizer with bias correction. State is keyed by
// parameter name so it survives across steps.
type adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64

	t int
	m map[string][]float64
	v map[string][]float64
}

func newAdam(lr float64) *adam {
	return &adam{
		lr:    lr,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
		m:     make(map[string][]float64),
		v:     make(map[string][]float64),
	}
}

func (a *adam) step(params []model.Param) {
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, p := range params {
		m, ok := a.m[p.Name]
		if !ok {
			m = make([]float64, len(p.W))
			a.m[p.Name] = m
			a.v[p.Name] = make([]float64, len(p.W))
		}
		v := a.v[p.Name]

		for i, g := range p.G {
			m[i] = a.beta1*m[i] + (1-a.beta1)*g
			v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
			mHat := m[i] / c1
			vHat := v[i] / c2
			p.W[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}
