package linear_model

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
)

// LogisticLoss evaluates the mean logistic loss
//
//	L(w) = (1/m) Σ log(1 + exp(-gt_i · X_i·w))
//
// and its gradient over either all rows or a subset of them. It owns scratch
// buffers and is therefore not safe for concurrent use.
type LogisticLoss struct {
	X  matrix.DesignMatrix
	GT []float64

	margins []float64
	coef    []float64
}

// NewLogisticLoss creates an evaluator for X and labels gt. Shapes are
// assumed to have been validated by the caller.
func NewLogisticLoss(X matrix.DesignMatrix, gt []float64) *LogisticLoss {
	n, _ := X.Dims()
	return &LogisticLoss{
		X:       X,
		GT:      gt,
		margins: make([]float64, n),
		coef:    make([]float64, n),
	}
}

// Evaluate returns the mean loss at w over rows (all rows when rows is nil)
// and, when grad is non-nil, writes the gradient into it.
func (l *LogisticLoss) Evaluate(w, grad []float64, rows []int) float64 {
	m := len(l.GT)
	if rows != nil {
		m = len(rows)
	}
	margins := l.margins[:m]
	coef := l.coef[:m]
	l.X.MulVecTo(margins, w, rows)

	var loss float64
	inv := 1 / float64(m)
	for k, z := range margins {
		y := l.label(k, rows)
		yz := y * z
		loss += softplus(-yz)
		coef[k] = -y * sigmoid(-yz) * inv
	}

	if grad != nil {
		l.X.MulTransVecTo(grad, coef, rows)
	}
	return loss * inv
}

// Objective returns L(w) + mu·(alpha‖w‖₁ + (1-alpha)/2·‖w‖²) over all rows.
func (l *LogisticLoss) Objective(w []float64, alpha, mu float64) float64 {
	var l1, l2 float64
	for _, v := range w {
		l1 += math.Abs(v)
		l2 += v * v
	}
	return l.Evaluate(w, nil, nil) + mu*(alpha*l1+(1-alpha)/2*l2)
}

func (l *LogisticLoss) label(k int, rows []int) float64 {
	if rows == nil {
		return l.GT[k]
	}
	return l.GT[rows[k]]
}

// softplus computes log(1 + exp(x)) without overflow.
func softplus(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Sampler draws mini-batches of distinct row indices uniformly without
// replacement.
type Sampler struct {
	size int
	rng  *rand.Rand
	perm []int
}

// NewSampler returns a sampler of size rows out of n. It returns nil when
// size >= n, which callers treat as full batch.
func NewSampler(n, size int, rng *rand.Rand) *Sampler {
	if size >= n {
		return nil
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &Sampler{size: size, rng: rng, perm: perm}
}

// Next returns the next batch. The returned slice is reused by the following
// call. A nil Sampler yields nil, meaning all rows.
func (s *Sampler) Next() []int {
	if s == nil {
		return nil
	}
	n := len(s.perm)
	for k := 0; k < s.size; k++ {
		j := k + s.rng.IntN(n-k)
		s.perm[k], s.perm[j] = s.perm[j], s.perm[k]
	}
	return s.perm[:s.size]
}
