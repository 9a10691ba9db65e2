package linear_model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
)

func TestLogisticLoss_GradientMatchesFiniteDifference(t *testing.T) {
	X := matrix.NewDense(4, 3, []float64{
		1, 0, -1,
		-1, 1, 0,
		0, 1, 1,
		1, -1, 1,
	})
	gt := []float64{1, -1, 1, -1}
	w := []float64{0.3, -0.2, 0.5}

	loss := NewLogisticLoss(X, gt)
	grad := make([]float64, 3)
	f := loss.Evaluate(w, grad, nil)

	// Mean of softplus(-y·z) computed directly.
	var want float64
	for i := range gt {
		z := X.At(i, 0)*w[0] + X.At(i, 1)*w[1] + X.At(i, 2)*w[2]
		want += math.Log(1 + math.Exp(-gt[i]*z))
	}
	assert.InDelta(t, want/4, f, 1e-12)

	const h = 1e-6
	for j := range w {
		wp := append([]float64(nil), w...)
		wm := append([]float64(nil), w...)
		wp[j] += h
		wm[j] -= h
		fd := (loss.Evaluate(wp, nil, nil) - loss.Evaluate(wm, nil, nil)) / (2 * h)
		assert.InDelta(t, fd, grad[j], 1e-8, "coordinate %d", j)
	}
}

func TestLogisticLoss_RowsMatchSubset(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(60, 8), 5)
	rows := []int{3, 17, 42, 0, 59}

	full := NewLogisticLoss(X, gt)
	gradRows := make([]float64, len(w0))
	fRows := full.Evaluate(w0, gradRows, rows)

	sub := X.RowSubset(rows)
	subGT := subsetLabels(gt, rows)
	gradSub := make([]float64, len(w0))
	fSub := NewLogisticLoss(sub, subGT).Evaluate(w0, gradSub, nil)

	assert.InDelta(t, fSub, fRows, 1e-12)
	assert.InDeltaSlice(t, gradSub, gradRows, 1e-12)
}

func TestLogisticLoss_ExtremeMarginsStayFinite(t *testing.T) {
	X := matrix.NewDense(2, 1, []float64{1000, -1000})
	gt := []float64{-1, -1}
	grad := make([]float64, 1)

	f := NewLogisticLoss(X, gt).Evaluate([]float64{1}, grad, nil)
	assert.InDelta(t, 500, f, 1e-9)
	assert.InDelta(t, 500, grad[0], 1e-9)
}

func TestLogisticLoss_Objective(t *testing.T) {
	X := matrix.NewDense(2, 2, []float64{1, 0, 0, 1})
	gt := []float64{1, -1}
	w := []float64{1, -2}
	loss := NewLogisticLoss(X, gt)

	base := loss.Evaluate(w, nil, nil)
	assert.InDelta(t, base+0.1*3, loss.Objective(w, 1, 0.1), 1e-12)
	assert.InDelta(t, base+0.1*2.5, loss.Objective(w, 0, 0.1), 1e-12)
}

func TestSampler(t *testing.T) {
	assert.Nil(t, NewSampler(10, 10, nil))
	assert.Nil(t, NewSampler(10, 20, nil))

	var full *Sampler
	assert.Nil(t, full.Next())

	s := NewSampler(50, 20, rand.New(rand.NewPCG(1, 2)))
	require.NotNil(t, s)
	counts := make([]int, 50)
	for it := 0; it < 200; it++ {
		batch := s.Next()
		require.Len(t, batch, 20)
		seen := make(map[int]bool)
		for _, i := range batch {
			assert.True(t, i >= 0 && i < 50)
			assert.False(t, seen[i], "duplicate index %d", i)
			seen[i] = true
			counts[i]++
		}
	}
	// Every row is drawn about 80 times out of 200 batches.
	for i, c := range counts {
		assert.Greater(t, c, 40, "row %d", i)
		assert.Less(t, c, 120, "row %d", i)
	}

	a := NewSampler(50, 5, rand.New(rand.NewPCG(9, 9)))
	b := NewSampler(50, 5, rand.New(rand.NewPCG(9, 9)))
	for it := 0; it < 10; it++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
