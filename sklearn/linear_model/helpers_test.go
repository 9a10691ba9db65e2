package linear_model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/datasets"
)

// generate draws a synthetic weak-supervision problem with a fixed seed.
func generate(t *testing.T, cfg datasets.ProblemConfig, seed uint64) (*matrix.CSR, []float64, []float64) {
	t.Helper()
	prob, err := datasets.Generate(cfg, rand.New(rand.NewPCG(seed, seed+1)))
	require.NoError(t, err)
	return prob.X, prob.GT, prob.W0
}

func midConfig() datasets.ProblemConfig {
	return datasets.ProblemConfig{
		N:                 500,
		LabelingFunctions: datasets.SignalGroup{Count: 75, Coverage: 0.3, AccuracyMean: 0.7, AccuracySD: 0.25, Prior: 1},
		Features:          datasets.SignalGroup{Count: 1000, Coverage: 0.1, AccuracyMean: 0.6, AccuracySD: 0.25},
	}
}

func lfOnlyConfig(n, count int) datasets.ProblemConfig {
	return datasets.ProblemConfig{
		N:                 n,
		LabelingFunctions: datasets.SignalGroup{Count: count, Coverage: 0.4, AccuracyMean: 0.7, AccuracySD: 0.25, Prior: 1},
	}
}

func solverParams(alpha, mu float64, maxIter int) SolverParams {
	p := DefaultSolverParams()
	p.Alpha = alpha
	p.Mu = mu
	p.MaxIter = maxIter
	return p
}
