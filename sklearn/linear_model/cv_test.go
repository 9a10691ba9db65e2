package linear_model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/weaklearn/datasets"
	"github.com/YuminosukeSato/weaklearn/metrics"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
	"github.com/YuminosukeSato/weaklearn/pkg/log"
)

func cvConfigProblem() datasets.ProblemConfig {
	return datasets.ProblemConfig{
		N:                 500,
		LabelingFunctions: datasets.SignalGroup{Count: 50, Coverage: 0.2, AccuracyMean: 0.6, AccuracySD: 0.25, Prior: 1},
		Features:          datasets.SignalGroup{Count: 800, Coverage: 0.1, AccuracyMean: 0.55, AccuracySD: 0.25},
	}
}

func TestCrossValidate_OneStandardErrorIsSound(t *testing.T) {
	X, gt, w0 := generate(t, cvConfigProblem(), 41)
	muSeq := []float64{1e6, 1, 1e-12}
	solver := solverParams(0, 0, 2500)

	res, err := CrossValidate(X, gt, w0, CVParams{
		Path:    PathParams{Solver: solver, MuSeq: muSeq},
		NFolds:  3,
		Opt1SE:  true,
		Shuffle: true,
		Seed:    7,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{1e6, 1, 1e-12}, res.Mus)
	require.Len(t, res.FoldScores, 3)
	for _, row := range res.FoldScores {
		assert.Len(t, row, 3)
	}
	assert.GreaterOrEqual(t, res.MeanScores[res.SelectedIndex()],
		res.MeanScores[res.BestIndex()]-res.StdErrors[res.BestIndex()])
	assert.GreaterOrEqual(t, res.SelectedMu, res.BestMu)

	selected, err := metrics.Accuracy(X, res.Weights, gt)
	require.NoError(t, err)
	for _, mu := range muSeq {
		sp := solver
		sp.Mu = mu
		sol, err := Solve(X, gt, w0, sp)
		require.NoError(t, err)
		acc, err := metrics.Accuracy(X, sol.Weights, gt)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, selected, acc-0.05, "mu=%g", mu)
	}
}

func TestCrossValidate_RefitMatchesSingleSolve(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(120, 8), 42)
	solver := solverParams(0, 0, 300)

	res, err := CrossValidate(X, gt, w0, CVParams{
		Path:    PathParams{Solver: solver, MuSeq: []float64{0.1, 0.01}},
		NFolds:  4,
		Shuffle: true,
		Seed:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, res.BestMu, res.SelectedMu)

	sp := solver
	sp.Mu = res.SelectedMu
	sol, err := Solve(X, gt, w0, sp)
	require.NoError(t, err)
	assert.Equal(t, sol.Weights, res.Weights)
	assert.Equal(t, []float64{res.SelectedMu}, res.Final.Mus)
}

func TestCrossValidate_ContiguousFoldsOnSortedLabelsAreDegenerate(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(100, 5), 43)

	_, err := CrossValidate(X, gt, w0, CVParams{
		Path:   PathParams{Solver: solverParams(0, 0, 50), MuSeq: []float64{0.1}},
		NFolds: 2,
	})
	var foldErr *errors.DegenerateFoldError
	require.True(t, errors.As(err, &foldErr), "got %v", err)
	assert.Equal(t, 0, foldErr.Fold)
	assert.Equal(t, log.PhaseValidation, foldErr.Partition)
	assert.Equal(t, 50, foldErr.Positives)
	assert.Equal(t, 0, foldErr.Negatives)
}

func TestCrossValidate_StratifiedFoldsOnSortedLabels(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(100, 5), 43)
	params := CVParams{
		Path:     PathParams{Solver: solverParams(0, 0, 50), MuSeq: []float64{1, 0.1}},
		NFolds:   2,
		Stratify: true,
	}

	folds, err := params.splitter().Split(100, gt)
	require.NoError(t, err)
	for _, fold := range folds {
		positives := lo.CountBy(fold.TestIndices, func(i int) bool { return gt[i] > 0 })
		assert.Equal(t, 25, positives)
		assert.Len(t, fold.TestIndices, 50)
	}

	res, err := CrossValidate(X, gt, w0, params)
	require.NoError(t, err)
	require.Len(t, res.FoldScores, 2)
	for _, row := range res.FoldScores {
		for _, acc := range row {
			assert.Greater(t, acc, 0.5)
		}
	}
}

func TestCrossValidate_InvalidFoldCount(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(10, 3), 44)

	for _, nfolds := range []int{0, 1, 11} {
		_, err := CrossValidate(X, gt, w0, CVParams{
			Path:    PathParams{Solver: DefaultSolverParams(), MuSeq: []float64{1}},
			NFolds:  nfolds,
			Shuffle: true,
		})
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr), "nfolds=%d", nfolds)
	}
}

func TestCrossValidate_ParallelMatchesSequential(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(150, 10), 45)
	params := CVParams{
		Path:    PathParams{Solver: solverParams(0.5, 0, 200), MuSeq: []float64{1, 0.1, 0.01}},
		NFolds:  5,
		Shuffle: true,
		Seed:    99,
	}
	params.Path.Solver.Sample = true
	params.Path.Solver.NSamples = 60

	seq, err := CrossValidate(X, gt, w0, params)
	require.NoError(t, err)

	params.Parallel = true
	params.MaxWorkers = 3
	par, err := CrossValidate(X, gt, w0, params)
	require.NoError(t, err)

	assert.Equal(t, seq.FoldScores, par.FoldScores)
	assert.Equal(t, seq.MeanScores, par.MeanScores)
	assert.Equal(t, seq.SelectedMu, par.SelectedMu)
	assert.Equal(t, seq.Weights, par.Weights)
}

func TestSelectStrength(t *testing.T) {
	tests := []struct {
		name         string
		means, ses   []float64
		opt1SE       bool
		wantBest     int
		wantSelected int
	}{
		{"best without rule", []float64{0.7, 0.9, 0.8}, []float64{0.01, 0.01, 0.01}, false, 1, 1},
		{"tie keeps larger strength", []float64{0.8, 0.9, 0.9}, []float64{0.01, 0.02, 0.05}, false, 1, 1},
		{"rule picks larger strength", []float64{0.87, 0.9, 0.7}, []float64{0, 0.05, 0}, true, 1, 0},
		{"rule falls back to best", []float64{0.5, 0.9, 0.89}, []float64{0.1, 0.001, 0.2}, true, 1, 1},
		{"boundary is inclusive", []float64{0.75, 1}, []float64{0, 0.25}, true, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, selected := selectStrength(tt.means, tt.ses, tt.opt1SE)
			assert.Equal(t, tt.wantBest, best)
			assert.Equal(t, tt.wantSelected, selected)
		})
	}
}
