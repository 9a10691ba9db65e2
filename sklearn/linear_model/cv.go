package linear_model

import (
	"math/rand/v2"
	"time"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/core/parallel"
	"github.com/YuminosukeSato/weaklearn/metrics"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
	"github.com/YuminosukeSato/weaklearn/pkg/log"
	"github.com/YuminosukeSato/weaklearn/sklearn/model_selection"
)

// CVParams configures cross-validated strength selection.
type CVParams struct {
	Path PathParams

	// NFolds must be in [2, n].
	NFolds int
	// Opt1SE selects the largest strength within one standard error of the
	// best mean score instead of the best one.
	Opt1SE bool

	// Shuffle permutes instances before cutting folds; Seed drives the
	// permutation and the per-fold sampling generators.
	Shuffle bool
	Seed    uint64

	// Stratify keeps the class proportions of gt in every fold.
	Stratify bool

	// Parallel runs folds concurrently on at most MaxWorkers goroutines
	// (one per CPU when MaxWorkers <= 0).
	Parallel   bool
	MaxWorkers int
}

// CVResult reports per-fold and aggregated held-out accuracy. All per-mu
// slices are aligned with Mus (descending).
type CVResult struct {
	Mus []float64
	// FoldScores[k][j] is the accuracy of fold k at Mus[j].
	FoldScores [][]float64
	MeanScores []float64
	StdErrors  []float64

	BestMu     float64
	SelectedMu float64

	// Weights is the model refit on all instances at SelectedMu.
	Weights []float64
	// Final is the full-data path that produced Weights.
	Final *Path
}

func (p CVParams) splitter() model_selection.Splitter {
	if p.Stratify {
		return model_selection.NewStratifiedKFold(p.NFolds, p.Shuffle, p.Seed)
	}
	return model_selection.NewKFold(p.NFolds, p.Shuffle, p.Seed)
}

// BestIndex returns the position of BestMu in Mus.
func (r *CVResult) BestIndex() int { return lo.IndexOf(r.Mus, r.BestMu) }

// SelectedIndex returns the position of SelectedMu in Mus.
func (r *CVResult) SelectedIndex() int { return lo.IndexOf(r.Mus, r.SelectedMu) }

// CrossValidate scores every strength of params.Path.MuSeq by k-fold
// held-out sign accuracy, selects one, and refits on all instances at the
// selected strength starting from w0.
func CrossValidate(X matrix.DesignMatrix, gt, w0 []float64, params CVParams) (*CVResult, error) {
	if err := checkProblem("CrossValidate", X, gt, w0); err != nil {
		return nil, err
	}
	mus, err := normalizeMuSeq(params.Path.MuSeq)
	if err != nil {
		return nil, err
	}
	if err := params.Path.Solver.Validate(); err != nil {
		return nil, err
	}

	n, _ := X.Dims()
	folds, err := params.splitter().Split(n, gt)
	if err != nil {
		return nil, err
	}
	for k, fold := range folds {
		if err := checkFold(k, log.PhaseValidation, fold.TestIndices, gt); err != nil {
			return nil, err
		}
		if err := checkFold(k, log.PhaseTraining, fold.TrainIndices, gt); err != nil {
			return nil, err
		}
	}

	logger := params.Path.Solver.logger().With(log.OperationKey, log.OperationCV)
	start := time.Now()

	scores := make([][]float64, len(folds))
	runFold := func(k int) error {
		fold := folds[k]
		sp := params.Path.Solver
		sp.Logger = logger.With(log.FoldKey, k)
		if sp.Sample {
			sp.Rand = rand.New(rand.NewPCG(params.Seed, uint64(k)+1))
		}

		path, err := RunPath(
			X.RowSubset(fold.TrainIndices),
			subsetLabels(gt, fold.TrainIndices),
			w0,
			PathParams{Solver: sp, MuSeq: mus},
		)
		if err != nil {
			return errors.Wrapf(err, "fold %d", k)
		}

		Xval := X.RowSubset(fold.TestIndices)
		gtVal := subsetLabels(gt, fold.TestIndices)
		row := make([]float64, len(mus))
		for j, mu := range mus {
			acc, err := metrics.Accuracy(Xval, path.Weights[mu], gtVal)
			if err != nil {
				return errors.Wrapf(err, "fold %d", k)
			}
			row[j] = acc
		}
		scores[k] = row
		sp.Logger.Debug("fold scored", log.PhaseKey, log.PhaseValidation, log.AccuracyKey, row)
		return nil
	}

	threshold := len(folds)
	if params.Parallel {
		threshold = 0
	}
	if err := parallel.ForEachWithThreshold(len(folds), threshold, params.MaxWorkers, runFold); err != nil {
		return nil, err
	}

	result := &CVResult{
		Mus:        mus,
		FoldScores: scores,
		MeanScores: make([]float64, len(mus)),
		StdErrors:  make([]float64, len(mus)),
	}
	for j := range mus {
		column := lo.Map(scores, func(row []float64, _ int) float64 { return row[j] })
		mean, se, err := metrics.MeanStdErr(column)
		if err != nil {
			return nil, err
		}
		result.MeanScores[j], result.StdErrors[j] = mean, se
	}

	best, selected := selectStrength(result.MeanScores, result.StdErrors, params.Opt1SE)
	result.BestMu, result.SelectedMu = mus[best], mus[selected]

	sp := params.Path.Solver
	sp.Logger = logger
	if sp.Sample && sp.Rand == nil {
		sp.Rand = rand.New(rand.NewPCG(params.Seed, 0))
	}
	final, err := RunPath(X, gt, w0, PathParams{Solver: sp, MuSeq: []float64{result.SelectedMu}})
	if err != nil {
		return nil, errors.Wrap(err, "refit at selected strength")
	}
	result.Final = final
	result.Weights = final.Weights[result.SelectedMu]

	logger.Info("cross-validation finished",
		log.RegularizationKey, result.SelectedMu,
		log.AccuracyKey, result.MeanScores[selected],
		log.StdErrorKey, result.StdErrors[selected],
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// selectStrength returns the index of the best mean score (ties resolve to
// the earlier, larger strength) and the selected index. With opt1SE the
// selection is the first index whose mean reaches best - SE(best).
func selectStrength(means, stdErrs []float64, opt1SE bool) (best, selected int) {
	for j, m := range means {
		if m > means[best] {
			best = j
		}
	}
	if !opt1SE {
		return best, best
	}
	floor := means[best] - stdErrs[best]
	for j, m := range means {
		if m >= floor {
			return best, j
		}
	}
	return best, best
}

func checkFold(k int, partition string, rows []int, gt []float64) error {
	pos := lo.CountBy(rows, func(i int) bool { return gt[i] > 0 })
	neg := len(rows) - pos
	if pos == 0 || neg == 0 {
		return errors.NewDegenerateFoldError(k, partition, pos, neg)
	}
	return nil
}

func subsetLabels(gt []float64, rows []int) []float64 {
	return lo.Map(rows, func(i int, _ int) float64 { return gt[i] })
}
