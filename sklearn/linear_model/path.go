package linear_model

import (
	"math"
	"slices"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/metrics"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
	"github.com/YuminosukeSato/weaklearn/pkg/log"
)

// PathParams configures a regularization path. Solver.Mu is ignored; the
// strengths come from MuSeq.
type PathParams struct {
	Solver SolverParams
	MuSeq  []float64
}

// Path holds one solution per regularization strength. Mus is in processing
// order (descending) and the diagnostic slices are aligned with it.
type Path struct {
	Mus        []float64
	Weights    map[float64][]float64
	Iterations []int
	Converged  []bool
	Loss       []float64
}

// At returns the weights solved for mu.
func (p *Path) At(mu float64) ([]float64, bool) {
	w, ok := p.Weights[mu]
	return w, ok
}

// Sparsity returns the number of exactly-zero coefficients per strength,
// aligned with Mus.
func (p *Path) Sparsity() []int {
	out := make([]int, len(p.Mus))
	for i, mu := range p.Mus {
		out[i] = metrics.CountZeros(p.Weights[mu])
	}
	return out
}

// normalizeMuSeq returns a descending, duplicate-free copy of seq.
func normalizeMuSeq(seq []float64) ([]float64, error) {
	if len(seq) == 0 {
		return nil, errors.NewValidationError("mu_seq", "must contain at least one strength", seq)
	}
	for _, mu := range seq {
		if math.IsNaN(mu) || math.IsInf(mu, 0) || mu < 0 {
			return nil, errors.NewValidationError("mu_seq", "strengths must be finite and non-negative", mu)
		}
	}
	mus := slices.Clone(seq)
	slices.Sort(mus)
	mus = slices.Compact(mus)
	slices.Reverse(mus)
	return mus, nil
}

// RunPath solves the problem for every strength in params.MuSeq from the
// largest to the smallest. The largest starts from w0 and each later solve
// is warm-started from the previous solution.
func RunPath(X matrix.DesignMatrix, gt, w0 []float64, params PathParams) (*Path, error) {
	if err := checkProblem("RunPath", X, gt, w0); err != nil {
		return nil, err
	}
	mus, err := normalizeMuSeq(params.MuSeq)
	if err != nil {
		return nil, err
	}

	logger := params.Solver.logger().With(log.OperationKey, log.OperationPath)
	path := &Path{
		Mus:        mus,
		Weights:    make(map[float64][]float64, len(mus)),
		Iterations: make([]int, 0, len(mus)),
		Converged:  make([]bool, 0, len(mus)),
		Loss:       make([]float64, 0, len(mus)),
	}

	sp := params.Solver
	sp.Logger = logger
	w := w0
	for _, mu := range mus {
		sp.Mu = mu
		sol, err := Solve(X, gt, w, sp)
		if err != nil {
			return nil, errors.Wrapf(err, "regularization path at mu=%g", mu)
		}
		w = sol.Weights

		path.Weights[mu] = sol.Weights
		path.Iterations = append(path.Iterations, sol.Iterations)
		path.Converged = append(path.Converged, sol.Converged)
		path.Loss = append(path.Loss, sol.Loss)

		if sp.Verbose {
			logger.Info("path step",
				log.RegularizationKey, mu,
				log.IterationKey, sol.Iterations,
				log.ConvergedKey, sol.Converged,
				log.ZerosKey, metrics.CountZeros(sol.Weights),
			)
		}
	}
	return path, nil
}
