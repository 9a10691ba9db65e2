package linear_model

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
	"github.com/YuminosukeSato/weaklearn/pkg/log"
)

const solverName = "elastic-net proximal gradient"

// SolverParams configures a single elastic-net solve.
type SolverParams struct {
	// Alpha mixes the penalties: 0 is ridge, 1 is lasso.
	Alpha float64
	// Mu is the overall regularization strength.
	Mu float64
	// Rate is the fixed gradient step size.
	Rate float64
	// MaxIter bounds the number of iterations.
	MaxIter int
	// Tol bounds the Euclidean weight change between consecutive iterations.
	Tol float64

	// Sample enables stochastic mode with NSamples rows per iteration.
	Sample   bool
	NSamples int

	// Verbose emits per-iteration debug records and a ConvergenceWarning
	// when MaxIter is reached.
	Verbose bool

	// Rand drives row sampling. A nil Rand uses a PCG source seeded with zero.
	Rand *rand.Rand
	// Logger receives diagnostics. Nil means the "linear_model" component logger.
	Logger log.Logger
}

// DefaultSolverParams returns ridge settings with a small strength.
func DefaultSolverParams() SolverParams {
	return SolverParams{
		Alpha:    0,
		Mu:       1e-6,
		Rate:     0.01,
		MaxIter:  2500,
		Tol:      1e-4,
		NSamples: 100,
	}
}

// Validate checks hyperparameter ranges.
func (p SolverParams) Validate() error {
	switch {
	case math.IsNaN(p.Alpha) || p.Alpha < 0 || p.Alpha > 1:
		return errors.NewValidationError("alpha", "must be in [0, 1]", p.Alpha)
	case math.IsNaN(p.Mu) || math.IsInf(p.Mu, 0) || p.Mu < 0:
		return errors.NewValidationError("mu", "must be a finite non-negative number", p.Mu)
	case math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) || p.Rate <= 0:
		return errors.NewValidationError("rate", "must be positive", p.Rate)
	case p.MaxIter <= 0:
		return errors.NewValidationError("maxIter", "must be positive", p.MaxIter)
	case math.IsNaN(p.Tol) || p.Tol < 0:
		return errors.NewValidationError("tol", "must be non-negative", p.Tol)
	case p.Sample && p.NSamples <= 0:
		return errors.NewValidationError("nSamples", "must be positive in sample mode", p.NSamples)
	}
	return nil
}

func (p SolverParams) logger() log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.GetLoggerWithName("linear_model")
}

func (p SolverParams) rng() *rand.Rand {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.New(rand.NewPCG(0, 0))
}

// Solution is the result of a single solve.
type Solution struct {
	Weights []float64
	// Iterations is the number of iterations performed.
	Iterations int
	// Converged is false when MaxIter was reached first.
	Converged bool
	// Loss is the full-batch mean logistic loss at Weights.
	Loss float64
}

// Solve minimizes L(w) + mu·(alpha‖w‖₁ + (1-alpha)/2·‖w‖²) by proximal
// gradient descent starting from w0. Each iteration takes a gradient step,
// applies the ridge shrinkage and then the lasso soft-threshold. w0 and X
// are not modified.
func Solve(X matrix.DesignMatrix, gt, w0 []float64, params SolverParams) (*Solution, error) {
	if err := checkProblem("Solve", X, gt, w0); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n, _ := X.Dims()
	logger := params.logger()
	start := time.Now()

	w := append([]float64(nil), w0...)
	prev := make([]float64, len(w))
	grad := make([]float64, len(w))
	loss := NewLogisticLoss(X, gt)

	var sampler *Sampler
	if params.Sample {
		sampler = NewSampler(n, params.NSamples, params.rng())
	}

	rate, alpha, mu := params.Rate, params.Alpha, params.Mu
	shrink := mu > 0 && alpha < 1
	threshold := mu > 0 && alpha > 0
	factor := 1 / (1 + rate*(1-alpha)*mu)
	tau := rate * alpha * mu

	traceIters := params.Verbose && logger.Enabled(context.Background(), log.LevelDebug)

	sol := &Solution{}
	for iter := 1; iter <= params.MaxIter; iter++ {
		copy(prev, w)

		f := loss.Evaluate(w, grad, sampler.Next())
		if err := errors.CheckScalar("loss", f, iter); err != nil {
			return nil, err
		}

		floats.AddScaled(w, -rate, grad)
		if shrink {
			floats.Scale(factor, w)
		}
		if threshold {
			softThreshold(w, tau)
		}
		if err := errors.CheckNumericalStability("weights", w, iter); err != nil {
			return nil, err
		}

		step := floats.Distance(w, prev, 2)
		sol.Iterations = iter
		if traceIters {
			logger.Debug("solver iteration",
				log.IterationKey, iter,
				log.LossKey, f,
				log.StepNormKey, step,
			)
		}
		if step < params.Tol {
			sol.Converged = true
			break
		}
	}

	sol.Weights = w
	sol.Loss = loss.Evaluate(w, nil, nil)

	if params.Verbose {
		if !sol.Converged {
			errors.Warn(errors.NewConvergenceWarning(solverName, sol.Iterations,
				"weight change stayed above tol; increase maxIter or rate"))
		}
		logger.Info("solve finished",
			log.RegularizationKey, mu,
			log.MixingKey, alpha,
			log.IterationKey, sol.Iterations,
			log.ConvergedKey, sol.Converged,
			log.LossKey, sol.Loss,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return sol, nil
}

// softThreshold applies the lasso proximal operator with threshold tau.
func softThreshold(w []float64, tau float64) {
	for j, v := range w {
		switch {
		case v > tau:
			w[j] = v - tau
		case v < -tau:
			w[j] = v + tau
		default:
			w[j] = 0
		}
	}
}

// checkProblem validates shapes and labels before any iteration.
func checkProblem(op string, X matrix.DesignMatrix, gt, w0 []float64) error {
	if X == nil {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if len(gt) != n {
		return errors.NewDimensionError(op, n, len(gt), 0)
	}
	if len(w0) != p {
		return errors.NewDimensionError(op, p, len(w0), 1)
	}
	for i, y := range gt {
		if y != 1 && y != -1 {
			return errors.NewValidationError(fmt.Sprintf("gt[%d]", i), errors.ErrInvalidLabel.Error(), y)
		}
	}
	return nil
}
