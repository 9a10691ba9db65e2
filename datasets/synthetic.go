// Package datasets generates synthetic weak-supervision problems: a design
// matrix of noisy labeling signals whose accuracy and coverage are controlled,
// the ground-truth labels that produced it, and an informative prior w0.
package datasets

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// SignalGroup describes a block of signal columns.
type SignalGroup struct {
	// Count is the number of columns in the block.
	Count int
	// Coverage is the probability that a column votes on an instance.
	Coverage float64
	// AccuracyMean and AccuracySD parameterize a Normal draw per vote; the
	// vote agrees with the ground truth when the draw exceeds 0.5.
	AccuracyMean float64
	AccuracySD   float64
	// Prior is the initial weight given to every column of the block in W0.
	Prior float64
}

// ProblemConfig describes a synthetic problem. LabelingFunctions come first
// in column order, followed by Features.
type ProblemConfig struct {
	N                 int
	LabelingFunctions SignalGroup
	Features          SignalGroup
}

// Problem is a generated instance.
type Problem struct {
	X  *matrix.CSR
	GT []float64
	W0 []float64
}

// SmallConfig is a 250-instance problem with 50 labeling functions and 250 features.
func SmallConfig() ProblemConfig {
	return ProblemConfig{
		N:                 250,
		LabelingFunctions: SignalGroup{Count: 50, Coverage: 0.4, AccuracyMean: 0.7, AccuracySD: 0.25, Prior: 1},
		Features:          SignalGroup{Count: 250, Coverage: 0.2, AccuracyMean: 0.6, AccuracySD: 0.25},
	}
}

// LargeConfig is a 1000-instance problem with 100 labeling functions and 5000 features.
func LargeConfig() ProblemConfig {
	return ProblemConfig{
		N:                 1000,
		LabelingFunctions: SignalGroup{Count: 100, Coverage: 0.2, AccuracyMean: 0.7, AccuracySD: 0.25, Prior: 1},
		Features:          SignalGroup{Count: 5000, Coverage: 0.05, AccuracyMean: 0.6, AccuracySD: 0.25},
	}
}

// Validate checks that the configuration describes a usable problem.
func (c ProblemConfig) Validate() error {
	if c.N < 2 {
		return errors.NewValidationError("N", "need at least two instances", c.N)
	}
	if c.LabelingFunctions.Count+c.Features.Count <= 0 {
		return errors.NewValidationError("Count", "need at least one signal column", 0)
	}
	for _, g := range []SignalGroup{c.LabelingFunctions, c.Features} {
		if g.Count < 0 {
			return errors.NewValidationError("Count", "must be non-negative", g.Count)
		}
		if g.Coverage < 0 || g.Coverage > 1 {
			return errors.NewValidationError("Coverage", "must be in [0, 1]", g.Coverage)
		}
		if g.AccuracySD < 0 {
			return errors.NewValidationError("AccuracySD", "must be non-negative", g.AccuracySD)
		}
	}
	return nil
}

// Generate draws a problem from cfg using rng. The first floor(N/2)
// instances are positive and the rest negative.
func Generate(cfg ProblemConfig, rng *rand.Rand) (*Problem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gt := make([]float64, cfg.N)
	for i := range gt {
		if i < cfg.N/2 {
			gt[i] = 1
		} else {
			gt[i] = -1
		}
	}

	groups := []SignalGroup{cfg.LabelingFunctions, cfg.Features}
	p := cfg.LabelingFunctions.Count + cfg.Features.Count

	w0 := make([]float64, 0, p)
	for _, g := range groups {
		for j := 0; j < g.Count; j++ {
			w0 = append(w0, g.Prior)
		}
	}

	b := matrix.NewCSRBuilder(p)
	idx := make([]int, 0, p)
	val := make([]float64, 0, p)
	for i := 0; i < cfg.N; i++ {
		idx, val = idx[:0], val[:0]
		offset := 0
		for _, g := range groups {
			votes := distuv.Bernoulli{P: g.Coverage, Src: rng}
			accuracy := distuv.Normal{Mu: g.AccuracyMean, Sigma: g.AccuracySD, Src: rng}
			for j := 0; j < g.Count; j++ {
				if votes.Rand() == 0 {
					continue
				}
				v := gt[i]
				if g.AccuracySD == 0 {
					if g.AccuracyMean <= 0.5 {
						v = -v
					}
				} else if accuracy.Rand() <= 0.5 {
					v = -v
				}
				idx = append(idx, offset+j)
				val = append(val, v)
			}
			offset += g.Count
		}
		b.AppendRow(idx, val)
	}

	return &Problem{X: b.Build(), GT: gt, W0: w0}, nil
}
