package linear_model

import (
	"slices"

	"github.com/YuminosukeSato/weaklearn/pkg/log"
)

// Option configures an ElasticNetLogisticRegression.
type Option func(*ElasticNetLogisticRegression)

// WithAlpha sets the L1/L2 mixing parameter (0 ridge, 1 lasso).
func WithAlpha(alpha float64) Option {
	return func(m *ElasticNetLogisticRegression) { m.alpha = alpha }
}

// WithMu sets a single regularization strength.
func WithMu(mu float64) Option {
	return func(m *ElasticNetLogisticRegression) {
		m.mu = mu
		m.muSeq = nil
	}
}

// WithMuSeq fits a warm-started path over the given strengths. Without
// cross-validation the model keeps the solution at the smallest strength.
func WithMuSeq(muSeq ...float64) Option {
	return func(m *ElasticNetLogisticRegression) { m.muSeq = slices.Clone(muSeq) }
}

// WithRate sets the gradient step size.
func WithRate(rate float64) Option {
	return func(m *ElasticNetLogisticRegression) { m.rate = rate }
}

// WithMaxIter sets the iteration cap per strength.
func WithMaxIter(maxIter int) Option {
	return func(m *ElasticNetLogisticRegression) { m.maxIter = maxIter }
}

// WithTol sets the weight-change tolerance.
func WithTol(tol float64) Option {
	return func(m *ElasticNetLogisticRegression) { m.tol = tol }
}

// WithSampling enables stochastic mode with nSamples rows per iteration.
func WithSampling(nSamples int) Option {
	return func(m *ElasticNetLogisticRegression) {
		m.sample = true
		m.nSamples = nSamples
	}
}

// WithVerbose toggles per-iteration diagnostics.
func WithVerbose(verbose bool) Option {
	return func(m *ElasticNetLogisticRegression) { m.verbose = verbose }
}

// WithRandomState seeds row sampling and fold shuffling.
func WithRandomState(seed uint64) Option {
	return func(m *ElasticNetLogisticRegression) { m.randomState = seed }
}

// WithInitialWeights sets w0. By default the solver starts from zero.
func WithInitialWeights(w0 []float64) Option {
	return func(m *ElasticNetLogisticRegression) { m.w0 = slices.Clone(w0) }
}

// WithCV selects the strength by nfolds-fold cross-validation over the
// strengths given by WithMuSeq (or WithMu). Folds are shuffled.
func WithCV(nfolds int, opt1SE bool) Option {
	return func(m *ElasticNetLogisticRegression) {
		m.cv = &cvConfig{nFolds: nfolds, opt1SE: opt1SE, shuffle: true}
	}
}

// WithStratifiedCV selects the strength by stratified nfolds-fold
// cross-validation, so every fold keeps the class balance of the labels.
func WithStratifiedCV(nfolds int, opt1SE bool) Option {
	return func(m *ElasticNetLogisticRegression) {
		m.cv = &cvConfig{nFolds: nfolds, opt1SE: opt1SE, shuffle: true, stratify: true}
	}
}

// WithCVParallel runs cross-validation folds on up to workers goroutines.
// It has no effect without WithCV.
func WithCVParallel(workers int) Option {
	return func(m *ElasticNetLogisticRegression) {
		m.parallel = true
		m.maxWorkers = workers
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger log.Logger) Option {
	return func(m *ElasticNetLogisticRegression) { m.logger = logger }
}
