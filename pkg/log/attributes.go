// Package log defines standard attribute keys for weaklearn log records.
//
// Keys follow a hierarchical naming convention ("data.samples",
// "solver.iteration") so that solver traces, path progress and
// cross-validation summaries can be filtered uniformly.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "ElasticNetLogisticRegression".
	ModelNameKey = "model.name"

	// ComponentKey identifies the emitting package or subsystem.
	ComponentKey = "ml.component"

	// OperationKey specifies the operation being performed ("solve", "path", "cv", "fit").
	OperationKey = "ml.operation"

	// PhaseKey indicates "training" or "validation".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of instances (rows) in the design matrix.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of signal columns in the design matrix.
	FeaturesKey = "data.features"

	// NonZerosKey is the number of stored entries of a sparse design matrix.
	NonZerosKey = "data.nnz"

	// BatchSizeKey is the sub-batch size used in stochastic mode.
	BatchSizeKey = "data.batch_size"
)

// Solver progress.
const (
	// IterationKey is the current solver iteration (1-based).
	IterationKey = "solver.iteration"

	// LossKey is the unregularized mean logistic loss at the current iterate.
	LossKey = "solver.loss"

	// StepNormKey is the Euclidean change of the weight vector in the last iteration.
	StepNormKey = "solver.step_norm"

	// ConvergedKey reports whether the stopping tolerance was met.
	ConvergedKey = "solver.converged"

	// ZerosKey is the number of exactly-zero coefficients.
	ZerosKey = "solver.zeros"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Hyperparameters.
const (
	// RegularizationKey is the regularization strength mu.
	RegularizationKey = "hyperparams.mu"

	// MixingKey is the elastic-net mixing parameter alpha.
	MixingKey = "hyperparams.alpha"

	// LearningRateKey is the gradient step size.
	LearningRateKey = "hyperparams.learning_rate"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Cross-validation.
const (
	// FoldKey identifies the held-out fold (0-based).
	FoldKey = "cv.fold"

	// AccuracyKey is a sign accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// StdErrorKey is the standard error of the mean validation accuracy.
	StdErrorKey = "metrics.std_error"
)

// Error context.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard values for OperationKey and PhaseKey.
const (
	OperationSolve = "solve"
	OperationPath  = "path"
	OperationCV    = "cv"
	OperationFit   = "fit"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
)
