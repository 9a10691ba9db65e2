package linear_model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/core/model"
	"github.com/YuminosukeSato/weaklearn/metrics"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
	"github.com/YuminosukeSato/weaklearn/pkg/log"
)

const (
	modelName    = "ElasticNetLogisticRegression"
	modelVersion = "1.0.0"
)

var (
	_ model.Classifier     = (*ElasticNetLogisticRegression)(nil)
	_ model.WeightExporter = (*ElasticNetLogisticRegression)(nil)
	_ model.WeightImporter = (*ElasticNetLogisticRegression)(nil)
)

type cvConfig struct {
	nFolds   int
	opt1SE   bool
	shuffle  bool
	stratify bool
}

// ElasticNetLogisticRegression is a binary linear classifier over ±1 labels
// trained by elastic-net regularized logistic regression, optionally with
// cross-validated strength selection.
type ElasticNetLogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	alpha       float64
	mu          float64
	muSeq       []float64
	rate        float64
	maxIter     int
	tol         float64
	sample      bool
	nSamples    int
	verbose     bool
	randomState uint64
	w0          []float64
	cv          *cvConfig
	parallel    bool
	maxWorkers  int
	logger      log.Logger

	// Learned parameters
	coef_       []float64
	selectedMu_ float64
	nIter_      int
	converged_  bool
	path_       *Path
	cvResult_   *CVResult
}

// NewElasticNetLogisticRegression creates an unfitted model.
func NewElasticNetLogisticRegression(opts ...Option) *ElasticNetLogisticRegression {
	d := DefaultSolverParams()
	m := &ElasticNetLogisticRegression{
		state:    model.NewStateManager(),
		alpha:    d.Alpha,
		mu:       d.Mu,
		rate:     d.Rate,
		maxIter:  d.MaxIter,
		tol:      d.Tol,
		nSamples: d.NSamples,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.GetLoggerWithName(modelName)
	}
	return m
}

func (m *ElasticNetLogisticRegression) solverParams() SolverParams {
	return SolverParams{
		Alpha:    m.alpha,
		Mu:       m.mu,
		Rate:     m.rate,
		MaxIter:  m.maxIter,
		Tol:      m.tol,
		Sample:   m.sample,
		NSamples: m.nSamples,
		Verbose:  m.verbose,
		Rand:     rand.New(rand.NewPCG(m.randomState, m.randomState)),
		Logger:   m.logger,
	}
}

func (m *ElasticNetLogisticRegression) strengths() []float64 {
	if len(m.muSeq) > 0 {
		return m.muSeq
	}
	return []float64{m.mu}
}

// Fit trains on X (n×p) and y (n×1, entries ±1).
func (m *ElasticNetLogisticRegression) Fit(X, y mat.Matrix) error {
	design := matrix.AsDesignMatrix(X)
	n, p := design.Dims()
	gt, err := labelVector(y, n)
	if err != nil {
		return err
	}

	w0 := m.w0
	if w0 == nil {
		w0 = make([]float64, p)
	}

	logger := m.logger.With(log.OperationKey, log.OperationFit)
	logger.Debug("fit started",
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.MixingKey, m.alpha,
		log.LearningRateKey, m.rate,
		log.RandomSeedKey, m.randomState,
	)

	m.state.Reset()
	params := m.solverParams()

	if m.cv != nil {
		res, err := CrossValidate(design, gt, w0, CVParams{
			Path:       PathParams{Solver: params, MuSeq: m.strengths()},
			NFolds:     m.cv.nFolds,
			Opt1SE:     m.cv.opt1SE,
			Shuffle:    m.cv.shuffle,
			Stratify:   m.cv.stratify,
			Seed:       m.randomState,
			Parallel:   m.parallel,
			MaxWorkers: m.maxWorkers,
		})
		if err != nil {
			return errors.NewModelError(modelName+".Fit", "cross-validation", err)
		}
		m.cvResult_ = res
		m.path_ = res.Final
		m.selectedMu_ = res.SelectedMu
	} else {
		path, err := RunPath(design, gt, w0, PathParams{Solver: params, MuSeq: m.strengths()})
		if err != nil {
			return errors.NewModelError(modelName+".Fit", "regularization path", err)
		}
		m.cvResult_ = nil
		m.path_ = path
		m.selectedMu_ = path.Mus[len(path.Mus)-1]
	}

	last := len(m.path_.Mus) - 1
	m.coef_ = m.path_.Weights[m.selectedMu_]
	m.nIter_ = m.path_.Iterations[last]
	m.converged_ = m.path_.Converged[last]
	m.state.SetFitted(p, n)

	logger.Info("fit finished",
		log.RegularizationKey, m.selectedMu_,
		log.IterationKey, m.nIter_,
		log.ConvergedKey, m.converged_,
		log.ZerosKey, metrics.CountZeros(m.coef_),
	)
	return nil
}

// DecisionFunction returns the margins X·w.
func (m *ElasticNetLogisticRegression) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	_, p := X.Dims()
	if err := m.state.RequireFeatures(modelName, "DecisionFunction", p); err != nil {
		return nil, err
	}
	design := matrix.AsDesignMatrix(X)
	n, _ := design.Dims()
	margins := make([]float64, n)
	design.MulVecTo(margins, m.coef_, nil)
	return mat.NewVecDense(n, margins), nil
}

// Predict returns an n×1 matrix of ±1; a zero margin predicts +1.
func (m *ElasticNetLogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	margins, err := m.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	n := margins.Len()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		if margins.AtVec(i) >= 0 {
			out.Set(i, 0, 1)
		} else {
			out.Set(i, 0, -1)
		}
	}
	return out, nil
}

// PredictProba returns an n×2 matrix with columns P(y=-1) and P(y=+1).
func (m *ElasticNetLogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	margins, err := m.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	n := margins.Len()
	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		pos := metrics.Sigmoid(margins.AtVec(i))
		out.Set(i, 0, 1-pos)
		out.Set(i, 1, pos)
	}
	return out, nil
}

// Score returns the sign accuracy mean(sign(X·w) == y). Zero margins count
// as errors.
func (m *ElasticNetLogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	margins, err := m.DecisionFunction(X)
	if err != nil {
		return 0, err
	}
	gt, err := labelVector(y, margins.Len())
	if err != nil {
		return 0, err
	}
	return metrics.SignAccuracy(margins.RawVector().Data, gt)
}

// Weights returns a copy of the learned coefficients, or nil before Fit.
func (m *ElasticNetLogisticRegression) Weights() []float64 {
	if !m.state.IsFitted() {
		return nil
	}
	return slices.Clone(m.coef_)
}

// SelectedMu returns the strength the coefficients were solved at.
func (m *ElasticNetLogisticRegression) SelectedMu() float64 { return m.selectedMu_ }

// NIter returns the iterations used for the kept solution.
func (m *ElasticNetLogisticRegression) NIter() int { return m.nIter_ }

// Converged reports whether the kept solution met the tolerance.
func (m *ElasticNetLogisticRegression) Converged() bool { return m.converged_ }

// Path returns the regularization path of the last Fit.
func (m *ElasticNetLogisticRegression) Path() *Path { return m.path_ }

// CVResult returns the cross-validation report, or nil when Fit ran without CV.
func (m *ElasticNetLogisticRegression) CVResult() *CVResult { return m.cvResult_ }

// GetParams returns the hyperparameters.
func (m *ElasticNetLogisticRegression) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"alpha":        m.alpha,
		"mu":           m.mu,
		"mu_seq":       slices.Clone(m.muSeq),
		"rate":         m.rate,
		"max_iter":     m.maxIter,
		"tol":          m.tol,
		"sample":       m.sample,
		"n_samples":    m.nSamples,
		"verbose":      m.verbose,
		"random_state": m.randomState,
	}
	if m.cv != nil {
		params["nfolds"] = m.cv.nFolds
		params["opt_1se"] = m.cv.opt1SE
	}
	return params
}

// SetParams updates hyperparameters by name. Numbers decoded from JSON
// (float64 or json.Number) are accepted for integer parameters. The model is
// left unchanged when any key is unknown, mistyped or out of range.
func (m *ElasticNetLogisticRegression) SetParams(params map[string]interface{}) error {
	next := *m
	for key, value := range params {
		var ok bool
		switch key {
		case "alpha":
			next.alpha, ok = asFloat(value)
		case "mu":
			next.mu, ok = asFloat(value)
		case "rate":
			next.rate, ok = asFloat(value)
		case "tol":
			next.tol, ok = asFloat(value)
		case "max_iter":
			next.maxIter, ok = asInt(value)
		case "n_samples":
			next.nSamples, ok = asInt(value)
		case "random_state":
			next.randomState, ok = asSeed(value)
		case "sample":
			next.sample, ok = value.(bool)
		case "verbose":
			next.verbose, ok = value.(bool)
		case "mu_seq":
			next.muSeq, ok = asFloatSlice(value)
		case "nfolds", "opt_1se":
			// Selection settings do not affect stored coefficients.
			ok = true
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
		if !ok {
			return errors.NewValidationError(key, "unsupported value type", value)
		}
	}
	if err := next.solverParams().Validate(); err != nil {
		return err
	}
	if len(next.muSeq) > 0 {
		if _, err := normalizeMuSeq(next.muSeq); err != nil {
			return err
		}
	}
	*m = next
	return nil
}

// ExportWeights returns the coefficients with hyperparameters and a
// checksum of the coefficients.
func (m *ElasticNetLogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	if err := m.state.RequireFitted(modelName, "ExportWeights"); err != nil {
		return nil, err
	}
	nFeatures, nSamples := m.state.GetDimensions()
	weights := &model.ModelWeights{
		ModelType:       modelName,
		Version:         modelVersion,
		Coefficients:    slices.Clone(m.coef_),
		Hyperparameters: m.GetParams(),
		IsFitted:        true,
		Metadata: map[string]interface{}{
			"n_features":  nFeatures,
			"n_samples":   nSamples,
			"selected_mu": m.selectedMu_,
			"n_iter":      m.nIter_,
			"converged":   m.converged_,
		},
	}
	data, err := json.Marshal(weights.Coefficients)
	if err != nil {
		return nil, errors.Wrap(err, "ExportWeights")
	}
	hash := sha256.Sum256(data)
	weights.Metadata["checksum"] = hex.EncodeToString(hash[:])
	return weights, nil
}

// ImportWeights restores a model exported by ExportWeights.
func (m *ElasticNetLogisticRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("ImportWeights", "weights cannot be nil")
	}
	if weights.ModelType != modelName {
		return errors.NewValidationError("model_type", "must be "+modelName, weights.ModelType)
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if sum, ok := weights.Metadata["checksum"].(string); ok {
		data, err := json.Marshal(weights.Coefficients)
		if err != nil {
			return errors.Wrap(err, "ImportWeights")
		}
		hash := sha256.Sum256(data)
		if hex.EncodeToString(hash[:]) != sum {
			return errors.NewValidationError("checksum", "does not match coefficients", sum)
		}
	}
	if err := m.SetParams(weights.Hyperparameters); err != nil {
		return err
	}

	m.coef_ = slices.Clone(weights.Coefficients)
	m.selectedMu_, _ = asFloat(weights.Metadata["selected_mu"])
	if v, ok := asInt(weights.Metadata["n_iter"]); ok {
		m.nIter_ = v
	}
	m.converged_, _ = weights.Metadata["converged"].(bool)
	m.path_, m.cvResult_ = nil, nil

	nSamples := 0
	if v, ok := asInt(weights.Metadata["n_samples"]); ok {
		nSamples = v
	}
	m.state.SetFitted(len(m.coef_), nSamples)
	return nil
}

// labelVector extracts an n×1 label matrix into a slice.
func labelVector(y mat.Matrix, n int) ([]float64, error) {
	rows, cols := y.Dims()
	if cols != 1 {
		return nil, errors.NewDimensionError(modelName+".labels", 1, cols, 1)
	}
	if rows != n {
		return nil, errors.NewDimensionError(modelName+".labels", n, rows, 0)
	}
	if v, ok := y.(*mat.VecDense); ok {
		return slices.Clone(v.RawVector().Data), nil
	}
	return mat.Col(nil, 0, y), nil
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
			return 0, false
		}
		return int(x), true
	case json.Number:
		i, err := x.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

// asSeed reads a seed without a float round trip where the input allows it.
// A float64 is only accepted while it is an exact integer below 2^53.
func asSeed(v interface{}) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case int:
		return uint64(x), x >= 0
	case int64:
		return uint64(x), x >= 0
	case float64:
		if x < 0 || x != math.Trunc(x) || x > 1<<53 {
			return 0, false
		}
		return uint64(x), true
	case json.Number:
		u, err := strconv.ParseUint(x.String(), 10, 64)
		return u, err == nil
	default:
		return 0, false
	}
}

func asFloatSlice(v interface{}) ([]float64, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case []float64:
		return slices.Clone(x), true
	case []interface{}:
		out := make([]float64, len(x))
		for i, e := range x {
			f, ok := asFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}
