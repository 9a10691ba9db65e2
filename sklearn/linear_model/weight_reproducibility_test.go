package linear_model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/weaklearn/core/model"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// TestElasticNetWeightReproducibility は重みのエクスポートとインポートで予測が完全に一致することをテスト
func TestElasticNetWeightReproducibility(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(120, 8), 61)

	// モデル1を学習
	model1 := NewElasticNetLogisticRegression(
		WithAlpha(0.5),
		WithMu(1e-3),
		WithMaxIter(300),
		WithInitialWeights(w0),
		WithLogger(quietLogger()),
	)
	require.NoError(t, model1.Fit(X, mat.NewVecDense(120, gt)))

	// 重みをエクスポートしてJSONを往復させる
	weights, err := model1.ExportWeights()
	require.NoError(t, err)
	assert.Equal(t, modelName, weights.ModelType)
	assert.NotEmpty(t, weights.Metadata["checksum"])

	data, err := weights.ToJSON()
	require.NoError(t, err)
	loaded := &model.ModelWeights{}
	require.NoError(t, loaded.FromJSON(data))

	// モデル2に重みをインポート
	model2 := NewElasticNetLogisticRegression(WithLogger(quietLogger()))
	require.NoError(t, model2.ImportWeights(loaded))

	// 係数・ハイパーパラメータ・予測が完全に一致すること
	assert.Equal(t, model1.Weights(), model2.Weights())
	assert.Equal(t, model1.SelectedMu(), model2.SelectedMu())
	assert.Equal(t, model1.NIter(), model2.NIter())
	assert.Equal(t, 0.5, model2.GetParams()["alpha"])

	p1, err := model1.PredictProba(X)
	require.NoError(t, err)
	p2, err := model2.PredictProba(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(p1, p2))
}

// TestElasticNetWeightChecksum は改ざんされた係数の読み込みを拒否することをテスト
func TestElasticNetWeightChecksum(t *testing.T) {
	X, gt, w0 := generate(t, lfOnlyConfig(60, 4), 62)
	m := NewElasticNetLogisticRegression(WithMaxIter(100), WithInitialWeights(w0), WithLogger(quietLogger()))
	require.NoError(t, m.Fit(X, mat.NewVecDense(60, gt)))

	weights, err := m.ExportWeights()
	require.NoError(t, err)
	weights.Coefficients[0] += 1

	raw, err := json.Marshal(weights)
	require.NoError(t, err)
	tampered := &model.ModelWeights{}
	require.NoError(t, json.Unmarshal(raw, tampered))

	var valErr *errors.ValidationError
	err = NewElasticNetLogisticRegression(WithLogger(quietLogger())).ImportWeights(tampered)
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "checksum", valErr.ParamName)

	wrongType := *tampered
	wrongType.ModelType = "LinearRegression"
	err = NewElasticNetLogisticRegression(WithLogger(quietLogger())).ImportWeights(&wrongType)
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "model_type", valErr.ParamName)
}
