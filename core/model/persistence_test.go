package model

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// memoryModel は重みをそのまま保持するテスト用モデル
type memoryModel struct {
	weights *ModelWeights
}

func (m *memoryModel) ExportWeights() (*ModelWeights, error) {
	if m.weights == nil {
		return nil, errors.NewNotFittedError("memoryModel", "ExportWeights")
	}
	return m.weights, nil
}

func (m *memoryModel) ImportWeights(weights *ModelWeights) error {
	m.weights = weights
	return nil
}

func fittedMemoryModel() *memoryModel {
	return &memoryModel{weights: &ModelWeights{
		ModelType:       "ElasticNetLogisticRegression",
		Version:         "1.0.0",
		Coefficients:    []float64{0.25, 0, -1.5},
		Hyperparameters: map[string]interface{}{"alpha": 0.5, "random_state": uint64(1<<63 + 7)},
		Metadata:        map[string]interface{}{"n_iter": 42},
		IsFitted:        true,
	}}
}

func TestSaveLoadModel(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, SaveModel(fittedMemoryModel(), filename))

	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))

	loaded := &memoryModel{}
	require.NoError(t, LoadModel(loaded, filename))
	assert.Equal(t, []float64{0.25, 0, -1.5}, loaded.weights.Coefficients)
	assert.Equal(t, json.Number("9223372036854775815"), loaded.weights.Hyperparameters["random_state"])
	assert.Equal(t, json.Number("42"), loaded.weights.Metadata["n_iter"])
}

func TestSaveLoadModel_Writer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SaveModelToWriter(fittedMemoryModel(), &buf))

	loaded := &memoryModel{}
	require.NoError(t, LoadModelFromReader(loaded, &buf))
	assert.Equal(t, "ElasticNetLogisticRegression", loaded.weights.ModelType)
}

func TestSaveLoadModel_Errors(t *testing.T) {
	err := SaveModelToWriter(&memoryModel{}, &bytes.Buffer{})
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	assert.Error(t, LoadModel(&memoryModel{}, filepath.Join(t.TempDir(), "missing.json")))

	loaded := &memoryModel{}
	assert.Error(t, LoadModelFromReader(loaded, bytes.NewBufferString(`{"model_type": ""}`)))
	assert.Nil(t, loaded.weights)
}
