package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

func TestSignAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		margins []float64
		gt      []float64
		want    float64
		wantErr bool
	}{
		{
			name:    "Perfect",
			margins: []float64{2, 0.1, -3, -0.5},
			gt:      []float64{1, 1, -1, -1},
			want:    1.0,
		},
		{
			name:    "All wrong",
			margins: []float64{-2, 3},
			gt:      []float64{1, -1},
			want:    0.0,
		},
		{
			name:    "Zero margin counts as wrong",
			margins: []float64{0, 1, -1, 0},
			gt:      []float64{1, 1, -1, -1},
			want:    0.5,
		},
		{
			name:    "Empty",
			margins: nil,
			gt:      nil,
			wantErr: true,
		},
		{
			name:    "Length mismatch",
			margins: []float64{1},
			gt:      []float64{1, -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignAccuracy(tt.margins, tt.gt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestAccuracy(t *testing.T) {
	X := matrix.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		0, -1,
		-1, -1,
	})
	gt := []float64{1, 1, -1, 1}

	acc, err := Accuracy(X, []float64{1, 0.5}, gt)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	_, err = Accuracy(X, []float64{1}, gt)
	var dim *errors.DimensionError
	require.True(t, errors.As(err, &dim))
	assert.Equal(t, 1, dim.Axis)
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-15)
	assert.InDelta(t, 1.0, Sigmoid(800), 1e-15)
	assert.InDelta(t, 0.0, Sigmoid(-800), 1e-15)
	assert.False(t, math.IsNaN(Sigmoid(-800)))
	assert.InDelta(t, 1-Sigmoid(2.5), Sigmoid(-2.5), 1e-15)

	p := Probabilities([]float64{0, math.Log(3)})
	assert.InDeltaSlice(t, []float64{0.5, 0.75}, p, 1e-12)
}

func TestRelativeL2(t *testing.T) {
	got, err := RelativeL2([]float64{3, 4}, []float64{3, 3}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got, 1e-12)

	_, err = RelativeL2([]float64{0, 0}, []float64{1, 1}, []float64{0, 0})
	assert.Error(t, err)
	_, err = RelativeL2([]float64{1}, []float64{1, 1}, []float64{1})
	assert.Error(t, err)
}

func TestCountZeros(t *testing.T) {
	assert.Equal(t, 2, CountZeros([]float64{0, 1e-300, -0.0, 3}))
	assert.Equal(t, 0, CountZeros(nil))
}

func TestMeanStdErr(t *testing.T) {
	mean, se, err := MeanStdErr([]float64{0.8, 0.9, 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, mean, 1e-12)
	// sample std = 0.1, k = 3
	assert.InDelta(t, 0.1/math.Sqrt(3), se, 1e-12)

	mean, se, err = MeanStdErr([]float64{0.7})
	require.NoError(t, err)
	assert.Equal(t, 0.7, mean)
	assert.Equal(t, 0.0, se)

	_, _, err = MeanStdErr(nil)
	assert.Error(t, err)
}
