package linear_model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCVResult() *CVResult {
	return &CVResult{
		Mus:        []float64{10, 1, 0.1, 0},
		MeanScores: []float64{0.6, 0.85, 0.9, 0.88},
		StdErrors:  []float64{0.05, 0.03, 0.02, 0.04},
		BestMu:     0.1,
		SelectedMu: 1,
	}
}

func TestPlotCV(t *testing.T) {
	p, err := PlotCV(fakeCVResult())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "log10(mu)", p.X.Label.Text)

	file := filepath.Join(t.TempDir(), "cv.png")
	require.NoError(t, SaveCVPlot(fakeCVResult(), file))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPlotCV_Empty(t *testing.T) {
	_, err := PlotCV(nil)
	assert.Error(t, err)
	_, err = PlotCV(&CVResult{})
	assert.Error(t, err)
}

func TestLogMus(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1, 0, -1, -2}, logMus([]float64{10, 1, 0.1, 0}), 1e-12)
	assert.Equal(t, []float64{0}, logMus([]float64{0}))
}
