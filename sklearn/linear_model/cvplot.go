package linear_model

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// cvPoints pairs the mean curve with its standard-error bars.
type cvPoints struct {
	plotter.XYs
	plotter.YErrors
}

// PlotCV draws mean held-out accuracy ± one standard error against
// log10(mu), with dashed vertical markers at the best and selected
// strengths. A zero strength is drawn one decade left of the smallest
// positive one.
func PlotCV(result *CVResult) (*plot.Plot, error) {
	if result == nil || len(result.Mus) == 0 {
		return nil, errors.NewValueError("PlotCV", "empty cross-validation result")
	}

	xs := logMus(result.Mus)
	pts := cvPoints{
		XYs:     make(plotter.XYs, len(xs)),
		YErrors: make(plotter.YErrors, len(xs)),
	}
	lowest, highest := math.Inf(1), math.Inf(-1)
	for j, x := range xs {
		m, se := result.MeanScores[j], result.StdErrors[j]
		pts.XYs[j] = plotter.XY{X: x, Y: m}
		pts.YErrors[j].Low, pts.YErrors[j].High = se, se
		lowest = math.Min(lowest, m-se)
		highest = math.Max(highest, m+se)
	}

	p := plot.New()
	p.Title.Text = "Cross-validated accuracy"
	p.X.Label.Text = "log10(mu)"
	p.Y.Label.Text = "held-out accuracy"

	line, scatter, err := plotter.NewLinePoints(pts.XYs)
	if err != nil {
		return nil, errors.Wrap(err, "PlotCV: mean curve")
	}
	line.Color = plotutil.Color(0)
	scatter.Color = plotutil.Color(0)

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, errors.Wrap(err, "PlotCV: error bars")
	}
	p.Add(line, scatter, bars)
	p.Legend.Add("mean ± SE", line, scatter)

	markers := []struct {
		name string
		idx  int
	}{
		{"best", result.BestIndex()},
		{"selected", result.SelectedIndex()},
	}
	for i, m := range markers {
		if m.idx < 0 {
			continue
		}
		x := xs[m.idx]
		v, err := plotter.NewLine(plotter.XYs{{X: x, Y: lowest}, {X: x, Y: highest}})
		if err != nil {
			return nil, errors.Wrapf(err, "PlotCV: %s marker", m.name)
		}
		v.Color = plotutil.Color(i + 1)
		v.Dashes = []vg.Length{vg.Points(4), vg.Points(2 + 2*float64(i))}
		p.Add(v)
		p.Legend.Add(m.name, v)
	}
	return p, nil
}

// SaveCVPlot renders PlotCV to file; the format follows the extension
// (png, svg, pdf, ...).
func SaveCVPlot(result *CVResult, file string) error {
	p, err := PlotCV(result)
	if err != nil {
		return err
	}
	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, file), "SaveCVPlot")
}

func logMus(mus []float64) []float64 {
	minPos := math.Inf(1)
	for _, mu := range mus {
		if mu > 0 {
			minPos = math.Min(minPos, mu)
		}
	}
	zeroAt := 0.0
	if !math.IsInf(minPos, 1) {
		zeroAt = math.Log10(minPos) - 1
	}
	xs := make([]float64, len(mus))
	for j, mu := range mus {
		if mu > 0 {
			xs[j] = math.Log10(mu)
		} else {
			xs[j] = zeroAt
		}
	}
	return xs
}
