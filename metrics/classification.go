// Package metrics は弱教師あり線形分類器の評価指標を提供する。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/weaklearn/core/matrix"
	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// SignAccuracy は sign(margin) が正解ラベル（±1）と一致する割合を計算する。
// マージンがちょうど0のインスタンスはどちらのクラスにも一致しないものとして数える。
func SignAccuracy(margins, gt []float64) (float64, error) {
	n := len(gt)
	if n == 0 {
		return 0, errors.NewValueError("SignAccuracy", "empty label vector")
	}
	if len(margins) != n {
		return 0, errors.NewDimensionError("SignAccuracy", n, len(margins), 0)
	}

	correct := 0
	for i, m := range margins {
		if sign(m) == gt[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// Accuracy は設計行列 X と重み w による符号予測の正解率 mean(sign(X·w) == gt) を計算する。
func Accuracy(X matrix.DesignMatrix, w, gt []float64) (float64, error) {
	n, p := X.Dims()
	if len(w) != p {
		return 0, errors.NewDimensionError("Accuracy", p, len(w), 1)
	}
	if len(gt) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(gt), 0)
	}
	margins := make([]float64, n)
	X.MulVecTo(margins, w, nil)
	return SignAccuracy(margins, gt)
}

// Probabilities はマージンを正例確率 σ(margin) に変換する。
func Probabilities(margins []float64) []float64 {
	out := make([]float64, len(margins))
	for i, m := range margins {
		out[i] = Sigmoid(m)
	}
	return out
}

// Sigmoid は数値的に安定なロジスティック関数 1/(1+exp(-z))。
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// RelativeL2 は ‖a-b‖₂ / ‖ref‖₂ を計算する（ref は通常 a）。
func RelativeL2(a, b, ref []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.NewDimensionError("RelativeL2", len(a), len(b), 0)
	}
	denom := floats.Norm(ref, 2)
	if denom == 0 {
		return 0, errors.NewValueError("RelativeL2", "reference vector has zero norm")
	}
	return floats.Distance(a, b, 2) / denom, nil
}

// CountZeros は厳密にゼロの係数の数（スパース性）を返す。
func CountZeros(w []float64) int {
	zeros := 0
	for _, v := range w {
		if v == 0 {
			zeros++
		}
	}
	return zeros
}

// MeanStdErr はfoldごとのスコアの平均と標準誤差（標本標準偏差/√k）を返す。
// スコアが1つだけの場合、標準誤差は0とする。
func MeanStdErr(scores []float64) (mean, stdErr float64, err error) {
	k := len(scores)
	if k == 0 {
		return 0, 0, errors.NewValueError("MeanStdErr", "no scores")
	}
	if k == 1 {
		return scores[0], 0, nil
	}
	mean, std := stat.MeanStdDev(scores, nil)
	return mean, std / math.Sqrt(float64(k)), nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
