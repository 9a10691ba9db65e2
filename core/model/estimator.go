// Package model はweaklearnの推定器が共有するインターフェースと状態管理を提供します。
package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit は設計行列 X とラベル列ベクトル y（各要素 ±1）でモデルを学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は各インスタンスのクラス（±1）を n×1 行列で返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator は学習と予測の両方を備えたモデル
type Estimator interface {
	Fitter
	Predictor
}

// Classifier は二値線形分類器のインターフェース
type Classifier interface {
	Estimator

	// PredictProba は n×2 行列で P(y=-1), P(y=+1) を返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// DecisionFunction はマージン X·w を返す
	DecisionFunction(X mat.Matrix) (*mat.VecDense, error)

	// Score は符号一致による正解率を返す
	Score(X, y mat.Matrix) (float64, error)
}

// WeightExporter は重みをエクスポート可能なモデルのインターフェース
type WeightExporter interface {
	// ExportWeights は学習済みの重みとハイパーパラメータを返す
	ExportWeights() (*ModelWeights, error)
}

// WeightImporter はエクスポートされた重みから学習済み状態を復元できるモデルのインターフェース
type WeightImporter interface {
	// ImportWeights は重みを検証して読み込む
	ImportWeights(weights *ModelWeights) error
}
