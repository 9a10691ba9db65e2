package model

import (
	"bytes"
	"encoding/json"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// ModelWeights は学習済み重みの交換用表現（JSON）
type ModelWeights struct {
	// ModelType はモデルの種類（ElasticNetLogisticRegression 等）
	ModelType string `json:"model_type"`

	// Version は互換性チェック用のバージョン
	Version string `json:"version"`

	// Coefficients はシグナル列ごとの重み
	Coefficients []float64 `json:"coefficients"`

	// Features はシグナル列の名前（ラベリング関数名など、任意）
	Features []string `json:"features,omitempty"`

	// Hyperparameters は alpha, mu などの学習設定
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は反復回数・収束フラグ・選択された mu などの学習時情報
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズし、妥当性を検証する。
// ハイパーパラメータとメタデータの数値は json.Number として保持される（2^53 を超えるシードも欠落しない）。
func (mw *ModelWeights) FromJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return mw.Validate()
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewDimensionError("ModelWeights.Validate", len(mw.Coefficients), len(mw.Features), 1)
	}
	return nil
}

// NonZero は厳密にゼロでない係数の数を返す
func (mw *ModelWeights) NonZero() int {
	n := 0
	for _, c := range mw.Coefficients {
		if c != 0 {
			n++
		}
	}
	return n
}
