package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// SaveModel は学習済みモデルの重みをJSONファイルに保存する
//
// パラメータ:
//   - m: 保存するモデル（ExportWeightsを実装する推定器）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	clf := linear_model.NewElasticNetLogisticRegression()
//	// ... モデルの学習 ...
//	err := model.SaveModel(clf, "weights.json")
func SaveModel(m WeightExporter, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := SaveModelToWriter(m, file); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// LoadModel はJSONファイルから重みを読み込み、モデルを学習済み状態に復元する
//
// 使用例:
//
//	clf := linear_model.NewElasticNetLogisticRegression()
//	err := model.LoadModel(clf, "weights.json")
func LoadModel(m WeightImporter, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return LoadModelFromReader(m, file)
}

// SaveModelToWriter はモデルの重みをJSONとしてio.Writerに書き出す
func SaveModelToWriter(m WeightExporter, w io.Writer) error {
	weights, err := m.ExportWeights()
	if err != nil {
		return err
	}
	data, err := weights.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write model")
	}
	return nil
}

// LoadModelFromReader はio.ReaderからJSONの重みを読み込み、モデルへ渡す
func LoadModelFromReader(m WeightImporter, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read model")
	}
	weights := &ModelWeights{}
	if err := weights.FromJSON(data); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return m.ImportWeights(weights)
}
