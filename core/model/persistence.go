package model

import (
	"io"
	"os"

	"github.com/hoopsim/ratingfit/pkg/errors"
)

// SaveWeights はモデルの重みをJSONファイルに保存する
//
//	mw, _ := reg.ModelWeights()
//	err := model.SaveWeights(mw, "weights.json")
func SaveWeights(mw *ModelWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()

	return SaveWeightsToWriter(mw, file)
}

// SaveWeightsToWriter validates mw and writes it as indented JSON.
func SaveWeightsToWriter(mw *ModelWeights, w io.Writer) error {
	if err := mw.Validate(); err != nil {
		return err
	}
	data, err := mw.ToJSON()
	if err != nil {
		return errors.Wrap(err, "encode model weights")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write model weights")
	}
	return nil
}

// LoadWeights はJSONファイルからモデルの重みを読み込む
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return LoadWeightsFromReader(file)
}

// LoadWeightsFromReader reads and validates JSON weights from r.
func LoadWeightsFromReader(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model weights")
	}
	mw := &ModelWeights{}
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return mw, nil
}
