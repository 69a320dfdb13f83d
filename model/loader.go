package model

import (
	"encoding/json"
	"fmt"
	"os"

	"loan-predictor/domain"
)

const (
	TypeStandardScaler     = "standard_scaler"
	TypeLogisticRegression = "logistic_regression"
)

// Scaler replays a transform fitted at training time.
type Scaler interface {
	Transform(v domain.FeatureVector) (domain.FeatureVector, error)
}

// Classifier is a trained binary classifier.
type Classifier interface {
	Classes() []int
	Predict(v domain.FeatureVector) (int, error)
	PredictProba(v domain.FeatureVector) ([]float64, error)
}

// Artifacts holds the read-only state loaded once at startup.
type Artifacts struct {
	Scaler     Scaler
	Classifier Classifier
}

type envelope struct {
	Type string `json:"type"`
}

// LoadArtifacts reads both artifact files. Any failure is reported as a
// *domain.ArtifactLoadError naming the offending file.
func LoadArtifacts(scalerPath, modelPath string) (*Artifacts, error) {
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, err
	}
	classifier, err := LoadClassifier(modelPath)
	if err != nil {
		return nil, err
	}
	return &Artifacts{Scaler: scaler, Classifier: classifier}, nil
}

func LoadScaler(path string) (Scaler, error) {
	data, kind, err := readArtifact(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case TypeStandardScaler:
		var s StandardScaler
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, &domain.ArtifactLoadError{Path: path, Err: err}
		}
		if err := s.validate(); err != nil {
			return nil, &domain.ArtifactLoadError{Path: path, Err: err}
		}
		return &s, nil
	default:
		return nil, &domain.ArtifactLoadError{Path: path, Err: fmt.Errorf("unsupported scaler type %q", kind)}
	}
}

func LoadClassifier(path string) (Classifier, error) {
	data, kind, err := readArtifact(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case TypeLogisticRegression:
		var m LogisticRegression
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, &domain.ArtifactLoadError{Path: path, Err: err}
		}
		if err := m.validate(); err != nil {
			return nil, &domain.ArtifactLoadError{Path: path, Err: err}
		}
		return &m, nil
	default:
		return nil, &domain.ArtifactLoadError{Path: path, Err: fmt.Errorf("unsupported model type %q", kind)}
	}
}

func readArtifact(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &domain.ArtifactLoadError{Path: path, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, "", &domain.ArtifactLoadError{Path: path, Err: err}
	}
	return data, env.Type, nil
}
