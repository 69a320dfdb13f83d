package model

import (
	"fmt"
	"math"

	"loan-predictor/domain"
)

// LogisticRegression is a binary linear classifier exported from training.
// Probabilities are ordered like Classes.
type LogisticRegression struct {
	ClassLabels []int       `json:"classes"`
	Coef        [][]float64 `json:"coef"`
	Intercept   []float64   `json:"intercept"`
}

func (m *LogisticRegression) validate() error {
	if len(m.ClassLabels) != 2 {
		return fmt.Errorf("expected 2 classes, got %d", len(m.ClassLabels))
	}
	if m.ClassLabels[0] == m.ClassLabels[1] {
		return fmt.Errorf("duplicate class label %d", m.ClassLabels[0])
	}
	if len(m.Coef) != 1 {
		return fmt.Errorf("expected 1 coefficient row, got %d", len(m.Coef))
	}
	if len(m.Coef[0]) != domain.FeatureCount {
		return fmt.Errorf("coefficient row has %d entries, want %d", len(m.Coef[0]), domain.FeatureCount)
	}
	if len(m.Intercept) != 1 {
		return fmt.Errorf("expected 1 intercept, got %d", len(m.Intercept))
	}
	return nil
}

func (m *LogisticRegression) Classes() []int {
	out := make([]int, len(m.ClassLabels))
	copy(out, m.ClassLabels)
	return out
}

func (m *LogisticRegression) decision(v domain.FeatureVector) (float64, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}

	d := m.Intercept[0]
	for i, x := range v {
		d += m.Coef[0][i] * x
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("decision value is not finite")
	}
	return d, nil
}

// Predict returns the class label, positive class when the decision is above zero.
func (m *LogisticRegression) Predict(v domain.FeatureVector) (int, error) {
	d, err := m.decision(v)
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return m.ClassLabels[1], nil
	}
	return m.ClassLabels[0], nil
}

func (m *LogisticRegression) PredictProba(v domain.FeatureVector) ([]float64, error) {
	d, err := m.decision(v)
	if err != nil {
		return nil, err
	}
	p := sigmoid(d)
	return []float64{1 - p, p}, nil
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	// Avoids overflow of exp for large negative inputs.
	e := math.Exp(x)
	return e / (1 + e)
}
