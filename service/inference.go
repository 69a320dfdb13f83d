package service

import (
	"errors"
	"fmt"
	"math"

	"loan-predictor/domain"
	"loan-predictor/model"
)

// Predictor turns a feature vector into a decision.
type Predictor interface {
	Infer(v domain.FeatureVector) (domain.PredictionResult, error)
}

// InferenceAdapter runs the loaded scaler and classifier. It holds no
// mutable state and is safe for concurrent use.
type InferenceAdapter struct {
	scaler        model.Scaler
	classifier    model.Classifier
	approvedIndex int
}

func NewInferenceAdapter(artifacts *model.Artifacts) (*InferenceAdapter, error) {
	if artifacts == nil || artifacts.Scaler == nil || artifacts.Classifier == nil {
		return nil, errors.New("scaler and classifier are required")
	}

	idx := -1
	for i, c := range artifacts.Classifier.Classes() {
		if c == ApprovedClass {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("model has no class %d", ApprovedClass)
	}

	return &InferenceAdapter{
		scaler:        artifacts.Scaler,
		classifier:    artifacts.Classifier,
		approvedIndex: idx,
	}, nil
}

// Infer scales v and classifies it. The label comes from the model's own
// decision, not from thresholding the probability.
func (a *InferenceAdapter) Infer(v domain.FeatureVector) (result domain.PredictionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.PredictionResult{}
			err = &domain.InferenceError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	scaled, err := a.scaler.Transform(v)
	if err != nil {
		return domain.PredictionResult{}, &domain.InferenceError{Err: fmt.Errorf("scale: %w", err)}
	}

	label, err := a.classifier.Predict(scaled)
	if err != nil {
		return domain.PredictionResult{}, &domain.InferenceError{Err: fmt.Errorf("predict: %w", err)}
	}

	proba, err := a.classifier.PredictProba(scaled)
	if err != nil {
		return domain.PredictionResult{}, &domain.InferenceError{Err: fmt.Errorf("predict proba: %w", err)}
	}
	if a.approvedIndex >= len(proba) {
		return domain.PredictionResult{}, &domain.InferenceError{
			Err: fmt.Errorf("got %d probabilities, need index %d", len(proba), a.approvedIndex),
		}
	}

	p := proba[a.approvedIndex]
	if math.IsNaN(p) || p < 0 || p > 1 {
		return domain.PredictionResult{}, &domain.InferenceError{Err: fmt.Errorf("probability %v out of range", p)}
	}

	return domain.PredictionResult{
		Approved:    label == ApprovedClass,
		Probability: p,
	}, nil
}
