package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"loan-predictor/domain"
)

type fakeScaler struct {
	err   error
	calls int
}

func (f *fakeScaler) Transform(v domain.FeatureVector) (domain.FeatureVector, error) {
	f.calls++
	if f.err != nil {
		return domain.FeatureVector{}, f.err
	}
	return v, nil
}

// fakeClassifier returns fixed outputs regardless of input.
type fakeClassifier struct {
	classes  []int
	label    int
	proba    []float64
	err      error
	probaErr error
	panicMsg string
}

func (f *fakeClassifier) Classes() []int { return f.classes }

func (f *fakeClassifier) Predict(domain.FeatureVector) (int, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.label, f.err
}

func (f *fakeClassifier) PredictProba(domain.FeatureVector) ([]float64, error) {
	return f.proba, f.probaErr
}

type fakePredictor struct {
	mu     sync.Mutex
	result domain.PredictionResult
	err    error
	calls  int
}

func (f *fakePredictor) Infer(domain.FeatureVector) (domain.PredictionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.err
}

func (f *fakePredictor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type MockPredictionRepository struct {
	Saved      []domain.PredictionRecord
	ForceError bool
}

func (m *MockPredictionRepository) Save(record domain.PredictionRecord) error {
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockPredictionRepository) Recent(n int) []domain.PredictionRecord {
	return m.Saved
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool) { return "", false }

func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}
