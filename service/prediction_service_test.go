package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-predictor/domain"
	"loan-predictor/repository"
)

func TestPredict_ModelUnavailable(t *testing.T) {
	repo := &MockPredictionRepository{}
	svc := NewPredictionService(nil, repo, repository.NewMemoryCache(0), time.Minute)

	assert.False(t, svc.Ready())

	for i := 0; i < 3; i++ {
		_, err := svc.Predict(context.Background(), sampleFields())
		assert.ErrorIs(t, err, domain.ErrModelUnavailable)
	}
	assert.Empty(t, repo.Saved)
}

func TestPredict_UnavailableSkipsValidation(t *testing.T) {
	svc := NewPredictionService(nil, nil, nil, 0)

	_, err := svc.Predict(context.Background(), map[string]string{})
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestPredict_SavesRecord(t *testing.T) {
	predictor := &fakePredictor{result: domain.PredictionResult{Approved: true, Probability: 0.81}}
	repo := &MockPredictionRepository{}
	svc := NewPredictionService(predictor, repo, nil, 0)

	result, err := svc.Predict(context.Background(), sampleFields())
	require.NoError(t, err)

	assert.True(t, svc.Ready())
	assert.Equal(t, domain.PredictionResult{Approved: true, Probability: 0.81}, result)
	require.Len(t, repo.Saved, 1)
	assert.NotEmpty(t, repo.Saved[0].ID)
	assert.Equal(t, sampleVector, repo.Saved[0].Features)
	assert.Equal(t, result, repo.Saved[0].Result)
}

func TestPredict_RepositoryFailureIsNotFatal(t *testing.T) {
	predictor := &fakePredictor{result: domain.PredictionResult{Probability: 0.3}}
	repo := &MockPredictionRepository{ForceError: true}
	svc := NewPredictionService(predictor, repo, failingCache{}, time.Minute)

	result, err := svc.Predict(context.Background(), sampleFields())
	require.NoError(t, err)
	assert.InDelta(t, 0.3, result.Probability, 1e-12)
}

func TestPredict_InvalidInputNeverInfers(t *testing.T) {
	predictor := &fakePredictor{}
	repo := &MockPredictionRepository{}
	svc := NewPredictionService(predictor, repo, nil, 0)

	fields := sampleFields()
	fields["ApplicantIncome"] = "abc"

	_, err := svc.Predict(context.Background(), fields)

	var invalid *domain.InvalidNumberError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, 0, predictor.Calls())
	assert.Empty(t, repo.Saved)
}

func TestPredict_InferenceErrorPropagates(t *testing.T) {
	cause := &domain.InferenceError{Err: errors.New("shape mismatch")}
	predictor := &fakePredictor{err: cause}
	repo := &MockPredictionRepository{}
	svc := NewPredictionService(predictor, repo, repository.NewMemoryCache(0), time.Minute)

	_, err := svc.Predict(context.Background(), sampleFields())

	var infErr *domain.InferenceError
	assert.True(t, errors.As(err, &infErr))
	assert.Empty(t, repo.Saved)
}

func TestPredict_UsesCacheForIdenticalVectors(t *testing.T) {
	predictor := &fakePredictor{result: domain.PredictionResult{Approved: true, Probability: 0.77}}
	svc := NewPredictionService(predictor, nil, repository.NewMemoryCache(0), time.Minute)

	first, err := svc.Predict(context.Background(), sampleFields())
	require.NoError(t, err)

	// Same vector, different spelling of the input.
	fields := sampleFields()
	fields["ApplicantIncome"] = " 5000"
	second, err := svc.Predict(context.Background(), fields)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, predictor.Calls())
}

func TestPredict_IgnoresCorruptCacheEntry(t *testing.T) {
	cache := repository.NewMemoryCache(0)
	vector, err := BuildFeatureVector(sampleFields())
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), cacheKey(vector), "not json", 0))

	predictor := &fakePredictor{result: domain.PredictionResult{Probability: 0.1}}
	svc := NewPredictionService(predictor, nil, cache, time.Minute)

	result, err := svc.Predict(context.Background(), sampleFields())
	require.NoError(t, err)
	assert.InDelta(t, 0.1, result.Probability, 1e-12)
	assert.Equal(t, 1, predictor.Calls())
}

func TestCacheKey_DistinguishesVectors(t *testing.T) {
	other := sampleVector
	other[7] = 129

	assert.Equal(t, cacheKey(sampleVector), cacheKey(sampleVector))
	assert.NotEqual(t, cacheKey(sampleVector), cacheKey(other))
	assert.Contains(t, cacheKey(sampleVector), cacheKeyPrefix)
}

func TestRecentPredictions(t *testing.T) {
	predictor := &fakePredictor{result: domain.PredictionResult{Probability: 0.5}}
	repo := repository.NewPredictionRepositoryMemory(10)
	svc := NewPredictionService(predictor, repo, nil, 0)

	_, err := svc.Predict(context.Background(), sampleFields())
	require.NoError(t, err)

	assert.Len(t, svc.RecentPredictions(5), 1)
	assert.Nil(t, NewPredictionService(predictor, nil, nil, 0).RecentPredictions(5))
}
