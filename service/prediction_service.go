package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"loan-predictor/domain"
	"loan-predictor/observability"
	"loan-predictor/repository"
)

type PredictionService struct {
	predictor Predictor
	repo      repository.PredictionRepository
	cache     repository.CacheRepository
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewPredictionService wires the prediction flow. A nil predictor means the
// artifacts failed to load; every call then returns domain.ErrModelUnavailable.
func NewPredictionService(
	predictor Predictor,
	repo repository.PredictionRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *PredictionService {
	return &PredictionService{
		predictor: predictor,
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Ready reports whether the model is loaded.
func (s *PredictionService) Ready() bool {
	return s.predictor != nil
}

// Predict builds the feature vector from raw form fields and classifies it.
func (s *PredictionService) Predict(
	ctx context.Context,
	fields map[string]string,
) (domain.PredictionResult, error) {

	if s.predictor == nil {
		observability.PredictionsTotal.WithLabelValues(observability.OutcomeUnavailable).Inc()
		return domain.PredictionResult{}, domain.ErrModelUnavailable
	}

	vector, err := BuildFeatureVector(fields)
	if err != nil {
		observability.PredictionsTotal.WithLabelValues(observability.OutcomeInvalid).Inc()
		return domain.PredictionResult{}, err
	}

	key := cacheKey(vector)
	if result, ok := s.cached(ctx, key); ok {
		s.countOutcome(result)
		return result, nil
	}

	start := time.Now()
	result, err := s.predictor.Infer(vector)
	observability.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.PredictionsTotal.WithLabelValues(observability.OutcomeError).Inc()
		return domain.PredictionResult{}, err
	}
	s.countOutcome(result)

	// Cache y registro no son críticos
	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
				slog.Warn("failed to cache prediction", "error", err)
			}
		}
	}

	if s.repo != nil {
		record := domain.PredictionRecord{
			ID:        uuid.NewString(),
			Features:  vector,
			Result:    result,
			CreatedAt: s.now(),
		}
		if err := s.repo.Save(record); err != nil {
			slog.Warn("failed to save prediction", "error", err)
		}
	}

	return result, nil
}

// RecentPredictions returns up to n stored predictions, newest first.
func (s *PredictionService) RecentPredictions(n int) []domain.PredictionRecord {
	if s.repo == nil {
		return nil
	}
	return s.repo.Recent(n)
}

func (s *PredictionService) cached(ctx context.Context, key string) (domain.PredictionResult, bool) {
	if s.cache == nil {
		return domain.PredictionResult{}, false
	}

	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		observability.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return domain.PredictionResult{}, false
	}

	var result domain.PredictionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		slog.Warn("discarding unreadable cached prediction", "key", key, "error", err)
		observability.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return domain.PredictionResult{}, false
	}

	observability.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return result, true
}

func (s *PredictionService) countOutcome(result domain.PredictionResult) {
	outcome := observability.OutcomeRejected
	if result.Approved {
		outcome = observability.OutcomeApproved
	}
	observability.PredictionsTotal.WithLabelValues(outcome).Inc()
}

func cacheKey(v domain.FeatureVector) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	sum := xxhash.Sum64String(strings.Join(parts, ","))
	return cacheKeyPrefix + strconv.FormatUint(sum, 16)
}
