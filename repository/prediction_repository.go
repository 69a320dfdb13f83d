package repository

import "loan-predictor/domain"

type PredictionRepository interface {
	Save(record domain.PredictionRecord) error
	Recent(n int) []domain.PredictionRecord
}
