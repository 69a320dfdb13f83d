package repository

import (
	"sync"

	"loan-predictor/domain"
)

const DefaultMaxRecords = 1000

// PredictionRepositoryMemory keeps the most recent predictions in memory.
// Once full, the oldest record is dropped.
type PredictionRepositoryMemory struct {
	mu         sync.Mutex
	data       []domain.PredictionRecord
	maxRecords int
}

func NewPredictionRepositoryMemory(maxRecords int) *PredictionRepositoryMemory {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &PredictionRepositoryMemory{
		data:       []domain.PredictionRecord{},
		maxRecords: maxRecords,
	}
}

func (r *PredictionRepositoryMemory) Save(record domain.PredictionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) >= r.maxRecords {
		r.data = r.data[1:]
	}
	r.data = append(r.data, record)
	return nil
}

// Recent returns up to n records, newest first.
func (r *PredictionRepositoryMemory) Recent(n int) []domain.PredictionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.data) {
		n = len(r.data)
	}
	out := make([]domain.PredictionRecord, 0, n)
	for i := len(r.data) - 1; i >= len(r.data)-n; i-- {
		out = append(out, r.data[i])
	}
	return out
}

func (r *PredictionRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
