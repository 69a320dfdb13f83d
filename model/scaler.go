package model

import (
	"errors"
	"fmt"

	"loan-predictor/domain"
)

// StandardScaler replays a standardization fitted offline: (x - mean) / scale.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) != domain.FeatureCount {
		return fmt.Errorf("scaler mean has %d entries, want %d", len(s.Mean), domain.FeatureCount)
	}
	if len(s.Scale) != domain.FeatureCount {
		return fmt.Errorf("scaler scale has %d entries, want %d", len(s.Scale), domain.FeatureCount)
	}
	for i, v := range s.Scale {
		if v < 0 {
			return fmt.Errorf("scaler scale[%d] is negative", i)
		}
		// Constant columns are stored with a zero scale.
		if v == 0 {
			s.Scale[i] = 1
		}
	}
	return nil
}

// Transform never mutates its input and never refits.
func (s *StandardScaler) Transform(v domain.FeatureVector) (domain.FeatureVector, error) {
	if len(s.Mean) != domain.FeatureCount || len(s.Scale) != domain.FeatureCount {
		return domain.FeatureVector{}, errors.New("scaler is not fitted for this feature set")
	}

	var out domain.FeatureVector
	for i, x := range v {
		out[i] = (x - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}
