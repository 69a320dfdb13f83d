package service

import (
	"strconv"
	"strings"

	"loan-predictor/domain"
)

// BuildFeatureVector assembles the model input from raw form values.
// The output always follows domain.FeatureOrder, whatever order the
// fields arrived in. Blank values count as missing.
func BuildFeatureVector(fields map[string]string) (domain.FeatureVector, error) {
	var vector domain.FeatureVector

	for i, name := range domain.FeatureOrder {
		raw, ok := fields[name]
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			return domain.FeatureVector{}, &domain.MissingFieldError{Field: name}
		}

		if IsCategorical(name) {
			code, err := Encode(name, raw)
			if err != nil {
				return domain.FeatureVector{}, err
			}
			vector[i] = float64(code)
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.FeatureVector{}, &domain.InvalidNumberError{Field: name, Value: raw, Err: err}
		}
		vector[i] = float64(n)
	}

	return vector, nil
}
