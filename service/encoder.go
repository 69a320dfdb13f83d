package service

import (
	"fmt"
	"sort"

	"loan-predictor/domain"
)

// categoryTables are the label encodings used at training time. Each
// table is closed: values outside it are rejected, never defaulted.
var categoryTables = map[string]map[string]int{
	domain.FieldGender:       {"Female": 0, "Male": 1},
	domain.FieldMarried:      {"No": 0, "Yes": 1},
	domain.FieldDependents:   {"0": 0, "1": 1, "2": 2, "3+": 3},
	domain.FieldEducation:    {"Graduate": 0, "Not Graduate": 1},
	domain.FieldSelfEmployed: {"No": 0, "Yes": 1},
	domain.FieldPropertyArea: {"Rural": 0, "Semiurban": 1, "Urban": 2},
}

// IsCategorical reports whether field goes through Encode.
func IsCategorical(field string) bool {
	_, ok := categoryTables[field]
	return ok
}

// Encode maps a human readable value to its training-time code.
func Encode(field, raw string) (int, error) {
	table, ok := categoryTables[field]
	if !ok {
		return 0, fmt.Errorf("field %s is not categorical", field)
	}

	code, ok := table[raw]
	if !ok {
		return 0, &domain.UnknownCategoryError{Field: field, Value: raw}
	}
	return code, nil
}

// Categories lists the accepted values of field ordered by code.
func Categories(field string) []string {
	table := categoryTables[field]

	values := make([]string, 0, len(table))
	for v := range table {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return table[values[i]] < table[values[j]]
	})
	return values
}
