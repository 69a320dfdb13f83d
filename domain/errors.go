package domain

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned for every prediction when the scaler or
// the model failed to load at startup.
var ErrModelUnavailable = errors.New("model not loaded")

type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown value %q for field %s", e.Value, e.Field)
}

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %s", e.Field)
}

type InvalidNumberError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid integer %q for field %s", e.Value, e.Field)
}

func (e *InvalidNumberError) Unwrap() error { return e.Err }

// InferenceError wraps any failure raised while scaling or classifying.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

type ArtifactLoadError struct {
	Path string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }
