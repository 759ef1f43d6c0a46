package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation = errors.New("failed validation")
	ErrRecordNotFound   = errors.New("record not found")
)

// FailedValidationError carries the per-field messages of a rejected book.
// It matches ErrFailedValidation with errors.Is.
type FailedValidationError struct {
	Errors map[string]string
}

func (e *FailedValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Errors[k]))
	}
	return ErrFailedValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *FailedValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps a validation error map.
func (s *service) failedValidation(errorMap map[string]string) error {
	return &FailedValidationError{Errors: errorMap}
}
