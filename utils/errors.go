package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrProtected             = errors.New("record is referenced and cannot be deleted")
	ErrConflict              = errors.New("record already exists")
	ErrCounterNotInitialized = errors.New("JobCardCounter is not set up.")
	ErrCounterMisconfigured  = errors.New("more than one JobCardCounter row exists")
	ErrCounterContention     = errors.New("job card counter changed concurrently, retries exhausted")
	ErrImportInProgress      = errors.New("another customer import is in progress")
	ErrInvalidCredentials    = errors.New("Invalid username or password")
	ErrUnauthorized          = errors.New("unauthorized")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ProtectedError names what still references the record.
type ProtectedError struct {
	Entity     string
	References map[string]int64
}

func (e *ProtectedError) Error() string {
	keys := make([]string, 0, len(e.References))
	for k := range e.References {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d %s", e.References[k], k))
	}
	return fmt.Sprintf("cannot delete %s: referenced by %s", e.Entity, strings.Join(parts, ", "))
}

func (e *ProtectedError) Unwrap() error {
	return ErrProtected
}
