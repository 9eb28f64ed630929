package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrThrottled = errors.New("too many submissions")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type IntegrityKind string

const (
	IntegrityUnique     IntegrityKind = "unique"
	IntegrityForeignKey IntegrityKind = "foreign_key"
	IntegrityCheck      IntegrityKind = "check"
)

// IntegrityError is a constraint violation reported by the store.
type IntegrityError struct {
	Kind    IntegrityKind
	Message string
	Err     error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity (%s): %s", e.Kind, e.Message)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
