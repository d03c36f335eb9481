package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError indicates that an operation referenced a missing id.
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (err NotFoundError) Error() string {
	return err.Resource + " not found"
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// DuplicateKeyError indicates a unique-field or natural-key collision.
type DuplicateKeyError struct {
	Field string
	Value string
}

func NewDuplicateKeyError(field, value string) error {
	return &DuplicateKeyError{Field: field, Value: value}
}

func (err DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", err.Field, err.Value)
}

// InvalidTransitionError indicates a workflow operation attempted from a
// terminal or wrong state.
type InvalidTransitionError struct {
	Entity string
	From   string
	Action string
}

func NewInvalidTransitionError(entity, from, action string) error {
	return &InvalidTransitionError{Entity: entity, From: from, Action: action}
}

func (err InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s in state %s", err.Action, err.Entity, err.From)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
