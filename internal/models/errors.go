package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure
type ErrorKind string

const (
	// ErrValidation covers invalid user input, including unresolvable tickers
	ErrValidation ErrorKind = "validation"
	// ErrDataUnavailable covers insufficient upstream data (e.g. <2 closes)
	ErrDataUnavailable ErrorKind = "data-unavailable"
	// ErrExternalService covers market-data, news feed and model call failures
	ErrExternalService ErrorKind = "external-service"
	// ErrRendering covers report generation failures
	ErrRendering ErrorKind = "rendering"
)

// PipelineError is the single error type carried through the analysis
// pipeline. Each stage wraps its failures in one of these so callers can
// branch on Kind instead of matching message prefixes.
type PipelineError struct {
	Kind    ErrorKind
	Stage   string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a pipeline error without an underlying cause
func NewPipelineError(kind ErrorKind, stage, format string, args ...interface{}) *PipelineError {
	return &PipelineError{
		Kind:    kind,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapPipelineError wraps an underlying error with a kind and stage
func WrapPipelineError(kind ErrorKind, stage string, err error, format string, args ...interface{}) *PipelineError {
	return &PipelineError{
		Kind:    kind,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// KindOf extracts the error kind from err, defaulting to external-service
// for errors that did not originate in a pipeline stage.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrExternalService
}
