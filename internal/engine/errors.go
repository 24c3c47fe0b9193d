package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrPrecondition matches every *PreconditionError.
	ErrPrecondition = errors.New("precondition not met")
)

type ValidationCode string

const (
	CodeInvalidPainLevel           ValidationCode = "INVALID_PAIN_LEVEL"
	CodeInvalidMax                 ValidationCode = "INVALID_MAX"
	CodeInvalidWeight              ValidationCode = "INVALID_WEIGHT"
	CodeInvalidSeverity            ValidationCode = "INVALID_SEVERITY"
	CodeInvalidReduction           ValidationCode = "INVALID_REDUCTION"
	CodeInvalidHoldWindow          ValidationCode = "INVALID_HOLD_WINDOW"
	CodeInvalidIntensityAdjustment ValidationCode = "INVALID_INTENSITY_ADJUSTMENT"
	CodeInvalidDuration            ValidationCode = "INVALID_DURATION"
	CodeInvalidOverride            ValidationCode = "INVALID_OVERRIDE"
	CodeInvalidReason              ValidationCode = "INVALID_REASON"
)

// ValidationError rejects input before any state transition is applied.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an id missing from the exercise catalog. It is
// distinct from an empty result, which is a valid answer.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type PreconditionCode string

const (
	CodeInsufficientSessions PreconditionCode = "INSUFFICIENT_SESSIONS"
	CodeNoSessions           PreconditionCode = "NO_SESSIONS"
)

// PreconditionError carries an actionable message and, where it applies,
// how many more records the caller needs.
type PreconditionError struct {
	Code      PreconditionCode
	Message   string
	Remaining int
}

func (e *PreconditionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

func invalid(code ValidationCode, field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

func unknownExercise(id string) *NotFoundError {
	return &NotFoundError{Kind: "exercise", ID: id}
}
