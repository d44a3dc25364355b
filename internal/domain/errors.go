package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors signalled by operator handlers and evaluators. Each
// maps to a branch of the failure taxonomy: anything wrapping one of
// these surfaces as UNDETERMINED at the predicate boundary rather than
// aborting the run.
var (
	// ErrUnknownOperator indicates an operator name absent from the
	// operator table.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrInvalidOperand indicates a malformed operand such as an
	// uncompilable pattern, a wrong-arity list, or a non-boolean
	// $exists operand.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrTypeMismatch indicates operand/value runtime types that the
	// operator cannot compare. Whether this surfaces as UNDETERMINED or
	// NOT_MATCHED is an operator-family policy decision.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInternal indicates an unexpected failure during handler
	// execution, including recovered panics.
	ErrInternal = errors.New("internal evaluation error")
)

// OperatorError carries the operator name and field path that produced
// an evaluation failure, preserving the sentinel for errors.Is checks.
type OperatorError struct {
	// Operator is the operator name, including the $ prefix.
	Operator string

	// Path is the document field path being matched, when known.
	Path string

	// Err is the underlying sentinel or wrapped cause.
	Err error
}

// Error implements the error interface for OperatorError.
func (e *OperatorError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("operator %s: %v", e.Operator, e.Err)
	}
	return fmt.Sprintf("operator %s at %s: %v", e.Operator, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *OperatorError) Unwrap() error { return e.Err }

// NewOperatorError creates an OperatorError for the given operator.
func NewOperatorError(operator, path string, err error) *OperatorError {
	return &OperatorError{Operator: operator, Path: path, Err: err}
}
