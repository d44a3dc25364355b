package application

import "errors"

// Errors returned while constructing or loading the evaluation
// pipeline.
var (
	// errNilEvaluator indicates a SpecEvaluator was constructed without
	// a predicate evaluator.
	errNilEvaluator = errors.New("predicate evaluator cannot be nil")

	// ErrDuplicatePredicateID indicates a specification declares the
	// same predicate id twice; duplicate ids are undefined behavior at
	// evaluation time, so the loader rejects them.
	ErrDuplicatePredicateID = errors.New("duplicate predicate id")

	// ErrDuplicateGroupID indicates a specification declares the same
	// group id twice.
	ErrDuplicateGroupID = errors.New("duplicate group id")

	// ErrInvalidDocument indicates document text that could not be
	// parsed into a value tree.
	ErrInvalidDocument = errors.New("invalid document")
)
