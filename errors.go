package kws

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidTerm indicates a term failed validation at ingestion.
	ErrInvalidTerm = errors.New("kws: invalid term")

	// ErrInvalidConfig indicates a scoring option is missing or out of range.
	ErrInvalidConfig = errors.New("kws: invalid configuration")
)
