package planner

import (
	"alcyxob/fitness-planner/internal/llm"
	"errors"
	"fmt"
)

var (
	ErrExtractionFailed   = errors.New("no recoverable plan document in generated text")
	ErrKnowledgeBaseEmpty = errors.New("knowledge base has no entries for the requested profile")
	ErrNoGenerator        = errors.New("no text generator configured")
)

// AdapterFailure wraps a failed generation call.
type AdapterFailure struct {
	Kind llm.FailureKind
	Err  error
}

func (e *AdapterFailure) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *AdapterFailure) Unwrap() error { return e.Err }

// ExtractionFailure means no syntactically valid document could be recovered.
type ExtractionFailure struct {
	Err error
}

func (e *ExtractionFailure) Error() string { return "extraction failed: " + e.Err.Error() }

func (e *ExtractionFailure) Unwrap() error { return e.Err }

// ValidationFailure carries the report of a document that stayed invalid after repair.
type ValidationFailure struct {
	Report Report
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("plan failed validation with %d violations", len(e.Report.Violations))
}
